package handlers

import (
	"expvar"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-ddd-course-admin/internal/application"
	"github.com/oksasatya/go-ddd-course-admin/internal/domain"
	"github.com/oksasatya/go-ddd-course-admin/internal/interface/middleware"
	"github.com/oksasatya/go-ddd-course-admin/pkg/helpers"
	"github.com/oksasatya/go-ddd-course-admin/pkg/validation"
)

// authCounters is exposed on /api/debug/vars when debug metrics are enabled.
var authCounters = expvar.NewMap("auth")

type AuthHandler struct {
	Svc     *application.AuthService
	Logger  *logrus.Logger
	Cookies *helpers.Manager
}

func NewAuthHandler(svc *application.AuthService, logger *logrus.Logger, cookieDomain string, cookieSecure bool) *AuthHandler {
	return &AuthHandler{Svc: svc, Logger: logger, Cookies: helpers.NewCookie(cookieDomain, cookieSecure)}
}

type loginRequest struct {
	Username string `json:"username" binding:"required,uname"`
	Password string `json:"password" binding:"required,pwd"`
}

type authResponse struct {
	AccessToken string                   `json:"accessToken"`
	User        application.UserResponse `json:"user"`
}

// audit writes one structured line per auth action.
func (h *AuthHandler) audit(c *gin.Context, userID, username, action string, err error) {
	result := "success"
	if err != nil {
		result = "failure"
	}
	authCounters.Add(action+"_"+result, 1)
	if h.Logger == nil {
		return
	}
	entry := h.Logger.WithFields(logrus.Fields{
		"action":     action,
		"result":     result,
		"user_id":    userID,
		"username":   username,
		"ip":         middleware.ClientIP(c),
		"user_agent": c.GetHeader("User-Agent"),
		"request_id": c.GetString(middleware.CtxRequestIDKey),
	})
	if err != nil {
		entry.WithError(err).Warn("auth")
		return
	}
	entry.Info("auth")
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	res, err := h.Svc.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		h.audit(c, "", req.Username, "login", err)
		_ = c.Error(err)
		return
	}
	h.audit(c, res.User.ID, res.User.Username, "login", nil)
	h.respond(c, res)
}

func (h *AuthHandler) Refresh(c *gin.Context) {
	res, err := h.Svc.Refresh(c.Request.Context(), h.Cookies.Refresh(c))
	if err != nil {
		h.audit(c, "", "", "refresh", err)
		_ = c.Error(err)
		return
	}
	h.audit(c, res.User.ID, res.User.Username, "refresh", nil)
	h.respond(c, res)
}

func (h *AuthHandler) Logout(c *gin.Context) {
	id, ok := middleware.CurrentIdentity(c)
	if !ok {
		_ = c.Error(domain.ErrUnauthorized)
		return
	}
	if err := h.Svc.Logout(c.Request.Context(), id.UserID); err != nil {
		h.audit(c, id.UserID, id.Username, "logout", err)
		_ = c.Error(err)
		return
	}
	h.Cookies.Clear(c)
	h.audit(c, id.UserID, id.Username, "logout", nil)
	c.JSON(http.StatusOK, true)
}

func (h *AuthHandler) respond(c *gin.Context, res application.AuthResult) {
	h.Cookies.SetRefresh(c, res.RefreshToken, res.RefreshTokenExpiry)
	c.JSON(http.StatusOK, authResponse{AccessToken: res.AccessToken, User: res.User})
}

// bindError turns a gin binding failure into a validation error.
func bindError(c *gin.Context, err error) {
	_ = c.Error(domain.NewValidationError("Validation failed", validation.ToDetails(err)))
}
