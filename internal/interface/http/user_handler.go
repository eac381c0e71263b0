package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-ddd-course-admin/internal/application"
	"github.com/oksasatya/go-ddd-course-admin/internal/domain"
	vo "github.com/oksasatya/go-ddd-course-admin/internal/domain/valueobject"
	"github.com/oksasatya/go-ddd-course-admin/internal/interface/middleware"
	"github.com/oksasatya/go-ddd-course-admin/pkg/response"
)

type UserHandler struct {
	Svc *application.UserService
}

func NewUserHandler(svc *application.UserService) *UserHandler {
	return &UserHandler{Svc: svc}
}

type createUserRequest struct {
	FirstName string `json:"firstName" binding:"required,personname"`
	LastName  string `json:"lastName" binding:"required,personname"`
	Username  string `json:"username" binding:"required,uname"`
	Password  string `json:"password" binding:"required,pwd"`
	Role      string `json:"role" binding:"required,role"`
}

type updateUserRequest struct {
	FirstName *string `json:"firstName" binding:"omitempty,personname"`
	LastName  *string `json:"lastName" binding:"omitempty,personname"`
	Username  *string `json:"username" binding:"omitempty,uname"`
	Password  *string `json:"password" binding:"omitempty,pwd"`
	Role      *string `json:"role" binding:"omitempty,role"`
	IsActive  *bool   `json:"isActive"`
}

type userQuery struct {
	FirstName string `form:"firstName"`
	LastName  string `form:"lastName"`
	Username  string `form:"username"`
	Role      string `form:"role" binding:"omitempty,role"`
}

func (h *UserHandler) Create(c *gin.Context) {
	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	res, err := h.Svc.Create(c.Request.Context(), application.CreateUserInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Username:  req.Username,
		Password:  req.Password,
		Role:      req.Role,
	})
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, res)
}

func (h *UserHandler) List(c *gin.Context) {
	var q userQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		bindError(c, err)
		return
	}
	res, err := h.Svc.GetAll(c.Request.Context(), application.UserQuery{
		FirstName: q.FirstName,
		LastName:  q.LastName,
		Username:  q.Username,
		Role:      q.Role,
	})
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, res)
}

// Search queries the user projection: GET /users/search?q=...&size=...
func (h *UserHandler) Search(c *gin.Context) {
	size := 0
	if s := c.Query("size"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 {
			_ = c.Error(domain.NewValidationError("Validation failed", map[string]any{"size": "must be a positive number"}))
			return
		}
		size = n
	}
	hits, err := h.Svc.Search(c.Request.Context(), c.Query("q"), size)
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, hits)
}

func (h *UserHandler) Get(c *gin.Context) {
	res, err := h.Svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, res)
}

func (h *UserHandler) Update(c *gin.Context) {
	var req updateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	// self-updates may touch the profile, never the account's privileges
	if req.Role != nil || req.IsActive != nil {
		if id, _ := middleware.CurrentIdentity(c); !vo.Role(id.Role).IsAdmin() {
			_ = c.Error(domain.NewForbiddenError("Only admins can change role or active status"))
			return
		}
	}
	res, err := h.Svc.Update(c.Request.Context(), c.Param("id"), application.UpdateUserInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Username:  req.Username,
		Password:  req.Password,
		Role:      req.Role,
		IsActive:  req.IsActive,
	})
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, res)
}

func (h *UserHandler) Delete(c *gin.Context) {
	id, err := h.Svc.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, id)
}
