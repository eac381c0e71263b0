package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/go-ddd-course-admin/internal/interface/http"
	"github.com/oksasatya/go-ddd-course-admin/internal/interface/middleware"
	"github.com/oksasatya/go-ddd-course-admin/pkg/helpers"
)

// AuthModule wires session endpoints.
// Public: POST /api/auth/login, POST /api/auth/refresh
// Protected: POST /api/auth/logout
type AuthModule struct {
	Handler *handlers.AuthHandler
	JWT     *helpers.JWTManager
}

func NewAuthModule(h *handlers.AuthHandler, jwt *helpers.JWTManager) *AuthModule {
	return &AuthModule{Handler: h, JWT: jwt}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	loginLimiter := limit(10, time.Minute, middleware.KeyByIPAndPath(), nil)   // 10 req/min per IP
	refreshLimiter := limit(60, time.Minute, middleware.KeyByIPAndPath(), nil) // 60 req/min per IP

	g := rg.Group("/auth")
	g.POST("/login", loginLimiter, m.Handler.Login)
	g.POST("/refresh", refreshLimiter, m.Handler.Refresh)
	g.POST("/logout", middleware.Authenticate(m.JWT), m.Handler.Logout)
}
