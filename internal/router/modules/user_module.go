package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	vo "github.com/oksasatya/go-ddd-course-admin/internal/domain/valueobject"
	handlers "github.com/oksasatya/go-ddd-course-admin/internal/interface/http"
	"github.com/oksasatya/go-ddd-course-admin/internal/interface/middleware"
	"github.com/oksasatya/go-ddd-course-admin/pkg/helpers"
)

// UserModule wires user management under /api/users. Every route needs a
// bearer token; reads and updates of a single user are open to that user.
type UserModule struct {
	Handler *handlers.UserHandler
	JWT     *helpers.JWTManager
}

func NewUserModule(h *handlers.UserHandler, jwt *helpers.JWTManager) *UserModule {
	return &UserModule{Handler: h, JWT: jwt}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	g := rg.Group("/users")
	g.Use(
		middleware.Authenticate(m.JWT),
		limit(120, time.Minute, middleware.KeyByUserID("users"), nil),
	)
	admin := middleware.RequireRoles(vo.RoleAdmin)
	selfOrAdmin := middleware.RequireSelfOrRoles("id", vo.RoleAdmin)
	{
		g.POST("", admin, m.Handler.Create)
		g.GET("", admin, m.Handler.List)
		g.GET("/search", admin, m.Handler.Search)
		g.GET("/:id", selfOrAdmin, m.Handler.Get)
		g.PUT("/:id", selfOrAdmin, m.Handler.Update)
		g.DELETE("/:id", admin, m.Handler.Delete)
	}
}
