package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	vo "github.com/oksasatya/go-ddd-course-admin/internal/domain/valueobject"
	handlers "github.com/oksasatya/go-ddd-course-admin/internal/interface/http"
	"github.com/oksasatya/go-ddd-course-admin/internal/interface/middleware"
	"github.com/oksasatya/go-ddd-course-admin/pkg/helpers"
)

// CourseModule wires /api/courses and the nested contents routes.
type CourseModule struct {
	Handler *handlers.CourseHandler
	JWT     *helpers.JWTManager
}

func NewCourseModule(h *handlers.CourseHandler, jwt *helpers.JWTManager) *CourseModule {
	return &CourseModule{Handler: h, JWT: jwt}
}

func (m *CourseModule) Register(rg *gin.RouterGroup) {
	g := rg.Group("/courses")
	g.Use(
		middleware.Authenticate(m.JWT),
		limit(300, time.Minute, middleware.KeyByUserID("courses"), nil),
	)
	editors := middleware.RequireRoles(vo.RoleAdmin, vo.RoleEditor)
	admin := middleware.RequireRoles(vo.RoleAdmin)
	{
		g.POST("", editors, m.Handler.Create)
		g.GET("", m.Handler.List)
		g.GET("/:id", m.Handler.Get)
		g.PUT("/:id", editors, m.Handler.Update)
		g.DELETE("/:id", admin, m.Handler.Delete)

		g.POST("/:id/contents", editors, m.Handler.CreateContent)
		g.GET("/:id/contents", m.Handler.ListContents)
		g.PUT("/:id/contents/:contentId", editors, m.Handler.UpdateContent)
		g.DELETE("/:id/contents/:contentId", admin, m.Handler.DeleteContent)
	}
}
