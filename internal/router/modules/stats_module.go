package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/go-ddd-course-admin/internal/interface/http"
	"github.com/oksasatya/go-ddd-course-admin/internal/interface/middleware"
	"github.com/oksasatya/go-ddd-course-admin/pkg/helpers"
)

type StatsModule struct {
	Handler *handlers.StatsHandler
	JWT     *helpers.JWTManager
}

func NewStatsModule(h *handlers.StatsHandler, jwt *helpers.JWTManager) *StatsModule {
	return &StatsModule{Handler: h, JWT: jwt}
}

func (m *StatsModule) Register(rg *gin.RouterGroup) {
	rg.GET("/stats", middleware.Authenticate(m.JWT), m.Handler.Get)
}
