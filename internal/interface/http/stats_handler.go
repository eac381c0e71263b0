package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-ddd-course-admin/internal/application"
	"github.com/oksasatya/go-ddd-course-admin/pkg/response"
)

type StatsHandler struct {
	Svc *application.StatsService
}

func NewStatsHandler(svc *application.StatsService) *StatsHandler {
	return &StatsHandler{Svc: svc}
}

func (h *StatsHandler) Get(c *gin.Context) {
	st, err := h.Svc.Get(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, st)
}
