package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"selectiq/internal/pipeline"
	resp "selectiq/internal/transport/http/response"
)

type DashboardHandler struct {
	stats *pipeline.Stats
}

func NewDashboardHandler(stats *pipeline.Stats) *DashboardHandler {
	return &DashboardHandler{stats: stats}
}

func (h *DashboardHandler) Stats(c *gin.Context) {
	out, err := h.stats.Dashboard(c.Request.Context())
	if err != nil {
		resp.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}
