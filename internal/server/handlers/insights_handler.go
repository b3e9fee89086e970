package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/atsdairy/dashboard/internal/service/insights"
)

// InsightsHandler serves the dashboard overview and the insights center.
type InsightsHandler struct {
	svc    *insights.Service
	logger *zap.Logger
}

// NewInsightsHandler constructs the HTTP handler adapter.
func NewInsightsHandler(svc *insights.Service, logger *zap.Logger) *InsightsHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InsightsHandler{svc: svc, logger: logger}
}

// Overview serves the recomputed cross-screen summary.
func (h *InsightsHandler) Overview(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.Overview())
}

// Snapshot archives today's summary on demand, outside the cron schedule.
func (h *InsightsHandler) Snapshot(c *gin.Context) {
	if err := h.svc.SnapshotDaily(c.Request.Context()); err != nil {
		h.logger.Error("manual snapshot failed", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "unable to archive snapshot"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"archived": true})
}
