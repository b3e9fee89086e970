package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/atsdairy/dashboard/internal/domain/models"
	"github.com/atsdairy/dashboard/internal/service/distribution"
)

// DistributionHandler serves the distribution network screen. It shares the
// generic resource surface but routes additions and removals through the
// service so the persisted tallies stay in step.
type DistributionHandler struct {
	resource *Resource[models.Route]
	svc      *distribution.Service
	logger   *zap.Logger
}

// NewDistributionHandler constructs the HTTP handler adapter.
func NewDistributionHandler(resource *Resource[models.Route], svc *distribution.Service, logger *zap.Logger) *DistributionHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DistributionHandler{resource: resource, svc: svc, logger: logger}
}

// Register mounts the distribution routes under rg.
func (h *DistributionHandler) Register(rg *gin.RouterGroup) {
	rg.GET("", h.resource.List)
	rg.POST("", h.Add)
	rg.GET("/:index", h.resource.Get)
	rg.POST("/:index/edit", h.resource.BeginEdit)
	rg.PUT("/:index", h.resource.SaveEdit)
	rg.POST("/edit/cancel", h.resource.CancelEdit)
	rg.DELETE("/:index", h.Delete)
	rg.GET("/stats", h.resource.Stats)
	rg.GET("/tallies", h.Tallies)
	rg.GET("/export", h.resource.ExportCSV)
	rg.POST("/export/sheets", h.resource.ExportSheets)
}

// Add appends a route and bumps its weekday tally.
func (h *DistributionHandler) Add(c *gin.Context) {
	var draft models.Route
	if err := c.ShouldBindJSON(&draft); err != nil {
		h.logger.Warn("invalid route payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	added, errs, err := h.svc.Add(c.Request.Context(), draft)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": errs})
		return
	}
	c.JSON(http.StatusCreated, added)
}

// Delete removes a route, tallying the optional ?reason= value.
func (h *DistributionHandler) Delete(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "index must be an integer"})
		return
	}

	removed, err := h.svc.Remove(c.Request.Context(), index, c.Query("reason"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "record not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"removed": removed, "count": h.svc.Routes().Len()})
}

// Tallies serves the persisted day/reason counters.
func (h *DistributionHandler) Tallies(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.Tallies())
}
