package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/atsdairy/dashboard/internal/domain/models"
	"github.com/atsdairy/dashboard/internal/service/payflow"
)

// PayflowHandler serves the payments screen, including the persisted form
// draft that survives restarts.
type PayflowHandler struct {
	resource *Resource[models.Payment]
	svc      *payflow.Service
	logger   *zap.Logger
}

// NewPayflowHandler constructs the HTTP handler adapter.
func NewPayflowHandler(resource *Resource[models.Payment], svc *payflow.Service, logger *zap.Logger) *PayflowHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PayflowHandler{resource: resource, svc: svc, logger: logger}
}

// Register mounts the payflow routes under rg.
func (h *PayflowHandler) Register(rg *gin.RouterGroup) {
	rg.GET("", h.resource.List)
	rg.POST("", h.Add)
	rg.GET("/:index", h.resource.Get)
	rg.POST("/:index/edit", h.resource.BeginEdit)
	rg.PUT("/:index", h.resource.SaveEdit)
	rg.POST("/edit/cancel", h.resource.CancelEdit)
	rg.DELETE("/:index", h.resource.Delete)
	rg.GET("/stats", h.resource.Stats)
	rg.GET("/draft", h.LoadDraft)
	rg.PUT("/draft", h.SaveDraft)
	rg.GET("/export", h.resource.ExportCSV)
	rg.POST("/export/sheets", h.resource.ExportSheets)
}

// Add records a payment and clears the persisted draft on success.
func (h *PayflowHandler) Add(c *gin.Context) {
	var draft models.Payment
	if err := c.ShouldBindJSON(&draft); err != nil {
		h.logger.Warn("invalid payment payload", zap.Error(err))
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

// LoadDraft returns the persisted form draft, empty when none is stored.
func (h *PayflowHandler) LoadDraft(c *gin.Context) {
	draft, err := h.svc.LoadDraft(c.Request.Context())
	if err != nil {
		h.logger.Error("failed loading payflow draft", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "unable to load draft"})
		return
	}
	c.JSON(http.StatusOK, draft)
}

// SaveDraft persists the in-progress form without validating it.
func (h *PayflowHandler) SaveDraft(c *gin.Context) {
	var draft models.PaymentDraft
	if err := c.ShouldBindJSON(&draft); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.svc.SaveDraft(c.Request.Context(), draft); err != nil {
		h.logger.Error("failed saving payflow draft", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "unable to save draft"})
		return
	}
	c.Status(http.StatusNoContent)
}
