package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/atsdairy/dashboard/internal/domain/models"
	"github.com/atsdairy/dashboard/internal/service/buzzbox"
)

// BuzzboxHandler serves the message board. Posting goes through the service
// so configured webhooks receive a copy.
type BuzzboxHandler struct {
	resource *Resource[models.Message]
	svc      *buzzbox.Service
	logger   *zap.Logger
}

// NewBuzzboxHandler constructs the HTTP handler adapter.
func NewBuzzboxHandler(resource *Resource[models.Message], svc *buzzbox.Service, logger *zap.Logger) *BuzzboxHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BuzzboxHandler{resource: resource, svc: svc, logger: logger}
}

// Register mounts the buzzbox routes under rg.
func (h *BuzzboxHandler) Register(rg *gin.RouterGroup) {
	rg.GET("", h.resource.List)
	rg.POST("", h.Post)
	rg.GET("/:index", h.resource.Get)
	rg.POST("/:index/edit", h.resource.BeginEdit)
	rg.PUT("/:index", h.resource.SaveEdit)
	rg.POST("/edit/cancel", h.resource.CancelEdit)
	rg.DELETE("/:index", h.resource.Delete)
	rg.GET("/stats", h.resource.Stats)
	rg.GET("/export", h.resource.ExportCSV)
	rg.POST("/export/sheets", h.resource.ExportSheets)
}

// Post validates and stores the message, forwarding it to the webhook when
// one is configured.
func (h *BuzzboxHandler) Post(c *gin.Context) {
	var draft models.Message
	if err := c.ShouldBindJSON(&draft); err != nil {
		h.logger.Warn("invalid message payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	added, errs, err := h.svc.Post(c.Request.Context(), draft)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": errs})
		return
	}
	c.JSON(http.StatusCreated, added)
}
