package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/atsdairy/dashboard/internal/domain/models"
	"github.com/atsdairy/dashboard/internal/kvstore"
)

// defaultSettings is what the settings screen shows before anything was saved.
var defaultSettings = models.Settings{Theme: "light", Notifications: true, Language: "en"}

// PrefsHandler serves the persisted profile and settings forms.
type PrefsHandler struct {
	kv     kvstore.Store
	logger *zap.Logger
}

// NewPrefsHandler constructs the HTTP handler adapter.
func NewPrefsHandler(kv kvstore.Store, logger *zap.Logger) *PrefsHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PrefsHandler{kv: kv, logger: logger}
}

// Register mounts the profile and settings routes under rg.
func (h *PrefsHandler) Register(rg *gin.RouterGroup) {
	rg.GET("/profile", h.GetProfile)
	rg.PUT("/profile", h.SaveProfile)
	rg.GET("/settings", h.GetSettings)
	rg.PUT("/settings", h.SaveSettings)
}

// GetProfile returns the persisted profile, empty when nothing is stored.
func (h *PrefsHandler) GetProfile(c *gin.Context) {
	var profile models.Profile
	if _, err := h.kv.Load(c.Request.Context(), kvstore.KeyProfile, &profile); err != nil {
		h.logger.Error("failed loading profile", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "unable to load profile"})
		return
	}
	c.JSON(http.StatusOK, profile)
}

// SaveProfile persists the profile form.
func (h *PrefsHandler) SaveProfile(c *gin.Context) {
	var profile models.Profile
	if err := c.ShouldBindJSON(&profile); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if err := h.kv.Save(c.Request.Context(), kvstore.KeyProfile, profile); err != nil {
		h.logger.Error("failed saving profile", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "unable to save profile"})
		return
	}
	c.Status(http.StatusNoContent)
}

// GetSettings returns the persisted settings, falling back to defaults.
func (h *PrefsHandler) GetSettings(c *gin.Context) {
	settings := defaultSettings
	if _, err := h.kv.Load(c.Request.Context(), kvstore.KeySettings, &settings); err != nil {
		h.logger.Error("failed loading settings", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "unable to load settings"})
		return
	}
	c.JSON(http.StatusOK, settings)
}

// SaveSettings persists the settings form.
func (h *PrefsHandler) SaveSettings(c *gin.Context) {
	var settings models.Settings
	if err := c.ShouldBindJSON(&settings); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if err := h.kv.Save(c.Request.Context(), kvstore.KeySettings, settings); err != nil {
		h.logger.Error("failed saving settings", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "unable to save settings"})
		return
	}
	c.Status(http.StatusNoContent)
}
