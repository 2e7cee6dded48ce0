package controllers

import (
	"errors"
	"net/http"

	"financepal/services/settings"

	"github.com/gin-gonic/gin"
)

// SettingsController handles user preference requests
type SettingsController struct {
	settings *settings.Service
}

// NewSettingsController creates a new settings controller
func NewSettingsController(svc *settings.Service) *SettingsController {
	return &SettingsController{settings: svc}
}

// GetSettings returns the caller's settings, defaults-merged
// GET /api/v1/settings
func (sc *SettingsController) GetSettings(c *gin.Context) {
	s, err := sc.settings.Get(UserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load settings"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": s})
}

// UpdateSetting changes a single setting field
// PUT /api/v1/settings
func (sc *SettingsController) UpdateSetting(c *gin.Context) {
	var req struct {
		Field string `json:"field" binding:"required"`
		Value string `json:"value" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "field and value are required"})
		return
	}

	err := sc.settings.Set(UserID(c), req.Field, req.Value)
	switch {
	case errors.Is(err, settings.ErrUnknownField):
		c.JSON(http.StatusBadRequest, gin.H{"error": "valid fields: currency, chart_days, show_percentages, watchlist_limit"})
	case errors.Is(err, settings.ErrInvalidValue):
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid value for this setting"})
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update setting"})
	default:
		c.JSON(http.StatusOK, gin.H{"field": req.Field, "value": req.Value})
	}
}
