package controllers

import (
	"errors"
	"net/http"

	"financepal/services/alerts"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// UserID returns the opaque user identity attached by the surface.
// The surface hands the services already-validated primitives; identity
// arrives in the X-User-ID header.
func UserID(c *gin.Context) string {
	return c.GetHeader("X-User-ID")
}

// AlertController handles price alert requests
type AlertController struct {
	alerts *alerts.Service
}

// NewAlertController creates a new alert controller
func NewAlertController(svc *alerts.Service) *AlertController {
	return &AlertController{alerts: svc}
}

// CreateAlert registers a new price alert for the caller
// POST /api/v1/alerts
func (ac *AlertController) CreateAlert(c *gin.Context) {
	var req struct {
		Symbol    string          `json:"symbol" binding:"required"`
		Condition string          `json:"condition" binding:"required"`
		Target    decimal.Decimal `json:"target" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "symbol, condition and target are required"})
		return
	}

	err := ac.alerts.Add(c.Request.Context(), UserID(c), req.Symbol, req.Condition, req.Target)
	switch {
	case errors.Is(err, alerts.ErrInvalidCondition):
		c.JSON(http.StatusBadRequest, gin.H{"error": "condition must be above or below"})
	case errors.Is(err, alerts.ErrUnknownSymbol):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "could not validate symbol"})
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to set alert"})
	default:
		c.JSON(http.StatusCreated, gin.H{"created": true})
	}
}

// ListAlerts returns the caller's active alerts
// GET /api/v1/alerts
func (ac *AlertController) ListAlerts(c *gin.Context) {
	list, err := ac.alerts.List(UserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list alerts"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": list})
}

// RemoveAlert deletes the alert matching symbol and target
// DELETE /api/v1/alerts?symbol=XYZ&target=100.00
func (ac *AlertController) RemoveAlert(c *gin.Context) {
	symbol := c.Query("symbol")
	target, err := decimal.NewFromString(c.Query("target"))
	if symbol == "" || err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "symbol and numeric target are required"})
		return
	}

	err = ac.alerts.Remove(c.Request.Context(), UserID(c), symbol, target)
	switch {
	case errors.Is(err, alerts.ErrNoMatchingAlert):
		c.JSON(http.StatusNotFound, gin.H{"error": "no matching alert"})
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to remove alert"})
	default:
		c.JSON(http.StatusOK, gin.H{"removed": true})
	}
}

// ClearAlerts deletes all of the caller's alerts
// DELETE /api/v1/alerts/all
func (ac *AlertController) ClearAlerts(c *gin.Context) {
	removed, err := ac.alerts.Clear(c.Request.Context(), UserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to clear alerts"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"removed": removed})
}
