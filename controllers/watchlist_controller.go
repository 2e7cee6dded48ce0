package controllers

import (
	"errors"
	"net/http"

	"financepal/services/watchlist"

	"github.com/gin-gonic/gin"
)

// WatchlistController handles watchlist requests
type WatchlistController struct {
	watchlist *watchlist.Service
}

// NewWatchlistController creates a new watchlist controller
func NewWatchlistController(svc *watchlist.Service) *WatchlistController {
	return &WatchlistController{watchlist: svc}
}

// AddSymbol adds a symbol to the caller's watchlist
// POST /api/v1/watchlist
func (wc *WatchlistController) AddSymbol(c *gin.Context) {
	var req struct {
		Symbol string `json:"symbol" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "symbol is required"})
		return
	}

	resolved, err := wc.watchlist.Add(c.Request.Context(), UserID(c), req.Symbol)
	switch {
	case errors.Is(err, watchlist.ErrLooksLikeISIN):
		c.JSON(http.StatusBadRequest, gin.H{"error": "that looks like an ISIN; use a ticker symbol like AAPL or QDV5.DE"})
	case errors.Is(err, watchlist.ErrUnknownSymbol):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "could not validate symbol"})
	case errors.Is(err, watchlist.ErrAlreadyWatched):
		c.JSON(http.StatusConflict, gin.H{"error": "symbol already in watchlist", "symbol": resolved})
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to add to watchlist"})
	default:
		c.JSON(http.StatusCreated, gin.H{"symbol": resolved})
	}
}

// ListWatchlist returns the caller's watchlist with prices
// GET /api/v1/watchlist
func (wc *WatchlistController) ListWatchlist(c *gin.Context) {
	lines, err := wc.watchlist.List(c.Request.Context(), UserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list watchlist"})
		return
	}

	formatted := make([]string, len(lines))
	for i, line := range lines {
		formatted[i] = line.Format()
	}
	c.JSON(http.StatusOK, gin.H{"data": lines, "lines": formatted})
}

// RemoveSymbol removes a symbol from the caller's watchlist
// DELETE /api/v1/watchlist/:symbol
func (wc *WatchlistController) RemoveSymbol(c *gin.Context) {
	err := wc.watchlist.Remove(c.Request.Context(), UserID(c), c.Param("symbol"))
	switch {
	case errors.Is(err, watchlist.ErrNotWatched):
		c.JSON(http.StatusNotFound, gin.H{"error": "symbol not in watchlist"})
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to remove from watchlist"})
	default:
		c.JSON(http.StatusOK, gin.H{"removed": true})
	}
}

// ClearWatchlist empties the caller's watchlist
// DELETE /api/v1/watchlist
func (wc *WatchlistController) ClearWatchlist(c *gin.Context) {
	removed, err := wc.watchlist.Clear(c.Request.Context(), UserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to clear watchlist"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"removed": removed})
}
