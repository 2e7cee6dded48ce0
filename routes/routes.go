package routes

import (
	"financepal/controllers"
	"financepal/middleware"
	"financepal/services/alerts"
	"financepal/services/notifier"
	"financepal/services/quotes"
	"financepal/services/settings"
	"financepal/services/watchlist"
	"financepal/store"

	"github.com/gin-gonic/gin"
)

// SetupRoutes sets up all API routes
func SetupRoutes(router *gin.Engine, st *store.Store, gateway quotes.Gateway, n notifier.Notifier) {
	// Initialize controllers
	watchlistController := controllers.NewWatchlistController(watchlist.NewService(st, gateway))
	alertController := controllers.NewAlertController(alerts.NewService(st, gateway))
	settingsController := controllers.NewSettingsController(settings.NewService(st))

	// API v1 group
	api := router.Group("/api/v1")
	api.Use(middleware.FirstContactWelcome(st, n))
	{
		// Watchlist routes
		wl := api.Group("/watchlist")
		{
			wl.POST("", watchlistController.AddSymbol)
			wl.GET("", watchlistController.ListWatchlist)
			wl.DELETE("", watchlistController.ClearWatchlist)
			wl.DELETE("/:symbol", watchlistController.RemoveSymbol)
		}

		// Alert routes
		al := api.Group("/alerts")
		{
			al.POST("", alertController.CreateAlert)
			al.GET("", alertController.ListAlerts)
			al.DELETE("", alertController.RemoveAlert)
			al.DELETE("/all", alertController.ClearAlerts)
		}

		// Settings routes
		se := api.Group("/settings")
		{
			se.GET("", settingsController.GetSettings)
			se.PUT("", settingsController.UpdateSetting)
		}
	}
}
