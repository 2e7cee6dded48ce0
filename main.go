package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"financepal/config"
	"financepal/middleware"
	"financepal/models"
	"financepal/routes"
	"financepal/scheduler"
	"financepal/services/notifier"
	"financepal/services/quotes"
	"financepal/store"

	"github.com/gin-gonic/gin"
)

func main() {
	log.Println("==============================================")
	log.Println("  FinancePal Backend - Starting...")
	log.Println("==============================================")

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Printf("Warning: Config load issue: %v", err)
	}

	// Set Gin mode based on environment
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize database connection
	db, err := config.InitDB()
	if err != nil {
		log.Fatalf("Database connection failed: %v", err)
	}

	// Run database migrations
	log.Println("Running database migrations...")
	if err := models.MigrateAll(db); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}
	log.Println("Database migrations completed successfully")

	// Build the core collaborators
	st := store.New(db)
	gateway := quotes.NewYahooGateway(cfg.QuoteBaseURL)
	n := buildNotifier(cfg)

	// Create Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger())

	setupHealthEndpoints(router)
	routes.SetupRoutes(router, st, gateway, n)

	server := &http.Server{
		Addr:              "0.0.0.0:" + cfg.Port,
		Handler:           router,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// The scheduler waits on this before its first cycle
	ready := make(chan struct{})
	alertScheduler := scheduler.NewAlertScheduler(
		st, gateway, n,
		time.Duration(cfg.AlertIntervalMinutes)*time.Minute,
		cfg.AlertConcurrency,
	)
	alertScheduler.Start(ready)

	go func() {
		log.Printf("Server listening on 0.0.0.0:%s", cfg.Port)
		log.Println("==============================================")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	// System is up: release the scheduler
	close(ready)

	// Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down...")

	alertScheduler.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}
	log.Println("Shutdown complete")
}

// buildNotifier wires the Telegram notifier, falling back to log output
// when no token is configured
func buildNotifier(cfg *config.Config) notifier.Notifier {
	if cfg.TelegramToken == "" {
		log.Println("TELEGRAM_TOKEN not set, notifications go to the log")
		return notifier.LogNotifier{}
	}
	n, err := notifier.NewTelegramNotifier(cfg.TelegramToken)
	if err != nil {
		log.Printf("Telegram notifier unavailable (%v), notifications go to the log", err)
		return notifier.LogNotifier{}
	}
	return n
}

// setupHealthEndpoints registers liveness endpoints
func setupHealthEndpoints(router *gin.Engine) {
	health := func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "time": time.Now().UTC()})
	}
	router.GET("/health", health)
	router.GET("/", health)
}
