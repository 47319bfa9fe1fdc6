package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "matchpoint/docs"

	"matchpoint/internal/booking"
	"matchpoint/internal/config"
	"matchpoint/internal/db"
	"matchpoint/internal/logger"
	"matchpoint/internal/player"
	"matchpoint/internal/schedule"
	"matchpoint/internal/server"
)

// @title MatchPoint API
// @version 1.0
// @description API for tennis court booking.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {

	logger.Init()
	logger.Info("Starting MatchPoint application")
	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}

	logger.Info("Connecting to database...")
	database, err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close()
	logger.Info("Database connected")

	if err := db.RunMigrations(database, "migrations"); err != nil {
		logger.Fatalf("Failed to run migrations: %v", err)
	}
	logger.Info("Migrations completed")

	playerService := player.NewService(player.NewRepository(database), cfg.JWTSecret)

	slotIndex := schedule.NewIndex()
	bookingService := booking.NewService(booking.NewRepository(database), slotIndex, cfg.CourtCount)

	// The slot index is derived state; the store is authoritative.
	if err := bookingService.RebuildIndex(context.Background()); err != nil {
		logger.Fatalf("Failed to rebuild slot index: %v", err)
	}

	srv := server.New(database, cfg, playerService, bookingService)

	serverErrChan := make(chan error, 1)
	go func() {
		logger.Infof("Server starting on port %s", cfg.Port)
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			serverErrChan <- err
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		logger.Infof("Received signal: %v", sig)
	case err := <-serverErrChan:
		logger.Errorf("Server error: %v", err)
	}

	logger.Info("Shutting down gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("Error during server shutdown: %v", err)
	}

	logger.Info("Server stopped")
}
