package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/danghamo/netherlink/internal/api"
	"github.com/danghamo/netherlink/internal/domain/shared"
	"github.com/danghamo/netherlink/internal/metrics"
	"github.com/danghamo/netherlink/pkg/config"

	_ "github.com/danghamo/netherlink/docs"
)

// @title Netherlink API
// @version 0.1.0
// @description Portal reachability server: resolves which nether portals an entity can come out of, over JSON-RPC 2.0 with SSE push updates.
// @BasePath /
func main() {
	// Initialize configuration and logger
	cfg, log, err := config.Initialize()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize application: %v\n", err)
		os.Exit(1)
	}

	// Ensure logger is flushed on exit
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting Netherlink Server",
		zap.String("version", "0.1.0"),
		zap.String("environment", cfg.Server.Environment),
	)

	// Resolve the entity the link table is computed for
	entity, err := resolveEntity(cfg)
	if err != nil {
		log.Fatal("Invalid entity configuration", zap.Error(err))
	}

	// Create API server
	apiServer := api.NewServer(cfg, log, entity)

	// Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Serve Prometheus metrics on a side port
	if cfg.Server.MetricsEnabled {
		metricsServer := metrics.NewServer(log, cfg.Server.MetricsPort)
		go func() {
			if err := metricsServer.Start(); err != nil {
				log.Error("Metrics server error", zap.Error(err))
			}
		}()
		defer func() {
			shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer shutdownCancel()
			_ = metricsServer.Shutdown(shutdownCtx)
		}()
	}

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Info("Shutting down server...")
		cancel()
	}()

	// Start server
	if err := apiServer.Start(ctx); err != nil {
		log.Error("Server error", zap.Error(err))
		os.Exit(1)
	}

	log.Info("Server gracefully stopped")
}

// resolveEntity builds the configured entity, preferring a named preset
// over an explicit hitbox.
func resolveEntity(cfg *config.Config) (shared.Entity, error) {
	if cfg.Entity.Preset != "" {
		entity, ok := shared.EntityPreset(cfg.Entity.Preset)
		if !ok {
			return shared.Entity{}, fmt.Errorf("unknown entity preset %q", cfg.Entity.Preset)
		}
		return entity, nil
	}

	entity := shared.Entity{
		Width:      cfg.Entity.Width,
		Height:     cfg.Entity.Height,
		Projectile: cfg.Entity.Projectile,
	}
	if !entity.IsValid() {
		return shared.Entity{}, fmt.Errorf("entity hitbox must not be negative")
	}
	return entity, nil
}
