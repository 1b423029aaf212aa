package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/JonMunkholm/chartparse/internal/config"
	"github.com/JonMunkholm/chartparse/internal/core"
	"github.com/JonMunkholm/chartparse/internal/logging"
	"github.com/JonMunkholm/chartparse/internal/web"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env file if it exists (Overload overwrites existing env vars)
	if err := godotenv.Overload(); err != nil {
		slog.Info("no .env file found, using environment variables")
	} else {
		slog.Info("loaded .env file (overwriting existing env vars)")
	}

	// Load and validate configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Setup structured logging based on config
	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)
	slog.Info("configuration loaded", "config", cfg.String())

	registry := buildRegistry(cfg.Parse)
	for _, f := range registry.Formats() {
		slog.Debug("format registered", "name", f.Name, "extensions", f.Extensions, "available", f.Available())
	}

	limiter := core.NewParseLimiter(cfg.Parse.MaxConcurrent, cfg.Parse.MaxWaitTime)
	service := core.NewService(registry, limiter)
	server := web.NewServer(cfg, service)

	// Graceful shutdown
	done := make(chan struct{})
	go func() {
		defer close(done)

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		slog.Info("shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if status := service.LimiterStatus(); status.Active > 0 {
			slog.Info("waiting for parses to complete", "active", status.Active)
		}
		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("shutdown error", "error", err)
		}
	}()

	if err := server.Start(); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
	<-done
	slog.Info("server stopped")
}

// buildRegistry registers the built-in formats. With the spreadsheet
// decoder disabled, .xlsx uploads report a missing capability instead of
// an unsupported format.
func buildRegistry(cfg config.ParseConfig) *core.Registry {
	spreadsheet := core.SpreadsheetFormat()
	if !cfg.EnableSpreadsheet {
		spreadsheet = spreadsheet.Unavailable()
	}
	return core.NewRegistry(spreadsheet, core.JSONFormat(), core.CSVFormat())
}
