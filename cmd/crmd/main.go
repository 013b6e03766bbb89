package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/prokopsimek/pmcrm/internal/api"
	"github.com/prokopsimek/pmcrm/internal/auth"
	"github.com/prokopsimek/pmcrm/internal/config"
	"github.com/prokopsimek/pmcrm/internal/server"
	"github.com/prokopsimek/pmcrm/internal/storage/sqlite"
	"github.com/prokopsimek/pmcrm/internal/telemetry"
	"github.com/prokopsimek/pmcrm/internal/timeline"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	// Load .env file if it exists
	_ = godotenv.Load()

	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize OpenTelemetry
	shutdown, err := telemetry.InitTracer("pmcrm", logger)
	if err != nil {
		log.Fatalf("Failed to initialize tracer: %v", err)
	}
	defer func() {
		if err := shutdown(context.Background()); err != nil {
			logger.Error("failed to shutdown tracer", slog.String("error", err.Error()))
		}
	}()

	store, err := sqlite.New(cfg.Storage.SQLite.Path)
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	defer store.Close()

	// Adapter order is the tie-break priority for identical timestamps.
	engine := timeline.NewEngine([]timeline.SourceAdapter{
		timeline.NewEmailAdapter(store),
		timeline.NewMeetingAdapter(store),
		timeline.NewNoteAdapter(store),
		timeline.NewActivityAdapter(store),
	}, timeline.WithLogger(logger))

	authenticator := auth.NewAuthenticator(store)
	srv := server.New(cfg.Server.Port, time.Duration(cfg.Server.TimeoutSeconds)*time.Second, logger, authenticator)

	handler := api.NewHandler(store, engine, logger)
	handler.Routes(srv.Router)

	go func() {
		if err := srv.Start(); err != nil {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Wait for shutdown signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("shutdown signal received, draining requests")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("server shutdown complete")
}
