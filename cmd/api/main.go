package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/pageza/recipe-share/backend/config"
	"github.com/pageza/recipe-share/backend/internal/database"
	"github.com/pageza/recipe-share/backend/internal/server"
	"github.com/pageza/recipe-share/backend/pkg/logging"
)

func main() {
	logging.Setup()

	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}
	logging.SetupWithLevel(logging.LevelFromString(cfg.LogLevel))

	db, err := database.New(cfg)
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	if err := database.RunMigrations(db, getEnv("MIGRATIONS_DIR", "migrations")); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	var opts []server.Option

	// Redis is optional; without it caching is in-process and rate limits are off.
	if redisClient, err := database.NewRedisClient(cfg); err != nil {
		slog.Warn("redis unavailable, continuing without it", "error", err)
	} else {
		opts = append(opts, server.WithRedis(redisClient))
	}

	s3Config, err := config.NewS3Config(context.Background(), cfg)
	switch {
	case errors.Is(err, config.ErrStorageDisabled):
		slog.Info("image uploads disabled: S3_BUCKET_NAME not set")
	case err != nil:
		slog.Warn("image storage unavailable", "error", err)
	default:
		opts = append(opts, server.WithImageStorage(s3Config))
	}

	srv := server.New(cfg, db, opts...)

	// Channel to listen for errors coming from the server
	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	case sig := <-quit:
		slog.Info("received signal", "signal", sig.String())
	}

	slog.Info("shutting down server")
	if err := srv.Shutdown(context.Background()); err != nil {
		slog.Error("server shutdown error", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
