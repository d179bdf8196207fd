// Command reportd serves the sample report in every output and renders
// posted report configurations over HTTP.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/bjaus/report"
	"github.com/bjaus/report/internal/config"
	"github.com/bjaus/report/internal/logging"
	"github.com/bjaus/report/internal/server"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

func main() {
	// Overload lets a local .env win over the inherited environment.
	if err := godotenv.Overload(); err != nil {
		slog.Info("no .env file found, using environment variables")
	} else {
		slog.Info("loaded .env file")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := logging.Setup(os.Stdout, cfg.Logging.Level, cfg.Logging.Format).
		With("instance_id", uuid.NewString())
	slog.SetDefault(logger)

	slog.Info("configuration loaded",
		"addr", cfg.Server.Addr(),
		"request_timeout", cfg.Server.RequestTimeout,
		"max_body", cfg.Report.MaxBody,
		"outputs", len(report.Outputs()),
	)

	srv := server.New(cfg)

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		slog.Info("shutting down...")
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			slog.Error("shutdown error", "error", err)
		}
	}()

	slog.Info("server starting", "addr", cfg.Server.Addr())
	if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}
