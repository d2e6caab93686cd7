package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tubefetch/tubefetch/internal/api"
	"github.com/tubefetch/tubefetch/internal/config"
	apperrors "github.com/tubefetch/tubefetch/internal/errors"
	"github.com/tubefetch/tubefetch/internal/health"
	"github.com/tubefetch/tubefetch/internal/job"
	"github.com/tubefetch/tubefetch/internal/logger"
	"github.com/tubefetch/tubefetch/internal/metrics"
	"github.com/tubefetch/tubefetch/internal/websocket"
	"github.com/tubefetch/tubefetch/internal/ytdlp"
)

const version = "1.0.0"

func main() {
	cfg := config.Load()

	logger.SetDefault(logger.New(os.Stdout, logger.ParseLevel(cfg.LogLevel), "server"))
	log := logger.Default()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := os.MkdirAll(cfg.DownloadsDir, 0o755); err != nil {
		log.Error(ctx, "failed to create downloads directory", err, map[string]interface{}{
			"dir": cfg.DownloadsDir,
		})
		os.Exit(1)
	}

	fetcher, err := ytdlp.New(cfg.YtdlpPath)
	if err != nil {
		log.Error(ctx, "yt-dlp binary not found", err, map[string]interface{}{
			"path": cfg.YtdlpPath,
		})
		os.Exit(1)
	}

	hub := websocket.NewHub()
	go hub.Run(ctx)

	manager := job.NewManager(fetcher, &job.ManagerConfig{
		WorkRoot:   cfg.DownloadsDir,
		JobTimeout: cfg.JobTimeout,
		Notifier:   websocket.NewProgressTracker(hub),
	})

	sweeper := job.NewSweeper(manager.Store(), cfg.SweepInterval, cfg.RetentionTTL, nil)
	go sweeper.Run(ctx)

	checker := health.NewChecker(&health.CheckerConfig{
		YtdlpPath:    cfg.YtdlpPath,
		DownloadsDir: cfg.DownloadsDir,
		Version:      version,
	})

	router := api.NewRouter(&api.Deps{
		Jobs:    api.NewJobHandlers(manager),
		Analyze: api.NewAnalyzeHandlers(fetcher),
		WS:      websocket.NewHandler(hub),
		Health:  health.NewHandler(checker),
		Metrics: metrics.Default(),
	})

	handler := apperrors.RequestIDMiddleware(
		logger.LoggingMiddleware(
			metrics.MetricsMiddleware(metrics.Default())(router),
		),
	)

	server := &http.Server{
		Addr:              cfg.ServerAddr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Error(context.Background(), "server shutdown error", err)
		}
	}()

	log.Info(ctx, "server starting", map[string]interface{}{
		"addr":          cfg.ServerAddr,
		"downloads_dir": cfg.DownloadsDir,
		"retention_ttl": cfg.RetentionTTL.String(),
		"job_timeout":   cfg.JobTimeout.String(),
	})

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error(context.Background(), "server failed", err)
		os.Exit(1)
	}

	log.Info(context.Background(), "server stopped")
}
