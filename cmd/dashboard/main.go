package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	nethttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vpolunina/news-bias-dashboard/internal/cache"
	"github.com/vpolunina/news-bias-dashboard/internal/config"
	httpapi "github.com/vpolunina/news-bias-dashboard/internal/http"
	"github.com/vpolunina/news-bias-dashboard/internal/ingest"
	"github.com/vpolunina/news-bias-dashboard/internal/metrics"
	"github.com/vpolunina/news-bias-dashboard/internal/service"
	"github.com/vpolunina/news-bias-dashboard/internal/storage"
	"github.com/vpolunina/news-bias-dashboard/internal/storage/memory"
	"github.com/vpolunina/news-bias-dashboard/internal/storage/postgres"
	logctx "github.com/vpolunina/news-bias-dashboard/pkg/log"
)

// Константы для определения окружения.
const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

const serviceName = "news-bias-dashboard"

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "", "path to config file (overrides CONFIG_PATH env)")
	flag.Parse()

	cfg := config.MustLoad(configPath)

	log := setupLogger(cfg.Env)
	slog.SetDefault(log)
	log.Info("starting dashboard", "env", cfg.Env)

	metrics.Init(serviceName, cfg.Env)

	rootCtx, rootCancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer rootCancel()

	// Хранилище: Postgres при заданном db.url, иначе in-memory (dev/тесты).
	var store storage.Storage
	if cfg.DB.URL != "" {
		dbCtx, dbCancel := context.WithTimeout(rootCtx, 10*time.Second)
		pg, err := postgres.New(dbCtx, cfg.DB.URL)
		dbCancel()
		if err != nil {
			log.Error("postgres_connect_failed", slog.String("err", err.Error()))
			os.Exit(1)
		}
		store = pg
		log.Info("postgres_connected")
	} else {
		store = memory.New()
		log.Info("memory_storage_enabled")
	}
	defer store.Close()

	// Кэш ленты: Redis при заданном cache.url, иначе no-op.
	feedCache := cache.NewNoop()
	if cfg.Cache.Enabled() {
		rc, err := cache.NewRedisCache(cfg.Cache.URL, cfg.Cache.Prefix)
		if err != nil {
			log.Error("redis_connect_failed", slog.String("err", err.Error()))
			os.Exit(1)
		}
		feedCache = rc
		log.Info("redis_connected")
	}
	defer func() { _ = feedCache.Close() }()

	// Источник статей.
	var source ingest.Source
	switch cfg.Ingest.Provider {
	case "mediastack":
		httpClient := &nethttp.Client{Timeout: cfg.Ingest.Timeout}
		source = ingest.NewMediastack(httpClient, cfg.Ingest.BaseURL, cfg.Ingest.APIKey)
	default:
		source = ingest.NewSample(cfg.Ingest.SampleSeed)
	}

	svc := service.New(store, feedCache, source, *cfg)
	log.Info("service_initialized")

	seedCtx, seedCancel := context.WithTimeout(rootCtx, 10*time.Second)
	if err := svc.SeedBias(seedCtx); err != nil {
		seedCancel()
		log.Error("bias_seed_failed", slog.String("err", err.Error()))
		os.Exit(1)
	}
	seedCancel()
	log.Info("bias_sources_seeded")

	// Фоновый инжест.
	go svc.StartIngest(logctx.Into(rootCtx, log))

	// Отдельный листенер метрик.
	metricsMux := nethttp.NewServeMux()
	metricsMux.Handle("/metrics", promhttp.Handler())
	metricsSrv := &nethttp.Server{
		Addr:    cfg.Metrics.Addr(),
		Handler: metricsMux,
	}
	go func() {
		log.Info("metrics_listen_start", slog.String("addr", metricsSrv.Addr))
		if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, nethttp.ErrServerClosed) {
			log.Error("metrics_serve_failed", slog.String("err", err.Error()))
		}
	}()

	router := httpapi.NewRouter(svc, httpapi.Options{
		Logger:  log,
		Timeout: cfg.Timeouts.Service,
	})

	srv := &nethttp.Server{
		Addr:              cfg.HTTP.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	serveErrCh := make(chan error, 1)
	go func() {
		log.Info("http_listen_start", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, nethttp.ErrServerClosed) {
			serveErrCh <- err
		}
		close(serveErrCh)
	}()

	select {
	case <-rootCtx.Done():
		log.Info("shutdown_requested")
	case err := <-serveErrCh:
		if err != nil {
			log.Error("http_serve_failed", slog.String("err", err.Error()))
		}
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Warn("http_force_stop", slog.String("err", err.Error()))
		_ = srv.Close()
	}
	if err := metricsSrv.Shutdown(shutdownCtx); err != nil {
		_ = metricsSrv.Close()
	}

	log.Info("service_stopped")
}

// setupLogger настраивает slog по окружению.
func setupLogger(env string) *slog.Logger {
	var log *slog.Logger

	switch env {
	case envLocal:
		log = slog.New(
			slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}),
		)
	case envDev:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}),
		)
	case envProd:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}),
		)
	default:
		log = slog.New(
			slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}),
		)
	}

	return log
}
