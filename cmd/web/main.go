package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"sales-dashboard/internal/assets"
	"sales-dashboard/internal/config"
	"sales-dashboard/internal/middleware"
	"sales-dashboard/internal/observability"
	"sales-dashboard/internal/server"
	"sales-dashboard/internal/services"
)

const (
	version        = "1.0.0"
	csvLoadTimeout = 30 * time.Second
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg.Logger)
	slog.SetDefault(logger)

	logger.Info("starting application",
		"version", version,
		"config", cfg,
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("application failed", "error", err)
		os.Exit(1)
	}

	logger.Info("application stopped gracefully")
}

// run loads the data and builds the handler before tracing is set up, so a
// startup failure leaves no exporter to flush. From then on the flush hook
// runs on every exit path of the graceful server.
func run(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	dataset, err := loadDataset(ctx, cfg.Data.CSVFile, logger)
	if err != nil {
		return err
	}

	catalog := assets.NewCatalog(cfg.Data.AssetsDir, assets.DefaultModels)
	if _, err := catalog.URL(assets.LogoFile); err != nil {
		logger.Warn("logo not found, header will show alt text", "error", err)
	}

	analytics := services.NewAnalytics(dataset, catalog, cfg.Dashboard, logger)

	rateLimiter := middleware.NewRateLimiter(cfg.Security)
	go rateLimiter.Run(ctx)

	handler, err := newHandler(cfg, server.NewServer(analytics, catalog, logger), rateLimiter, logger)
	if err != nil {
		return err
	}

	shutdownTracing, err := observability.SetupTracing(ctx, cfg.Tracing)
	if err != nil {
		return fmt.Errorf("setup tracing: %w", err)
	}

	httpServer := &http.Server{
		Addr:         cfg.Address(),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	gracefulServer := server.NewGracefulServer(httpServer, logger, cfg.Server)

	gracefulServer.RegisterShutdownHook(func(ctx context.Context) error {
		logger.Info("flushing traces")
		return shutdownTracing(ctx)
	})

	logger.Info("starting graceful server")
	return gracefulServer.ListenAndServe(ctx)
}

// loadDataset reads the sales file once. A failure here is fatal: the
// dashboard has nothing to show without it.
func loadDataset(ctx context.Context, path string, logger *slog.Logger) (*services.Dataset, error) {
	ctx, cancel := context.WithTimeout(ctx, csvLoadTimeout)
	defer cancel()

	start := time.Now()
	dataset, err := services.LoadDataset(ctx, path, logger)
	if err != nil {
		return nil, fmt.Errorf("load sales data: %w", err)
	}

	logger.Info("CSV data loaded successfully",
		"records", dataset.Len(),
		"duration", time.Since(start),
	)
	return dataset, nil
}

func newHandler(cfg *config.Config, srv http.Handler, rateLimiter *middleware.RateLimiter, logger *slog.Logger) (http.Handler, error) {
	compression, err := middleware.Compression()
	if err != nil {
		return nil, err
	}

	middlewareChain := middleware.Chain(
		middleware.Recovery(logger),
		middleware.RequestID(),
		middleware.Logger(logger),
		middleware.Tracing(),
		middleware.SecurityHeaders(),
		middleware.CORS(cfg.Security),
		middleware.TrustedProxy(cfg.Security),
		middleware.RateLimit(rateLimiter, logger),
		compression,
	)

	return middlewareChain(srv), nil
}
