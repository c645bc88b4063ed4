package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/cableworks/storefront/config"
	httpDelivery "github.com/cableworks/storefront/internal/delivery/http"
	"github.com/cableworks/storefront/internal/domain"
	"github.com/cableworks/storefront/internal/infrastructure/cache"
	"github.com/cableworks/storefront/internal/infrastructure/cart"
	"github.com/cableworks/storefront/internal/infrastructure/catalog"
	"github.com/cableworks/storefront/internal/observability"
	"github.com/cableworks/storefront/internal/usecase"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}
}

func runServe(parent context.Context) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := observability.NewLogger(observability.LogConfig{Level: cfg.Log.Level, Format: cfg.Log.Format})
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer logger.Sync() //nolint:errcheck

	logger.Info("starting storefront backend",
		zap.String("version", httpDelivery.Version),
		zap.String("environment", cfg.Server.Environment),
		zap.String("port", cfg.Server.Port),
		zap.String("catalog", cfg.Catalog.Source),
		zap.String("cache", cfg.Cache.Type))

	metrics := observability.NewMetrics()

	// Initialize infrastructure dependencies
	cacheRepo, closeCache, err := buildCache(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeCache()

	source, fileSource, err := buildCatalogSource(cfg, logger)
	if err != nil {
		return err
	}

	// Initialize usecase layer
	catalogService := usecase.NewCatalogService(cacheRepo, source,
		usecase.CatalogServiceConfig{
			CacheTTL: cfg.Cache.TTL,
			Search:   usecase.SearchConfig{EnableFuzzyMatching: cfg.Comparison.FuzzySearch},
		},
		logger.Named("catalog"), metrics)

	sessions := usecase.NewSessionStore(usecase.SessionStoreConfig{
		IdleTimeout: cfg.Comparison.SessionIdleTimeout,
	}, logger.Named("sessions"))
	defer sessions.Close()

	comparisonService := usecase.NewComparisonService(sessions, catalogService, cart.NewMemoryCart(),
		usecase.ComparisonServiceConfig{
			QuickListLimit: cfg.Comparison.QuickListLimit,
			FullListLimit:  cfg.Comparison.FullListLimit,
			PickerLimit:    cfg.Comparison.PickerLimit,
		},
		logger.Named("comparison"), metrics)

	// Create HTTP handler and router
	handler := httpDelivery.NewHandler(catalogService, comparisonService)
	router := httpDelivery.SetupRouter(cfg, handler, logger.Named("http"), metrics)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("server listening", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		logger.Info("shutting down")
		return server.Shutdown(shutdownCtx)
	})
	if fileSource != nil && cfg.Catalog.Watch {
		g.Go(func() error {
			return fileSource.Watch(gctx, catalogService.Invalidate)
		})
	}

	return g.Wait()
}

// buildCache returns the configured cache and a function releasing it
func buildCache(ctx context.Context, cfg *config.Config) (domain.CacheRepository, func(), error) {
	if cfg.Cache.Type == "redis" {
		redisCache, client, err := cache.NewRedisCache(ctx, cfg.Cache.RedisURL, "")
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect cache: %w", err)
		}
		return redisCache, func() { client.Close() }, nil
	}

	memoryCache := cache.NewMemoryCache(0)
	return memoryCache, func() { memoryCache.Close() }, nil
}

// buildCatalogSource returns the configured catalog; fileSource is non-nil for file catalogs
func buildCatalogSource(cfg *config.Config, logger *zap.Logger) (domain.CatalogSource, *catalog.FileSource, error) {
	if cfg.Catalog.Source == "remote" {
		client := catalog.NewClient(catalog.ClientConfig{
			BaseURL:           cfg.Catalog.BaseURL,
			APIKey:            cfg.Catalog.APIKey,
			Timeout:           cfg.Catalog.Timeout,
			RequestsPerSecond: cfg.Catalog.RequestsPerSecond,
			Burst:             cfg.Catalog.Burst,
		}, logger)
		return client, nil, nil
	}

	fileSource, err := catalog.NewFileSource(cfg.Catalog.FilePath, logger.Named("catalog-file"))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load catalog: %w", err)
	}
	return fileSource, fileSource, nil
}
