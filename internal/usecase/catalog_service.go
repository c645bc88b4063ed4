package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/cableworks/storefront/internal/domain"
	"github.com/cableworks/storefront/internal/observability"
)

// CatalogServiceConfig holds configuration for the catalog service
type CatalogServiceConfig struct {
	CacheTTL time.Duration
	Search   SearchConfig
}

// CatalogService reads products from the catalog source with caching
type CatalogService struct {
	cache      domain.CacheRepository
	source     domain.CatalogSource
	matcher    *ProductMatcher
	queries    *QueryPreprocessor
	cacheTTL   time.Duration
	generation atomic.Uint64
	logger     *zap.Logger
	metrics    *observability.Metrics
}

// NewCatalogService creates a new catalog service with dependencies
func NewCatalogService(
	cache domain.CacheRepository,
	source domain.CatalogSource,
	config CatalogServiceConfig,
	logger *zap.Logger,
	metrics *observability.Metrics,
) *CatalogService {
	cacheTTL := config.CacheTTL
	if cacheTTL == 0 {
		cacheTTL = 15 * time.Minute
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if metrics == nil {
		metrics = observability.NewMetrics()
	}

	return &CatalogService{
		cache:    cache,
		source:   source,
		matcher:  NewProductMatcher(config.Search),
		queries:  NewQueryPreprocessor(logger),
		cacheTTL: cacheTTL,
		logger:   logger,
		metrics:  metrics,
	}
}

// ListProducts returns the whole catalog in catalog order.
// Flow: check cache -> read source -> cache -> return
func (s *CatalogService) ListProducts(ctx context.Context) ([]domain.Product, error) {
	key := s.listKey()

	var products []domain.Product
	if s.getFromCache(ctx, key, &products) {
		return products, nil
	}

	products, err := s.source.ListProducts(ctx)
	if err != nil {
		s.metrics.CatalogRequests.WithLabelValues("list", "error").Inc()
		return nil, err
	}
	s.metrics.CatalogRequests.WithLabelValues("list", "ok").Inc()

	s.setInCache(ctx, key, products)
	return products, nil
}

// GetProduct returns one product by ID
func (s *CatalogService) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, domain.ErrInvalidRequest
	}

	key := s.productKey(id)
	var product domain.Product
	if s.getFromCache(ctx, key, &product) {
		return &product, nil
	}

	found, err := s.source.GetProduct(ctx, id)
	if err != nil {
		status := "error"
		if errors.Is(err, domain.ErrProductNotFound) {
			status = "not_found"
		}
		s.metrics.CatalogRequests.WithLabelValues("get", status).Inc()
		return nil, err
	}
	s.metrics.CatalogRequests.WithLabelValues("get", "ok").Inc()

	s.setInCache(ctx, key, found)
	return found, nil
}

// GetProducts returns the products for ids in the given order, skipping unknown IDs
func (s *CatalogService) GetProducts(ctx context.Context, ids []string) ([]domain.Product, error) {
	products := make([]domain.Product, 0, len(ids))
	for _, id := range ids {
		p, err := s.GetProduct(ctx, id)
		if errors.Is(err, domain.ErrProductNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		products = append(products, *p)
	}
	return products, nil
}

// Search ranks the catalog against query. A limit <= 0 returns every match.
func (s *CatalogService) Search(ctx context.Context, query string, limit int) ([]domain.Product, error) {
	products, err := s.ListProducts(ctx)
	if err != nil {
		return nil, err
	}

	query = s.queries.PreprocessQuery(query)
	ranked := s.matcher.Rank(query, products)
	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}

	s.logger.Debug("catalog search",
		zap.String("query", query),
		zap.Int("matches", len(ranked)))
	return ranked, nil
}

// Invalidate makes every cached catalog entry stale.
// Keys carry a generation number, so bumping it orphans old entries until their TTL.
func (s *CatalogService) Invalidate() {
	gen := s.generation.Add(1)
	s.logger.Info("catalog cache invalidated", zap.Uint64("generation", gen))
}

// listKey format: "catalog:{generation}:products"
func (s *CatalogService) listKey() string {
	return fmt.Sprintf("catalog:%d:products", s.generation.Load())
}

// productKey format: "catalog:{generation}:product:{id}"
func (s *CatalogService) productKey(id string) string {
	return fmt.Sprintf("catalog:%d:product:%s", s.generation.Load(), id)
}

// getFromCache decodes a cached value into dest. Cache failures count as misses.
func (s *CatalogService) getFromCache(ctx context.Context, key string, dest interface{}) bool {
	raw, err := s.cache.Get(ctx, key)
	if err != nil {
		result := "miss"
		if !errors.Is(err, domain.ErrCacheMiss) {
			result = "error"
			s.logger.Warn("catalog cache read failed", zap.String("key", key), zap.Error(err))
		}
		s.metrics.CatalogCache.WithLabelValues(result).Inc()
		return false
	}

	if err := json.Unmarshal(raw, dest); err != nil {
		s.logger.Warn("catalog cache entry corrupt", zap.String("key", key), zap.Error(err))
		s.metrics.CatalogCache.WithLabelValues("error").Inc()
		return false
	}

	s.metrics.CatalogCache.WithLabelValues("hit").Inc()
	return true
}

// setInCache stores a value; failures are logged but never fail the read
func (s *CatalogService) setInCache(ctx context.Context, key string, value interface{}) {
	raw, err := json.Marshal(value)
	if err != nil {
		s.logger.Warn("catalog cache encode failed", zap.String("key", key), zap.Error(err))
		return
	}
	if err := s.cache.Set(ctx, key, raw, s.cacheTTL); err != nil {
		s.logger.Warn("catalog cache write failed", zap.String("key", key), zap.Error(err))
	}
}
