package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/pricelens/backend/internal/domain"
)

// ListingSource returns the product cards of a listing search
type ListingSource interface {
	SearchListings(ctx context.Context, query string) ([]domain.ProductSummary, error)
}

// ComparisonServiceConfig holds configuration for the comparison service
type ComparisonServiceConfig struct {
	CacheTTL        time.Duration
	RequestDeadline time.Duration
}

// ComparisonService serves listing searches and merged product comparisons
type ComparisonService struct {
	listings   ListingSource
	aggregator *Aggregator
	harvester  *ReviewHarvester
	cache      domain.CacheRepository
	cacheTTL   time.Duration
	deadline   time.Duration
}

// NewComparisonService creates a new comparison service with dependencies
func NewComparisonService(
	listings ListingSource,
	aggregator *Aggregator,
	harvester *ReviewHarvester,
	cache domain.CacheRepository,
	config ComparisonServiceConfig,
) *ComparisonService {
	cacheTTL := config.CacheTTL
	if cacheTTL == 0 {
		cacheTTL = time.Hour
	}

	return &ComparisonService{
		listings:   listings,
		aggregator: aggregator,
		harvester:  harvester,
		cache:      cache,
		cacheTTL:   cacheTTL,
		deadline:   config.RequestDeadline,
	}
}

// SearchProducts returns listing cards for a product name.
// Flow: check cache -> fetch listing page -> cache non-empty result -> return.
// A failed fetch yields an empty list, not an error.
func (s *ComparisonService) SearchProducts(ctx context.Context, request *domain.SearchRequest) ([]domain.ProductSummary, error) {
	if request == nil || strings.TrimSpace(request.ProductName) == "" {
		return nil, domain.ErrInvalidRequest
	}

	ctx, cancel := s.withDeadline(ctx)
	defer cancel()

	cacheKey := "search:" + normalizeForCacheKey(request.ProductName)
	if cached, err := s.getFromCache(ctx, cacheKey); err == nil {
		return cached, nil
	}

	products, err := s.listings.SearchListings(ctx, request.ProductName)
	if err != nil {
		return []domain.ProductSummary{}, nil
	}

	if len(products) > 0 && s.cache != nil {
		if err := s.cache.Set(ctx, cacheKey, products, s.cacheTTL); err != nil {
			log.Printf("[Search] Failed to cache %q: %v", cacheKey, err)
		}
	}

	return products, nil
}

// ProductInfo merges both sources for a product and attaches its reviews.
// Returns domain.ErrInvalidRequest, domain.ErrInvalidProductURL,
// domain.ErrProductDetailsNotFound or domain.ErrReviewHarvestFailed.
func (s *ComparisonService) ProductInfo(ctx context.Context, request *domain.ProductInfoRequest) (*domain.ComparisonResult, error) {
	if request == nil || strings.TrimSpace(request.Title) == "" || strings.TrimSpace(request.FlipkartLink) == "" {
		return nil, domain.ErrInvalidRequest
	}

	reviewURL, err := s.harvester.ReviewURL(request.FlipkartLink)
	if err != nil {
		return nil, err
	}

	ctx, cancel := s.withDeadline(ctx)
	defer cancel()

	result, err := s.aggregator.Aggregate(ctx, request.Title, request.FlipkartLink)
	if err != nil {
		return nil, err
	}

	reviews, err := s.harvester.Harvest(ctx, reviewURL, s.harvester.TargetCount())
	if err != nil {
		return nil, err
	}
	result.Reviews = reviews

	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		log.Printf("[Comparison] Request deadline reached for %q, returning partial data", request.Title)
	}

	return result, nil
}

func (s *ComparisonService) withDeadline(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.deadline <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.deadline)
}

// getFromCache retrieves listing cards from cache
func (s *ComparisonService) getFromCache(ctx context.Context, key string) ([]domain.ProductSummary, error) {
	if s.cache == nil {
		return nil, domain.ErrCacheMiss
	}

	value, err := s.cache.Get(ctx, key)
	if err != nil {
		return nil, err
	}

	switch v := value.(type) {
	case []domain.ProductSummary:
		return v, nil
	case []interface{}:
		// Values round-trip through JSON in the memory cache
		return mapToProductSummaries(v)
	default:
		return nil, domain.ErrCacheMiss
	}
}

// mapToProductSummaries converts decoded JSON back into listing cards
func mapToProductSummaries(items []interface{}) ([]domain.ProductSummary, error) {
	out := make([]domain.ProductSummary, 0, len(items))
	for i, item := range items {
		m, ok := item.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("%w: cached item %d has type %T", domain.ErrCacheMiss, i, item)
		}
		var p domain.ProductSummary
		if v, ok := m["title"].(string); ok {
			p.Title = v
		}
		if v, ok := m["image_url"].(string); ok {
			p.ImageURL = v
		}
		if v, ok := m["product_link"].(string); ok {
			p.ProductLink = v
		}
		out = append(out, p)
	}
	return out, nil
}
