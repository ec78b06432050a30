package usecase

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"strings"

	"github.com/pricelens/backend/internal/domain"
	"github.com/pricelens/backend/internal/infrastructure/extract"
)

// FlipkartSourceConfig holds configuration for the primary source client
type FlipkartSourceConfig struct {
	BaseURL       string
	Retry         RetryPolicy
	DetailSchema  extract.FlipkartDetailSchema
	ListingSchema extract.ListingSchema
}

// FlipkartSource reads listings and product pages from the primary listing site
type FlipkartSource struct {
	fetcher       domain.PageFetcher
	baseURL       string
	retry         RetryPolicy
	detailSchema  extract.FlipkartDetailSchema
	listingSchema extract.ListingSchema
}

// NewFlipkartSource creates a primary source client
func NewFlipkartSource(fetcher domain.PageFetcher, config FlipkartSourceConfig) *FlipkartSource {
	return &FlipkartSource{
		fetcher:       fetcher,
		baseURL:       strings.TrimRight(config.BaseURL, "/"),
		retry:         config.Retry,
		detailSchema:  config.DetailSchema,
		listingSchema: config.ListingSchema,
	}
}

// SearchURL builds the listing search address for query
func (s *FlipkartSource) SearchURL(query string) string {
	return fmt.Sprintf("%s/search?q=%s", s.baseURL, url.QueryEscape(query))
}

// SearchListings fetches one search page without retrying. Cards missing a
// sub-field are skipped by the extractor.
func (s *FlipkartSource) SearchListings(ctx context.Context, query string) ([]domain.ProductSummary, error) {
	content, err := s.fetcher.Fetch(ctx, s.SearchURL(query))
	if err != nil {
		log.Printf("[Flipkart] Search %q failed (%s): %v", query, domain.FailureKind(err), err)
		return nil, err
	}

	products, err := extract.ExtractFlipkartListings(content, s.listingSchema, s.baseURL)
	if err != nil {
		log.Printf("[Flipkart] Search %q extraction failed: %v", query, err)
		return nil, err
	}

	log.Printf("[Flipkart] Found %d listings for query: %q", len(products), query)
	return products, nil
}

// Details fetches and extracts a product page with bounded retries. An
// empty Result means every attempt failed.
func (s *FlipkartSource) Details(ctx context.Context, link string) Result[*domain.FlipkartDetail] {
	return Retry(ctx, domain.PlatformFlipkart, s.retry, func(ctx context.Context) (*domain.FlipkartDetail, error) {
		content, err := s.fetcher.Fetch(ctx, link)
		if err != nil {
			return nil, err
		}
		return extract.ExtractFlipkartDetail(content, s.detailSchema, link)
	})
}
