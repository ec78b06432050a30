package usecase

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/pricelens/backend/internal/domain"
	"github.com/pricelens/backend/internal/infrastructure/extract"
)

// AmazonSourceConfig holds configuration for the secondary source client
type AmazonSourceConfig struct {
	BaseURL string
	Retry   RetryPolicy
	Schema  extract.AmazonSearchSchema
}

// AmazonSource looks a product up on the secondary marketplace by search
type AmazonSource struct {
	fetcher domain.PageFetcher
	baseURL string
	retry   RetryPolicy
	schema  extract.AmazonSearchSchema
}

// NewAmazonSource creates a secondary source client
func NewAmazonSource(fetcher domain.PageFetcher, config AmazonSourceConfig) *AmazonSource {
	return &AmazonSource{
		fetcher: fetcher,
		baseURL: strings.TrimRight(config.BaseURL, "/"),
		retry:   config.Retry,
		schema:  config.Schema,
	}
}

// SearchURL builds the marketplace search address for query
func (s *AmazonSource) SearchURL(query string) string {
	return fmt.Sprintf("%s/s?k=%s&ref=nb_sb_noss", s.baseURL, url.QueryEscape(query))
}

// Details searches for query and extracts the first hit with bounded retries
func (s *AmazonSource) Details(ctx context.Context, query string) Result[*domain.AmazonDetail] {
	searchURL := s.SearchURL(query)
	return Retry(ctx, domain.PlatformAmazon, s.retry, func(ctx context.Context) (*domain.AmazonDetail, error) {
		content, err := s.fetcher.Fetch(ctx, searchURL)
		if err != nil {
			return nil, err
		}
		return extract.ExtractAmazonDetail(content, s.schema, s.baseURL)
	})
}
