package domain

import (
	"context"
	"time"
)

// CacheRepository defines the interface for caching operations
type CacheRepository interface {
	Get(ctx context.Context, key string) (interface{}, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}

// PageFetcher issues a single outbound request and returns the raw page.
// Failures wrap ErrTransportFailure or ErrHTTPStatusFailure.
type PageFetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}
