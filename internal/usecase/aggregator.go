package usecase

import (
	"context"
	"fmt"
	"log"

	"github.com/pricelens/backend/internal/domain"
	"golang.org/x/sync/errgroup"
)

// PrimarySource returns product details for a detail page address
type PrimarySource interface {
	Details(ctx context.Context, link string) Result[*domain.FlipkartDetail]
}

// SecondarySource returns product details found by searching for a title
type SecondarySource interface {
	Details(ctx context.Context, query string) Result[*domain.AmazonDetail]
}

// Aggregator merges both sources with a best-effort policy
type Aggregator struct {
	primary      PrimarySource
	secondary    SecondarySource
	preprocessor *QueryPreprocessor
	parallel     bool
}

// NewAggregator creates an aggregator. With parallel set, the two lookups run concurrently.
func NewAggregator(primary PrimarySource, secondary SecondarySource, preprocessor *QueryPreprocessor, parallel bool) *Aggregator {
	if preprocessor == nil {
		preprocessor = NewQueryPreprocessor(false)
	}
	return &Aggregator{
		primary:      primary,
		secondary:    secondary,
		preprocessor: preprocessor,
		parallel:     parallel,
	}
}

// Aggregate looks the product up on both sources. Failure of one side never
// aborts the other; a side with no record is left nil. When both sides are
// empty domain.ErrProductDetailsNotFound is returned instead of a result,
// unless ctx ended first, in which case its error is returned.
func (a *Aggregator) Aggregate(ctx context.Context, title, detailLink string) (*domain.ComparisonResult, error) {
	query := a.preprocessor.PreprocessQuery(title)

	var (
		primary   Result[*domain.FlipkartDetail]
		secondary Result[*domain.AmazonDetail]
	)

	if a.parallel {
		var g errgroup.Group
		g.Go(func() error {
			primary = a.primary.Details(ctx, detailLink)
			return nil
		})
		g.Go(func() error {
			secondary = a.secondary.Details(ctx, query)
			return nil
		})
		_ = g.Wait()
	} else {
		primary = a.primary.Details(ctx, detailLink)
		secondary = a.secondary.Details(ctx, query)
	}

	result := &domain.ComparisonResult{Title: title}
	if !primary.Empty() && primary.Value != nil {
		result.FlipkartDetails = primary.Value
	}
	if !secondary.Empty() && secondary.Value != nil {
		result.AmazonDetails = secondary.Value
	}

	switch {
	case result.FlipkartDetails != nil && result.AmazonDetails != nil:
		log.Printf("[Aggregator] %q found on both sources", title)
	case result.FlipkartDetails != nil:
		log.Printf("[Aggregator] %q found on %s only (%s: %s)", title,
			domain.PlatformFlipkart, domain.PlatformAmazon, domain.FailureKind(secondary.LastErr))
	case result.AmazonDetails != nil:
		log.Printf("[Aggregator] %q found on %s only (%s: %s)", title,
			domain.PlatformAmazon, domain.PlatformFlipkart, domain.FailureKind(primary.LastErr))
	default:
		if err := ctx.Err(); err != nil {
			log.Printf("[Aggregator] %q abandoned: %v", title, err)
			return nil, fmt.Errorf("aggregating %q: %w", title, err)
		}
		log.Printf("[Aggregator] %q not found on either source", title)
		return nil, domain.ErrProductDetailsNotFound
	}

	return result, nil
}
