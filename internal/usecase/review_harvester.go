package usecase

import (
	"context"
	"fmt"
	"log"
	"regexp"
	"strings"

	"github.com/pricelens/backend/internal/domain"
	"github.com/pricelens/backend/internal/infrastructure/extract"
)

// PageErrorPolicy decides what a failed page fetch does to the harvest
type PageErrorPolicy string

const (
	// PageErrorPartial stops the walk and returns what was collected
	PageErrorPartial PageErrorPolicy = "partial"
	// PageErrorFail fails the whole harvest
	PageErrorFail PageErrorPolicy = "fail"
)

// ReconcilePolicy decides how ragged field lists are paired into records
type ReconcilePolicy string

const (
	// ReconcileTruncate truncates the accumulated lists to their common length once, after the walk
	ReconcileTruncate ReconcilePolicy = "truncate"
	// ReconcilePerPage truncates each page's lists before accumulating, keeping later pages aligned
	ReconcilePerPage ReconcilePolicy = "per_page"
)

const (
	defaultTargetCount = 100
	defaultMaxPages    = 50
)

// productIDPattern captures the segment between /p/ and the next ?
var productIDPattern = regexp.MustCompile(`/p/(.*?)\?`)

// ReviewHarvesterConfig holds configuration for the review harvester
type ReviewHarvesterConfig struct {
	BaseURL     string
	TargetCount int
	MaxPages    int
	OnPageError PageErrorPolicy
	Reconcile   ReconcilePolicy
	Schema      extract.ReviewSchema
}

// ReviewHarvester walks the paginated reviews listing of a product
type ReviewHarvester struct {
	fetcher     domain.PageFetcher
	baseURL     string
	targetCount int
	maxPages    int
	onPageError PageErrorPolicy
	reconcile   ReconcilePolicy
	schema      extract.ReviewSchema
}

// NewReviewHarvester creates a review harvester
func NewReviewHarvester(fetcher domain.PageFetcher, config ReviewHarvesterConfig) *ReviewHarvester {
	h := &ReviewHarvester{
		fetcher:     fetcher,
		baseURL:     strings.TrimRight(config.BaseURL, "/"),
		targetCount: config.TargetCount,
		maxPages:    config.MaxPages,
		onPageError: config.OnPageError,
		reconcile:   config.Reconcile,
		schema:      config.Schema,
	}
	if h.targetCount < 1 {
		h.targetCount = defaultTargetCount
	}
	if h.maxPages < 1 {
		h.maxPages = defaultMaxPages
	}
	if h.onPageError == "" {
		h.onPageError = PageErrorPartial
	}
	if h.reconcile == "" {
		h.reconcile = ReconcileTruncate
	}
	return h
}

// TargetCount returns the configured number of reviews to collect
func (h *ReviewHarvester) TargetCount() int {
	return h.targetCount
}

// ReviewURL derives the reviews listing address from a detail page address.
// The product identifier appears twice in the listing address.
func (h *ReviewHarvester) ReviewURL(detailLink string) (string, error) {
	match := productIDPattern.FindStringSubmatch(detailLink)
	if match == nil || match[1] == "" {
		return "", fmt.Errorf("%w: %q", domain.ErrInvalidProductURL, detailLink)
	}
	productID := match[1]
	return fmt.Sprintf("%s/%s/product-reviews/%s", h.baseURL, productID, productID), nil
}

// reviewColumns accumulates the four parallel field lists
type reviewColumns struct {
	names    []string
	titles   []string
	ratings  []string
	comments []string
}

func (c *reviewColumns) add(page *extract.ReviewPage, perPage bool) {
	names, titles, ratings, comments := page.Names, page.Titles, page.Ratings, page.Comments
	if perPage {
		n := minLen(names, titles, ratings, comments)
		names, titles, ratings, comments = names[:n], titles[:n], ratings[:n], comments[:n]
	}
	c.names = append(c.names, names...)
	c.titles = append(c.titles, titles...)
	c.ratings = append(c.ratings, ratings...)
	c.comments = append(c.comments, comments...)
}

// records truncates every list to the shortest one and pairs them by index
func (c *reviewColumns) records() []domain.ReviewRecord {
	n := minLen(c.names, c.titles, c.ratings, c.comments)
	out := make([]domain.ReviewRecord, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, domain.ReviewRecord{
			User:        c.names[i],
			ReviewTitle: c.titles[i],
			Rating:      c.ratings[i],
			Comment:     c.comments[i],
		})
	}
	return out
}

func minLen(lists ...[]string) int {
	n := len(lists[0])
	for _, l := range lists[1:] {
		if len(l) < n {
			n = len(l)
		}
	}
	return n
}

func maxLen(lists ...[]string) int {
	n := 0
	for _, l := range lists {
		if len(l) > n {
			n = len(l)
		}
	}
	return n
}

// Harvest walks review pages from startURL until targetCount names have been
// seen or no next page exists. The count is checked per page, so the result
// may exceed targetCount by up to one page. targetCount <= 0 uses the
// configured target.
func (h *ReviewHarvester) Harvest(ctx context.Context, startURL string, targetCount int) ([]domain.ReviewRecord, error) {
	if targetCount <= 0 {
		targetCount = h.targetCount
	}

	var cols reviewColumns
	collected := 0
	visited := make(map[string]bool)
	pageURL := startURL

	for page := 1; ; page++ {
		if page > h.maxPages {
			log.Printf("[Reviews] Stopping at page limit %d with %d reviews", h.maxPages, collected)
			break
		}
		visited[pageURL] = true

		reviewPage, err := h.fetchPage(ctx, pageURL)
		if err != nil {
			if h.onPageError == PageErrorFail {
				return nil, fmt.Errorf("%w: page %d (%s): %v", domain.ErrReviewHarvestFailed, page, pageURL, err)
			}
			log.Printf("[Reviews] Page %d failed (%s), keeping %d reviews: %v",
				page, domain.FailureKind(err), collected, err)
			break
		}

		cols.add(reviewPage, h.reconcile == ReconcilePerPage)
		collected += len(reviewPage.Names)

		if collected >= targetCount || !reviewPage.HasNext() {
			break
		}

		next, err := extract.ResolveURL(h.baseURL, reviewPage.NextHref)
		if err != nil {
			log.Printf("[Reviews] Unusable next link on page %d: %v", page, err)
			break
		}
		if visited[next] {
			log.Printf("[Reviews] Next link on page %d loops back to %s", page, next)
			break
		}
		pageURL = next
	}

	records := cols.records()
	if dropped := maxLen(cols.names, cols.titles, cols.ratings, cols.comments) - len(records); dropped > 0 {
		log.Printf("[Reviews] Dropped %d unaligned trailing entries", dropped)
	}
	log.Printf("[Reviews] Collected %d reviews from %s", len(records), startURL)
	return records, nil
}

// HarvestFromDetail derives the reviews address from a detail page and harvests it
func (h *ReviewHarvester) HarvestFromDetail(ctx context.Context, detailLink string) ([]domain.ReviewRecord, error) {
	reviewURL, err := h.ReviewURL(detailLink)
	if err != nil {
		return nil, err
	}
	return h.Harvest(ctx, reviewURL, h.targetCount)
}

func (h *ReviewHarvester) fetchPage(ctx context.Context, pageURL string) (*extract.ReviewPage, error) {
	content, err := h.fetcher.Fetch(ctx, pageURL)
	if err != nil {
		return nil, err
	}
	return extract.ExtractReviewPage(content, h.schema)
}
