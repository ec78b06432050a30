package fetcher

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/pricelens/backend/internal/domain"
	"golang.org/x/time/rate"
)

// maxBodyBytes caps how much of a page is read into memory
const maxBodyBytes = 8 << 20

// Options configures the outbound identity and pacing of a Client
type Options struct {
	UserAgent         string
	AcceptLanguage    string
	Timeout           time.Duration
	RequestsPerSecond float64
	Burst             int
}

// Client fetches raw HTML pages with a fixed identity header set
type Client struct {
	httpClient     *http.Client
	userAgent      string
	acceptLanguage string
	rateLimiter    *rate.Limiter
	debug          bool
}

// NewClient creates a new page fetcher
func NewClient(opts Options) *Client {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	burst := opts.Burst
	if burst < 1 {
		burst = 1
	}
	limit := rate.Inf
	if opts.RequestsPerSecond > 0 {
		limit = rate.Limit(opts.RequestsPerSecond)
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		userAgent:      opts.UserAgent,
		acceptLanguage: opts.AcceptLanguage,
		rateLimiter:    rate.NewLimiter(limit, burst),
	}
}

// SetDebug toggles verbose request logging
func (c *Client) SetDebug(debug bool) {
	c.debug = debug
}

func (c *Client) debugLog(format string, args ...interface{}) {
	if c.debug {
		log.Printf("[Fetcher] "+format, args...)
	}
}

// doRequest executes an HTTP GET request with the identity headers
func (c *Client) doRequest(ctx context.Context, reqURL string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", domain.ErrTransportFailure, err)
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	if c.acceptLanguage != "" {
		req.Header.Set("Accept-Language", c.acceptLanguage)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrTransportFailure, err)
	}

	return resp, nil
}

// Fetch issues exactly one GET and returns the page body.
// Transport errors wrap domain.ErrTransportFailure, non-2xx statuses wrap domain.ErrHTTPStatusFailure.
func (c *Client) Fetch(ctx context.Context, reqURL string) ([]byte, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: rate limiter: %v", domain.ErrTransportFailure, err)
	}

	c.debugLog("GET %s", reqURL)
	start := time.Now()

	resp, err := c.doRequest(ctx, reqURL)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: status %d from %s", domain.ErrHTTPStatusFailure, resp.StatusCode, reqURL)
	}

	body, err := readLimitedBody(resp.Body, maxBodyBytes)
	if err != nil {
		return nil, fmt.Errorf("%w: reading body: %v", domain.ErrTransportFailure, err)
	}

	c.debugLog("GET %s -> %d (%d bytes, %s)", reqURL, resp.StatusCode, len(body), time.Since(start))
	return body, nil
}

// readLimitedBody reads at most limit bytes from r
func readLimitedBody(r io.Reader, limit int64) ([]byte, error) {
	return io.ReadAll(io.LimitReader(r, limit))
}
