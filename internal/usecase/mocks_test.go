package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/pricelens/backend/internal/domain"
)

// MockPageFetcher is a mock implementation of domain.PageFetcher
type MockPageFetcher struct {
	mu    sync.Mutex
	pages map[string][]byte
	errs  map[string][]error // consumed in order, then pages[url] is served
	calls []string
}

func NewMockPageFetcher() *MockPageFetcher {
	return &MockPageFetcher{
		pages: make(map[string][]byte),
		errs:  make(map[string][]error),
	}
}

func (m *MockPageFetcher) Serve(url, html string) *MockPageFetcher {
	m.pages[url] = []byte(html)
	return m
}

func (m *MockPageFetcher) FailTimes(url string, err error, times int) *MockPageFetcher {
	for i := 0; i < times; i++ {
		m.errs[url] = append(m.errs[url], err)
	}
	return m
}

func (m *MockPageFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls = append(m.calls, url)
	if errs := m.errs[url]; len(errs) > 0 {
		m.errs[url] = errs[1:]
		return nil, errs[0]
	}
	if page, ok := m.pages[url]; ok {
		return page, nil
	}
	return nil, fmt.Errorf("%w: status 404 from %s", domain.ErrHTTPStatusFailure, url)
}

func (m *MockPageFetcher) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.calls...)
}

func (m *MockPageFetcher) CallCount(url string) int {
	n := 0
	for _, c := range m.Calls() {
		if c == url {
			n++
		}
	}
	return n
}

// MockCacheRepository is a mock implementation of domain.CacheRepository
type MockCacheRepository struct {
	data      map[string]interface{}
	getError  error
	setError  error
	getCalled bool
	setCalled bool
}

func NewMockCacheRepository() *MockCacheRepository {
	return &MockCacheRepository{
		data: make(map[string]interface{}),
	}
}

func (m *MockCacheRepository) Get(ctx context.Context, key string) (interface{}, error) {
	m.getCalled = true
	if m.getError != nil {
		return nil, m.getError
	}
	if value, ok := m.data[key]; ok {
		return value, nil
	}
	return nil, domain.ErrCacheMiss
}

func (m *MockCacheRepository) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	m.setCalled = true
	if m.setError != nil {
		return m.setError
	}
	m.data[key] = value
	return nil
}

func (m *MockCacheRepository) Delete(ctx context.Context, key string) error {
	delete(m.data, key)
	return nil
}

func (m *MockCacheRepository) Exists(ctx context.Context, key string) (bool, error) {
	_, ok := m.data[key]
	return ok, nil
}

const (
	testFlipkartBase = "https://fk.test"
	testAmazonBase   = "https://amz.test"
	testDetailLink   = "https://fk.test/acme-phone-x/p/itm123abc?pid=MOBABC"
	testReviewURL    = "https://fk.test/itm123abc/product-reviews/itm123abc"
)

const flipkartDetailHTML = `<html><body>
<span class="B_NuCI">Acme Phone X</span>
<div class="_30jeq3 _16Jk6d">₹1,23,456</div>
<img class="_396cs4 _3exPp9" src="https://img.test/1.jpg">
<div class="_2418kt">specs</div>
<div class="_1mXcCf RmoJUa">desc</div>
<ul><li class="_16eBzU col"><span>Bank Offer</span><span>10% off</span></li></ul>
<ul><li class="_1DuK2S">UPI</li></ul>
<ul><li class="_3V2wfe _2Wpvfz">Black</li></ul>
<div class="_3XINqE">Delivery by Monday?</div>
<div class="_3LWZlK">4.4</div>
<span class="_2_R_DZ">2,000 Ratings</span>
</body></html>`

const amazonSearchHTML = `<html><body>
<a class="a-link-normal s-no-outline" href="/Acme-Phone/dp/B0ABC"></a>
<span class="a-size-medium a-color-base a-text-normal">Acme Phone X</span>
<span class="a-price-whole">1,19,900.</span>
</body></html>`

const flipkartSearchHTML = `<html><body>
<div class="_1AtVbE"><a href="/acme-phone-x/p/itm123abc?pid=MOBABC"><img src="https://img.test/x.jpg"><div class="_4rR01T">Acme Phone X</div></a></div>
<div class="_1AtVbE"><div class="_4rR01T">No link</div></div>
</body></html>`

const brokenPageHTML = `<html><body><p>markup changed</p></body></html>`
