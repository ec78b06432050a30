package extract

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pricelens/backend/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readFixture(t *testing.T, name string) []byte {
	t.Helper()
	content, err := os.ReadFile(filepath.Join("testdata", name))
	require.NoError(t, err)
	return content
}

func TestSignatureSelector(t *testing.T) {
	tests := []struct {
		name string
		sig  Signature
		want string
	}{
		{"tag only", Signature{Tag: "span"}, "span"},
		{"single class", Signature{Tag: "span", Class: "B_NuCI"}, "span.B_NuCI"},
		{"multiple classes", Signature{Tag: "div", Class: "_30jeq3 _16Jk6d"}, "div._30jeq3._16Jk6d"},
		{"extra whitespace", Signature{Tag: "li", Class: " _16eBzU   col "}, "li._16eBzU.col"},
		{"with attribute", Signature{Tag: "img", Class: "_396cs4", Attr: "src"}, "img._396cs4[src]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.sig.Selector())
		})
	}
}

func TestParsePrice(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		want    string
		wantErr bool
	}{
		{"indian grouping with rupee", "₹1,23,456", "123456", false},
		{"western grouping", "1,299", "1299", false},
		{"trailing decimal point", "1,19,900.", "119900", false},
		{"with paise", "₹499.50", "499.5", false},
		{"surrounding whitespace", "  ₹ 999 ", "999", false},
		{"empty", "", "", true},
		{"no digits", "Price unavailable", "", true},
		{"two decimal points", "1.2.3", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParsePrice(tt.text)
			if tt.wantErr {
				assert.ErrorIs(t, err, domain.ErrFieldMissing)
				return
			}
			require.NoError(t, err)
			assert.True(t, decimal.RequireFromString(tt.want).Equal(got), "got %s want %s", got, tt.want)
			assert.False(t, got.IsNegative())
		})
	}
}

func TestExtractFlipkartDetail(t *testing.T) {
	content := readFixture(t, "flipkart_detail.html")
	link := "https://www.flipkart.com/acme-phone-x/p/itm123abc?pid=MOBABC"

	detail, err := ExtractFlipkartDetail(content, DefaultFlipkartDetailSchema(), link)

	require.NoError(t, err)
	assert.Equal(t, "Acme Phone X (Midnight, 128 GB)", detail.Title)
	assert.True(t, decimal.NewFromInt(123456).Equal(detail.Price))
	assert.Equal(t, []string{
		"https://rukminim1.flixcart.com/image/phone-front.jpeg",
		"https://rukminim1.flixcart.com/image/phone-back.jpeg",
	}, detail.ImageURLs)
	assert.Equal(t, link, detail.BuyLink)
	assert.Equal(t, "128 GB ROM6.1 inch Display", detail.Specifications)
	assert.Equal(t, "A phone built for everyday use.", detail.Description)
	assert.Equal(t, []string{"Cash on Delivery", "Net banking & Credit/ Debit/ ATM card"}, detail.PaymentOptions)
	assert.Equal(t, []string{"Midnight", "Starlight", "128 GB"}, detail.ColorStorageOptions)
	assert.Equal(t, "Delivery by 12 Oct, Thursday", detail.DeliveryEstimate)
	assert.Equal(t, "4.5 of 12,345 Ratings & 1,024 Reviews", detail.RatingSummary)
	assert.Equal(t, domain.PlatformFlipkart, detail.Platform)
}

func TestExtractFlipkartDetail_OffersUseDirectChildrenOnly(t *testing.T) {
	content := readFixture(t, "flipkart_detail.html")

	detail, err := ExtractFlipkartDetail(content, DefaultFlipkartDetailSchema(), "link")

	require.NoError(t, err)
	require.Len(t, detail.Offers, 2)
	assert.Equal(t, "Bank Offer 10% off on Axis Bank Credit Card T&C", detail.Offers[0])
	assert.NotContains(t, detail.Offers[0], "nested")
	assert.Equal(t, "Special Price Get extra 5% off", detail.Offers[1])
}

func TestExtractFlipkartDetail_MissingFieldVoidsRecord(t *testing.T) {
	schema := DefaultFlipkartDetailSchema()

	tests := []struct {
		name   string
		mutate func(s *FlipkartDetailSchema)
	}{
		{"title", func(s *FlipkartDetailSchema) { s.Title.Class = "gone" }},
		{"price", func(s *FlipkartDetailSchema) { s.Price.Class = "gone" }},
		{"specifications", func(s *FlipkartDetailSchema) { s.Specifications.Class = "gone" }},
		{"description", func(s *FlipkartDetailSchema) { s.Description.Class = "gone" }},
		{"delivery", func(s *FlipkartDetailSchema) { s.Delivery.Class = "gone" }},
		{"rating", func(s *FlipkartDetailSchema) { s.Rating.Class = "gone" }},
		{"rating count", func(s *FlipkartDetailSchema) { s.RatingCount.Class = "gone" }},
	}

	content := readFixture(t, "flipkart_detail.html")
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := schema
			tt.mutate(&s)

			detail, err := ExtractFlipkartDetail(content, s, "link")

			assert.Nil(t, detail)
			assert.ErrorIs(t, err, domain.ErrFieldMissing)
		})
	}
}

func TestExtractFlipkartDetail_EmptyListsPermitted(t *testing.T) {
	content := []byte(`<html><body>
		<span class="B_NuCI">Bare Phone</span>
		<div class="_30jeq3 _16Jk6d">₹9,999</div>
		<div class="_2418kt">specs</div>
		<div class="_1mXcCf RmoJUa">desc</div>
		<div class="_3XINqE">Delivery in 2 days</div>
		<div class="_3LWZlK">4.1</div>
		<span class="_2_R_DZ">10 Ratings</span>
	</body></html>`)

	detail, err := ExtractFlipkartDetail(content, DefaultFlipkartDetailSchema(), "link")

	require.NoError(t, err)
	assert.Empty(t, detail.ImageURLs)
	assert.NotNil(t, detail.ImageURLs)
	assert.Empty(t, detail.Offers)
	assert.Empty(t, detail.PaymentOptions)
	assert.Empty(t, detail.ColorStorageOptions)
}

func TestExtractFlipkartListings(t *testing.T) {
	content := readFixture(t, "flipkart_search.html")

	products, err := ExtractFlipkartListings(content, DefaultListingSchema(), "https://www.flipkart.com")

	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, domain.ProductSummary{
		Title:       "Acme Phone X (Midnight, 128 GB)",
		ImageURL:    "https://img.example.com/phone-x.jpeg",
		ProductLink: "https://www.flipkart.com/acme-phone-x/p/itm123abc?pid=MOBABC&lid=LST1",
	}, products[0])
	assert.Equal(t, "Acme Phone Y (Blue, 64 GB)", products[1].Title)
	assert.Equal(t, "https://www.flipkart.com/acme-phone-y/p/itm456def?pid=MOBDEF", products[1].ProductLink)
}

func TestExtractFlipkartListings_NoCards(t *testing.T) {
	products, err := ExtractFlipkartListings([]byte("<html><body>nothing</body></html>"), DefaultListingSchema(), "https://www.flipkart.com")

	require.NoError(t, err)
	assert.NotNil(t, products)
	assert.Empty(t, products)
}

func TestExtractAmazonDetail(t *testing.T) {
	content := readFixture(t, "amazon_search.html")

	detail, err := ExtractAmazonDetail(content, DefaultAmazonSearchSchema(), "https://www.amazon.in")

	require.NoError(t, err)
	assert.Equal(t, "Acme Phone X (128 GB) - Midnight", detail.Title)
	assert.True(t, decimal.NewFromInt(119900).Equal(detail.Price), "price = %s", detail.Price)
	assert.Equal(t, "https://www.amazon.in/Acme-Phone-Midnight-128GB/dp/B0ABC123/ref=sr_1_1", detail.BuyLink)
	assert.Equal(t, domain.PlatformAmazon, detail.Platform)
}

func TestExtractAmazonDetail_MissingPrice(t *testing.T) {
	content := []byte(`<html><body>
		<a class="a-link-normal s-no-outline" href="/dp/B0"></a>
		<span class="a-size-medium a-color-base a-text-normal">Phone</span>
	</body></html>`)

	detail, err := ExtractAmazonDetail(content, DefaultAmazonSearchSchema(), "https://www.amazon.in")

	assert.Nil(t, detail)
	assert.ErrorIs(t, err, domain.ErrFieldMissing)
}

func TestExtractReviewPage(t *testing.T) {
	content := readFixture(t, "reviews_page.html")

	page, err := ExtractReviewPage(content, DefaultReviewSchema())

	require.NoError(t, err)
	assert.Equal(t, []string{"Asha", "Ravi", "Meera"}, page.Names)
	assert.Equal(t, []string{"Brilliant", "Okay", "Terrific purchase"}, page.Titles)
	assert.Equal(t, []string{"5", "0"}, page.Ratings)
	assert.Equal(t, []string{
		"Great phone, battery lasts all day.",
		"Camera could be better.",
		"Value for money.",
	}, page.Comments)
	assert.True(t, page.HasNext())
	assert.Equal(t, "/acme-phone-x/product-reviews/itm123abc?page=3", page.NextHref)
}

func TestExtractReviewPage_LastPage(t *testing.T) {
	content := readFixture(t, "reviews_last_page.html")

	page, err := ExtractReviewPage(content, DefaultReviewSchema())

	require.NoError(t, err)
	assert.Equal(t, []string{"Kiran"}, page.Names)
	assert.False(t, page.HasNext())
}

func TestExtractReviewPage_CommentWithoutBody(t *testing.T) {
	content := []byte(`<html><body>
		<div class="t-ZTKy">flat text only</div>
		<div class="t-ZTKy"><div><div>kept</div></div></div>
	</body></html>`)

	page, err := ExtractReviewPage(content, DefaultReviewSchema())

	require.NoError(t, err)
	assert.Equal(t, []string{"kept"}, page.Comments)
	assert.Empty(t, page.Names)
}

func TestResolveURL(t *testing.T) {
	tests := []struct {
		name string
		base string
		href string
		want string
	}{
		{"relative path", "https://www.flipkart.com", "/p/abc?x=1", "https://www.flipkart.com/p/abc?x=1"},
		{"absolute href", "https://www.flipkart.com", "https://other.example.com/x", "https://other.example.com/x"},
		{"base with path", "http://127.0.0.1:8080/", "/reviews?page=2", "http://127.0.0.1:8080/reviews?page=2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveURL(tt.base, tt.href)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
