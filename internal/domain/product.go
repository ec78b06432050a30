package domain

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

func init() {
	// prices render as JSON numbers, matching the public API
	decimal.MarshalJSONWithoutQuotes = true
}

// Platform names reported in source details
const (
	PlatformFlipkart = "Flipkart"
	PlatformAmazon   = "Amazon"
)

// ProductSummary is a single card from a listing search
type ProductSummary struct {
	Title       string `json:"title"`
	ImageURL    string `json:"image_url"`
	ProductLink string `json:"product_link"`
}

// FlipkartDetail holds everything extracted from a primary-source detail page
type FlipkartDetail struct {
	Title               string          `json:"title"`
	Price               decimal.Decimal `json:"flipkart_price"`
	ImageURLs           []string        `json:"image_urls"`
	BuyLink             string          `json:"flipkart_buy_link"`
	Specifications      string          `json:"product_specifications"`
	Description         string          `json:"description"`
	PaymentOptions      []string        `json:"payment_options"`
	Offers              []string        `json:"flipkart_offers"`
	ColorStorageOptions []string        `json:"color_storage"`
	DeliveryEstimate    string          `json:"delivery_by"`
	RatingSummary       string          `json:"total_rating"`
	Platform            string          `json:"platform"`
}

// AmazonDetail holds the first search hit from the secondary source
type AmazonDetail struct {
	Title    string          `json:"title"`
	Price    decimal.Decimal `json:"amazon_price"`
	BuyLink  string          `json:"amazon_buy_link"`
	Platform string          `json:"platform"`
}

// ComparisonResult merges both sources. A nil side is rendered as an empty object.
type ComparisonResult struct {
	Title           string          `json:"title"`
	FlipkartDetails *FlipkartDetail `json:"flipkart_details"`
	AmazonDetails   *AmazonDetail   `json:"amazon_details"`
	Reviews         []ReviewRecord  `json:"reviews"`
}

// MarshalJSON renders missing sides as {} rather than null
func (r ComparisonResult) MarshalJSON() ([]byte, error) {
	out := struct {
		Title           string         `json:"title"`
		FlipkartDetails any            `json:"flipkart_details"`
		AmazonDetails   any            `json:"amazon_details"`
		Reviews         []ReviewRecord `json:"reviews"`
	}{
		Title:           r.Title,
		FlipkartDetails: struct{}{},
		AmazonDetails:   struct{}{},
		Reviews:         r.Reviews,
	}
	if out.Reviews == nil {
		out.Reviews = []ReviewRecord{}
	}
	if r.FlipkartDetails != nil {
		out.FlipkartDetails = r.FlipkartDetails
	}
	if r.AmazonDetails != nil {
		out.AmazonDetails = r.AmazonDetails
	}
	return json.Marshal(out)
}

// ReviewRecord is one customer review. Rating is "0" when the rating cell was empty.
type ReviewRecord struct {
	User        string `json:"user"`
	ReviewTitle string `json:"review_title"`
	Rating      string `json:"rating"`
	Comment     string `json:"comment"`
}

// SearchRequest represents a listing search request
type SearchRequest struct {
	ProductName string `json:"product_name"`
}

// ProductInfoRequest represents a comparison request
type ProductInfoRequest struct {
	Title        string `json:"title"`
	FlipkartLink string `json:"flipkart_link"`
}
