package extract

import (
	"log"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/pricelens/backend/internal/domain"
)

// ExtractFlipkartDetail reads a product page. Every scalar field is
// mandatory: one missing signature voids the whole record.
func ExtractFlipkartDetail(content []byte, schema FlipkartDetailSchema, buyLink string) (*domain.FlipkartDetail, error) {
	doc, err := Parse(content)
	if err != nil {
		return nil, err
	}

	title, err := doc.Text(schema.Title)
	if err != nil {
		return nil, err
	}
	price, err := doc.Price(schema.Price)
	if err != nil {
		return nil, err
	}
	specifications, err := doc.Text(schema.Specifications)
	if err != nil {
		return nil, err
	}
	description, err := doc.Text(schema.Description)
	if err != nil {
		return nil, err
	}
	delivery, err := doc.Text(schema.Delivery)
	if err != nil {
		return nil, err
	}
	rating, err := doc.Text(schema.Rating)
	if err != nil {
		return nil, err
	}
	ratingCount, err := doc.Text(schema.RatingCount)
	if err != nil {
		return nil, err
	}

	return &domain.FlipkartDetail{
		Title:               title,
		Price:               price,
		ImageURLs:           doc.Attrs(schema.Images),
		BuyLink:             buyLink,
		Specifications:      specifications,
		Description:         description,
		PaymentOptions:      doc.Texts(schema.PaymentOptions),
		Offers:              doc.DirectChildTexts(schema.Offers, schema.OfferPart),
		ColorStorageOptions: doc.Texts(schema.ColorStorage),
		DeliveryEstimate:    strings.TrimSpace(strings.ReplaceAll(delivery, "?", "")),
		RatingSummary:       rating + " of " + ratingCount,
		Platform:            domain.PlatformFlipkart,
	}, nil
}

// ExtractFlipkartListings reads search result cards. A card missing its
// title, image or link is skipped rather than failing the page.
func ExtractFlipkartListings(content []byte, schema ListingSchema, baseURL string) ([]domain.ProductSummary, error) {
	doc, err := Parse(content)
	if err != nil {
		return nil, err
	}

	products := []domain.ProductSummary{}
	doc.root.Find(schema.Card.Selector()).Each(func(i int, s *goquery.Selection) {
		card := doc.within(s)

		title, err := card.Text(schema.Title)
		if err != nil {
			return
		}
		image, err := card.Attr(schema.Image)
		if err != nil {
			log.Printf("[Flipkart] Skipping card %d (%q): %v", i, title, err)
			return
		}
		href, err := card.Attr(schema.Link)
		if err != nil {
			log.Printf("[Flipkart] Skipping card %d (%q): %v", i, title, err)
			return
		}
		link, err := ResolveURL(baseURL, href)
		if err != nil {
			log.Printf("[Flipkart] Skipping card %d (%q): %v", i, title, err)
			return
		}

		products = append(products, domain.ProductSummary{
			Title:       title,
			ImageURL:    image,
			ProductLink: link,
		})
	})

	return products, nil
}
