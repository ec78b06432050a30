package extract

import (
	"github.com/pricelens/backend/internal/domain"
)

// ExtractAmazonDetail reads the first hit of a marketplace search page
func ExtractAmazonDetail(content []byte, schema AmazonSearchSchema, baseURL string) (*domain.AmazonDetail, error) {
	doc, err := Parse(content)
	if err != nil {
		return nil, err
	}

	href, err := doc.Attr(schema.Link)
	if err != nil {
		return nil, err
	}
	link, err := ResolveURL(baseURL, href)
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

	return &domain.AmazonDetail{
		Title:    title,
		Price:    price,
		BuyLink:  link,
		Platform: domain.PlatformAmazon,
	}, nil
}
