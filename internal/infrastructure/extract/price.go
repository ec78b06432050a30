package extract

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/pricelens/backend/internal/domain"
	"github.com/shopspring/decimal"
)

// priceNoise matches thousands separators, currency glyphs and anything else that is not part of the number
var priceNoise = regexp.MustCompile(`[^0-9.]`)

// ParsePrice normalizes "₹1,23,456" or "1,299." into a non-negative decimal.
// Text without digits is a missing field, never zero.
func ParsePrice(text string) (decimal.Decimal, error) {
	cleaned := priceNoise.ReplaceAllString(text, "")
	cleaned = strings.TrimRight(cleaned, ".")
	if cleaned == "" {
		return decimal.Zero, fmt.Errorf("%w: no digits in price %q", domain.ErrFieldMissing, text)
	}

	price, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: unparsable price %q: %v", domain.ErrFieldMissing, text, err)
	}
	return price, nil
}
