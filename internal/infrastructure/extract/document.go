package extract

import (
	"bytes"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/pricelens/backend/internal/domain"
	"github.com/shopspring/decimal"
)

// Document wraps a parsed page and resolves signatures against it
type Document struct {
	root *goquery.Selection
}

// Parse builds a Document from raw page content
func Parse(content []byte) (*Document, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("failed to parse page: %w", err)
	}
	return &Document{root: doc.Selection}, nil
}

func (d *Document) within(sel *goquery.Selection) *Document {
	return &Document{root: sel}
}

// first returns the first node matching sig or ErrFieldMissing
func (d *Document) first(sig Signature) (*goquery.Selection, error) {
	sel := d.root.Find(sig.Selector()).First()
	if sel.Length() == 0 {
		return nil, fmt.Errorf("%w: %s", domain.ErrFieldMissing, sig)
	}
	return sel, nil
}

// Text returns the trimmed text of the first node matching sig
func (d *Document) Text(sig Signature) (string, error) {
	sel, err := d.first(sig)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(sel.Text()), nil
}

// Attr returns sig.Attr of the first node matching sig
func (d *Document) Attr(sig Signature) (string, error) {
	sel, err := d.first(sig)
	if err != nil {
		return "", err
	}
	val, ok := sel.Attr(sig.Attr)
	if !ok {
		return "", fmt.Errorf("%w: %s has no %s", domain.ErrFieldMissing, sig, sig.Attr)
	}
	return strings.TrimSpace(val), nil
}

// Texts returns the trimmed text of every node matching sig, in document order
func (d *Document) Texts(sig Signature) []string {
	out := []string{}
	d.root.Find(sig.Selector()).Each(func(_ int, s *goquery.Selection) {
		out = append(out, strings.TrimSpace(s.Text()))
	})
	return out
}

// Attrs returns sig.Attr of every node matching sig, in document order
func (d *Document) Attrs(sig Signature) []string {
	out := []string{}
	d.root.Find(sig.Selector()).Each(func(_ int, s *goquery.Selection) {
		if val, ok := s.Attr(sig.Attr); ok {
			out = append(out, strings.TrimSpace(val))
		}
	})
	return out
}

// Price parses the first node matching sig as a decimal price
func (d *Document) Price(sig Signature) (decimal.Decimal, error) {
	text, err := d.Text(sig)
	if err != nil {
		return decimal.Zero, err
	}
	return ParsePrice(text)
}

// DirectChildTexts joins, per node matching sig, the trimmed text of its
// direct children matching part. Nested descendants are not visited.
func (d *Document) DirectChildTexts(sig, part Signature) []string {
	out := []string{}
	d.root.Find(sig.Selector()).Each(func(_ int, s *goquery.Selection) {
		var pieces []string
		s.ChildrenFiltered(part.Selector()).Each(func(_ int, c *goquery.Selection) {
			pieces = append(pieces, strings.TrimSpace(c.Text()))
		})
		out = append(out, strings.Join(pieces, " "))
	})
	return out
}

// ResolveURL resolves href against base. Absolute hrefs are returned unchanged.
func ResolveURL(base, href string) (string, error) {
	ref, err := url.Parse(href)
	if err != nil {
		return "", fmt.Errorf("%w: bad link %q: %v", domain.ErrFieldMissing, href, err)
	}
	if ref.IsAbs() {
		return ref.String(), nil
	}
	b, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("bad base URL %q: %w", base, err)
	}
	return b.ResolveReference(ref).String(), nil
}
