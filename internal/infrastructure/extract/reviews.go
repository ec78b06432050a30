package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// emptyRating replaces a rating cell whose text is empty
const emptyRating = "0"

// ReviewPage holds the four parallel field lists found on one page. The
// lists may differ in length when a node is absent for some reviews.
type ReviewPage struct {
	Names    []string
	Titles   []string
	Ratings  []string
	Comments []string
	NextHref string
}

// HasNext reports whether the page links to a following page
func (p *ReviewPage) HasNext() bool {
	return p.NextHref != ""
}

// ExtractReviewPage reads one reviews listing page
func ExtractReviewPage(content []byte, schema ReviewSchema) (*ReviewPage, error) {
	doc, err := Parse(content)
	if err != nil {
		return nil, err
	}

	page := &ReviewPage{
		Names:  doc.Texts(schema.Name),
		Titles: doc.Texts(schema.Title),
	}

	page.Ratings = doc.Texts(schema.Rating)
	for i, r := range page.Ratings {
		if r == "" {
			page.Ratings[i] = emptyRating
		}
	}

	page.Comments = []string{}
	doc.root.Find(schema.Comment.Selector()).Each(func(_ int, s *goquery.Selection) {
		body := s.Find("div").First().Find("div").First()
		if body.Length() == 0 {
			return
		}
		page.Comments = append(page.Comments, strings.TrimSpace(body.Text()))
	})

	page.NextHref = nextHref(doc, schema.Next)
	return page, nil
}

// nextHref picks the cursor link labelled "Next". The same signature is
// shared with the "Previous" link, so the label disambiguates.
func nextHref(doc *Document, sig Signature) string {
	var href string
	doc.root.Find(sig.Selector()).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if !strings.Contains(strings.ToLower(s.Text()), "next") {
			return true
		}
		href = strings.TrimSpace(s.AttrOr(sig.Attr, ""))
		return false
	})
	return href
}
