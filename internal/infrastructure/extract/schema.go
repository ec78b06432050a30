package extract

// FlipkartDetailSchema maps each detail-page field to its signature
type FlipkartDetailSchema struct {
	Title          Signature
	Price          Signature
	Images         Signature
	Specifications Signature
	Description    Signature
	PaymentOptions Signature
	Offers         Signature
	OfferPart      Signature // direct children of an offer entry
	ColorStorage   Signature
	Delivery       Signature
	Rating         Signature
	RatingCount    Signature
}

// ListingSchema maps the fields of one search-result card
type ListingSchema struct {
	Card  Signature
	Title Signature
	Image Signature
	Link  Signature
}

// AmazonSearchSchema maps the fields read from the first search hit
type AmazonSearchSchema struct {
	Link  Signature
	Title Signature
	Price Signature
}

// ReviewSchema maps the parallel review fields and the next-page cursor
type ReviewSchema struct {
	Name    Signature
	Title   Signature
	Rating  Signature
	Comment Signature
	Next    Signature
}

// DefaultFlipkartDetailSchema returns the current product page markup
func DefaultFlipkartDetailSchema() FlipkartDetailSchema {
	return FlipkartDetailSchema{
		Title:          Signature{Tag: "span", Class: "B_NuCI"},
		Price:          Signature{Tag: "div", Class: "_30jeq3 _16Jk6d"},
		Images:         Signature{Tag: "img", Class: "_396cs4 _3exPp9", Attr: "src"},
		Specifications: Signature{Tag: "div", Class: "_2418kt"},
		Description:    Signature{Tag: "div", Class: "_1mXcCf RmoJUa"},
		PaymentOptions: Signature{Tag: "li", Class: "_1DuK2S"},
		Offers:         Signature{Tag: "li", Class: "_16eBzU col"},
		OfferPart:      Signature{Tag: "span"},
		ColorStorage:   Signature{Tag: "li", Class: "_3V2wfe _2Wpvfz"},
		Delivery:       Signature{Tag: "div", Class: "_3XINqE"},
		Rating:         Signature{Tag: "div", Class: "_3LWZlK"},
		RatingCount:    Signature{Tag: "span", Class: "_2_R_DZ"},
	}
}

// DefaultListingSchema returns the current search results markup
func DefaultListingSchema() ListingSchema {
	return ListingSchema{
		Card:  Signature{Tag: "div", Class: "_1AtVbE"},
		Title: Signature{Tag: "div", Class: "_4rR01T"},
		Image: Signature{Tag: "img", Attr: "src"},
		Link:  Signature{Tag: "a", Attr: "href"},
	}
}

// DefaultAmazonSearchSchema returns the current marketplace search markup
func DefaultAmazonSearchSchema() AmazonSearchSchema {
	return AmazonSearchSchema{
		Link:  Signature{Tag: "a", Class: "a-link-normal s-no-outline", Attr: "href"},
		Title: Signature{Tag: "span", Class: "a-size-medium a-color-base a-text-normal"},
		Price: Signature{Tag: "span", Class: "a-price-whole"},
	}
}

// DefaultReviewSchema returns the current reviews listing markup
func DefaultReviewSchema() ReviewSchema {
	return ReviewSchema{
		Name:    Signature{Tag: "p", Class: "_2sc7ZR _2V5EHH"},
		Title:   Signature{Tag: "p", Class: "_2-N8zT"},
		Rating:  Signature{Tag: "div", Class: "_3LWZlK _1BLPMq"},
		Comment: Signature{Tag: "div", Class: "t-ZTKy"},
		Next:    Signature{Tag: "a", Class: "_1LKTO3", Attr: "href"},
	}
}
