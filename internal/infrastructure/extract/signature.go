package extract

import "strings"

// Signature locates a node by tag name and class list. Attr names the
// attribute holding the value for URL-valued fields.
type Signature struct {
	Tag   string
	Class string
	Attr  string
}

// Selector renders the signature as a CSS selector, e.g. div._30jeq3._16Jk6d
func (s Signature) Selector() string {
	var b strings.Builder
	b.WriteString(s.Tag)
	for _, class := range strings.Fields(s.Class) {
		b.WriteByte('.')
		b.WriteString(class)
	}
	if s.Attr != "" {
		b.WriteString("[" + s.Attr + "]")
	}
	return b.String()
}

// String implements fmt.Stringer for log and error messages
func (s Signature) String() string {
	return s.Selector()
}
