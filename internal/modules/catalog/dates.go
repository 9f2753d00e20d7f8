package catalog

import (
	"regexp"

	"github.com/georgemunganga/fellbacher-shop/internal/modules/woocommerce"
)

// DateExtractor finds the date of an event record.
type DateExtractor interface {
	ExtractDate(name string, attrs []woocommerce.Attribute) string
}

// nameDatePattern matches dates written like "18. April 2026" or "3 März 2025".
var nameDatePattern = regexp.MustCompile(`\d{1,2}\.?\s?[A-Za-zäöüÄÖÜ]+\s?\d{4}`)

// NameDateExtractor looks for a date inside the product name, then in the
// Datum/date attribute. A name match wins when both are present.
type NameDateExtractor struct{}

func (NameDateExtractor) ExtractDate(name string, attrs []woocommerce.Attribute) string {
	if m := nameDatePattern.FindString(name); m != "" {
		return m
	}
	return FirstAttr(attrs, "Datum", "date")
}
