package catalog

import (
	"strings"

	"github.com/georgemunganga/fellbacher-shop/internal/modules/woocommerce"
)

// Attr returns the first option of the attribute whose name equals name,
// ignoring case, or "" when there is no such attribute or it has no options.
func Attr(attrs []woocommerce.Attribute, name string) string {
	for _, a := range attrs {
		if !strings.EqualFold(a.Name, name) {
			continue
		}
		if len(a.Options) > 0 {
			return a.Options[0]
		}
		return ""
	}
	return ""
}

// FirstAttr tries names in order and returns the first non-empty value.
func FirstAttr(attrs []woocommerce.Attribute, names ...string) string {
	for _, n := range names {
		if v := Attr(attrs, n); v != "" {
			return v
		}
	}
	return ""
}
