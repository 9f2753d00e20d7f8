package catalog

import (
	"strings"

	"github.com/georgemunganga/fellbacher-shop/internal/modules/woocommerce"
)

var eventKeywords = []string{"events", "weinproben", "kellerblicke", "kartenvorverkauf", "veranstaltungen"}

// IsEventCategory reports whether any category slug or name mentions an event keyword.
func IsEventCategory(categories []woocommerce.Term) bool {
	for _, c := range categories {
		slug := strings.ToLower(c.Slug)
		name := strings.ToLower(c.Name)
		for _, kw := range eventKeywords {
			if strings.Contains(slug, kw) || strings.Contains(name, kw) {
				return true
			}
		}
	}
	return false
}

// wineTypeRules are checked in order; the first rule any slug satisfies wins.
var wineTypeRules = []struct {
	keywords []string
	wineType WineType
}{
	{[]string{"rot"}, TypeRed},
	{[]string{"weiss", "weiß"}, TypeWhite},
	{[]string{"rose", "rosé"}, TypeRose},
	{[]string{"sekt"}, TypeSparkling},
	{[]string{"alkohol"}, TypeAlcoholFree},
}

// DetermineWineType maps category slugs to a wine type, defaulting to Rotwein.
func DetermineWineType(categories []woocommerce.Term) WineType {
	slugs := make([]string, len(categories))
	for i, c := range categories {
		slugs[i] = strings.ToLower(c.Slug)
	}
	for _, rule := range wineTypeRules {
		for _, s := range slugs {
			for _, kw := range rule.keywords {
				if strings.Contains(s, kw) {
					return rule.wineType
				}
			}
		}
	}
	return TypeRed
}

type seriesFlag struct {
	keyword string
	set     func(*Event)
}

// seriesFlags are independent; a record may satisfy several.
var seriesFlags = []seriesFlag{
	{"kellerblicke", func(e *Event) { e.IsKellerblicke = true }},
	{"weinproben", func(e *Event) { e.IsWeinproben = true }},
	{"weinfeste", func(e *Event) { e.IsWeinfeste = true }},
	{"afterwork", func(e *Event) { e.IsAfterwork = true }},
	{"weiter", func(e *Event) { e.IsWeinWeiter = true }},
	{"weintreff", func(e *Event) { e.IsWeintreff = true }},
	{"raetsel", func(e *Event) { e.IsWeinRaetselTour = true }},
}

func applySeriesFlags(e *Event, categories []woocommerce.Term) {
	for _, f := range seriesFlags {
		for _, c := range categories {
			if strings.Contains(c.Slug, f.keyword) {
				f.set(e)
				break
			}
		}
	}
}
