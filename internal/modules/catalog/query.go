package catalog

import (
	"regexp"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// SortOrder orders query results.
type SortOrder string

const (
	SortYear      SortOrder = "year"
	SortPriceAsc  SortOrder = "price-asc"
	SortPriceDesc SortOrder = "price-desc"
)

// Query filters and orders the catalog. Zero fields do not filter.
type Query struct {
	Search   string
	Kind     Kind
	Type     WineType
	Category string // category slug
	Grape    string
	Sort     SortOrder
}

// Apply returns the matching products in the requested order. products is not modified.
func Apply(products []Product, q Query) []Product {
	out := make([]Product, 0, len(products))
	for _, p := range products {
		if q.matches(p) {
			out = append(out, p)
		}
	}

	switch q.Sort {
	case SortPriceAsc:
		sort.SliceStable(out, func(i, j int) bool { return priceOf(out[i]).LessThan(priceOf(out[j])) })
	case SortPriceDesc:
		sort.SliceStable(out, func(i, j int) bool { return priceOf(out[i]).GreaterThan(priceOf(out[j])) })
	case SortYear, "":
		sort.SliceStable(out, func(i, j int) bool { return yearOf(out[i]) > yearOf(out[j]) })
	}
	return out
}

func (q Query) matches(p Product) bool {
	if q.Kind != "" && p.Kind != q.Kind {
		return false
	}
	switch p.Kind {
	case KindWine:
		w := p.Wine
		if q.Type != "" && w.Type != q.Type {
			return false
		}
		if q.Grape != "" && !strings.EqualFold(w.GrapeVariety, q.Grape) {
			return false
		}
		if q.Category != "" && !hasCategory(w.Categories, q.Category) {
			return false
		}
		return containsFold(q.Search, w.Name, w.GrapeVariety, string(w.Type), w.Description)
	case KindEvent:
		e := p.Event
		if q.Type != "" || q.Grape != "" {
			return false
		}
		if q.Category != "" && !strings.EqualFold(e.Category, q.Category) {
			return false
		}
		return containsFold(q.Search, e.Title, e.Category, e.Location)
	}
	return false
}

func hasCategory(terms []Term, slug string) bool {
	for _, t := range terms {
		if strings.EqualFold(t.Slug, slug) {
			return true
		}
	}
	return false
}

func containsFold(needle string, fields ...string) bool {
	if needle == "" {
		return true
	}
	n := strings.ToLower(needle)
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), n) {
			return true
		}
	}
	return false
}

func yearOf(p Product) int {
	if p.Kind == KindWine {
		return p.Wine.Year
	}
	return 0
}

func priceOf(p Product) decimal.Decimal {
	if p.Kind == KindWine {
		return decimal.NewFromFloat(p.Wine.Price)
	}
	return ParsePrice(p.Event.Price)
}

var priceNumber = regexp.MustCompile(`\d+(?:[.,]\d+)?`)

// ParsePrice reads the first number of a display price such as "12€" or "15,50 EUR".
// Unparseable input yields zero.
func ParsePrice(s string) decimal.Decimal {
	m := priceNumber.FindString(s)
	if m == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(strings.Replace(m, ",", ".", 1))
	if err != nil {
		return decimal.Zero
	}
	return d
}

// Facets lists the distinct filter values present in a catalog.
type Facets struct {
	Types      []WineType `json:"types"`
	Grapes     []string   `json:"grapes"`
	Categories []Term     `json:"categories"`
}

// BuildFacets collects facets over the wines of products, sorted for display.
func BuildFacets(products []Product) Facets {
	types := map[WineType]bool{}
	grapes := map[string]bool{}
	cats := map[string]Term{}
	for _, p := range products {
		if p.Kind != KindWine {
			continue
		}
		types[p.Wine.Type] = true
		grapes[p.Wine.GrapeVariety] = true
		for _, c := range p.Wine.Categories {
			cats[c.Slug] = c
		}
	}

	f := Facets{Types: []WineType{}, Grapes: []string{}, Categories: []Term{}}
	for t := range types {
		f.Types = append(f.Types, t)
	}
	for g := range grapes {
		f.Grapes = append(f.Grapes, g)
	}
	for _, c := range cats {
		f.Categories = append(f.Categories, c)
	}
	sort.Slice(f.Types, func(i, j int) bool { return f.Types[i] < f.Types[j] })
	sort.Strings(f.Grapes)
	sort.Slice(f.Categories, func(i, j int) bool { return f.Categories[i].Slug < f.Categories[j].Slug })
	return f
}
