package catalog

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func queryFixture() []Product {
	return []Product{
		WineProduct(&Wine{ID: "1", Name: "Lämmler Merlot", Year: 2021, Price: 15.9, Type: TypeRed, GrapeVariety: "Merlot",
			Categories: []Term{{ID: 1, Name: "Rotwein", Slug: "rotwein"}}}),
		WineProduct(&Wine{ID: "2", Name: "Goldberg", Year: 2023, Price: 18.9, Type: TypeWhite, GrapeVariety: "Riesling",
			Description: "Zitrus und Pfirsich", Categories: []Term{{ID: 2, Name: "Weißwein", Slug: "weisswein"}}}),
		EventProduct(&Event{ID: "kellerblicke", Title: "Kellerblicke", Category: "Kellerführung", Location: "Fellbach", Price: "12€"}),
		WineProduct(&Wine{ID: "3", Name: "Trollinger", Year: 2022, Price: 8.9, Type: TypeRed, GrapeVariety: "Trollinger",
			Categories: []Term{{ID: 1, Name: "Rotwein", Slug: "rotwein"}}}),
	}
}

func TestApplyDefaultSortsByYear(t *testing.T) {
	got := Apply(queryFixture(), Query{})
	assert.Equal(t, []string{"2", "3", "1", "kellerblicke"}, ids(got))
}

func TestApplyPriceSort(t *testing.T) {
	asc := Apply(queryFixture(), Query{Sort: SortPriceAsc})
	assert.Equal(t, []string{"3", "kellerblicke", "1", "2"}, ids(asc))

	desc := Apply(queryFixture(), Query{Sort: SortPriceDesc})
	assert.Equal(t, []string{"2", "1", "kellerblicke", "3"}, ids(desc))
}

func TestApplyFilters(t *testing.T) {
	products := queryFixture()

	tests := []struct {
		name  string
		query Query
		want  []string
	}{
		{"kind wine", Query{Kind: KindWine}, []string{"2", "3", "1"}},
		{"kind event", Query{Kind: KindEvent}, []string{"kellerblicke"}},
		{"type excludes events", Query{Type: TypeRed}, []string{"3", "1"}},
		{"grape is case-insensitive", Query{Grape: "riesling"}, []string{"2"}},
		{"wine category slug", Query{Category: "rotwein"}, []string{"3", "1"}},
		{"event category", Query{Category: "kellerführung"}, []string{"kellerblicke"}},
		{"search name", Query{Search: "merlot"}, []string{"1"}},
		{"search description", Query{Search: "pfirsich"}, []string{"2"}},
		{"search event location", Query{Search: "fellbach"}, []string{"kellerblicke"}},
		{"no match", Query{Search: "champagner"}, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(Apply(products, tt.query)))
		})
	}
}

func TestApplyLeavesInputUntouched(t *testing.T) {
	products := queryFixture()
	before := ids(products)
	Apply(products, Query{Sort: SortPriceAsc})
	assert.Equal(t, before, ids(products))
}

func TestParsePrice(t *testing.T) {
	tests := map[string]string{
		"12€":           "12",
		"15,50 EUR":     "15.5",
		"ab 119€":       "119",
		"49.90":         "49.9",
		"Eintritt frei": "0",
		"":              "0",
	}
	for in, want := range tests {
		assert.True(t, decimal.RequireFromString(want).Equal(ParsePrice(in)), "ParsePrice(%q)", in)
	}
}

func TestBuildFacets(t *testing.T) {
	f := BuildFacets(queryFixture())

	assert.Equal(t, []WineType{TypeRed, TypeWhite}, f.Types)
	assert.Equal(t, []string{"Merlot", "Riesling", "Trollinger"}, f.Grapes)
	require.Len(t, f.Categories, 2)
	assert.Equal(t, "rotwein", f.Categories[0].Slug)
	assert.Equal(t, "weisswein", f.Categories[1].Slug)
}

func TestBuildFacetsEmpty(t *testing.T) {
	f := BuildFacets(nil)
	assert.NotNil(t, f.Types)
	assert.NotNil(t, f.Grapes)
	assert.NotNil(t, f.Categories)
}
