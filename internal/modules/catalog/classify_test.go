package catalog

import (
	"testing"

	"github.com/georgemunganga/fellbacher-shop/internal/modules/woocommerce"
	"github.com/stretchr/testify/assert"
)

func cats(slugs ...string) []woocommerce.Term {
	out := make([]woocommerce.Term, len(slugs))
	for i, s := range slugs {
		out[i] = woocommerce.Term{ID: int64(i + 1), Name: s, Slug: s}
	}
	return out
}

func TestIsEventCategory(t *testing.T) {
	tests := []struct {
		name       string
		categories []woocommerce.Term
		want       bool
	}{
		{"kellerblicke slug", cats("kellerblicke"), true},
		{"kellerblicke inside slug", cats("weine", "kellerblicke-fuehrungen"), true},
		{"weinproben", cats("weinproben"), true},
		{"events", cats("events-2026"), true},
		{"kartenvorverkauf", cats("kartenvorverkauf"), true},
		{"name only, any case", []woocommerce.Term{{Name: "Veranstaltungen", Slug: "va"}}, true},
		{"wine categories", cats("rotwein", "weisswein"), false},
		{"no categories", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsEventCategory(tt.categories))
		})
	}
}

func TestDetermineWineType(t *testing.T) {
	tests := []struct {
		name  string
		slugs []string
		want  WineType
	}{
		{"red", []string{"rotwein"}, TypeRed},
		{"red before sparkling", []string{"rotwein", "sekt"}, TypeRed},
		{"red wins even when listed last", []string{"sekt", "rotwein"}, TypeRed},
		{"white ss", []string{"weisswein"}, TypeWhite},
		{"white sharp s", []string{"Weißwein"}, TypeWhite},
		{"rose", []string{"rosewein"}, TypeRose},
		{"rose accent", []string{"rosé"}, TypeRose},
		{"sparkling", []string{"sekt-und-secco"}, TypeSparkling},
		{"alcohol free", []string{"alkoholfrei"}, TypeAlcoholFree},
		{"unknown defaults to red", []string{"geschenke"}, TypeRed},
		{"none defaults to red", nil, TypeRed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DetermineWineType(cats(tt.slugs...)))
		})
	}
}

func TestAttr(t *testing.T) {
	attrs := []woocommerce.Attribute{
		{Name: "Jahrgang", Options: []string{"2022", "2023"}},
		{Name: "Rebsorte", Options: nil},
		{Name: "Gemarkung", Options: []string{"Lämmler"}},
	}

	assert.Equal(t, "2022", Attr(attrs, "jahrgang"))
	assert.Equal(t, "2022", Attr(attrs, "JAHRGANG"))
	assert.Equal(t, "", Attr(attrs, "Rebsorte"))
	assert.Equal(t, "", Attr(attrs, "Jahr"))
	assert.Equal(t, "", Attr(nil, "Jahrgang"))

	assert.Equal(t, "Lämmler", FirstAttr(attrs, "Lage / Herkunft", "Gemarkung"))
	assert.Equal(t, "", FirstAttr(attrs, "Bodenart"))
}

func TestSeriesFlags(t *testing.T) {
	e := &Event{}
	applySeriesFlags(e, cats("kellerblicke", "afterwork-party"))

	assert.True(t, e.IsKellerblicke)
	assert.True(t, e.IsAfterwork)
	assert.False(t, e.IsWeinproben)
	assert.False(t, e.IsWeinfeste)
	assert.False(t, e.IsWeintreff)
	assert.False(t, e.IsWeinWeiter)
	assert.False(t, e.IsWeinRaetselTour)
}
