package catalog

import (
	"testing"

	"github.com/georgemunganga/fellbacher-shop/internal/modules/woocommerce"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func TestNormalizeWineScenario(t *testing.T) {
	n := NewNormalizer(nil)
	p := n.Normalize(woocommerce.Product{
		ID:         42,
		Name:       "Merlot Lämmler 2022",
		Price:      "15.90",
		Categories: cats("rotwein"),
		Attributes: []woocommerce.Attribute{
			{Name: "Jahrgang", Options: []string{"2022"}},
			{Name: "Rebsorte", Options: []string{"Merlot"}},
		},
	})

	require.Equal(t, KindWine, p.Kind)
	require.Nil(t, p.Event)
	w := p.Wine
	assert.Equal(t, "42", w.ID)
	assert.Equal(t, 2022, w.Year)
	assert.Equal(t, TypeRed, w.Type)
	assert.Equal(t, "Merlot", w.GrapeVariety)
	assert.Equal(t, 15.90, w.Price)
	assert.Equal(t, 15.90, w.RegularPrice)
	assert.Equal(t, "0.75", w.Volume)
	assert.Equal(t, OutOfStock, w.StockStatus)
	assert.Equal(t, PlaceholderImage, w.Image)
	assert.Equal(t, DefaultProducer, w.Producer)
}

func TestNormalizeEventScenario(t *testing.T) {
	n := NewNormalizer(nil)
	p := n.Normalize(woocommerce.Product{
		ID:         7,
		Name:       "Kellerblicke Führung - 24. Februar 2026",
		Categories: cats("kellerblicke"),
	})

	require.Equal(t, KindEvent, p.Kind)
	require.Nil(t, p.Wine)
	e := p.Event
	assert.Equal(t, "7", e.ID)
	assert.True(t, e.IsKellerblicke)
	assert.Equal(t, "24. Februar 2026", e.Date)
	assert.Equal(t, DefaultEventTime, e.Time)
	assert.Equal(t, DefaultLocation, e.Location)
	assert.Equal(t, "100", e.Spots)
	assert.Equal(t, "0", e.Price)
	assert.Equal(t, "kellerblicke", e.Category)
	assert.Equal(t, PlaceholderImage, e.Image)
}

func TestNormalizeWeinprobenIsAlwaysEvent(t *testing.T) {
	p := NewNormalizer(nil).Normalize(woocommerce.Product{
		ID:         3,
		Name:       "Weinprobe Riesling",
		Categories: []woocommerce.Term{{Slug: "weinproben"}},
		Attributes: []woocommerce.Attribute{{Name: "Rebsorte", Options: []string{"Riesling"}}},
	})
	assert.Equal(t, KindEvent, p.Kind)
	assert.Nil(t, p.Wine)
}

func TestNormalizeDefaultsWithoutAttributes(t *testing.T) {
	p := NewNormalizer(nil).Normalize(woocommerce.Product{ID: 1, Name: "Hausmarke"})

	require.Equal(t, KindWine, p.Kind)
	w := p.Wine
	assert.Equal(t, DefaultGrapeVariety, w.GrapeVariety)
	assert.Equal(t, 0, w.Year)
	assert.Equal(t, DefaultVolume, w.Volume)
	assert.Equal(t, 0.0, w.Price)
	assert.Empty(t, w.Alcohol)
	assert.Empty(t, w.Acidity)
	assert.Empty(t, w.Sugar)
	assert.Empty(t, w.Location)
	assert.Empty(t, w.Soil)
	assert.Empty(t, w.Temp)
	assert.Empty(t, w.Flavor)
	assert.Empty(t, w.QualityLevel)
	assert.NotNil(t, w.Images)
	assert.NotNil(t, w.Categories)
	assert.NotNil(t, w.Tags)
	assert.NotNil(t, w.Attributes)
}

func TestNormalizeWineDetails(t *testing.T) {
	p := NewNormalizer(nil).Normalize(woocommerce.Product{
		ID:               11,
		Name:             "Goldberg Riesling Edition >C< 0,75l",
		Slug:             "goldberg-riesling-c",
		Price:            "",
		RegularPrice:     "18.90",
		Description:      "<p>Hinweis</p><h3>Weinbeschreibung:</h3><p> Zitrus und Pfirsich. </p>",
		ShortDescription: "<strong>Frisch</strong> &amp; lebendig",
		StockStatus:      "instock",
		StockQuantity:    intPtr(12),
		Images:           []woocommerce.Image{{Src: "https://img/1.png", Alt: "front"}, {Src: "https://img/2.png"}},
		Categories:       cats("weisswein"),
		Tags:             []woocommerce.Term{{ID: 9, Name: "halbtrocken", Slug: "halbtrocken"}},
		Attributes: []woocommerce.Attribute{
			{Name: "Jahrgang", Options: []string{"2023er"}},
			{Name: "Alkohol", Options: []string{"12,5 %"}},
			{Name: "Gemarkung", Options: []string{"Fellbacher Goldberg"}},
			{Name: "Bodenart", Options: []string{"Keuper"}},
			{Name: "Trinktemperatur", Options: []string{"8-10 °C"}},
			{Name: "Erzeuger / Abfüller", Options: []string{"Weingut Test"}},
		},
	})

	require.Equal(t, KindWine, p.Kind)
	w := p.Wine
	assert.Equal(t, 18.90, w.Price)
	assert.Equal(t, "Zitrus und Pfirsich.", w.Description)
	assert.Equal(t, "Frisch &amp; lebendig", w.ShortDescription)
	assert.Equal(t, InStock, w.StockStatus)
	assert.Equal(t, "https://img/1.png", w.Image)
	assert.Len(t, w.Images, 2)
	assert.Equal(t, 2023, w.Year)
	assert.Equal(t, TypeWhite, w.Type)
	assert.Equal(t, "12,5 %", w.Alcohol)
	assert.Equal(t, "Fellbacher Goldberg", w.Location)
	assert.Equal(t, "Keuper", w.Soil)
	assert.Equal(t, "8-10 °C", w.Temp)
	assert.Equal(t, "Weingut Test", w.Producer)
	assert.Equal(t, "0.75", w.Volume)
	assert.Equal(t, "Edition >C<", w.QualityLevel)
	assert.Equal(t, "halbtrocken", w.Flavor)
	assert.Equal(t, 12, *w.StockQuantity)
}

func TestNormalizeEventAttributes(t *testing.T) {
	p := NewNormalizer(nil).Normalize(woocommerce.Product{
		ID:            8,
		Name:          "Afterwork Weinprobe",
		Price:         "25.00",
		StockQuantity: intPtr(0),
		Categories:    []woocommerce.Term{{Name: "Weinproben", Slug: "weinproben"}, {Name: "Afterwork", Slug: "afterwork"}},
		Attributes: []woocommerce.Attribute{
			{Name: "Datum", Options: []string{"Freitag, 6. März"}},
			{Name: "Uhrzeit", Options: []string{"19:30"}},
			{Name: "Ort", Options: []string{"Vinothek"}},
		},
	})

	require.Equal(t, KindEvent, p.Kind)
	e := p.Event
	assert.Equal(t, "Freitag, 6. März", e.Date)
	assert.Equal(t, "19:30", e.Time)
	assert.Equal(t, "Vinothek", e.Location)
	assert.Equal(t, "0", e.Spots)
	assert.Equal(t, "25.00", e.Price)
	assert.Equal(t, "Weinproben", e.Category)
	assert.True(t, e.IsWeinproben)
	assert.True(t, e.IsAfterwork)
	assert.False(t, e.IsKellerblicke)
}

type fixedDates string

func (f fixedDates) ExtractDate(string, []woocommerce.Attribute) string { return string(f) }

func TestNormalizerUsesInjectedDateExtractor(t *testing.T) {
	p := NewNormalizer(fixedDates("2026-04-18")).Normalize(woocommerce.Product{
		ID:         5,
		Name:       "Weinfest 18. April 2026",
		Categories: cats("events"),
	})
	assert.Equal(t, "2026-04-18", p.Event.Date)
}

func TestNameDateExtractorPrefersName(t *testing.T) {
	attrs := []woocommerce.Attribute{{Name: "date", Options: []string{"1. Mai 2026"}}}
	x := NameDateExtractor{}

	assert.Equal(t, "18. April 2026", x.ExtractDate("Weinprobe - 18. April 2026", attrs))
	assert.Equal(t, "1. Mai 2026", x.ExtractDate("Weinprobe", attrs))
	assert.Equal(t, "", x.ExtractDate("Weinprobe", nil))
}

func TestCleanDescription(t *testing.T) {
	assert.Equal(t, "Plain text", CleanDescription("<p>Plain text</p>"))
	assert.Equal(t, "Rest", CleanDescription("Intro Weinbeschreibung:   Rest  "))
	assert.Equal(t, "", CleanDescription(""))
	assert.Equal(t, "broken", StripTags("broken<br"))
}
