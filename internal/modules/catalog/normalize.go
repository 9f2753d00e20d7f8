package catalog

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/georgemunganga/fellbacher-shop/internal/modules/woocommerce"
	"github.com/shopspring/decimal"
)

const (
	PlaceholderImage    = "/images/placeholder.png"
	DefaultEventTime    = "18:00"
	DefaultLocation     = "Fellbach"
	DefaultCategory     = "Events"
	DefaultSpots        = 100
	DefaultGrapeVariety = "Cuvée"
	DefaultProducer     = "Fellbacher Weingärtner eG"

	descriptionHeader = "Weinbeschreibung:"
)

var (
	htmlTag    = regexp.MustCompile(`<[^>]*>?`)
	leadingInt = regexp.MustCompile(`^\s*(\d+)`)
)

// Normalizer maps upstream records to unified products.
type Normalizer struct {
	dates DateExtractor
}

// NewNormalizer creates a normalizer. A nil extractor uses NameDateExtractor.
func NewNormalizer(dates DateExtractor) *Normalizer {
	if dates == nil {
		dates = NameDateExtractor{}
	}
	return &Normalizer{dates: dates}
}

// Normalize converts one record. It never fails; missing data falls back to defaults.
func (n *Normalizer) Normalize(p woocommerce.Product) Product {
	id := strconv.FormatInt(p.ID, 10)
	price := firstNonEmpty(p.Price, p.RegularPrice, "0")
	image := PlaceholderImage
	if len(p.Images) > 0 {
		image = p.Images[0].Src
	}

	if IsEventCategory(p.Categories) {
		return EventProduct(n.event(p, id, price, image))
	}
	return WineProduct(n.wine(p, id, price, image))
}

func (n *Normalizer) event(p woocommerce.Product, id, price, image string) *Event {
	spots := DefaultSpots
	if p.StockQuantity != nil {
		spots = *p.StockQuantity
	}
	category := DefaultCategory
	if len(p.Categories) > 0 {
		category = p.Categories[0].Name
	}

	e := &Event{
		ID:       id,
		Title:    p.Name,
		Date:     n.dates.ExtractDate(p.Name, p.Attributes),
		Time:     firstNonEmpty(FirstAttr(p.Attributes, "Uhrzeit", "time"), DefaultEventTime),
		Location: firstNonEmpty(Attr(p.Attributes, "Ort"), DefaultLocation),
		Spots:    strconv.Itoa(spots),
		Price:    price,
		Category: category,
		Image:    image,
	}
	applySeriesFlags(e, p.Categories)
	return e
}

func (n *Normalizer) wine(p woocommerce.Product, id, price, image string) *Wine {
	attrs := p.Attributes

	stock := OutOfStock
	if p.StockStatus == woocommerce.StockInStock {
		stock = InStock
	}

	return &Wine{
		ID:               id,
		Name:             p.Name,
		Slug:             p.Slug,
		Price:            parseFloat(price),
		RegularPrice:     parseFloat(firstNonEmpty(p.RegularPrice, price)),
		Description:      CleanDescription(p.Description),
		ShortDescription: StripTags(p.ShortDescription),
		StockStatus:      stock,
		Images:           mapImages(p.Images),
		Categories:       mapTerms(p.Categories),
		Tags:             mapTerms(p.Tags),
		Attributes:       mapAttributes(attrs),
		SKU:              p.SKU,
		StockQuantity:    p.StockQuantity,
		TaxStatus:        p.TaxStatus,
		TaxClass:         p.TaxClass,
		Image:            image,

		Volume: ResolveVolume(VolumeInput{
			Attribute: FirstAttr(attrs, "Inhalt", "Flaschengröße", "Volume"),
			Name:      p.Name,
			Weight:    p.Weight,
		}),
		Year:         parseYear(Attr(attrs, "Jahrgang")),
		Type:         DetermineWineType(p.Categories),
		GrapeVariety: firstNonEmpty(Attr(attrs, "Rebsorte"), DefaultGrapeVariety),
		Alcohol:      Attr(attrs, "Alkohol"),
		Acidity:      Attr(attrs, "Säure"),
		Sugar:        Attr(attrs, "Restzucker"),
		Location:     FirstAttr(attrs, "Lage / Herkunft", "Gemarkung"),
		QualityLevel: ResolveQuality(QualityInput{
			Attribute: Attr(attrs, "Qualitätsstufe"),
			Text:      qualityText(p),
		}),
		Flavor: ResolveFlavor(FlavorInput{
			Direct:     FirstAttr(attrs, "Geschmacksrichtung", "Geschmack", "Taste", "Flavor"),
			Attributes: attrs,
			Tags:       p.Tags,
		}),
		Soil:     Attr(attrs, "Bodenart"),
		Producer: firstNonEmpty(Attr(attrs, "Erzeuger / Abfüller"), DefaultProducer),
		Temp:     Attr(attrs, "Trinktemperatur"),
	}
}

// StripTags removes HTML tags.
func StripTags(s string) string {
	return htmlTag.ReplaceAllString(s, "")
}

// CleanDescription strips tags and keeps only the text after a
// "Weinbeschreibung:" header when one is present.
func CleanDescription(s string) string {
	clean := StripTags(s)
	if _, after, found := strings.Cut(clean, descriptionHeader); found {
		return strings.TrimSpace(after)
	}
	return clean
}

func qualityText(p woocommerce.Product) string {
	tags := make([]string, len(p.Tags))
	for i, t := range p.Tags {
		tags[i] = t.Name
	}
	return strings.Join([]string{p.Name, p.Description, p.ShortDescription, strings.Join(tags, " ")}, " ")
}

func parseYear(s string) int {
	m := leadingInt.FindStringSubmatch(s)
	if m == nil {
		return 0
	}
	y, err := strconv.Atoi(m[1])
	if err != nil {
		return 0
	}
	return y
}

func parseFloat(s string) float64 {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return d.InexactFloat64()
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func mapImages(in []woocommerce.Image) []Image {
	out := make([]Image, 0, len(in))
	for _, img := range in {
		out = append(out, Image{Src: img.Src, Alt: img.Alt})
	}
	return out
}

func mapTerms(in []woocommerce.Term) []Term {
	out := make([]Term, 0, len(in))
	for _, t := range in {
		out = append(out, Term{ID: t.ID, Name: t.Name, Slug: t.Slug})
	}
	return out
}

func mapAttributes(in []woocommerce.Attribute) []Attribute {
	out := make([]Attribute, 0, len(in))
	for _, a := range in {
		opts := a.Options
		if opts == nil {
			opts = []string{}
		}
		out = append(out, Attribute{Name: a.Name, Options: opts})
	}
	return out
}
