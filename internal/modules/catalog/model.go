package catalog

import (
	"encoding/json"

	"github.com/pkg/errors"
)

// Kind discriminates the variants of Product.
type Kind string

const (
	KindWine  Kind = "wine"
	KindEvent Kind = "event"
)

// WineType is the wine-type bucket derived from upstream categories.
type WineType string

const (
	TypeRed           WineType = "Rotwein"
	TypeWhite         WineType = "Weißwein"
	TypeRose          WineType = "Roséwein"
	TypeSparkling     WineType = "Sekt"
	TypeAlcoholFree   WineType = "Alkoholfrei"
	TypePackage       WineType = "Paket"
	TypeMiscellaneous WineType = "Sonstiges"
)

// StockStatus is the availability of a wine.
type StockStatus string

const (
	InStock    StockStatus = "instock"
	OutOfStock StockStatus = "outofstock"
)

// Image is a product image reference.
type Image struct {
	Src string `json:"src" yaml:"src"`
	Alt string `json:"alt,omitempty" yaml:"alt,omitempty"`
}

// Term is a category or tag.
type Term struct {
	ID   int64  `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
	Slug string `json:"slug" yaml:"slug"`
}

// Attribute is a named attribute with its option values.
type Attribute struct {
	Name    string   `json:"name" yaml:"name"`
	Options []string `json:"options" yaml:"options"`
}

// Wine is a purchasable bottle (or package) of wine.
type Wine struct {
	ID               string      `json:"id" yaml:"id"`
	Name             string      `json:"name" yaml:"name"`
	Slug             string      `json:"slug" yaml:"slug"`
	Price            float64     `json:"price" yaml:"price"`
	RegularPrice     float64     `json:"regular_price" yaml:"regular_price"`
	Description      string      `json:"description" yaml:"description"`
	ShortDescription string      `json:"short_description" yaml:"short_description"`
	StockStatus      StockStatus `json:"stock_status" yaml:"stock_status"`
	Images           []Image     `json:"images" yaml:"images"`
	Categories       []Term      `json:"categories" yaml:"categories"`
	Tags             []Term      `json:"tags" yaml:"tags"`
	Attributes       []Attribute `json:"attributes" yaml:"attributes"`
	SKU              string      `json:"sku,omitempty" yaml:"sku,omitempty"`
	StockQuantity    *int        `json:"stock_quantity,omitempty" yaml:"stock_quantity,omitempty"`
	TaxStatus        string      `json:"tax_status,omitempty" yaml:"tax_status,omitempty"`
	TaxClass         string      `json:"tax_class,omitempty" yaml:"tax_class,omitempty"`
	Image            string      `json:"image" yaml:"image"`

	// Volume is the bottle size in liters, always a positive decimal string.
	Volume       string   `json:"volume" yaml:"volume"`
	Year         int      `json:"year" yaml:"year"`
	Type         WineType `json:"type" yaml:"type"`
	GrapeVariety string   `json:"grape_variety" yaml:"grape_variety"`
	Alcohol      string   `json:"alcohol" yaml:"alcohol"`
	Acidity      string   `json:"acidity" yaml:"acidity"`
	Sugar        string   `json:"sugar" yaml:"sugar"`
	Location     string   `json:"location,omitempty" yaml:"location,omitempty"`
	QualityLevel string   `json:"quality_level,omitempty" yaml:"quality_level,omitempty"`
	Flavor       string   `json:"flavor,omitempty" yaml:"flavor,omitempty"`
	Soil         string   `json:"soil,omitempty" yaml:"soil,omitempty"`
	Producer     string   `json:"producer,omitempty" yaml:"producer,omitempty"`
	Temp         string   `json:"temp,omitempty" yaml:"temp,omitempty"`
}

// Event is a bookable event (tasting, cellar tour, festival...).
type Event struct {
	ID       string `json:"id" yaml:"id"`
	Title    string `json:"title" yaml:"title"`
	Date     string `json:"date" yaml:"date"`
	Time     string `json:"time" yaml:"time"`
	Location string `json:"location" yaml:"location"`
	Spots    string `json:"spots" yaml:"spots"`
	Price    string `json:"price" yaml:"price"`
	Category string `json:"category" yaml:"category"`
	Image    string `json:"image" yaml:"image"`

	IsKellerblicke    bool `json:"is_kellerblicke" yaml:"is_kellerblicke"`
	IsWeinproben      bool `json:"is_weinproben" yaml:"is_weinproben"`
	IsWeinfeste       bool `json:"is_weinfeste" yaml:"is_weinfeste"`
	IsWeintreff       bool `json:"is_weintreff" yaml:"is_weintreff"`
	IsAfterwork       bool `json:"is_afterwork" yaml:"is_afterwork"`
	IsWeinWeiter      bool `json:"is_weinweiter" yaml:"is_weinweiter"`
	IsWeinRaetselTour bool `json:"is_weinraetseltour" yaml:"is_weinraetseltour"`
}

// Product is either a Wine or an Event; exactly one pointer is set, matching Kind.
type Product struct {
	Kind  Kind
	Wine  *Wine
	Event *Event
}

// WineProduct wraps w.
func WineProduct(w *Wine) Product { return Product{Kind: KindWine, Wine: w} }

// EventProduct wraps e.
func EventProduct(e *Event) Product { return Product{Kind: KindEvent, Event: e} }

// ID returns the identifier of the wrapped variant.
func (p Product) ID() string {
	switch p.Kind {
	case KindWine:
		return p.Wine.ID
	case KindEvent:
		return p.Event.ID
	}
	return ""
}

// Title returns the display name of the wrapped variant.
func (p Product) Title() string {
	switch p.Kind {
	case KindWine:
		return p.Wine.Name
	case KindEvent:
		return p.Event.Title
	}
	return ""
}

func (p Product) MarshalJSON() ([]byte, error) {
	switch p.Kind {
	case KindWine:
		return json.Marshal(struct {
			Kind Kind `json:"kind"`
			*Wine
		}{p.Kind, p.Wine})
	case KindEvent:
		return json.Marshal(struct {
			Kind Kind `json:"kind"`
			*Event
		}{p.Kind, p.Event})
	}
	return nil, errors.Errorf("catalog: unknown product kind %q", p.Kind)
}

// UnmarshalJSON accepts the tagged form and, for untagged payloads, treats a
// record carrying grape_variety as a wine.
func (p *Product) UnmarshalJSON(data []byte) error {
	var head struct {
		Kind         Kind    `json:"kind"`
		GrapeVariety *string `json:"grape_variety"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return err
	}
	kind := head.Kind
	if kind == "" {
		kind = KindEvent
		if head.GrapeVariety != nil {
			kind = KindWine
		}
	}

	switch kind {
	case KindWine:
		var w Wine
		if err := json.Unmarshal(data, &w); err != nil {
			return err
		}
		*p = WineProduct(&w)
	case KindEvent:
		var e Event
		if err := json.Unmarshal(data, &e); err != nil {
			return err
		}
		*p = EventProduct(&e)
	default:
		return errors.Errorf("catalog: unknown product kind %q", kind)
	}
	return nil
}
