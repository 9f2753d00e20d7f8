package catalog

import (
	_ "embed"
	"sync"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

//go:embed fallback.yaml
var fallbackYAML []byte

var (
	fallbackOnce     sync.Once
	fallbackProducts []Product
	fallbackErr      error
)

// Fallback returns the bundled sample catalog.
func Fallback() ([]Product, error) {
	fallbackOnce.Do(func() {
		fallbackProducts, fallbackErr = parseFallback(fallbackYAML)
	})
	return fallbackProducts, fallbackErr
}

func parseFallback(data []byte) ([]Product, error) {
	var doc struct {
		Wines  []*Wine  `yaml:"wines"`
		Events []*Event `yaml:"events"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(err, "catalog: parse fallback dataset")
	}

	out := make([]Product, 0, len(doc.Wines)+len(doc.Events))
	for _, w := range doc.Wines {
		if w.Volume == "" {
			w.Volume = DefaultVolume
		}
		if w.Images == nil {
			w.Images = []Image{{Src: w.Image, Alt: w.Name}}
		}
		if w.Categories == nil {
			w.Categories = []Term{}
		}
		if w.Tags == nil {
			w.Tags = []Term{}
		}
		if w.Attributes == nil {
			w.Attributes = []Attribute{}
		}
		out = append(out, WineProduct(w))
	}
	for _, e := range doc.Events {
		out = append(out, EventProduct(e))
	}
	return out, nil
}
