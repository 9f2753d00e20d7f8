package catalog

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/georgemunganga/fellbacher-shop/internal/modules/woocommerce"
	"github.com/shopspring/decimal"
)

// Rule is one step of a first-match-wins heuristic chain.
type Rule[T any] struct {
	Name  string
	Match func(T) (string, bool)
}

// FirstMatch runs rules in order and returns the value of the first that matches.
func FirstMatch[T any](rules []Rule[T], in T) (string, bool) {
	for _, r := range rules {
		if v, ok := r.Match(in); ok {
			return v, true
		}
	}
	return "", false
}

// ── Volume ────────────────────────────────────────────────────────────────────

// DefaultVolume is the standard bottle size in liters.
const DefaultVolume = "0.75"

// VolumeInput is what volume resolution looks at.
type VolumeInput struct {
	Attribute string // Inhalt / Flaschengröße / Volume
	Name      string
	Weight    string // upstream shipping weight
}

func (in VolumeInput) text() string {
	return strings.ToLower(in.Attribute + " " + in.Name)
}

var (
	litersPattern      = regexp.MustCompile(`(?i)(\d+[.,]\d+)\s*l`)
	millilitersPattern = regexp.MustCompile(`(?i)(\d+)\s*ml`)
	leadingNumber      = regexp.MustCompile(`^\s*(\d*\.?\d+)`)
)

// VolumeRules resolve a wine's volume; order matters.
var VolumeRules = []Rule[VolumeInput]{
	{"attribute", volumeFromAttribute},
	{"liters", volumeFromLiters},
	{"milliliters", volumeFromMilliliters},
	{"bottle-size", volumeFromBottleSize},
	{"weight", volumeFromWeight},
}

// ResolveVolume returns the volume in liters, falling back to DefaultVolume.
func ResolveVolume(in VolumeInput) string {
	if v, ok := FirstMatch(VolumeRules, in); ok {
		return v
	}
	return DefaultVolume
}

// volumeFromAttribute accepts a bare number such as "0,75" or "1.5".
func volumeFromAttribute(in VolumeInput) (string, bool) {
	s := strings.ReplaceAll(strings.TrimSpace(in.Attribute), ",", ".")
	if s == "" {
		return "", false
	}
	d, err := decimal.NewFromString(s)
	if err != nil || !d.IsPositive() || d.GreaterThan(decimal.NewFromInt(10)) {
		return "", false
	}
	return s, true
}

func volumeFromLiters(in VolumeInput) (string, bool) {
	m := litersPattern.FindStringSubmatch(in.text())
	if m == nil {
		return "", false
	}
	v := strings.Replace(m[1], ",", ".", 1)
	if d, err := decimal.NewFromString(v); err != nil || !d.IsPositive() {
		return "", false
	}
	return v, true
}

func volumeFromMilliliters(in VolumeInput) (string, bool) {
	m := millilitersPattern.FindStringSubmatch(in.text())
	if m == nil {
		return "", false
	}
	ml, err := strconv.Atoi(m[1])
	if err != nil || ml <= 0 {
		return "", false
	}
	return strconv.FormatFloat(float64(ml)/1000, 'f', -1, 64), true
}

var bottleSizes = []struct {
	markers []string
	volume  string
}{
	{[]string{"0,75"}, "0.75"},
	{[]string{"1,0", "literwein"}, "1.0"},
	{[]string{"1,5", "magnum"}, "1.5"},
	{[]string{"0,33"}, "0.33"},
	{[]string{"0,5"}, "0.5"},
}

func volumeFromBottleSize(in VolumeInput) (string, bool) {
	text := in.text()
	for _, b := range bottleSizes {
		for _, m := range b.markers {
			if strings.Contains(text, m) {
				return b.volume, true
			}
		}
	}
	return "", false
}

// volumeFromWeight treats a plausible shipping weight as liters.
func volumeFromWeight(in VolumeInput) (string, bool) {
	m := leadingNumber.FindStringSubmatch(in.Weight)
	if m == nil {
		return "", false
	}
	w, err := strconv.ParseFloat(m[1], 64)
	if err != nil || w <= 0.1 || w >= 2 {
		return "", false
	}
	return m[1], true
}

// ── Quality level ─────────────────────────────────────────────────────────────

// QualityInput is what quality-level resolution looks at.
type QualityInput struct {
	Attribute string // Qualitätsstufe
	Text      string // name, description, short description and tag names
}

// QualityRules resolve a wine's quality tier; order matters.
var QualityRules = []Rule[QualityInput]{
	{"attribute", qualityFromAttribute},
	{"edition-c", editionTier(" c", ">c<", "Edition >C<")},
	{"edition-p", editionTier(" p", ">p<", "Edition >P<")},
	{"edition-s", editionTier(" s", ">s<", "Edition >S<")},
	{"literweine", qualityLiterweine},
}

// ResolveQuality returns the quality tier, falling back to the raw attribute.
func ResolveQuality(in QualityInput) string {
	if v, ok := FirstMatch(QualityRules, in); ok {
		return v
	}
	return in.Attribute
}

func qualityFromAttribute(in QualityInput) (string, bool) {
	a := strings.ToLower(in.Attribute)
	if a != "" && (strings.Contains(a, "edition") || strings.Contains(a, "liter")) {
		return in.Attribute, true
	}
	return "", false
}

func editionTier(spaced, bracketed, tier string) func(QualityInput) (string, bool) {
	return func(in QualityInput) (string, bool) {
		t := strings.ToLower(in.Text)
		if strings.Contains(t, "edition") && (strings.Contains(t, spaced) || strings.Contains(t, bracketed)) {
			return tier, true
		}
		return "", false
	}
}

func qualityLiterweine(in QualityInput) (string, bool) {
	t := strings.ToLower(in.Text)
	if strings.Contains(t, "literwein") || strings.Contains(t, "liter-wein") || strings.Contains(t, "1,0 l") {
		return "Literweine", true
	}
	return "", false
}

// ── Flavor ────────────────────────────────────────────────────────────────────

var knownFlavors = map[string]bool{
	"trocken": true, "feinherb": true, "halbtrocken": true, "fruchtig": true, "lieblich": true,
	"süß": true, "suess": true, "dry": true, "off-dry": true, "fruity": true, "sweet": true,
}

// FlavorInput is what flavor resolution looks at.
type FlavorInput struct {
	Direct     string // Geschmacksrichtung / Geschmack / Taste / Flavor
	Attributes []woocommerce.Attribute
	Tags       []woocommerce.Term
}

// FlavorRules resolve a wine's sweetness class; order matters.
var FlavorRules = []Rule[FlavorInput]{
	{"attribute", func(in FlavorInput) (string, bool) { return in.Direct, in.Direct != "" }},
	{"attribute-options", flavorFromOptions},
	{"tags", flavorFromTags},
}

// ResolveFlavor returns the flavor or "".
func ResolveFlavor(in FlavorInput) string {
	v, _ := FirstMatch(FlavorRules, in)
	return v
}

func flavorFromOptions(in FlavorInput) (string, bool) {
	for _, a := range in.Attributes {
		for _, opt := range a.Options {
			if knownFlavors[strings.ToLower(opt)] {
				return opt, true
			}
		}
	}
	return "", false
}

func flavorFromTags(in FlavorInput) (string, bool) {
	for _, t := range in.Tags {
		if knownFlavors[strings.ToLower(t.Name)] {
			return t.Name, true
		}
	}
	return "", false
}
