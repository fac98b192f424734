// Package chart defines the core data model for wheel charts: celestial
// bodies, house cusps, aspect links, and the closed set of chart variants.
//
// All values are plain read-only inputs constructed once per render call.
// The JSON field names follow the service's wire format (planet1/planet2
// for aspect endpoints, longitude in degrees).
package chart

import "strings"

// Type identifies a chart variant. The set is closed: rendering dispatches
// exhaustively over these three values.
type Type string

const (
	// TypeSingle renders one dataset on the wheel.
	TypeSingle Type = "single"
	// TypeDualSymmetric overlays two equally-treated datasets
	// (inner boxes / outer circles), e.g. a synastry chart.
	TypeDualSymmetric Type = "dual-symmetric"
	// TypeDualAsymmetric overlays a moving dataset on a reference dataset
	// (solid inner / dashed outer rings), e.g. transits over a natal chart.
	TypeDualAsymmetric Type = "dual-asymmetric"
)

// typeAliases maps the legacy wire names to the canonical variants.
var typeAliases = map[string]Type{
	"natal":    TypeSingle,
	"synastry": TypeDualSymmetric,
	"transit":  TypeDualAsymmetric,
}

// ParseType resolves a chart type string to a Type, accepting both the
// canonical names and the legacy natal/synastry/transit aliases.
// The second return value reports whether the string was recognized.
func ParseType(s string) (Type, bool) {
	switch Type(s) {
	case TypeSingle, TypeDualSymmetric, TypeDualAsymmetric:
		return Type(s), true
	}
	if t, ok := typeAliases[s]; ok {
		return t, true
	}
	return "", false
}

// Body is a celestial body at an ecliptic longitude in degrees.
// Longitude is the sole driver of the body's angular position on the wheel.
type Body struct {
	Name      string  `json:"name"`
	Longitude float64 `json:"longitude"`
}

// Cusp is a house boundary at an ecliptic longitude in degrees.
type Cusp struct {
	Number    int     `json:"number"`
	Longitude float64 `json:"longitude"`
}

// Aspect links two bodies by name with a named angular relationship.
// Endpoint names may carry a dataset-qualifying prefix ("Natal Sun",
// "Transit Moon") which must be stripped before position lookup.
type Aspect struct {
	Body1 string `json:"planet1"`
	Body2 string `json:"planet2"`
	Type  string `json:"aspect"`
}

// CrossAspect links a body from each side of a dual-symmetric chart.
type CrossAspect struct {
	Body1 string `json:"person1"`
	Body2 string `json:"person2"`
	Type  string `json:"aspect"`
}

// BodyOrder is the canonical center-to-edge ordering that assigns radial
// slots when bodies are grouped. Bodies not in this list place outermost.
var BodyOrder = []string{
	"Sun", "Moon", "Mercury", "Venus", "Mars",
	"Jupiter", "Saturn", "Uranus", "Neptune", "Pluto",
}

// ZodiacSigns in wheel order starting at 0° Aries.
var ZodiacSigns = []string{
	"Aries", "Taurus", "Gemini", "Cancer", "Leo", "Virgo",
	"Libra", "Scorpio", "Sagittarius", "Capricorn", "Aquarius", "Pisces",
}

// bodySymbols maps body names to their astrological glyphs.
var bodySymbols = map[string]string{
	"Sun": "☉", "Moon": "☽", "Mercury": "☿", "Venus": "♀", "Mars": "♂",
	"Jupiter": "♃", "Saturn": "♄", "Uranus": "♅", "Neptune": "♆", "Pluto": "♇",
}

// aspectSymbols maps aspect type names to their glyphs.
var aspectSymbols = map[string]string{
	"Conjunction": "☌", "Opposition": "☍", "Trine": "△",
	"Square": "□", "Sextile": "⚹",
}

// OrderIndex returns the body's radial slot in the canonical ordering.
// Unknown bodies return len(BodyOrder), placing them outermost.
func OrderIndex(name string) int {
	for i, n := range BodyOrder {
		if n == name {
			return i
		}
	}
	return len(BodyOrder)
}

// Symbol returns the glyph for a body, or a two-letter fallback built from
// the name when the body is unrecognized.
func Symbol(name string) string {
	if s, ok := bodySymbols[name]; ok {
		return s
	}
	if r := []rune(name); len(r) > 2 {
		return string(r[:2])
	}
	return name
}

// AspectSymbol returns the glyph for an aspect type, or the type name itself
// when unrecognized.
func AspectSymbol(aspectType string) string {
	if s, ok := aspectSymbols[aspectType]; ok {
		return s
	}
	return aspectType
}

// StripPrefix removes a dataset-qualifying "Natal " or "Transit " prefix
// from an aspect endpoint name.
func StripPrefix(name string) string {
	name = strings.TrimPrefix(name, "Natal ")
	name = strings.TrimPrefix(name, "Transit ")
	return name
}
