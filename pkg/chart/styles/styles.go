// Package styles resolves display colors and scalar drawing options for
// wheel charts.
//
// Resolution order is always: caller override → built-in default → generic
// fallback. A Palette is constructed once per render from the caller's
// options and passed explicitly to the drawing stages; lookups never fail,
// unknown names simply resolve to the fallback color.
package styles

import (
	"bytes"
	"encoding/xml"
)

// Kind selects a color table.
type Kind string

const (
	// KindBody selects the celestial-body color table.
	KindBody Kind = "body"
	// KindAspect selects the aspect-type color table.
	KindAspect Kind = "aspect"
)

// Generic fallback colors for names missing from both the overrides and the
// built-in defaults.
const (
	fallbackBodyColor   = "#333"
	fallbackAspectColor = "#666"
)

// defaultBodyColors is the built-in body palette.
var defaultBodyColors = map[string]string{
	"Sun":     "#FF6B35",
	"Moon":    "#4ECDC4",
	"Mercury": "#45B7D1",
	"Venus":   "#96CEB4",
	"Mars":    "#FFEAA7",
	"Jupiter": "#DDA0DD",
	"Saturn":  "#98D8C8",
	"Uranus":  "#6C5CE7",
	"Neptune": "#74B9FF",
	"Pluto":   "#A29BFE",
}

// defaultAspectColors is the built-in aspect palette.
var defaultAspectColors = map[string]string{
	"Conjunction": "#FF6B6B",
	"Opposition":  "#4ECDC4",
	"Trine":       "#45B7D1",
	"Square":      "#FFA07A",
	"Sextile":     "#98D8E8",
}

// Options carries caller style overrides. The zero value means "use every
// default". Field names double as the wire format (JSON for API requests,
// TOML for CLI style-config files).
type Options struct {
	Width  float64 `json:"width,omitempty" toml:"width"`
	Height float64 `json:"height,omitempty" toml:"height"`

	BorderColor     string `json:"border_color,omitempty" toml:"border_color"`
	HouseLineColor  string `json:"house_line_color,omitempty" toml:"house_line_color"`
	ZodiacLineColor string `json:"zodiac_line_color,omitempty" toml:"zodiac_line_color"`

	PlanetFontSize float64 `json:"planet_font_size,omitempty" toml:"planet_font_size"`
	SignFontSize   float64 `json:"sign_font_size,omitempty" toml:"sign_font_size"`

	Chart1BorderColor  string `json:"chart1_border_color,omitempty" toml:"chart1_border_color"`
	Chart2BorderColor  string `json:"chart2_border_color,omitempty" toml:"chart2_border_color"`
	NatalBorderColor   string `json:"natal_border_color,omitempty" toml:"natal_border_color"`
	TransitBorderColor string `json:"transit_border_color,omitempty" toml:"transit_border_color"`

	Chart1Label  string `json:"chart1_label,omitempty" toml:"chart1_label"`
	Chart2Label  string `json:"chart2_label,omitempty" toml:"chart2_label"`
	NatalLabel   string `json:"natal_label,omitempty" toml:"natal_label"`
	TransitLabel string `json:"transit_label,omitempty" toml:"transit_label"`

	PlanetColors map[string]string `json:"planet_colors,omitempty" toml:"planet_colors"`
	AspectColors map[string]string `json:"aspect_colors,omitempty" toml:"aspect_colors"`
}

// Merge returns o with every non-zero field of over applied on top.
// Color maps are merged key-by-key, over winning.
func (o Options) Merge(over Options) Options {
	merged := o

	setF := func(dst *float64, v float64) {
		if v != 0 {
			*dst = v
		}
	}
	setS := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}

	setF(&merged.Width, over.Width)
	setF(&merged.Height, over.Height)
	setF(&merged.PlanetFontSize, over.PlanetFontSize)
	setF(&merged.SignFontSize, over.SignFontSize)
	setS(&merged.BorderColor, over.BorderColor)
	setS(&merged.HouseLineColor, over.HouseLineColor)
	setS(&merged.ZodiacLineColor, over.ZodiacLineColor)
	setS(&merged.Chart1BorderColor, over.Chart1BorderColor)
	setS(&merged.Chart2BorderColor, over.Chart2BorderColor)
	setS(&merged.NatalBorderColor, over.NatalBorderColor)
	setS(&merged.TransitBorderColor, over.TransitBorderColor)
	setS(&merged.Chart1Label, over.Chart1Label)
	setS(&merged.Chart2Label, over.Chart2Label)
	setS(&merged.NatalLabel, over.NatalLabel)
	setS(&merged.TransitLabel, over.TransitLabel)

	merged.PlanetColors = mergeMaps(o.PlanetColors, over.PlanetColors)
	merged.AspectColors = mergeMaps(o.AspectColors, over.AspectColors)
	return merged
}

func mergeMaps(base, over map[string]string) map[string]string {
	if len(base) == 0 && len(over) == 0 {
		return nil
	}
	out := make(map[string]string, len(base)+len(over))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range over {
		out[k] = v
	}
	return out
}

// Palette resolves colors and scalar options for one render.
type Palette struct {
	opts Options
}

// NewPalette builds a Palette from caller overrides. A zero Options value is
// valid and yields the built-in defaults throughout.
func NewPalette(opts Options) *Palette {
	return &Palette{opts: opts}
}

// Color resolves a color for the given kind and name:
// override → built-in default → generic fallback. It never fails.
func (p *Palette) Color(kind Kind, name string) string {
	switch kind {
	case KindAspect:
		return lookup(p.opts.AspectColors, defaultAspectColors, name, fallbackAspectColor)
	default:
		return lookup(p.opts.PlanetColors, defaultBodyColors, name, fallbackBodyColor)
	}
}

// BodyColor resolves the display color for a celestial body.
func (p *Palette) BodyColor(name string) string { return p.Color(KindBody, name) }

// AspectColor resolves the display color for an aspect type.
func (p *Palette) AspectColor(name string) string { return p.Color(KindAspect, name) }

func lookup(overrides, defaults map[string]string, name, fallback string) string {
	if c, ok := overrides[name]; ok {
		return c
	}
	if c, ok := defaults[name]; ok {
		return c
	}
	return fallback
}

// Scalar option accessors with the service defaults.

func (p *Palette) Width() float64 { return orF(p.opts.Width, 800) }

func (p *Palette) Height() float64 { return orF(p.opts.Height, 800) }

func (p *Palette) BorderColor() string { return orS(p.opts.BorderColor, "#333") }

func (p *Palette) HouseLineColor() string { return orS(p.opts.HouseLineColor, "#ccc") }

func (p *Palette) ZodiacLineColor() string { return orS(p.opts.ZodiacLineColor, "#666") }

func (p *Palette) PlanetFontSize() float64 { return orF(p.opts.PlanetFontSize, 16) }

func (p *Palette) SignFontSize() float64 { return orF(p.opts.SignFontSize, 14) }

func (p *Palette) Chart1BorderColor() string { return orS(p.opts.Chart1BorderColor, "#FF6B35") }

func (p *Palette) Chart2BorderColor() string { return orS(p.opts.Chart2BorderColor, "#4ECDC4") }

func (p *Palette) NatalBorderColor() string { return orS(p.opts.NatalBorderColor, "#8B4513") }

func (p *Palette) TransitBorderColor() string { return orS(p.opts.TransitBorderColor, "#4169E1") }

func (p *Palette) Chart1Label() string { return orS(p.opts.Chart1Label, "Chart 1 (Inner)") }

func (p *Palette) Chart2Label() string { return orS(p.opts.Chart2Label, "Chart 2 (Outer)") }

func (p *Palette) NatalLabel() string { return orS(p.opts.NatalLabel, "Natal (Inner)") }

func (p *Palette) TransitLabel() string { return orS(p.opts.TransitLabel, "Transit (Outer)") }

func orF(v, def float64) float64 {
	if v != 0 {
		return v
	}
	return def
}

func orS(v, def string) string {
	if v != "" {
		return v
	}
	return def
}

// EscapeXML escapes s for inclusion in markup text nodes and attributes.
func EscapeXML(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
