package svg

import (
	"bytes"
	"fmt"
	"math"

	"github.com/auspexlabs/imager/pkg/chart"
	"github.com/auspexlabs/imager/pkg/chart/layout"
	"github.com/auspexlabs/imager/pkg/chart/styles"
	"github.com/auspexlabs/imager/pkg/geo"
)

// Wheel geometry shared by all variants, as fractions of the chart radius.
const (
	wheelInnerFrac  = 0.8  // sector division lines run from here to the rim
	signLabelFrac   = 0.9  // sign abbreviations sit between division and rim
	houseNumberFrac = 0.75 // house numbers sit inside the house lines
)

// canvas accumulates the markup fragments of one document in stacking order.
// It holds only render-scoped derived values (dimensions, center, radius,
// palette); positions are computed by the layout stage and passed into each
// drawing method explicitly.
type canvas struct {
	buf    bytes.Buffer
	pal    *styles.Palette
	width  float64
	height float64
	cx, cy float64
	radius float64
}

func newCanvas(pal *styles.Palette) *canvas {
	w, h := pal.Width(), pal.Height()
	return &canvas{
		pal:    pal,
		width:  w,
		height: h,
		cx:     w / 2,
		cy:     h / 2,
		radius: math.Min(w, h) * 0.4,
	}
}

// header writes the document opening: dimensions, viewBox, gradient defs,
// and the stylesheet. extraCSS appends variant-specific classes.
func (c *canvas) header(extraCSS string) {
	fmt.Fprintf(&c.buf, "<svg width=\"%.0f\" height=\"%.0f\" viewBox=\"0 0 %.0f %.0f\" xmlns=\"http://www.w3.org/2000/svg\">\n",
		c.width, c.height, c.width, c.height)
	c.buf.WriteString("<defs>\n" + gradientDefs + "</defs>\n")
	c.buf.WriteString("<style>\n" + c.baseCSS() + extraCSS + "</style>\n")
}

const gradientDefs = `<radialGradient id="chartGradient" cx="50%" cy="50%" r="50%">
<stop offset="0%" stop-color="#ffffff" stop-opacity="1"/>
<stop offset="100%" stop-color="#f8f9fa" stop-opacity="1"/>
</radialGradient>
`

func (c *canvas) baseCSS() string {
	return fmt.Sprintf(`.chart-background { fill: url(#chartGradient); stroke: %s; stroke-width: 2; }
.house-line { stroke: %s; stroke-width: 1; fill: none; }
.zodiac-line { stroke: %s; stroke-width: 2; fill: none; }
.planet-symbol { font-family: serif; font-size: %.0fpx; text-anchor: middle; dominant-baseline: central; }
.sign-symbol { font-family: serif; font-size: %.0fpx; text-anchor: middle; dominant-baseline: central; }
.aspect-line { stroke-width: 1; fill: none; opacity: 0.7; }
.degree-text { font-family: sans-serif; font-size: 10px; text-anchor: middle; dominant-baseline: central; }
`,
		c.pal.BorderColor(), c.pal.HouseLineColor(), c.pal.ZodiacLineColor(),
		c.pal.PlanetFontSize(), c.pal.SignFontSize())
}

// legendCSS is shared by the two overlay variants; the indicator classes for
// each dataset are appended per variant.
const legendCSS = `.legend-text { font-family: sans-serif; font-size: 12px; text-anchor: start; dominant-baseline: central; }
.legend-background { fill: rgba(255, 255, 255, 0.9); stroke: #333; stroke-width: 1; }
`

func (c *canvas) close() []byte {
	c.buf.WriteString("</svg>\n")
	return c.buf.Bytes()
}

// background draws the outer boundary circle filled with the chart gradient.
func (c *canvas) background() {
	circle(&c.buf, c.cx, c.cy, c.radius, "chart-background")
}

// wheel draws the twelve 30° sectors: a division line at each boundary and a
// three-letter sign abbreviation near each sector midpoint.
func (c *canvas) wheel() {
	for i := 0; i < 12; i++ {
		boundary := float64(i * 30)
		x1, y1 := geo.Point(c.cx, c.cy, c.radius*wheelInnerFrac, boundary)
		x2, y2 := geo.Point(c.cx, c.cy, c.radius, boundary)
		line(&c.buf, x1, y1, x2, y2, "zodiac-line")

		sx, sy := geo.Point(c.cx, c.cy, c.radius*signLabelFrac, boundary+15)
		text(&c.buf, sx, sy, "sign-symbol", "", chart.ZodiacSigns[i][:3])
	}
}

// houses draws a cusp line from the center and the house number offset 15°
// further along the wheel. A nil or empty cusp list draws nothing.
func (c *canvas) houses(cusps []chart.Cusp) {
	for _, h := range cusps {
		x2, y2 := geo.Point(c.cx, c.cy, c.radius*wheelInnerFrac, h.Longitude)
		line(&c.buf, c.cx, c.cy, x2, y2, "house-line")

		nx, ny := geo.Point(c.cx, c.cy, c.radius*houseNumberFrac, h.Longitude+15)
		text(&c.buf, nx, ny, "degree-text", "", fmt.Sprintf("%d", h.Number))
	}
}

// marker draws the dataset indicator behind one body glyph. The single
// variant uses markerNone.
type marker func(c *canvas, x, y float64)

func markerNone(*canvas, float64, float64) {}

func markerBox(class string) marker {
	return func(c *canvas, x, y float64) {
		const size = 22
		rect(&c.buf, x-size/2, y-size/2, size, size, class)
	}
}

func markerRing(class string, r float64) marker {
	return func(c *canvas, x, y float64) {
		circle(&c.buf, x, y, r, class)
	}
}

// bodies draws each body's marker, glyph, and degree/minute label at its
// computed position. Bodies absent from the position map are skipped.
// degreeDX is the horizontal offset of the degree label from the glyph.
func (c *canvas) bodies(list []chart.Body, positions map[string]layout.Position, mark marker, degreeDX float64) {
	for _, b := range list {
		pos, ok := positions[b.Name]
		if !ok {
			continue
		}

		mark(c, pos.X, pos.Y)

		color := c.pal.BodyColor(b.Name)
		text(&c.buf, pos.X, pos.Y, "planet-symbol", color, chart.Symbol(b.Name))

		lon := geo.Normalize(b.Longitude)
		degree := int(math.Mod(lon, 30))
		minute := int(math.Mod(lon, 1) * 60)
		text(&c.buf, pos.X+degreeDX, pos.Y+5, "degree-text", color,
			fmt.Sprintf("%d°%02d", degree, minute))
	}
}

// aspects draws a colored line per link between positions from a single
// lookup, stripping dataset prefixes from both endpoints. Links with an
// unresolved endpoint are silently skipped.
func (c *canvas) aspects(links []chart.Aspect, positions map[string]layout.Position, opacity float64) {
	for _, a := range links {
		p1, ok1 := positions[chart.StripPrefix(a.Body1)]
		p2, ok2 := positions[chart.StripPrefix(a.Body2)]
		if !ok1 || !ok2 {
			continue
		}
		strokedLine(&c.buf, p1.X, p1.Y, p2.X, p2.Y, "aspect-line", c.pal.AspectColor(a.Type), opacity)
	}
}

// legendEntry is one indicator-plus-label row in an overlay legend.
type legendEntry struct {
	draw  func(c *canvas, x, y float64)
	label string
}

// legend draws the overlay explanation box in the top-left corner.
func (c *canvas) legend(entries []legendEntry) {
	const (
		legendX = 20
		legendY = 20
		legendW = 200
		legendH = 80
	)
	rect(&c.buf, legendX, legendY, legendW, legendH, "legend-background")

	rowY := legendY + 25.0
	for _, e := range entries {
		e.draw(c, legendX+10, rowY)
		text(&c.buf, legendX+36, rowY, "legend-text", "", e.label)
		rowY += 30
	}
}
