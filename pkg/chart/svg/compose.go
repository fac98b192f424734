package svg

import (
	"fmt"

	"github.com/auspexlabs/imager/pkg/chart"
	"github.com/auspexlabs/imager/pkg/chart/layout"
	apperrors "github.com/auspexlabs/imager/pkg/errors"
)

// Base radius factors for the two radial bands of an overlay chart. The
// inner band holds the reference dataset, the outer band the second one.
const (
	innerBandFactor = 0.2
	outerBandFactor = 0.5
)

// composeSingle renders one dataset: wheel, houses, plain body glyphs, and
// the dataset's own aspect lines.
func (c *canvas) composeSingle(doc Document) error {
	if doc.Bodies == nil {
		return apperrors.New(apperrors.ErrCodeMissingDataset, "single chart requires a planets list")
	}

	c.header("")
	c.background()
	c.wheel()
	c.houses(doc.Houses)

	positions := layout.Compute(doc.Bodies, c.cx, c.cy, c.radius)
	c.bodies(doc.Bodies, positions, markerNone, 20)
	c.aspects(doc.Aspects, positions, 0)
	return nil
}

// composeDualSymmetric renders two equally-treated datasets: the first on
// the inner band with box indicators, the second on the outer band with
// circle indicators, cross-dataset aspect lines matched by exact name, and
// a legend explaining the marker shapes.
func (c *canvas) composeDualSymmetric(doc Document) error {
	if doc.Inner == nil {
		return apperrors.New(apperrors.ErrCodeMissingDataset, "dual-symmetric chart requires a chart1 planets list")
	}
	if doc.Outer == nil {
		return apperrors.New(apperrors.ErrCodeMissingDataset, "dual-symmetric chart requires a chart2 planets list")
	}

	indicatorCSS := fmt.Sprintf(`.chart1-indicator { fill: none; stroke: %s; stroke-width: 2; }
.chart2-indicator { fill: none; stroke: %s; stroke-width: 2; }
`, c.pal.Chart1BorderColor(), c.pal.Chart2BorderColor())

	c.header(indicatorCSS + legendCSS)
	c.background()
	c.wheel()
	c.houses(doc.Houses)

	innerPos := layout.Compute(doc.Inner, c.cx, c.cy, c.radius, layout.WithBaseFactor(innerBandFactor))
	outerPos := layout.Compute(doc.Outer, c.cx, c.cy, c.radius, layout.WithBaseFactor(outerBandFactor))

	c.bodies(doc.Inner, innerPos, markerBox("chart1-indicator"), 25)
	c.bodies(doc.Outer, outerPos, markerRing("chart2-indicator", 13), 25)

	for _, link := range doc.Cross {
		p1, ok1 := innerPos[link.Body1]
		p2, ok2 := outerPos[link.Body2]
		if !ok1 || !ok2 {
			continue
		}
		strokedLine(&c.buf, p1.X, p1.Y, p2.X, p2.Y, "aspect-line", c.pal.AspectColor(link.Type), 0.5)
	}

	c.legend([]legendEntry{
		{draw: legendBox("chart1-indicator"), label: c.pal.Chart1Label()},
		{draw: legendRing("chart2-indicator"), label: c.pal.Chart2Label()},
	})
	return nil
}

// composeDualAsymmetric renders a moving dataset over a reference dataset:
// solid circle indicators on the inner band, dashed on the outer, cross
// aspect lines resolved through the layered fallback, and a legend.
func (c *canvas) composeDualAsymmetric(doc Document) error {
	if doc.Inner == nil {
		return apperrors.New(apperrors.ErrCodeMissingDataset, "dual-asymmetric chart requires a natal planets list")
	}
	if doc.Outer == nil {
		return apperrors.New(apperrors.ErrCodeMissingDataset, "dual-asymmetric chart requires a transit planets list")
	}

	indicatorCSS := fmt.Sprintf(`.natal-indicator { fill: none; stroke: %s; stroke-width: 2; }
.transit-indicator { fill: none; stroke: %s; stroke-width: 2; stroke-dasharray: 4,2; }
`, c.pal.NatalBorderColor(), c.pal.TransitBorderColor())

	c.header(indicatorCSS + legendCSS)
	c.background()
	c.wheel()
	c.houses(doc.Houses)

	natalPos := layout.Compute(doc.Inner, c.cx, c.cy, c.radius, layout.WithBaseFactor(innerBandFactor))
	transitPos := layout.Compute(doc.Outer, c.cx, c.cy, c.radius, layout.WithBaseFactor(outerBandFactor))

	c.bodies(doc.Inner, natalPos, markerRing("natal-indicator", 12), 20)
	c.bodies(doc.Outer, transitPos, markerRing("transit-indicator", 12), 20)

	c.layeredCrossAspects(doc, natalPos, transitPos)

	c.legend([]legendEntry{
		{draw: legendRing("natal-indicator"), label: c.pal.NatalLabel()},
		{draw: legendRing("transit-indicator"), label: c.pal.TransitLabel()},
	})
	return nil
}

// layeredCrossAspects draws reference-to-moving aspect lines. The nested
// cross-aspect list is consulted first (its links are oriented natal →
// transit); then each top-level aspect-like list, testing both endpoint
// orientations so links survive regardless of which side was listed first.
// Lines are deduplicated by resolved endpoint pair, so a link present both
// nested and top-level draws once.
func (c *canvas) layeredCrossAspects(doc Document, natalPos, transitPos map[string]layout.Position) {
	type pair struct{ natal, transit string }
	seen := make(map[pair]bool)

	draw := func(natal, transit, aspectType string) {
		np, ok1 := natalPos[natal]
		tp, ok2 := transitPos[transit]
		if !ok1 || !ok2 {
			return
		}
		key := pair{natal, transit}
		if seen[key] {
			return
		}
		seen[key] = true
		strokedLine(&c.buf, np.X, np.Y, tp.X, tp.Y, "aspect-line", c.pal.AspectColor(aspectType), 0.6)
	}

	for _, a := range doc.CrossAspects {
		draw(chart.StripPrefix(a.Body1), chart.StripPrefix(a.Body2), a.Type)
	}

	for _, list := range doc.FallbackAspects {
		for _, a := range list {
			b1 := chart.StripPrefix(a.Body1)
			b2 := chart.StripPrefix(a.Body2)

			_, n1 := natalPos[b1]
			_, t2 := transitPos[b2]
			if n1 && t2 {
				draw(b1, b2, a.Type)
				continue
			}
			_, t1 := transitPos[b1]
			_, n2 := natalPos[b2]
			if t1 && n2 {
				draw(b2, b1, a.Type)
			}
		}
	}
}

func legendBox(class string) func(c *canvas, x, y float64) {
	return func(c *canvas, x, y float64) {
		rect(&c.buf, x, y-8, 16, 16, class)
	}
}

func legendRing(class string) func(c *canvas, x, y float64) {
	return func(c *canvas, x, y float64) {
		circle(&c.buf, x+8, y, 8, class)
	}
}
