// Package svg renders wheel-chart documents to SVG markup.
//
// A Document carries one or two normalized datasets; Render dispatches on
// the closed chart.Type set to the matching composer. Each composer emits
// fragments in a fixed stacking order (background, zodiac wheel, houses,
// body markers, aspect lines, optional legend) so later fragments draw on
// top of earlier ones. Rendering is pure and synchronous: one call, one
// byte slice, no state retained between calls.
//
// Structural problems (a required dataset missing from the document) are
// returned as errors and never recovered here; degradable problems (unknown
// body names, unresolvable aspect endpoints) degrade per element instead.
package svg

import (
	"github.com/auspexlabs/imager/pkg/chart"
	"github.com/auspexlabs/imager/pkg/chart/styles"
	apperrors "github.com/auspexlabs/imager/pkg/errors"
)

// Document is one render request after boundary decoding: datasets keyed by
// role rather than wire field names.
type Document struct {
	Type chart.Type

	// Bodies is the dataset of a single chart.
	Bodies []chart.Body

	// Inner and Outer are the two datasets of an overlay chart: chart1 /
	// chart2 for dual-symmetric, natal / transit for dual-asymmetric.
	Inner []chart.Body
	Outer []chart.Body

	// Houses is optional for every variant; nil draws no house lines.
	Houses []chart.Cusp

	// Aspects are the single chart's own links.
	Aspects []chart.Aspect

	// Cross holds the dual-symmetric explicit cross-dataset links,
	// matched by exact name against Inner (side 1) and Outer (side 2).
	Cross []chart.CrossAspect

	// CrossAspects is the dual-asymmetric nested cross-aspect list,
	// oriented reference → moving.
	CrossAspects []chart.Aspect

	// FallbackAspects are the dual-asymmetric top-level aspect-like lists,
	// consulted in order after CrossAspects with either endpoint
	// orientation.
	FallbackAspects [][]chart.Aspect
}

// Render produces the SVG markup for a document. A nil palette renders with
// the built-in defaults. Unknown chart types and missing required datasets
// return structured errors; no partial markup is returned on error.
func Render(doc Document, pal *styles.Palette) ([]byte, error) {
	if pal == nil {
		pal = styles.NewPalette(styles.Options{})
	}
	c := newCanvas(pal)

	var err error
	switch doc.Type {
	case chart.TypeSingle:
		err = c.composeSingle(doc)
	case chart.TypeDualSymmetric:
		err = c.composeDualSymmetric(doc)
	case chart.TypeDualAsymmetric:
		err = c.composeDualAsymmetric(doc)
	default:
		return nil, apperrors.New(apperrors.ErrCodeInvalidChartType, "unsupported chart type: %q", string(doc.Type))
	}
	if err != nil {
		return nil, err
	}
	return c.close(), nil
}
