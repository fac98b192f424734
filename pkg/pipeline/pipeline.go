// Package pipeline implements the chart generation pipeline shared by the
// CLI and the API: decode a request, validate the chart type, hand the
// normalized datasets to the SVG composer, and assemble the response
// envelope.
//
// The Request struct is the service's wire format. Field names follow the
// upstream contract: a single chart carries planets/houses/aspects at the
// top level, a dual-symmetric chart carries chart1/chart2/synastries, and a
// dual-asymmetric chart carries natal_planets/transit_planets plus the
// layered aspect collections.
//
// One call renders one chart; nothing is cached or shared between calls.
package pipeline

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/auspexlabs/imager/pkg/chart"
	"github.com/auspexlabs/imager/pkg/chart/styles"
	"github.com/auspexlabs/imager/pkg/chart/svg"
	apperrors "github.com/auspexlabs/imager/pkg/errors"
)

// Dataset is one side of a dual-symmetric chart.
type Dataset struct {
	Planets []chart.Body `json:"planets"`
	Houses  []chart.Cusp `json:"houses,omitempty"`
}

// Transit is the nested transit object of a dual-asymmetric chart.
type Transit struct {
	TransitToNatalAspects []chart.Aspect `json:"transit_to_natal_aspects,omitempty"`
}

// Request is a chart generation request as received on the wire.
// Which dataset fields are required depends on ChartType; the rest are
// ignored. Absent lists decode as nil, which the renderer distinguishes
// from present-but-empty.
type Request struct {
	ChartType string `json:"chart_type"`

	// Single chart fields.
	Planets []chart.Body   `json:"planets,omitempty"`
	Aspects []chart.Aspect `json:"aspects,omitempty"`

	// Houses apply to any variant.
	Houses []chart.Cusp `json:"houses,omitempty"`

	// Dual-symmetric fields.
	Chart1     *Dataset            `json:"chart1,omitempty"`
	Chart2     *Dataset            `json:"chart2,omitempty"`
	Synastries []chart.CrossAspect `json:"synastries,omitempty"`

	// Dual-asymmetric fields.
	NatalPlanets   []chart.Body   `json:"natal_planets,omitempty"`
	TransitPlanets []chart.Body   `json:"transit_planets,omitempty"`
	Transit        *Transit       `json:"transit,omitempty"`
	TransitAspects []chart.Aspect `json:"transit_aspects,omitempty"`

	// Styling overrides, applied over the built-in defaults.
	StyleOptions *styles.Options `json:"style_options,omitempty"`

	// Metadata passthrough; never interpreted.
	Date        string `json:"date,omitempty"`
	HouseSystem string `json:"house_system,omitempty"`
	Ayanamsa    string `json:"ayanamsa,omitempty"`
}

// Metadata echoes whichever descriptive request fields were present.
type Metadata struct {
	ChartType   string `json:"chart_type,omitempty"`
	GeneratedAt string `json:"generated_at,omitempty"`
	HouseSystem string `json:"house_system,omitempty"`
	Ayanamsa    string `json:"ayanamsa,omitempty"`
}

// Response is the boundary envelope for both outcomes. Success responses
// carry the markup and metadata; failures carry the message and, for server
// errors, diagnostic detail.
type Response struct {
	Success   bool      `json:"success"`
	ChartType string    `json:"chart_type,omitempty"`
	SVG       string    `json:"svg,omitempty"`
	Metadata  *Metadata `json:"metadata,omitempty"`
	Error     string    `json:"error,omitempty"`
	Detail    string    `json:"detail,omitempty"`
}

// Result is a successful render.
type Result struct {
	Type     chart.Type
	SVG      []byte
	Metadata Metadata
}

// Validate resolves the request's chart type. Unknown types return an
// INVALID_CHART_TYPE error before any rendering is attempted.
func (r *Request) Validate() (chart.Type, error) {
	t, ok := chart.ParseType(r.ChartType)
	if !ok {
		return "", apperrors.New(apperrors.ErrCodeInvalidChartType, "unsupported chart type: %s", r.ChartType)
	}
	return t, nil
}

// metadata builds the passthrough metadata block.
func (r *Request) metadata() Metadata {
	return Metadata{
		ChartType:   r.ChartType,
		GeneratedAt: r.Date,
		HouseSystem: r.HouseSystem,
		Ayanamsa:    r.Ayanamsa,
	}
}

// document maps the wire fields onto the renderer's dataset roles for the
// resolved variant.
func (r *Request) document(t chart.Type) svg.Document {
	switch t {
	case chart.TypeDualSymmetric:
		doc := svg.Document{
			Type:   t,
			Houses: r.Houses,
			Cross:  r.Synastries,
		}
		if r.Chart1 != nil {
			doc.Inner = r.Chart1.Planets
			if doc.Houses == nil {
				doc.Houses = r.Chart1.Houses
			}
		}
		if r.Chart2 != nil {
			doc.Outer = r.Chart2.Planets
		}
		return doc

	case chart.TypeDualAsymmetric:
		doc := svg.Document{
			Type:   t,
			Inner:  r.NatalPlanets,
			Outer:  r.TransitPlanets,
			Houses: r.Houses,
		}
		if r.Transit != nil {
			doc.CrossAspects = r.Transit.TransitToNatalAspects
		}
		// Top-level aspect-like lists, in fallback search order.
		if r.TransitAspects != nil {
			doc.FallbackAspects = append(doc.FallbackAspects, r.TransitAspects)
		}
		if r.Aspects != nil {
			doc.FallbackAspects = append(doc.FallbackAspects, r.Aspects)
		}
		return doc

	default:
		return svg.Document{
			Type:    t,
			Bodies:  r.Planets,
			Houses:  r.Houses,
			Aspects: r.Aspects,
		}
	}
}

// Render validates the request and produces the chart markup. The logger
// may be nil. Errors from the composer propagate unwrapped so the boundary
// can distinguish caller errors from server errors by code.
func Render(req *Request, logger *log.Logger) (*Result, error) {
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}

	t, err := req.Validate()
	if err != nil {
		return nil, err
	}
	logger.Debug("rendering chart", "chart_type", t)

	var opts styles.Options
	if req.StyleOptions != nil {
		opts = *req.StyleOptions
	}

	out, err := svg.Render(req.document(t), styles.NewPalette(opts))
	if err != nil {
		return nil, err
	}
	logger.Debug("chart rendered", "bytes", len(out))

	return &Result{Type: t, SVG: out, Metadata: req.metadata()}, nil
}

// Succeed builds the success envelope for a result.
func Succeed(req *Request, res *Result) *Response {
	meta := res.Metadata
	return &Response{
		Success:   true,
		ChartType: req.ChartType,
		SVG:       string(res.SVG),
		Metadata:  &meta,
	}
}

// Fail builds the failure envelope. Caller errors carry only the message;
// server errors additionally expose the full error chain as detail.
func Fail(err error) *Response {
	resp := &Response{
		Success: false,
		Error:   apperrors.UserMessage(err),
	}
	if !apperrors.IsCallerError(err) {
		resp.Detail = err.Error()
	}
	return resp
}
