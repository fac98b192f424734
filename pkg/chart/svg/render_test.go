package svg

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/auspexlabs/imager/pkg/chart"
	"github.com/auspexlabs/imager/pkg/chart/layout"
	"github.com/auspexlabs/imager/pkg/chart/styles"
	apperrors "github.com/auspexlabs/imager/pkg/errors"
)

func render(t *testing.T, doc Document, pal *styles.Palette) string {
	t.Helper()
	out, err := Render(doc, pal)
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	return string(out)
}

func TestRenderSingle(t *testing.T) {
	// Scenario: single dataset, no houses. The wheel is always present,
	// exactly one marker per body, zero house lines.
	out := render(t, Document{
		Type: chart.TypeSingle,
		Bodies: []chart.Body{
			{Name: "Sun", Longitude: 0},
			{Name: "Moon", Longitude: 200},
		},
	}, nil)

	if got := strings.Count(out, `class="planet-symbol"`); got != 2 {
		t.Errorf("planet-symbol count = %d, want 2", got)
	}
	if got := strings.Count(out, `class="house-line"`); got != 0 {
		t.Errorf("house-line count = %d, want 0", got)
	}
	if got := strings.Count(out, `class="sign-symbol"`); got != 12 {
		t.Errorf("sign-symbol count = %d, want 12", got)
	}
	if got := strings.Count(out, `class="zodiac-line"`); got != 12 {
		t.Errorf("zodiac-line count = %d, want 12", got)
	}
	if !strings.HasPrefix(out, "<svg ") || !strings.HasSuffix(out, "</svg>\n") {
		t.Error("output is not a closed svg document")
	}
}

func TestRenderSingleHouses(t *testing.T) {
	cusps := make([]chart.Cusp, 12)
	for i := range cusps {
		cusps[i] = chart.Cusp{Number: i + 1, Longitude: float64(i * 30)}
	}

	out := render(t, Document{
		Type:   chart.TypeSingle,
		Bodies: []chart.Body{{Name: "Sun", Longitude: 5}},
		Houses: cusps,
	}, nil)

	if got := strings.Count(out, `class="house-line"`); got != 12 {
		t.Errorf("house-line count = %d, want 12", got)
	}
	if !strings.Contains(out, ">12</text>") {
		t.Error("house number 12 not labeled")
	}
}

func TestRenderSingleDegreeLabel(t *testing.T) {
	out := render(t, Document{
		Type:   chart.TypeSingle,
		Bodies: []chart.Body{{Name: "Sun", Longitude: 95.5}},
	}, nil)

	// 95.5° is 5°30 into its sign.
	if !strings.Contains(out, ">5°30</text>") {
		t.Error("degree/minute label 5°30 missing")
	}
}

func TestRenderSingleUnknownBodyFallback(t *testing.T) {
	out := render(t, Document{
		Type:   chart.TypeSingle,
		Bodies: []chart.Body{{Name: "Chiron", Longitude: 120}},
	}, nil)

	// Unknown bodies draw with a two-letter glyph and the fallback color.
	if !strings.Contains(out, `fill="#333">Ch</text>`) {
		t.Error("unknown body fallback glyph missing")
	}
}

func TestRenderSingleUnresolvedAspectSkipped(t *testing.T) {
	out := render(t, Document{
		Type:    chart.TypeSingle,
		Bodies:  []chart.Body{{Name: "Sun", Longitude: 10}},
		Aspects: []chart.Aspect{{Body1: "Sun", Body2: "Moon", Type: "Square"}},
	}, nil)

	if got := strings.Count(out, `class="aspect-line"`); got != 0 {
		t.Errorf("aspect-line count = %d, want 0 (endpoint unresolved)", got)
	}
}

func TestRenderSingleMissingDataset(t *testing.T) {
	_, err := Render(Document{Type: chart.TypeSingle}, nil)
	if err == nil {
		t.Fatal("expected error for missing planets list")
	}
	if !apperrors.Is(err, apperrors.ErrCodeMissingDataset) {
		t.Errorf("error code = %v, want MISSING_DATASET", apperrors.GetCode(err))
	}
}

func TestRenderUnknownType(t *testing.T) {
	out, err := Render(Document{Type: chart.Type("horary")}, nil)
	if err == nil {
		t.Fatal("expected error for unknown chart type")
	}
	if !apperrors.Is(err, apperrors.ErrCodeInvalidChartType) {
		t.Errorf("error code = %v, want INVALID_CHART_TYPE", apperrors.GetCode(err))
	}
	if out != nil {
		t.Error("no markup should be produced on error")
	}
}

func TestRenderDualSymmetric(t *testing.T) {
	// Scenario: chart1 Sun@10, chart2 Moon@10, one explicit cross-link.
	doc := Document{
		Type:  chart.TypeDualSymmetric,
		Inner: []chart.Body{{Name: "Sun", Longitude: 10}},
		Outer: []chart.Body{{Name: "Moon", Longitude: 10}},
		Cross: []chart.CrossAspect{{Body1: "Sun", Body2: "Moon", Type: "Conjunction"}},
	}
	out := render(t, doc, nil)

	if got := strings.Count(out, `class="aspect-line"`); got != 1 {
		t.Errorf("aspect-line count = %d, want 1", got)
	}
	if !strings.Contains(out, `stroke="#FF6B6B"`) {
		t.Error("cross link not colored with the Conjunction default")
	}
	if got := strings.Count(out, `class="chart1-indicator"`); got != 2 {
		// one marker box plus one legend swatch
		t.Errorf("chart1-indicator count = %d, want 2", got)
	}
	if got := strings.Count(out, `class="chart2-indicator"`); got != 2 {
		t.Errorf("chart2-indicator count = %d, want 2", got)
	}
	if !strings.Contains(out, ">Chart 1 (Inner)</text>") || !strings.Contains(out, ">Chart 2 (Outer)</text>") {
		t.Error("legend labels missing")
	}
}

func TestRenderDualSymmetricColorOverride(t *testing.T) {
	doc := Document{
		Type:  chart.TypeDualSymmetric,
		Inner: []chart.Body{{Name: "Sun", Longitude: 10}},
		Outer: []chart.Body{{Name: "Moon", Longitude: 10}},
		Cross: []chart.CrossAspect{{Body1: "Sun", Body2: "Moon", Type: "Conjunction"}},
	}
	pal := styles.NewPalette(styles.Options{
		AspectColors: map[string]string{"Conjunction": "#123456"},
	})
	out := render(t, doc, pal)

	if !strings.Contains(out, `stroke="#123456"`) {
		t.Error("aspect color override not applied")
	}
	if strings.Contains(out, `stroke="#FF6B6B"`) {
		t.Error("default Conjunction color drawn despite override")
	}
}

func TestRenderDualSymmetricMissingDataset(t *testing.T) {
	_, err := Render(Document{
		Type:  chart.TypeDualSymmetric,
		Inner: []chart.Body{{Name: "Sun", Longitude: 10}},
	}, nil)
	if !apperrors.Is(err, apperrors.ErrCodeMissingDataset) {
		t.Errorf("error = %v, want MISSING_DATASET", err)
	}
}

func TestRenderDualAsymmetricPrefixOrientation(t *testing.T) {
	// Scenario: a nested cross link with prefixed endpoints. The prefixes
	// are stripped and the line runs natal side → transit side, not swapped.
	doc := Document{
		Type:  chart.TypeDualAsymmetric,
		Inner: []chart.Body{{Name: "Sun", Longitude: 10}},
		Outer: []chart.Body{{Name: "Moon", Longitude: 120}},
		CrossAspects: []chart.Aspect{
			{Body1: "Natal Sun", Body2: "Transit Moon", Type: "Trine"},
		},
	}
	out := render(t, doc, nil)

	pal := styles.NewPalette(styles.Options{})
	cx, cy, r := pal.Width()/2, pal.Height()/2, pal.Width()*0.4
	natal := layout.Compute(doc.Inner, cx, cy, r, layout.WithBaseFactor(innerBandFactor))
	transit := layout.Compute(doc.Outer, cx, cy, r, layout.WithBaseFactor(outerBandFactor))

	want := fmt.Sprintf(`<line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" class="aspect-line" stroke="#45B7D1" opacity="0.6"/>`,
		natal["Sun"].X, natal["Sun"].Y, transit["Moon"].X, transit["Moon"].Y)
	if !strings.Contains(out, want) {
		t.Errorf("aspect line missing or swapped:\nwant fragment %s", want)
	}
	if got := strings.Count(out, `class="aspect-line"`); got != 1 {
		t.Errorf("aspect-line count = %d, want 1", got)
	}
}

func TestRenderDualAsymmetricFallbackOrientation(t *testing.T) {
	// A top-level link listed transit-first still resolves, drawn from the
	// natal-side endpoint.
	doc := Document{
		Type:  chart.TypeDualAsymmetric,
		Inner: []chart.Body{{Name: "Sun", Longitude: 10}},
		Outer: []chart.Body{{Name: "Moon", Longitude: 120}},
		FallbackAspects: [][]chart.Aspect{{
			{Body1: "Transit Moon", Body2: "Natal Sun", Type: "Trine"},
		}},
	}
	out := render(t, doc, nil)

	pal := styles.NewPalette(styles.Options{})
	cx, cy, r := pal.Width()/2, pal.Height()/2, pal.Width()*0.4
	natal := layout.Compute(doc.Inner, cx, cy, r, layout.WithBaseFactor(innerBandFactor))

	wantPrefix := fmt.Sprintf(`<line x1="%.2f" y1="%.2f"`, natal["Sun"].X, natal["Sun"].Y)
	if !strings.Contains(out, wantPrefix) {
		t.Error("fallback link not drawn from the natal-side endpoint")
	}
}

func TestRenderDualAsymmetricDedup(t *testing.T) {
	// The same logical link present both nested and top-level draws once.
	link := chart.Aspect{Body1: "Natal Sun", Body2: "Transit Moon", Type: "Square"}
	doc := Document{
		Type:            chart.TypeDualAsymmetric,
		Inner:           []chart.Body{{Name: "Sun", Longitude: 10}},
		Outer:           []chart.Body{{Name: "Moon", Longitude: 100}},
		CrossAspects:    []chart.Aspect{link},
		FallbackAspects: [][]chart.Aspect{{link}, {link}},
	}
	out := render(t, doc, nil)

	if got := strings.Count(out, `class="aspect-line"`); got != 1 {
		t.Errorf("aspect-line count = %d, want 1 (deduplicated)", got)
	}
}

func TestRenderDualAsymmetricIndicators(t *testing.T) {
	out := render(t, Document{
		Type:  chart.TypeDualAsymmetric,
		Inner: []chart.Body{{Name: "Sun", Longitude: 10}},
		Outer: []chart.Body{{Name: "Sun", Longitude: 40}},
	}, nil)

	if !strings.Contains(out, "stroke-dasharray: 4,2") {
		t.Error("transit indicator style missing dash pattern")
	}
	if got := strings.Count(out, `class="natal-indicator"`); got != 2 {
		t.Errorf("natal-indicator count = %d, want 2 (marker + legend)", got)
	}
	if got := strings.Count(out, `class="transit-indicator"`); got != 2 {
		t.Errorf("transit-indicator count = %d, want 2 (marker + legend)", got)
	}
}

func TestRenderDeterministic(t *testing.T) {
	doc := Document{
		Type: chart.TypeSingle,
		Bodies: []chart.Body{
			{Name: "Sun", Longitude: 14.2},
			{Name: "Moon", Longitude: 16.1},
			{Name: "Mars", Longitude: 250},
		},
		Houses:  []chart.Cusp{{Number: 1, Longitude: 12}},
		Aspects: []chart.Aspect{{Body1: "Sun", Body2: "Mars", Type: "Trine"}},
	}

	first, err := Render(doc, nil)
	if err != nil {
		t.Fatal(err)
	}
	second, err := Render(doc, nil)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(first, second) {
		t.Error("identical documents rendered differently")
	}
}

func TestRenderFragmentOrder(t *testing.T) {
	out := render(t, Document{
		Type:    chart.TypeSingle,
		Bodies:  []chart.Body{{Name: "Sun", Longitude: 10}, {Name: "Moon", Longitude: 200}},
		Houses:  []chart.Cusp{{Number: 1, Longitude: 12}},
		Aspects: []chart.Aspect{{Body1: "Sun", Body2: "Moon", Type: "Opposition"}},
	}, nil)

	// Stacking order: background, wheel, houses, bodies, aspects.
	order := []string{
		`class="chart-background"`,
		`class="zodiac-line"`,
		`class="house-line"`,
		`class="planet-symbol"`,
		`class="aspect-line"`,
	}
	last := -1
	for _, frag := range order {
		idx := strings.Index(out, frag)
		if idx < 0 {
			t.Fatalf("fragment %s missing", frag)
		}
		if idx < last {
			t.Errorf("fragment %s out of stacking order", frag)
		}
		last = idx
	}
}
