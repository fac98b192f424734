// Package layout computes on-wheel positions for celestial bodies.
//
// Bodies close together in longitude would render their glyphs on top of
// each other, so the engine groups bodies by angular proximity and separates
// the members of each group radially instead: each body keeps its exact
// longitude but is pushed to the ring that matches its slot in the canonical
// center-to-edge ordering (Sun innermost .. Pluto, unknowns outermost).
//
// Compute is pure: the same input always produces the same position map,
// so callers may safely recompute instead of caching across stages.
package layout

import (
	"sort"

	"github.com/auspexlabs/imager/pkg/chart"
	"github.com/auspexlabs/imager/pkg/geo"
)

const (
	// DefaultBaseFactor is the innermost ring as a fraction of chart radius.
	DefaultBaseFactor = 0.3
	// DefaultSpacing is the radial gap between consecutive slots as a
	// fraction of chart radius.
	DefaultSpacing = 0.04
	// DefaultThreshold is the angular distance in degrees under which two
	// adjacent bodies join the same proximity group.
	DefaultThreshold = 5.0
)

// Position is the resolved placement of one body. Values are computed once
// per render and never mutated afterward.
type Position struct {
	X, Y   float64
	Radius float64
}

// Option configures a Compute call.
type Option func(*config)

type config struct {
	baseFactor float64
	spacing    float64
	threshold  float64
}

// WithBaseFactor sets the innermost ring fraction. Dual-chart overlays use
// 0.2 for the inner dataset and 0.5 for the outer one.
func WithBaseFactor(f float64) Option { return func(c *config) { c.baseFactor = f } }

// WithSpacing sets the per-slot radial increment fraction.
func WithSpacing(s float64) Option { return func(c *config) { c.spacing = s } }

// WithThreshold sets the grouping distance in degrees.
func WithThreshold(deg float64) Option { return func(c *config) { c.threshold = deg } }

// Compute maps each body name to its Position on a wheel centered at
// (cx, cy) with the given chart radius. An empty body list yields an empty
// map. Bodies sharing a name keep the last computed position, matching the
// one-position-per-name invariant.
func Compute(bodies []chart.Body, cx, cy, chartRadius float64, opts ...Option) map[string]Position {
	cfg := config{
		baseFactor: DefaultBaseFactor,
		spacing:    DefaultSpacing,
		threshold:  DefaultThreshold,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	positions := make(map[string]Position, len(bodies))
	for _, group := range groupByProximity(bodies, cfg.threshold) {
		placeGroup(positions, group, cx, cy, chartRadius, cfg)
	}
	return positions
}

// groupByProximity sorts bodies by longitude and sweeps once, starting a new
// group whenever the circular distance to the previous body exceeds the
// threshold. The circular distance handles the wrap at 0/360.
func groupByProximity(bodies []chart.Body, threshold float64) [][]chart.Body {
	if len(bodies) == 0 {
		return nil
	}

	sorted := make([]chart.Body, len(bodies))
	copy(sorted, bodies)
	sort.SliceStable(sorted, func(i, j int) bool {
		return geo.Normalize(sorted[i].Longitude) < geo.Normalize(sorted[j].Longitude)
	})

	var groups [][]chart.Body
	current := []chart.Body{sorted[0]}
	for _, b := range sorted[1:] {
		last := current[len(current)-1]
		if geo.Orb(b.Longitude, last.Longitude) <= threshold {
			current = append(current, b)
			continue
		}
		groups = append(groups, current)
		current = []chart.Body{b}
	}
	return append(groups, current)
}

// placeGroup assigns a position to every member of one proximity group.
// Singletons take their natural slot. Larger groups are re-sorted by
// canonical order so the radial stacking matches the traditional
// center-to-edge sequence; slots already taken inside the group (two unknown
// bodies share the outermost slot index) bump outward so radii stay distinct.
func placeGroup(positions map[string]Position, group []chart.Body, cx, cy, chartRadius float64, cfg config) {
	if len(group) == 1 {
		b := group[0]
		positions[b.Name] = at(b, slotRadius(chartRadius, chart.OrderIndex(b.Name), cfg), cx, cy)
		return
	}

	sorted := make([]chart.Body, len(group))
	copy(sorted, group)
	sort.SliceStable(sorted, func(i, j int) bool {
		return chart.OrderIndex(sorted[i].Name) < chart.OrderIndex(sorted[j].Name)
	})

	taken := make(map[int]bool, len(sorted))
	for _, b := range sorted {
		slot := chart.OrderIndex(b.Name)
		for taken[slot] {
			slot++
		}
		taken[slot] = true
		positions[b.Name] = at(b, slotRadius(chartRadius, slot, cfg), cx, cy)
	}
}

// slotRadius is the radius for a canonical slot index:
// chartRadius * (baseFactor + slot*spacing).
func slotRadius(chartRadius float64, slot int, cfg config) float64 {
	return chartRadius * (cfg.baseFactor + float64(slot)*cfg.spacing)
}

func at(b chart.Body, radius, cx, cy float64) Position {
	x, y := geo.Point(cx, cy, radius, b.Longitude)
	return Position{X: x, Y: y, Radius: radius}
}
