// Package geo provides the angular math used to place chart elements on a
// wheel: longitude normalization, circular distance ("orb"), and conversion
// from ecliptic longitude to Cartesian coordinates.
//
// All functions are pure. Longitudes are degrees; the wheel's 0° reference
// points to the top of the chart (the ascendant position), so conversion
// rotates by -90° before applying the standard unit-circle formulas.
package geo

import "math"

// Normalize maps a longitude in degrees onto [0, 360).
// It is idempotent: Normalize(Normalize(x)) == Normalize(x).
func Normalize(deg float64) float64 {
	m := math.Mod(deg, 360)
	if m < 0 {
		m += 360
	}
	return m
}

// Orb returns the circular distance between two longitudes in degrees,
// i.e. min(|a-b|, 360-|a-b|) after normalization. The result is in [0, 180]
// and is symmetric in its arguments. The wrap at 0/360 is handled correctly:
// Orb(359, 1) == 2.
func Orb(a, b float64) float64 {
	d := math.Abs(Normalize(a) - Normalize(b))
	if d > 180 {
		d = 360 - d
	}
	return d
}

// Radians converts an ecliptic longitude to the drawing angle in radians.
// Longitude 0 maps to the top of the chart.
func Radians(longitude float64) float64 {
	return (longitude - 90) * math.Pi / 180
}

// Point converts a longitude and radius to Cartesian coordinates around the
// center (cx, cy).
func Point(cx, cy, r, longitude float64) (x, y float64) {
	a := Radians(longitude)
	return cx + r*math.Cos(a), cy + r*math.Sin(a)
}
