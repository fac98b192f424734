package geo

import (
	"math"
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{0, 0},
		{359.5, 359.5},
		{360, 0},
		{720, 0},
		{-90, 270},
		{-360, 0},
		{725.25, 5.25},
	}

	for _, tt := range tests {
		got := Normalize(tt.in)
		if math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("Normalize(%v) = %v, want %v", tt.in, got, tt.want)
		}
		if got < 0 || got >= 360 {
			t.Errorf("Normalize(%v) = %v, outside [0,360)", tt.in, got)
		}
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	for _, in := range []float64{-1000.5, -180, -0.0001, 0, 42.42, 359.999, 360, 3600.1} {
		once := Normalize(in)
		twice := Normalize(once)
		if once != twice {
			t.Errorf("Normalize not idempotent for %v: %v != %v", in, once, twice)
		}
	}
}

func TestOrb(t *testing.T) {
	tests := []struct {
		a, b float64
		want float64
	}{
		{359, 1, 2},
		{10, 20, 10},
		{0, 180, 180},
		{0, 0, 0},
		{350, 10, 20},
		{-10, 10, 20}, // normalized before measuring
	}

	for _, tt := range tests {
		got := Orb(tt.a, tt.b)
		if math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("Orb(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
		if sym := Orb(tt.b, tt.a); sym != got {
			t.Errorf("Orb not symmetric for (%v, %v): %v != %v", tt.a, tt.b, got, sym)
		}
	}
}

func TestPoint(t *testing.T) {
	// Longitude 0 points straight up from center.
	x, y := Point(400, 400, 100, 0)
	if math.Abs(x-400) > 1e-9 || math.Abs(y-300) > 1e-9 {
		t.Errorf("Point(400, 400, 100, 0) = (%v, %v), want (400, 300)", x, y)
	}

	// Longitude 90 points right.
	x, y = Point(400, 400, 100, 90)
	if math.Abs(x-500) > 1e-9 || math.Abs(y-400) > 1e-9 {
		t.Errorf("Point(400, 400, 100, 90) = (%v, %v), want (500, 400)", x, y)
	}
}
