package pet

import (
	"testing"

	"github.com/vovakirdan/maenggu/internal/core"
)

type fixedRand float64

func (f fixedRand) Float64() float64 { return float64(f) }

func TestBoundsClampFullArea(t *testing.T) {
	b := NewBounds(800, 600)

	tests := []struct {
		name     string
		in       core.Position
		expected core.Position
	}{
		{"inside", core.Position{X: 10, Y: 20}, core.Position{X: 10, Y: 20}},
		{"negative", core.Position{X: -50, Y: -1}, core.Position{X: 0, Y: 0}},
		{"past far edge", core.Position{X: 900, Y: 700}, core.Position{X: 736, Y: 536}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := b.Clamp(tc.in, 64); got != tc.expected {
				t.Errorf("Clamp(%+v) = %+v, expected %+v", tc.in, got, tc.expected)
			}
		})
	}
}

func TestBoundsClampNearestMonitor(t *testing.T) {
	// Two displays side by side with a gap; the window spans both.
	b := Bounds{
		Width:  2000,
		Height: 1000,
		Monitors: []core.Rect{
			core.NewRect(0, 0, 800, 600),
			core.NewRect(1000, 0, 1000, 1000),
		},
	}

	// In the gap, closer to the second monitor.
	got := b.Clamp(core.Position{X: 980, Y: 100}, 64)
	if got != (core.Position{X: 1000, Y: 100}) {
		t.Errorf("Clamp in gap = %+v, expected snap to second monitor", got)
	}

	// Below the short first monitor.
	got = b.Clamp(core.Position{X: 100, Y: 900}, 64)
	if got != (core.Position{X: 100, Y: 536}) {
		t.Errorf("Clamp below first monitor = %+v", got)
	}

	// Without monitors the same point is legal.
	full := NewBounds(2000, 1000)
	if got := full.Clamp(core.Position{X: 980, Y: 100}, 64); got.X != 980 {
		t.Errorf("full-area Clamp = %+v, expected unchanged", got)
	}
}

func TestBoundsRandomPoint(t *testing.T) {
	b := NewBounds(800, 600)

	p := b.RandomPoint(fixedRand(0), 64)
	if p != (core.Position{}) {
		t.Errorf("RandomPoint(0) = %+v", p)
	}

	p = b.RandomPoint(fixedRand(0.999999), 64)
	if p.X != 735 || p.Y != 535 {
		t.Errorf("RandomPoint(~1) = %+v, expected (735, 535)", p)
	}
}

func TestBoundsRandomPointPicksMonitor(t *testing.T) {
	b := Bounds{
		Width:  2000,
		Height: 1000,
		Monitors: []core.Rect{
			core.NewRect(0, 0, 800, 600),
			core.NewRect(1000, 0, 1000, 1000),
		},
	}

	p := b.RandomPoint(fixedRand(0.75), 64)
	if p.X < 1000 {
		t.Errorf("RandomPoint = %+v, expected a point on the second monitor", p)
	}
}

func TestBoundsTinyWindow(t *testing.T) {
	b := NewBounds(30, 30)
	if got := b.Clamp(core.Position{X: 10, Y: 10}, 64); got != (core.Position{}) {
		t.Errorf("Clamp in window smaller than sprite = %+v, expected origin", got)
	}
	if got := b.RandomPoint(fixedRand(0.5), 64); got != (core.Position{}) {
		t.Errorf("RandomPoint in window smaller than sprite = %+v", got)
	}
}

func TestBoundsCenter(t *testing.T) {
	if got := NewBounds(801, 601).Center(); got != (core.Position{X: 400, Y: 300}) {
		t.Errorf("Center() = %+v", got)
	}
}
