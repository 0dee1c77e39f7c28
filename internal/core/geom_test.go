package core

import (
	"math"
	"testing"
)

const epsilon = 1e-9

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < epsilon
}

func TestDirection(t *testing.T) {
	v := Direction(Position{X: 10, Y: 20}, Position{X: 13, Y: 16})
	if v.DX != 3 || v.DY != -4 {
		t.Errorf("Direction() = %+v, expected {3 -4}", v)
	}
	if v.Length() != 5 {
		t.Errorf("Length() = %f, expected 5", v.Length())
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		in       Vector
		expected Vector
	}{
		{"3-4-5 triangle", Vector{DX: 3, DY: 4}, Vector{DX: 0.6, DY: 0.8}},
		{"negative axis", Vector{DX: -10, DY: 0}, Vector{DX: -1, DY: 0}},
		{"zero vector", Vector{}, Vector{}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := Normalize(tc.in)
			if !almostEqual(result.DX, tc.expected.DX) || !almostEqual(result.DY, tc.expected.DY) {
				t.Errorf("Normalize(%+v) = %+v, expected %+v", tc.in, result, tc.expected)
			}
			if math.IsNaN(result.DX) || math.IsNaN(result.DY) {
				t.Errorf("Normalize(%+v) produced NaN", tc.in)
			}
		})
	}
}

func TestScale(t *testing.T) {
	tests := []struct {
		name     string
		k        float64
		expected Vector
	}{
		{"positive", 2, Vector{DX: 2, DY: -4}},
		{"zero", 0, Vector{DX: 0, DY: 0}},
		{"negative", -1.5, Vector{DX: -1.5, DY: 3}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := Scale(Vector{DX: 1, DY: -2}, tc.k)
			if !almostEqual(result.DX, tc.expected.DX) || !almostEqual(result.DY, tc.expected.DY) {
				t.Errorf("Scale(k=%f) = %+v, expected %+v", tc.k, result, tc.expected)
			}
		})
	}
}

func TestVelocityToward(t *testing.T) {
	v := VelocityToward(Position{X: 0, Y: 0}, Position{X: 30, Y: 40}, 10)
	if !almostEqual(v.DX, 6) || !almostEqual(v.DY, 8) {
		t.Errorf("VelocityToward() = %+v, expected {6 8}", v)
	}
	if !almostEqual(v.Length(), 10) {
		t.Errorf("velocity magnitude = %f, expected 10", v.Length())
	}

	// Same position: zero velocity regardless of speed
	same := VelocityToward(Position{X: 5, Y: 5}, Position{X: 5, Y: 5}, 100)
	if same.DX != 0 || same.DY != 0 {
		t.Errorf("VelocityToward(same point) = %+v, expected zero", same)
	}
}

func TestDistance(t *testing.T) {
	if d := Distance(Position{X: 1, Y: 1}, Position{X: 4, Y: 5}); d != 5 {
		t.Errorf("Distance() = %f, expected 5", d)
	}
}

func TestRectContains(t *testing.T) {
	r := NewRect(10, 10, 20, 15)

	tests := []struct {
		name     string
		p        Position
		expected bool
	}{
		{"inside", Position{X: 15, Y: 15}, true},
		{"top-left corner", Position{X: 10, Y: 10}, true},
		{"bottom-right edge (exclusive)", Position{X: 30, Y: 25}, false},
		{"outside left", Position{X: 5, Y: 15}, false},
		{"outside bottom", Position{X: 15, Y: 30}, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if result := r.Contains(tc.p); result != tc.expected {
				t.Errorf("Contains(%+v) = %v, expected %v", tc.p, result, tc.expected)
			}
		})
	}
}

func TestRectIntersects(t *testing.T) {
	a := NewRect(0, 0, 10, 10)
	if !a.Intersects(NewRect(5, 5, 10, 10)) {
		t.Error("overlapping rects should intersect")
	}
	if a.Intersects(NewRect(10, 0, 10, 10)) {
		t.Error("adjacent rects should not intersect")
	}
}

func TestRectInsetAndClamp(t *testing.T) {
	r := NewRect(100, 0, 800, 600).Inset(64)
	if r.W != 736 || r.H != 536 {
		t.Errorf("Inset() = %+v, expected 736x536", r)
	}

	p := r.ClampPoint(Position{X: 2000, Y: -50})
	if p.X != 836 || p.Y != 0 {
		t.Errorf("ClampPoint() = %+v, expected {836 0}", p)
	}

	tiny := NewRect(0, 0, 10, 10).Inset(64)
	if tiny.W != 0 || tiny.H != 0 {
		t.Errorf("Inset() larger than rect should collapse to zero, got %+v", tiny)
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, min, max, expected int
	}{
		{5, 0, 10, 5},
		{-5, 0, 10, 0},
		{15, 0, 10, 10},
	}

	for _, tc := range tests {
		if result := Clamp(tc.val, tc.min, tc.max); result != tc.expected {
			t.Errorf("Clamp(%d, %d, %d) = %d, expected %d", tc.val, tc.min, tc.max, result, tc.expected)
		}
	}
}

func TestClampF(t *testing.T) {
	tests := []struct {
		val, min, max, expected float64
	}{
		{5.5, 0.0, 10.0, 5.5},
		{-5.5, 0.0, 10.0, 0.0},
		{15.5, 0.0, 10.0, 10.0},
	}

	for _, tc := range tests {
		if result := ClampF(tc.val, tc.min, tc.max); result != tc.expected {
			t.Errorf("ClampF(%f, %f, %f) = %f, expected %f", tc.val, tc.min, tc.max, result, tc.expected)
		}
	}
}
