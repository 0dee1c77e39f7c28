// Package core provides fundamental types and utilities for the pet platform.
// It contains no external dependencies (especially no Bubble Tea) to keep the
// simulation pure and testable.
package core

import "math"

// Position is a point in screen space, measured in pixels.
type Position struct {
	X, Y float64
}

// Add returns the position translated by v.
func (p Position) Add(v Vector) Position {
	return Position{X: p.X + v.DX, Y: p.Y + v.DY}
}

// Vector is a 2D displacement or velocity.
type Vector struct {
	DX, DY float64
}

// Length returns the Euclidean magnitude of the vector.
func (v Vector) Length() float64 {
	return math.Hypot(v.DX, v.DY)
}

// Direction returns the raw delta from one position to another (not normalized).
func Direction(from, to Position) Vector {
	return Vector{DX: to.X - from.X, DY: to.Y - from.Y}
}

// Normalize returns the unit vector of v.
// A zero-length vector normalizes to {0, 0}.
func Normalize(v Vector) Vector {
	length := v.Length()
	if length == 0 {
		return Vector{}
	}
	return Vector{DX: v.DX / length, DY: v.DY / length}
}

// Scale multiplies both components of v by k.
func Scale(v Vector, k float64) Vector {
	return Vector{DX: v.DX * k, DY: v.DY * k}
}

// VelocityToward returns a velocity of the given speed pointing from one
// position toward another. Identical positions yield zero velocity.
func VelocityToward(from, to Position, speed float64) Vector {
	return Scale(Normalize(Direction(from, to)), speed)
}

// Distance returns the straight-line distance between two positions.
func Distance(a, b Position) float64 {
	return Direction(a, b).Length()
}

// Rect represents an axis-aligned rectangle in pixel space.
type Rect struct {
	X, Y float64 // Top-left corner position
	W, H float64 // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h float64) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() float64 {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() float64 {
	return r.Y + r.H
}

// Intersects returns true if this rectangle overlaps with another.
func (r Rect) Intersects(other Rect) bool {
	if r.X >= other.Right() || other.X >= r.Right() {
		return false
	}
	if r.Y >= other.Bottom() || other.Y >= r.Bottom() {
		return false
	}
	return true
}

// Contains returns true if the point is inside this rectangle.
// The right and bottom edges are exclusive.
func (r Rect) Contains(p Position) bool {
	return p.X >= r.X && p.X < r.Right() && p.Y >= r.Y && p.Y < r.Bottom()
}

// Center returns the center point of the rectangle.
func (r Rect) Center() Position {
	return Position{X: r.X + r.W/2, Y: r.Y + r.H/2}
}

// Inset shrinks the far edges by the given size so that an object of that
// size anchored at its top-left corner stays fully inside. Dimensions never
// go negative.
func (r Rect) Inset(size float64) Rect {
	return Rect{X: r.X, Y: r.Y, W: math.Max(0, r.W-size), H: math.Max(0, r.H-size)}
}

// ClampPoint restricts p to lie within the rectangle, edges inclusive.
func (r Rect) ClampPoint(p Position) Position {
	return Position{
		X: ClampF(p.X, r.X, r.Right()),
		Y: ClampF(p.Y, r.Y, r.Bottom()),
	}
}

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// ClampF restricts a float64 value to be within [min, max].
func ClampF(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}
