package pet

import (
	"math"

	"github.com/vovakirdan/maenggu/internal/core"
)

// Bounds is the area the pet may roam, in window-local pixels.
//
// With no Monitors the whole Width x Height rectangle is usable. When the
// host knows the monitor layout, Monitors lists each display's rectangle and
// positions snap to the nearest one, so the pet never parks in the dead zone
// between displays.
type Bounds struct {
	Width    float64
	Height   float64
	Monitors []core.Rect
}

// NewBounds returns single-area bounds of the given size.
func NewBounds(width, height float64) Bounds {
	return Bounds{Width: width, Height: height}
}

// Area returns the full window rectangle.
func (b Bounds) Area() core.Rect {
	return core.NewRect(0, 0, b.Width, b.Height)
}

// Clamp returns the position closest to p at which a sprite of the given
// size stays fully on screen.
func (b Bounds) Clamp(p core.Position, sprite float64) core.Position {
	if len(b.Monitors) == 0 {
		return b.Area().Inset(sprite).ClampPoint(p)
	}

	best := p
	bestDist := math.Inf(1)
	for _, m := range b.Monitors {
		c := m.Inset(sprite).ClampPoint(p)
		if d := core.Distance(c, p); d < bestDist {
			best = c
			bestDist = d
		}
	}
	return best
}

// RandomPoint picks an integral position where the sprite fits, using rng.
// With a monitor layout, a monitor is chosen uniformly first.
func (b Bounds) RandomPoint(rng core.Rand, sprite float64) core.Position {
	area := b.Area()
	if n := len(b.Monitors); n > 0 {
		idx := core.Clamp(int(rng.Float64()*float64(n)), 0, n-1)
		area = b.Monitors[idx]
	}

	usable := area.Inset(sprite)
	return core.Position{
		X: usable.X + core.RandomFloor(rng, usable.W),
		Y: usable.Y + core.RandomFloor(rng, usable.H),
	}
}

// Center returns the floored center of the window.
func (b Bounds) Center() core.Position {
	return core.Position{X: math.Floor(b.Width / 2), Y: math.Floor(b.Height / 2)}
}
