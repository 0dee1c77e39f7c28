package pet

import (
	"math"

	"github.com/vovakirdan/maenggu/internal/core"
)

// ReferenceFrameMs is the tick length movement speeds are expressed against
// (60 ticks per second). Speeds are pixels per reference frame.
const ReferenceFrameMs = 1000.0 / 60

// UpdateMovement advances m toward its target by deltaMs.
//
// The step is the speed scaled by deltaMs relative to ReferenceFrameMs.
// When the remaining distance is below the speed or the step, whichever is
// larger, the pet snaps onto the target and the consumed target is
// returned. Otherwise it takes the step and stays inside bounds. Without a target, or with no elapsed time, nothing changes.
func UpdateMovement(m MovementState, deltaMs float64, bounds Bounds, sprite float64) (MovementState, *MovementTarget) {
	if m.Target == nil || deltaMs <= 0 {
		return m, nil
	}

	// Bounds may have shrunk since the target was chosen.
	target := *m.Target
	target.Position = bounds.Clamp(target.Position, sprite)

	delta := core.Direction(m.Position, target.Position)
	facing := facingFor(delta.DX, m.Facing)

	step := m.Speed * (deltaMs / ReferenceFrameMs)
	if delta.Length() < math.Max(m.Speed, step) {
		m.Position = target.Position
		m.Target = nil
		m.Facing = facing
		return m, &target
	}

	velocity := core.VelocityToward(m.Position, target.Position, step)

	m.Position = bounds.Clamp(m.Position.Add(velocity), sprite)
	m.Facing = facing
	return m, nil
}

// StartMovement sets a new target and speed, leaving position and facing.
func StartMovement(m MovementState, target MovementTarget, speed float64) MovementState {
	t := target
	m.Target = &t
	m.Speed = speed
	return m
}

// StopMovement clears the target.
func StopMovement(m MovementState) MovementState {
	m.Target = nil
	return m
}

// facingFor derives facing from horizontal motion; no motion keeps prev.
func facingFor(dx float64, prev Facing) Facing {
	switch {
	case dx < 0:
		return FacingLeft
	case dx > 0:
		return FacingRight
	default:
		return prev
	}
}
