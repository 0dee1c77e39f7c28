package pet

import "github.com/vovakirdan/maenggu/internal/core"

// AnimState is the mutually exclusive behaviour mode of the pet.
type AnimState string

const (
	Idle  AnimState = "idle"
	Walk  AnimState = "walk"
	Eat   AnimState = "eat"
	Happy AnimState = "happy"
	Sleep AnimState = "sleep"
)

// AnimStates lists every state in display order.
var AnimStates = []AnimState{Idle, Walk, Eat, Happy, Sleep}

// Looping reports whether the state's animation cycles indefinitely.
// Eat and happy are one-shot animations that report completion.
func (s AnimState) Looping() bool {
	switch s {
	case Idle, Walk, Sleep:
		return true
	default:
		return false
	}
}

// Facing is the horizontal direction the sprite looks toward.
type Facing string

const (
	FacingLeft  Facing = "left"
	FacingRight Facing = "right"
)

// AnimationState tracks playback of the current animation.
// FrameIndex is always below the state's frame count. Once IsComplete is set
// the record is frozen until the orchestrator resets it.
type AnimationState struct {
	State      AnimState
	FrameIndex int
	ElapsedMs  float64
	IsComplete bool
}

// TargetKind records why the pet is walking somewhere. It decides the
// reaction on arrival.
type TargetKind string

const (
	TargetRandom TargetKind = "random" // wander; settle back to idle
	TargetSummon TargetKind = "summon" // user summon; cheer on arrival
)

// MovementTarget is a tagged destination.
type MovementTarget struct {
	Kind     TargetKind
	Position core.Position
}

// MovementState holds position and pathing.
// A nil Target means the pet stands still. Targets are never mutated in
// place, so snapshots may share them.
type MovementState struct {
	Position core.Position
	Target   *MovementTarget
	Speed    float64
	Facing   Facing
}

// IdleTimerState counts down to the next wander while the pet idles.
type IdleTimerState struct {
	RemainingMs float64
	IsActive    bool
}

// SleepTimerState accumulates inactivity until the pet falls asleep.
type SleepTimerState struct {
	ElapsedMs float64
}

// State is the aggregate root of the simulation. Update returns a new value
// every tick; callers never observe partial updates.
type State struct {
	Anim       AnimationState
	Movement   MovementState
	IdleTimer  IdleTimerState
	SleepTimer SleepTimerState
}

// inactiveIdleTimer is the idle timer after an interaction cancelled it.
var inactiveIdleTimer = IdleTimerState{RemainingMs: 0, IsActive: false}
