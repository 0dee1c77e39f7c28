package pet

// DefaultFrameDurationMs is the per-frame duration when a sprite leaves it unset.
const DefaultFrameDurationMs = 200

// FrameSpec describes how one state's animation plays.
type FrameSpec struct {
	FrameCount      int
	FrameDurationMs float64
	Loop            bool
}

// normalized guards against degenerate manifests.
func (f FrameSpec) normalized() FrameSpec {
	if f.FrameCount < 1 {
		f.FrameCount = 1
	}
	if f.FrameDurationMs <= 0 {
		f.FrameDurationMs = DefaultFrameDurationMs
	}
	return f
}

// FrameSource looks up frame timing per state. Implementations must return a
// usable fallback for states they don't define.
type FrameSource interface {
	Frames(state AnimState) FrameSpec
}

// FrameTable is a static FrameSource.
type FrameTable map[AnimState]FrameSpec

// Frames returns the entry for state, or a single-frame fallback.
func (t FrameTable) Frames(state AnimState) FrameSpec {
	if spec, ok := t[state]; ok {
		return spec.normalized()
	}
	return FrameSpec{FrameCount: 1, FrameDurationMs: DefaultFrameDurationMs, Loop: state.Looping()}
}

// DefaultFrames matches the built-in sprite set.
var DefaultFrames = FrameTable{
	Idle:  {FrameCount: 1, FrameDurationMs: 200, Loop: true},
	Walk:  {FrameCount: 3, FrameDurationMs: 200, Loop: true},
	Eat:   {FrameCount: 5, FrameDurationMs: 200, Loop: false},
	Happy: {FrameCount: 1, FrameDurationMs: 200, Loop: false},
	Sleep: {FrameCount: 2, FrameDurationMs: 500, Loop: true}, // slow breathing
}

// ResetAnimation starts state's animation from its first frame.
func ResetAnimation(state AnimState) AnimationState {
	return AnimationState{
		State:      state,
		FrameIndex: 0,
		ElapsedMs:  0,
		IsComplete: false,
	}
}

// UpdateAnimation advances anim by deltaMs.
//
// At most one frame boundary is crossed per call: a long delta leaves the
// surplus in ElapsedMs instead of skipping frames. A completed one-shot
// animation stays on its last frame until reset.
func UpdateAnimation(anim AnimationState, deltaMs float64, frames FrameSource) AnimationState {
	if anim.IsComplete {
		return anim
	}

	spec := frames.Frames(anim.State).normalized()
	if anim.FrameIndex >= spec.FrameCount {
		anim.FrameIndex = spec.FrameCount - 1
	}

	elapsed := anim.ElapsedMs + deltaMs
	if elapsed < spec.FrameDurationMs {
		anim.ElapsedMs = elapsed
		return anim
	}

	next := anim.FrameIndex + 1

	if spec.Loop {
		anim.FrameIndex = next % spec.FrameCount
		anim.ElapsedMs = elapsed - spec.FrameDurationMs
		return anim
	}

	if next >= spec.FrameCount {
		anim.FrameIndex = spec.FrameCount - 1
		anim.ElapsedMs = 0
		anim.IsComplete = true
		return anim
	}

	anim.FrameIndex = next
	anim.ElapsedMs = elapsed - spec.FrameDurationMs
	return anim
}
