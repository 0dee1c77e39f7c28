package pet

// NewIdleTimer returns an active idle countdown of the given length.
func NewIdleTimer(durationMs float64) IdleTimerState {
	return IdleTimerState{RemainingMs: durationMs, IsActive: true}
}

// TickIdleTimer counts an active timer down by deltaMs.
// On expiry the timer deactivates and expired is true.
func TickIdleTimer(t IdleTimerState, deltaMs float64) (next IdleTimerState, expired bool) {
	if !t.IsActive {
		return t, false
	}

	remaining := t.RemainingMs - deltaMs
	if remaining <= 0 {
		return inactiveIdleTimer, true
	}

	t.RemainingMs = remaining
	return t, false
}

// SleepEligible reports whether inactivity accumulates in state.
func SleepEligible(state AnimState) bool {
	return state == Idle || state == Walk
}

// TickSleepTimer accumulates deltaMs. Reaching timeoutMs resets the
// accumulator and reports expiry.
func TickSleepTimer(t SleepTimerState, deltaMs, timeoutMs float64) (next SleepTimerState, expired bool) {
	elapsed := t.ElapsedMs + deltaMs
	if elapsed >= timeoutMs {
		return SleepTimerState{}, true
	}
	return SleepTimerState{ElapsedMs: elapsed}, false
}
