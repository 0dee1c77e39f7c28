package pet

// AnimEvent drives transitions of the animation state machine.
type AnimEvent string

const (
	IdleStart    AnimEvent = "idle-start"
	WalkStart    AnimEvent = "walk-start"
	EatStart     AnimEvent = "eat-start"
	EatFinish    AnimEvent = "eat-finish"
	HappyFinish  AnimEvent = "happy-finish"
	ForceIdle    AnimEvent = "force-idle"
	SleepStart   AnimEvent = "sleep-start"
	Wake         AnimEvent = "wake"
	SummonArrive AnimEvent = "summon-arrive"
)

// AnimEvents lists every event the machine understands.
var AnimEvents = []AnimEvent{
	IdleStart, WalkStart, EatStart, EatFinish, HappyFinish,
	ForceIdle, SleepStart, Wake, SummonArrive,
}

// transitions is an allow-list: any (state, event) pair missing here is a
// no-op. ForceIdle is legal everywhere.
var transitions = map[AnimState]map[AnimEvent]AnimState{
	Idle: {
		WalkStart:  Walk,
		EatStart:   Eat,
		SleepStart: Sleep,
		ForceIdle:  Idle,
	},
	Walk: {
		IdleStart:    Idle,
		EatStart:     Eat,
		SleepStart:   Sleep,
		SummonArrive: Happy,
		ForceIdle:    Idle,
	},
	Eat: {
		EatFinish: Happy,
		ForceIdle: Idle,
	},
	Happy: {
		HappyFinish: Idle,
		ForceIdle:   Idle,
	},
	Sleep: {
		Wake:      Happy,
		ForceIdle: Idle,
	},
}

// NextAnimState returns the state reached from current on ev.
// The result depends only on the pair; unlisted pairs leave current unchanged.
func NextAnimState(current AnimState, ev AnimEvent) AnimState {
	if ev == ForceIdle {
		return Idle
	}
	if next, ok := transitions[current][ev]; ok {
		return next
	}
	return current
}

// CanTransition reports whether ev is on current's allow-list.
func CanTransition(current AnimState, ev AnimEvent) bool {
	if ev == ForceIdle {
		return true
	}
	_, ok := transitions[current][ev]
	return ok
}
