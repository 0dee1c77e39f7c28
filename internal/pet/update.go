package pet

import (
	"math"

	"github.com/vovakirdan/maenggu/internal/core"
)

// Config holds the tuning values the simulation depends on.
type Config struct {
	IdleTime       core.Range // ms between wanders
	MoveSpeed      core.Range // px per reference frame for random walks
	SummonSpeed    float64    // px per reference frame when summoned
	SleepTimeoutMs float64    // inactivity before falling asleep
	SpriteSize     float64    // displayed sprite edge, px
	SnackText      string     // floating text shown on a click
}

// DefaultConfig returns the stock tuning.
func DefaultConfig() Config {
	return Config{
		IdleTime:       core.Range{Min: 3000, Max: 8000},
		MoveSpeed:      core.Range{Min: 1, Max: 2},
		SummonSpeed:    4,
		SleepTimeoutMs: 5 * 60 * 1000,
		SpriteSize:     64, // 32px art at 2x; pixel art only scales cleanly by integers
		SnackText:      "+🍖",
	}
}

// Result is the outcome of one tick.
type Result struct {
	State   State
	Actions []Action
}

// Simulator owns the configuration, frame timings and random source used by
// Update. It holds no per-tick state; the caller keeps the State.
type Simulator struct {
	cfg    Config
	frames FrameSource
	rng    core.Rand
}

// NewSimulator creates a simulator. A nil frames source uses DefaultFrames.
func NewSimulator(cfg Config, frames FrameSource, rng core.Rand) *Simulator {
	if frames == nil {
		frames = DefaultFrames
	}
	return &Simulator{cfg: cfg, frames: frames, rng: rng}
}

// Config returns the simulator's tuning.
func (s *Simulator) Config() Config {
	return s.cfg
}

// NewState returns the start-up state: idling at the window center with a
// random countdown to the first wander.
func (s *Simulator) NewState(width, height float64) State {
	return State{
		Anim: ResetAnimation(Idle),
		Movement: MovementState{
			Position: NewBounds(width, height).Center(),
			Target:   nil,
			Speed:    core.RandomSpeed(s.rng, s.cfg.MoveSpeed),
			Facing:   FacingRight,
		},
		IdleTimer:  NewIdleTimer(s.randomIdleTime()),
		SleepTimer: SleepTimerState{},
	}
}

// Update advances the simulation by one tick.
//
// Events are applied in order, then animation completion, the idle timer,
// movement and the sleep timer run, and the frame animation advances last.
// A negative or NaN deltaMs counts as zero.
func (s *Simulator) Update(state State, deltaMs float64, events []Event, bounds Bounds) Result {
	if deltaMs < 0 || math.IsNaN(deltaMs) {
		deltaMs = 0
	}

	var actions []Action
	for _, ev := range events {
		state, actions = s.handleEvent(state, ev, bounds, actions)
	}

	state = s.handleAnimationComplete(state)
	state = s.tickIdle(state, deltaMs, bounds)
	state = s.tickMovement(state, deltaMs, bounds)
	state = s.tickSleep(state, deltaMs)

	state.Anim = UpdateAnimation(state.Anim, deltaMs, s.frames)

	return Result{State: state, Actions: actions}
}

func (s *Simulator) handleEvent(state State, ev Event, bounds Bounds, actions []Action) (State, []Action) {
	switch e := ev.(type) {
	case Click:
		switch state.Anim.State {
		case Sleep:
			state = s.wake(state)
		case Idle, Walk:
			state = s.startEating(state)
			actions = append(actions,
				AddSnack{},
				ShowFloatingText{Text: s.cfg.SnackText, Position: e.Position},
			)
		}
	case FeedSuccess:
		if canInteract(state.Anim.State) {
			state = s.startEating(state)
		}
	case FeedFail:
		// nothing to do
	case Summon:
		if canInteract(state.Anim.State) {
			state = s.startSummon(state, core.Position{X: e.X, Y: e.Y}, bounds)
		}
	}
	return state, actions
}

// canInteract reports whether feeding or summoning is accepted.
func canInteract(state AnimState) bool {
	return state == Idle || state == Walk
}

func (s *Simulator) transition(state State, ev AnimEvent) State {
	state.Anim = ResetAnimation(NextAnimState(state.Anim.State, ev))
	return state
}

func (s *Simulator) startEating(state State) State {
	state = s.transition(state, EatStart)
	state.Movement = StopMovement(state.Movement)
	state.IdleTimer = inactiveIdleTimer
	state.SleepTimer = SleepTimerState{}
	return state
}

func (s *Simulator) wake(state State) State {
	state = s.transition(state, Wake)
	state.Movement = StopMovement(state.Movement)
	state.IdleTimer = inactiveIdleTimer
	state.SleepTimer = SleepTimerState{}
	return state
}

func (s *Simulator) startSummon(state State, to core.Position, bounds Bounds) State {
	target := MovementTarget{Kind: TargetSummon, Position: bounds.Clamp(to, s.cfg.SpriteSize)}

	state = s.transition(state, WalkStart)
	state.Movement = StartMovement(state.Movement, target, s.cfg.SummonSpeed)
	state.IdleTimer = inactiveIdleTimer
	state.SleepTimer = SleepTimerState{}
	return state
}

func (s *Simulator) startWander(state State, bounds Bounds) State {
	target := MovementTarget{Kind: TargetRandom, Position: bounds.RandomPoint(s.rng, s.cfg.SpriteSize)}
	speed := core.RandomSpeed(s.rng, s.cfg.MoveSpeed)

	state = s.transition(state, WalkStart)
	state.Movement = StartMovement(state.Movement, target, speed)
	return state
}

func (s *Simulator) settle(state State) State {
	state = s.transition(state, IdleStart)
	state.IdleTimer = NewIdleTimer(s.randomIdleTime())
	return state
}

func (s *Simulator) handleAnimationComplete(state State) State {
	if !state.Anim.IsComplete {
		return state
	}

	switch state.Anim.State {
	case Eat:
		return s.transition(state, EatFinish)
	case Happy:
		state = s.transition(state, HappyFinish)
		state.IdleTimer = NewIdleTimer(s.randomIdleTime())
		return state
	default:
		return state
	}
}

func (s *Simulator) tickIdle(state State, deltaMs float64, bounds Bounds) State {
	if state.Anim.State != Idle {
		return state
	}

	timer, expired := TickIdleTimer(state.IdleTimer, deltaMs)
	state.IdleTimer = timer
	if expired {
		state = s.startWander(state, bounds)
	}
	return state
}

func (s *Simulator) tickMovement(state State, deltaMs float64, bounds Bounds) State {
	if state.Anim.State != Walk {
		return state
	}

	// A walk with nowhere to go settles immediately.
	if state.Movement.Target == nil {
		return s.settle(state)
	}

	movement, arrived := UpdateMovement(state.Movement, deltaMs, bounds, s.cfg.SpriteSize)
	state.Movement = movement
	if arrived == nil {
		return state
	}

	switch arrived.Kind {
	case TargetSummon:
		return s.transition(state, SummonArrive)
	default:
		return s.settle(state)
	}
}

func (s *Simulator) tickSleep(state State, deltaMs float64) State {
	if !SleepEligible(state.Anim.State) {
		return state
	}

	timer, expired := TickSleepTimer(state.SleepTimer, deltaMs, s.cfg.SleepTimeoutMs)
	state.SleepTimer = timer
	if expired {
		state = s.transition(state, SleepStart)
		state.Movement = StopMovement(state.Movement)
		state.IdleTimer = inactiveIdleTimer
	}
	return state
}

func (s *Simulator) randomIdleTime() float64 {
	return core.RandomInRange(s.rng, s.cfg.IdleTime)
}
