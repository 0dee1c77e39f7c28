package pet

import (
	"math"
	"math/rand"
	"reflect"
	"testing"

	"github.com/vovakirdan/maenggu/internal/core"
)

// scriptedRand replays draws in order, then repeats the last one.
type scriptedRand struct {
	draws []float64
	next  int
}

func (r *scriptedRand) Float64() float64 {
	if len(r.draws) == 0 {
		return 0
	}
	i := r.next
	if i >= len(r.draws) {
		i = len(r.draws) - 1
	}
	r.next++
	return r.draws[i]
}

func newTestSimulator(draws ...float64) *Simulator {
	return NewSimulator(DefaultConfig(), nil, &scriptedRand{draws: draws})
}

func idleState() State {
	return State{
		Anim: ResetAnimation(Idle),
		Movement: MovementState{
			Position: core.Position{X: 100, Y: 100},
			Speed:    3,
			Facing:   FacingRight,
		},
		IdleTimer: NewIdleTimer(5000),
	}
}

func countActions(actions []Action) (snacks, texts int) {
	for _, a := range actions {
		switch a.(type) {
		case AddSnack:
			snacks++
		case ShowFloatingText:
			texts++
		}
	}
	return snacks, texts
}

func TestNewState(t *testing.T) {
	sim := newTestSimulator(0.5)
	state := sim.NewState(801, 600)

	if state.Anim.State != Idle {
		t.Errorf("initial anim = %s, expected idle", state.Anim.State)
	}
	if state.Movement.Position != (core.Position{X: 400, Y: 300}) {
		t.Errorf("initial position = %+v", state.Movement.Position)
	}
	if state.Movement.Speed != 1.5 {
		t.Errorf("initial speed = %f, expected 1.5", state.Movement.Speed)
	}
	if !state.IdleTimer.IsActive || state.IdleTimer.RemainingMs != 5500 {
		t.Errorf("initial idle timer = %+v", state.IdleTimer)
	}
	if state.Movement.Target != nil || state.Movement.Facing != FacingRight {
		t.Errorf("initial movement = %+v", state.Movement)
	}
}

func TestUpdateIdempotentNoOp(t *testing.T) {
	sim := newTestSimulator(0.5)
	bounds := NewBounds(800, 600)

	states := []State{idleState()}
	walk := idleState()
	walk.Anim = ResetAnimation(Walk)
	walk.Movement = StartMovement(walk.Movement, MovementTarget{Kind: TargetRandom, Position: core.Position{X: 101, Y: 100}}, 3)
	walk.SleepTimer = SleepTimerState{ElapsedMs: 1234}
	states = append(states, walk)

	for _, state := range states {
		got := sim.Update(state, 0, nil, bounds)
		if len(got.Actions) != 0 {
			t.Errorf("%s: unexpected actions %v", state.Anim.State, got.Actions)
		}
		if got.State.Anim.FrameIndex != state.Anim.FrameIndex {
			t.Errorf("%s: frame changed", state.Anim.State)
		}
		if got.State.Movement.Position != state.Movement.Position {
			t.Errorf("%s: position changed to %+v", state.Anim.State, got.State.Movement.Position)
		}
		if got.State.IdleTimer != state.IdleTimer || got.State.SleepTimer != state.SleepTimer {
			t.Errorf("%s: timers changed: %+v %+v", state.Anim.State, got.State.IdleTimer, got.State.SleepTimer)
		}
	}
}

func TestUpdateNegativeDeltaIsZero(t *testing.T) {
	sim := newTestSimulator(0.5)
	state := idleState()

	for _, delta := range []float64{-50, math.NaN()} {
		got := sim.Update(state, delta, nil, NewBounds(800, 600))
		if got.State.IdleTimer != state.IdleTimer || got.State.Anim != state.Anim {
			t.Errorf("delta %f changed state: %+v", delta, got.State)
		}
	}
}

func TestUpdateConcreteScenario(t *testing.T) {
	sim := newTestSimulator(0.25, 0.5, 0.5)
	state := idleState()
	state.IdleTimer = IdleTimerState{RemainingMs: 50, IsActive: true}

	got := sim.Update(state, 100, nil, NewBounds(800, 600)).State

	if got.Anim.State != Walk {
		t.Fatalf("anim = %s, expected walk", got.Anim.State)
	}
	if got.Movement.Target == nil {
		t.Fatal("expected a walk target")
	}
	if got.Movement.Target.Kind != TargetRandom {
		t.Errorf("target kind = %s, expected random", got.Movement.Target.Kind)
	}
	if got.Movement.Target.Position != (core.Position{X: 184, Y: 268}) {
		t.Errorf("target = %+v", got.Movement.Target.Position)
	}
	if got.IdleTimer.IsActive {
		t.Error("idle timer should be inactive while walking")
	}
	if got.SleepTimer.ElapsedMs != 100 {
		t.Errorf("sleep timer = %f, expected 100", got.SleepTimer.ElapsedMs)
	}
}

func TestUpdateClickEconomics(t *testing.T) {
	sim := newTestSimulator(0.5)
	bounds := NewBounds(800, 600)
	click := core.Position{X: 120, Y: 130}

	got := sim.Update(idleState(), 16, []Event{Click{Position: click}}, bounds)
	if got.State.Anim.State != Eat {
		t.Fatalf("anim = %s, expected eat", got.State.Anim.State)
	}
	snacks, texts := countActions(got.Actions)
	if snacks != 1 || texts != 1 || len(got.Actions) != 2 {
		t.Fatalf("actions = %v, expected one snack and one text", got.Actions)
	}
	text, ok := got.Actions[1].(ShowFloatingText)
	if !ok || text.Position != click || text.Text != DefaultConfig().SnackText {
		t.Errorf("floating text = %+v", got.Actions[1])
	}
	if got.State.IdleTimer.IsActive || got.State.Movement.Target != nil {
		t.Errorf("eating pet should be still: %+v", got.State)
	}

	again := sim.Update(got.State, 16, []Event{Click{Position: click}}, bounds)
	if len(again.Actions) != 0 {
		t.Errorf("click while eating produced %v", again.Actions)
	}
	if again.State.Anim.State != Eat || again.State.Anim.FrameIndex != got.State.Anim.FrameIndex {
		t.Errorf("click while eating changed anim: %+v", again.State.Anim)
	}
}

func TestUpdateClickWhileWalking(t *testing.T) {
	sim := newTestSimulator(0.5)
	state := idleState()
	state.Anim = ResetAnimation(Walk)
	state.Movement = StartMovement(state.Movement, MovementTarget{Kind: TargetRandom, Position: core.Position{X: 500, Y: 500}}, 2)

	got := sim.Update(state, 16, []Event{Click{}}, NewBounds(800, 600))
	if got.State.Anim.State != Eat || got.State.Movement.Target != nil {
		t.Errorf("walk+click = %+v", got.State)
	}
	if len(got.Actions) != 2 {
		t.Errorf("actions = %v", got.Actions)
	}
}

func TestUpdateClickWakesSleeper(t *testing.T) {
	sim := newTestSimulator(0.5)
	state := idleState()
	state.Anim = ResetAnimation(Sleep)
	state.IdleTimer = IdleTimerState{}

	got := sim.Update(state, 16, []Event{Click{}}, NewBounds(800, 600))
	if got.State.Anim.State != Happy {
		t.Errorf("anim = %s, expected happy", got.State.Anim.State)
	}
	if len(got.Actions) != 0 {
		t.Errorf("waking should not earn a snack: %v", got.Actions)
	}
	if got.State.SleepTimer.ElapsedMs != 0 {
		t.Errorf("sleep timer = %f", got.State.SleepTimer.ElapsedMs)
	}
}

func TestUpdateEatThenHappyThenIdle(t *testing.T) {
	sim := newTestSimulator(0.5)
	bounds := NewBounds(800, 600)

	state := sim.Update(idleState(), 16, []Event{FeedSuccess{}}, bounds).State
	if state.Anim.State != Eat {
		t.Fatalf("feed-success: anim = %s", state.Anim.State)
	}

	for i := 0; i < 10 && state.Anim.State == Eat; i++ {
		state = sim.Update(state, 200, nil, bounds).State
	}
	if state.Anim.State != Happy {
		t.Fatalf("after eating: anim = %s, expected happy", state.Anim.State)
	}
	if state.IdleTimer.IsActive {
		t.Error("idle timer active during happy")
	}

	for i := 0; i < 5 && state.Anim.State == Happy; i++ {
		state = sim.Update(state, 200, nil, bounds).State
	}
	if state.Anim.State != Idle {
		t.Fatalf("after happy: anim = %s, expected idle", state.Anim.State)
	}
	// Reset to 5500ms, then ticked once in the same update.
	if !state.IdleTimer.IsActive || state.IdleTimer.RemainingMs != 5300 {
		t.Errorf("idle timer = %+v, expected 5300ms remaining", state.IdleTimer)
	}
}

func TestUpdateFeedFailIsIgnored(t *testing.T) {
	sim := newTestSimulator(0.5)
	state := idleState()

	got := sim.Update(state, 16, []Event{FeedFail{}}, NewBounds(800, 600))
	if got.State.Anim.State != Idle || len(got.Actions) != 0 {
		t.Errorf("feed-fail = %+v", got)
	}
}

func TestUpdateSummonArrivesHappy(t *testing.T) {
	sim := newTestSimulator(0.5)
	bounds := NewBounds(800, 600)

	state := sim.Update(idleState(), 16, []Event{Summon{X: 300, Y: 100}}, bounds).State
	if state.Anim.State != Walk || state.Movement.Target == nil || state.Movement.Target.Kind != TargetSummon {
		t.Fatalf("after summon: %+v", state)
	}
	if state.Movement.Speed != DefaultConfig().SummonSpeed {
		t.Errorf("summon speed = %f", state.Movement.Speed)
	}

	for i := 0; i < 200 && state.Anim.State == Walk; i++ {
		state = sim.Update(state, 16, nil, bounds).State
	}
	if state.Anim.State != Happy {
		t.Fatalf("anim = %s, expected happy on arrival", state.Anim.State)
	}
	if state.Movement.Position != (core.Position{X: 300, Y: 100}) {
		t.Errorf("position = %+v", state.Movement.Position)
	}
	if state.IdleTimer.IsActive {
		t.Error("idle timer should stay inactive after a summon")
	}
}

func TestUpdateSummonArrivesWithLongTicks(t *testing.T) {
	sim := newTestSimulator(0.5)
	bounds := NewBounds(800, 600)
	target := core.Position{X: 105, Y: 100}

	state := sim.Update(idleState(), 50, []Event{Summon{X: target.X, Y: target.Y}}, bounds).State
	for i := 0; i < 10 && state.Anim.State == Walk; i++ {
		state = sim.Update(state, 50, nil, bounds).State
	}
	if state.Anim.State != Happy {
		t.Fatalf("anim = %s, expected happy on arrival", state.Anim.State)
	}
	if state.Movement.Position != target || state.Movement.Target != nil {
		t.Errorf("movement = %+v, expected to rest on %+v", state.Movement, target)
	}
}

func TestUpdateSummonTargetIsClamped(t *testing.T) {
	sim := newTestSimulator(0.5)
	state := sim.Update(idleState(), 16, []Event{Summon{X: 5000, Y: -40}}, NewBounds(800, 600)).State

	if state.Movement.Target == nil || state.Movement.Target.Position != (core.Position{X: 736, Y: 0}) {
		t.Errorf("summon target = %+v", state.Movement.Target)
	}
}

func TestUpdateSummonIgnoredWhileBusy(t *testing.T) {
	sim := newTestSimulator(0.5)
	for _, s := range []AnimState{Eat, Happy, Sleep} {
		state := idleState()
		state.Anim = ResetAnimation(s)

		got := sim.Update(state, 16, []Event{Summon{X: 300, Y: 300}}, NewBounds(800, 600)).State
		if got.Anim.State != s || got.Movement.Target != nil {
			t.Errorf("summon during %s changed state to %+v", s, got)
		}
	}
}

func TestUpdateRandomArrivalResetsIdleTimer(t *testing.T) {
	sim := newTestSimulator(0.5)
	state := idleState()
	state.Anim = ResetAnimation(Walk)
	state.IdleTimer = IdleTimerState{}
	state.Movement = StartMovement(state.Movement, MovementTarget{Kind: TargetRandom, Position: core.Position{X: 101, Y: 100}}, 3)

	got := sim.Update(state, 16, nil, NewBounds(800, 600)).State
	if got.Anim.State != Idle {
		t.Fatalf("anim = %s, expected idle", got.Anim.State)
	}
	if !got.IdleTimer.IsActive || got.IdleTimer.RemainingMs != 5500 {
		t.Errorf("idle timer = %+v", got.IdleTimer)
	}
}

func TestUpdateWalkWithoutTargetSettles(t *testing.T) {
	sim := newTestSimulator(0.5)
	state := idleState()
	state.Anim = ResetAnimation(Walk)

	got := sim.Update(state, 16, nil, NewBounds(800, 600)).State
	if got.Anim.State != Idle || !got.IdleTimer.IsActive {
		t.Errorf("targetless walk = %+v", got)
	}
}

func TestUpdateSleepTimeout(t *testing.T) {
	sim := newTestSimulator(0.5)
	timeout := DefaultConfig().SleepTimeoutMs

	for _, s := range []AnimState{Idle, Walk} {
		state := idleState()
		state.Anim = ResetAnimation(s)
		if s == Walk {
			state.IdleTimer = IdleTimerState{}
			state.Movement = StartMovement(state.Movement, MovementTarget{Kind: TargetRandom, Position: core.Position{X: 600, Y: 500}}, 1)
		}
		state.SleepTimer = SleepTimerState{ElapsedMs: timeout - 10}

		got := sim.Update(state, 16, nil, NewBounds(800, 600)).State
		if got.Anim.State != Sleep {
			t.Errorf("%s: anim = %s, expected sleep", s, got.Anim.State)
		}
		if got.Movement.Target != nil {
			t.Errorf("%s: target not cleared", s)
		}
		if got.SleepTimer.ElapsedMs != 0 {
			t.Errorf("%s: sleep timer = %f, expected reset", s, got.SleepTimer.ElapsedMs)
		}
		if got.IdleTimer.IsActive {
			t.Errorf("%s: idle timer still active", s)
		}
	}
}

func TestUpdateSleepTimerPausedWhileBusy(t *testing.T) {
	sim := newTestSimulator(0.5)
	state := idleState()
	state.Anim = ResetAnimation(Eat)
	state.SleepTimer = SleepTimerState{ElapsedMs: 42}

	got := sim.Update(state, 16, nil, NewBounds(800, 600)).State
	if got.SleepTimer.ElapsedMs != 42 {
		t.Errorf("sleep timer advanced while eating: %f", got.SleepTimer.ElapsedMs)
	}
}

func TestUpdateEventsApplyInOrder(t *testing.T) {
	sim := newTestSimulator(0.5)

	// The summon is dropped because the click already started eating.
	got := sim.Update(idleState(), 16, []Event{Click{}, Summon{X: 400, Y: 400}}, NewBounds(800, 600))
	if got.State.Anim.State != Eat || got.State.Movement.Target != nil {
		t.Errorf("click then summon = %+v", got.State)
	}

	// A summon followed by a click still eats: walking pets accept clicks.
	got = sim.Update(idleState(), 16, []Event{Summon{X: 400, Y: 400}, Click{}}, NewBounds(800, 600))
	if got.State.Anim.State != Eat || len(got.Actions) != 2 {
		t.Errorf("summon then click = %+v", got)
	}
}

func TestUpdateDeterministic(t *testing.T) {
	run := func() State {
		sim := NewSimulator(DefaultConfig(), nil, rand.New(rand.NewSource(12345)))
		bounds := NewBounds(800, 600)
		state := sim.NewState(800, 600)

		for i := 0; i < 2000; i++ {
			var events []Event
			switch i {
			case 300:
				events = []Event{Click{Position: core.Position{X: 10, Y: 10}}}
			case 900:
				events = []Event{Summon{X: 50, Y: 50}}
			case 1500:
				events = []Event{FeedSuccess{}}
			}
			state = sim.Update(state, 16, events, bounds).State
		}
		return state
	}

	a, b := run(), run()
	if !reflect.DeepEqual(a, b) {
		t.Errorf("same seed diverged:\n%+v\n%+v", a, b)
	}
}

func TestUpdateStaysInBounds(t *testing.T) {
	sim := NewSimulator(DefaultConfig(), nil, rand.New(rand.NewSource(7)))
	bounds := NewBounds(640, 480)
	area := bounds.Area().Inset(DefaultConfig().SpriteSize)
	state := sim.NewState(640, 480)
	state.Movement.Position = bounds.Clamp(state.Movement.Position, DefaultConfig().SpriteSize)

	for i := 0; i < 10000; i++ {
		state = sim.Update(state, 16, nil, bounds).State
		p := state.Movement.Position
		if p.X < area.X || p.X > area.Right() || p.Y < area.Y || p.Y > area.Bottom() {
			t.Fatalf("tick %d: position %+v left %+v", i, p, area)
		}
	}
}
