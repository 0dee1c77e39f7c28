// Package host drives the pet simulation: it owns the scheduler loop that
// measures and clamps frame time, buffers input events between ticks, calls
// the pure update function and hands the resulting actions to the host's
// effects (snack ledger, floating texts).
package host

import (
	"context"
	"io"
	"math"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/maenggu/internal/pet"
	"github.com/vovakirdan/maenggu/internal/protocol"
	"github.com/vovakirdan/maenggu/internal/replay"
)

// BoundsProvider reports the usable area each tick.
type BoundsProvider interface {
	Bounds() pet.Bounds
}

// BoundsFunc adapts a function to BoundsProvider.
type BoundsFunc func() pet.Bounds

// Bounds implements BoundsProvider.
func (f BoundsFunc) Bounds() pet.Bounds { return f() }

// StaticBounds is a fixed area.
type StaticBounds pet.Bounds

// Bounds implements BoundsProvider.
func (b StaticBounds) Bounds() pet.Bounds { return pet.Bounds(b) }

// ActionSink performs the actions returned by a tick. HandleActions is
// called outside the loop's lock and must not block for long.
type ActionSink interface {
	HandleActions(actions []pet.Action)
}

// Spender spends snacks for a feed request. *snack.Ledger implements it.
type Spender interface {
	Spend(n int) (bool, error)
}

// Options configures a Loop.
type Options struct {
	Sim      *pet.Simulator
	Initial  pet.State
	Bounds   BoundsProvider
	Sink     ActionSink       // optional
	Spender  Spender          // optional; Feed reports failure without one
	Recorder *replay.Recorder // optional
	MaxDelta time.Duration    // 0 means 100ms
	Logger   *log.Logger      // optional
}

// Loop is the explicit scheduler around Simulator.Update.
//
// Events may be pushed from any goroutine. Each tick takes the whole buffer
// exactly once, so no event is delivered twice or lost between buffering and
// consumption. Ticks themselves are serialized.
type Loop struct {
	sim      *pet.Simulator
	bounds   BoundsProvider
	sink     ActionSink
	spender  Spender
	recorder *replay.Recorder
	maxDelta float64
	logger   *log.Logger

	eventsMu sync.Mutex
	pending  []pet.Event
	fed      int

	mu     sync.Mutex // serializes ticks and guards the fields below
	state  pet.State
	tick   uint64
	last   time.Time
	closed bool
}

// NewLoop creates a loop starting from opts.Initial.
func NewLoop(opts Options) *Loop {
	maxDelta := opts.MaxDelta
	if maxDelta <= 0 {
		maxDelta = 100 * time.Millisecond
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Loop{
		sim:      opts.Sim,
		bounds:   opts.Bounds,
		sink:     opts.Sink,
		spender:  opts.Spender,
		recorder: opts.Recorder,
		maxDelta: float64(maxDelta) / float64(time.Millisecond),
		logger:   logger,
		state:    opts.Initial,
	}
}

// Push buffers an event for the next tick.
func (l *Loop) Push(ev pet.Event) {
	l.eventsMu.Lock()
	l.pending = append(l.pending, ev)
	l.eventsMu.Unlock()
}

// Feed spends one snack and queues the matching event. It reports whether
// the pet was fed.
func (l *Loop) Feed() (bool, error) {
	if l.spender == nil {
		l.Push(pet.FeedFail{})
		return false, nil
	}

	ok, err := l.spender.Spend(1)
	if err != nil {
		l.logger.Error("feed failed", "error", err)
		l.Push(pet.FeedFail{})
		return false, err
	}
	if ok {
		l.eventsMu.Lock()
		l.fed++
		l.eventsMu.Unlock()
		l.Push(pet.FeedSuccess{})
	} else {
		l.Push(pet.FeedFail{})
	}
	return ok, nil
}

// Fed returns the number of successful feeds.
func (l *Loop) Fed() int {
	l.eventsMu.Lock()
	defer l.eventsMu.Unlock()
	return l.fed
}

// drain takes the buffered events.
func (l *Loop) drain() []pet.Event {
	l.eventsMu.Lock()
	defer l.eventsMu.Unlock()
	events := l.pending
	l.pending = nil
	return events
}

// clampDelta restricts deltaMs to [0, maxDelta].
func (l *Loop) clampDelta(deltaMs float64) float64 {
	if deltaMs < 0 || math.IsNaN(deltaMs) {
		return 0
	}
	if deltaMs > l.maxDelta {
		return l.maxDelta
	}
	return deltaMs
}

// Step runs one tick with an explicit elapsed time.
func (l *Loop) Step(deltaMs float64) pet.Result {
	l.mu.Lock()

	delta := l.clampDelta(deltaMs)
	events := l.drain()
	bounds := l.bounds.Bounds()

	res := l.sim.Update(l.state, delta, events, bounds)
	if res.State.Anim.State != l.state.Anim.State {
		l.logger.Debug("state change", "from", l.state.Anim.State, "to", res.State.Anim.State, "tick", l.tick)
	}
	l.state = res.State

	if l.recorder != nil && !l.closed {
		err := l.recorder.Record(replay.Tick{
			Tick:   l.tick,
			Delta:  delta,
			Width:  bounds.Width,
			Height: bounds.Height,
			Events: protocol.EncodeEvents(events),
		})
		if err != nil {
			l.logger.Warn("recording stopped", "error", err)
			l.recorder = nil
		}
	}
	l.tick++
	l.mu.Unlock()

	if l.sink != nil && len(res.Actions) > 0 {
		l.sink.HandleActions(res.Actions)
	}
	return res
}

// Tick runs one tick using the wall-clock time since the previous Tick.
// The first call only starts the clock.
func (l *Loop) Tick(now time.Time) pet.Result {
	l.mu.Lock()
	var delta float64
	if !l.last.IsZero() {
		delta = float64(now.Sub(l.last)) / float64(time.Millisecond)
	}
	l.last = now
	l.mu.Unlock()

	return l.Step(delta)
}

// Run ticks every interval until ctx is done.
func (l *Loop) Run(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	l.Tick(time.Now())
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-ticker.C:
			l.Tick(now)
		}
	}
}

// State returns the latest snapshot.
func (l *Loop) State() pet.State {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state
}

// Ticks returns the number of completed ticks.
func (l *Loop) Ticks() uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.tick
}

// Close stops recording and closes the recorder, if any.
func (l *Loop) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return nil
	}
	l.closed = true
	if l.recorder != nil {
		return l.recorder.Close()
	}
	return nil
}
