package host

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/vovakirdan/maenggu/internal/core"
	"github.com/vovakirdan/maenggu/internal/pet"
)

type fixedRand float64

func (f fixedRand) Float64() float64 { return float64(f) }

type recordingSink struct {
	mu      sync.Mutex
	actions []pet.Action
}

func (s *recordingSink) HandleActions(actions []pet.Action) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.actions = append(s.actions, actions...)
}

type fakeSpender struct {
	balance int
	err     error
}

func (f *fakeSpender) Spend(n int) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	if f.balance < n {
		return false, nil
	}
	f.balance -= n
	return true, nil
}

func newTestLoop(sink ActionSink, spender Spender) *Loop {
	sim := pet.NewSimulator(pet.DefaultConfig(), nil, fixedRand(0.5))
	return NewLoop(Options{
		Sim:      sim,
		Initial:  sim.NewState(800, 600),
		Bounds:   StaticBounds(pet.NewBounds(800, 600)),
		Sink:     sink,
		Spender:  spender,
		MaxDelta: 100 * time.Millisecond,
	})
}

func TestLoopClampsDelta(t *testing.T) {
	loop := newTestLoop(nil, nil)
	before := loop.State().IdleTimer.RemainingMs

	loop.Step(5000)
	if got := loop.State().IdleTimer.RemainingMs; got != before-100 {
		t.Errorf("idle timer = %f, expected %f after a clamped tick", got, before-100)
	}

	loop.Step(-20)
	if got := loop.State().IdleTimer.RemainingMs; got != before-100 {
		t.Errorf("negative delta advanced the timer to %f", got)
	}
}

func TestLoopDrainsEventsOnce(t *testing.T) {
	sink := &recordingSink{}
	loop := newTestLoop(sink, nil)

	loop.Push(pet.Click{Position: core.Position{X: 1, Y: 2}})
	res := loop.Step(16)
	if len(res.Actions) != 2 {
		t.Fatalf("first tick actions = %v", res.Actions)
	}
	if loop.State().Anim.State != pet.Eat {
		t.Errorf("anim = %s, expected eat", loop.State().Anim.State)
	}

	res = loop.Step(16)
	if len(res.Actions) != 0 {
		t.Errorf("event delivered twice: %v", res.Actions)
	}
	if len(sink.actions) != 2 {
		t.Errorf("sink received %d actions, expected 2", len(sink.actions))
	}
}

func TestLoopConcurrentPush(t *testing.T) {
	sink := &recordingSink{}
	loop := newTestLoop(sink, nil)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			loop.Push(pet.FeedFail{})
		}()
	}

	done := make(chan struct{})
	go func() {
		for i := 0; i < 100; i++ {
			loop.Step(1)
		}
		close(done)
	}()
	wg.Wait()
	<-done

	loop.Step(1)
	if n := len(loop.drain()); n != 0 {
		t.Errorf("%d events left undelivered", n)
	}
	if loop.Ticks() != 101 {
		t.Errorf("Ticks() = %d", loop.Ticks())
	}
}

func TestLoopFeed(t *testing.T) {
	spender := &fakeSpender{balance: 1}
	loop := newTestLoop(nil, spender)

	ok, err := loop.Feed()
	if err != nil || !ok {
		t.Fatalf("Feed() = %v, %v", ok, err)
	}
	loop.Step(16)
	if loop.State().Anim.State != pet.Eat {
		t.Errorf("anim after feed = %s, expected eat", loop.State().Anim.State)
	}
	if loop.Fed() != 1 {
		t.Errorf("Fed() = %d, expected 1", loop.Fed())
	}

	loop = newTestLoop(nil, spender)
	ok, err = loop.Feed()
	if err != nil || ok {
		t.Fatalf("Feed() with empty balance = %v, %v", ok, err)
	}
	loop.Step(16)
	if loop.State().Anim.State != pet.Idle {
		t.Errorf("anim after failed feed = %s, expected idle", loop.State().Anim.State)
	}
	if loop.Fed() != 0 {
		t.Errorf("Fed() after failed feed = %d, expected 0", loop.Fed())
	}

	spender.err = errors.New("disk full")
	if _, err := loop.Feed(); err == nil {
		t.Error("Feed() should surface spender errors")
	}
}

func TestLoopTickUsesWallClock(t *testing.T) {
	loop := newTestLoop(nil, nil)
	before := loop.State().IdleTimer.RemainingMs

	start := time.Unix(1000, 0)
	loop.Tick(start)
	if got := loop.State().IdleTimer.RemainingMs; got != before {
		t.Errorf("first Tick advanced time: %f", got)
	}

	loop.Tick(start.Add(40 * time.Millisecond))
	if got := loop.State().IdleTimer.RemainingMs; got != before-40 {
		t.Errorf("idle timer = %f, expected %f", got, before-40)
	}
}

func TestLoopRunStopsOnCancel(t *testing.T) {
	loop := newTestLoop(nil, nil)
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	err := loop.Run(ctx, 5*time.Millisecond)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Run() = %v", err)
	}
	if loop.Ticks() < 2 {
		t.Errorf("Ticks() = %d, expected the loop to have run", loop.Ticks())
	}
}
