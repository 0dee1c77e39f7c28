package replay

import (
	"errors"
	"fmt"
	"io"
	"math/rand"

	"github.com/vovakirdan/maenggu/internal/pet"
	"github.com/vovakirdan/maenggu/internal/protocol"
)

// Summary is the outcome of a headless replay.
type Summary struct {
	Ticks         uint64
	Final         pet.State
	SnacksEarned  int
	FloatingTexts int
	StateTicks    map[pet.AnimState]uint64 // ticks spent in each state
}

// Run re-simulates a recording. frames must match the pack named in the
// header for the animation to reproduce; nil uses pet.DefaultFrames.
func Run(r *Reader, frames pet.FrameSource) (Summary, error) {
	h := r.Header
	sim := pet.NewSimulator(h.Config.Pet(), frames, rand.New(rand.NewSource(h.Seed)))
	state := sim.NewState(h.Width, h.Height)

	sum := Summary{StateTicks: make(map[pet.AnimState]uint64)}
	for {
		t, err := r.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return sum, err
		}

		events, err := DecodeTickEvents(t)
		if err != nil {
			return sum, err
		}

		bounds := pet.Bounds{Width: t.Width, Height: t.Height, Monitors: h.Monitors}
		res := sim.Update(state, t.Delta, events, bounds)
		state = res.State

		for _, a := range res.Actions {
			switch a.(type) {
			case pet.AddSnack:
				sum.SnacksEarned++
			case pet.ShowFloatingText:
				sum.FloatingTexts++
			}
		}
		sum.StateTicks[state.Anim.State]++
		sum.Ticks++
	}

	sum.Final = state
	return sum, nil
}

// DecodeTickEvents converts a tick's recorded events.
func DecodeTickEvents(t Tick) ([]pet.Event, error) {
	events, err := protocol.DecodeEvents(t.Events)
	if err != nil {
		return nil, fmt.Errorf("replay: tick %d: %w", t.Tick, err)
	}
	return events, nil
}
