package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/vovakirdan/maenggu/internal/core"
	"github.com/vovakirdan/maenggu/internal/pet"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("config: invalid config")

// Validate rejects configurations the simulation cannot run with.
func (c PetConfig) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, args...)...))
		}
	}

	check(validRange(c.Timing.IdleMs), "timing.idle_ms must satisfy 0 <= min <= max")
	check(c.Timing.SleepTimeoutMs > 0, "timing.sleep_timeout_ms must be positive")
	check(c.Timing.MaxDeltaMs > 0, "timing.max_delta_ms must be positive")
	check(c.Timing.TickRate > 0 && c.Timing.TickRate <= 240, "timing.tick_rate must be in 1..240")

	check(validRange(c.Movement.WalkSpeed) && c.Movement.WalkSpeed.Min > 0, "movement.walk_speed must satisfy 0 < min <= max")
	check(c.Movement.SummonSpeed > c.Movement.WalkSpeed.Max, "movement.summon_speed must exceed walk_speed.max")

	check(c.Sprite.Pack != "", "sprite.pack must not be empty")
	check(c.Sprite.FrameSize > 0, "sprite.frame_size must be positive")
	check(c.Sprite.Scale >= 1, "sprite.scale must be a positive integer")

	check(c.Text.FloatingMs > 0, "text.floating_ms must be positive")
	check(c.Text.BubbleMs > 0, "text.bubble_ms must be positive")

	for _, t := range c.Reminder.Times {
		_, err := time.Parse("15:04", t)
		check(err == nil, "reminder.times: %q is not HH:MM", t)
	}

	check(c.Terminal.CellWidth > 0 && c.Terminal.CellHeight > 0, "terminal cell size must be positive")
	for i, m := range c.Terminal.Monitors {
		check(m.W > 0 && m.H > 0, "terminal.monitors[%d] must have a positive size", i)
	}
	rects := c.MonitorRects()
	for i := range rects {
		for j := i + 1; j < len(rects); j++ {
			check(!rects[i].Intersects(rects[j]), "terminal.monitors[%d] overlaps monitors[%d]", i, j)
		}
	}

	return errors.Join(errs...)
}

func validRange(r core.Range) bool {
	return r.Min >= 0 && r.Min <= r.Max
}

// Sim converts the configuration to simulation tuning.
func (c PetConfig) Sim() pet.Config {
	return pet.Config{
		IdleTime:       c.Timing.IdleMs,
		MoveSpeed:      c.Movement.WalkSpeed,
		SummonSpeed:    c.Movement.SummonSpeed,
		SleepTimeoutMs: c.Timing.SleepTimeoutMs,
		SpriteSize:     float64(c.Sprite.DisplaySize()),
		SnackText:      c.Text.Snack,
	}
}

// Runtime returns the host loop settings.
func (c PetConfig) Runtime(seed int64) core.RuntimeConfig {
	rc := core.DefaultConfig()
	rc.TickRate = c.Timing.TickRate
	rc.Seed = seed
	rc.MaxDelta = time.Duration(c.Timing.MaxDeltaMs * float64(time.Millisecond))
	return rc
}

// MonitorRects returns the configured monitor layout.
func (c PetConfig) MonitorRects() []core.Rect {
	if len(c.Terminal.Monitors) == 0 {
		return nil
	}
	rects := make([]core.Rect, len(c.Terminal.Monitors))
	for i, m := range c.Terminal.Monitors {
		rects[i] = core.NewRect(float64(m.X), float64(m.Y), float64(m.W), float64(m.H))
	}
	return rects
}
