package core

import "time"

// RuntimeConfig contains configuration passed to the host at initialization.
// The host uses this to size the play area and seed deterministic simulation.
type RuntimeConfig struct {
	ScreenW  int           // Screen width in characters
	ScreenH  int           // Screen height in characters
	TickRate int           // Host ticks per second (default 60)
	Seed     int64         // RNG seed for deterministic behaviour
	MaxDelta time.Duration // Upper bound on a single tick's elapsed time
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
		MaxDelta: 100 * time.Millisecond,
	}
}

// TickInterval returns the wall-clock interval between ticks.
func (c RuntimeConfig) TickInterval() time.Duration {
	if c.TickRate <= 0 {
		return time.Second / 60
	}
	return time.Second / time.Duration(c.TickRate)
}
