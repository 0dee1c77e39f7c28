package config

import (
	"fmt"

	"github.com/vovakirdan/maenggu/internal/core"
)

// Mood is a named temperament preset layered over the loaded config.
type Mood string

const (
	MoodCalm    Mood = "calm"
	MoodNormal  Mood = "normal"
	MoodPlayful Mood = "playful"
	MoodSleepy  Mood = "sleepy"
)

// Moods lists the presets in display order.
var Moods = []Mood{MoodCalm, MoodNormal, MoodPlayful, MoodSleepy}

// ParseMood validates a preset name. Empty means normal.
func ParseMood(s string) (Mood, error) {
	if s == "" {
		return MoodNormal, nil
	}
	for _, m := range Moods {
		if string(m) == s {
			return m, nil
		}
	}
	return "", fmt.Errorf("%w: unknown mood %q", ErrInvalid, s)
}

// ApplyMood modifies the config based on a temperament preset.
// Normal leaves the loaded values alone.
func ApplyMood(cfg *PetConfig, mood Mood) {
	switch mood {
	case MoodCalm:
		cfg.Timing.IdleMs = core.Range{Min: 6000, Max: 15000}
		cfg.Movement.WalkSpeed = core.Range{Min: 0.5, Max: 1}
	case MoodPlayful:
		cfg.Timing.IdleMs = core.Range{Min: 1000, Max: 3000}
		cfg.Movement.WalkSpeed = core.Range{Min: 2, Max: 3}
		if cfg.Movement.SummonSpeed <= 3 {
			cfg.Movement.SummonSpeed = 5
		}
	case MoodSleepy:
		cfg.Timing.SleepTimeoutMs = 60000
		cfg.Movement.WalkSpeed = core.Range{Min: 0.5, Max: 1}
	}
}
