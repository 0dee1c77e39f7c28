package config

import (
	_ "embed"

	"github.com/vovakirdan/maenggu/internal/core"
)

//go:embed defaults/maenggu.yaml
var defaultPetYAML []byte

// DefaultPetConfig returns the default configuration.
func DefaultPetConfig() PetConfig {
	return PetConfig{
		Timing: TimingConfig{
			IdleMs:         core.Range{Min: 3000, Max: 8000},
			SleepTimeoutMs: 300000,
			MaxDeltaMs:     100,
			TickRate:       30,
		},
		Movement: MovementConfig{
			WalkSpeed:   core.Range{Min: 1, Max: 2},
			SummonSpeed: 4,
		},
		Sprite: SpriteConfig{
			Pack:      "maenggu",
			FrameSize: 32,
			Scale:     2,
			PacksDir:  "~/.maenggu/packs",
		},
		Text: TextConfig{
			Snack:      "+🍖",
			FloatingMs: 1000,
			BubbleMs:   5000,
		},
		Reminder: ReminderConfig{
			Enabled: true,
			Times:   []string{"11:50", "17:50"},
			Message: "맘마 10분전! ><",
		},
		Terminal: TerminalConfig{
			CellWidth:  8,
			CellHeight: 16,
		},
		Storage: StorageConfig{
			Path: "~/.maenggu/maenggu.db",
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultPetYAML
}
