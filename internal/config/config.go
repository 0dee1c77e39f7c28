// Package config provides YAML-based tuning for the pet: timing, movement,
// sprite, text effects, the meal reminder and the terminal pixel mapping.
package config

import (
	"github.com/vovakirdan/maenggu/internal/core"
)

// PetConfig contains all tuning for the pet and its host.
type PetConfig struct {
	Timing   TimingConfig   `yaml:"timing"`
	Movement MovementConfig `yaml:"movement"`
	Sprite   SpriteConfig   `yaml:"sprite"`
	Text     TextConfig     `yaml:"text"`
	Reminder ReminderConfig `yaml:"reminder"`
	Terminal TerminalConfig `yaml:"terminal"`
	Storage  StorageConfig  `yaml:"storage"`
}

// TimingConfig defines the simulation clocks, all in milliseconds.
type TimingConfig struct {
	IdleMs         core.Range `yaml:"idle_ms"`          // Countdown before a random wander
	SleepTimeoutMs float64    `yaml:"sleep_timeout_ms"` // Inactivity before sleeping
	MaxDeltaMs     float64    `yaml:"max_delta_ms"`     // Per-tick delta clamp
	TickRate       int        `yaml:"tick_rate"`        // Host ticks per second
}

// MovementConfig defines speeds in pixels per 1/60 s frame.
type MovementConfig struct {
	WalkSpeed   core.Range `yaml:"walk_speed"`
	SummonSpeed float64    `yaml:"summon_speed"`
}

// SpriteConfig selects the sprite pack and its on-screen size.
type SpriteConfig struct {
	Pack      string `yaml:"pack"`
	FrameSize int    `yaml:"frame_size"` // Source art edge, px
	Scale     int    `yaml:"scale"`      // Integer display scale
	PacksDir  string `yaml:"packs_dir"`  // User packs, one per subdirectory
}

// DisplaySize returns the displayed sprite edge in pixels.
func (s SpriteConfig) DisplaySize() int {
	return s.FrameSize * s.Scale
}

// TextConfig defines the transient text effects.
type TextConfig struct {
	Snack      string  `yaml:"snack"`       // Shown on a click
	FloatingMs float64 `yaml:"floating_ms"` // Floating text lifetime
	BubbleMs   float64 `yaml:"bubble_ms"`   // Speech bubble lifetime
}

// ReminderConfig defines the meal reminder.
type ReminderConfig struct {
	Enabled bool     `yaml:"enabled"`
	Times   []string `yaml:"times"` // "HH:MM", local time
	Message string   `yaml:"message"`
}

// TerminalConfig maps terminal cells to simulation pixels.
type TerminalConfig struct {
	CellWidth  int       `yaml:"cell_width"`
	CellHeight int       `yaml:"cell_height"`
	Monitors   []Monitor `yaml:"monitors,omitempty"` // Optional layout, px
}

// Monitor is one display rectangle in window-local pixels.
type Monitor struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
	W int `yaml:"w"`
	H int `yaml:"h"`
}

// StorageConfig locates the snack ledger database.
type StorageConfig struct {
	Path string `yaml:"path"`
}
