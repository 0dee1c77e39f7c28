// Package sprite loads sprite packs: a sprite.json manifest plus one text file
// per animation frame. A loaded Pack supplies frame timing to the simulation
// and frame art to renderers.
package sprite

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/vovakirdan/maenggu/internal/pet"
)

// ManifestFile is the manifest's file name inside a pack directory.
const ManifestFile = "sprite.json"

// RequiredStates must be present in every manifest.
var RequiredStates = []pet.AnimState{pet.Idle, pet.Walk, pet.Eat, pet.Happy}

var (
	// ErrInvalidManifest wraps schema and JSON errors.
	ErrInvalidManifest = errors.New("sprite: invalid manifest")
	// ErrMissingState is returned when a required or fallback state is absent.
	ErrMissingState = errors.New("sprite: missing state")
	// ErrMissingFrame is returned when a state lists no frames or a frame file is unreadable.
	ErrMissingFrame = errors.New("sprite: missing frame")
)

// StateConfig describes the frames of one animation state.
type StateConfig struct {
	Frames        []string `json:"frames"`
	FrameDuration float64  `json:"frameDuration,omitempty"` // ms; 0 means default
	Loop          bool     `json:"loop"`
}

// Manifest is the decoded sprite.json.
type Manifest struct {
	Name      string                 `json:"name"`
	Version   int                    `json:"version"`
	FrameSize int                    `json:"frameSize"` // source art edge in px
	States    map[string]StateConfig `json:"states"`
	Fallback  string                 `json:"fallback"`
}

// ParseManifest validates data against the manifest schema, decodes it and
// checks the cross-field rules the schema cannot express.
func ParseManifest(data []byte) (Manifest, error) {
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return Manifest{}, fmt.Errorf("%w: %v", ErrInvalidManifest, err)
	}
	if err := manifestSchema().Validate(doc); err != nil {
		return Manifest{}, fmt.Errorf("%w: %v", ErrInvalidManifest, err)
	}

	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return Manifest{}, fmt.Errorf("%w: %v", ErrInvalidManifest, err)
	}
	if err := m.Validate(); err != nil {
		return Manifest{}, err
	}
	return m, nil
}

// Validate checks required states, frame lists and the fallback.
func (m Manifest) Validate() error {
	for _, s := range RequiredStates {
		cfg, ok := m.States[string(s)]
		if !ok {
			return fmt.Errorf("%w: %s", ErrMissingState, s)
		}
		if len(cfg.Frames) == 0 {
			return fmt.Errorf("%w: state %q has no frames", ErrMissingFrame, s)
		}
	}

	fallback, ok := m.States[m.Fallback]
	if !ok {
		return fmt.Errorf("%w: fallback %q does not exist", ErrMissingState, m.Fallback)
	}
	if len(fallback.Frames) == 0 {
		return fmt.Errorf("%w: fallback %q has no frames", ErrMissingFrame, m.Fallback)
	}

	for name, cfg := range m.States {
		for _, f := range cfg.Frames {
			if strings.TrimSpace(f) == "" {
				return fmt.Errorf("%w: state %q has an empty frame path", ErrMissingFrame, name)
			}
		}
	}
	return nil
}

// StateFor returns the config for state, or the fallback's.
func (m Manifest) StateFor(state pet.AnimState) (StateConfig, bool) {
	if cfg, ok := m.States[string(state)]; ok && len(cfg.Frames) > 0 {
		return cfg, true
	}
	cfg, ok := m.States[m.Fallback]
	return cfg, ok
}
