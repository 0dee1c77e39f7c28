package storage

import (
	"encoding/json"
	"errors"
	"fmt"
)

// SaveVersion is the only legacy save.json version understood.
const SaveVersion = 1

// ErrInvalidSave is returned for save files that fail validation.
var ErrInvalidSave = errors.New("storage: invalid save data")

type saveFile struct {
	Version *int       `json:"version"`
	Snacks  *int       `json:"snacks"`
	Stats   *saveStats `json:"stats"`
}

type saveStats struct {
	TotalClicks     *int   `json:"totalClicks"`
	TotalFeedings   *int   `json:"totalFeedings"`
	PeakSnacks      *int   `json:"peakSnacks"`
	SessionPlaytime *int64 `json:"sessionPlaytime"`
}

// ParseSaveJSON decodes a legacy save.json. Every field is required and
// counters must be non-negative.
func ParseSaveJSON(data []byte) (SaveData, error) {
	var f saveFile
	if err := json.Unmarshal(data, &f); err != nil {
		return SaveData{}, fmt.Errorf("%w: %v", ErrInvalidSave, err)
	}

	switch {
	case f.Version == nil || *f.Version != SaveVersion:
		return SaveData{}, fmt.Errorf("%w: unsupported version", ErrInvalidSave)
	case f.Snacks == nil:
		return SaveData{}, fmt.Errorf("%w: missing snacks", ErrInvalidSave)
	case f.Stats == nil:
		return SaveData{}, fmt.Errorf("%w: missing stats", ErrInvalidSave)
	case f.Stats.TotalClicks == nil, f.Stats.TotalFeedings == nil,
		f.Stats.PeakSnacks == nil, f.Stats.SessionPlaytime == nil:
		return SaveData{}, fmt.Errorf("%w: incomplete stats", ErrInvalidSave)
	}

	out := SaveData{
		Snacks: *f.Snacks,
		Stats: Stats{
			TotalClicks:       *f.Stats.TotalClicks,
			TotalFeedings:     *f.Stats.TotalFeedings,
			PeakSnacks:        *f.Stats.PeakSnacks,
			SessionPlaytimeMs: *f.Stats.SessionPlaytime,
		},
	}
	if err := out.Validate(); err != nil {
		return SaveData{}, err
	}
	return out, nil
}

// Validate rejects negative counters.
func (d SaveData) Validate() error {
	if d.Snacks < 0 || d.Stats.TotalClicks < 0 || d.Stats.TotalFeedings < 0 ||
		d.Stats.PeakSnacks < 0 || d.Stats.SessionPlaytimeMs < 0 {
		return fmt.Errorf("%w: negative counter", ErrInvalidSave)
	}
	return nil
}

// MarshalSaveJSON encodes data in the legacy save.json layout.
func MarshalSaveJSON(d SaveData) ([]byte, error) {
	version := SaveVersion
	return json.MarshalIndent(saveFile{
		Version: &version,
		Snacks:  &d.Snacks,
		Stats: &saveStats{
			TotalClicks:     &d.Stats.TotalClicks,
			TotalFeedings:   &d.Stats.TotalFeedings,
			PeakSnacks:      &d.Stats.PeakSnacks,
			SessionPlaytime: &d.Stats.SessionPlaytimeMs,
		},
	}, "", "  ")
}
