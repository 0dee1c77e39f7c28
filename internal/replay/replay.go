// Package replay records the inputs of a pet session as zstd-compressed JSON
// lines and re-runs them headlessly. Because the simulation is deterministic,
// a header (seed, config, window) plus the per-tick inputs reproduce the
// session exactly.
package replay

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/klauspost/compress/zstd"

	"github.com/vovakirdan/maenggu/internal/core"
	"github.com/vovakirdan/maenggu/internal/pet"
	"github.com/vovakirdan/maenggu/internal/protocol"
)

// FormatVersion is written into every header.
const FormatVersion = 1

// ErrBadHeader is returned when a recording does not start with a valid header.
var ErrBadHeader = errors.New("replay: bad header")

// SimConfig is the wire form of pet.Config.
type SimConfig struct {
	IdleTime       core.Range `json:"idle_time"`
	MoveSpeed      core.Range `json:"move_speed"`
	SummonSpeed    float64    `json:"summon_speed"`
	SleepTimeoutMs float64    `json:"sleep_timeout_ms"`
	SpriteSize     float64    `json:"sprite_size"`
	SnackText      string     `json:"snack_text"`
}

// NewSimConfig converts c to its wire form.
func NewSimConfig(c pet.Config) SimConfig {
	return SimConfig(c)
}

// Pet converts back to pet.Config.
func (c SimConfig) Pet() pet.Config {
	return pet.Config(c)
}

// Header is the first line of a recording.
type Header struct {
	Version  int         `json:"version"`
	Seed     int64       `json:"seed"`
	Pack     string      `json:"pack"`
	Width    float64     `json:"width"`
	Height   float64     `json:"height"`
	Monitors []core.Rect `json:"monitors,omitempty"`
	Config   SimConfig   `json:"config"`
}

// Tick is one recorded update call.
type Tick struct {
	Tick   uint64               `json:"tick"`
	Delta  float64              `json:"delta"`
	Width  float64              `json:"w"`
	Height float64              `json:"h"`
	Events []protocol.EventJSON `json:"events,omitempty"`
}

// Recorder writes a recording. It is safe for concurrent use.
type Recorder struct {
	mu  sync.Mutex
	f   *os.File // nil when writing to a caller-owned io.Writer
	enc *zstd.Encoder
	w   *bufio.Writer
}

// Create opens path for writing and writes the header.
func Create(path string, h Header) (*Recorder, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("replay: cannot create directory %s: %w", dir, err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("replay: cannot create %s: %w", path, err)
	}
	r, err := NewRecorder(f, h)
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	r.f = f
	return r, nil
}

// NewRecorder writes the header to w and returns a recorder for the ticks.
func NewRecorder(w io.Writer, h Header) (*Recorder, error) {
	enc, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedFastest))
	if err != nil {
		return nil, fmt.Errorf("replay: zstd: %w", err)
	}
	r := &Recorder{enc: enc, w: bufio.NewWriterSize(enc, 64*1024)}

	h.Version = FormatVersion
	if err := r.writeLine(h); err != nil {
		_ = enc.Close()
		return nil, err
	}
	return r, nil
}

// Record appends one tick.
func (r *Recorder) Record(t Tick) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.writeLine(t)
}

func (r *Recorder) writeLine(v any) error {
	if r.w == nil {
		return fmt.Errorf("replay: recorder closed")
	}
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("replay: encode: %w", err)
	}
	if _, err := r.w.Write(b); err != nil {
		return err
	}
	return r.w.WriteByte('\n')
}

// Close flushes and finishes the zstd stream, closing the file if the
// recorder opened it.
func (r *Recorder) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.w == nil {
		return nil
	}
	err := r.w.Flush()
	if cerr := r.enc.Close(); err == nil {
		err = cerr
	}
	if r.f != nil {
		if cerr := r.f.Close(); err == nil {
			err = cerr
		}
		r.f = nil
	}
	r.w = nil
	return err
}

// Reader reads a recording.
type Reader struct {
	Header Header

	f   *os.File
	dec *zstd.Decoder
	sc  *bufio.Scanner
}

// Open opens a recording file.
func Open(path string) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("replay: cannot open %s: %w", path, err)
	}
	r, err := NewReader(f)
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	r.f = f
	return r, nil
}

// NewReader decompresses src and reads the header.
func NewReader(src io.Reader) (*Reader, error) {
	dec, err := zstd.NewReader(src)
	if err != nil {
		return nil, fmt.Errorf("replay: zstd: %w", err)
	}

	sc := bufio.NewScanner(dec)
	sc.Buffer(make([]byte, 64*1024), 8*1024*1024)

	r := &Reader{dec: dec, sc: sc}
	if !sc.Scan() {
		err := sc.Err()
		dec.Close()
		if err == nil {
			err = io.ErrUnexpectedEOF
		}
		return nil, fmt.Errorf("%w: %v", ErrBadHeader, err)
	}
	if err := json.Unmarshal(sc.Bytes(), &r.Header); err != nil {
		dec.Close()
		return nil, fmt.Errorf("%w: %v", ErrBadHeader, err)
	}
	if r.Header.Version != FormatVersion {
		dec.Close()
		return nil, fmt.Errorf("%w: unsupported version %d", ErrBadHeader, r.Header.Version)
	}
	return r, nil
}

// Next returns the next tick, or io.EOF at the end of the recording.
func (r *Reader) Next() (Tick, error) {
	if !r.sc.Scan() {
		if err := r.sc.Err(); err != nil {
			return Tick{}, fmt.Errorf("replay: read: %w", err)
		}
		return Tick{}, io.EOF
	}
	var t Tick
	if err := json.Unmarshal(r.sc.Bytes(), &t); err != nil {
		return Tick{}, fmt.Errorf("replay: decode tick: %w", err)
	}
	return t, nil
}

// Close releases the decoder and the file, if opened by Open.
func (r *Reader) Close() error {
	r.dec.Close()
	if r.f != nil {
		return r.f.Close()
	}
	return nil
}
