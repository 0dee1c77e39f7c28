package tui

import (
	"context"
	"io"
	"math/rand"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/maenggu/internal/config"
	"github.com/vovakirdan/maenggu/internal/core"
	"github.com/vovakirdan/maenggu/internal/host"
	"github.com/vovakirdan/maenggu/internal/pet"
	"github.com/vovakirdan/maenggu/internal/reminder"
	"github.com/vovakirdan/maenggu/internal/replay"
	"github.com/vovakirdan/maenggu/internal/snack"
	"github.com/vovakirdan/maenggu/internal/sprite"
)

// hudRows is the number of terminal rows reserved below the play area.
const hudRows = 1

// Viewport maps the terminal to simulation pixels and provides the bounds
// the pet roams in. It is shared between the Bubble Tea model and the loop.
type Viewport struct {
	mu       sync.Mutex
	cols     int
	rows     int
	cellW    int
	cellH    int
	monitors []core.Rect
}

// NewViewport creates a viewport for a cols x rows terminal.
func NewViewport(cols, rows int, term config.TerminalConfig, monitors []core.Rect) *Viewport {
	v := &Viewport{cellW: term.CellWidth, cellH: term.CellHeight, monitors: monitors}
	v.Resize(cols, rows)
	return v
}

// Resize updates the terminal size.
func (v *Viewport) Resize(cols, rows int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.cols = max(cols, 1)
	v.rows = max(rows, hudRows+1)
}

// Size returns the terminal size in cells.
func (v *Viewport) Size() (cols, rows int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.cols, v.rows
}

// Bounds implements host.BoundsProvider. The HUD rows are excluded.
func (v *Viewport) Bounds() pet.Bounds {
	v.mu.Lock()
	defer v.mu.Unlock()
	return pet.Bounds{
		Width:    float64(v.cols * v.cellW),
		Height:   float64((v.rows - hudRows) * v.cellH),
		Monitors: v.monitors,
	}
}

// ToPixel returns the top-left pixel of a cell.
func (v *Viewport) ToPixel(col, row int) core.Position {
	v.mu.Lock()
	defer v.mu.Unlock()
	return core.Position{X: float64(col * v.cellW), Y: float64(row * v.cellH)}
}

// ToCell returns the cell containing a pixel.
func (v *Viewport) ToCell(p core.Position) (col, row int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return int(p.X) / v.cellW, int(p.Y) / v.cellH
}

// Monitors returns the configured layout, if any.
func (v *Viewport) Monitors() []core.Rect {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.monitors
}

// SessionOptions configures a Session.
type SessionOptions struct {
	Config     config.PetConfig
	Pack       *sprite.Pack
	Ledger     *snack.Ledger // optional; snacks are not persisted without it
	Seed       int64         // 0 uses the current time
	Cols       int
	Rows       int
	RecordPath string // optional replay file
	Logger     *log.Logger
}

// Session is one running pet with everything it needs to be drawn.
type Session struct {
	Loop    *host.Loop
	Effects *host.Effects
	Texts   *host.FloatingTexts
	Bubble  *host.Bubble
	Meal    *reminder.Meal // nil when disabled
	Pack    *sprite.Pack
	Ledger  *snack.Ledger
	View    *Viewport

	seed    int64
	started time.Time
	cancel  context.CancelFunc
	done    chan struct{}
}

// NewSession builds the simulation and its collaborators.
func NewSession(opts SessionOptions) (*Session, error) {
	cfg := opts.Config
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	if opts.Pack == nil {
		p, err := sprite.Builtin()
		if err != nil {
			return nil, err
		}
		opts.Pack = p
	}

	view := NewViewport(opts.Cols, opts.Rows, cfg.Terminal, cfg.MonitorRects())
	sim := pet.NewSimulator(cfg.Sim(), opts.Pack, rand.New(rand.NewSource(seed)))
	bounds := view.Bounds()
	initial := sim.NewState(bounds.Width, bounds.Height)

	var meal *reminder.Meal
	if cfg.Reminder.Enabled && len(cfg.Reminder.Times) > 0 {
		times, err := reminder.ParseTimes(cfg.Reminder.Times)
		if err != nil {
			return nil, err
		}
		meal = reminder.NewMeal(times, cfg.Reminder.Message)
	}

	var recorder *replay.Recorder
	if opts.RecordPath != "" {
		r, err := replay.Create(config.ExpandHome(opts.RecordPath), replay.Header{
			Seed:     seed,
			Pack:     opts.Pack.Name(),
			Width:    bounds.Width,
			Height:   bounds.Height,
			Monitors: bounds.Monitors,
			Config:   replay.NewSimConfig(sim.Config()),
		})
		if err != nil {
			return nil, err
		}
		recorder = r
	}

	texts := host.NewFloatingTexts(time.Duration(cfg.Text.FloatingMs * float64(time.Millisecond)))

	// A nil *snack.Ledger must stay a nil interface.
	var crediter host.Crediter
	var spender host.Spender
	if opts.Ledger != nil {
		crediter = opts.Ledger
		spender = opts.Ledger
	}
	effects := host.NewEffects(texts, crediter, logger)

	loop := host.NewLoop(host.Options{
		Sim:      sim,
		Initial:  initial,
		Bounds:   view,
		Sink:     effects,
		Spender:  spender,
		Recorder: recorder,
		MaxDelta: cfg.Runtime(seed).MaxDelta,
		Logger:   logger,
	})

	ctx, cancel := context.WithCancel(context.Background())
	s := &Session{
		Loop:    loop,
		Effects: effects,
		Texts:   texts,
		Bubble:  host.NewBubble(time.Duration(cfg.Text.BubbleMs * float64(time.Millisecond))),
		Meal:    meal,
		Pack:    opts.Pack,
		Ledger:  opts.Ledger,
		View:    view,
		seed:    seed,
		started: time.Now(),
		cancel:  cancel,
		done:    make(chan struct{}),
	}
	go func() {
		defer close(s.done)
		effects.Run(ctx)
	}()
	return s, nil
}

// Seed returns the simulation seed.
func (s *Session) Seed() int64 {
	return s.seed
}

// Tick advances the pet to now and shows the meal reminder when due.
func (s *Session) Tick(now time.Time) pet.Result {
	if s.Meal != nil {
		if msg, ok := s.Meal.Check(now); ok {
			s.Bubble.Show(msg, now)
		}
	}
	return s.Loop.Tick(now)
}

// Snacks returns the shared balance, or 0 without a ledger.
func (s *Session) Snacks() int {
	if s.Ledger == nil {
		return 0
	}
	return s.Ledger.Snacks()
}

// Elapsed returns the time since the session started.
func (s *Session) Elapsed() time.Duration {
	return time.Since(s.started)
}

// Close flushes pending snack credits and stops recording.
func (s *Session) Close() error {
	s.cancel()
	<-s.done
	return s.Loop.Close()
}
