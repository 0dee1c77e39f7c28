package host

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/maenggu/internal/pet"
)

// Crediter credits snacks. *snack.Ledger implements it.
type Crediter interface {
	Add(n int) (int, error)
}

// Effects is the default ActionSink. Floating texts are stored immediately;
// snack credits are counted and applied by Run on its own goroutine, so a
// slow database never stalls a tick.
type Effects struct {
	texts  *FloatingTexts
	ledger Crediter
	clock  func() time.Time
	logger *log.Logger
	wake   chan struct{}

	mu      sync.Mutex
	pending int
	earned  int
}

// NewEffects creates an Effects. ledger may be nil for a pet without
// persistence.
func NewEffects(texts *FloatingTexts, ledger Crediter, logger *log.Logger) *Effects {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Effects{
		texts:  texts,
		ledger: ledger,
		clock:  time.Now,
		logger: logger,
		wake:   make(chan struct{}, 1),
	}
}

// HandleActions implements ActionSink.
func (e *Effects) HandleActions(actions []pet.Action) {
	for _, a := range actions {
		switch act := a.(type) {
		case pet.AddSnack:
			e.mu.Lock()
			e.earned++
			if e.ledger != nil {
				e.pending++
			}
			e.mu.Unlock()
			e.signal()
		case pet.ShowFloatingText:
			if e.texts != nil {
				e.texts.Add(act.Text, act.Position, e.clock())
			}
		}
	}
}

func (e *Effects) signal() {
	select {
	case e.wake <- struct{}{}:
	default:
	}
}

// Earned returns the snacks earned through this host since start.
func (e *Effects) Earned() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.earned
}

// Run applies pending credits to the ledger until ctx is done, then flushes
// whatever is still pending.
func (e *Effects) Run(ctx context.Context) {
	for {
		select {
		case <-e.wake:
			e.flush()
		case <-ctx.Done():
			e.flush()
			return
		}
	}
}

// Flush applies pending credits synchronously.
func (e *Effects) Flush() {
	e.flush()
}

func (e *Effects) flush() {
	e.mu.Lock()
	n := e.pending
	e.pending = 0
	e.mu.Unlock()

	// One ledger call per click keeps click statistics exact.
	for i := 0; i < n; i++ {
		if _, err := e.ledger.Add(1); err != nil {
			e.logger.Error("cannot credit snack", "error", err)
		}
	}
}
