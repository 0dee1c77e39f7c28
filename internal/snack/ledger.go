// Package snack owns the snack balance shared by every pet in the process.
//
// A Ledger is constructed once at start-up around a Store and passed to the
// components that need it. Every change is persisted through the Store before
// subscribers are told the new balance.
package snack

import (
	"sync"
	"time"

	"github.com/vovakirdan/maenggu/internal/storage"
)

// Store persists the ledger. *storage.Store implements it.
type Store interface {
	Load() (storage.SaveData, error)
	AddSnacks(n int) (int, error)
	SpendSnacks(n int) (int, bool, error)
	AddPlaytime(d time.Duration) error
}

// Listener receives the balance after every change. Listeners may read the
// ledger but must not change it.
type Listener func(snacks int)

// Ledger is the single owner of the snack count.
type Ledger struct {
	mu        sync.Mutex
	store     Store
	data      storage.SaveData
	listeners map[int]Listener
	nextID    int
	seq       uint64

	// notifyMu orders deliveries; it is never taken while mu is held.
	notifyMu  sync.Mutex
	delivered uint64
}

// NewLedger loads the persisted balance from store.
func NewLedger(store Store) (*Ledger, error) {
	data, err := store.Load()
	if err != nil {
		return nil, err
	}
	return &Ledger{
		store:     store,
		data:      data,
		listeners: make(map[int]Listener),
	}, nil
}

// Snacks returns the current balance.
func (l *Ledger) Snacks() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.data.Snacks
}

// Stats returns the lifetime counters.
func (l *Ledger) Stats() storage.Stats {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.data.Stats
}

// Add credits n snacks (one click) and returns the new balance.
func (l *Ledger) Add(n int) (int, error) {
	l.mu.Lock()
	snacks, err := l.store.AddSnacks(n)
	if err != nil {
		l.mu.Unlock()
		return 0, err
	}
	l.data.Snacks = snacks
	l.data.Stats.TotalClicks++
	if snacks > l.data.Stats.PeakSnacks {
		l.data.Stats.PeakSnacks = snacks
	}
	l.seq++
	seq, listeners := l.seq, l.snapshotListeners()
	l.mu.Unlock()

	l.notify(seq, listeners, snacks)
	return snacks, nil
}

// Spend debits n snacks. It reports false, changing nothing, when the
// balance is too low.
func (l *Ledger) Spend(n int) (bool, error) {
	l.mu.Lock()
	snacks, ok, err := l.store.SpendSnacks(n)
	if err != nil {
		l.mu.Unlock()
		return false, err
	}
	l.data.Snacks = snacks
	if !ok {
		l.mu.Unlock()
		return false, nil
	}
	l.data.Stats.TotalFeedings++
	l.seq++
	seq, listeners := l.seq, l.snapshotListeners()
	l.mu.Unlock()

	l.notify(seq, listeners, snacks)
	return true, nil
}

// AddPlaytime adds session time to the lifetime counter.
func (l *Ledger) AddPlaytime(d time.Duration) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.store.AddPlaytime(d); err != nil {
		return err
	}
	if d > 0 {
		l.data.Stats.SessionPlaytimeMs += d.Milliseconds()
	}
	return nil
}

// Subscribe registers fn for balance changes. The returned func removes it.
func (l *Ledger) Subscribe(fn Listener) (cancel func()) {
	l.mu.Lock()
	defer l.mu.Unlock()

	id := l.nextID
	l.nextID++
	l.listeners[id] = fn

	return func() {
		l.mu.Lock()
		defer l.mu.Unlock()
		delete(l.listeners, id)
	}
}

// snapshotListeners copies the listener set; callers hold l.mu.
func (l *Ledger) snapshotListeners() []Listener {
	out := make([]Listener, 0, len(l.listeners))
	for _, fn := range l.listeners {
		out = append(out, fn)
	}
	return out
}

// notify delivers the balance of change seq. A change overtaken by a newer
// delivery is dropped, so listeners never see the balance go back in time.
func (l *Ledger) notify(seq uint64, listeners []Listener, snacks int) {
	l.notifyMu.Lock()
	defer l.notifyMu.Unlock()

	if seq <= l.delivered {
		return
	}
	l.delivered = seq
	for _, fn := range listeners {
		fn(snacks)
	}
}
