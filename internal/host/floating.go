package host

import (
	"sort"
	"sync"
	"time"

	"github.com/vovakirdan/maenggu/internal/core"
)

// DefaultFloatingLifetime is how long a floating text stays on screen.
const DefaultFloatingLifetime = time.Second

// FloatingText is a live text effect.
type FloatingText struct {
	ID       int
	Text     string
	Position core.Position
	Progress float64 // 0 at creation, 1 at expiry
}

type floatingEntry struct {
	text     string
	pos      core.Position
	deadline time.Time
}

// FloatingTexts holds transient text effects. Each entry removes itself
// after the lifetime; Remove drops one early.
type FloatingTexts struct {
	mu       sync.Mutex
	lifetime time.Duration
	nextID   int
	entries  map[int]floatingEntry
}

// NewFloatingTexts creates an empty set. A non-positive lifetime uses
// DefaultFloatingLifetime.
func NewFloatingTexts(lifetime time.Duration) *FloatingTexts {
	if lifetime <= 0 {
		lifetime = DefaultFloatingLifetime
	}
	return &FloatingTexts{lifetime: lifetime, entries: make(map[int]floatingEntry)}
}

// Add shows text at pos starting at now and returns its handle.
func (f *FloatingTexts) Add(text string, pos core.Position, now time.Time) int {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.nextID++
	f.entries[f.nextID] = floatingEntry{text: text, pos: pos, deadline: now.Add(f.lifetime)}
	return f.nextID
}

// Remove drops an entry by handle.
func (f *FloatingTexts) Remove(id int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.entries, id)
}

// Active prunes expired entries and returns the live ones, oldest first.
func (f *FloatingTexts) Active(now time.Time) []FloatingText {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]FloatingText, 0, len(f.entries))
	for id, e := range f.entries {
		if !now.Before(e.deadline) {
			delete(f.entries, id)
			continue
		}
		remaining := e.deadline.Sub(now)
		out = append(out, FloatingText{
			ID:       id,
			Text:     e.text,
			Position: e.pos,
			Progress: core.ClampF(1-float64(remaining)/float64(f.lifetime), 0, 1),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Len returns the number of stored entries, expired or not.
func (f *FloatingTexts) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.entries)
}

// Bubble is a single speech bubble that replaces itself when shown again.
type Bubble struct {
	mu       sync.Mutex
	lifetime time.Duration
	text     string
	deadline time.Time
}

// NewBubble creates a bubble with the given lifetime.
func NewBubble(lifetime time.Duration) *Bubble {
	return &Bubble{lifetime: lifetime}
}

// Show displays text until now+lifetime.
func (b *Bubble) Show(text string, now time.Time) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.text = text
	b.deadline = now.Add(b.lifetime)
}

// Current returns the text if the bubble is still up.
func (b *Bubble) Current(now time.Time) (string, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.text == "" || !now.Before(b.deadline) {
		return "", false
	}
	return b.text, true
}
