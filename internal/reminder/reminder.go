// Package reminder fires a message at fixed times of day.
package reminder

import (
	"fmt"
	"sync"
	"time"
)

// MealTime is a local time of day.
type MealTime struct {
	Hour   int
	Minute int
}

// ParseTimes parses "HH:MM" strings.
func ParseTimes(times []string) ([]MealTime, error) {
	out := make([]MealTime, 0, len(times))
	for _, s := range times {
		t, err := time.Parse("15:04", s)
		if err != nil {
			return nil, fmt.Errorf("reminder: bad time %q: %w", s, err)
		}
		out = append(out, MealTime{Hour: t.Hour(), Minute: t.Minute()})
	}
	return out, nil
}

// Meal reports its message once during each matching minute.
type Meal struct {
	mu      sync.Mutex
	times   []MealTime
	message string
	last    time.Time // minute of the last firing
}

// NewMeal creates a reminder.
func NewMeal(times []MealTime, message string) *Meal {
	return &Meal{times: times, message: message}
}

// Check returns the message if now falls in a reminder minute that has not
// fired yet.
func (m *Meal) Check(now time.Time) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	minute := now.Truncate(time.Minute)
	if minute.Equal(m.last) {
		return "", false
	}

	for _, t := range m.times {
		if now.Hour() == t.Hour && now.Minute() == t.Minute {
			m.last = minute
			return m.message, true
		}
	}
	return "", false
}

// Next returns the next reminder time strictly after now, or false if no
// times are configured.
func (m *Meal) Next(now time.Time) (time.Time, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var (
		best  time.Time
		found bool
	)
	for _, t := range m.times {
		at := time.Date(now.Year(), now.Month(), now.Day(), t.Hour, t.Minute, 0, 0, now.Location())
		if !at.After(now) {
			at = at.AddDate(0, 0, 1)
		}
		if !found || at.Before(best) {
			best, found = at, true
		}
	}
	return best, found
}
