package reminder

import (
	"testing"
	"time"
)

func at(h, m, s int) time.Time {
	return time.Date(2024, 3, 1, h, m, s, 0, time.Local)
}

func TestMealFiresOncePerMinute(t *testing.T) {
	times, err := ParseTimes([]string{"11:50", "17:50"})
	if err != nil {
		t.Fatal(err)
	}
	m := NewMeal(times, "meal soon")

	if _, ok := m.Check(at(11, 49, 59)); ok {
		t.Error("fired early")
	}
	if msg, ok := m.Check(at(11, 50, 0)); !ok || msg != "meal soon" {
		t.Errorf("Check(11:50) = %q, %v", msg, ok)
	}
	if _, ok := m.Check(at(11, 50, 30)); ok {
		t.Error("fired twice in the same minute")
	}
	if _, ok := m.Check(at(11, 51, 0)); ok {
		t.Error("fired after the minute")
	}
	if _, ok := m.Check(at(17, 50, 5)); !ok {
		t.Error("second reminder did not fire")
	}
}

func TestParseTimesRejectsGarbage(t *testing.T) {
	if _, err := ParseTimes([]string{"noon"}); err == nil {
		t.Error("expected error")
	}
}

func TestMealNext(t *testing.T) {
	times, _ := ParseTimes([]string{"11:50", "17:50"})
	m := NewMeal(times, "")

	tests := []struct {
		now      time.Time
		expected time.Time
	}{
		{at(9, 0, 0), at(11, 50, 0)},
		{at(11, 50, 0), at(17, 50, 0)},
		{at(20, 0, 0), at(11, 50, 0).AddDate(0, 0, 1)},
	}
	for _, tc := range tests {
		got, ok := m.Next(tc.now)
		if !ok || !got.Equal(tc.expected) {
			t.Errorf("Next(%v) = %v, expected %v", tc.now, got, tc.expected)
		}
	}

	if _, ok := NewMeal(nil, "").Next(at(0, 0, 0)); ok {
		t.Error("Next() with no times should report false")
	}
}
