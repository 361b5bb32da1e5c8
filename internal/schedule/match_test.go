package schedule

import (
	"testing"
	"time"
)

func TestMatches(t *testing.T) {
	tolerance := 60 * time.Second

	tests := []struct {
		name      string
		current   string
		scheduled string
		expected  bool
	}{
		{"exact match", "08:00", "08:00", true},
		{"one minute late", "08:01", "08:00", true},
		{"one minute early", "07:59", "08:00", true},
		{"two minutes late", "08:02", "08:00", false},
		{"different hour", "09:00", "08:00", false},
		{"no midnight wraparound", "00:00", "23:59", false},
		{"malformed current", "nonsense", "08:00", false},
		{"malformed scheduled", "08:00", "25:99", false},
		{"empty input", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Matches(tt.current, tt.scheduled, tolerance); got != tt.expected {
				t.Errorf("Matches(%q, %q, 60s) = %v, want %v", tt.current, tt.scheduled, got, tt.expected)
			}
		})
	}
}

func TestMatches_ZeroTolerance(t *testing.T) {
	if !Matches("08:00", "08:00", 0) {
		t.Error("identical times should match at zero tolerance")
	}
	if Matches("08:01", "08:00", 0) {
		t.Error("different times should not match at zero tolerance")
	}
}

func TestNextOccurrence(t *testing.T) {
	now := time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC)

	t.Run("slot later today", func(t *testing.T) {
		next, ok := NextOccurrence("14:00", now)
		if !ok {
			t.Fatal("expected occurrence for valid slot")
		}
		want := time.Date(2026, 8, 28, 14, 0, 0, 0, time.UTC)
		if !next.Equal(want) {
			t.Errorf("got %v, want %v", next, want)
		}
	})

	t.Run("slot already passed rolls to tomorrow", func(t *testing.T) {
		next, ok := NextOccurrence("08:00", now)
		if !ok {
			t.Fatal("expected occurrence for valid slot")
		}
		want := time.Date(2026, 8, 29, 8, 0, 0, 0, time.UTC)
		if !next.Equal(want) {
			t.Errorf("got %v, want %v", next, want)
		}
	})

	t.Run("slot equal to now rolls to tomorrow", func(t *testing.T) {
		next, _ := NextOccurrence("10:00", now)
		want := time.Date(2026, 8, 29, 10, 0, 0, 0, time.UTC)
		if !next.Equal(want) {
			t.Errorf("got %v, want %v", next, want)
		}
	})

	t.Run("across day boundary", func(t *testing.T) {
		late := time.Date(2026, 8, 28, 23, 30, 0, 0, time.UTC)
		next, _ := NextOccurrence("08:00", late)
		want := time.Date(2026, 8, 29, 8, 0, 0, 0, time.UTC)
		if !next.Equal(want) {
			t.Errorf("got %v, want %v", next, want)
		}
		if hours := next.Sub(late).Hours(); hours != 8.5 {
			t.Errorf("hours until = %v, want 8.5", hours)
		}
	})

	t.Run("malformed slot", func(t *testing.T) {
		if _, ok := NextOccurrence("not-a-time", now); ok {
			t.Error("expected no occurrence for malformed slot")
		}
	})
}
