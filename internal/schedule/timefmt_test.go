package schedule

import (
	"fmt"
	"testing"
)

func TestTo12Hour(t *testing.T) {
	tests := []struct {
		in       string
		expected string
	}{
		{"00:00", "12:00 AM"},
		{"00:30", "12:30 AM"},
		{"01:05", "1:05 AM"},
		{"09:00", "9:00 AM"},
		{"11:59", "11:59 AM"},
		{"12:00", "12:00 PM"},
		{"12:01", "12:01 PM"},
		{"13:15", "1:15 PM"},
		{"20:00", "8:00 PM"},
		{"23:59", "11:59 PM"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := To12Hour(tt.in); got != tt.expected {
				t.Errorf("To12Hour(%q) = %q, want %q", tt.in, got, tt.expected)
			}
		})
	}
}

func TestTo12Hour_MalformedReturnsInput(t *testing.T) {
	for _, in := range []string{"", "nonsense", "0800", "ab:cd", "8:xx", ":30"} {
		if got := To12Hour(in); got != in {
			t.Errorf("To12Hour(%q) = %q, want input unchanged", in, got)
		}
	}
}

func TestTo24Hour(t *testing.T) {
	tests := []struct {
		in       string
		expected string
	}{
		{"12:00 AM", "00:00"},
		{"1:05 AM", "01:05"},
		{"11:59 AM", "11:59"},
		{"12:00 PM", "12:00"},
		{"1:15 PM", "13:15"},
		{"8:00 pm", "20:00"},
		{"11:59 PM", "23:59"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := To24Hour(tt.in); got != tt.expected {
				t.Errorf("To24Hour(%q) = %q, want %q", tt.in, got, tt.expected)
			}
		})
	}
}

func TestTo24Hour_MalformedReturnsInput(t *testing.T) {
	for _, in := range []string{"", "8:00", "8:00 XX", "nonsense AM", "8:00 AM extra"} {
		if got := To24Hour(in); got != in {
			t.Errorf("To24Hour(%q) = %q, want input unchanged", in, got)
		}
	}
}

func TestClockRoundTrip(t *testing.T) {
	// to24Hour(to12Hour(t)) == t for every valid minute of the day
	for hour := 0; hour < 24; hour++ {
		for minute := 0; minute < 60; minute++ {
			in := fmt.Sprintf("%02d:%02d", hour, minute)
			if got := To24Hour(To12Hour(in)); got != in {
				t.Fatalf("round trip broke for %q: got %q", in, got)
			}
		}
	}
}
