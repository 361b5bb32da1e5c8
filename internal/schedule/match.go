package schedule

import (
	"strconv"
	"strings"
	"time"
)

// Matches reports whether current coincides with scheduled within the
// tolerance, treating both as times-of-day on the same date. Unparseable
// input never matches.
//
// The arithmetic does not wrap around midnight: 23:59 and 00:00 are
// maximally distant, not one minute apart.
func Matches(current, scheduled string, tolerance time.Duration) bool {
	cur, ok := secondsOfDay(current)
	if !ok {
		return false
	}
	sched, ok := secondsOfDay(scheduled)
	if !ok {
		return false
	}

	diff := cur - sched
	if diff < 0 {
		diff = -diff
	}

	return time.Duration(diff)*time.Second <= tolerance
}

// secondsOfDay parses "HH:MM" into seconds since midnight.
func secondsOfDay(s string) (int, bool) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return 0, false
	}

	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, false
	}
	minute, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, false
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, false
	}

	return hour*3600 + minute*60, true
}
