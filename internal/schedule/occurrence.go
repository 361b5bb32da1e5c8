package schedule

import "time"

// NextOccurrence computes the next future instant of a dose slot relative
// to now: today if the slot has not yet passed, otherwise tomorrow. The
// result carries now's location. Returns false for unparseable slots.
func NextOccurrence(slot string, now time.Time) (time.Time, bool) {
	secs, ok := secondsOfDay(slot)
	if !ok {
		return time.Time{}, false
	}

	hour := secs / 3600
	minute := (secs % 3600) / 60

	next := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, now.Location())
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}

	return next, true
}
