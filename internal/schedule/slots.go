package schedule

// DefaultTimes maps a times-per-day count to the canonical dose slots.
// Unrecognized counts (including zero and negative) fall back to the
// single-dose default; callers must not treat that as an error.
func DefaultTimes(timesPerDay int) []string {
	switch timesPerDay {
	case 1:
		return []string{"09:00"}
	case 2:
		return []string{"08:00", "20:00"}
	case 3:
		return []string{"08:00", "14:00", "20:00"}
	case 4:
		return []string{"08:00", "12:00", "16:00", "20:00"}
	default:
		return []string{"09:00"}
	}
}

// EffectiveTimes resolves a medicine's concrete dose slots. An explicit
// non-empty time list wins entirely; otherwise the slots derive from the
// per-day count. There is no merging.
func EffectiveTimes(explicit []string, timesPerDay int) []string {
	if len(explicit) > 0 {
		return explicit
	}
	return DefaultTimes(timesPerDay)
}
