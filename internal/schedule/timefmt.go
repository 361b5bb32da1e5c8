// Package schedule holds the pure time logic behind medication reminders:
// clock-string conversion, default dose slots, tolerance matching and
// occurrence projection. Functions here never fail hard; malformed input
// falls through unchanged or reports no match.
package schedule

import (
	"fmt"
	"strconv"
	"strings"
)

// To12Hour converts "HH:MM" to "H:MM AM|PM". Hour 0 maps to 12 AM, hour 12
// to 12 PM; minutes are preserved verbatim. Malformed input is returned
// unchanged.
func To12Hour(time24 string) string {
	hour, minutes, ok := splitClock(time24)
	if !ok {
		return time24
	}

	ampm := "AM"
	if hour >= 12 {
		ampm = "PM"
	}

	hour12 := hour % 12
	if hour12 == 0 {
		hour12 = 12
	}

	return fmt.Sprintf("%d:%s %s", hour12, minutes, ampm)
}

// To24Hour converts "H:MM AM|PM" back to "HH:MM". PM hours other than 12
// add 12; 12 AM maps to hour 0. Malformed input is returned unchanged.
func To24Hour(time12 string) string {
	fields := strings.Fields(time12)
	if len(fields) != 2 {
		return time12
	}

	ampm := strings.ToUpper(fields[1])
	if ampm != "AM" && ampm != "PM" {
		return time12
	}

	hour, minutes, ok := splitClock(fields[0])
	if !ok {
		return time12
	}

	if ampm == "PM" && hour != 12 {
		hour += 12
	}
	if ampm == "AM" && hour == 12 {
		hour = 0
	}

	return fmt.Sprintf("%02d:%s", hour, minutes)
}

// splitClock splits "H:MM" into an hour and the verbatim minutes part.
// Both parts must be numeric.
func splitClock(s string) (int, string, bool) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return 0, "", false
	}

	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, "", false
	}
	if _, err := strconv.Atoi(parts[1]); err != nil {
		return 0, "", false
	}

	return hour, parts[1], true
}
