package model

import "time"

// Medicine status values.
const (
	StatusActive   = "Active"
	StatusInactive = "Inactive"
)

// Medicine priority levels, ordered from most to least urgent.
const (
	PriorityCritical = "Critical"
	PriorityHigh     = "High"
	PriorityMedium   = "Medium"
	PriorityLow      = "Low"
)

type Medicine struct {
	ID            int       `json:"id"`
	UserID        int       `json:"user_id"`
	Name          string    `json:"medicine_name"`
	Dosage        string    `json:"dosage"`
	Frequency     string    `json:"frequency"`     // daily, weekly, monthly (advisory)
	ScheduleType  string    `json:"schedule_type"` // fixed, flexible
	TimesPerDay   int       `json:"times_per_day"`
	SpecificTimes []string  `json:"specific_times,omitempty"` // "HH:MM", 24-hour
	StartDate     string    `json:"start_date"`
	EndDate       string    `json:"end_date,omitempty"`
	Instructions  string    `json:"instructions,omitempty"`
	Status        string    `json:"status"`
	Priority      string    `json:"priority"`
	CreatedAt     time.Time `json:"created_at"`
}

// PriorityRank maps a priority level to its sort order. Critical sorts
// first; unknown levels sort last.
func PriorityRank(priority string) int {
	switch priority {
	case PriorityCritical:
		return 0
	case PriorityHigh:
		return 1
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 3
	default:
		return 4
	}
}
