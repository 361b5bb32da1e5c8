package model

import "time"

// Adherence outcomes.
const (
	LogStatusTaken   = "Taken"
	LogStatusMissed  = "Missed"
	LogStatusSkipped = "Skipped"
)

type MedicineLog struct {
	ID            int       `json:"id"`
	UserID        int       `json:"user_id"`
	MedicineID    int       `json:"medicine_id"`
	ScheduledTime string    `json:"scheduled_time"` // as configured, arbitrary string
	TakenTime     time.Time `json:"taken_time"`
	Status        string    `json:"status"`
	Notes         string    `json:"notes,omitempty"`
}
