package model

import "time"

// Notification types.
const (
	NotificationReminder      = "reminder"
	NotificationMedicineAdded = "medicine_added"
	NotificationMedicineTaken = "medicine_taken"
)

type Notification struct {
	ID         int       `json:"id"`
	UserID     int       `json:"user_id"`
	MedicineID int       `json:"medicine_id,omitempty"` // 0 when not tied to a medicine
	Message    string    `json:"message"`
	Type       string    `json:"type"`
	// Dedup key fields, set only for type reminder: the scheduled slot
	// ("HH:MM") and the evaluation day ("2006-01-02", UTC).
	ScheduledTime string    `json:"scheduled_time,omitempty"`
	Day           string    `json:"day,omitempty"`
	// MedicineName is display only, filled by list queries joining the
	// medicine row. Never persisted on the notification itself.
	MedicineName string    `json:"medicine_name,omitempty"`
	IsRead       bool      `json:"is_read"`
	CreatedAt    time.Time `json:"created_at"`
}
