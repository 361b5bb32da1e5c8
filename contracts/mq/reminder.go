// Package mq defines the event payloads exchanged over the events topic
// exchange.
package mq

// Routing keys.
const (
	ReminderCreatedKey = "reminder.created"
	MedicineAddedKey   = "medicine.added"
	MedicineTakenKey   = "medicine.taken"
)

// ReminderCreatedPayload is emitted by the scheduler after a reminder
// notification batch commits.
type ReminderCreatedPayload struct {
	UserID        int    `json:"user_id"`
	MedicineID    int    `json:"medicine_id"`
	Message       string `json:"message"`
	ScheduledTime string `json:"scheduled_time"`
	Day           string `json:"day"`
}

// MedicineAddedPayload is emitted when a medicine is registered.
type MedicineAddedPayload struct {
	MedicineID int    `json:"medicine_id"`
	UserID     int    `json:"user_id"`
	Name       string `json:"name"`
}

// MedicineTakenPayload is emitted when an adherence outcome is logged.
type MedicineTakenPayload struct {
	MedicineID int    `json:"medicine_id"`
	UserID     int    `json:"user_id"`
	Status     string `json:"status"`
}
