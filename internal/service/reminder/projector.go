package reminder

import (
	"context"
	"sort"
	"time"

	"go.uber.org/zap"

	"medreminder/internal/model"
	"medreminder/internal/schedule"
)

// UserMedicineSource supplies one user's active medicines for projection.
type UserMedicineSource interface {
	ListActiveByUser(ctx context.Context, userID int) ([]model.Medicine, error)
}

// Upcoming is one projected dose occurrence within the next 24 hours.
// Display-only; the projector never writes anything.
type Upcoming struct {
	MedicineID    int       `json:"medicine_id"`
	MedicineName  string    `json:"medicine_name"`
	Dosage        string    `json:"dosage"`
	Instructions  string    `json:"instructions,omitempty"`
	Priority      string    `json:"priority"`
	ScheduledTime string    `json:"scheduled_time"`     // "HH:MM"
	DisplayTime   string    `json:"display_time"`       // 12-hour rendering
	DueAt         time.Time `json:"due_at"`
	HoursUntil    float64   `json:"hours_until"`
	DueTomorrow   bool      `json:"due_tomorrow"`
	Urgent        bool      `json:"urgent"`
}

// Projector derives the upcoming-reminder view for a single user.
type Projector struct {
	medicines UserMedicineSource
	logger    *zap.Logger

	now func() time.Time // injectable for tests
}

func NewProjector(medicines UserMedicineSource, logger *zap.Logger) *Projector {
	return &Projector{
		medicines: medicines,
		logger:    logger,
		now:       time.Now,
	}
}

// Upcoming expands each active medicine's schedule into its next occurrence
// per slot within a rolling 24-hour horizon, ranked by priority and urgency.
func (p *Projector) Upcoming(ctx context.Context, userID int) ([]Upcoming, error) {
	now := p.now().UTC()

	activeMedicines, err := p.medicines.ListActiveByUser(ctx, userID)
	if err != nil {
		p.logger.Error("Failed to list active medicines for projection",
			zap.Int("user_id", userID),
			zap.Error(err),
		)
		return nil, err
	}

	reminders := make([]Upcoming, 0)
	for _, medicine := range activeMedicines {
		for _, slot := range schedule.EffectiveTimes(medicine.SpecificTimes, medicine.TimesPerDay) {
			dueAt, ok := schedule.NextOccurrence(slot, now)
			if !ok {
				continue
			}

			until := dueAt.Sub(now)
			if until > 24*time.Hour {
				continue
			}

			urgent := until <= time.Hour ||
				medicine.Priority == model.PriorityHigh ||
				medicine.Priority == model.PriorityCritical

			reminders = append(reminders, Upcoming{
				MedicineID:    medicine.ID,
				MedicineName:  medicine.Name,
				Dosage:        medicine.Dosage,
				Instructions:  medicine.Instructions,
				Priority:      medicine.Priority,
				ScheduledTime: slot,
				DisplayTime:   schedule.To12Hour(slot),
				DueAt:         dueAt,
				HoursUntil:    until.Hours(),
				DueTomorrow:   dueAt.YearDay() != now.YearDay() || dueAt.Year() != now.Year(),
				Urgent:        urgent,
			})
		}
	}

	sort.SliceStable(reminders, func(i, j int) bool {
		ri, rj := model.PriorityRank(reminders[i].Priority), model.PriorityRank(reminders[j].Priority)
		if ri != rj {
			return ri < rj
		}
		if reminders[i].Urgent != reminders[j].Urgent {
			return reminders[i].Urgent
		}
		return reminders[i].DueAt.Before(reminders[j].DueAt)
	})

	return reminders, nil
}
