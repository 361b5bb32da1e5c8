package reminder

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"medreminder/internal/model"
	"medreminder/internal/schedule"
	"medreminder/pkg/metrics"
)

// MedicineSource supplies the active medicines for one evaluation pass.
type MedicineSource interface {
	ListAllActive(ctx context.Context) ([]model.Medicine, error)
}

// Ledger is the notification store used as the idempotency record for
// reminder emission.
type Ledger interface {
	ExistsReminder(ctx context.Context, userID, medicineID int, day, scheduledTime string) (bool, error)
	InsertBatch(ctx context.Context, notifications []*model.Notification) error
}

// OnceGuard is an optional fast-path dedup in front of the ledger
// (Redis SetNX). It may fail open; the ledger stays authoritative. A claim
// is held only for occurrences that end up in a committed batch: every
// earlier exit must Release it so the next pass inside the tolerance
// window can retry.
type OnceGuard interface {
	AcquireOnce(ctx context.Context, medicineID int, day, slot string) bool
	Release(ctx context.Context, medicineID int, day, slot string)
}

// Publisher fans emitted reminders out to delivery workers.
type Publisher interface {
	Publish(routingKey string, payload any) error
}

// Evaluator runs the periodic reminder pass: match active medicine slots
// against the current clock time and emit at most one notification per
// (medicine, slot, day).
type Evaluator struct {
	medicines MedicineSource
	ledger    Ledger
	guard     OnceGuard
	publisher Publisher
	tolerance time.Duration
	logger    *zap.Logger

	now func() time.Time // injectable for tests
}

// guardClaim is an occurrence claimed through the OnceGuard during the
// current pass; the day is the pass's evaluation day.
type guardClaim struct {
	medicineID int
	slot       string
}

func NewEvaluator(
	medicines MedicineSource,
	ledger Ledger,
	guard OnceGuard,
	publisher Publisher,
	tolerance time.Duration,
	logger *zap.Logger,
) *Evaluator {
	return &Evaluator{
		medicines: medicines,
		ledger:    ledger,
		guard:     guard,
		publisher: publisher,
		tolerance: tolerance,
		logger:    logger,
		now:       time.Now,
	}
}

// RunPass evaluates every active medicine once. Staged notifications are
// committed as a single batch at the end; a failed commit drops the whole
// batch and the next pass retries the same matches idempotently.
//
// All clock math runs in UTC so the evaluation day and stored timestamps
// cannot skew apart.
func (e *Evaluator) RunPass(ctx context.Context) error {
	start := e.now()
	now := start.UTC()
	currentTime := now.Format("15:04")
	day := now.Format("2006-01-02")

	e.logger.Info("Checking reminders",
		zap.String("current_time", currentTime),
		zap.String("day", day),
	)

	activeMedicines, err := e.medicines.ListAllActive(ctx)
	if err != nil {
		e.logger.Error("Failed to list active medicines", zap.Error(err))
		return err
	}

	var staged []*model.Notification
	var claims []guardClaim
	for _, medicine := range activeMedicines {
		explicit := len(medicine.SpecificTimes) > 0
		for _, slot := range schedule.EffectiveTimes(medicine.SpecificTimes, medicine.TimesPerDay) {
			if !schedule.Matches(currentTime, slot, e.tolerance) {
				continue
			}

			claimed := false
			if e.guard != nil {
				if !e.guard.AcquireOnce(ctx, medicine.ID, day, slot) {
					metrics.IncrementReminderDedup("redis")
					continue
				}
				claimed = true
			}

			exists, err := e.ledger.ExistsReminder(ctx, medicine.UserID, medicine.ID, day, slot)
			if err != nil {
				// Skip this occurrence; the next pass inside the
				// tolerance window re-checks it, so the claim must
				// not outlive the failed check.
				if claimed {
					e.guard.Release(ctx, medicine.ID, day, slot)
				}
				e.logger.Error("Ledger check failed",
					zap.Int("medicine_id", medicine.ID),
					zap.String("slot", slot),
					zap.Error(err),
				)
				continue
			}
			if exists {
				metrics.IncrementReminderDedup("ledger")
				continue
			}

			staged = append(staged, &model.Notification{
				UserID:     medicine.UserID,
				MedicineID: medicine.ID,
				Message: fmt.Sprintf("Time to take %s - %s at %s",
					medicine.Name, medicine.Dosage, schedule.To12Hour(slot)),
				Type:          model.NotificationReminder,
				ScheduledTime: slot,
				Day:           day,
			})
			if claimed {
				claims = append(claims, guardClaim{medicineID: medicine.ID, slot: slot})
			}

			source := "default"
			if explicit {
				source = "explicit"
			}
			metrics.IncrementReminderEmitted(source)

			e.logger.Info("Staged reminder",
				zap.Int("medicine_id", medicine.ID),
				zap.String("medicine_name", medicine.Name),
				zap.String("slot", slot),
			)
		}
	}

	if len(staged) > 0 {
		if err := e.ledger.InsertBatch(ctx, staged); err != nil {
			// The whole batch aborted; hand the claims back so the
			// retry is not refused by the guard.
			for _, c := range claims {
				e.guard.Release(ctx, c.medicineID, day, c.slot)
			}
			e.logger.Error("Failed to commit reminder batch, will retry next pass",
				zap.Int("count", len(staged)),
				zap.Error(err),
			)
			return err
		}
		e.publishCreated(staged)
	}

	metrics.ObserveEvaluatorPass(e.now().Sub(start))

	e.logger.Info("Reminder pass completed",
		zap.Int("active_medicines", len(activeMedicines)),
		zap.Int("emitted", len(staged)),
	)
	return nil
}

// publishCreated fans out reminder.created events after the batch commit.
// Publishing is best effort: delivery workers only ever see committed
// notifications, and a lost event costs a push, not the ledger row.
func (e *Evaluator) publishCreated(notifications []*model.Notification) {
	if e.publisher == nil {
		return
	}

	for _, n := range notifications {
		payload := map[string]interface{}{
			"user_id":        n.UserID,
			"medicine_id":    n.MedicineID,
			"message":        n.Message,
			"scheduled_time": n.ScheduledTime,
			"day":            n.Day,
		}
		if err := e.publisher.Publish("reminder.created", payload); err != nil {
			e.logger.Error("Failed to publish reminder.created event",
				zap.Int("medicine_id", n.MedicineID),
				zap.Error(err),
			)
			continue
		}
	}
}
