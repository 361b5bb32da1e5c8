package mqhandler

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	mqcontracts "medreminder/contracts/mq"
	"medreminder/internal/service/worker"
	"medreminder/pkg/metrics"
)

type ReminderCreatedHandler struct {
	delivery *worker.DeliveryService
	logger   *zap.Logger
}

func NewReminderCreatedHandler(delivery *worker.DeliveryService, logger *zap.Logger) *ReminderCreatedHandler {
	return &ReminderCreatedHandler{
		delivery: delivery,
		logger:   logger,
	}
}

func (h *ReminderCreatedHandler) Handle(ctx context.Context, raw json.RawMessage) error {
	start := time.Now()

	var p mqcontracts.ReminderCreatedPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		h.logger.Error("Failed to unmarshal ReminderCreatedPayload", zap.Error(err))
		return err
	}

	h.logger.Info("Handling reminder.created event",
		zap.Int("user_id", p.UserID),
		zap.Int("medicine_id", p.MedicineID),
		zap.String("scheduled_time", p.ScheduledTime),
	)

	if err := h.delivery.Deliver(ctx, p.UserID, p.MedicineID, p.Message); err != nil {
		h.logger.Error("Failed to deliver reminder", zap.Error(err))
		return err
	}

	metrics.RecordMQConsumeLatency(mqcontracts.ReminderCreatedKey, "reminder.created.q", time.Since(start))
	return nil
}
