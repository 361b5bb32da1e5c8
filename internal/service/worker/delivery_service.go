package worker

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// DeliveryService pushes committed reminder notifications to the user's
// devices. The concrete channels are stubs; this is the extension point for
// FCM/APNS/SMS integrations.
type DeliveryService struct {
	logger *zap.Logger
}

func NewDeliveryService(logger *zap.Logger) *DeliveryService {
	return &DeliveryService{
		logger: logger,
	}
}

// Deliver pushes one reminder to the user. Delivery failures are retried by
// the MQ redelivery loop, never by re-creating the notification.
func (s *DeliveryService) Deliver(ctx context.Context, userID, medicineID int, message string) error {
	s.logger.Info("Delivering reminder",
		zap.Int("user_id", userID),
		zap.Int("medicine_id", medicineID),
		zap.String("message", message),
	)

	return s.sendPush(ctx, userID, message)
}

func (s *DeliveryService) sendPush(ctx context.Context, userID int, message string) error {
	// TODO: Implement push notification (FCM, APNS, etc.)
	s.logger.Info("Sending push notification",
		zap.Int("user_id", userID),
		zap.String("message", message),
	)
	// Simulate push sending
	time.Sleep(100 * time.Millisecond)
	return nil
}
