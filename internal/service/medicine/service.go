package medicine

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"medreminder/internal/model"
)

// Publisher fans domain events out to the worker.
type Publisher interface {
	Publish(routingKey string, payload any) error
}

// MedicineStore is the medicine persistence surface the service needs.
type MedicineStore interface {
	Insert(ctx context.Context, m *model.Medicine) error
	FindByID(ctx context.Context, id int) (*model.Medicine, error)
	ListByUser(ctx context.Context, userID int) ([]model.Medicine, error)
	UpdateStatus(ctx context.Context, id, userID int, status string) error
	Delete(ctx context.Context, id, userID int) error
}

// LogStore persists and aggregates adherence log entries.
type LogStore interface {
	Insert(ctx context.Context, l *model.MedicineLog) error
	ListByUser(ctx context.Context, userID, limit int) ([]model.MedicineLog, error)
	TodayCounts(ctx context.Context, medicineID int, day string) (int, int, error)
}

// NotificationStore records courtesy notifications.
type NotificationStore interface {
	Insert(ctx context.Context, n *model.Notification) error
}

type Service struct {
	medicineRepo     MedicineStore
	logRepo          LogStore
	notificationRepo NotificationStore
	publisher        Publisher
	logger           *zap.Logger

	now func() time.Time // injectable for tests
}

func NewService(
	medicineRepo MedicineStore,
	logRepo LogStore,
	notificationRepo NotificationStore,
	publisher Publisher,
	logger *zap.Logger,
) *Service {
	return &Service{
		medicineRepo:     medicineRepo,
		logRepo:          logRepo,
		notificationRepo: notificationRepo,
		publisher:        publisher,
		logger:           logger,
		now:              time.Now,
	}
}

// Add registers a medicine and emits the medicine_added notification.
func (s *Service) Add(ctx context.Context, m *model.Medicine) error {
	if m.Frequency == "" {
		m.Frequency = "daily"
	}
	if m.ScheduleType == "" {
		m.ScheduleType = "fixed"
	}
	if m.TimesPerDay <= 0 {
		m.TimesPerDay = 1
	}
	if m.Status == "" {
		m.Status = model.StatusActive
	}
	if m.Priority == "" {
		m.Priority = model.PriorityMedium
	}

	if err := s.medicineRepo.Insert(ctx, m); err != nil {
		return err
	}

	notification := &model.Notification{
		UserID:     m.UserID,
		MedicineID: m.ID,
		Message:    fmt.Sprintf("Medicine %q added successfully!", m.Name),
		Type:       model.NotificationMedicineAdded,
	}
	if err := s.notificationRepo.Insert(ctx, notification); err != nil {
		// The medicine itself is registered; a lost courtesy
		// notification is not worth failing the request.
		s.logger.Error("Failed to insert medicine_added notification",
			zap.Int("medicine_id", m.ID),
			zap.Error(err),
		)
	}

	s.publish("medicine.added", map[string]interface{}{
		"medicine_id": m.ID,
		"user_id":     m.UserID,
		"name":        m.Name,
	})
	return nil
}

// MedicineWithToday carries a medicine plus its adherence counts for the
// current UTC day.
type MedicineWithToday struct {
	model.Medicine
	TodayTaken  int `json:"today_taken"`
	TodayMissed int `json:"today_missed"`
}

func (s *Service) ListForUser(ctx context.Context, userID int) ([]MedicineWithToday, error) {
	medicines, err := s.medicineRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	day := s.now().UTC().Format("2006-01-02")
	out := make([]MedicineWithToday, 0, len(medicines))
	for _, m := range medicines {
		taken, missed, err := s.logRepo.TodayCounts(ctx, m.ID, day)
		if err != nil {
			s.logger.Error("Failed to load today's counts",
				zap.Int("medicine_id", m.ID),
				zap.Error(err),
			)
		}
		out = append(out, MedicineWithToday{
			Medicine:    m,
			TodayTaken:  taken,
			TodayMissed: missed,
		})
	}
	return out, nil
}

// LogIntake records an adherence outcome and emits the medicine_taken
// notification.
func (s *Service) LogIntake(ctx context.Context, l *model.MedicineLog) error {
	if l.Status == "" {
		l.Status = model.LogStatusTaken
	}

	if err := s.logRepo.Insert(ctx, l); err != nil {
		return err
	}

	// The medicine may have been deleted between request and write; a
	// missing reference only suppresses the courtesy notification.
	m, err := s.medicineRepo.FindByID(ctx, l.MedicineID)
	if err != nil {
		s.logger.Warn("Medicine not found while logging intake",
			zap.Int("medicine_id", l.MedicineID),
		)
		return nil
	}

	notification := &model.Notification{
		UserID:     l.UserID,
		MedicineID: m.ID,
		Message:    fmt.Sprintf("Medicine %q marked as %s", m.Name, l.Status),
		Type:       model.NotificationMedicineTaken,
	}
	if err := s.notificationRepo.Insert(ctx, notification); err != nil {
		s.logger.Error("Failed to insert medicine_taken notification",
			zap.Int("medicine_id", m.ID),
			zap.Error(err),
		)
	}

	s.publish("medicine.taken", map[string]interface{}{
		"medicine_id": m.ID,
		"user_id":     l.UserID,
		"status":      l.Status,
	})
	return nil
}

// HistoryEntry is one adherence log row joined with its medicine.
type HistoryEntry struct {
	model.MedicineLog
	MedicineName string `json:"medicine_name"`
	Dosage       string `json:"dosage"`
}

func (s *Service) History(ctx context.Context, userID, limit int) ([]HistoryEntry, error) {
	logs, err := s.logRepo.ListByUser(ctx, userID, limit)
	if err != nil {
		return nil, err
	}

	out := make([]HistoryEntry, 0, len(logs))
	for _, l := range logs {
		entry := HistoryEntry{MedicineLog: l, MedicineName: "Unknown"}
		if m, err := s.medicineRepo.FindByID(ctx, l.MedicineID); err == nil {
			entry.MedicineName = m.Name
			entry.Dosage = m.Dosage
		}
		out = append(out, entry)
	}
	return out, nil
}

func (s *Service) Deactivate(ctx context.Context, id, userID int) error {
	return s.medicineRepo.UpdateStatus(ctx, id, userID, model.StatusInactive)
}

func (s *Service) Delete(ctx context.Context, id, userID int) error {
	return s.medicineRepo.Delete(ctx, id, userID)
}

// publish emits a domain event, best effort. A lost event never fails the
// request that produced it.
func (s *Service) publish(routingKey string, payload any) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(routingKey, payload); err != nil {
		s.logger.Error("Failed to publish event",
			zap.String("routing_key", routingKey),
			zap.Error(err),
		)
	}
}
