package medicine

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"medreminder/internal/model"
)

// -------------------------
// Test doubles (in-memory)
// -------------------------

type fakeMedicineStore struct {
	medicines map[int]*model.Medicine
	nextID    int
}

func newFakeMedicineStore() *fakeMedicineStore {
	return &fakeMedicineStore{medicines: map[int]*model.Medicine{}, nextID: 1}
}

func (f *fakeMedicineStore) Insert(ctx context.Context, m *model.Medicine) error {
	m.ID = f.nextID
	f.nextID++
	stored := *m
	f.medicines[m.ID] = &stored
	return nil
}

func (f *fakeMedicineStore) FindByID(ctx context.Context, id int) (*model.Medicine, error) {
	m, ok := f.medicines[id]
	if !ok {
		return nil, errors.New("no rows")
	}
	return m, nil
}

func (f *fakeMedicineStore) ListByUser(ctx context.Context, userID int) ([]model.Medicine, error) {
	var out []model.Medicine
	for _, m := range f.medicines {
		if m.UserID == userID {
			out = append(out, *m)
		}
	}
	return out, nil
}

func (f *fakeMedicineStore) UpdateStatus(ctx context.Context, id, userID int, status string) error {
	m, ok := f.medicines[id]
	if !ok || m.UserID != userID {
		return errors.New("no rows")
	}
	m.Status = status
	return nil
}

func (f *fakeMedicineStore) Delete(ctx context.Context, id, userID int) error {
	delete(f.medicines, id)
	return nil
}

type fakeLogStore struct {
	logs      []*model.MedicineLog
	daysAsked []string
}

func (f *fakeLogStore) Insert(ctx context.Context, l *model.MedicineLog) error {
	l.ID = len(f.logs) + 1
	f.logs = append(f.logs, l)
	return nil
}

func (f *fakeLogStore) ListByUser(ctx context.Context, userID, limit int) ([]model.MedicineLog, error) {
	var out []model.MedicineLog
	for _, l := range f.logs {
		if l.UserID == userID {
			out = append(out, *l)
		}
	}
	return out, nil
}

func (f *fakeLogStore) TodayCounts(ctx context.Context, medicineID int, day string) (int, int, error) {
	f.daysAsked = append(f.daysAsked, day)
	return 0, 0, nil
}

type fakeNotificationStore struct {
	inserted []*model.Notification
}

func (f *fakeNotificationStore) Insert(ctx context.Context, n *model.Notification) error {
	f.inserted = append(f.inserted, n)
	return nil
}

type fakePublisher struct {
	events []string
}

func (p *fakePublisher) Publish(routingKey string, payload any) error {
	p.events = append(p.events, routingKey)
	return nil
}

func newTestService(medicines *fakeMedicineStore, logs *fakeLogStore, notifications *fakeNotificationStore, pub Publisher) *Service {
	return NewService(medicines, logs, notifications, pub, zap.NewNop())
}

// -------------------------
// Tests
// -------------------------

func TestService_AddAppliesDefaults(t *testing.T) {
	medicines := newFakeMedicineStore()
	notifications := &fakeNotificationStore{}
	pub := &fakePublisher{}
	s := newTestService(medicines, &fakeLogStore{}, notifications, pub)

	m := &model.Medicine{
		UserID:    10,
		Name:      "Aspirin",
		Dosage:    "100mg",
		StartDate: "2026-08-28",
	}
	if err := s.Add(context.Background(), m); err != nil {
		t.Fatalf("Add returned error: %v", err)
	}

	if m.Frequency != "daily" || m.ScheduleType != "fixed" || m.TimesPerDay != 1 {
		t.Errorf("schedule defaults not applied: %q %q %d", m.Frequency, m.ScheduleType, m.TimesPerDay)
	}
	if m.Status != model.StatusActive || m.Priority != model.PriorityMedium {
		t.Errorf("status/priority defaults not applied: %q %q", m.Status, m.Priority)
	}

	if len(notifications.inserted) != 1 || notifications.inserted[0].Type != model.NotificationMedicineAdded {
		t.Errorf("expected one medicine_added notification, got %+v", notifications.inserted)
	}
	if len(pub.events) != 1 || pub.events[0] != "medicine.added" {
		t.Errorf("expected one medicine.added event, got %v", pub.events)
	}
}

func TestService_ListForUserUsesInjectedClock(t *testing.T) {
	medicines := newFakeMedicineStore()
	logs := &fakeLogStore{}
	s := newTestService(medicines, logs, &fakeNotificationStore{}, nil)
	s.now = func() time.Time { return time.Date(2026, 8, 28, 23, 30, 0, 0, time.UTC) }

	m := &model.Medicine{UserID: 10, Name: "Aspirin", Dosage: "100mg", Status: model.StatusActive}
	if err := medicines.Insert(context.Background(), m); err != nil {
		t.Fatalf("seed insert failed: %v", err)
	}

	if _, err := s.ListForUser(context.Background(), 10); err != nil {
		t.Fatalf("ListForUser returned error: %v", err)
	}
	if len(logs.daysAsked) != 1 || logs.daysAsked[0] != "2026-08-28" {
		t.Errorf("today counts queried for %v, want [2026-08-28]", logs.daysAsked)
	}
}

func TestService_LogIntakeEmitsNotification(t *testing.T) {
	medicines := newFakeMedicineStore()
	notifications := &fakeNotificationStore{}
	pub := &fakePublisher{}
	s := newTestService(medicines, &fakeLogStore{}, notifications, pub)

	m := &model.Medicine{UserID: 10, Name: "Aspirin", Dosage: "100mg", Status: model.StatusActive}
	if err := medicines.Insert(context.Background(), m); err != nil {
		t.Fatalf("seed insert failed: %v", err)
	}

	l := &model.MedicineLog{UserID: 10, MedicineID: m.ID, ScheduledTime: "08:00"}
	if err := s.LogIntake(context.Background(), l); err != nil {
		t.Fatalf("LogIntake returned error: %v", err)
	}

	if l.Status != model.LogStatusTaken {
		t.Errorf("status default = %q, want Taken", l.Status)
	}
	if len(notifications.inserted) != 1 || notifications.inserted[0].Type != model.NotificationMedicineTaken {
		t.Errorf("expected one medicine_taken notification, got %+v", notifications.inserted)
	}
	if len(pub.events) != 1 || pub.events[0] != "medicine.taken" {
		t.Errorf("expected one medicine.taken event, got %v", pub.events)
	}
}

func TestService_LogIntakeToleratesVanishedMedicine(t *testing.T) {
	logs := &fakeLogStore{}
	notifications := &fakeNotificationStore{}
	s := newTestService(newFakeMedicineStore(), logs, notifications, nil)

	l := &model.MedicineLog{UserID: 10, MedicineID: 99, ScheduledTime: "08:00"}
	if err := s.LogIntake(context.Background(), l); err != nil {
		t.Fatalf("LogIntake must not fail when the medicine is gone: %v", err)
	}
	if len(logs.logs) != 1 {
		t.Fatalf("log entry must still be recorded, got %d", len(logs.logs))
	}
	if len(notifications.inserted) != 0 {
		t.Errorf("no notification expected for a vanished medicine, got %d", len(notifications.inserted))
	}
}
