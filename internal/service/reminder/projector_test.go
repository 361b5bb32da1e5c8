package reminder

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"

	"medreminder/internal/model"
)

type testUserMedicineSource struct {
	medicines []model.Medicine
}

func (s *testUserMedicineSource) ListActiveByUser(ctx context.Context, userID int) ([]model.Medicine, error) {
	var out []model.Medicine
	for _, m := range s.medicines {
		if m.UserID == userID {
			out = append(out, m)
		}
	}
	return out, nil
}

func newTestProjector(medicines []model.Medicine, at time.Time) *Projector {
	p := NewProjector(&testUserMedicineSource{medicines: medicines}, zap.NewNop())
	p.now = func() time.Time { return at }
	return p
}

func TestProjector_AcrossDayBoundary(t *testing.T) {
	medicines := []model.Medicine{{
		ID:            1,
		UserID:        10,
		Name:          "Aspirin",
		Dosage:        "100mg",
		Priority:      model.PriorityMedium,
		SpecificTimes: []string{"08:00"},
	}}

	// 23:30: the 08:00 dose already passed today, so it is due tomorrow.
	at := time.Date(2026, 8, 28, 23, 30, 0, 0, time.UTC)
	p := newTestProjector(medicines, at)

	upcoming, err := p.Upcoming(context.Background(), 10)
	if err != nil {
		t.Fatalf("Upcoming returned error: %v", err)
	}
	if len(upcoming) != 1 {
		t.Fatalf("expected 1 occurrence, got %d", len(upcoming))
	}

	r := upcoming[0]
	if !r.DueTomorrow {
		t.Error("expected occurrence to be due tomorrow")
	}
	if r.HoursUntil != 8.5 {
		t.Errorf("hours_until = %v, want 8.5", r.HoursUntil)
	}
	if r.DisplayTime != "8:00 AM" {
		t.Errorf("display time = %q, want 8:00 AM", r.DisplayTime)
	}
	if r.Urgent {
		t.Error("medium priority dose 8.5h out must not be urgent")
	}
}

func TestProjector_UrgencyFlags(t *testing.T) {
	at := time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		priority string
		slot     string
		urgent   bool
	}{
		{"critical priority is always urgent", model.PriorityCritical, "20:00", true},
		{"high priority is always urgent", model.PriorityHigh, "20:00", true},
		{"medium due within the hour", model.PriorityMedium, "10:30", true},
		{"low and hours away", model.PriorityLow, "20:00", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newTestProjector([]model.Medicine{{
				ID:            1,
				UserID:        10,
				Name:          "Med",
				Priority:      tt.priority,
				SpecificTimes: []string{tt.slot},
			}}, at)

			upcoming, err := p.Upcoming(context.Background(), 10)
			if err != nil {
				t.Fatalf("Upcoming returned error: %v", err)
			}
			if len(upcoming) != 1 {
				t.Fatalf("expected 1 occurrence, got %d", len(upcoming))
			}
			if upcoming[0].Urgent != tt.urgent {
				t.Errorf("urgent = %v, want %v", upcoming[0].Urgent, tt.urgent)
			}
		})
	}
}

func TestProjector_SortsByPriorityThenUrgency(t *testing.T) {
	at := time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC)

	medicines := []model.Medicine{
		{ID: 1, UserID: 10, Name: "LowSoon", Priority: model.PriorityLow, SpecificTimes: []string{"10:30"}},
		{ID: 2, UserID: 10, Name: "Critical", Priority: model.PriorityCritical, SpecificTimes: []string{"20:00"}},
		{ID: 3, UserID: 10, Name: "MediumLater", Priority: model.PriorityMedium, SpecificTimes: []string{"18:00"}},
		{ID: 4, UserID: 10, Name: "MediumSoon", Priority: model.PriorityMedium, SpecificTimes: []string{"10:45"}},
	}
	p := newTestProjector(medicines, at)

	upcoming, err := p.Upcoming(context.Background(), 10)
	if err != nil {
		t.Fatalf("Upcoming returned error: %v", err)
	}

	var order []string
	for _, r := range upcoming {
		order = append(order, r.MedicineName)
	}

	want := []string{"Critical", "MediumSoon", "MediumLater", "LowSoon"}
	if len(order) != len(want) {
		t.Fatalf("got %d occurrences, want %d", len(order), len(want))
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("order = %v, want %v", order, want)
		}
	}
}

func TestProjector_DefaultScheduleExpansion(t *testing.T) {
	at := time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC)

	p := newTestProjector([]model.Medicine{{
		ID:          1,
		UserID:      10,
		Name:        "Metformin",
		Priority:    model.PriorityMedium,
		TimesPerDay: 2, // 08:00 and 20:00
	}}, at)

	upcoming, err := p.Upcoming(context.Background(), 10)
	if err != nil {
		t.Fatalf("Upcoming returned error: %v", err)
	}
	if len(upcoming) != 2 {
		t.Fatalf("expected 2 occurrences, got %d", len(upcoming))
	}

	// 20:00 is still today, 08:00 rolled to tomorrow.
	seen := map[string]bool{}
	for _, r := range upcoming {
		seen[r.ScheduledTime] = r.DueTomorrow
	}
	if tomorrow, ok := seen["08:00"]; !ok || !tomorrow {
		t.Errorf("08:00 slot should be due tomorrow, got %v", seen)
	}
	if tomorrow, ok := seen["20:00"]; !ok || tomorrow {
		t.Errorf("20:00 slot should be due today, got %v", seen)
	}
}

func TestProjector_IgnoresMalformedSlots(t *testing.T) {
	at := time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC)

	p := newTestProjector([]model.Medicine{{
		ID:            1,
		UserID:        10,
		Name:          "Med",
		Priority:      model.PriorityMedium,
		SpecificTimes: []string{"nonsense", "12:00"},
	}}, at)

	upcoming, err := p.Upcoming(context.Background(), 10)
	if err != nil {
		t.Fatalf("Upcoming returned error: %v", err)
	}
	if len(upcoming) != 1 || upcoming[0].ScheduledTime != "12:00" {
		t.Fatalf("expected only the valid slot, got %+v", upcoming)
	}
}
