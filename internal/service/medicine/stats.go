package medicine

import (
	"context"
	"time"

	"medreminder/internal/model"
)

// MedicineCounter counts medicines, fleet-wide or per user.
type MedicineCounter interface {
	CountByUser(ctx context.Context, userID int, activeOnly bool) (int, error)
	CountAll(ctx context.Context, activeOnly bool) (int, error)
}

// AdherenceCounter counts log entries by outcome for one UTC day.
type AdherenceCounter interface {
	CountTodayByStatus(ctx context.Context, userID int, day, status string) (int, error)
}

// UserCounter counts registered users.
type UserCounter interface {
	CountAll(ctx context.Context) (int, error)
}

// StatsService aggregates dashboard counters. Admins see fleet-wide
// numbers, everyone else their own.
type StatsService struct {
	medicineRepo MedicineCounter
	logRepo      AdherenceCounter
	userRepo     UserCounter

	now func() time.Time // injectable for tests
}

func NewStatsService(
	medicineRepo MedicineCounter,
	logRepo AdherenceCounter,
	userRepo UserCounter,
) *StatsService {
	return &StatsService{
		medicineRepo: medicineRepo,
		logRepo:      logRepo,
		userRepo:     userRepo,
		now:          time.Now,
	}
}

func (s *StatsService) Stats(ctx context.Context, userID int, role string) (map[string]int, error) {
	day := s.now().UTC().Format("2006-01-02")

	if role == "admin" {
		total, err := s.medicineRepo.CountAll(ctx, false)
		if err != nil {
			return nil, err
		}
		active, err := s.medicineRepo.CountAll(ctx, true)
		if err != nil {
			return nil, err
		}
		users, err := s.userRepo.CountAll(ctx)
		if err != nil {
			return nil, err
		}
		taken, err := s.logRepo.CountTodayByStatus(ctx, 0, day, model.LogStatusTaken)
		if err != nil {
			return nil, err
		}
		missed, err := s.logRepo.CountTodayByStatus(ctx, 0, day, model.LogStatusMissed)
		if err != nil {
			return nil, err
		}
		return map[string]int{
			"total_medicines":  total,
			"active_medicines": active,
			"total_users":      users,
			"today_taken":      taken,
			"today_missed":     missed,
		}, nil
	}

	mine, err := s.medicineRepo.CountByUser(ctx, userID, false)
	if err != nil {
		return nil, err
	}
	active, err := s.medicineRepo.CountByUser(ctx, userID, true)
	if err != nil {
		return nil, err
	}
	taken, err := s.logRepo.CountTodayByStatus(ctx, userID, day, model.LogStatusTaken)
	if err != nil {
		return nil, err
	}
	missed, err := s.logRepo.CountTodayByStatus(ctx, userID, day, model.LogStatusMissed)
	if err != nil {
		return nil, err
	}
	return map[string]int{
		"my_medicines":     mine,
		"active_medicines": active,
		"today_taken":      taken,
		"today_missed":     missed,
	}, nil
}
