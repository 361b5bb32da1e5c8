package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"medreminder/internal/model"
)

type MedicineLogRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewMedicineLogRepository(db *pgxpool.Pool, logger *zap.Logger) *MedicineLogRepository {
	return &MedicineLogRepository{
		db:     db,
		logger: logger,
	}
}

func (r *MedicineLogRepository) Insert(ctx context.Context, l *model.MedicineLog) error {
	query := `
        INSERT INTO medicine_logs (user_id, medicine_id, scheduled_time, taken_time, status, notes)
        VALUES ($1, $2, $3, NOW(), $4, $5)
        RETURNING id, taken_time
    `
	err := r.db.QueryRow(ctx, query,
		l.UserID,
		l.MedicineID,
		l.ScheduledTime,
		l.Status,
		l.Notes,
	).Scan(&l.ID, &l.TakenTime)

	if err != nil {
		r.logger.Error("Failed to insert medicine log", zap.Error(err))
		return err
	}

	r.logger.Info("Medicine log inserted",
		zap.Int("id", l.ID),
		zap.Int("medicine_id", l.MedicineID),
		zap.String("status", l.Status),
	)
	return nil
}

func (r *MedicineLogRepository) ListByUser(ctx context.Context, userID, limit int) ([]model.MedicineLog, error) {
	query := `
        SELECT id, user_id, medicine_id, scheduled_time, taken_time, status, COALESCE(notes, '')
        FROM medicine_logs
        WHERE user_id = $1
        ORDER BY taken_time DESC
        LIMIT $2
    `
	rows, err := r.db.Query(ctx, query, userID, limit)
	if err != nil {
		r.logger.Error("Failed to list medicine logs", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var logs []model.MedicineLog
	for rows.Next() {
		var l model.MedicineLog
		if err := rows.Scan(
			&l.ID,
			&l.UserID,
			&l.MedicineID,
			&l.ScheduledTime,
			&l.TakenTime,
			&l.Status,
			&l.Notes,
		); err != nil {
			r.logger.Error("Failed to scan medicine log", zap.Error(err))
			return nil, err
		}
		logs = append(logs, l)
	}
	return logs, rows.Err()
}

// CountTodayByStatus counts a user's log entries with the given outcome for
// the given UTC day. userID 0 counts across all users.
func (r *MedicineLogRepository) CountTodayByStatus(ctx context.Context, userID int, day, status string) (int, error) {
	var count int
	var err error
	if userID == 0 {
		query := `
            SELECT COUNT(*) FROM medicine_logs
            WHERE DATE(taken_time) = $1 AND status = $2
        `
		err = r.db.QueryRow(ctx, query, day, status).Scan(&count)
	} else {
		query := `
            SELECT COUNT(*) FROM medicine_logs
            WHERE user_id = $1 AND DATE(taken_time) = $2 AND status = $3
        `
		err = r.db.QueryRow(ctx, query, userID, day, status).Scan(&count)
	}
	return count, err
}

// TodayCounts returns the taken and missed counts for one medicine on the
// given UTC day.
func (r *MedicineLogRepository) TodayCounts(ctx context.Context, medicineID int, day string) (taken, missed int, err error) {
	query := `
        SELECT
            COUNT(*) FILTER (WHERE status = 'Taken'),
            COUNT(*) FILTER (WHERE status = 'Missed')
        FROM medicine_logs
        WHERE medicine_id = $1 AND DATE(taken_time) = $2
    `
	err = r.db.QueryRow(ctx, query, medicineID, day).Scan(&taken, &missed)
	return taken, missed, err
}
