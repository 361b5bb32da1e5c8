package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"medreminder/internal/model"
)

type NotificationRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewNotificationRepository(db *pgxpool.Pool, logger *zap.Logger) *NotificationRepository {
	return &NotificationRepository{
		db:     db,
		logger: logger,
	}
}

func (r *NotificationRepository) Insert(ctx context.Context, n *model.Notification) error {
	query := `
        INSERT INTO notifications (user_id, medicine_id, message, type, scheduled_time, day, is_read, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, false, NOW())
        RETURNING id, created_at
    `
	err := r.db.QueryRow(ctx, query,
		n.UserID,
		nullableID(n.MedicineID),
		n.Message,
		n.Type,
		nullableText(n.ScheduledTime),
		nullableText(n.Day),
	).Scan(&n.ID, &n.CreatedAt)

	if err != nil {
		r.logger.Error("Failed to insert notification", zap.Error(err))
		return err
	}
	return nil
}

// InsertBatch commits all notifications in one transaction. Either every
// notification lands or none does; a failed batch is retried by the next
// evaluator pass.
func (r *NotificationRepository) InsertBatch(ctx context.Context, notifications []*model.Notification) error {
	if len(notifications) == 0 {
		return nil
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		r.logger.Error("Failed to begin notification batch", zap.Error(err))
		return err
	}
	defer tx.Rollback(ctx)

	query := `
        INSERT INTO notifications (user_id, medicine_id, message, type, scheduled_time, day, is_read, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, false, NOW())
    `
	for _, n := range notifications {
		if _, err := tx.Exec(ctx, query,
			n.UserID,
			nullableID(n.MedicineID),
			n.Message,
			n.Type,
			nullableText(n.ScheduledTime),
			nullableText(n.Day),
		); err != nil {
			r.logger.Error("Failed to insert notification in batch",
				zap.Int("user_id", n.UserID),
				zap.Int("medicine_id", n.MedicineID),
				zap.Error(err),
			)
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		r.logger.Error("Failed to commit notification batch", zap.Error(err))
		return err
	}

	r.logger.Info("Notification batch committed",
		zap.Int("count", len(notifications)),
	)
	return nil
}

// ExistsReminder reports whether a reminder for this occurrence was already
// emitted. The structured (user, medicine, day, slot) key is also enforced
// by a partial unique index, so a concurrent insert cannot slip past this
// check unnoticed.
func (r *NotificationRepository) ExistsReminder(ctx context.Context, userID, medicineID int, day, scheduledTime string) (bool, error) {
	query := `
        SELECT EXISTS (
            SELECT 1 FROM notifications
            WHERE user_id = $1
              AND medicine_id = $2
              AND type = 'reminder'
              AND day = $3
              AND scheduled_time = $4
        )
    `
	var exists bool
	err := r.db.QueryRow(ctx, query, userID, medicineID, day, scheduledTime).Scan(&exists)
	if err != nil {
		r.logger.Error("Failed to check reminder ledger", zap.Error(err))
		return false, err
	}
	return exists, nil
}

func (r *NotificationRepository) ListByUser(ctx context.Context, userID, limit int) ([]model.Notification, error) {
	query := `
        SELECT n.id, n.user_id, COALESCE(n.medicine_id, 0), n.message, n.type,
               COALESCE(n.scheduled_time, ''), COALESCE(n.day::text, ''),
               COALESCE(m.medicine_name, ''), n.is_read, n.created_at
        FROM notifications n
        LEFT JOIN medicines m ON m.id = n.medicine_id
        WHERE n.user_id = $1
        ORDER BY n.created_at DESC
        LIMIT $2
    `
	rows, err := r.db.Query(ctx, query, userID, limit)
	if err != nil {
		r.logger.Error("Failed to list notifications", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var notifications []model.Notification
	for rows.Next() {
		var n model.Notification
		if err := rows.Scan(
			&n.ID,
			&n.UserID,
			&n.MedicineID,
			&n.Message,
			&n.Type,
			&n.ScheduledTime,
			&n.Day,
			&n.MedicineName,
			&n.IsRead,
			&n.CreatedAt,
		); err != nil {
			r.logger.Error("Failed to scan notification", zap.Error(err))
			return nil, err
		}
		notifications = append(notifications, n)
	}
	return notifications, rows.Err()
}

func (r *NotificationRepository) MarkRead(ctx context.Context, id, userID int) error {
	result, err := r.db.Exec(ctx,
		`UPDATE notifications SET is_read = true WHERE id = $1 AND user_id = $2`,
		id, userID,
	)
	if err != nil {
		r.logger.Error("Failed to mark notification read", zap.Error(err))
		return err
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func nullableID(id int) any {
	if id == 0 {
		return nil
	}
	return id
}

func nullableText(s string) any {
	if s == "" {
		return nil
	}
	return s
}
