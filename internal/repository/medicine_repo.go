package repository

import (
	"context"
	"encoding/json"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"medreminder/internal/model"
)

type MedicineRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewMedicineRepository(db *pgxpool.Pool, logger *zap.Logger) *MedicineRepository {
	return &MedicineRepository{
		db:     db,
		logger: logger,
	}
}

const medicineColumns = `
        id, user_id, medicine_name, dosage, frequency, schedule_type,
        times_per_day, COALESCE(specific_times, ''), start_date,
        COALESCE(end_date, ''), COALESCE(instructions, ''), status, priority,
        created_at`

func (r *MedicineRepository) Insert(ctx context.Context, m *model.Medicine) error {
	r.logger.Debug("Inserting medicine",
		zap.Int("user_id", m.UserID),
		zap.String("medicine_name", m.Name),
		zap.Int("times_per_day", m.TimesPerDay),
	)

	specificTimes, err := encodeTimes(m.SpecificTimes)
	if err != nil {
		return err
	}

	query := `
        INSERT INTO medicines (user_id, medicine_name, dosage, frequency,
            schedule_type, times_per_day, specific_times, start_date,
            end_date, instructions, status, priority, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, NOW())
        RETURNING id
    `
	err = r.db.QueryRow(ctx, query,
		m.UserID,
		m.Name,
		m.Dosage,
		m.Frequency,
		m.ScheduleType,
		m.TimesPerDay,
		specificTimes,
		m.StartDate,
		m.EndDate,
		m.Instructions,
		m.Status,
		m.Priority,
	).Scan(&m.ID)

	if err != nil {
		r.logger.Error("Failed to insert medicine", zap.Error(err))
		return err
	}

	r.logger.Info("Medicine inserted successfully",
		zap.Int("id", m.ID),
		zap.Int("user_id", m.UserID),
	)
	return nil
}

func (r *MedicineRepository) FindByID(ctx context.Context, id int) (*model.Medicine, error) {
	query := `SELECT ` + medicineColumns + ` FROM medicines WHERE id = $1`

	row := r.db.QueryRow(ctx, query, id)
	m, err := scanMedicine(row)
	if err != nil {
		return nil, err
	}
	return m, nil
}

func (r *MedicineRepository) ListByUser(ctx context.Context, userID int) ([]model.Medicine, error) {
	query := `
        SELECT ` + medicineColumns + `
        FROM medicines
        WHERE user_id = $1
        ORDER BY created_at DESC
    `
	return r.list(ctx, query, userID)
}

func (r *MedicineRepository) ListActiveByUser(ctx context.Context, userID int) ([]model.Medicine, error) {
	query := `
        SELECT ` + medicineColumns + `
        FROM medicines
        WHERE user_id = $1 AND status = 'Active'
        ORDER BY created_at DESC
    `
	return r.list(ctx, query, userID)
}

// ListAllActive returns every active medicine across all users; one
// evaluator pass works from this snapshot.
func (r *MedicineRepository) ListAllActive(ctx context.Context) ([]model.Medicine, error) {
	query := `
        SELECT ` + medicineColumns + `
        FROM medicines
        WHERE status = 'Active'
        ORDER BY id
    `
	return r.list(ctx, query)
}

func (r *MedicineRepository) UpdateStatus(ctx context.Context, id, userID int, status string) error {
	query := `
        UPDATE medicines
        SET status = $1
        WHERE id = $2 AND user_id = $3
    `
	result, err := r.db.Exec(ctx, query, status, id, userID)
	if err != nil {
		r.logger.Error("Failed to update medicine status", zap.Error(err))
		return err
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a medicine; logs and notifications cascade at the schema
// level.
func (r *MedicineRepository) Delete(ctx context.Context, id, userID int) error {
	result, err := r.db.Exec(ctx, `DELETE FROM medicines WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		r.logger.Error("Failed to delete medicine", zap.Error(err))
		return err
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}

	r.logger.Info("Medicine deleted",
		zap.Int("id", id),
		zap.Int("user_id", userID),
	)
	return nil
}

func (r *MedicineRepository) CountByUser(ctx context.Context, userID int, activeOnly bool) (int, error) {
	query := `SELECT COUNT(*) FROM medicines WHERE user_id = $1`
	if activeOnly {
		query += ` AND status = 'Active'`
	}
	var count int
	err := r.db.QueryRow(ctx, query, userID).Scan(&count)
	return count, err
}

func (r *MedicineRepository) CountAll(ctx context.Context, activeOnly bool) (int, error) {
	query := `SELECT COUNT(*) FROM medicines`
	if activeOnly {
		query += ` WHERE status = 'Active'`
	}
	var count int
	err := r.db.QueryRow(ctx, query).Scan(&count)
	return count, err
}

func (r *MedicineRepository) list(ctx context.Context, query string, args ...any) ([]model.Medicine, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.logger.Error("Failed to list medicines", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var medicines []model.Medicine
	for rows.Next() {
		m, err := scanMedicine(rows)
		if err != nil {
			r.logger.Error("Failed to scan medicine", zap.Error(err))
			return nil, err
		}
		medicines = append(medicines, *m)
	}
	return medicines, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMedicine(row rowScanner) (*model.Medicine, error) {
	var m model.Medicine
	var specificTimes string
	if err := row.Scan(
		&m.ID,
		&m.UserID,
		&m.Name,
		&m.Dosage,
		&m.Frequency,
		&m.ScheduleType,
		&m.TimesPerDay,
		&specificTimes,
		&m.StartDate,
		&m.EndDate,
		&m.Instructions,
		&m.Status,
		&m.Priority,
		&m.CreatedAt,
	); err != nil {
		return nil, err
	}
	m.SpecificTimes = decodeTimes(specificTimes)
	return &m, nil
}

// encodeTimes stores the explicit slot list as a JSON array, empty lists as
// NULL so the default-schedule fallback applies on read.
func encodeTimes(times []string) (any, error) {
	if len(times) == 0 {
		return nil, nil
	}
	data, err := json.Marshal(times)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// decodeTimes tolerates malformed stored JSON by treating it as no explicit
// schedule.
func decodeTimes(raw string) []string {
	if raw == "" {
		return nil
	}
	var times []string
	if err := json.Unmarshal([]byte(raw), &times); err != nil {
		return nil
	}
	return times
}
