package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"medreminder/internal/model"
)

type UserRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewUserRepository(db *pgxpool.Pool, logger *zap.Logger) *UserRepository {
	return &UserRepository{
		db:     db,
		logger: logger,
	}
}

func (r *UserRepository) Insert(ctx context.Context, u *model.User) error {
	query := `
        INSERT INTO users (username, email, password_hash, phone, role, created_at)
        VALUES ($1, $2, $3, $4, $5, NOW())
        RETURNING id
    `
	err := r.db.QueryRow(ctx, query,
		u.Username,
		u.Email,
		u.PasswordHash,
		u.Phone,
		u.Role,
	).Scan(&u.ID)

	if err != nil {
		r.logger.Error("Failed to insert user", zap.Error(err))
		return err
	}

	r.logger.Info("User inserted successfully",
		zap.Int("id", u.ID),
		zap.String("email", u.Email),
	)
	return nil
}

// FindByEmail returns nil, pgx.ErrNoRows when no user exists.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	query := `
        SELECT id, username, email, password_hash, COALESCE(phone, ''), role, created_at
        FROM users
        WHERE email = $1
    `
	var u model.User
	err := r.db.QueryRow(ctx, query, email).Scan(
		&u.ID,
		&u.Username,
		&u.Email,
		&u.PasswordHash,
		&u.Phone,
		&u.Role,
		&u.CreatedAt,
	)
	if err != nil {
		if err != pgx.ErrNoRows {
			r.logger.Error("Failed to find user by email", zap.Error(err))
		}
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id int) (*model.User, error) {
	query := `
        SELECT id, username, email, password_hash, COALESCE(phone, ''), role, created_at
        FROM users
        WHERE id = $1
    `
	var u model.User
	err := r.db.QueryRow(ctx, query, id).Scan(
		&u.ID,
		&u.Username,
		&u.Email,
		&u.PasswordHash,
		&u.Phone,
		&u.Role,
		&u.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) CountAll(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&count)
	return count, err
}
