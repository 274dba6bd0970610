package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/user-service/internal/domain"
)

// SuspensionRepository manages suspension windows. Records are insert-only;
// a window stops mattering when end_date passes.
type SuspensionRepository interface {
	Create(ctx context.Context, suspension *domain.Suspension) error
	FindActiveByUserID(ctx context.Context, userID string) (*domain.Suspension, error)
	IsSuspended(ctx context.Context, userID string) (bool, error)
}

type suspensionRepository struct {
	pool *pgxpool.Pool
}

// NewSuspensionRepository returns a Postgres-backed implementation.
func NewSuspensionRepository(pool *pgxpool.Pool) SuspensionRepository {
	return &suspensionRepository{pool: pool}
}

func (r *suspensionRepository) Create(ctx context.Context, suspension *domain.Suspension) error {
	const query = `
        INSERT INTO user_suspensions (id, user_id, start_date, end_date, description)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING created_at`

	return r.pool.QueryRow(ctx, query,
		suspension.ID,
		suspension.UserID,
		suspension.StartDate,
		suspension.EndDate,
		suspension.Description,
	).Scan(&suspension.CreatedAt)
}

// FindActiveByUserID returns the suspension window that has not ended yet,
// or nil when none exists.
func (r *suspensionRepository) FindActiveByUserID(ctx context.Context, userID string) (*domain.Suspension, error) {
	const query = `
        SELECT id, user_id, start_date, end_date, description, created_at
        FROM user_suspensions
        WHERE user_id = $1 AND end_date >= NOW()
        ORDER BY end_date DESC
        LIMIT 1`

	var s domain.Suspension
	var description *string
	err := r.pool.QueryRow(ctx, query, userID).Scan(
		&s.ID,
		&s.UserID,
		&s.StartDate,
		&s.EndDate,
		&description,
		&s.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if description != nil {
		s.Description = *description
	}
	return &s, nil
}

// IsSuspended reports whether an active window covers the current instant:
// start_date <= now < end_date.
func (r *suspensionRepository) IsSuspended(ctx context.Context, userID string) (bool, error) {
	const query = `
        SELECT 1
        FROM user_suspensions
        WHERE user_id = $1
          AND start_date <= NOW()
          AND end_date > NOW()
        LIMIT 1`

	var one int
	err := r.pool.QueryRow(ctx, query, userID).Scan(&one)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Window computes a suspension interval starting now and ending the given
// number of days later.
func Window(days int) (time.Time, time.Time) {
	start := time.Now()
	return start, start.AddDate(0, 0, days)
}
