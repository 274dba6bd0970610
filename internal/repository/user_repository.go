package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/user-service/internal/domain"
)

// ProfileUpdates carries optional profile fields; nil means unchanged.
type ProfileUpdates struct {
	Username       *string
	FullName       *string
	ProfilePicture *string
}

// UserRepository defines persistence access for end-users.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	UpdateProfile(ctx context.Context, email string, updates ProfileUpdates) (*domain.User, error)
	SetActive(ctx context.Context, email string, active bool) error
	TouchLastLogin(ctx context.Context, id string) error
	ListActive(ctx context.Context, createdAfter time.Time, limit int, username string) ([]domain.User, int, error)
	SearchByName(ctx context.Context, name string, limit int) ([]domain.User, error)
	ListAll(ctx context.Context) ([]domain.User, error)
}

type userRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository returns a Postgres-backed implementation.
func NewUserRepository(pool *pgxpool.Pool) UserRepository {
	return &userRepository{pool: pool}
}

const userColumns = `id, email, username, full_name, profile_picture, auth_id, is_active, created_at, last_login`

func scanUser(row pgx.Row) (*domain.User, error) {
	var user domain.User
	if err := row.Scan(
		&user.ID,
		&user.Email,
		&user.Username,
		&user.FullName,
		&user.ProfilePicture,
		&user.AuthID,
		&user.IsActive,
		&user.CreatedAt,
		&user.LastLogin,
	); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	const query = `
        INSERT INTO users (id, email, username, full_name, profile_picture, auth_id, is_active, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
        RETURNING created_at`

	return r.pool.QueryRow(ctx, query,
		user.ID,
		user.Email,
		user.Username,
		user.FullName,
		user.ProfilePicture,
		user.AuthID,
		user.IsActive,
	).Scan(&user.CreatedAt)
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE id=$1`, userColumns)
	return scanUser(r.pool.QueryRow(ctx, query, id))
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE email=$1`, userColumns)
	return scanUser(r.pool.QueryRow(ctx, query, email))
}

func (r *userRepository) UpdateProfile(ctx context.Context, email string, updates ProfileUpdates) (*domain.User, error) {
	setClauses := make([]string, 0, 3)
	args := make([]any, 0, 4)

	if updates.Username != nil {
		args = append(args, *updates.Username)
		setClauses = append(setClauses, fmt.Sprintf("username=$%d", len(args)))
	}
	if updates.FullName != nil {
		args = append(args, *updates.FullName)
		setClauses = append(setClauses, fmt.Sprintf("full_name=$%d", len(args)))
	}
	if updates.ProfilePicture != nil {
		args = append(args, *updates.ProfilePicture)
		setClauses = append(setClauses, fmt.Sprintf("profile_picture=$%d", len(args)))
	}

	if len(setClauses) == 0 {
		return r.GetByEmail(ctx, email)
	}

	args = append(args, email)
	query := fmt.Sprintf(`UPDATE users SET %s WHERE email=$%d RETURNING %s`,
		strings.Join(setClauses, ", "), len(args), userColumns)

	return scanUser(r.pool.QueryRow(ctx, query, args...))
}

func (r *userRepository) SetActive(ctx context.Context, email string, active bool) error {
	const query = `UPDATE users SET is_active=$1 WHERE email=$2`

	cmd, err := r.pool.Exec(ctx, query, active, email)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *userRepository) TouchLastLogin(ctx context.Context, id string) error {
	const query = `UPDATE users SET last_login=NOW() WHERE id=$1`
	_, err := r.pool.Exec(ctx, query, id)
	return err
}

// ListActive returns the next page of active users ordered by creation time
// (keyset pagination), plus the count of active users created after the
// cursor, which includes the returned page.
func (r *userRepository) ListActive(ctx context.Context, createdAfter time.Time, limit int, username string) ([]domain.User, int, error) {
	query := fmt.Sprintf(`
        SELECT %s FROM users
        WHERE is_active = TRUE AND created_at > $1`, userColumns)
	args := []any{createdAfter}

	if username != "" {
		args = append(args, username)
		query += fmt.Sprintf(" AND username = $%d", len(args))
	}

	args = append(args, limit)
	query += fmt.Sprintf(" ORDER BY created_at ASC LIMIT $%d", len(args))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	users := make([]domain.User, 0, limit)
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, 0, err
		}
		users = append(users, *user)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	const countQuery = `
        SELECT COUNT(*) FROM users
        WHERE is_active = TRUE AND created_at > $1`

	var totalRemaining int
	if err := r.pool.QueryRow(ctx, countQuery, createdAfter).Scan(&totalRemaining); err != nil {
		return nil, 0, err
	}

	return users, totalRemaining, nil
}

func (r *userRepository) SearchByName(ctx context.Context, name string, limit int) ([]domain.User, error) {
	query := fmt.Sprintf(`
        SELECT DISTINCT %s FROM users
        WHERE is_active = TRUE AND (username ILIKE $1 OR full_name ILIKE $1)
        LIMIT $2`, userColumns)

	rows, err := r.pool.Query(ctx, query, "%"+name+"%", limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *user)
	}
	return users, rows.Err()
}

func (r *userRepository) ListAll(ctx context.Context) ([]domain.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users ORDER BY created_at ASC`, userColumns)

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *user)
	}
	return users, rows.Err()
}
