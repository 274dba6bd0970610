package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/user-service/internal/domain"
)

// AdminRepository defines persistence access for administrator accounts.
type AdminRepository interface {
	Create(ctx context.Context, admin *domain.Admin) error
	GetByEmail(ctx context.Context, email string) (*domain.Admin, error)
	UpdateProfile(ctx context.Context, email string, updates ProfileUpdates) (*domain.Admin, error)
	SetActive(ctx context.Context, email string, active bool) error
	TouchLastLogin(ctx context.Context, id string) error
}

type adminRepository struct {
	pool *pgxpool.Pool
}

// NewAdminRepository returns a Postgres-backed implementation.
func NewAdminRepository(pool *pgxpool.Pool) AdminRepository {
	return &adminRepository{pool: pool}
}

const adminColumns = `id, email, full_name, profile_picture, auth_id, is_active, created_at, last_login`

func scanAdmin(row pgx.Row) (*domain.Admin, error) {
	var admin domain.Admin
	if err := row.Scan(
		&admin.ID,
		&admin.Email,
		&admin.FullName,
		&admin.ProfilePicture,
		&admin.AuthID,
		&admin.IsActive,
		&admin.CreatedAt,
		&admin.LastLogin,
	); err != nil {
		return nil, err
	}
	return &admin, nil
}

func (r *adminRepository) Create(ctx context.Context, admin *domain.Admin) error {
	const query = `
        INSERT INTO admin_users (id, email, full_name, profile_picture, auth_id, is_active, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, NOW())
        RETURNING created_at`

	return r.pool.QueryRow(ctx, query,
		admin.ID,
		admin.Email,
		admin.FullName,
		admin.ProfilePicture,
		admin.AuthID,
		admin.IsActive,
	).Scan(&admin.CreatedAt)
}

func (r *adminRepository) GetByEmail(ctx context.Context, email string) (*domain.Admin, error) {
	query := fmt.Sprintf(`SELECT %s FROM admin_users WHERE email=$1`, adminColumns)
	return scanAdmin(r.pool.QueryRow(ctx, query, email))
}

func (r *adminRepository) UpdateProfile(ctx context.Context, email string, updates ProfileUpdates) (*domain.Admin, error) {
	setClauses := make([]string, 0, 2)
	args := make([]any, 0, 3)

	// Admin accounts have no username.
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
	query := fmt.Sprintf(`UPDATE admin_users SET %s WHERE email=$%d RETURNING %s`,
		strings.Join(setClauses, ", "), len(args), adminColumns)

	return scanAdmin(r.pool.QueryRow(ctx, query, args...))
}

func (r *adminRepository) SetActive(ctx context.Context, email string, active bool) error {
	const query = `UPDATE admin_users SET is_active=$1 WHERE email=$2`

	cmd, err := r.pool.Exec(ctx, query, active, email)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *adminRepository) TouchLastLogin(ctx context.Context, id string) error {
	const query = `UPDATE admin_users SET last_login=NOW() WHERE id=$1`
	_, err := r.pool.Exec(ctx, query, id)
	return err
}
