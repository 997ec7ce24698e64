package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/yigit/hostelcare/internal/app/models"
	"github.com/yigit/hostelcare/internal/pkg/apperrors"
	"github.com/yigit/hostelcare/internal/pkg/dberrors"
)

// AdminRepository handles database operations for admin accounts
type AdminRepository struct {
	db DBTX
}

// NewAdminRepository creates a new admin repository
func NewAdminRepository(db DBTX) *AdminRepository {
	return &AdminRepository{db: db}
}

// Create inserts an admin account
func (r *AdminRepository) Create(ctx context.Context, admin *models.AdminUser) error {
	query := `
		INSERT INTO admin_users (username, password, full_name, role)
		VALUES ($1, $2, $3, $4)
		RETURNING admin_id, created_at
	`

	err := r.db.QueryRow(ctx, query, admin.Username, admin.PasswordHash, admin.FullName, admin.Role).
		Scan(&admin.AdminID, &admin.CreatedAt)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrAdminAlreadyExists
		}
		return fmt.Errorf("error creating admin: %w", err)
	}
	return nil
}

// GetByUsername retrieves an admin by username
func (r *AdminRepository) GetByUsername(ctx context.Context, username string) (*models.AdminUser, error) {
	query := `
		SELECT admin_id, username, password, full_name, role, created_at
		FROM admin_users
		WHERE username = $1
	`

	var a models.AdminUser
	err := r.db.QueryRow(ctx, query, username).Scan(&a.AdminID, &a.Username, &a.PasswordHash, &a.FullName, &a.Role, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrAdminNotFound
		}
		return nil, fmt.Errorf("error retrieving admin: %w", err)
	}
	return &a, nil
}

// UpdatePassword replaces an admin's password hash
func (r *AdminRepository) UpdatePassword(ctx context.Context, username, passwordHash string) error {
	tag, err := r.db.Exec(ctx, `UPDATE admin_users SET password = $2 WHERE username = $1`, username, passwordHash)
	if err != nil {
		return fmt.Errorf("error updating admin password: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrAdminNotFound
	}
	return nil
}

// Count returns the number of admin accounts
func (r *AdminRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM admin_users`).Scan(&n); err != nil {
		return 0, fmt.Errorf("error counting admins: %w", err)
	}
	return n, nil
}
