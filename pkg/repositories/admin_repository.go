// Package repositories implements PostgreSQL data access for the
// escotech API. Each entity gets an interface plus a pgx-backed
// implementation; pgx.ErrNoRows is translated to apperrors.ErrNotFound
// so handlers never see driver errors.
package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/escotech/escotech-api/pkg/apperrors"
	"github.com/escotech/escotech-api/pkg/database"
	"github.com/escotech/escotech-api/pkg/models"
)

// AdminRepository defines the interface for admin data access.
type AdminRepository interface {
	Create(ctx context.Context, admin *models.Admin) error
	FindByID(ctx context.Context, id int64) (*models.Admin, error)
	FindByEmail(ctx context.Context, email string) (*models.Admin, error)
}

type adminRepository struct {
	db *database.DB
}

// NewAdminRepository creates a new admin repository.
func NewAdminRepository(db *database.DB) AdminRepository {
	return &adminRepository{db: db}
}

// Create inserts a new admin. The password must already be hashed.
func (r *adminRepository) Create(ctx context.Context, admin *models.Admin) error {
	now := time.Now()
	admin.CreatedAt = now
	admin.UpdatedAt = now

	query := `
		INSERT INTO admins (email, password, name, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`

	err := r.db.QueryRow(ctx, query,
		admin.Email,
		admin.Password,
		admin.Name,
		admin.CreatedAt,
		admin.UpdatedAt,
	).Scan(&admin.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return apperrors.ErrEmailTaken
		}
		return fmt.Errorf("failed to create admin: %w", err)
	}

	return nil
}

// FindByID retrieves an admin by ID.
func (r *adminRepository) FindByID(ctx context.Context, id int64) (*models.Admin, error) {
	query := `
		SELECT id, email, password, name, created_at, updated_at
		FROM admins
		WHERE id = $1`

	admin, err := scanAdmin(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get admin: %w", err)
	}
	return admin, nil
}

// FindByEmail retrieves an admin by email.
func (r *adminRepository) FindByEmail(ctx context.Context, email string) (*models.Admin, error) {
	query := `
		SELECT id, email, password, name, created_at, updated_at
		FROM admins
		WHERE email = $1`

	admin, err := scanAdmin(r.db.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get admin by email: %w", err)
	}
	return admin, nil
}

func scanAdmin(row pgx.Row) (*models.Admin, error) {
	var admin models.Admin
	err := row.Scan(
		&admin.ID,
		&admin.Email,
		&admin.Password,
		&admin.Name,
		&admin.CreatedAt,
		&admin.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &admin, nil
}
