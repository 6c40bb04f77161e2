package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/escotech/escotech-api/pkg/apperrors"
	"github.com/escotech/escotech-api/pkg/database"
	"github.com/escotech/escotech-api/pkg/models"
)

// ServiceRepository defines the interface for service data access.
type ServiceRepository interface {
	Find(ctx context.Context) ([]*models.Service, error)
	FindByID(ctx context.Context, id int64) (*models.Service, error)
	Create(ctx context.Context, service *models.Service) error
	Update(ctx context.Context, service *models.Service) error
	Delete(ctx context.Context, id int64) error
}

type serviceRepository struct {
	db *database.DB
}

// NewServiceRepository creates a new service repository.
func NewServiceRepository(db *database.DB) ServiceRepository {
	return &serviceRepository{db: db}
}

// Find returns all services by display order, creation time breaking ties.
func (r *serviceRepository) Find(ctx context.Context) ([]*models.Service, error) {
	query := `
		SELECT id, title, description, features, icon, display_order, created_at, updated_at
		FROM services
		ORDER BY display_order ASC, created_at ASC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list services: %w", err)
	}
	defer rows.Close()

	services := []*models.Service{}
	for rows.Next() {
		s, err := scanService(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan service: %w", err)
		}
		services = append(services, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read services: %w", err)
	}

	return services, nil
}

// FindByID retrieves a service by ID.
func (r *serviceRepository) FindByID(ctx context.Context, id int64) (*models.Service, error) {
	query := `
		SELECT id, title, description, features, icon, display_order, created_at, updated_at
		FROM services
		WHERE id = $1`

	s, err := scanService(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get service: %w", err)
	}

	return s, nil
}

// Create inserts a new service.
func (r *serviceRepository) Create(ctx context.Context, service *models.Service) error {
	now := time.Now()
	service.CreatedAt = now
	service.UpdatedAt = now
	if service.Features == nil {
		service.Features = []string{}
	}

	query := `
		INSERT INTO services (title, description, features, icon, display_order, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`

	err := r.db.QueryRow(ctx, query,
		service.Title,
		service.Description,
		service.Features,
		service.Icon,
		service.Order,
		service.CreatedAt,
		service.UpdatedAt,
	).Scan(&service.ID)
	if err != nil {
		return fmt.Errorf("failed to create service: %w", err)
	}

	return nil
}

// Update writes all mutable fields of an existing service.
func (r *serviceRepository) Update(ctx context.Context, service *models.Service) error {
	service.UpdatedAt = time.Now()
	if service.Features == nil {
		service.Features = []string{}
	}

	query := `
		UPDATE services
		SET title = $2, description = $3, features = $4, icon = $5,
		    display_order = $6, updated_at = $7
		WHERE id = $1`

	result, err := r.db.Exec(ctx, query,
		service.ID,
		service.Title,
		service.Description,
		service.Features,
		service.Icon,
		service.Order,
		service.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update service: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	return nil
}

// Delete removes a service by ID.
func (r *serviceRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.Exec(ctx, `DELETE FROM services WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete service: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	return nil
}

func scanService(row pgx.Row) (*models.Service, error) {
	var s models.Service
	err := row.Scan(
		&s.ID, &s.Title, &s.Description, &s.Features,
		&s.Icon, &s.Order, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if s.Features == nil {
		s.Features = []string{}
	}
	return &s, nil
}
