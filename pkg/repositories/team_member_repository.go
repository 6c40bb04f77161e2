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

// TeamMemberRepository defines the interface for team member data access.
type TeamMemberRepository interface {
	Find(ctx context.Context) ([]*models.TeamMember, error)
	FindByID(ctx context.Context, id int64) (*models.TeamMember, error)
	Create(ctx context.Context, member *models.TeamMember) error
	Update(ctx context.Context, member *models.TeamMember) error
	Delete(ctx context.Context, id int64) error
}

type teamMemberRepository struct {
	db *database.DB
}

// NewTeamMemberRepository creates a new team member repository.
func NewTeamMemberRepository(db *database.DB) TeamMemberRepository {
	return &teamMemberRepository{db: db}
}

// Find returns all team members: CEO first, then by display order,
// creation time breaking ties.
func (r *teamMemberRepository) Find(ctx context.Context) ([]*models.TeamMember, error) {
	query := `
		SELECT id, name, role, description, image, display_order, is_ceo, created_at, updated_at
		FROM team_members
		ORDER BY is_ceo DESC, display_order ASC, created_at ASC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list team members: %w", err)
	}
	defer rows.Close()

	members := []*models.TeamMember{}
	for rows.Next() {
		var m models.TeamMember
		if err := rows.Scan(
			&m.ID, &m.Name, &m.Role, &m.Description,
			&m.Image, &m.Order, &m.IsCEO, &m.CreatedAt, &m.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan team member: %w", err)
		}
		members = append(members, &m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read team members: %w", err)
	}

	return members, nil
}

// FindByID retrieves a team member by ID.
func (r *teamMemberRepository) FindByID(ctx context.Context, id int64) (*models.TeamMember, error) {
	query := `
		SELECT id, name, role, description, image, display_order, is_ceo, created_at, updated_at
		FROM team_members
		WHERE id = $1`

	var m models.TeamMember
	err := r.db.QueryRow(ctx, query, id).Scan(
		&m.ID, &m.Name, &m.Role, &m.Description,
		&m.Image, &m.Order, &m.IsCEO, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get team member: %w", err)
	}

	return &m, nil
}

// Create inserts a new team member.
func (r *teamMemberRepository) Create(ctx context.Context, member *models.TeamMember) error {
	now := time.Now()
	member.CreatedAt = now
	member.UpdatedAt = now

	query := `
		INSERT INTO team_members (name, role, description, image, display_order, is_ceo, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`

	err := r.db.QueryRow(ctx, query,
		member.Name,
		member.Role,
		member.Description,
		member.Image,
		member.Order,
		member.IsCEO,
		member.CreatedAt,
		member.UpdatedAt,
	).Scan(&member.ID)
	if err != nil {
		return fmt.Errorf("failed to create team member: %w", err)
	}

	return nil
}

// Update writes all mutable fields of an existing team member.
func (r *teamMemberRepository) Update(ctx context.Context, member *models.TeamMember) error {
	member.UpdatedAt = time.Now()

	query := `
		UPDATE team_members
		SET name = $2, role = $3, description = $4, image = $5,
		    display_order = $6, is_ceo = $7, updated_at = $8
		WHERE id = $1`

	result, err := r.db.Exec(ctx, query,
		member.ID,
		member.Name,
		member.Role,
		member.Description,
		member.Image,
		member.Order,
		member.IsCEO,
		member.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update team member: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	return nil
}

// Delete removes a team member by ID.
func (r *teamMemberRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.Exec(ctx, `DELETE FROM team_members WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete team member: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	return nil
}
