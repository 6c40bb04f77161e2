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

// MessageRepository defines the interface for contact message data access.
type MessageRepository interface {
	Find(ctx context.Context) ([]*models.Message, error)
	FindByID(ctx context.Context, id int64) (*models.Message, error)
	Create(ctx context.Context, message *models.Message) error
	SetRead(ctx context.Context, id int64, isRead bool) (*models.Message, error)
	Delete(ctx context.Context, id int64) error
}

type messageRepository struct {
	db *database.DB
}

// NewMessageRepository creates a new message repository.
func NewMessageRepository(db *database.DB) MessageRepository {
	return &messageRepository{db: db}
}

// Find returns all messages, newest first.
func (r *messageRepository) Find(ctx context.Context) ([]*models.Message, error) {
	query := `
		SELECT id, full_name, email, phone, message, is_read, created_at, updated_at
		FROM messages
		ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	defer rows.Close()

	messages := []*models.Message{}
	for rows.Next() {
		m, err := scanMessage(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan message: %w", err)
		}
		messages = append(messages, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read messages: %w", err)
	}

	return messages, nil
}

// FindByID retrieves a message by ID.
func (r *messageRepository) FindByID(ctx context.Context, id int64) (*models.Message, error) {
	query := `
		SELECT id, full_name, email, phone, message, is_read, created_at, updated_at
		FROM messages
		WHERE id = $1`

	m, err := scanMessage(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get message: %w", err)
	}

	return m, nil
}

// Create inserts a new message. IsRead starts false.
func (r *messageRepository) Create(ctx context.Context, message *models.Message) error {
	now := time.Now()
	message.CreatedAt = now
	message.UpdatedAt = now

	query := `
		INSERT INTO messages (full_name, email, phone, message, is_read, created_at, updated_at)
		VALUES ($1, $2, $3, $4, false, $5, $6)
		RETURNING id`

	err := r.db.QueryRow(ctx, query,
		message.FullName,
		message.Email,
		message.Phone,
		message.Message,
		message.CreatedAt,
		message.UpdatedAt,
	).Scan(&message.ID)
	if err != nil {
		return fmt.Errorf("failed to create message: %w", err)
	}

	return nil
}

// SetRead toggles the read flag and returns the updated message.
func (r *messageRepository) SetRead(ctx context.Context, id int64, isRead bool) (*models.Message, error) {
	query := `
		UPDATE messages
		SET is_read = $2, updated_at = $3
		WHERE id = $1
		RETURNING id, full_name, email, phone, message, is_read, created_at, updated_at`

	m, err := scanMessage(r.db.QueryRow(ctx, query, id, isRead, time.Now()))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to update message: %w", err)
	}

	return m, nil
}

// Delete removes a message by ID.
func (r *messageRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.Exec(ctx, `DELETE FROM messages WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete message: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	return nil
}

func scanMessage(row pgx.Row) (*models.Message, error) {
	var m models.Message
	err := row.Scan(
		&m.ID, &m.FullName, &m.Email, &m.Phone,
		&m.Message, &m.IsRead, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}
