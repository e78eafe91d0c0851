// Package activity appends to and reads the remote activity_logs table.
package activity

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/notekeeper/internal/client/models"
	"github.com/dmitrijs2005/notekeeper/internal/dbx"
)

type Repository interface {
	Insert(ctx context.Context, e *models.ActivityLogEntry) error

	// Recent returns at most limit entries, newest first.
	Recent(ctx context.Context, userID string, limit int) ([]models.ActivityLogEntry, error)
}

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Insert(ctx context.Context, e *models.ActivityLogEntry) error {
	query := `
		INSERT INTO activity_logs (id, note_id, user_id, action, details, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	if _, err := r.db.ExecContext(ctx, query, e.ID, e.NoteID, e.UserID, string(e.Action), e.Details, e.CreatedAt); err != nil {
		return fmt.Errorf("failed to insert activity: %w", err)
	}
	return nil
}

func (r *PostgresRepository) Recent(ctx context.Context, userID string, limit int) ([]models.ActivityLogEntry, error) {
	query := `
		SELECT id, note_id, user_id, action, details, created_at
		FROM activity_logs
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`
	rows, err := r.db.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to select activity: %w", err)
	}
	defer rows.Close()

	result := make([]models.ActivityLogEntry, 0, limit)
	for rows.Next() {
		var e models.ActivityLogEntry
		var action string
		if err := rows.Scan(&e.ID, &e.NoteID, &e.UserID, &action, &e.Details, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan activity: %w", err)
		}
		e.Action = models.Action(action)
		result = append(result, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate activity: %w", err)
	}
	return result, nil
}
