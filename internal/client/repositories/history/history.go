// Package history stores the immutable pre-edit snapshots of notes.
package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/notekeeper/internal/client/models"
	"github.com/dmitrijs2005/notekeeper/internal/common"
	"github.com/dmitrijs2005/notekeeper/internal/dbx"
)

// Repository describes operations on note_history.
type Repository interface {
	Insert(ctx context.Context, s *models.HistorySnapshot) error

	// ListByNote returns every snapshot of a note, newest first.
	ListByNote(ctx context.Context, userID, noteID string) ([]models.HistorySnapshot, error)

	// Latest returns the newest snapshot or common.ErrNotFound.
	Latest(ctx context.Context, userID, noteID string) (*models.HistorySnapshot, error)
}

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const selectSnapshots = `
	SELECT id, note_id, user_id, content, category, image_url, created_at
	FROM note_history
	WHERE user_id = $1 AND note_id = $2
	ORDER BY created_at DESC
`

func (r *PostgresRepository) Insert(ctx context.Context, s *models.HistorySnapshot) error {
	query := `
		INSERT INTO note_history (id, note_id, user_id, content, category, image_url, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	if _, err := r.db.ExecContext(ctx, query, s.ID, s.NoteID, s.UserID, s.Content, s.Category, s.ImageURL, s.CreatedAt); err != nil {
		return fmt.Errorf("failed to insert history snapshot: %w", err)
	}
	return nil
}

func (r *PostgresRepository) ListByNote(ctx context.Context, userID, noteID string) ([]models.HistorySnapshot, error) {
	rows, err := r.db.QueryContext(ctx, selectSnapshots, userID, noteID)
	if err != nil {
		return nil, fmt.Errorf("failed to select history: %w", err)
	}
	defer rows.Close()

	result := make([]models.HistorySnapshot, 0)
	for rows.Next() {
		var s models.HistorySnapshot
		if err := rows.Scan(&s.ID, &s.NoteID, &s.UserID, &s.Content, &s.Category, &s.ImageURL, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan history: %w", err)
		}
		result = append(result, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate history: %w", err)
	}
	return result, nil
}

func (r *PostgresRepository) Latest(ctx context.Context, userID, noteID string) (*models.HistorySnapshot, error) {
	var s models.HistorySnapshot
	err := r.db.QueryRowContext(ctx, selectSnapshots+" LIMIT 1", userID, noteID).
		Scan(&s.ID, &s.NoteID, &s.UserID, &s.Content, &s.Category, &s.ImageURL, &s.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to select latest history: %w", err)
	}
	return &s, nil
}
