package notes

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/notekeeper/internal/client/models"
	"github.com/dmitrijs2005/notekeeper/internal/common"
	"github.com/dmitrijs2005/notekeeper/internal/dbx"
)

// PostgresRepository implements Repository over a dbx.DBTX.
type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) List(ctx context.Context, userID string, trashed bool) ([]models.Note, error) {
	query := `
		SELECT id, user_id, content, category, image_url, password, is_pinned, is_trash, created_at, updated_at
		FROM notes
		WHERE user_id = $1 AND is_trash = $2
		ORDER BY is_pinned DESC, created_at DESC
	`
	rows, err := r.db.QueryContext(ctx, query, userID, trashed)
	if err != nil {
		return nil, fmt.Errorf("failed to select notes: %w", err)
	}
	defer rows.Close()

	result := make([]models.Note, 0)
	for rows.Next() {
		var n models.Note
		if err := rows.Scan(
			&n.ID, &n.UserID, &n.Content, &n.Category, &n.ImageURL, &n.Password,
			&n.IsPinned, &n.IsTrash, &n.CreatedAt, &n.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan note: %w", err)
		}
		result = append(result, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate notes: %w", err)
	}
	return result, nil
}

func (r *PostgresRepository) Insert(ctx context.Context, n *models.Note) error {
	query := `
		INSERT INTO notes (id, user_id, content, category, image_url, password, is_pinned, is_trash, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err := r.db.ExecContext(ctx, query,
		n.ID, n.UserID, n.Content, n.Category, n.ImageURL, n.Password, n.IsPinned, n.IsTrash, n.CreatedAt, n.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert note: %w", err)
	}
	return nil
}

func (r *PostgresRepository) Update(ctx context.Context, n *models.Note) error {
	query := `
		UPDATE notes SET content = $3, category = $4, image_url = $5, password = $6, updated_at = $7
		WHERE id = $1 AND user_id = $2
	`
	res, err := r.db.ExecContext(ctx, query, n.ID, n.UserID, n.Content, n.Category, n.ImageURL, n.Password, n.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to update note: %w", err)
	}
	return dbx.ExpectOneRow(res, common.ErrNotFound)
}

func (r *PostgresRepository) ApplySnapshot(ctx context.Context, userID, noteID string, s *models.HistorySnapshot, at time.Time) error {
	query := `
		UPDATE notes SET content = $3, category = $4, image_url = $5, updated_at = $6
		WHERE id = $1 AND user_id = $2
	`
	res, err := r.db.ExecContext(ctx, query, noteID, userID, s.Content, s.Category, s.ImageURL, at)
	if err != nil {
		return fmt.Errorf("failed to restore note: %w", err)
	}
	return dbx.ExpectOneRow(res, common.ErrNotFound)
}

func (r *PostgresRepository) SetPinned(ctx context.Context, userID, noteID string, pinned bool) error {
	res, err := r.db.ExecContext(ctx, `UPDATE notes SET is_pinned = $3 WHERE id = $1 AND user_id = $2`, noteID, userID, pinned)
	if err != nil {
		return fmt.Errorf("failed to pin note: %w", err)
	}
	return dbx.ExpectOneRow(res, common.ErrNotFound)
}

func (r *PostgresRepository) SetTrashed(ctx context.Context, userID, noteID string, trashed bool) error {
	res, err := r.db.ExecContext(ctx, `UPDATE notes SET is_trash = $3 WHERE id = $1 AND user_id = $2`, noteID, userID, trashed)
	if err != nil {
		return fmt.Errorf("failed to trash note: %w", err)
	}
	return dbx.ExpectOneRow(res, common.ErrNotFound)
}

func (r *PostgresRepository) Delete(ctx context.Context, userID, noteID string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM notes WHERE id = $1 AND user_id = $2`, noteID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete note: %w", err)
	}
	return dbx.ExpectOneRow(res, common.ErrNotFound)
}
