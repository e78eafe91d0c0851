// Package categories stores user-created category names. Default categories
// are never stored; see services.MergeCategories.
package categories

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/notekeeper/internal/client/models"
	"github.com/dmitrijs2005/notekeeper/internal/common"
	"github.com/dmitrijs2005/notekeeper/internal/dbx"
)

type Repository interface {
	// Names returns the user's category names ordered by name.
	Names(ctx context.Context, userID string) ([]string, error)

	// Insert returns common.ErrAlreadyExists when the name is taken.
	Insert(ctx context.Context, c *models.Category) error

	// DeleteByName returns common.ErrNotFound when no such row exists.
	DeleteByName(ctx context.Context, userID, name string) error
}

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Names(ctx context.Context, userID string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT name FROM categories WHERE user_id = $1 ORDER BY name`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to select categories: %w", err)
	}
	defer rows.Close()

	names := make([]string, 0)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate categories: %w", err)
	}
	return names, nil
}

func (r *PostgresRepository) Insert(ctx context.Context, c *models.Category) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO categories (id, user_id, name, created_at) VALUES ($1, $2, $3, $4)`,
		c.ID, c.UserID, c.Name, c.CreatedAt)
	if dbx.IsUniqueViolation(err) {
		return common.ErrAlreadyExists
	}
	if err != nil {
		return fmt.Errorf("failed to insert category: %w", err)
	}
	return nil
}

func (r *PostgresRepository) DeleteByName(ctx context.Context, userID, name string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM categories WHERE user_id = $1 AND name = $2`, userID, name)
	if err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrNotFound
	}
	return nil
}
