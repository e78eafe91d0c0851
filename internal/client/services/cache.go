package services

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/notekeeper/internal/client/models"
	"github.com/dmitrijs2005/notekeeper/internal/client/repositories/slots"
	"github.com/dmitrijs2005/notekeeper/internal/dbx"
)

// Slot names in the local cache.
const (
	SlotNotes      = "notes"
	SlotCategories = "categories"
	SlotSession    = "session"
)

// CacheService reads and writes the JSON-encoded cache slots.
type CacheService interface {
	// LoadNotes returns the cached note list, or an empty list.
	LoadNotes(ctx context.Context) ([]models.Note, error)
	SaveNotes(ctx context.Context, notes []models.Note) error

	// LoadCategories returns the cached merged list, or the defaults.
	LoadCategories(ctx context.Context) ([]string, error)
	SaveCategories(ctx context.Context, names []string) error

	// LoadSession returns the persisted session, or nil.
	LoadSession(ctx context.Context) (*models.Session, error)
	SaveSession(ctx context.Context, s *models.Session) error

	// Clear empties every slot.
	Clear(ctx context.Context) error
}

type cacheService struct {
	db *sql.DB
}

func NewCacheService(db *sql.DB) CacheService {
	return &cacheService{db: db}
}

func (c *cacheService) repo() slots.Repository {
	return slots.NewSQLiteRepository(c.db)
}

func (c *cacheService) load(ctx context.Context, slot string, v any) (bool, error) {
	data, err := c.repo().Get(ctx, slot)
	if err != nil {
		return false, err
	}
	if data == nil {
		return false, nil
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false, fmt.Errorf("failed to decode slot[%s]: %w", slot, err)
	}
	return true, nil
}

func (c *cacheService) save(ctx context.Context, slot string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode slot[%s]: %w", slot, err)
	}
	return c.repo().Set(ctx, slot, data)
}

func (c *cacheService) LoadNotes(ctx context.Context) ([]models.Note, error) {
	var notes []models.Note
	if _, err := c.load(ctx, SlotNotes, &notes); err != nil {
		return []models.Note{}, err
	}
	if notes == nil {
		notes = []models.Note{}
	}
	return notes, nil
}

func (c *cacheService) SaveNotes(ctx context.Context, notes []models.Note) error {
	if notes == nil {
		notes = []models.Note{}
	}
	return c.save(ctx, SlotNotes, notes)
}

func (c *cacheService) LoadCategories(ctx context.Context) ([]string, error) {
	var names []string
	ok, err := c.load(ctx, SlotCategories, &names)
	if err != nil || !ok || len(names) == 0 {
		return DefaultCategories(), err
	}
	return names, nil
}

func (c *cacheService) SaveCategories(ctx context.Context, names []string) error {
	return c.save(ctx, SlotCategories, names)
}

func (c *cacheService) LoadSession(ctx context.Context) (*models.Session, error) {
	var s models.Session
	ok, err := c.load(ctx, SlotSession, &s)
	if err != nil || !ok {
		return nil, err
	}
	return &s, nil
}

func (c *cacheService) SaveSession(ctx context.Context, s *models.Session) error {
	if s == nil {
		return c.repo().Delete(ctx, SlotSession)
	}
	return c.save(ctx, SlotSession, s)
}

func (c *cacheService) Clear(ctx context.Context) error {
	return dbx.WithTx(ctx, c.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return slots.NewSQLiteRepository(tx).Clear(ctx)
	})
}
