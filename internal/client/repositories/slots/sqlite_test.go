package slots

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE cache_slots (
  name       TEXT PRIMARY KEY,
  value      BLOB NOT NULL,
  updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);`)
	require.NoError(t, err)
	return db
}

func TestSetAndGet(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, "notes", []byte(`[{"id":"n1"}]`)))

	v, err := r.Get(ctx, "notes")
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":"n1"}]`, string(v))
}

func TestGet_EmptySlotReturnsNilNil(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))

	v, err := r.Get(context.Background(), "categories")
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestSet_LastWriteWins(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, "notes", []byte("old")))
	require.NoError(t, r.Set(ctx, "notes", []byte("new")))

	v, err := r.Get(ctx, "notes")
	require.NoError(t, err)
	assert.Equal(t, []byte("new"), v)

	names, err := r.Names(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"notes"}, names)
}

func TestDelete_IsIdempotent(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, "session", []byte("{}")))
	require.NoError(t, r.Delete(ctx, "session"))
	require.NoError(t, r.Delete(ctx, "session"))

	v, err := r.Get(ctx, "session")
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestClear_RemovesEverySlot(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, "notes", []byte("1")))
	require.NoError(t, r.Set(ctx, "categories", []byte("2")))
	require.NoError(t, r.Clear(ctx))

	names, err := r.Names(ctx)
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestErrorsAreWrapped(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()
	require.NoError(t, db.Close())

	_, err := r.Get(ctx, "k")
	require.ErrorContains(t, err, "failed to get slot[k]")

	require.ErrorContains(t, r.Set(ctx, "k", []byte("v")), "failed to set slot[k]")
	require.ErrorContains(t, r.Delete(ctx, "k"), "failed to delete slot[k]")
	require.ErrorContains(t, r.Clear(ctx), "failed to clear slots")

	_, err = r.Names(ctx)
	require.ErrorContains(t, err, "failed to list slots")
}
