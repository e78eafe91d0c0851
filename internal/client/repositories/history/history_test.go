package history

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/notekeeper/internal/client/models"
	"github.com/dmitrijs2005/notekeeper/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewPostgresRepository(db), mock
}

var columns = []string{"id", "note_id", "user_id", "content", "category", "image_url", "created_at"}

func TestInsert(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	at := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectExec(`INSERT INTO note_history \(id, note_id, user_id, content, category, image_url, created_at\)`).
		WithArgs("h1", "n1", "u1", "old", "Work", nil, at).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Insert(context.Background(), &models.HistorySnapshot{
		ID: "h1", NoteID: "n1", UserID: "u1", Content: "old", Category: "Work", CreatedAt: at,
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestInsert_Error(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	mock.ExpectExec(`INSERT INTO note_history`).WillReturnError(errors.New("fk violation"))

	err := repo.Insert(context.Background(), &models.HistorySnapshot{})
	require.ErrorContains(t, err, "failed to insert history snapshot")
}

func TestListByNote_NewestFirst(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	t1 := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
	t2 := t1.Add(time.Hour)

	mock.ExpectQuery(`FROM note_history\s+WHERE user_id = \$1 AND note_id = \$2\s+ORDER BY created_at DESC`).
		WithArgs("u1", "n1").
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow("h2", "n1", "u1", "v2", "Work", nil, t2).
			AddRow("h1", "n1", "u1", "v1", "General", "https://cdn/a.png", t1))

	got, err := repo.ListByNote(context.Background(), "u1", "n1")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "h2", got[0].ID)
	assert.Equal(t, "v1", got[1].Content)
	require.NotNil(t, got[1].ImageURL)
}

func TestLatest(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	at := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`ORDER BY created_at DESC\s+LIMIT 1`).
		WithArgs("u1", "n1").
		WillReturnRows(sqlmock.NewRows(columns).AddRow("h9", "n1", "u1", "prev", "Work", nil, at))

	got, err := repo.Latest(context.Background(), "u1", "n1")
	require.NoError(t, err)
	assert.Equal(t, "prev", got.Content)
}

func TestLatest_NoRowsIsNotFound(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`LIMIT 1`).WithArgs("u1", "n1").WillReturnRows(sqlmock.NewRows(columns))

	got, err := repo.Latest(context.Background(), "u1", "n1")
	require.ErrorIs(t, err, common.ErrNotFound)
	assert.Nil(t, got)
}

func TestLatest_DBError(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`LIMIT 1`).WillReturnError(errors.New("timeout"))

	_, err := repo.Latest(context.Background(), "u1", "n1")
	require.ErrorContains(t, err, "failed to select latest history")
}
