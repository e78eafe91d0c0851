package activity

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/notekeeper/internal/client/models"
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

func TestInsert(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	at := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectExec(`INSERT INTO activity_logs \(id, note_id, user_id, action, details, created_at\)`).
		WithArgs("a1", "n1", "u1", "Pinned", "Status updated", at).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Insert(context.Background(), &models.ActivityLogEntry{
		ID: "a1", NoteID: "n1", UserID: "u1", Action: models.ActionPinned, Details: "Status updated", CreatedAt: at,
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestInsert_Error(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	mock.ExpectExec(`INSERT INTO activity_logs`).WillReturnError(errors.New("boom"))

	require.ErrorContains(t, repo.Insert(context.Background(), &models.ActivityLogEntry{}), "failed to insert activity")
}

func TestRecent_LimitAndOrder(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	t1 := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`FROM activity_logs\s+WHERE user_id = \$1\s+ORDER BY created_at DESC\s+LIMIT \$2`).
		WithArgs("u1", 20).
		WillReturnRows(sqlmock.NewRows([]string{"id", "note_id", "user_id", "action", "details", "created_at"}).
			AddRow("a2", "n1", "u1", "Edited", "In Work", t1.Add(time.Minute)).
			AddRow("a1", "n1", "u1", "Created", "In Work", t1))

	got, err := repo.Recent(context.Background(), "u1", 20)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, models.ActionEdited, got[0].Action)
	assert.Equal(t, models.ActionCreated, got[1].Action)
}

func TestRecent_Error(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	mock.ExpectQuery(`FROM activity_logs`).WillReturnError(errors.New("down"))

	_, err := repo.Recent(context.Background(), "u1", 20)
	require.ErrorContains(t, err, "failed to select activity")
}
