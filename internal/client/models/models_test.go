package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(s string) *string { return &s }

func TestNote_HasPIN(t *testing.T) {
	assert.False(t, Note{}.HasPIN())
	assert.False(t, Note{Password: ptr("")}.HasPIN())
	assert.True(t, Note{Password: ptr("1234")}.HasPIN())
}

func TestNote_Image(t *testing.T) {
	assert.Equal(t, "", Note{}.Image())
	assert.Equal(t, "https://cdn/x.png", Note{ImageURL: ptr("https://cdn/x.png")}.Image())
}

func TestImageFile_Ext(t *testing.T) {
	assert.Equal(t, "png", ImageFile{Name: "photo.final.png"}.Ext())
	assert.Equal(t, "README", ImageFile{Name: "README"}.Ext())
	assert.Equal(t, "", ImageFile{Name: "trailing."}.Ext())
}

func TestNote_JSONUsesColumnNames(t *testing.T) {
	created := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	b, err := json.Marshal(Note{ID: "n1", UserID: "u1", Content: "hi", Category: "Work", IsPinned: true, CreatedAt: created})
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(b, &m))
	for _, k := range []string{"id", "user_id", "content", "category", "image_url", "password", "is_pinned", "is_trash", "created_at", "updated_at"} {
		assert.Contains(t, m, k)
	}
	assert.Nil(t, m["image_url"])
	assert.Equal(t, true, m["is_pinned"])
}

func TestSnapshotOf_CopiesVersionedFields(t *testing.T) {
	n := Note{ID: "n1", UserID: "u1", Content: "old", Category: "Work", ImageURL: ptr("img"), IsPinned: true}
	s := SnapshotOf(n)
	assert.Equal(t, HistorySnapshot{NoteID: "n1", UserID: "u1", Content: "old", Category: "Work", ImageURL: ptr("img")}, s)
}

func TestSession_ExpiresWithin(t *testing.T) {
	now := time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)

	var nilSession *Session
	assert.True(t, nilSession.ExpiresWithin(now, 0))

	assert.False(t, (&Session{}).ExpiresWithin(now, time.Hour))

	s := &Session{ExpiresAt: now.Add(time.Minute)}
	assert.False(t, s.ExpiresWithin(now, 30*time.Second))
	assert.True(t, s.ExpiresWithin(now, time.Minute))
	assert.True(t, s.ExpiresWithin(now.Add(2*time.Minute), 0))
}
