// Package slots persists named cache slots in the local SQLite database.
//
// A slot is a name and an opaque value. The cache service stores JSON in the
// "notes", "categories" and "session" slots so the client can start populated
// with no connectivity. Writes are last-write-wins upserts; there is no
// expiry.
//
//	repo := slots.NewSQLiteRepository(db)
//	_ = repo.Set(ctx, "notes", payload)
//	v, _ := repo.Get(ctx, "notes") // nil, nil when the slot is empty
package slots
