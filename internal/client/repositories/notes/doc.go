// Package notes reads and writes the remote notes table.
//
// Every query is scoped by the owning user id in addition to the row id.
// Listings are ordered pinned first, then newest created first. Updates that
// match no row report common.ErrNotFound.
package notes
