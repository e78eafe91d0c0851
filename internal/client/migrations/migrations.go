// Package migrations embeds the goose SQL migrations for the local cache
// database (local/) and the remote note store (remote/).
package migrations

import "embed"

//go:embed local/*.sql
var Local embed.FS

//go:embed remote/*.sql
var Remote embed.FS
