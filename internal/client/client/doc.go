// Package client holds the transport side of the notekeeper client.
//
// It provides:
//  1. AuthProvider, the contract for the external auth service, and
//     AuthClient, its GoTrue-compatible HTTP implementation.
//  2. Database bootstrap: OpenCache for the local SQLite cache and
//     OpenRemote/MigrateRemote for the remote Postgres store, both migrated
//     with embedded goose migrations.
//  3. Prober, which tells the network monitor whether the backend is
//     reachable.
//
// Transport failures are reported as ErrUnavailable and rejected credentials
// as ErrUnauthorized; match them with errors.Is.
package client
