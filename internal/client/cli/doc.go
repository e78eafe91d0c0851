// Package cli provides the interactive notekeeper command-line client.
//
// It wires configuration, the local cache, the remote store, the auth API,
// image storage and the controller, then runs a REPL whose commands depend
// on the current view (login, forgot password, reset password or notes).
// A background watcher probes the backend and flips the client between
// online and offline; cached notes stay readable offline.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See NewApp and runREPL for details.
package cli
