// Package common defines sentinel errors and small helpers shared by the
// notekeeper client packages. Callers should use errors.Is to match these
// values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")

	// Policy errors.
	ErrOffline      = errors.New("offline")
	ErrUnauthorized = errors.New("unauthorized")
	ErrBusy         = errors.New("operation in progress")

	// Validation errors, rejected before any remote call.
	ErrValidation      = errors.New("validation error")
	ErrWrongPIN        = errors.New("wrong pin")
	ErrLocked          = errors.New("note is locked")
	ErrDefaultCategory = errors.New("default category")
	ErrNoHistory       = errors.New("no history found")
)

// UserError pairs a sentinel with the exact text shown to the user.
type UserError struct {
	Kind    error
	Message string
}

func (e *UserError) Error() string { return e.Message }

func (e *UserError) Unwrap() error { return e.Kind }

// NewUserError returns a *UserError matching kind via errors.Is.
func NewUserError(kind error, msg string) error {
	return &UserError{Kind: kind, Message: msg}
}

// Message returns the user-facing text for err. A *UserError anywhere in the
// chain wins; otherwise the full error text is used.
func Message(err error) string {
	if err == nil {
		return ""
	}
	var ue *UserError
	if errors.As(err, &ue) {
		return ue.Message
	}
	return err.Error()
}
