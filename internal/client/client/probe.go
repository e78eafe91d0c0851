package client

import (
	"context"
	"fmt"
)

// Pinger is satisfied by *sql.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Prober reports whether both the row store and the auth service answer.
type Prober struct {
	db   Pinger
	auth AuthProvider
}

func NewProber(db Pinger, auth AuthProvider) *Prober {
	return &Prober{db: db, auth: auth}
}

func (p *Prober) Probe(ctx context.Context) error {
	if p.db != nil {
		if err := p.db.PingContext(ctx); err != nil {
			return fmt.Errorf("%w: store: %v", ErrUnavailable, err)
		}
	}
	if p.auth != nil {
		if err := p.auth.Health(ctx); err != nil {
			return fmt.Errorf("auth: %w", err)
		}
	}
	return nil
}
