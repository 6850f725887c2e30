package registry

import (
	"context"
	"time"
)

// Store persists domains keyed by their ASCII form.
type Store interface {
	// Insert returns ErrAlreadyRegistered when the ASCII name is taken.
	Insert(ctx context.Context, d *Domain) error
	// Get returns ErrNotFound when the ASCII name is unknown.
	Get(ctx context.Context, asciiName string) (*Domain, error)
	// List returns domains oldest first.
	List(ctx context.Context, limit, offset int) ([]*Domain, error)
	// Delete returns ErrNotFound when the ASCII name is unknown.
	Delete(ctx context.Context, asciiName string) error
	// MarkVerified records the verification time. It returns ErrNotFound when
	// the ASCII name is unknown.
	MarkVerified(ctx context.Context, asciiName string, at time.Time) error
}
