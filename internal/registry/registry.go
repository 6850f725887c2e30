package registry

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/idnakit/pkg/dnsverify"
	"github.com/dmitrymomot/idnakit/pkg/idna"
)

const (
	DefaultListLimit = 50
	MaxListLimit     = 500
)

// Converter normalizes names. *idnacache.Converter implements it.
type Converter interface {
	ToASCII(ctx context.Context, input string, opts ...idna.Option) (string, error)
	ToUnicode(ctx context.Context, input string, opts ...idna.Option) (string, error)
}

// Verifier proves domain ownership. *dnsverify.Verifier implements it.
type Verifier interface {
	RecordName(domain string) (string, error)
	Verify(ctx context.Context, domain, token string) error
}

// Option configures a Registry.
type Option func(*Registry)

// WithLogger sets the logger for registry changes.
func WithLogger(l *slog.Logger) Option {
	return func(r *Registry) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithVerifier replaces the DNS ownership verifier.
// Default: dnsverify.New().
func WithVerifier(v Verifier) Option {
	return func(r *Registry) {
		if v != nil {
			r.verifier = v
		}
	}
}

// Registry stores domain names normalized to their ASCII form, so every
// spelling that converts to the same ASCII name maps to one entry.
type Registry struct {
	conv     Converter
	store    Store
	verifier Verifier
	logger   *slog.Logger
}

func New(conv Converter, store Store, opts ...Option) *Registry {
	r := &Registry{
		conv:     conv,
		store:    store,
		verifier: dnsverify.New(),
		logger:   slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register converts name to ASCII with opts, derives the Unicode form from
// the ASCII one and stores both. Conversion errors are returned unchanged.
func (r *Registry) Register(ctx context.Context, name string, opts ...idna.Option) (*Domain, error) {
	ascii, err := r.normalize(ctx, name, opts)
	if err != nil {
		return nil, err
	}
	unicode, err := r.conv.ToUnicode(ctx, ascii, opts...)
	if err != nil {
		return nil, err
	}

	d := &Domain{
		ID:          uuid.New(),
		ASCIIName:   ascii,
		UnicodeName: unicode,
	}
	if err := r.store.Insert(ctx, d); err != nil {
		return nil, err
	}

	r.logger.InfoContext(ctx, "domain registered",
		slog.String("id", d.ID.String()),
		slog.String("ascii_name", d.ASCIIName),
	)
	return d, nil
}

// Lookup finds the domain whose ASCII form equals the ASCII form of name.
func (r *Registry) Lookup(ctx context.Context, name string, opts ...idna.Option) (*Domain, error) {
	ascii, err := r.normalize(ctx, name, opts)
	if err != nil {
		return nil, err
	}
	return r.store.Get(ctx, ascii)
}

// List returns up to limit domains, oldest first. A non-positive limit
// means DefaultListLimit; limits above MaxListLimit are capped.
func (r *Registry) List(ctx context.Context, limit, offset int) ([]*Domain, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	return r.store.List(ctx, min(limit, MaxListLimit), max(offset, 0))
}

// Delete removes the domain matching name.
func (r *Registry) Delete(ctx context.Context, name string, opts ...idna.Option) error {
	ascii, err := r.normalize(ctx, name, opts)
	if err != nil {
		return err
	}
	if err := r.store.Delete(ctx, ascii); err != nil {
		return err
	}

	r.logger.InfoContext(ctx, "domain deleted", slog.String("ascii_name", ascii))
	return nil
}

// Challenge returns the TXT record the owner of d must publish: its name and
// the token it must contain.
func (r *Registry) Challenge(d *Domain) (record, token string, err error) {
	record, err = r.verifier.RecordName(d.ASCIIName)
	if err != nil {
		return "", "", err
	}
	return record, d.ID.String(), nil
}

// Verify checks the ownership challenge of the domain matching name and
// records the result. A verified domain is returned as is.
func (r *Registry) Verify(ctx context.Context, name string, opts ...idna.Option) (*Domain, error) {
	d, err := r.Lookup(ctx, name, opts...)
	if err != nil {
		return nil, err
	}
	if d.Verified() {
		return d, nil
	}

	if err := r.verifier.Verify(ctx, d.ASCIIName, d.ID.String()); err != nil {
		r.logger.InfoContext(ctx, "domain verification failed",
			slog.String("ascii_name", d.ASCIIName),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	at := time.Now().UTC()
	if err := r.store.MarkVerified(ctx, d.ASCIIName, at); err != nil {
		return nil, err
	}
	d.VerifiedAt = &at

	r.logger.InfoContext(ctx, "domain verified", slog.String("ascii_name", d.ASCIIName))
	return d, nil
}

func (r *Registry) normalize(ctx context.Context, name string, opts []idna.Option) (string, error) {
	if name == "" {
		return "", ErrEmptyName
	}
	return r.conv.ToASCII(ctx, name, opts...)
}
