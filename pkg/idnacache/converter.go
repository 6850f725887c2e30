package idnacache

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/dmitrymomot/idnakit/pkg/idna"
)

// Operation names used in cache keys.
const (
	OpToASCII        = "to_ascii"
	OpToUnicode      = "to_unicode"
	OpToUnicodeLossy = "to_unicode_lossy"
)

// Option configures a caching Converter.
type Option func(*Converter)

// WithTTL sets the expiration of cached results. Zero uses the store default.
func WithTTL(d time.Duration) Option {
	return func(c *Converter) {
		c.ttl = d
	}
}

// WithLogger sets the logger for store failures.
// Default: discard.
func WithLogger(l *slog.Logger) Option {
	return func(c *Converter) {
		if l != nil {
			c.logger = l
		}
	}
}

// Stats counts store lookups.
type Stats struct {
	Hits   uint64 `json:"hits"`
	Misses uint64 `json:"misses"`
}

// Converter memoizes successful conversions of an idna.Converter.
// Failed conversions are never stored. Concurrent misses for the same key
// run the conversion once.
type Converter struct {
	conv   *idna.Converter
	store  Store
	group  singleflight.Group
	ttl    time.Duration
	logger *slog.Logger

	hits   atomic.Uint64
	misses atomic.Uint64
}

// New wraps conv with store. A nil store disables caching; a nil conv uses
// idna.Default().
func New(conv *idna.Converter, store Store, opts ...Option) *Converter {
	if conv == nil {
		conv = idna.Default()
	}
	c := &Converter{
		conv:   conv,
		store:  store,
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Unwrap returns the underlying converter.
func (c *Converter) Unwrap() *idna.Converter {
	return c.conv
}

// Enabled reports whether a store is configured.
func (c *Converter) Enabled() bool {
	return c.store != nil
}

// Stats returns a snapshot of the hit and miss counters.
func (c *Converter) Stats() Stats {
	return Stats{Hits: c.hits.Load(), Misses: c.misses.Load()}
}

func (c *Converter) ToASCII(ctx context.Context, input string, opts ...idna.Option) (string, error) {
	return c.do(ctx, OpToASCII, input, opts, c.conv.ToASCII)
}

func (c *Converter) ToUnicode(ctx context.Context, input string, opts ...idna.Option) (string, error) {
	return c.do(ctx, OpToUnicode, input, opts, c.conv.ToUnicode)
}

func (c *Converter) ToUnicodeLossy(ctx context.Context, input string, opts ...idna.Option) (string, error) {
	return c.do(ctx, OpToUnicodeLossy, input, opts, c.conv.ToUnicodeLossy)
}

// Key builds the store key for a conversion with resolved settings.
func Key(op string, cfg idna.Config, input string) string {
	return op + "|" + cfg.String() + "|" + input
}

func (c *Converter) do(
	ctx context.Context,
	op, input string,
	opts []idna.Option,
	convert func(string, ...idna.Option) (string, error),
) (string, error) {
	// Resolve first so the key reflects the effective settings and bad tokens
	// never reach the store.
	cfg, err := c.conv.Resolve(opts...)
	if err != nil {
		return "", err
	}
	if c.store == nil {
		return convert(input, idna.WithConfig(cfg))
	}

	key := Key(op, cfg, input)

	v, err := c.store.Get(ctx, key)
	if err == nil {
		c.hits.Add(1)
		return v, nil
	}
	if !errors.Is(err, ErrNotFound) {
		c.logger.WarnContext(ctx, "idna cache lookup failed",
			slog.String("op", op),
			slog.String("error", err.Error()),
		)
	}
	c.misses.Add(1)

	res, err, _ := c.group.Do(key, func() (any, error) {
		out, err := convert(input, idna.WithConfig(cfg))
		if err != nil {
			return "", err
		}
		if err := c.store.Set(ctx, key, out, c.ttl); err != nil {
			c.logger.WarnContext(ctx, "idna cache store failed",
				slog.String("op", op),
				slog.String("error", err.Error()),
			)
		}
		return out, nil
	})
	if err != nil {
		return "", err
	}
	return res.(string), nil
}

// Healthcheck returns a closure that verifies the store answers a lookup.
// A miss counts as healthy. Compatible with health.CheckFunc.
func (c *Converter) Healthcheck() func(context.Context) error {
	return func(ctx context.Context) error {
		if c.store == nil {
			return nil
		}
		_, err := c.store.Get(ctx, "healthcheck")
		if err == nil || errors.Is(err, ErrNotFound) {
			return nil
		}
		return err
	}
}
