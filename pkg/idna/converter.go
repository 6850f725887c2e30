package idna

import (
	"fmt"
	"sync"
	"unicode/utf8"

	"github.com/dmitrymomot/idnakit/pkg/uts46"
)

// Engine is the UTS #46 processing engine used by Converter.
// *uts46.Engine implements it.
type Engine interface {
	ToASCII(input []byte, deny uts46.ASCIIDenyList, hyphens uts46.Hyphens, dns uts46.DNSLength) ([]byte, error)
	ToUnicode(input []byte, deny uts46.ASCIIDenyList, hyphens uts46.Hyphens) (string, uts46.Verdict)
}

// Converter resolves call options, runs the engine and maps its results to
// the error taxonomy of this package. It is immutable and safe for
// concurrent use.
type Converter struct {
	engine   Engine
	defaults Config
}

// New creates a converter.
//
// Example:
//
//	conv := idna.New()
//	ascii, err := conv.ToASCII("straße.de")
//	// ascii == "xn--strae-oqa.de"
//
//	ascii, err = conv.ToASCII("a_b.example", idna.WithASCIIDenyList("std3"))
//	// errors.Is(err, idna.ErrConstraintViolation)
func New(opts ...ConverterOption) *Converter {
	c := &Converter{
		engine:   uts46.New(),
		defaults: DefaultConfig(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Defaults returns the settings used for omitted options.
func (c *Converter) Defaults() Config {
	return c.defaults
}

// Resolve parses the supplied tokens over the converter defaults.
// Every supplied token is validated, including a DNS length token passed to
// a Unicode conversion.
func (c *Converter) Resolve(opts ...Option) (Config, error) {
	var o callOptions
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	cfg := c.defaults
	var err error

	if o.asciiDenyList != nil {
		if cfg.ASCIIDenyList, err = ParseASCIIDenyList(*o.asciiDenyList); err != nil {
			return Config{}, err
		}
	}
	if o.hyphens != nil {
		if cfg.Hyphens, err = ParseHyphens(*o.hyphens); err != nil {
			return Config{}, err
		}
	}
	if o.dnsLength != nil {
		if cfg.DNSLength, err = ParseDNSLength(*o.dnsLength); err != nil {
			return Config{}, err
		}
	}

	return cfg, nil
}

// ToASCII converts input to its ASCII form.
//
// Defaults: ascii deny list "url", hyphens "allow", dns length "verify".
// Returns ErrInvalidConfiguration for an unknown token, ErrInputNotWellFormed
// for invalid UTF-8 and ErrConstraintViolation when the engine rejects the
// input.
func (c *Converter) ToASCII(input string, opts ...Option) (string, error) {
	cfg, err := c.Resolve(opts...)
	if err != nil {
		return "", err
	}
	if !utf8.ValidString(input) {
		return "", ErrInputNotWellFormed
	}

	out, err := c.engine.ToASCII([]byte(input), cfg.ASCIIDenyList, cfg.Hyphens, cfg.DNSLength)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrConstraintViolation, err)
	}
	return string(out), nil
}

// ToUnicode converts input to its Unicode form.
//
// Defaults: ascii deny list "url", hyphens "allow".
// Returns ErrInvalidConfiguration for an unknown token, ErrInputNotWellFormed
// for invalid UTF-8 and ErrConversion when the engine reports any error.
func (c *Converter) ToUnicode(input string, opts ...Option) (string, error) {
	cfg, err := c.Resolve(opts...)
	if err != nil {
		return "", err
	}
	if !utf8.ValidString(input) {
		return "", ErrInputNotWellFormed
	}

	out, verdict := c.engine.ToUnicode([]byte(input), cfg.ASCIIDenyList, cfg.Hyphens)
	if err := verdict.Err(); err != nil {
		return "", fmt.Errorf("%w: %w", ErrConversion, err)
	}
	return out, nil
}

// ToUnicodeLossy converts input to its Unicode form, substituting U+FFFD at
// error positions instead of failing. It only fails on an unknown token or
// on input that is not valid UTF-8.
func (c *Converter) ToUnicodeLossy(input string, opts ...Option) (string, error) {
	cfg, err := c.Resolve(opts...)
	if err != nil {
		return "", err
	}
	if !utf8.ValidString(input) {
		return "", ErrInputNotWellFormed
	}

	out, _ := c.engine.ToUnicode([]byte(input), cfg.ASCIIDenyList, cfg.Hyphens)
	return out, nil
}

var defaultConverter = sync.OnceValue(func() *Converter {
	return New()
})

// Default returns the process-wide converter with URL-compatible defaults.
func Default() *Converter {
	return defaultConverter()
}

// ToASCII converts input using the default converter.
func ToASCII(input string, opts ...Option) (string, error) {
	return Default().ToASCII(input, opts...)
}

// ToUnicode converts input using the default converter.
func ToUnicode(input string, opts ...Option) (string, error) {
	return Default().ToUnicode(input, opts...)
}

// ToUnicodeLossy converts input using the default converter.
func ToUnicodeLossy(input string, opts ...Option) (string, error) {
	return Default().ToUnicodeLossy(input, opts...)
}
