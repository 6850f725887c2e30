package dnsverify

import (
	"context"
	"errors"
	"fmt"
	"net"
	"slices"
	"strings"

	"github.com/dmitrymomot/idnakit/pkg/idna"
)

var (
	ErrDNSLookupFailed   = errors.New("dnsverify: dns lookup failed")
	ErrDomainNotVerified = errors.New("dnsverify: domain not verified")
	ErrTXTRecordNotFound = errors.New("dnsverify: txt record not found")
	ErrInvalidInput      = errors.New("dnsverify: invalid domain or token")
)

// DefaultRecordPrefix is the label prepended to the domain to form the
// queried record name.
const DefaultRecordPrefix = "_idnakit-challenge"

// Resolver looks up TXT records. *net.Resolver implements it.
type Resolver interface {
	LookupTXT(ctx context.Context, name string) ([]string, error)
}

// Option configures a Verifier.
type Option func(*Verifier)

// WithResolver replaces the system resolver.
func WithResolver(r Resolver) Option {
	return func(v *Verifier) {
		if r != nil {
			v.resolver = r
		}
	}
}

// WithRecordPrefix sets the label queried under the domain. An empty prefix
// queries the domain itself.
// Default: DefaultRecordPrefix.
func WithRecordPrefix(prefix string) Option {
	return func(v *Verifier) {
		v.prefix = strings.Trim(prefix, ".")
	}
}

// WithConverter sets the converter used for Unicode domains, so that its
// defaults apply to record names.
// Default: idna.Default().
func WithConverter(c *idna.Converter) Option {
	return func(v *Verifier) {
		if c != nil {
			v.conv = c
		}
	}
}

// Verifier checks that a domain publishes a TXT record containing a token.
type Verifier struct {
	resolver Resolver
	conv     *idna.Converter
	prefix   string
}

func New(opts ...Option) *Verifier {
	v := &Verifier{
		resolver: &net.Resolver{},
		conv:     idna.Default(),
		prefix:   DefaultRecordPrefix,
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// RecordName returns the TXT record name queried for domain. Unicode names
// are converted to their ASCII form first. ASCII names are taken as already
// normalized and only lowercased.
func (v *Verifier) RecordName(domain string) (string, error) {
	domain = strings.TrimSuffix(strings.TrimSpace(domain), ".")
	if domain == "" {
		return "", ErrInvalidInput
	}

	var ascii string
	if idna.IsASCII(domain) {
		ascii = strings.ToLower(domain)
		if slices.Contains(strings.Split(ascii, "."), "") {
			return "", fmt.Errorf("%w: empty label in %q", ErrInvalidInput, domain)
		}
	} else {
		var err error
		if ascii, err = v.conv.ToASCII(domain); err != nil {
			return "", errors.Join(ErrInvalidInput, err)
		}
	}

	if v.prefix == "" {
		return ascii, nil
	}
	return v.prefix + "." + ascii, nil
}

// Verify returns nil when a TXT record at RecordName(domain) contains token.
func (v *Verifier) Verify(ctx context.Context, domain, token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return ErrInvalidInput
	}
	name, err := v.RecordName(domain)
	if err != nil {
		return err
	}

	records, err := v.resolver.LookupTXT(ctx, name)
	if err != nil {
		var dnsErr *net.DNSError
		if errors.As(err, &dnsErr) && dnsErr.IsNotFound {
			return fmt.Errorf("%w: %s", ErrTXTRecordNotFound, name)
		}
		return fmt.Errorf("%w: %w", ErrDNSLookupFailed, err)
	}

	for _, record := range records {
		if strings.Contains(record, token) {
			return nil
		}
	}
	return fmt.Errorf("%w: no TXT record at %s contains the token", ErrDomainNotVerified, name)
}
