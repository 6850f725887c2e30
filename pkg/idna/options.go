package idna

import "github.com/dmitrymomot/idnakit/pkg/uts46"

// Option supplies a configuration token for a single conversion call.
// Omitted options fall back to the converter defaults.
type Option func(*callOptions)

type callOptions struct {
	asciiDenyList *string
	hyphens       *string
	dnsLength     *string
}

// WithASCIIDenyList sets the deny list token: "empty", "std3" or "url".
func WithASCIIDenyList(token string) Option {
	return func(o *callOptions) {
		o.asciiDenyList = &token
	}
}

// WithHyphens sets the hyphen policy token: "allow", "check_first_last" or "check".
func WithHyphens(token string) Option {
	return func(o *callOptions) {
		o.hyphens = &token
	}
}

// WithDNSLength sets the DNS length token: "ignore", "verify_allow_root_dot"
// or "verify". Unicode conversions validate the token but do not use it.
func WithDNSLength(token string) Option {
	return func(o *callOptions) {
		o.dnsLength = &token
	}
}

// WithConfig sets all three axes from an already resolved Config.
func WithConfig(cfg Config) Option {
	return func(o *callOptions) {
		WithASCIIDenyList(cfg.ASCIIDenyList.String())(o)
		WithHyphens(cfg.Hyphens.String())(o)
		WithDNSLength(cfg.DNSLength.String())(o)
	}
}

// ConverterOption configures a Converter.
type ConverterOption func(*Converter)

// WithEngine replaces the UTS #46 engine.
func WithEngine(e Engine) ConverterOption {
	return func(c *Converter) {
		if e != nil {
			c.engine = e
		}
	}
}

// WithDefaults sets the settings used for omitted call options.
// Default: url, allow, verify.
func WithDefaults(deny uts46.ASCIIDenyList, hyphens uts46.Hyphens, dns uts46.DNSLength) ConverterOption {
	return func(c *Converter) {
		c.defaults = Config{ASCIIDenyList: deny, Hyphens: hyphens, DNSLength: dns}
	}
}
