package idna

import (
	"fmt"

	"github.com/dmitrymomot/idnakit/pkg/uts46"
)

// Default configuration, matching the IDNA profile of the WHATWG URL standard.
const (
	DefaultASCIIDenyList = uts46.DenyURL
	DefaultHyphens       = uts46.HyphensAllow
	DefaultDNSLength     = uts46.DNSLengthVerify
)

// Config is a fully resolved set of validation settings.
type Config struct {
	ASCIIDenyList uts46.ASCIIDenyList
	Hyphens       uts46.Hyphens
	DNSLength     uts46.DNSLength
}

// DefaultConfig returns the URL-compatible defaults.
func DefaultConfig() Config {
	return Config{
		ASCIIDenyList: DefaultASCIIDenyList,
		Hyphens:       DefaultHyphens,
		DNSLength:     DefaultDNSLength,
	}
}

func (c Config) String() string {
	return c.ASCIIDenyList.String() + "|" + c.Hyphens.String() + "|" + c.DNSLength.String()
}

// ParseASCIIDenyList parses "empty", "std3" or "url".
// Matching is exact: no case folding, no trimming.
func ParseASCIIDenyList(token string) (uts46.ASCIIDenyList, error) {
	switch token {
	case "empty":
		return uts46.DenyEmpty, nil
	case "std3":
		return uts46.DenySTD3, nil
	case "url":
		return uts46.DenyURL, nil
	}
	return 0, invalidToken("ascii deny list", token)
}

// ParseHyphens parses "allow", "check_first_last" or "check".
func ParseHyphens(token string) (uts46.Hyphens, error) {
	switch token {
	case "allow":
		return uts46.HyphensAllow, nil
	case "check_first_last":
		return uts46.HyphensCheckFirstLast, nil
	case "check":
		return uts46.HyphensCheck, nil
	}
	return 0, invalidToken("hyphens", token)
}

// ParseDNSLength parses "ignore", "verify_allow_root_dot" or "verify".
func ParseDNSLength(token string) (uts46.DNSLength, error) {
	switch token {
	case "ignore":
		return uts46.DNSLengthIgnore, nil
	case "verify_allow_root_dot":
		return uts46.DNSLengthVerifyAllowRootDot, nil
	case "verify":
		return uts46.DNSLengthVerify, nil
	}
	return 0, invalidToken("dns length", token)
}

func invalidToken(axis, token string) error {
	return fmt.Errorf("%w: unknown %s %q", ErrInvalidConfiguration, axis, token)
}
