package uts46

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors reported through LabelError.
var (
	// ErrInvalidLabel is returned when a label fails UTS #46 mapping or
	// validation: invalid Punycode, disallowed code points, joiner or bidi rules.
	ErrInvalidLabel = errors.New("uts46: invalid label")

	// ErrDeniedCodePoint is returned when a label contains a code point
	// rejected by the active ASCII deny list.
	ErrDeniedCodePoint = errors.New("uts46: code point rejected by ascii deny list")

	// ErrHyphenPosition is returned when a label violates the active hyphen policy.
	ErrHyphenPosition = errors.New("uts46: hyphen in disallowed position")

	// ErrDNSLength is returned when the ASCII name violates the active DNS length policy.
	ErrDNSLength = errors.New("uts46: dns length limit exceeded")
)

// LabelError describes a violation found in one label, or in the whole
// name when Index is -1.
type LabelError struct {
	Err    error
	Label  string
	Detail string
	Index  int
}

func (e *LabelError) Error() string {
	var b strings.Builder
	b.WriteString(e.Err.Error())
	if e.Index >= 0 {
		fmt.Fprintf(&b, " (label %d %q)", e.Index, e.Label)
	} else if e.Label != "" {
		fmt.Fprintf(&b, " (%q)", e.Label)
	}
	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}
	return b.String()
}

func (e *LabelError) Unwrap() error {
	return e.Err
}

// Verdict is the conformance verdict of a Unicode conversion.
// The zero value is a clean verdict.
type Verdict struct {
	errs []*LabelError
}

// OK reports whether the conversion produced no errors.
func (v Verdict) OK() bool {
	return len(v.errs) == 0
}

// Errors returns the recorded violations in label order.
func (v Verdict) Errors() []*LabelError {
	return v.errs
}

// Err returns nil for a clean verdict, the single violation when there is
// one, and all violations joined otherwise.
func (v Verdict) Err() error {
	switch len(v.errs) {
	case 0:
		return nil
	case 1:
		return v.errs[0]
	}
	errs := make([]error, len(v.errs))
	for i, e := range v.errs {
		errs[i] = e
	}
	return errors.Join(errs...)
}

func (v *Verdict) add(e *LabelError) {
	v.errs = append(v.errs, e)
}
