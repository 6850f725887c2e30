package uts46

import (
	"fmt"
	"slices"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/idna"
	"golang.org/x/text/secure/bidirule"
	"golang.org/x/text/unicode/bidi"
	"golang.org/x/text/unicode/norm"
)

const (
	maxLabelLength = 63
	maxNameLength  = 253

	acePrefix = "xn--"
)

// Engine converts domain names between their Unicode and ASCII forms.
type Engine struct {
	profile *idna.Profile
}

// New returns an engine using non-transitional UTS #46 mapping with joiner
// and bidi checks enabled. STD3 rules, hyphen checks and DNS length checks
// are disabled on the underlying profile and applied per call instead.
func New() *Engine {
	return &Engine{
		profile: idna.New(
			idna.MapForLookup(),
			idna.Transitional(false),
			idna.StrictDomainName(false),
			idna.CheckHyphens(false),
			idna.CheckJoiners(true),
			idna.VerifyDNSLength(false),
			idna.BidiRule(),
		),
	}
}

// ToASCII converts input to its ASCII form, encoding non-ASCII labels with
// Punycode. It returns a *LabelError on the first deny list, hyphen, length
// or UTS #46 violation.
func (e *Engine) ToASCII(input []byte, deny ASCIIDenyList, hyphens Hyphens, dns DNSLength) ([]byte, error) {
	unicode, v := e.ToUnicode(input, deny, hyphens)
	if !v.OK() {
		return nil, v.errs[0]
	}

	ascii, err := e.profile.ToASCII(unicode)
	if err != nil {
		return nil, &LabelError{Err: ErrInvalidLabel, Label: unicode, Index: -1, Detail: err.Error()}
	}

	if err := verifyDNSLength(ascii, dns); err != nil {
		return nil, err
	}

	return []byte(ascii), nil
}

// ToUnicode converts input to its Unicode form. It always returns a string:
// labels that cannot be mapped or decoded are replaced by U+FFFD, as are
// denied code points and misplaced hyphens. The verdict records every
// violation.
func (e *Engine) ToUnicode(input []byte, deny ASCIIDenyList, hyphens Hyphens) (string, Verdict) {
	var v Verdict

	mapped, err := e.profile.ToUnicode(string(input))

	labels := strings.Split(mapped, ".")
	decoded := slices.Clone(labels)
	ace := aceLabels(input, len(labels))
	isolated := false

	for i, label := range labels {
		// The profile reports the first failure for the whole name; find the
		// labels responsible by running them through the profile one by one.
		// A valid mapped label is a fixed point of the profile.
		if err != nil && label != "" {
			again, lerr := e.profile.ToUnicode(label)
			if lerr != nil || again != label {
				detail := "label is not in mapped form"
				if lerr != nil {
					detail = lerr.Error()
				}
				v.add(&LabelError{Err: ErrInvalidLabel, Label: label, Index: i, Detail: detail})
				labels[i] = string(utf8.RuneError)
				isolated = true
				continue
			}
		}

		if ace[i] && !hasNonASCII(label) {
			v.add(&LabelError{
				Err:    ErrInvalidLabel,
				Label:  label,
				Index:  i,
				Detail: "punycode decodes to an empty or ASCII-only label",
			})
			labels[i] = string(utf8.RuneError)
			continue
		}

		if label == "" {
			continue
		}
		labels[i] = checkLabel(&v, i, label, deny, hyphens)
	}

	// Failures that span labels, such as the bidi rule.
	if err != nil && !isolated {
		for _, i := range crossLabelViolations(decoded) {
			v.add(&LabelError{Err: ErrInvalidLabel, Label: decoded[i], Index: i, Detail: err.Error()})
			labels[i] = string(utf8.RuneError)
		}
	}

	return strings.Join(labels, "."), v
}

// aceLabels reports, for each of the n mapped labels, whether its source
// label carried the ACE prefix before decoding. The source is folded with
// NFKC and lowercased, which is how the prefix survives mapping. Labels are
// aligned from the right when mapping changed the label count.
func aceLabels(input []byte, n int) []bool {
	folded := strings.ToLower(norm.NFKC.String(string(input)))
	folded = strings.ReplaceAll(folded, "\u3002", ".")
	src := strings.Split(folded, ".")

	ace := make([]bool, n)
	off := len(src) - n
	for i := range ace {
		if j := i + off; j >= 0 && j < len(src) {
			ace[i] = strings.HasPrefix(src[j], acePrefix)
		}
	}
	return ace
}

// crossLabelViolations returns the labels to blame for a failure that no
// single label reproduces. In a bidi domain name those are the labels that
// break the bidi rule, or failing that the right-to-left labels. Otherwise
// every non-empty label is blamed.
func crossLabelViolations(labels []string) []int {
	var rtl, all []int
	for i, label := range labels {
		if label == "" {
			continue
		}
		all = append(all, i)
		if bidirule.DirectionString(label) == bidi.RightToLeft {
			rtl = append(rtl, i)
		}
	}
	if len(rtl) == 0 {
		return all
	}

	var bad []int
	for _, i := range all {
		if !bidirule.ValidString(labels[i]) {
			bad = append(bad, i)
		}
	}
	if len(bad) == 0 {
		return rtl
	}
	return bad
}

func hasNonASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return true
		}
	}
	return false
}

// checkLabel applies the hyphen policy and the deny list to a mapped label
// and returns it with every offending position replaced by U+FFFD.
func checkLabel(v *Verdict, i int, label string, deny ASCIIDenyList, hyphens Hyphens) string {
	out := label

	if bad := hyphenViolations(label, hyphens); len(bad) > 0 {
		v.add(&LabelError{
			Err:    ErrHyphenPosition,
			Label:  label,
			Index:  i,
			Detail: fmt.Sprintf("positions %v", bad),
		})
		runes := []rune(out)
		for _, pos := range bad {
			runes[pos] = utf8.RuneError
		}
		out = string(runes)
	}

	if deny == DenyEmpty {
		return out
	}
	if idx := strings.IndexFunc(out, deny.Denies); idx >= 0 {
		r, _ := utf8.DecodeRuneInString(out[idx:])
		v.add(&LabelError{
			Err:    ErrDeniedCodePoint,
			Label:  label,
			Index:  i,
			Detail: fmt.Sprintf("%U rejected by %s", r, deny),
		})
		out = strings.Map(func(r rune) rune {
			if deny.Denies(r) {
				return utf8.RuneError
			}
			return r
		}, out)
	}

	return out
}

// hyphenViolations returns the rune positions of hyphens that break the policy.
func hyphenViolations(label string, hyphens Hyphens) []int {
	if hyphens == HyphensAllow {
		return nil
	}

	runes := []rune(label)
	n := len(runes)
	var bad []int

	if hyphens == HyphensCheck && n >= 4 && runes[2] == '-' && runes[3] == '-' {
		bad = append(bad, 2, 3)
	}
	if runes[0] == '-' {
		bad = append(bad, 0)
	}
	if n > 1 && runes[n-1] == '-' && !slices.Contains(bad, n-1) {
		bad = append(bad, n-1)
	}

	return bad
}

// verifyDNSLength enforces the label and name limits of RFC 1035 on an
// ASCII name.
func verifyDNSLength(name string, mode DNSLength) error {
	if mode == DNSLengthIgnore {
		return nil
	}

	trimmed := name
	if mode == DNSLengthVerifyAllowRootDot {
		trimmed = strings.TrimSuffix(name, ".")
	}

	if trimmed == "" {
		return &LabelError{Err: ErrDNSLength, Label: name, Index: -1, Detail: "empty domain name"}
	}
	if len(trimmed) > maxNameLength {
		return &LabelError{
			Err:    ErrDNSLength,
			Label:  name,
			Index:  -1,
			Detail: fmt.Sprintf("name is %d bytes, limit is %d", len(trimmed), maxNameLength),
		}
	}

	for i, label := range strings.Split(trimmed, ".") {
		switch {
		case label == "":
			return &LabelError{Err: ErrDNSLength, Label: label, Index: i, Detail: "empty label"}
		case len(label) > maxLabelLength:
			return &LabelError{
				Err:    ErrDNSLength,
				Label:  label,
				Index:  i,
				Detail: fmt.Sprintf("label is %d bytes, limit is %d", len(label), maxLabelLength),
			}
		}
	}

	return nil
}
