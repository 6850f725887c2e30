package uts46

import "strconv"

// ASCIIDenyList selects the ASCII code points rejected in a label.
type ASCIIDenyList uint8

const (
	// DenyEmpty rejects nothing.
	DenyEmpty ASCIIDenyList = iota
	// DenySTD3 rejects everything outside the STD3 (LDH) repertoire.
	DenySTD3
	// DenyURL rejects the WHATWG URL forbidden domain code points.
	DenyURL
)

// ASCIIDenyLists returns every deny list variant.
func ASCIIDenyLists() []ASCIIDenyList {
	return []ASCIIDenyList{DenyEmpty, DenySTD3, DenyURL}
}

func (d ASCIIDenyList) String() string {
	switch d {
	case DenyEmpty:
		return "empty"
	case DenySTD3:
		return "std3"
	case DenyURL:
		return "url"
	}
	return "ASCIIDenyList(" + strconv.Itoa(int(d)) + ")"
}

// Denies reports whether c is rejected by the deny list.
// Non-ASCII runes are never denied.
func (d ASCIIDenyList) Denies(c rune) bool {
	if c >= 0x80 {
		return false
	}
	switch d {
	case DenySTD3:
		return isGlyphless(c) || isSTD3Punct(c)
	case DenyURL:
		return isGlyphless(c) || isURLForbidden(c)
	}
	return false
}

// Hyphens selects how hyphen positions in a label are validated.
type Hyphens uint8

const (
	// HyphensAllow performs no hyphen checks.
	HyphensAllow Hyphens = iota
	// HyphensCheckFirstLast rejects a leading or trailing hyphen.
	HyphensCheckFirstLast
	// HyphensCheck also rejects hyphens in both the third and fourth positions.
	HyphensCheck
)

// HyphensValues returns every hyphen policy variant.
func HyphensValues() []Hyphens {
	return []Hyphens{HyphensAllow, HyphensCheckFirstLast, HyphensCheck}
}

func (h Hyphens) String() string {
	switch h {
	case HyphensAllow:
		return "allow"
	case HyphensCheckFirstLast:
		return "check_first_last"
	case HyphensCheck:
		return "check"
	}
	return "Hyphens(" + strconv.Itoa(int(h)) + ")"
}

// DNSLength selects the length validation applied to ASCII output.
type DNSLength uint8

const (
	// DNSLengthIgnore enforces no length limits.
	DNSLengthIgnore DNSLength = iota
	// DNSLengthVerifyAllowRootDot enforces limits but tolerates one trailing dot.
	DNSLengthVerifyAllowRootDot
	// DNSLengthVerify enforces limits strictly.
	DNSLengthVerify
)

// DNSLengths returns every DNS length policy variant.
func DNSLengths() []DNSLength {
	return []DNSLength{DNSLengthIgnore, DNSLengthVerifyAllowRootDot, DNSLengthVerify}
}

func (l DNSLength) String() string {
	switch l {
	case DNSLengthIgnore:
		return "ignore"
	case DNSLengthVerifyAllowRootDot:
		return "verify_allow_root_dot"
	case DNSLengthVerify:
		return "verify"
	}
	return "DNSLength(" + strconv.Itoa(int(l)) + ")"
}

// isGlyphless reports C0 controls, space and DEL.
func isGlyphless(c rune) bool {
	return c <= 0x20 || c == 0x7F
}

func isURLForbidden(c rune) bool {
	switch c {
	case '%', '#', '/', ':', '<', '>', '?', '@', '[', '\\', ']', '^', '|':
		return true
	}
	return false
}

func isSTD3Punct(c rune) bool {
	switch {
	case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		return false
	case c == '-', c == '.':
		return false
	}
	return c > 0x20 && c < 0x7F
}
