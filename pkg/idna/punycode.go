package idna

import "encoding/binary"

const (
	// punycodePrefix is "XN--" packed little-endian.
	punycodePrefix uint32 = '-'<<24 | '-'<<16 | 'N'<<8 | 'X'

	// punycodePrefixMask clears the ASCII case bit of the two letters and
	// keeps both hyphens fully significant.
	punycodePrefixMask uint32 = 0xFF<<24 | 0xFF<<16 | 0xDF<<8 | 0xDF
)

// IsASCII reports whether every byte of s is in the 0-127 range.
func IsASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= 0x80 {
			return false
		}
	}
	return true
}

// IsPunycode reports whether b starts with the ACE prefix "xn--" in any
// letter case.
//
// This is only a hint: what follows the prefix is not inspected, so invalid
// Punycode, or even non-ASCII bytes, still report true.
func IsPunycode(b []byte) bool {
	if len(b) < 4 {
		return false
	}
	return binary.LittleEndian.Uint32(b)&punycodePrefixMask == punycodePrefix
}
