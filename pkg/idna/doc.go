// Package idna converts domain names between their Unicode and ASCII
// (Punycode) forms the way a WHATWG URL parser does, with three independently
// configurable validation axes.
//
// # Operations
//
//   - [IsASCII] reports whether every byte of a string is ASCII.
//   - [IsPunycode] is a constant-time hint that a byte slice starts with "xn--".
//   - [Converter.ToASCII] encodes a name to ASCII; fails on any violation.
//   - [Converter.ToUnicode] decodes a name to Unicode; fails on any violation.
//   - [Converter.ToUnicodeLossy] decodes a name to Unicode, substituting
//     U+FFFD at error positions instead of failing.
//
// The package-level ToASCII, ToUnicode and ToUnicodeLossy use a process-wide
// [Converter] created on first use.
//
// # Configuration
//
// Each conversion accepts string tokens, so values can come straight from a
// query string, a flag or a config file:
//
//	ascii, err := idna.ToASCII("straße.de",
//	    idna.WithASCIIDenyList("std3"),
//	    idna.WithHyphens("check"),
//	    idna.WithDNSLength("verify_allow_root_dot"),
//	)
//
// Token vocabularies are exact and case-sensitive:
//
//   - ascii deny list: "empty", "std3", "url" (default "url")
//   - hyphens: "allow", "check_first_last", "check" (default "allow")
//   - dns length: "ignore", "verify_allow_root_dot", "verify" (default "verify")
//
// An omitted option takes the default. A supplied option, including the empty
// string, must be in the vocabulary. The DNS length axis only affects
// ToASCII.
//
// # Error Handling
//
//   - [ErrInvalidConfiguration]: unknown token; reported before conversion
//   - [ErrInputNotWellFormed]: input is not valid UTF-8
//   - [ErrConstraintViolation]: ToASCII rejected the input
//   - [ErrConversion]: ToUnicode rejected the input
//
// Errors wrap the underlying [uts46.LabelError], so callers can use
// errors.Is with both the sentinels above and the uts46 sentinels.
package idna
