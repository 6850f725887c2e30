// Package uts46 implements the UTS #46 processing engine used by the idna
// facade.
//
// Mapping, normalization, Punycode encoding and decoding, joiner and bidi
// checks are delegated to golang.org/x/net/idna. On top of that profile the
// package adds the three validation axes the x/net profile cannot express:
//
//   - [ASCIIDenyList]: which ASCII code points are rejected in labels
//     ([DenyEmpty], [DenySTD3], [DenyURL]).
//   - [Hyphens]: hyphen-position checks ([HyphensAllow],
//     [HyphensCheckFirstLast], [HyphensCheck]).
//   - [DNSLength]: label and name length checks for ASCII output
//     ([DNSLengthIgnore], [DNSLengthVerifyAllowRootDot], [DNSLengthVerify]).
//
// # Usage
//
//	e := uts46.New()
//
//	ascii, err := e.ToASCII([]byte("straße.de"), uts46.DenyURL, uts46.HyphensAllow, uts46.DNSLengthVerify)
//	// ascii == "xn--strae-oqa.de"
//
//	unicode, verdict := e.ToUnicode([]byte("xn--strae-oqa.de"), uts46.DenyURL, uts46.HyphensAllow)
//	// unicode == "straße.de", verdict.OK() == true
//
// ToUnicode never fails outright. It returns a best-effort string in which
// every error position carries U+FFFD, together with a [Verdict] describing
// what went wrong. ToASCII is strict and returns a [*LabelError] on the first
// violation.
//
// An [Engine] holds no mutable state and is safe for concurrent use.
package uts46
