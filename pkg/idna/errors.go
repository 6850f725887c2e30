package idna

import "errors"

// Sentinel errors for conversion operations.
var (
	// ErrInvalidConfiguration is returned when a configuration token is not
	// part of its vocabulary. It is reported before any conversion is attempted.
	ErrInvalidConfiguration = errors.New("idna: invalid configuration")

	// ErrInputNotWellFormed is returned when the input is not valid UTF-8.
	ErrInputNotWellFormed = errors.New("idna: input is not well-formed UTF-8")

	// ErrConstraintViolation is returned by ToASCII when the input violates
	// the active deny list, hyphen or length rules.
	ErrConstraintViolation = errors.New("idna: ToASCII conversion failed")

	// ErrConversion is returned by ToUnicode when the engine reports errors,
	// such as invalid Punycode or disallowed characters.
	ErrConversion = errors.New("idna: ToUnicode conversion failed")
)
