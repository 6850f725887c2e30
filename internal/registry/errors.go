package registry

import "errors"

var (
	// ErrNotFound is returned when no domain has the requested ASCII form.
	ErrNotFound = errors.New("registry: domain not found")

	// ErrAlreadyRegistered is returned when a domain with the same ASCII form exists.
	ErrAlreadyRegistered = errors.New("registry: domain already registered")

	// ErrEmptyName is returned for an empty domain name.
	ErrEmptyName = errors.New("registry: empty domain name")
)
