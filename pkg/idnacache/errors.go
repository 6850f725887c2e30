package idnacache

import "errors"

var (
	// ErrNotFound is returned when a key does not exist in the store or has expired.
	ErrNotFound = errors.New("idnacache: entry not found")

	// ErrClosed is returned when an operation is attempted on a closed store.
	ErrClosed = errors.New("idnacache: closed")
)
