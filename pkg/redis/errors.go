package redis

import "errors"

var (
	ErrEmptyConnectionURL = errors.New("redis: empty connection URL")
	ErrFailedToParseURL   = errors.New("redis: failed to parse connection URL")
	// ErrUnsupportedScheme wraps ErrFailedToParseURL for URLs that are not
	// redis:// or rediss://.
	ErrUnsupportedScheme = errors.Join(ErrFailedToParseURL, errors.New("redis: URL scheme must be redis or rediss"))
	ErrConnectionFailed  = errors.New("redis: failed to establish connection")
	ErrHealthcheckFailed = errors.New("redis: healthcheck failed")
)
