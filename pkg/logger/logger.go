package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Config describes the process logger.
type Config struct {
	// Level is one of debug, info, warn, error. Default: info.
	Level string `yaml:"level" env:"LOG_LEVEL" envDefault:"info"`
	// Format is json or text. Default: json.
	Format string `yaml:"format" env:"LOG_FORMAT" envDefault:"json"`

	SentryDSN         string `yaml:"sentry_dsn" env:"SENTRY_DSN"`
	SentryEnvironment string `yaml:"sentry_environment" env:"SENTRY_ENVIRONMENT" envDefault:"production"`
	// SentryMinLevel is the lowest level stored in Sentry as a log entry.
	// Errors always create Sentry events. Default: warn.
	SentryMinLevel string `yaml:"sentry_min_level" env:"SENTRY_MIN_LEVEL" envDefault:"warn"`
}

// ParseLevel parses a level name as accepted by slog, case-insensitively.
func ParseLevel(s string) (slog.Level, error) {
	var lvl slog.Level
	if s == "" {
		return slog.LevelInfo, nil
	}
	if err := lvl.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidLevel, s)
	}
	return lvl, nil
}

// New builds a logger writing to w (stdout when nil). When cfg.SentryDSN is
// set, records are also sent to Sentry; if the SDK cannot be initialized the
// failure is logged and the logger falls back to w only.
//
// Extractors add request-scoped attributes to every record.
func New(w io.Writer, cfg Config, extractors ...ContextExtractor) (*slog.Logger, error) {
	if w == nil {
		w = os.Stdout
	}

	lvl, err := ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}

	opts := &slog.HandlerOptions{Level: lvl}
	var h slog.Handler
	switch strings.ToLower(cfg.Format) {
	case "", "json":
		h = slog.NewJSONHandler(w, opts)
	case "text":
		h = slog.NewTextHandler(w, opts)
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidFormat, cfg.Format)
	}

	if cfg.SentryDSN != "" {
		sh, err := newSentryHandler(cfg)
		if err != nil {
			slog.New(h).Error("failed to initialize sentry", slog.String("error", err.Error()))
		} else {
			h = fanout(h, sh)
		}
	}

	return slog.New(withContext(h, extractors...)), nil
}

// NewNope returns a logger that discards everything.
func NewNope() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
