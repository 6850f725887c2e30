package db

import "time"

// Config holds PostgreSQL connection settings. An empty URL disables the
// database and everything that depends on it.
type Config struct {
	URL             string `yaml:"url" env:"DATABASE_URL"`
	MigrationsTable string `yaml:"migrations_table" env:"DATABASE_MIGRATIONS_TABLE" envDefault:"idna_schema_migrations"`

	MaxConns        int32         `yaml:"max_conns" env:"DATABASE_MAX_CONNS" envDefault:"10"`
	MinConns        int32         `yaml:"min_conns" env:"DATABASE_MIN_CONNS" envDefault:"2"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" envDefault:"10m"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime" env:"DATABASE_MAX_CONN_LIFETIME" envDefault:"30m"`

	// Startup retries; the wait grows linearly with each attempt.
	RetryAttempts int           `yaml:"retry_attempts" env:"DATABASE_RETRY_ATTEMPTS" envDefault:"3"`
	RetryInterval time.Duration `yaml:"retry_interval" env:"DATABASE_RETRY_INTERVAL" envDefault:"2s"`
}

// Enabled reports whether a database is configured.
func (c Config) Enabled() bool {
	return c.URL != ""
}
