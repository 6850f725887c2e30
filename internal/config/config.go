package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/idnakit/pkg/db"
	"github.com/dmitrymomot/idnakit/pkg/idna"
	"github.com/dmitrymomot/idnakit/pkg/logger"
)

// Cache backends.
const (
	CacheMemory = "memory"
	CacheRedis  = "redis"
	CacheNone   = "none"
)

// Registry stores. RegistryAuto selects postgres when a database is
// configured and disables the registry otherwise.
const (
	RegistryAuto     = "auto"
	RegistryPostgres = "postgres"
	RegistryMemory   = "memory"
	RegistryNone     = "none"
)

// Config is the idnad process configuration.
type Config struct {
	Server   Server        `yaml:"server"`
	IDNA     IDNA          `yaml:"idna"`
	Cache    Cache         `yaml:"cache"`
	Registry Registry      `yaml:"registry"`
	Log      logger.Config `yaml:"log"`
	Database db.Config     `yaml:"database"`
}

type Server struct {
	Address         string        `yaml:"address" env:"HTTP_ADDR" envDefault:":8080"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"HTTP_SHUTDOWN_TIMEOUT" envDefault:"15s"`
	RequestTimeout  time.Duration `yaml:"request_timeout" env:"HTTP_REQUEST_TIMEOUT" envDefault:"10s"`
}

// IDNA holds the converter defaults as configuration tokens.
type IDNA struct {
	ASCIIDenyList string `yaml:"ascii_deny_list" env:"IDNA_ASCII_DENY_LIST" envDefault:"url"`
	Hyphens       string `yaml:"hyphens" env:"IDNA_HYPHENS" envDefault:"allow"`
	DNSLength     string `yaml:"dns_length" env:"IDNA_DNS_LENGTH" envDefault:"verify"`
}

type Cache struct {
	Backend     string        `yaml:"backend" env:"CACHE_BACKEND" envDefault:"memory"`
	TTL         time.Duration `yaml:"ttl" env:"CACHE_TTL" envDefault:"1h"`
	MaxEntries  int           `yaml:"max_entries" env:"CACHE_MAX_ENTRIES" envDefault:"10000"`
	RedisURL    string        `yaml:"redis_url" env:"REDIS_URL"`
	RedisPrefix string        `yaml:"redis_prefix" env:"CACHE_REDIS_PREFIX" envDefault:"idna"`
}

type Registry struct {
	Store string `yaml:"store" env:"REGISTRY_STORE" envDefault:"auto"`
}

// Load reads the optional YAML file at path and applies environment
// overrides on top of it. Defaults fill only the fields neither source set.
func Load(path string) (Config, error) {
	var cfg Config

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, errors.Join(ErrReadFile, err)
		}
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
			return Config{}, errors.Join(ErrParseFile, err)
		}
	}

	if err := env.ParseWithOptions(&cfg, env.Options{SetDefaultsForZeroValuesOnly: true}); err != nil {
		return Config{}, errors.Join(ErrParseEnv, err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks cross-field constraints and the IDNA tokens.
func (c Config) Validate() error {
	if _, err := c.IDNA.Resolve(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	switch c.Cache.Backend {
	case CacheMemory, CacheNone:
	case CacheRedis:
		if c.Cache.RedisURL == "" {
			return fmt.Errorf("%w: cache backend redis requires REDIS_URL", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown cache backend %q", ErrInvalidConfig, c.Cache.Backend)
	}

	switch c.Registry.Store {
	case RegistryAuto, RegistryMemory, RegistryNone:
	case RegistryPostgres:
		if !c.Database.Enabled() {
			return fmt.Errorf("%w: registry store postgres requires DATABASE_URL", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown registry store %q", ErrInvalidConfig, c.Registry.Store)
	}

	return nil
}

// RegistryStore returns the effective registry store with auto resolved.
func (c Config) RegistryStore() string {
	if c.Registry.Store != RegistryAuto {
		return c.Registry.Store
	}
	if c.Database.Enabled() {
		return RegistryPostgres
	}
	return RegistryNone
}

// Resolve parses the tokens into converter defaults.
func (i IDNA) Resolve() (idna.Config, error) {
	deny, err := idna.ParseASCIIDenyList(i.ASCIIDenyList)
	if err != nil {
		return idna.Config{}, err
	}
	hyphens, err := idna.ParseHyphens(i.Hyphens)
	if err != nil {
		return idna.Config{}, err
	}
	dns, err := idna.ParseDNSLength(i.DNSLength)
	if err != nil {
		return idna.Config{}, err
	}
	return idna.Config{ASCIIDenyList: deny, Hyphens: hyphens, DNSLength: dns}, nil
}
