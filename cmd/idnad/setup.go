package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/dmitrymomot/idnakit/internal/api"
	"github.com/dmitrymomot/idnakit/internal/config"
	"github.com/dmitrymomot/idnakit/internal/registry"
	"github.com/dmitrymomot/idnakit/pkg/db"
	"github.com/dmitrymomot/idnakit/pkg/dnsverify"
	"github.com/dmitrymomot/idnakit/pkg/health"
	"github.com/dmitrymomot/idnakit/pkg/idna"
	"github.com/dmitrymomot/idnakit/pkg/idnacache"
	"github.com/dmitrymomot/idnakit/pkg/logger"
	"github.com/dmitrymomot/idnakit/pkg/redis"
)

const sentryFlushTimeout = 2 * time.Second

// application is the wired process: the HTTP handler and the hooks that
// release what setup opened, in order.
type application struct {
	handler http.Handler
	hooks   []func(context.Context) error
}

func (a *application) onShutdown(fn func(context.Context) error) {
	a.hooks = append(a.hooks, fn)
}

// shutdown runs the hooks directly, for startup failures before the server
// owns them.
func (a *application) shutdown(ctx context.Context) error {
	var errs []error
	for _, hook := range a.hooks {
		errs = append(errs, hook(ctx))
	}
	return errors.Join(errs...)
}

// setup opens the configured backends and builds the router. On error the
// returned application still holds the hooks for what was opened.
func setup(ctx context.Context, cfg config.Config, log *slog.Logger) (*application, error) {
	a := &application{}
	checks := health.Checks{}

	defaults, err := cfg.IDNA.Resolve()
	if err != nil {
		return a, err
	}
	conv := idna.New(idna.WithDefaults(defaults.ASCIIDenyList, defaults.Hyphens, defaults.DNSLength))
	checks["idna"] = idna.Healthcheck(conv)

	var store idnacache.Store
	switch cfg.Cache.Backend {
	case config.CacheMemory:
		mem := idnacache.NewMemory(
			idnacache.WithDefaultTTL(cfg.Cache.TTL),
			idnacache.WithMaxEntries(cfg.Cache.MaxEntries),
		)
		a.onShutdown(func(context.Context) error { return mem.Close() })
		store = mem
	case config.CacheRedis:
		client, err := redis.Open(ctx, cfg.Cache.RedisURL, redis.WithLogger(log))
		if err != nil {
			return a, err
		}
		a.onShutdown(redis.Shutdown(client))
		checks["redis"] = redis.Healthcheck(client)
		store = idnacache.NewRedis(client,
			idnacache.WithRedisDefaultTTL(cfg.Cache.TTL),
			idnacache.WithPrefix(cfg.Cache.RedisPrefix),
		)
	}
	cached := idnacache.New(conv, store,
		idnacache.WithTTL(cfg.Cache.TTL),
		idnacache.WithLogger(log),
	)
	if store != nil {
		checks["cache"] = cached.Healthcheck()
	}

	routerOpts := []api.Option{
		api.WithLogger(log),
		api.WithRequestTimeout(cfg.Server.RequestTimeout),
	}

	verifier := registry.WithVerifier(dnsverify.New(dnsverify.WithConverter(conv)))
	switch cfg.RegistryStore() {
	case config.RegistryPostgres:
		pool, err := db.Open(ctx, cfg.Database, db.WithLogger(log))
		if err != nil {
			return a, err
		}
		a.onShutdown(db.Shutdown(pool))
		checks["postgres"] = db.Healthcheck(pool)

		if err := db.Migrate(ctx, pool, registry.Migrations(), cfg.Database.MigrationsTable, log); err != nil {
			return a, fmt.Errorf("registry: %w", err)
		}
		reg := registry.New(cached, registry.NewPostgresStore(pool), registry.WithLogger(log), verifier)
		routerOpts = append(routerOpts, api.WithRegistry(reg))
	case config.RegistryMemory:
		reg := registry.New(cached, registry.NewMemoryStore(), registry.WithLogger(log), verifier)
		routerOpts = append(routerOpts, api.WithRegistry(reg))
	}

	a.onShutdown(logger.FlushSentry(sentryFlushTimeout))

	routerOpts = append(routerOpts, api.WithChecks(checks))
	a.handler = api.NewRouter(cached, routerOpts...)

	log.Info("idnad configured",
		slog.String("idna_defaults", defaults.String()),
		slog.String("cache", cfg.Cache.Backend),
		slog.String("registry", cfg.RegistryStore()),
	)
	return a, nil
}
