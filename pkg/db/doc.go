// Package db opens the PostgreSQL pool backing the domain registry.
//
// [Open] applies the pool settings from [Config] and pings the server with
// retries. [Migrate] runs goose migrations from an embedded filesystem over
// the same pool. [Healthcheck], [Shutdown] and [WithTx] cover the rest of
// the pool lifecycle:
//
//	pool, err := db.Open(ctx, cfg.Database, db.WithLogger(log))
//	if err != nil {
//	    return err
//	}
//	if err := db.Migrate(ctx, pool, registry.Migrations, cfg.Database.MigrationsTable, log); err != nil {
//	    return err
//	}
package db
