package registry

import (
	"context"
	"embed"
	"errors"
	"io/fs"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Migrations returns the goose migrations of the registry schema.
func Migrations() fs.FS {
	sub, err := fs.Sub(migrationsFS, "migrations")
	if err != nil {
		panic(err)
	}
	return sub
}

const pgUniqueViolation = "23505"

// DBTX is the subset of pgx shared by *pgxpool.Pool, *pgx.Conn and pgx.Tx.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresStore keeps domains in the domains table.
type PostgresStore struct {
	db DBTX
}

// NewPostgresStore creates a store over a pool, connection or transaction.
func NewPostgresStore(db DBTX) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Insert(ctx context.Context, d *Domain) error {
	err := s.db.QueryRow(ctx,
		`INSERT INTO domains (id, ascii_name, unicode_name) VALUES ($1, $2, $3) RETURNING created_at`,
		d.ID, d.ASCIIName, d.UnicodeName,
	).Scan(&d.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return ErrAlreadyRegistered
		}
		return err
	}
	return nil
}

func (s *PostgresStore) Get(ctx context.Context, asciiName string) (*Domain, error) {
	var d Domain
	err := s.db.QueryRow(ctx,
		`SELECT id, ascii_name, unicode_name, created_at, verified_at FROM domains WHERE ascii_name = $1`,
		asciiName,
	).Scan(&d.ID, &d.ASCIIName, &d.UnicodeName, &d.CreatedAt, &d.VerifiedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (s *PostgresStore) List(ctx context.Context, limit, offset int) ([]*Domain, error) {
	rows, err := s.db.Query(ctx,
		`SELECT id, ascii_name, unicode_name, created_at, verified_at FROM domains ORDER BY created_at, id LIMIT $1 OFFSET $2`,
		limit, offset,
	)
	if err != nil {
		return nil, err
	}

	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (*Domain, error) {
		var d Domain
		err := row.Scan(&d.ID, &d.ASCIIName, &d.UnicodeName, &d.CreatedAt, &d.VerifiedAt)
		return &d, err
	})
}

func (s *PostgresStore) Delete(ctx context.Context, asciiName string) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM domains WHERE ascii_name = $1`, asciiName)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresStore) MarkVerified(ctx context.Context, asciiName string, at time.Time) error {
	tag, err := s.db.Exec(ctx, `UPDATE domains SET verified_at = $2 WHERE ascii_name = $1`, asciiName, at)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

var _ Store = (*PostgresStore)(nil)
