package db_test

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/idnakit/pkg/db"
)

func TestOpen_Validation(t *testing.T) {
	t.Parallel()

	t.Run("empty URL", func(t *testing.T) {
		t.Parallel()

		pool, err := db.Open(context.Background(), db.Config{})
		require.ErrorIs(t, err, db.ErrEmptyConnectionURL)
		require.Nil(t, pool)
	})

	t.Run("unparsable URL", func(t *testing.T) {
		t.Parallel()

		pool, err := db.Open(context.Background(), db.Config{URL: "postgres://localhost:notaport/db"})
		require.ErrorIs(t, err, db.ErrFailedToParseDBConfig)
		require.Nil(t, pool)
	})
}

func TestConfig_Enabled(t *testing.T) {
	t.Parallel()

	assert.False(t, db.Config{}.Enabled())
	assert.True(t, db.Config{URL: "postgres://localhost/idna"}.Enabled())
}

func TestHealthcheck_NilPool(t *testing.T) {
	t.Parallel()

	require.ErrorIs(t, db.Healthcheck(nil)(context.Background()), db.ErrHealthcheckFailed)
	require.NoError(t, db.Shutdown(nil)(context.Background()))
}

// fakeTx implements the parts of pgx.Tx that WithTx touches.
type fakeTx struct {
	pgx.Tx
	committed  bool
	rolledBack bool
}

func (tx *fakeTx) Commit(context.Context) error {
	tx.committed = true
	return nil
}

func (tx *fakeTx) Rollback(context.Context) error {
	tx.rolledBack = true
	return nil
}

type fakeBeginner struct {
	tx  *fakeTx
	err error
}

func (b *fakeBeginner) Begin(context.Context) (pgx.Tx, error) {
	if b.err != nil {
		return nil, b.err
	}
	return b.tx, nil
}

func TestWithTx(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("commits on success", func(t *testing.T) {
		t.Parallel()

		b := &fakeBeginner{tx: &fakeTx{}}
		require.NoError(t, db.WithTx(ctx, b, func(pgx.Tx) error { return nil }))
		assert.True(t, b.tx.committed)
		assert.False(t, b.tx.rolledBack)
	})

	t.Run("rolls back on error", func(t *testing.T) {
		t.Parallel()

		boom := errors.New("boom")
		b := &fakeBeginner{tx: &fakeTx{}}
		require.ErrorIs(t, db.WithTx(ctx, b, func(pgx.Tx) error { return boom }), boom)
		assert.False(t, b.tx.committed)
		assert.True(t, b.tx.rolledBack)
	})

	t.Run("rolls back and re-panics", func(t *testing.T) {
		t.Parallel()

		b := &fakeBeginner{tx: &fakeTx{}}
		require.PanicsWithValue(t, "oops", func() {
			_ = db.WithTx(ctx, b, func(pgx.Tx) error { panic("oops") })
		})
		assert.True(t, b.tx.rolledBack)
	})

	t.Run("begin failure", func(t *testing.T) {
		t.Parallel()

		boom := errors.New("no connection")
		require.ErrorIs(t, db.WithTx(ctx, &fakeBeginner{err: boom}, func(pgx.Tx) error {
			t.Fatal("fn must not run")
			return nil
		}), boom)
	})
}
