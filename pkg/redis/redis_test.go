package redis_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/idnakit/pkg/redis"
)

func TestOpen_Validation(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("empty URL", func(t *testing.T) {
		t.Parallel()

		client, err := redis.Open(ctx, "")
		require.ErrorIs(t, err, redis.ErrEmptyConnectionURL)
		require.Nil(t, client)
	})

	tests := map[string]string{
		"http scheme":      "http://localhost:6379",
		"no scheme":        "localhost:6379",
		"postgres scheme":  "postgres://localhost:6379",
		"invalid port":     "redis://localhost:notaport",
		"invalid database": "redis://localhost:6379/notanumber",
	}
	for name, url := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			client, err := redis.Open(ctx, url)
			require.ErrorIs(t, err, redis.ErrFailedToParseURL)
			require.Nil(t, client)
		})
	}

	t.Run("scheme is reported", func(t *testing.T) {
		t.Parallel()

		_, err := redis.Open(ctx, "http://localhost:6379")
		require.ErrorIs(t, err, redis.ErrUnsupportedScheme)
	})
}

func TestOpen_Unreachable(t *testing.T) {
	t.Parallel()

	t.Run("fails after retries", func(t *testing.T) {
		t.Parallel()

		client, err := redis.Open(context.Background(), "redis://127.0.0.1:1/0",
			redis.WithRetry(2, 10*time.Millisecond),
			redis.WithTimeouts(100*time.Millisecond, 0, 0),
		)
		require.ErrorIs(t, err, redis.ErrConnectionFailed)
		require.Nil(t, client)
	})

	t.Run("context cancels the wait", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
		defer cancel()

		start := time.Now()
		_, err := redis.Open(ctx, "redis://127.0.0.1:1/0",
			redis.WithRetry(5, time.Minute),
			redis.WithTimeouts(50*time.Millisecond, 0, 0),
		)
		require.ErrorIs(t, err, redis.ErrConnectionFailed)
		require.Less(t, time.Since(start), 10*time.Second)
	})
}

func TestHealthcheck(t *testing.T) {
	t.Parallel()

	err := redis.Healthcheck(nil)(context.Background())
	require.ErrorIs(t, err, redis.ErrHealthcheckFailed)
}

type closer struct {
	err    error
	closed bool
}

func (c *closer) Close() error {
	c.closed = true
	return c.err
}

func TestShutdown(t *testing.T) {
	t.Parallel()

	c := &closer{}
	require.NoError(t, redis.Shutdown(c)(context.Background()))
	require.True(t, c.closed)

	boom := errors.New("boom")
	require.ErrorIs(t, redis.Shutdown(&closer{err: boom})(context.Background()), boom)

	require.NoError(t, redis.Shutdown(nil)(context.Background()))
}
