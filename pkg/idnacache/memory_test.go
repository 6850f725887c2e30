package idnacache_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/idnakit/pkg/idnacache"
)

func TestMemory_GetSet(t *testing.T) {
	t.Parallel()

	t.Run("miss returns ErrNotFound", func(t *testing.T) {
		t.Parallel()

		m := idnacache.NewMemory()
		defer m.Close()

		_, err := m.Get(context.Background(), "missing")
		require.ErrorIs(t, err, idnacache.ErrNotFound)
	})

	t.Run("returns stored value", func(t *testing.T) {
		t.Parallel()

		m := idnacache.NewMemory()
		defer m.Close()

		ctx := context.Background()
		require.NoError(t, m.Set(ctx, "k", "xn--strae-oqa.de", time.Minute))

		v, err := m.Get(ctx, "k")
		require.NoError(t, err)
		require.Equal(t, "xn--strae-oqa.de", v)
	})

	t.Run("expired entry is a miss", func(t *testing.T) {
		t.Parallel()

		m := idnacache.NewMemory(idnacache.WithCleanupInterval(0))
		defer m.Close()

		ctx := context.Background()
		require.NoError(t, m.Set(ctx, "k", "v", time.Millisecond))
		time.Sleep(5 * time.Millisecond)

		_, err := m.Get(ctx, "k")
		require.ErrorIs(t, err, idnacache.ErrNotFound)
		require.Zero(t, m.Len())
	})

	t.Run("zero TTL uses default", func(t *testing.T) {
		t.Parallel()

		m := idnacache.NewMemory(idnacache.WithDefaultTTL(time.Millisecond), idnacache.WithCleanupInterval(0))
		defer m.Close()

		ctx := context.Background()
		require.NoError(t, m.Set(ctx, "k", "v", 0))
		time.Sleep(5 * time.Millisecond)

		_, err := m.Get(ctx, "k")
		require.ErrorIs(t, err, idnacache.ErrNotFound)
	})

	t.Run("negative TTL never expires", func(t *testing.T) {
		t.Parallel()

		m := idnacache.NewMemory(idnacache.WithDefaultTTL(time.Millisecond))
		defer m.Close()

		ctx := context.Background()
		require.NoError(t, m.Set(ctx, "k", "v", -1))
		time.Sleep(5 * time.Millisecond)

		v, err := m.Get(ctx, "k")
		require.NoError(t, err)
		require.Equal(t, "v", v)
	})

	t.Run("overwrite keeps one entry", func(t *testing.T) {
		t.Parallel()

		m := idnacache.NewMemory()
		defer m.Close()

		ctx := context.Background()
		require.NoError(t, m.Set(ctx, "k", "one", time.Minute))
		require.NoError(t, m.Set(ctx, "k", "two", time.Minute))

		v, err := m.Get(ctx, "k")
		require.NoError(t, err)
		require.Equal(t, "two", v)
		require.Equal(t, 1, m.Len())
	})
}

func TestMemory_LRU(t *testing.T) {
	t.Parallel()

	t.Run("evicts least recently used", func(t *testing.T) {
		t.Parallel()

		m := idnacache.NewMemory(idnacache.WithMaxEntries(2))
		defer m.Close()

		ctx := context.Background()
		require.NoError(t, m.Set(ctx, "a", "1", time.Minute))
		require.NoError(t, m.Set(ctx, "b", "2", time.Minute))

		_, err := m.Get(ctx, "a")
		require.NoError(t, err)

		require.NoError(t, m.Set(ctx, "c", "3", time.Minute))

		_, err = m.Get(ctx, "b")
		require.ErrorIs(t, err, idnacache.ErrNotFound)

		for _, k := range []string{"a", "c"} {
			_, err := m.Get(ctx, k)
			require.NoError(t, err, "key %s", k)
		}
		require.Equal(t, 2, m.Len())
	})

	t.Run("unlimited when zero", func(t *testing.T) {
		t.Parallel()

		m := idnacache.NewMemory(idnacache.WithMaxEntries(0))
		defer m.Close()

		ctx := context.Background()
		for i := range 100 {
			require.NoError(t, m.Set(ctx, fmt.Sprint(i), "v", time.Minute))
		}
		require.Equal(t, 100, m.Len())
	})
}

func TestMemory_DeleteClear(t *testing.T) {
	t.Parallel()

	m := idnacache.NewMemory()
	defer m.Close()

	ctx := context.Background()
	require.NoError(t, m.Set(ctx, "a", "1", time.Minute))
	require.NoError(t, m.Set(ctx, "b", "2", time.Minute))

	require.NoError(t, m.Delete(ctx, "a"))
	require.NoError(t, m.Delete(ctx, "missing"))
	_, err := m.Get(ctx, "a")
	require.ErrorIs(t, err, idnacache.ErrNotFound)

	require.NoError(t, m.Clear(ctx))
	require.Zero(t, m.Len())
}

func TestMemory_Close(t *testing.T) {
	t.Parallel()

	m := idnacache.NewMemory()
	require.NoError(t, m.Close())
	require.NoError(t, m.Close())

	ctx := context.Background()
	require.ErrorIs(t, m.Set(ctx, "k", "v", 0), idnacache.ErrClosed)
	require.ErrorIs(t, m.Delete(ctx, "k"), idnacache.ErrClosed)
	require.ErrorIs(t, m.Clear(ctx), idnacache.ErrClosed)
	_, err := m.Get(ctx, "k")
	require.ErrorIs(t, err, idnacache.ErrClosed)
}

func TestMemory_Janitor(t *testing.T) {
	t.Parallel()

	m := idnacache.NewMemory(idnacache.WithCleanupInterval(5 * time.Millisecond))
	defer m.Close()

	ctx := context.Background()
	require.NoError(t, m.Set(ctx, "short", "v", time.Millisecond))
	require.NoError(t, m.Set(ctx, "long", "v", time.Hour))

	require.Eventually(t, func() bool {
		return m.Len() == 1
	}, time.Second, 5*time.Millisecond)
}

func TestMemory_Concurrent(t *testing.T) {
	t.Parallel()

	m := idnacache.NewMemory(idnacache.WithMaxEntries(50))
	defer m.Close()

	ctx := context.Background()
	var wg sync.WaitGroup
	for i := range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range 100 {
				key := fmt.Sprintf("%d-%d", i, j%10)
				_ = m.Set(ctx, key, key, time.Minute)
				_, _ = m.Get(ctx, key)
			}
		}()
	}
	wg.Wait()

	require.LessOrEqual(t, m.Len(), 50)
}
