package cache

import (
	"context"
	"errors"
	"testing"

	"github.com/phrazzld/lunchvote/internal/domain"
	"github.com/phrazzld/lunchvote/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func page(names ...string) []*domain.Restaurant {
	out := make([]*domain.Restaurant, len(names))
	for i, n := range names {
		out[i] = &domain.Restaurant{ID: int64(i + 1), Name: n, Meals: []*domain.Meal{}}
	}
	return out
}

func TestLRUListCache_PutGetCopies(t *testing.T) {
	c, err := NewLRUListCache(0, nil)
	require.NoError(t, err)

	value := page("A")
	c.Put("k", value, c.Generation())
	value[0].Name = "mutated by caller"

	got, ok := c.Get("k")
	require.True(t, ok)
	assert.Equal(t, "A", got[0].Name)

	got[0].Name = "mutated by reader"
	again, _ := c.Get("k")
	assert.Equal(t, "A", again[0].Name)
}

func TestLRUListCache_StalePutIsDropped(t *testing.T) {
	c, err := NewLRUListCache(10, nil)
	require.NoError(t, err)

	readGeneration := c.Generation()
	c.InvalidateAll()
	c.Put("k", page("stale"), readGeneration)

	_, ok := c.Get("k")
	assert.False(t, ok)
	assert.Equal(t, 0, c.Len())
}

func TestLRUListCache_BoundedAndLogsEvictions(t *testing.T) {
	log, buf := logger.GetTestLogger(t)
	c, err := NewLRUListCache(2, log)
	require.NoError(t, err)

	gen := c.Generation()
	c.Put("a", page("A"), gen)
	c.Put("b", page("B"), gen)
	c.Put("c", page("C"), gen)

	assert.Equal(t, 2, c.Len())
	_, ok := c.Get("a")
	assert.False(t, ok, "least recently used page is evicted")
	logger.AssertLogContains(t, buf, `"key":"a"`)

	c.InvalidateAll()
	assert.Equal(t, 0, c.Len())
	logger.AssertLogContains(t, buf, `"key":"c"`)
}

func TestNoopCache(t *testing.T) {
	var c ListCache = NoopCache{}
	c.Put("k", page("A"), c.Generation())
	_, ok := c.Get("k")
	assert.False(t, ok)
	c.InvalidateAll()
	assert.Zero(t, c.Generation())
}

func TestGetOrLoad(t *testing.T) {
	ctx := context.Background()
	c, err := NewLRUListCache(10, nil)
	require.NoError(t, err)

	loads := 0
	load := func(context.Context) ([]*domain.Restaurant, error) {
		loads++
		return page("A", "B"), nil
	}

	first, err := GetOrLoad(ctx, c, "k", load)
	require.NoError(t, err)
	second, err := GetOrLoad(ctx, c, "k", load)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, loads)

	c.InvalidateAll()
	_, err = GetOrLoad(ctx, c, "k", load)
	require.NoError(t, err)
	assert.Equal(t, 2, loads)

	boom := errors.New("boom")
	_, err = GetOrLoad(ctx, c, "other", func(context.Context) ([]*domain.Restaurant, error) {
		return nil, boom
	})
	assert.ErrorIs(t, err, boom)
	_, ok := c.Get("other")
	assert.False(t, ok)
}

func TestGetOrLoad_InvalidationDuringLoad(t *testing.T) {
	ctx := context.Background()
	c, err := NewLRUListCache(10, nil)
	require.NoError(t, err)

	_, err = GetOrLoad(ctx, c, "k", func(context.Context) ([]*domain.Restaurant, error) {
		// a write lands while the read is in flight
		c.InvalidateAll()
		return page("stale"), nil
	})
	require.NoError(t, err)

	_, ok := c.Get("k")
	assert.False(t, ok)
}
