package rentals

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCacheFixture(t *testing.T) (*ListCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewListCache(client, time.Minute, nil), mr
}

func countingLoader(rentals []Rental, err error) (func(context.Context) ([]Rental, error), *int) {
	calls := 0
	return func(context.Context) ([]Rental, error) {
		calls++
		return rentals, err
	}, &calls
}

func TestListCacheFillsOnceUntilBump(t *testing.T) {
	cache, _ := newCacheFixture(t)
	ctx := context.Background()
	loader, calls := countingLoader([]Rental{{ID: 1, Name: "Loft"}}, nil)

	first, err := cache.Fetch(ctx, loader)
	require.NoError(t, err)
	require.Len(t, first, 1)
	assert.Equal(t, 1, *calls)

	second, err := cache.Fetch(ctx, loader)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, *calls)

	cache.Bump(ctx)

	_, err = cache.Fetch(ctx, loader)
	require.NoError(t, err)
	assert.Equal(t, 2, *calls)
}

func TestListCacheLoaderErrorPropagates(t *testing.T) {
	cache, _ := newCacheFixture(t)
	loader, _ := countingLoader(nil, errors.New("store down"))

	_, err := cache.Fetch(context.Background(), loader)
	assert.Error(t, err)
}

func TestListCacheNilClientPassthrough(t *testing.T) {
	cache := NewListCache(nil, time.Minute, nil)
	loader, calls := countingLoader([]Rental{{ID: 1}}, nil)

	for range 3 {
		_, err := cache.Fetch(context.Background(), loader)
		require.NoError(t, err)
	}
	assert.Equal(t, 3, *calls)
}

func TestListCacheDegradesWhenRedisDown(t *testing.T) {
	cache, mr := newCacheFixture(t)
	mr.Close()
	loader, calls := countingLoader([]Rental{{ID: 1}}, nil)

	rentals, err := cache.Fetch(context.Background(), loader)
	require.NoError(t, err)
	assert.Len(t, rentals, 1)
	assert.Equal(t, 1, *calls)
}
