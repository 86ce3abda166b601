package loadercache

import (
	"context"
	"testing"
	"time"

	"gotest.tools/v3/assert"

	"github.com/pitwall/f1insight/pkg/utils/cache"
)

func TestLoaderCache(t *testing.T) {
	calls := 0
	c := New(
		WithLoader[string, int](func(ctx context.Context, key string) (*int, error) {
			calls++
			v := len(key)
			return &v, nil
		}),
		WithExpiration[string, int](time.Minute))

	got, err := c.Get(context.Background(), "abc")
	assert.NilError(t, err)
	assert.Equal(t, *got, 3)

	_, err = c.Get(context.Background(), "abc")
	assert.NilError(t, err)
	assert.Equal(t, calls, 1)

	c.Invalidate(context.Background(), "abc")
	_, err = c.Get(context.Background(), "abc")
	assert.NilError(t, err)
	assert.Equal(t, calls, 2)
}

func TestLoaderCacheExpires(t *testing.T) {
	calls := 0
	c := New(
		WithLoader[string, int](func(ctx context.Context, key string) (*int, error) {
			calls++
			v := calls
			return &v, nil
		}),
		WithExpiration[string, int](time.Millisecond))

	_, err := c.Get(context.Background(), "abc")
	assert.NilError(t, err)
	time.Sleep(5 * time.Millisecond)
	got, err := c.Get(context.Background(), "abc")
	assert.NilError(t, err)
	assert.Equal(t, *got, 2)
}

func TestLoaderCacheWithoutLoader(t *testing.T) {
	c := New[string, int]()
	_, err := c.Get(context.Background(), "abc")
	assert.ErrorIs(t, err, cache.ErrCacheMiss)
}
