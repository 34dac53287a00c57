package cache

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCache_GetSet(t *testing.T) {
	c := New[int, string](Config{MaxItems: 4, TTL: time.Minute})
	defer c.Close()

	_, ok := c.Get(50)
	assert.False(t, ok)

	c.Set(50, "fifty")
	v, ok := c.Get(50)
	require.True(t, ok)
	assert.Equal(t, "fifty", v)

	hits, misses, rate := c.Stats()
	assert.Equal(t, int64(1), hits)
	assert.Equal(t, int64(1), misses)
	assert.InDelta(t, 50.0, rate, 1e-9)
}

func TestCache_Expiry(t *testing.T) {
	c := New[string, int](Config{TTL: time.Minute})
	defer c.Close()

	c.SetWithTTL("short", 1, time.Millisecond)
	c.SetWithTTL("forever", 2, 0)
	time.Sleep(5 * time.Millisecond)

	_, ok := c.Get("short")
	assert.False(t, ok)
	v, ok := c.Get("forever")
	assert.True(t, ok)
	assert.Equal(t, 2, v)
}

func TestCache_BoundedSize(t *testing.T) {
	c := New[int, int](Config{MaxItems: 3, TTL: time.Hour})
	defer c.Close()

	for i := 0; i < 10; i++ {
		c.Set(i, i)
	}
	assert.Equal(t, 3, c.Size())

	// overwriting an existing key does not evict
	c.Set(9, 90)
	assert.Equal(t, 3, c.Size())
	v, ok := c.Get(9)
	assert.True(t, ok)
	assert.Equal(t, 90, v)
}

func TestCache_GetOrSet(t *testing.T) {
	c := New[int, int](DefaultConfig())
	defer c.Close()

	calls := 0
	fn := func() (int, error) {
		calls++
		return 42, nil
	}
	for i := 0; i < 3; i++ {
		v, err := c.GetOrSet(1, fn)
		require.NoError(t, err)
		assert.Equal(t, 42, v)
	}
	assert.Equal(t, 1, calls)

	_, err := c.GetOrSet(2, func() (int, error) { return 0, errors.New("boom") })
	assert.Error(t, err)
	_, ok := c.Get(2)
	assert.False(t, ok, "errors are not cached")
}

func TestCache_CleanupLoop(t *testing.T) {
	c := New[int, int](Config{TTL: time.Millisecond, CleanupInterval: 2 * time.Millisecond})
	defer c.Close()

	c.Set(1, 1)
	assert.Eventually(t, func() bool { return c.Size() == 0 }, time.Second, 5*time.Millisecond)
}

func TestCache_CloseIsIdempotent(t *testing.T) {
	c := New[int, int](DefaultConfig())
	c.Close()
	c.Close()
	c.Set(1, 1)
	assert.Equal(t, 1, c.Size())
}
