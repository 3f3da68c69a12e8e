package intlru

import (
	"testing"

	"github.com/stretchr/testify/require"

	"gitlab.com/slon/lrucache/lrucache"
)

func newIntCache(t *testing.T, capacity int) *Cache[int, int] {
	t.Helper()
	c, err := New[int, int](capacity)
	require.NoError(t, err)
	return c
}

func TestPutAndGet(t *testing.T) {
	c := newIntCache(t, 3)
	c.Put(1, 100)
	c.Put(2, 200)
	require.Equal(t, 100, c.Get(1))
	require.Equal(t, 200, c.Get(2))
}

func TestGetMissingKey(t *testing.T) {
	c := newIntCache(t, 3)
	require.Equal(t, Miss, c.Get(99))
}

func TestEviction(t *testing.T) {
	c := newIntCache(t, 2)
	c.Put(1, 100)
	c.Put(2, 200)
	c.Put(3, 300)
	require.Equal(t, Miss, c.Get(1))
	require.Equal(t, 200, c.Get(2))
	require.Equal(t, 300, c.Get(3))
}

func TestAccessUpdatesOrder(t *testing.T) {
	c := newIntCache(t, 2)
	c.Put(1, 100)
	c.Put(2, 200)
	c.Get(1)
	c.Put(3, 300)
	require.Equal(t, 100, c.Get(1))
	require.Equal(t, Miss, c.Get(2))
	require.Equal(t, 300, c.Get(3))
}

func TestUpdateExistingKey(t *testing.T) {
	c := newIntCache(t, 2)
	c.Put(1, 100)
	c.Put(1, 999)
	require.Equal(t, 999, c.Get(1))
	require.Equal(t, 1, c.Size())
}

func TestSize(t *testing.T) {
	c := newIntCache(t, 3)
	require.Equal(t, 0, c.Size())
	for k, want := range []int{1, 2, 3, 3} {
		c.Put(k+1, (k+1)*100)
		require.Equal(t, want, c.Size())
	}
}

func TestContains(t *testing.T) {
	c := newIntCache(t, 2)
	c.Put(1, 100)
	require.True(t, c.Contains(1))
	require.False(t, c.Contains(2))
}

func TestContainsDoesNotUpdateOrder(t *testing.T) {
	c := newIntCache(t, 2)
	c.Put(1, 100)
	c.Put(2, 200)
	c.Contains(1)
	c.Put(3, 300)
	require.Equal(t, Miss, c.Get(1))
	require.Equal(t, 200, c.Get(2))
	require.Equal(t, 300, c.Get(3))
}

func TestCapacityOne(t *testing.T) {
	c := newIntCache(t, 1)
	c.Put(1, 100)
	require.Equal(t, 100, c.Get(1))
	c.Put(2, 200)
	require.Equal(t, Miss, c.Get(1))
	require.Equal(t, 200, c.Get(2))
}

func TestLookup_StoredMiss(t *testing.T) {
	c, err := New[string, int8](2)
	require.NoError(t, err)

	c.Put("neg", Miss)
	require.Equal(t, int8(Miss), c.Get("neg"))

	v, ok := c.Lookup("neg")
	require.True(t, ok)
	require.Equal(t, int8(-1), v)

	_, ok = c.Lookup("absent")
	require.False(t, ok)
}

func TestNew_InvalidCapacity(t *testing.T) {
	_, err := New[int, int](0)
	require.ErrorIs(t, err, lrucache.ErrInvalidCapacity)
}
