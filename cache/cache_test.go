package cache_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/riftlabs/jpegmeta/cache"
)

func TestCache_PutGet(t *testing.T) {
	c := cache.New(2)
	c.Put("a", 1)

	v, ok := c.Get("a")
	require.True(t, ok)
	require.Equal(t, 1, v)

	_, ok = c.Get("missing")
	require.False(t, ok)
}

func TestCache_FIFOEviction(t *testing.T) {
	c := cache.New(2)
	c.Put("a", 1)
	c.Put("b", 2)
	c.Put("c", 3) // evicts "a", the oldest

	_, ok := c.Get("a")
	require.False(t, ok)

	v, ok := c.Get("b")
	require.True(t, ok)
	require.Equal(t, 2, v)

	v, ok = c.Get("c")
	require.True(t, ok)
	require.Equal(t, 3, v)

	require.Equal(t, 2, c.Len())
}

func TestCache_OverwriteNoRecencyBump(t *testing.T) {
	c := cache.New(2)
	c.Put("a", 1)
	c.Put("b", 2)
	c.Put("a", 10) // overwrite, "a" stays the oldest by insertion order
	c.Put("c", 3)  // must evict "a", not "b"

	_, ok := c.Get("a")
	require.False(t, ok)

	v, ok := c.Get("b")
	require.True(t, ok)
	require.Equal(t, 2, v)
}

func TestCache_Delete(t *testing.T) {
	c := cache.New(2)
	c.Put("a", 1)
	c.Delete("a")

	_, ok := c.Get("a")
	require.False(t, ok)
	require.Equal(t, 0, c.Len())
}

func TestCache_UnboundedCapacity(t *testing.T) {
	c := cache.New(0)
	for i := 0; i < 10; i++ {
		c.Put(string(rune('a'+i)), i)
	}
	require.Equal(t, 10, c.Len())
}
