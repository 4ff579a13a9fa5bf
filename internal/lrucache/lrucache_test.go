package lrucache

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetPutRoundTrip(t *testing.T) {
	c := New(2)
	c.Put("a", 1)
	v, ok := c.Get("a")
	require.True(t, ok)
	require.Equal(t, 1, v)
}

func TestEvictsLeastRecentlyUsed(t *testing.T) {
	c := New(2)
	c.Put("a", 1)
	c.Put("b", 2)
	c.Put("c", 3) // evicts "a"

	_, ok := c.Get("a")
	require.False(t, ok)
	_, ok = c.Get("b")
	require.True(t, ok)
	_, ok = c.Get("c")
	require.True(t, ok)
}

func TestGetPromotesToMostRecentlyUsed(t *testing.T) {
	c := New(2)
	c.Put("a", 1)
	c.Put("b", 2)
	c.Get("a") // "a" now most recent
	c.Put("c", 3) // evicts "b"

	_, ok := c.Get("b")
	require.False(t, ok)
	_, ok = c.Get("a")
	require.True(t, ok)
}

func TestUnboundedNeverEvicts(t *testing.T) {
	c := New(0)
	for i := 0; i < 100; i++ {
		c.Put(string(rune(i)), i)
	}
	require.Equal(t, 100, c.Len())
}

func TestClearRemovesEverything(t *testing.T) {
	c := New(10)
	c.Put("a", 1)
	c.Clear()
	require.Equal(t, 0, c.Len())
	_, ok := c.Get("a")
	require.False(t, ok)
}
