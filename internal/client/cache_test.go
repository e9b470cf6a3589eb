package client

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestCacheInvalidatePrefix(t *testing.T) {
	c := NewCache(time.Minute, time.Hour)
	for _, k := range []string{"courses", "courses/1", "nodes/1", "nodes/course/1", "nodesx"} {
		c.Set(k, k)
	}

	c.Invalidate("nodes")
	_, ok := c.Get("nodes/1")
	require.False(t, ok)
	_, ok = c.Get("nodes/course/1")
	require.False(t, ok)
	_, ok = c.Get("nodesx")
	require.True(t, ok, "prefix match must stop at a path segment")

	c.Invalidate("courses/1")
	_, ok = c.Get("courses")
	require.True(t, ok)
}

func TestCacheStaleAndGC(t *testing.T) {
	c := NewCache(0, 0)
	now := time.Unix(1_700_000_000, 0)
	c.now = func() time.Time { return now }

	c.Set("courses", 1)
	now = now.Add(DefaultStaleTime)
	v, fresh := c.Get("courses")
	require.False(t, fresh)
	require.Equal(t, 1, v)

	now = now.Add(DefaultGCTime)
	v, fresh = c.Get("courses")
	require.False(t, fresh)
	require.Nil(t, v)
	require.Zero(t, c.Len())
}
