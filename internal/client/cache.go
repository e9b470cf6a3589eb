package client

import (
	"strings"
	"sync"
	"time"
)

const (
	DefaultStaleTime = 5 * time.Minute
	DefaultGCTime    = 10 * time.Minute
)

// Cache keys are slash separated ("courses", "courses/<id>",
// "nodes/course/<courseId>", "nodes/<id>").
const (
	coursesKey = "courses"
	nodesKey   = "nodes"
)

func courseKey(id string) string { return coursesKey + "/" + id }

func courseNodesKey(courseID string) string { return nodesKey + "/course/" + courseID }

func nodeKey(id string) string { return nodesKey + "/" + id }

type cacheEntry struct {
	value     any
	fetchedAt time.Time
	usedAt    time.Time
}

// Cache holds query results. An entry younger than staleTime is served
// without a request; an entry unused for gcTime is dropped.
type Cache struct {
	staleTime time.Duration
	gcTime    time.Duration
	now       func() time.Time

	mu      sync.Mutex
	entries map[string]*cacheEntry
}

func NewCache(staleTime, gcTime time.Duration) *Cache {
	if staleTime <= 0 {
		staleTime = DefaultStaleTime
	}
	if gcTime <= 0 {
		gcTime = DefaultGCTime
	}
	return &Cache{
		staleTime: staleTime,
		gcTime:    gcTime,
		now:       time.Now,
		entries:   make(map[string]*cacheEntry),
	}
}

// Get returns the cached value and whether it is still fresh.
func (c *Cache) Get(key string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.now()
	c.gcLocked(now)
	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	e.usedAt = now
	return e.value, now.Sub(e.fetchedAt) < c.staleTime
}

func (c *Cache) Set(key string, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.now()
	c.entries[key] = &cacheEntry{value: value, fetchedAt: now, usedAt: now}
}

// Invalidate drops key and every key below it: "nodes" also drops
// "nodes/<id>" and "nodes/course/<courseId>".
func (c *Cache) Invalidate(prefix string) {
	prefix = strings.TrimSuffix(prefix, "/")
	c.mu.Lock()
	defer c.mu.Unlock()
	for k := range c.entries {
		if k == prefix || strings.HasPrefix(k, prefix+"/") {
			delete(c.entries, k)
		}
	}
}

func (c *Cache) Clear() {
	c.mu.Lock()
	c.entries = make(map[string]*cacheEntry)
	c.mu.Unlock()
}

func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func (c *Cache) gcLocked(now time.Time) {
	for k, e := range c.entries {
		if now.Sub(e.usedAt) >= c.gcTime {
			delete(c.entries, k)
		}
	}
}
