package session

import (
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// Cache is the ephemeral store of query results shared by all sessions of
// a process. Entries are namespaced by session scope so one session can be
// purged wholesale on logout.
type Cache struct {
	lru *expirable.LRU[string, []byte]
}

// NewCache returns a cache holding at most size entries for ttl each.
func NewCache(size int, ttl time.Duration) *Cache {
	if size <= 0 {
		size = 256
	}
	return &Cache{lru: expirable.NewLRU[string, []byte](size, nil, ttl)}
}

func cacheKey(scope, key string) string {
	return scope + "\x00" + key
}

func (c *Cache) get(scope, key string) ([]byte, bool) {
	return c.lru.Get(cacheKey(scope, key))
}

func (c *Cache) add(scope, key string, value []byte) {
	c.lru.Add(cacheKey(scope, key), value)
}

func (c *Cache) purge(scope string) {
	prefix := scope + "\x00"
	for _, k := range c.lru.Keys() {
		if strings.HasPrefix(k, prefix) {
			c.lru.Remove(k)
		}
	}
}

// Len reports the number of live entries.
func (c *Cache) Len() int { return c.lru.Len() }

// ScopedCache is the view of Cache belonging to one session.
type ScopedCache struct {
	cache *Cache
	scope string
}

func (s ScopedCache) Get(key string) ([]byte, bool) {
	if s.cache == nil {
		return nil, false
	}
	return s.cache.get(s.scope, key)
}

func (s ScopedCache) Add(key string, value []byte) {
	if s.cache != nil {
		s.cache.add(s.scope, key, value)
	}
}

// Purge drops every entry of this session.
func (s ScopedCache) Purge() {
	if s.cache != nil {
		s.cache.purge(s.scope)
	}
}
