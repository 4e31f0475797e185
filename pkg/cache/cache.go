// Package cache provides the in-memory store for fetched README
// markdown. Entries live for a fixed TTL and are evicted by the
// go-cache janitor; nothing survives a process restart.
package cache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
)

const (
	// DefaultTTL is how long a fetched README stays valid.
	DefaultTTL = time.Hour

	cleanupInterval = 10 * time.Minute
)

// ReadmeCache maps "owner/repo" keys to raw markdown.
type ReadmeCache struct {
	localCache *gocache.Cache
}

// New creates a ReadmeCache with the given TTL.
func New(ttl time.Duration) *ReadmeCache {
	return &ReadmeCache{
		localCache: gocache.New(ttl, cleanupInterval),
	}
}

// NewDefault creates a ReadmeCache with the default one hour TTL.
func NewDefault() *ReadmeCache {
	return New(DefaultTTL)
}

// Get returns the cached markdown for key, if present and unexpired.
func (c *ReadmeCache) Get(key string) (string, bool) {
	v, ok := c.localCache.Get(key)
	if !ok {
		return "", false
	}
	return v.(string), true
}

// Set stores markdown under key with the cache's TTL.
func (c *ReadmeCache) Set(key, markdown string) {
	c.localCache.Set(key, markdown, gocache.DefaultExpiration)
}
