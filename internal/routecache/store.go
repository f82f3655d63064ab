// Package routecache caches parsed and resolved navigation paths keyed by URI.
package routecache

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/zjrosen/waypoint/internal/log"
)

const (
	DefaultExpiration      = 10 * time.Minute
	DefaultCleanupInterval = 30 * time.Minute
)

// Store is a typed key/value cache.
type Store[V any] interface {
	Get(ctx context.Context, key string) (V, bool)
	Set(ctx context.Context, key string, value V, ttl time.Duration)
	Delete(ctx context.Context, keys ...string)
	Flush(ctx context.Context)
	Len() int
}

// MemoryStore is an in-process Store backed by go-cache.
type MemoryStore[V any] struct {
	name  string
	cache *gocache.Cache
}

var _ Store[int] = (*MemoryStore[int])(nil)

// NewMemoryStore creates a store whose entries expire after defaultExpiration.
func NewMemoryStore[V any](name string, defaultExpiration, cleanupInterval time.Duration) *MemoryStore[V] {
	return &MemoryStore[V]{
		name:  name,
		cache: gocache.New(defaultExpiration, cleanupInterval),
	}
}

// Get returns the value stored under key.
func (s *MemoryStore[V]) Get(_ context.Context, key string) (V, bool) {
	var zero V

	value, found := s.cache.Get(key)
	if !found {
		return zero, false
	}
	v, ok := value.(V)
	if !ok {
		log.Error(log.CatCache, "wrong type stored in cache", "cache", s.name, "key", key)
		return zero, false
	}

	log.Debug(log.CatCache, "cache hit", "cache", s.name, "key", key)
	return v, true
}

// Set stores value under key. A zero ttl uses the store's default expiration.
func (s *MemoryStore[V]) Set(_ context.Context, key string, value V, ttl time.Duration) {
	if ttl == 0 {
		ttl = gocache.DefaultExpiration
	}
	s.cache.Set(key, value, ttl)
}

func (s *MemoryStore[V]) Delete(_ context.Context, keys ...string) {
	for _, key := range keys {
		s.cache.Delete(key)
	}
}

func (s *MemoryStore[V]) Flush(context.Context) {
	s.cache.Flush()
}

// Len counts stored items, including expired ones not yet cleaned up.
func (s *MemoryStore[V]) Len() int {
	return s.cache.ItemCount()
}
