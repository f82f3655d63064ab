package routecache

import (
	"context"
	"time"
)

// ReadThrough loads values with fn on a miss and caches successful results.
// Errors are never cached.
type ReadThrough[V any] struct {
	store Store[V]
	fn    func(ctx context.Context, key string) (V, error)
	ttl   time.Duration
	skip  bool
}

// NewReadThrough wraps store. When skip is true every call goes to fn.
func NewReadThrough[V any](store Store[V], fn func(ctx context.Context, key string) (V, error), ttl time.Duration, skip bool) *ReadThrough[V] {
	return &ReadThrough[V]{store: store, fn: fn, ttl: ttl, skip: skip}
}

// Get returns the cached value for key or loads it.
func (r *ReadThrough[V]) Get(ctx context.Context, key string) (V, error) {
	if r.skip {
		return r.fn(ctx, key)
	}
	if value, ok := r.store.Get(ctx, key); ok {
		return value, nil
	}

	value, err := r.fn(ctx, key)
	if err != nil {
		return value, err
	}
	r.store.Set(ctx, key, value, r.ttl)
	return value, nil
}

// Invalidate drops every cached value.
func (r *ReadThrough[V]) Invalidate(ctx context.Context) {
	if r.store == nil {
		return
	}
	r.store.Flush(ctx)
}
