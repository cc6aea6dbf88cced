package cachemanager

import (
	"context"
	"time"

	"github.com/zjrosen/wayfarer/internal/log"
)

// ReadThroughCache consults a CacheManager before calling load. Only
// successful loads are stored, so a failed fetch is retried next time.
type ReadThroughCache[K comparable, V any, I any] struct {
	cache CacheManager[K, V]
	keyOf func(I) K
	load  func(ctx context.Context, input I) (V, error)
	ttl   time.Duration
}

// NewReadThroughCache wraps load. keyOf maps an input to its cache key.
// A nil cache or a ttl <= 0 makes every call go straight to load.
func NewReadThroughCache[K comparable, V any, I any](
	cache CacheManager[K, V],
	keyOf func(I) K,
	load func(ctx context.Context, input I) (V, error),
	ttl time.Duration,
) *ReadThroughCache[K, V, I] {
	return &ReadThroughCache[K, V, I]{cache: cache, keyOf: keyOf, load: load, ttl: ttl}
}

// Enabled reports whether results are cached.
func (r *ReadThroughCache[K, V, I]) Enabled() bool {
	return r.cache != nil && r.ttl > 0
}

// Get returns the cached value for input or loads and stores it. hit is
// true when load was not called.
func (r *ReadThroughCache[K, V, I]) Get(ctx context.Context, input I) (value V, hit bool, err error) {
	if !r.Enabled() {
		value, err = r.load(ctx, input)
		return value, false, err
	}

	key := r.keyOf(input)
	if cached, ok := r.cache.Get(ctx, key); ok {
		return cached, true, nil
	}

	value, err = r.load(ctx, input)
	if err != nil {
		log.Debug(log.CatCache, "read-through load failed", "key", key, "error", err)
		return value, false, err
	}
	r.cache.Set(ctx, key, value, r.ttl)
	return value, false, nil
}

// Invalidate drops the cached value for input.
func (r *ReadThroughCache[K, V, I]) Invalidate(ctx context.Context, input I) error {
	if !r.Enabled() {
		return nil
	}
	return r.cache.Delete(ctx, r.keyOf(input))
}
