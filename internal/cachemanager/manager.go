// Package cachemanager provides small typed caches: an in-memory TTL store and a
// read-through wrapper that fills it on a miss.
package cachemanager

import (
	"context"
	"time"
)

type CacheManager[K comparable, V any] interface {
	Get(ctx context.Context, key K) (V, bool)
	GetWithRefresh(ctx context.Context, key K, ttl time.Duration) (V, bool)
	Set(ctx context.Context, key K, value V, ttl time.Duration)
	// Take removes the entry and hands it to the caller.
	Take(ctx context.Context, key K) (V, bool)
	Delete(ctx context.Context, keys ...K) error
	Flush(ctx context.Context) error
}
