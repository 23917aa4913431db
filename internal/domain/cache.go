package domain

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrCacheMiss is returned when a key is not found in the cache.
	ErrCacheMiss = errors.New("cache: key not found")

	// ErrCacheNoExpiration is returned for writes without a positive TTL.
	// Stored results must age out.
	ErrCacheNoExpiration = errors.New("cache: expiration must be positive")
)

// Cache is the key/value store holding finished evaluations.
type Cache interface {
	// Get returns ErrCacheMiss if the key is not found.
	Get(ctx context.Context, key string) (string, error)

	// Set stores value under key for the given expiration.
	Set(ctx context.Context, key string, value string, expiration time.Duration) error

	// Ping checks the health of the cache service.
	Ping(ctx context.Context) error
}
