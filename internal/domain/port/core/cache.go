package core

import (
	"context"
	"time"
)

// Cache is a key-value store holding serialized entity snapshots with a
// per-entry TTL. Implementations must treat deleting an absent key as a
// no-op so invalidation stays idempotent.
type Cache interface {
	// Get returns the cached value and whether the key was present and
	// unexpired.
	Get(ctx context.Context, key string) (string, bool)
	// Set stores value under key for the given TTL
	Set(ctx context.Context, key, value string, ttl time.Duration)
	// Delete removes key if present
	Delete(ctx context.Context, key string)
	// Clear drops every entry
	Clear(ctx context.Context)
}
