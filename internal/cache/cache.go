// Package cache provides the TTL result store behind the scraper registry.
//
// The cache is a best-effort optimization: implementations never surface
// errors, they degrade to a miss. Entries expire a fixed duration after
// insertion (no sliding window), and Contains must not refresh an entry's
// TTL so that cache probing stays a pure read.
package cache

import (
	"context"

	"padeltime/internal/availability"
)

// Store is the contract the registry caches through. Implementations must be
// safe for concurrent use; fetches for distinct keys must not serialize each
// other.
type Store interface {
	// Get returns the unexpired entry for key, if any.
	Get(ctx context.Context, key string) (*availability.CourtAvailability, bool)
	// Set stores value under key with the store's TTL, replacing any
	// previous entry.
	Set(ctx context.Context, key string, value *availability.CourtAvailability)
	// Contains reports whether an unexpired entry exists without touching
	// its TTL.
	Contains(ctx context.Context, key string) bool
	// Clear evicts every entry.
	Clear(ctx context.Context)
}
