// Package cache provides the time-boxed response cache consulted by the
// content client. Entries carry their own TTL; expired entries read as absent
// and are evicted lazily on access rather than by a background sweep.
package cache

import (
	"context"
	"time"
)

// Entry is a cached response payload with its storage window.
type Entry struct {
	Value     []byte    `json:"value"`
	StoredAt  time.Time `json:"storedAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Expired reports whether the entry's TTL has elapsed at the given instant.
func (e Entry) Expired(now time.Time) bool {
	return !e.ExpiresAt.IsZero() && now.After(e.ExpiresAt)
}

// Store is the response cache shared by all read operations of a client.
type Store interface {
	// Get returns the entry for key, or absent when never stored or expired.
	Get(ctx context.Context, key string) (Entry, bool, error)
	// Set overwrites any existing entry unconditionally.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	// Clear drops every entry. Invoked on credential changes and explicit
	// cache busts.
	Clear(ctx context.Context) error
	Close(ctx context.Context) error
}
