package cache

import (
	"context"
	"time"

	"github.com/jellydator/ttlcache/v3"
)

type memoryStore struct {
	items *ttlcache.Cache[string, Entry]
}

// NewMemory returns an in-process Store with per-entry TTLs. There is no
// size bound or LRU policy: endpoint cardinality is bounded, so TTL expiry is
// the only eviction mechanism.
func NewMemory() Store {
	items := ttlcache.New[string, Entry](
		ttlcache.WithDisableTouchOnHit[string, Entry](),
	)
	return &memoryStore{items: items}
}

func (s *memoryStore) Get(_ context.Context, key string) (Entry, bool, error) {
	item := s.items.Get(key)
	if item == nil {
		return Entry{}, false, nil
	}
	entry := item.Value()
	if entry.Expired(time.Now()) {
		s.items.Delete(key)
		return Entry{}, false, nil
	}
	return entry, true, nil
}

func (s *memoryStore) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		// Non-positive TTL means the payload is not cacheable.
		s.items.Delete(key)
		return nil
	}
	now := time.Now().UTC()
	entry := Entry{
		Value:     append([]byte(nil), value...),
		StoredAt:  now,
		ExpiresAt: now.Add(ttl),
	}
	s.items.Set(key, entry, ttl)
	return nil
}

func (s *memoryStore) Clear(context.Context) error {
	s.items.DeleteAll()
	return nil
}

func (s *memoryStore) Close(context.Context) error {
	s.items.DeleteAll()
	return nil
}
