package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	lru "github.com/hashicorp/golang-lru"
	"github.com/m-zajac/contribreport/internal/app"
)

// LRUStore wraps app.Cache with in-memory caching layer.
// Reads go to the underlying store on miss, writes go to both.
type LRUStore struct {
	store app.Cache
	cache *lru.Cache
	ttl   time.Duration
}

var _ app.Cache = &LRUStore{}

// NewLRUStore creates new LRUStore instance. Zero ttl keeps entries until evicted.
func NewLRUStore(store app.Cache, size int, ttl time.Duration) (*LRUStore, error) {
	if size <= 0 {
		return nil, errors.New("cache size must be greater than 0")
	}
	cache, err := lru.New(size)
	if err != nil {
		return nil, fmt.Errorf("creating lru cache: %w", err)
	}

	return &LRUStore{
		store: store,
		cache: cache,
		ttl:   ttl,
	}, nil
}

// Get returns hash saved for given key.
func (s *LRUStore) Get(ctx context.Context, key string) (app.Hash, bool, error) {
	val, ok := s.cache.Get(key)
	if ok {
		entry := val.(lruEntry)
		if s.ttl <= 0 || entry.created.Add(s.ttl).After(time.Now()) {
			return cloneHash(entry.data), true, nil
		}
		s.cache.Remove(key)
	}

	h, ok, err := s.store.Get(ctx, key)
	if err != nil || !ok {
		return h, ok, err
	}
	s.add(key, h)

	return h, true, nil
}

// Set stores given hash under given key. Empty hashes are ignored.
func (s *LRUStore) Set(ctx context.Context, key string, h app.Hash) error {
	if len(h) == 0 {
		return nil
	}
	if err := s.store.Set(ctx, key, h); err != nil {
		return err
	}
	s.add(key, h)

	return nil
}

func (s *LRUStore) add(key string, h app.Hash) {
	s.cache.Add(key, lruEntry{
		created: time.Now(),
		data:    cloneHash(h),
	})
}

func cloneHash(h app.Hash) app.Hash {
	return append(app.Hash(nil), h...)
}

type lruEntry struct {
	created time.Time
	data    app.Hash
}
