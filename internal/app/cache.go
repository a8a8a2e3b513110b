package app

import (
	"context"
	"fmt"
)

// Cache stores flat, hash shaped records by key.
// Implementations must be safe for concurrent use.
//
// Setting an empty Hash is a no-op, and an empty Hash is never reported as found.
type Cache interface {
	Get(ctx context.Context, key string) (Hash, bool, error)
	Set(ctx context.Context, key string, h Hash) error
}

// Field is a single Hash entry.
type Field struct {
	Key   string
	Value string
}

// Hash is an ordered string to string mapping.
type Hash []Field

// Value returns value stored under key.
func (h Hash) Value(key string) (string, bool) {
	for _, f := range h {
		if f.Key == key {
			return f.Value, true
		}
	}

	return "", false
}

// Keys returns all keys in order.
func (h Hash) Keys() []string {
	keys := make([]string, 0, len(h))
	for _, f := range h {
		keys = append(keys, f.Key)
	}

	return keys
}

// ContributorCacheKey returns cache key for contributor record.
func ContributorCacheKey(id int64) string {
	return fmt.Sprintf("contributor:%d", id)
}

// LanguagesCacheKey returns cache key for repository languages.
func LanguagesCacheKey(repoID int64) string {
	return fmt.Sprintf("languages:%d", repoID)
}
