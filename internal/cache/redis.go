package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/m-zajac/contribreport/internal/app"
)

// RedisStore is an app.Cache keeping every entry as a redis hash.
// Fields are returned in the order redis reports them, which for small hashes is insertion order.
type RedisStore struct {
	client    redis.UniversalClient
	keyPrefix string
	ttl       time.Duration
}

var _ app.Cache = &RedisStore{}

// NewRedisStore creates new RedisStore instance. Zero ttl means entries never expire.
func NewRedisStore(client redis.UniversalClient, keyPrefix string, ttl time.Duration) *RedisStore {
	return &RedisStore{
		client:    client,
		keyPrefix: keyPrefix,
		ttl:       ttl,
	}
}

// Ping checks redis connection.
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Get returns hash saved for given key.
func (s *RedisStore) Get(ctx context.Context, key string) (app.Hash, bool, error) {
	// Raw HGETALL keeps the field order, typed HGetAll decodes into a map.
	vals, err := s.client.Do(ctx, "hgetall", s.fullKey(key)).Slice()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("reading %s from redis: %w", key, err)
	}
	if len(vals) == 0 {
		return nil, false, nil
	}
	if len(vals)%2 != 0 {
		return nil, false, fmt.Errorf("reading %s from redis: odd number of hash elements", key)
	}

	h := make(app.Hash, 0, len(vals)/2)
	for i := 0; i < len(vals); i += 2 {
		h = append(h, app.Field{
			Key:   fmt.Sprint(vals[i]),
			Value: fmt.Sprint(vals[i+1]),
		})
	}

	return h, true, nil
}

// Set replaces hash stored under given key. Empty hashes are ignored.
func (s *RedisStore) Set(ctx context.Context, key string, h app.Hash) error {
	if len(h) == 0 {
		return nil
	}

	values := make([]interface{}, 0, 2*len(h))
	for _, f := range h {
		values = append(values, f.Key, f.Value)
	}

	fullKey := s.fullKey(key)
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, fullKey)
		pipe.HSet(ctx, fullKey, values...)
		if s.ttl > 0 {
			pipe.Expire(ctx, fullKey, s.ttl)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("writing %s to redis: %w", key, err)
	}

	return nil
}

// Close closes redis client.
func (s *RedisStore) Close() error {
	return s.client.Close()
}

func (s *RedisStore) fullKey(key string) string {
	return s.keyPrefix + key
}
