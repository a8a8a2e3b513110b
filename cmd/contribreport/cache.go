package main

import (
	"context"
	"fmt"
	"io"

	"github.com/go-redis/redis/v8"
	"github.com/m-zajac/contribreport/internal/app"
	"github.com/m-zajac/contribreport/internal/cache"
)

const (
	backendBolt  = "bolt"
	backendRedis = "redis"
)

// newCache builds persistent store selected by conf, fronted with lru cache.
// Returned closer releases the persistent store.
func newCache(ctx context.Context, conf Config) (app.Cache, io.Closer, error) {
	var (
		store  app.Cache
		closer io.Closer
	)
	switch conf.CacheBackend {
	case backendBolt:
		s, err := cache.NewBoltStore(conf.CacheDBPath, conf.CacheDBBucketName, conf.CacheTTL)
		if err != nil {
			return nil, nil, fmt.Errorf("creating bolt store: %w", err)
		}
		store, closer = s, s
	case backendRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     conf.RedisAddress,
			Password: conf.RedisPassword,
			DB:       conf.RedisDB,
		})
		s := cache.NewRedisStore(client, conf.RedisKeyPrefix, conf.CacheTTL)
		if err := s.Ping(ctx); err != nil {
			s.Close()
			return nil, nil, fmt.Errorf("connecting to redis at %s: %w", conf.RedisAddress, err)
		}
		store, closer = s, s
	default:
		return nil, nil, fmt.Errorf("unknown cache backend %q", conf.CacheBackend)
	}

	lruStore, err := cache.NewLRUStore(store, conf.CacheLRUSize, conf.CacheTTL)
	if err != nil {
		closer.Close()
		return nil, nil, fmt.Errorf("creating lru cache: %w", err)
	}

	return lruStore, closer, nil
}
