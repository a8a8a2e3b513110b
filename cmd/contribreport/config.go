package main

import (
	"time"

	"github.com/m-zajac/contribreport/internal/app"
)

// Config is the container for app configuration
type Config struct {
	// LogLevel - logrus level name
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	// GithubAPIAddress - address for rest api with protocol
	GithubAPIAddress string `envconfig:"GITHUB_API_ADDRESS" default:"https://api.github.com"`

	// GithubAPIRateLimit - max frequency for github rest api calls, 0 disables limiting
	GithubAPIRateLimit float64 `envconfig:"GITHUB_API_RATE_LIMIT" default:"10"`

	// GithubTimeout - timeout for the whole report generation, 0 means no timeout
	GithubTimeout time.Duration `envconfig:"GITHUB_TIMEOUT" default:"0"`

	// Workers - number of repositories processed in parallel, 0 means number of CPUs
	Workers int `envconfig:"WORKERS" default:"0"`

	// LanguagePolicy - languages reported for contributors of many repositories: first, last or union
	LanguagePolicy app.LanguagePolicy `envconfig:"LANGUAGE_POLICY" default:"first"`

	// IsolateFailures - skip failed repositories instead of aborting
	IsolateFailures bool `envconfig:"ISOLATE_FAILURES" default:"false"`

	// CacheBackend - persistent cache store: bolt or redis
	CacheBackend string `envconfig:"CACHE_BACKEND" default:"bolt"`

	// CacheDBPath - filepath for bolt db data
	CacheDBPath string `envconfig:"CACHE_DB_PATH" default:"./contribreport.data"`

	// CacheDBBucketName - bolt db bucket name
	CacheDBBucketName string `envconfig:"CACHE_DB_BUCKET_NAME" default:"github"`

	// CacheTTL - maximum lifetime for cache entries, 0 means entries never expire
	CacheTTL time.Duration `envconfig:"CACHE_TTL" default:"24h"`

	// CacheLRUSize - maximum number of entries kept in memory
	CacheLRUSize int `envconfig:"CACHE_LRU_SIZE" default:"10000"`

	// RedisAddress - redis host:port, used with redis cache backend
	RedisAddress string `envconfig:"REDIS_ADDRESS" default:"localhost:6379"`

	// RedisPassword - optional redis password
	RedisPassword string `envconfig:"REDIS_PASSWORD" default:""`

	// RedisDB - redis database number
	RedisDB int `envconfig:"REDIS_DB" default:"0"`

	// RedisKeyPrefix - prefix for all cache keys stored in redis
	RedisKeyPrefix string `envconfig:"REDIS_KEY_PREFIX" default:"contribreport:"`
}
