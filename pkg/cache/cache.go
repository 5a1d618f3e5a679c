// Package cache stores computed layouts so repeated requests for the same
// item sizes and constraints skip the partition search.
//
// Backends:
//   - [NullCache]: never stores anything (--no-cache, tests)
//   - [FileCache]: one JSON file per entry under the XDG cache directory
//   - [RedisCache]: shared cache for the HTTP server
//   - [MongoCache]: shared cache backed by a collection with a TTL index
//
// Keys are built by a [Keyer] so every backend sees the same key layout.
package cache

import (
	"context"
	"fmt"
	"time"
)

// TTLLayout is the default lifetime of a cached layout.
const TTLLayout = 7 * 24 * time.Hour

// Cache is a byte-oriented key/value store with per-entry expiration.
//
// Get reports a miss with found=false and a nil error. Expired entries are
// reported as misses.
type Cache interface {
	Get(ctx context.Context, key string) (data []byte, found bool, err error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Backend names accepted by [Open].
const (
	BackendNone  = "none"
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendMongo = "mongo"
)

// Options selects and configures a backend for [Open].
type Options struct {
	Backend string
	Dir     string
	Redis   RedisOptions
	Mongo   MongoOptions
}

// Open returns the cache named by opts.Backend. An empty backend means
// BackendFile when Dir is set and BackendNone otherwise.
func Open(ctx context.Context, opts Options) (Cache, error) {
	backend := opts.Backend
	if backend == "" {
		backend = BackendNone
		if opts.Dir != "" {
			backend = BackendFile
		}
	}

	switch backend {
	case BackendNone:
		return NewNullCache(), nil
	case BackendFile:
		return NewFileCache(opts.Dir)
	case BackendRedis:
		return NewRedisCache(ctx, opts.Redis)
	case BackendMongo:
		return NewMongoCache(ctx, opts.Mongo)
	default:
		return nil, fmt.Errorf("unknown cache backend %q", backend)
	}
}
