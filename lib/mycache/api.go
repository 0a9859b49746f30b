package mycache

import (
	"context"
	"os"
	"time"

	"github.com/MarcGrol/bookstorebackend/lib/mytime"
)

// Cache is a TTL-bound key-value store. All access is sliding: a successful
// Get resets the ttl of the entry. Entries whose ttl has elapsed are absent,
// whether or not the backend has actively evicted them yet.
//
//go:generate mockgen -source=api.go -package mycache -destination cache_mock.go Cache
type Cache interface {
	// Get returns the value stored under key and resets its ttl.
	// An absent or expired key yields exists=false, not an error.
	Get(c context.Context, key string, ttl time.Duration) (value []byte, exists bool, err error)

	// Set unconditionally overwrites the value and resets its ttl.
	Set(c context.Context, key string, value []byte, ttl time.Duration) error

	// CompareAndSwap atomically replaces the value stored under key, but only
	// if the stored value still equals expected. A nil expected means: only
	// write when the key is absent. Returns false (and no mutation) when the
	// stored value no longer matches.
	CompareAndSwap(c context.Context, key string, expected []byte, value []byte, ttl time.Duration) (swapped bool, err error)

	// Delete removes the key. Removing an absent key is not an error.
	Delete(c context.Context, key string) error
}

func New(c context.Context) (Cache, func(), error) {
	if os.Getenv("REDIS_ADDR") != "" {
		return newRedisCache(c, os.Getenv("REDIS_ADDR"))
	}

	return NewInMemoryCache(mytime.RealNower{}), func() {}, nil
}
