package mycache

import (
	"bytes"
	"context"
	"sync"
	"time"

	"github.com/MarcGrol/bookstorebackend/lib/mytime"
)

type entry struct {
	value     []byte
	expiresAt time.Time
}

type InMemoryCache struct {
	sync.Mutex
	nower   mytime.Nower
	entries map[string]entry
}

func NewInMemoryCache(nower mytime.Nower) *InMemoryCache {
	return &InMemoryCache{
		nower:   nower,
		entries: make(map[string]entry),
	}
}

// lookup returns the live value under key. Expired entries are evicted
// lazily here so that they are indistinguishable from absent ones.
// Caller must hold the lock.
func (s *InMemoryCache) lookup(key string, now time.Time) ([]byte, bool) {
	e, exists := s.entries[key]
	if !exists {
		return nil, false
	}
	if !e.expiresAt.After(now) {
		delete(s.entries, key)
		return nil, false
	}
	return e.value, true
}

func (s *InMemoryCache) Get(c context.Context, key string, ttl time.Duration) ([]byte, bool, error) {
	s.Lock()
	defer s.Unlock()

	now := s.nower.Now()
	value, exists := s.lookup(key, now)
	if !exists {
		return nil, false, nil
	}

	// Sliding expiration: every read extends the window
	s.entries[key] = entry{value: value, expiresAt: now.Add(ttl)}

	return append([]byte(nil), value...), true, nil
}

func (s *InMemoryCache) Set(c context.Context, key string, value []byte, ttl time.Duration) error {
	s.Lock()
	defer s.Unlock()

	s.entries[key] = entry{
		value:     append([]byte(nil), value...),
		expiresAt: s.nower.Now().Add(ttl),
	}

	return nil
}

func (s *InMemoryCache) CompareAndSwap(c context.Context, key string, expected []byte, value []byte, ttl time.Duration) (bool, error) {
	s.Lock()
	defer s.Unlock()

	now := s.nower.Now()
	current, exists := s.lookup(key, now)

	if expected == nil {
		if exists {
			return false, nil
		}
	} else {
		if !exists || !bytes.Equal(current, expected) {
			return false, nil
		}
	}

	s.entries[key] = entry{
		value:     append([]byte(nil), value...),
		expiresAt: now.Add(ttl),
	}

	return true, nil
}

func (s *InMemoryCache) Delete(c context.Context, key string) error {
	s.Lock()
	defer s.Unlock()

	delete(s.entries, key)

	return nil
}
