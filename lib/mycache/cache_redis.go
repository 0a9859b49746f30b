package mycache

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

type redisCache struct {
	client *redis.Client
}

// compareAndSwapScript atomically replaces the value under KEYS[1] with
// ARGV[2], but only when the stored value still equals ARGV[1].
var compareAndSwapScript = redis.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
	redis.call("set", KEYS[1], ARGV[2], "px", ARGV[3])
	return 1
end
return 0
`)

func newRedisCache(c context.Context, addr string) (*redisCache, func(), error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASSWORD"),
	})

	err := client.Ping(c).Err()
	if err != nil {
		return nil, func() {}, fmt.Errorf("error connecting to redis at %s: %s", addr, err)
	}

	return &redisCache{
			client: client,
		}, func() {
			client.Close()
		}, nil
}

func (s *redisCache) Get(c context.Context, key string, ttl time.Duration) ([]byte, bool, error) {
	value, err := s.client.GetEx(c, key, ttl).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis GETEX for key %s failed: %s", key, err)
	}

	return value, true, nil
}

func (s *redisCache) Set(c context.Context, key string, value []byte, ttl time.Duration) error {
	err := s.client.Set(c, key, value, ttl).Err()
	if err != nil {
		return fmt.Errorf("redis SET for key %s failed: %s", key, err)
	}

	return nil
}

func (s *redisCache) CompareAndSwap(c context.Context, key string, expected []byte, value []byte, ttl time.Duration) (bool, error) {
	if expected == nil {
		// Expect-absent: SET NX is atomic and honors the ttl
		swapped, err := s.client.SetNX(c, key, value, ttl).Result()
		if err != nil {
			return false, fmt.Errorf("redis SETNX for key %s failed: %s", key, err)
		}
		return swapped, nil
	}

	result, err := compareAndSwapScript.Run(c, s.client,
		[]string{key}, string(expected), string(value), ttl.Milliseconds()).Int64()
	if err != nil {
		return false, fmt.Errorf("redis compare-and-swap for key %s failed: %s", key, err)
	}

	return result == 1, nil
}

func (s *redisCache) Delete(c context.Context, key string) error {
	err := s.client.Del(c, key).Err()
	if err != nil {
		return fmt.Errorf("redis DEL for key %s failed: %s", key, err)
	}

	return nil
}
