package rules

import (
	"context"
	"fmt"
	"time"

	"courtbook/shared/cache"
)

const redisLockPrefix = "lock:"

// RedisLockStore shares soft locks between instances through the JSON cache.
// Plain GET and SET keep it as advisory as LockManager.
type RedisLockStore struct {
	cache cache.RedisCache
}

func NewRedisLockStore(c cache.RedisCache) *RedisLockStore {
	return &RedisLockStore{cache: c}
}

func (s *RedisLockStore) Get(ctx context.Context, key string) (*Lock, error) {
	var lock Lock

	if err := s.cache.Get(ctx, redisLockPrefix+key, &lock); err != nil {
		if cache.IsMiss(err) {
			return nil, nil
		}

		return nil, fmt.Errorf("failed to get lock %s: %w", key, err)
	}

	return &lock, nil
}

// Set stores lock for ttl rounded up to whole seconds.
func (s *RedisLockStore) Set(ctx context.Context, key string, lock Lock, ttl time.Duration) error {
	seconds := int((ttl + time.Second - 1) / time.Second)
	if seconds < 1 {
		seconds = 1
	}

	if err := s.cache.Save(ctx, redisLockPrefix+key, lock, seconds); err != nil {
		return fmt.Errorf("failed to set lock %s: %w", key, err)
	}

	return nil
}

func (s *RedisLockStore) Delete(ctx context.Context, key string) error {
	if err := s.cache.Delete(ctx, redisLockPrefix+key); err != nil {
		return fmt.Errorf("failed to delete lock %s: %w", key, err)
	}

	return nil
}
