// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore is a [Store] backed by a shared go-redis client.
// The client lifecycle belongs to the caller.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore wraps an already connected client.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (store *RedisStore) Get(context context.Context, key string) ([]byte, bool, error) {
	value, err := store.client.Get(context, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis_cache_get_failed: %w", err)
	}
	return value, true, nil
}

func (store *RedisStore) Set(context context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl < 0 {
		ttl = 0
	}
	if err := store.client.Set(context, key, value, ttl).Err(); err != nil {
		return fmt.Errorf("redis_cache_set_failed: %w", err)
	}
	return nil
}

func (store *RedisStore) Delete(context context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	if err := store.client.Del(context, keys...).Err(); err != nil {
		return fmt.Errorf("redis_cache_delete_failed: %w", err)
	}
	return nil
}
