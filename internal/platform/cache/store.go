// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package cache provides a small byte-oriented key/value cache with TTLs.

Two implementations share the [Store] contract:

  - RedisStore: production backend, shared across API replicas.
  - MemoryStore: process-local backend for single-replica deployments.

Callers treat the cache as best-effort. A failed Get is handled like a miss.
*/
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// Store is the contract every cache backend satisfies.
type Store interface {
	Get(context context.Context, key string) (value []byte, found bool, err error)
	Set(context context.Context, key string, value []byte, ttl time.Duration) error
	Delete(context context.Context, keys ...string) error
}

// GetJSON decodes a cached JSON value into target. found is false on a miss.
func GetJSON(context context.Context, store Store, key string, target any) (bool, error) {
	raw, found, err := store.Get(context, key)
	if err != nil || !found {
		return false, err
	}

	if err := json.Unmarshal(raw, target); err != nil {
		return false, fmt.Errorf("cache: decode %s: %w", key, err)
	}
	return true, nil
}

// SetJSON encodes value as JSON and stores it under key.
func SetJSON(context context.Context, store Store, key string, value any, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("cache: encode %s: %w", key, err)
	}
	return store.Set(context, key, raw, ttl)
}
