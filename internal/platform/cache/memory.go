// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package cache

import (
	"context"
	"sync"
	"time"
)

type memoryItem struct {
	value   []byte
	expires time.Time
}

// MemoryStore is an in-process [Store]. A zero or negative TTL never expires.
type MemoryStore struct {
	mu    sync.RWMutex
	items map[string]memoryItem
	now   func() time.Time
}

// NewMemoryStore creates an empty in-process cache.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{items: make(map[string]memoryItem), now: time.Now}
}

func (store *MemoryStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	store.mu.RLock()
	item, ok := store.items[key]
	store.mu.RUnlock()

	if !ok {
		return nil, false, nil
	}

	if !item.expires.IsZero() && store.now().After(item.expires) {
		store.mu.Lock()
		delete(store.items, key)
		store.mu.Unlock()
		return nil, false, nil
	}

	return clone(item.value), true, nil
}

func (store *MemoryStore) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	item := memoryItem{value: clone(value)}
	if ttl > 0 {
		item.expires = store.now().Add(ttl)
	}

	store.mu.Lock()
	store.items[key] = item
	store.mu.Unlock()
	return nil
}

func (store *MemoryStore) Delete(_ context.Context, keys ...string) error {
	store.mu.Lock()
	for _, key := range keys {
		delete(store.items, key)
	}
	store.mu.Unlock()
	return nil
}

func clone(b []byte) []byte {
	if b == nil {
		return nil
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
