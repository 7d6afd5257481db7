// Package cache provides the bounded read-through caches used in front of
// the ERP: an in-process LRU with TTL and a shared Redis cache. Both store
// JSON so callers see the same semantics regardless of backend.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// Local is a size-bounded in-process cache. Entries expire after ttl and the
// least recently used entry is evicted when size is reached.
type Local struct {
	lru *expirable.LRU[string, []byte]
}

// NewLocal creates an in-process cache holding at most size entries.
func NewLocal(size int, ttl time.Duration) *Local {
	return &Local{lru: expirable.NewLRU[string, []byte](size, nil, ttl)}
}

// Get decodes the entry for key into dest and reports whether it was present.
func (c *Local) Get(_ context.Context, key string, dest any) (bool, error) {
	raw, ok := c.lru.Get(key)
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		c.lru.Remove(key)
		return false, fmt.Errorf("cache: decode %s: %w", key, err)
	}
	return true, nil
}

// Set stores value under key.
func (c *Local) Set(_ context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("cache: encode %s: %w", key, err)
	}
	c.lru.Add(key, raw)
	return nil
}

// Delete removes keys. Missing keys are ignored.
func (c *Local) Delete(_ context.Context, keys ...string) error {
	for _, k := range keys {
		c.lru.Remove(k)
	}
	return nil
}

// Len returns the number of live entries.
func (c *Local) Len() int {
	return c.lru.Len()
}
