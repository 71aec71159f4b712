package cache

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

const defaultLRUSize = 1024

// LRU is a size-bounded in-process cache with per-entry TTL
type LRU struct {
	cache *expirable.LRU[string, []byte]
}

// NewLRU creates an in-process cache. A non-positive size falls back to 1024 entries.
func NewLRU(size int, ttl time.Duration) *LRU {
	if size <= 0 {
		size = defaultLRUSize
	}
	return &LRU{cache: expirable.NewLRU[string, []byte](size, nil, ttl)}
}

func (c *LRU) Get(_ context.Context, key string) ([]byte, bool, error) {
	v, ok := c.cache.Get(key)
	return v, ok, nil
}

func (c *LRU) Set(_ context.Context, key string, value []byte) error {
	c.cache.Add(key, value)
	return nil
}

func (c *LRU) Delete(_ context.Context, key string) error {
	c.cache.Remove(key)
	return nil
}

// Len reports the number of live entries
func (c *LRU) Len() int {
	return c.cache.Len()
}
