// Package cache provides the schedule cache tiers used by the availability service.
package cache

import "context"

// Cache stores opaque values by key. A miss is reported with ok=false and a nil error.
type Cache interface {
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// Tiered reads through L1 then L2, promoting L2 hits into L1. Writes and deletes go to both.
type Tiered struct {
	l1 Cache
	l2 Cache
}

// NewTiered combines a fast local cache with a shared one
func NewTiered(l1, l2 Cache) *Tiered {
	return &Tiered{l1: l1, l2: l2}
}

func (t *Tiered) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if v, ok, err := t.l1.Get(ctx, key); err == nil && ok {
		return v, true, nil
	}

	v, ok, err := t.l2.Get(ctx, key)
	if err != nil || !ok {
		return nil, false, err
	}
	_ = t.l1.Set(ctx, key, v)
	return v, true, nil
}

func (t *Tiered) Set(ctx context.Context, key string, value []byte) error {
	if err := t.l1.Set(ctx, key, value); err != nil {
		return err
	}
	return t.l2.Set(ctx, key, value)
}

func (t *Tiered) Delete(ctx context.Context, key string) error {
	if err := t.l1.Delete(ctx, key); err != nil {
		return err
	}
	return t.l2.Delete(ctx, key)
}
