package cache

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestLRUGetSetDelete(t *testing.T) {
	ctx := context.Background()
	c := NewLRU(2, time.Minute)

	if _, ok, _ := c.Get(ctx, "a"); ok {
		t.Fatal("expected miss on empty cache")
	}
	_ = c.Set(ctx, "a", []byte("1"))
	_ = c.Set(ctx, "b", []byte("2"))
	_ = c.Set(ctx, "c", []byte("3"))

	if _, ok, _ := c.Get(ctx, "a"); ok {
		t.Fatal("expected oldest entry to be evicted")
	}
	if v, ok, _ := c.Get(ctx, "c"); !ok || string(v) != "3" {
		t.Fatalf("expected hit for c, got %q %v", v, ok)
	}

	_ = c.Delete(ctx, "c")
	if _, ok, _ := c.Get(ctx, "c"); ok {
		t.Fatal("expected miss after delete")
	}
}

func TestLRUExpires(t *testing.T) {
	ctx := context.Background()
	c := NewLRU(10, 20*time.Millisecond)
	_ = c.Set(ctx, "a", []byte("1"))
	time.Sleep(60 * time.Millisecond)
	if _, ok, _ := c.Get(ctx, "a"); ok {
		t.Fatal("expected entry to expire")
	}
}

func TestRedisNilClientIsNoop(t *testing.T) {
	ctx := context.Background()
	c := NewRedis(nil, "availability:", time.Minute)
	if err := c.Set(ctx, "k", []byte("v")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok, err := c.Get(ctx, "k"); ok || err != nil {
		t.Fatalf("expected silent miss, got ok=%v err=%v", ok, err)
	}
	if err := c.Delete(ctx, "k"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

type failingCache struct{ err error }

func (f failingCache) Get(context.Context, string) ([]byte, bool, error) { return nil, false, f.err }
func (f failingCache) Set(context.Context, string, []byte) error        { return f.err }
func (f failingCache) Delete(context.Context, string) error             { return f.err }

func TestTieredPromotesL2Hits(t *testing.T) {
	ctx := context.Background()
	l1 := NewLRU(10, time.Minute)
	l2 := NewLRU(10, time.Minute)
	tiered := NewTiered(l1, l2)

	_ = l2.Set(ctx, "k", []byte("shared"))
	v, ok, err := tiered.Get(ctx, "k")
	if err != nil || !ok || string(v) != "shared" {
		t.Fatalf("expected L2 hit, got %q %v %v", v, ok, err)
	}
	if v, ok, _ := l1.Get(ctx, "k"); !ok || string(v) != "shared" {
		t.Fatal("expected L2 hit to be promoted into L1")
	}

	_ = tiered.Delete(ctx, "k")
	if _, ok, _ := l1.Get(ctx, "k"); ok {
		t.Fatal("expected L1 delete")
	}
	if _, ok, _ := l2.Get(ctx, "k"); ok {
		t.Fatal("expected L2 delete")
	}
}

func TestTieredSurfacesL2Errors(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("connection refused")
	tiered := NewTiered(NewLRU(10, time.Minute), failingCache{err: boom})

	if _, _, err := tiered.Get(ctx, "k"); !errors.Is(err, boom) {
		t.Fatalf("expected L2 error, got %v", err)
	}
	if err := tiered.Set(ctx, "k", []byte("v")); !errors.Is(err, boom) {
		t.Fatalf("expected L2 error on set, got %v", err)
	}
	// the local tier still took the write
	if v, ok, err := tiered.Get(ctx, "k"); err != nil || !ok || string(v) != "v" {
		t.Fatalf("expected L1 hit, got %q %v %v", v, ok, err)
	}
}
