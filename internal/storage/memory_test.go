package storage

import (
	"context"
	"fmt"
	"sync"
	"testing"
)

func TestMemoryStore_PutGet(t *testing.T) {
	m := NewMemoryStore(4)
	ctx := context.Background()

	if err := m.Put(ctx, "a", "alpha"); err != nil {
		t.Fatalf("Put() error: %v", err)
	}

	content, ok, err := m.Get(ctx, "a")
	if err != nil || !ok || content != "alpha" {
		t.Errorf("Get(a) = (%q, %v, %v), want (alpha, true, nil)", content, ok, err)
	}

	if _, ok, _ := m.Get(ctx, "missing"); ok {
		t.Error("Get(missing) ok = true, want false")
	}
}

func TestMemoryStore_Overwrite(t *testing.T) {
	m := NewMemoryStore(4)
	ctx := context.Background()

	m.Put(ctx, "a", "v1")
	m.Put(ctx, "a", "v2")

	content, _, _ := m.Get(ctx, "a")
	if content != "v2" {
		t.Errorf("content = %q, want v2", content)
	}
	if m.Len() != 1 {
		t.Errorf("Len() = %d, want 1", m.Len())
	}
}

func TestMemoryStore_EvictsLRU(t *testing.T) {
	m := NewMemoryStore(2)
	ctx := context.Background()

	m.Put(ctx, "a", "1")
	m.Put(ctx, "b", "2")
	m.Get(ctx, "a") // refresh a; b is now the eviction candidate
	m.Put(ctx, "c", "3")

	if _, ok, _ := m.Get(ctx, "b"); ok {
		t.Error("b survived eviction, want it evicted as least recently used")
	}
	if _, ok, _ := m.Get(ctx, "a"); !ok {
		t.Error("a was evicted, want it retained")
	}
	if m.Len() != 2 {
		t.Errorf("Len() = %d, want 2", m.Len())
	}
}

func TestMemoryStore_ConcurrentAccess(t *testing.T) {
	m := NewMemoryStore(64)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				id := fmt.Sprintf("doc-%d-%d", n, j%8)
				m.Put(ctx, id, "content")
				m.Get(ctx, id)
			}
		}(i)
	}
	wg.Wait()
}
