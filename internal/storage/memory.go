package storage

import (
	"container/list"
	"context"
	"sync"
)

const defaultMemoryCap = 128

// MemoryStore is a bounded in-memory document store. When the number of
// documents exceeds the cap, the least recently used entry is evicted.
// Safe for concurrent use.
type MemoryStore struct {
	mu      sync.Mutex
	cap     int
	entries map[string]*list.Element
	order   *list.List // front = most recently used
}

type memoryEntry struct {
	id      string
	content string
}

// NewMemoryStore creates a MemoryStore holding at most capacity documents.
// If capacity <= 0, the default (128) is used.
func NewMemoryStore(capacity int) *MemoryStore {
	if capacity <= 0 {
		capacity = defaultMemoryCap
	}
	return &MemoryStore{
		cap:     capacity,
		entries: make(map[string]*list.Element),
		order:   list.New(),
	}
}

// Put stores content under id, evicting the least recently used document
// if the store is full.
func (m *MemoryStore) Put(_ context.Context, id, content string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if el, ok := m.entries[id]; ok {
		el.Value.(*memoryEntry).content = content
		m.order.MoveToFront(el)
		return nil
	}

	m.entries[id] = m.order.PushFront(&memoryEntry{id: id, content: content})

	if m.order.Len() > m.cap {
		oldest := m.order.Back()
		if oldest != nil {
			m.order.Remove(oldest)
			delete(m.entries, oldest.Value.(*memoryEntry).id)
		}
	}
	return nil
}

// Get returns the content stored under id and whether it exists. A hit
// refreshes the entry's recency.
func (m *MemoryStore) Get(_ context.Context, id string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	el, ok := m.entries[id]
	if !ok {
		return "", false, nil
	}
	m.order.MoveToFront(el)
	return el.Value.(*memoryEntry).content, true, nil
}

// Len returns the number of stored documents.
func (m *MemoryStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.order.Len()
}
