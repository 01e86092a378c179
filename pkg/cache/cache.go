package cache

import (
	"container/list"
	"sync"
	"time"
)

// Store is the injectable contract for the per-entity context cache. Keys are
// source-qualified, e.g. "call:<id>" or "company:<id>"; values are serialized
// context strings.
type Store interface {
	Get(key string) (string, bool)
	Set(key, value string)
}

type memoryEntry struct {
	key       string
	value     string
	expiresAt time.Time
}

// Memory is a bounded in-memory Store. Entries expire after a fixed TTL and
// are evicted lazily on Get. When Set would exceed capacity, the
// oldest-INSERTED entry is evicted first. This is deliberately not LRU:
// Get never refreshes an entry's position.
type Memory struct {
	mu       sync.Mutex
	ttl      time.Duration
	capacity int
	entries  map[string]*list.Element
	order    *list.List // front = oldest inserted
	now      func() time.Time
}

func NewMemory(ttl time.Duration, capacity int) *Memory {
	if capacity <= 0 {
		capacity = 100
	}
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &Memory{
		ttl:      ttl,
		capacity: capacity,
		entries:  make(map[string]*list.Element),
		order:    list.New(),
		now:      time.Now,
	}
}

// WithClock overrides the time source. Tests use it to control expiry.
func (m *Memory) WithClock(now func() time.Time) *Memory {
	m.now = now
	return m
}

func (m *Memory) Get(key string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	el, ok := m.entries[key]
	if !ok {
		return "", false
	}
	entry := el.Value.(*memoryEntry)
	if m.now().After(entry.expiresAt) {
		m.order.Remove(el)
		delete(m.entries, key)
		return "", false
	}
	return entry.value, true
}

func (m *Memory) Set(key, value string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if el, ok := m.entries[key]; ok {
		// Overwrite in place; insertion order keeps the original slot.
		entry := el.Value.(*memoryEntry)
		entry.value = value
		entry.expiresAt = m.now().Add(m.ttl)
		return
	}

	if len(m.entries) >= m.capacity {
		oldest := m.order.Front()
		if oldest != nil {
			m.order.Remove(oldest)
			delete(m.entries, oldest.Value.(*memoryEntry).key)
		}
	}

	el := m.order.PushBack(&memoryEntry{
		key:       key,
		value:     value,
		expiresAt: m.now().Add(m.ttl),
	})
	m.entries[key] = el
}

// Len reports the number of stored entries, counting not-yet-collected
// expired ones.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}
