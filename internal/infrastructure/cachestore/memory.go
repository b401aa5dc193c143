package cachestore

import (
	"context"
	"sync"
	"time"

	"github.com/jhoicas/panaderia-erp/internal/domain/cache"
)

type memEntry struct {
	key       cache.Key
	data      []byte
	stale     bool
	fetchedAt time.Time
}

// MemoryStore caché en proceso. Las entradas con más de ttl se reportan obsoletas.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]*memEntry
	gen     uint64
	ttl     time.Duration
	now     func() time.Time
}

// NewMemoryStore construye el almacén. ttl <= 0 desactiva la expiración.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{entries: make(map[string]*memEntry), ttl: ttl, now: time.Now}
}

func (m *MemoryStore) Get(_ context.Context, key cache.Key) (Entry, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.entries[key.String()]
	if !ok {
		return Entry{}, false, nil
	}
	stale := e.stale || (m.ttl > 0 && m.now().Sub(e.fetchedAt) > m.ttl)
	return Entry{Data: e.data, Stale: stale, FetchedAt: e.fetchedAt}, true, nil
}

func (m *MemoryStore) Set(_ context.Context, key cache.Key, data []byte, gen uint64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if gen != m.gen {
		return false, nil
	}
	m.entries[key.String()] = &memEntry{key: key, data: data, fetchedAt: m.now()}
	return true, nil
}

// Invalidate marca como obsoleta toda entrada afectada por alguna de las llaves.
func (m *MemoryStore) Invalidate(_ context.Context, keys ...cache.Key) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gen++
	n := 0
	for _, e := range m.entries {
		for _, k := range keys {
			if k.Matches(e.key) {
				if !e.stale {
					n++
				}
				e.stale = true
				break
			}
		}
	}
	return n, nil
}

func (m *MemoryStore) Generation(context.Context) (uint64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.gen, nil
}
