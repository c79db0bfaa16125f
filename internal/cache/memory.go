package cache

import (
	"context"
	"sync"
	"time"

	"github.com/JayDad/energy-insight-ui/internal/models"
	"github.com/JayDad/energy-insight-ui/internal/sector"
)

type memoryEntry struct {
	items   []models.NewsItem
	expires time.Time
}

// MemoryCache is the in-process NewsCache used when Redis is not configured.
type MemoryCache struct {
	mu   sync.RWMutex
	data map[string]memoryEntry
	ttl  time.Duration
	now  func() time.Time
}

func NewMemoryCache(ttl time.Duration) *MemoryCache {
	return &MemoryCache{
		data: make(map[string]memoryEntry),
		ttl:  ttl,
		now:  time.Now,
	}
}

func (m *MemoryCache) Close() error {
	return nil
}

func (m *MemoryCache) Get(_ context.Context, sec sector.Sector) ([]models.NewsItem, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	e, ok := m.data[Key(sec)]
	if !ok || (!e.expires.IsZero() && !m.now().Before(e.expires)) {
		return nil, false, nil
	}
	out := make([]models.NewsItem, len(e.items))
	copy(out, e.items)
	return out, true, nil
}

func (m *MemoryCache) Set(_ context.Context, sec sector.Sector, items []models.NewsItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	e := memoryEntry{items: append([]models.NewsItem{}, items...)}
	if m.ttl > 0 {
		e.expires = m.now().Add(m.ttl)
	}
	m.data[Key(sec)] = e
	return nil
}
