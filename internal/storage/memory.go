package storage

import (
	"context"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/JayDad/energy-insight-ui/internal/models"
	"github.com/JayDad/energy-insight-ui/internal/sector"
)

type memoryRow struct {
	item      models.NewsItem
	createdAt time.Time
}

// MemoryStore keeps news in process. It is used when no database is configured.
type MemoryStore struct {
	mu     sync.RWMutex
	rows   []memoryRow
	keys   map[string]struct{}
	nextID int64
	now    func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		keys: make(map[string]struct{}),
		now:  time.Now,
	}
}

// SetClock replaces the time source
func (s *MemoryStore) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

func (s *MemoryStore) SaveNews(ctx context.Context, items []models.NewsItem) (SaveResult, error) {
	select {
	case <-ctx.Done():
		return SaveResult{}, ctx.Err()
	default:
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var res SaveResult
	now := s.now()
	for _, it := range items {
		link := storedLink(it.Link)
		if link != "" {
			key := string(it.Sector) + "\x00" + link
			if _, dup := s.keys[key]; dup {
				res.Skipped++
				continue
			}
			s.keys[key] = struct{}{}
		}

		s.nextID++
		created := now
		row := it
		row.ID = strconv.FormatInt(s.nextID, 10)
		row.CreatedAt = &created
		if row.Citations == nil {
			row.Citations = []models.Citation{}
		}
		s.rows = append(s.rows, memoryRow{item: row, createdAt: now})
		res.Saved++
	}
	return res, nil
}

// since returns rows newer than the cutoff, newest first.
func (s *MemoryStore) since(cutoff time.Time, match func(models.NewsItem) bool) []models.NewsItem {
	out := []models.NewsItem{}
	for _, r := range s.rows {
		if r.createdAt.Before(cutoff) || !match(r.item) {
			continue
		}
		out = append(out, r.item)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(*out[j].CreatedAt)
	})
	return out
}

func (s *MemoryStore) RecentNews(ctx context.Context, sec sector.Sector) ([]models.NewsItem, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.since(s.now().Add(-RecentWindow), func(it models.NewsItem) bool { return it.Sector == sec }), nil
}

func (s *MemoryStore) AllRecentNews(ctx context.Context) (map[sector.Sector][]models.NewsItem, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	grouped := make(map[sector.Sector][]models.NewsItem)
	for _, it := range s.since(s.now().Add(-RecentWindow), func(models.NewsItem) bool { return true }) {
		grouped[it.Sector] = append(grouped[it.Sector], it)
	}
	return grouped, nil
}

func (s *MemoryStore) HistoricalNews(ctx context.Context, sec sector.Sector, page, limit int) (*HistoryPage, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	page, limit = ClampPage(page, limit)

	s.mu.RLock()
	defer s.mu.RUnlock()

	all := s.since(s.now().Add(-RetentionWindow), func(it models.NewsItem) bool { return it.Sector == sec })

	news := []models.NewsItem{}
	if start, ok := pageOffset(page, limit, len(all)); ok {
		end := start + limit
		if end > len(all) {
			end = len(all)
		}
		news = all[start:end]
	}

	return &HistoryPage{
		News:        news,
		Total:       len(all),
		Pages:       PageCount(len(all), limit),
		CurrentPage: page,
	}, nil
}

func (s *MemoryStore) DeleteOldNews(ctx context.Context) (int64, error) {
	select {
	case <-ctx.Done():
		return 0, ctx.Err()
	default:
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.now().Add(-RetentionWindow)
	kept := s.rows[:0]
	var deleted int64
	for _, r := range s.rows {
		if r.createdAt.Before(cutoff) {
			deleted++
			if link := storedLink(r.item.Link); link != "" {
				delete(s.keys, string(r.item.Sector)+"\x00"+link)
			}
			continue
		}
		kept = append(kept, r)
	}
	s.rows = kept
	return deleted, nil
}

func (s *MemoryStore) Close() error { return nil }
