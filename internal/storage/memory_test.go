package storage

import (
	"context"
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/JayDad/energy-insight-ui/internal/models"
	"github.com/JayDad/energy-insight-ui/internal/sector"
	"github.com/go-playground/assert/v2"
)

func item(sec sector.Sector, link string) models.NewsItem {
	return models.NewsItem{Sector: sec, Title: "title " + link, Link: link, Source: "Reuters"}
}

func TestSaveNewsIsIdempotent(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	res, err := s.SaveNews(ctx, []models.NewsItem{item(sector.Wind, "https://a.com/1")})
	assert.Equal(t, nil, err)
	assert.Equal(t, SaveResult{Saved: 1, Skipped: 0}, res)

	res, err = s.SaveNews(ctx, []models.NewsItem{item(sector.Wind, "https://a.com/1")})
	assert.Equal(t, nil, err)
	assert.Equal(t, SaveResult{Saved: 0, Skipped: 1}, res)

	// same link in another sector is a different row
	res, _ = s.SaveNews(ctx, []models.NewsItem{item(sector.SMR, "https://a.com/1")})
	assert.Equal(t, 1, res.Saved)

	// placeholder links never collide
	res, _ = s.SaveNews(ctx, []models.NewsItem{item(sector.Wind, "#"), item(sector.Wind, "#")})
	assert.Equal(t, 2, res.Saved)
}

func TestRecentNewsWindow(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 10, 14, 12, 0, 0, 0, time.UTC)
	s := NewMemoryStore()

	s.SetClock(func() time.Time { return now.Add(-80 * time.Hour) })
	s.SaveNews(ctx, []models.NewsItem{item(sector.Offshore, "https://old")})
	s.SetClock(func() time.Time { return now.Add(-1 * time.Hour) })
	s.SaveNews(ctx, []models.NewsItem{item(sector.Offshore, "https://older-fresh")})
	s.SetClock(func() time.Time { return now })
	s.SaveNews(ctx, []models.NewsItem{item(sector.Offshore, "https://fresh"), item(sector.Wind, "https://wind")})

	recent, err := s.RecentNews(ctx, sector.Offshore)
	assert.Equal(t, nil, err)
	assert.Equal(t, 2, len(recent))
	assert.Equal(t, "https://fresh", recent[0].Link)
	assert.Equal(t, "https://older-fresh", recent[1].Link)

	grouped, err := s.AllRecentNews(ctx)
	assert.Equal(t, nil, err)
	assert.Equal(t, 2, len(grouped[sector.Offshore]))
	assert.Equal(t, 1, len(grouped[sector.Wind]))
}

func TestHistoricalNewsPagination(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 10, 14, 12, 0, 0, 0, time.UTC)
	s := NewMemoryStore()

	for i := 0; i < 45; i++ {
		at := now.Add(-time.Duration(45-i) * time.Hour)
		s.SetClock(func() time.Time { return at })
		s.SaveNews(ctx, []models.NewsItem{item(sector.Wind, fmt.Sprintf("https://a.com/%d", i))})
	}
	s.SetClock(func() time.Time { return now })

	tests := []struct {
		page, limit       int
		wantPage, wantLen int
		wantPages         int
	}{
		{1, 20, 1, 20, 3},
		{3, 20, 3, 5, 3},
		{4, 20, 4, 0, 3},
		{0, 20, 1, 20, 3},
		{1, 0, 1, 1, 45},
		{1, 500, 1, 45, 1},
		{math.MaxInt64 / 10, 20, math.MaxInt64 / 10, 0, 3},
		{math.MaxInt64, 100, math.MaxInt64, 0, 1},
	}
	for _, tt := range tests {
		hp, err := s.HistoricalNews(ctx, sector.Wind, tt.page, tt.limit)
		assert.Equal(t, nil, err)
		assert.Equal(t, 45, hp.Total)
		assert.Equal(t, tt.wantPages, hp.Pages)
		assert.Equal(t, tt.wantPage, hp.CurrentPage)
		assert.Equal(t, tt.wantLen, len(hp.News))
		assert.Equal(t, true, hp.News != nil)
	}

	first, _ := s.HistoricalNews(ctx, sector.Wind, 1, 20)
	assert.Equal(t, "https://a.com/44", first.News[0].Link)
}

func TestDeleteOldNews(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 10, 14, 12, 0, 0, 0, time.UTC)
	s := NewMemoryStore()

	s.SetClock(func() time.Time { return now.Add(-181 * 24 * time.Hour) })
	s.SaveNews(ctx, []models.NewsItem{item(sector.SMR, "https://ancient")})
	s.SetClock(func() time.Time { return now })
	s.SaveNews(ctx, []models.NewsItem{item(sector.SMR, "https://new")})

	n, err := s.DeleteOldNews(ctx)
	assert.Equal(t, nil, err)
	assert.Equal(t, int64(1), n)

	// the deleted link may be stored again
	res, _ := s.SaveNews(ctx, []models.NewsItem{item(sector.SMR, "https://ancient")})
	assert.Equal(t, 1, res.Saved)
}

func TestPageCount(t *testing.T) {
	assert.Equal(t, 0, PageCount(0, 20))
	assert.Equal(t, 1, PageCount(20, 20))
	assert.Equal(t, 2, PageCount(21, 20))
}

func TestPageOffset(t *testing.T) {
	off, ok := pageOffset(3, 20, 45)
	assert.Equal(t, true, ok)
	assert.Equal(t, 40, off)

	_, ok = pageOffset(4, 20, 45)
	assert.Equal(t, false, ok)
	_, ok = pageOffset(1, 20, 0)
	assert.Equal(t, false, ok)
	_, ok = pageOffset(math.MaxInt64, math.MaxInt64, 45)
	assert.Equal(t, false, ok)
}

func TestParseDate(t *testing.T) {
	for _, in := range []string{"2026-10-01", "2026-10-01T08:00:00Z", "Thu, 01 Oct 2026 08:00:00 GMT", "Oct 1, 2026"} {
		got, ok := parseDate(in)
		assert.Equal(t, true, ok)
		assert.Equal(t, 2026, got.Year())
	}
	_, ok := parseDate("last week")
	assert.Equal(t, false, ok)
}
