package storage

import (
	"context"
	"math"
	"time"

	"github.com/JayDad/energy-insight-ui/internal/models"
	"github.com/JayDad/energy-insight-ui/internal/sector"
)

const (
	// RecentWindow bounds the dashboard's "latest" queries.
	RecentWindow = 72 * time.Hour
	// RetentionWindow bounds history queries and cleanup.
	RetentionWindow = 180 * 24 * time.Hour

	DefaultPageLimit = 20
	MaxPageLimit     = 100
)

// SaveResult tallies one batch write. Skipped counts (sector, link) duplicates.
type SaveResult struct {
	Saved   int `json:"saved"`
	Skipped int `json:"skipped"`
}

// HistoryPage is one page of the 180 day history.
type HistoryPage struct {
	News        []models.NewsItem `json:"news"`
	Total       int               `json:"total"`
	Pages       int               `json:"pages"`
	CurrentPage int               `json:"currentPage"`
}

// NewsStore persists pipeline output deduplicated on (sector, link).
type NewsStore interface {
	SaveNews(ctx context.Context, items []models.NewsItem) (SaveResult, error)
	RecentNews(ctx context.Context, sec sector.Sector) ([]models.NewsItem, error)
	AllRecentNews(ctx context.Context) (map[sector.Sector][]models.NewsItem, error)
	HistoricalNews(ctx context.Context, sec sector.Sector, page, limit int) (*HistoryPage, error)
	DeleteOldNews(ctx context.Context) (int64, error)
	Close() error
}

// ClampPage forces page >= 1 and limit into [1, MaxPageLimit].
func ClampPage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 1
	}
	if limit > MaxPageLimit {
		limit = MaxPageLimit
	}
	return page, limit
}

// PageCount is ceil(total/limit).
func PageCount(total, limit int) int {
	if limit <= 0 {
		return 0
	}
	return int(math.Ceil(float64(total) / float64(limit)))
}

// pageOffset returns the row offset of page, or false when the page starts
// past total. The check runs before multiplying so huge pages cannot overflow.
func pageOffset(page, limit, total int) (int, bool) {
	if limit <= 0 || page-1 >= PageCount(total, limit) {
		return 0, false
	}
	return (page - 1) * limit, true
}

// storedLink reports the link used as dedup key; "" means none.
func storedLink(link string) string {
	if link == "#" {
		return ""
	}
	return link
}

var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
	time.RFC1123Z,
	time.RFC1123,
	"Mon, 2 Jan 2006 15:04:05 -0700",
	"January 2, 2006",
	"Jan 2, 2006",
}

// parseDate reads the best-effort item date; unknown formats yield false.
func parseDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}
