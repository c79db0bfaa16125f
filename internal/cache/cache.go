package cache

import (
	"context"

	"github.com/JayDad/energy-insight-ui/internal/models"
	"github.com/JayDad/energy-insight-ui/internal/sector"
)

const keyPrefix = "news:"

// NewsCache holds the latest pipeline output per sector.
type NewsCache interface {
	// Get reports a miss with ok=false and a nil error.
	Get(ctx context.Context, sec sector.Sector) (items []models.NewsItem, ok bool, err error)
	Set(ctx context.Context, sec sector.Sector, items []models.NewsItem) error
	Close() error
}

// Key is the storage key of a sector's cached news.
func Key(sec sector.Sector) string {
	return keyPrefix + sec.String()
}
