package feed

import (
	"context"
	"time"

	"github.com/JayDad/energy-insight-ui/internal/logger"
	"github.com/JayDad/energy-insight-ui/internal/models"
	"github.com/JayDad/energy-insight-ui/internal/sector"
	"github.com/rs/zerolog"
)

// DefaultTimeout bounds one feed download attempt.
const DefaultTimeout = 10 * time.Second

// RSSSource serves the sector's RSS feed as news items.
type RSSSource struct {
	fetcher *Fetcher
	parser  *Parser
	feedURL func(sector.Sector) string
	log     zerolog.Logger
}

func NewRSSSource(timeout time.Duration) *RSSSource {
	return &RSSSource{
		fetcher: NewFetcher(timeout),
		parser:  NewParser(),
		feedURL: sector.Sector.FeedURL,
		log:     logger.Component("rss"),
	}
}

func (s *RSSSource) Fetch(ctx context.Context, sec sector.Sector) ([]models.NewsItem, error) {
	if !sec.Valid() {
		return nil, sector.ErrInvalidSector
	}
	url := s.feedURL(sec)
	start := time.Now()

	raw, err := s.fetcher.FetchFeed(ctx, url)
	if err != nil {
		s.log.Error().Err(err).Str("url", url).Msg("Error fetching feed")
		return nil, err
	}

	items, err := s.parser.Parse(sec, raw)
	if err != nil {
		s.log.Error().Err(err).Str("url", url).Msg("Error parsing feed")
		return nil, err
	}

	s.log.Info().
		Str("sector", sec.String()).
		Int("items", len(items)).
		Dur("took", time.Since(start)).
		Msg("Fetched feed items")
	return items, nil
}
