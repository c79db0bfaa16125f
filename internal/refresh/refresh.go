package refresh

import (
	"context"
	"strings"
	"time"

	"github.com/JayDad/energy-insight-ui/internal/archive"
	"github.com/JayDad/energy-insight-ui/internal/cache"
	"github.com/JayDad/energy-insight-ui/internal/logger"
	"github.com/JayDad/energy-insight-ui/internal/news"
	"github.com/JayDad/energy-insight-ui/internal/sector"
	"github.com/JayDad/energy-insight-ui/internal/storage"
	"github.com/rs/zerolog"
)

const invalidSector = "Invalid sector"

// Result is the per-sector tally of a refresh run.
type Result struct {
	Fetched int `json:"fetched"`
	Saved   int `json:"saved"`
	Skipped int `json:"skipped"`
}

// Report is the outcome of one run. OK is false when any sector failed.
type Report struct {
	OK       bool              `json:"ok"`
	Updated  map[string]Result `json:"updated"`
	Failures map[string]string `json:"failures"`
}

// Refresher pulls fresh news for each sector and persists it.
type Refresher struct {
	source   news.Source
	store    storage.NewsStore
	cache    cache.NewsCache
	archiver archive.Archiver
	log      zerolog.Logger
}

// New builds a Refresher. cache and archiver may be nil.
func New(source news.Source, store storage.NewsStore, c cache.NewsCache, a archive.Archiver) *Refresher {
	return &Refresher{
		source:   source,
		store:    store,
		cache:    c,
		archiver: a,
		log:      logger.Component("refresh"),
	}
}

// Run refreshes the given sector keys one after another, or every sector when
// keys is empty. A failing sector does not stop the others.
func (r *Refresher) Run(ctx context.Context, keys []string) Report {
	if len(keys) == 0 {
		for _, s := range sector.All() {
			keys = append(keys, s.String())
		}
	}

	report := Report{
		Updated:  make(map[string]Result),
		Failures: make(map[string]string),
	}

	for _, key := range keys {
		key = strings.ToLower(strings.TrimSpace(key))
		sec, err := sector.Parse(key)
		if err != nil {
			report.Failures[key] = invalidSector
			continue
		}

		res, err := r.refreshSector(ctx, sec)
		if err != nil {
			r.log.Error().Err(err).Str("sector", key).Msg("Sector refresh failed")
			report.Failures[key] = err.Error()
			continue
		}
		report.Updated[key] = res
	}

	report.OK = len(report.Failures) == 0
	return report
}

func (r *Refresher) refreshSector(ctx context.Context, sec sector.Sector) (Result, error) {
	start := time.Now()

	items, err := r.source.Fetch(ctx, sec)
	if err != nil {
		return Result{}, err
	}

	saved, err := r.store.SaveNews(ctx, items)
	if err != nil {
		return Result{}, err
	}

	if r.cache != nil {
		if err := r.cache.Set(ctx, sec, items); err != nil {
			return Result{}, err
		}
	}

	if r.archiver != nil {
		if _, err := r.archiver.Archive(ctx, sec, items); err != nil {
			return Result{}, err
		}
	}

	res := Result{Fetched: len(items), Saved: saved.Saved, Skipped: saved.Skipped}
	r.log.Info().
		Str("sector", sec.String()).
		Int("fetched", res.Fetched).
		Int("saved", res.Saved).
		Int("skipped", res.Skipped).
		Dur("took", time.Since(start)).
		Msg("Sector refreshed")
	return res, nil
}

// Cleanup removes stored news past the retention window.
func (r *Refresher) Cleanup(ctx context.Context) (int64, error) {
	return r.store.DeleteOldNews(ctx)
}

// Start runs Run and Cleanup every interval until ctx is cancelled.
func (r *Refresher) Start(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	r.log.Info().Dur("interval", interval).Msg("Starting periodic refresh")
	for {
		select {
		case <-ctx.Done():
			r.log.Info().Msg("Periodic refresh stopped")
			return
		case <-ticker.C:
			report := r.Run(ctx, nil)
			if !report.OK {
				r.log.Warn().Interface("failures", report.Failures).Msg("Refresh finished with failures")
			}
			if n, err := r.Cleanup(ctx); err != nil {
				r.log.Error().Err(err).Msg("Cleanup failed")
			} else if n > 0 {
				r.log.Info().Int64("deleted", n).Msg("Removed expired news")
			}
		}
	}
}
