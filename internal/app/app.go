// Package app wires configuration into the news, market and persistence
// components shared by the server and the CLI.
package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/JayDad/energy-insight-ui/internal/archive"
	"github.com/JayDad/energy-insight-ui/internal/cache"
	"github.com/JayDad/energy-insight-ui/internal/config"
	"github.com/JayDad/energy-insight-ui/internal/feed"
	"github.com/JayDad/energy-insight-ui/internal/logger"
	"github.com/JayDad/energy-insight-ui/internal/market"
	"github.com/JayDad/energy-insight-ui/internal/news"
	"github.com/JayDad/energy-insight-ui/internal/refresh"
	"github.com/JayDad/energy-insight-ui/internal/storage"
)

type App struct {
	Config *config.Config
	// Source is nil when the Perplexity source has no API key.
	Source    news.Source
	Mock      news.Source
	Store     storage.NewsStore
	Cache     cache.NewsCache
	Market    *market.Assembler
	Refresher *refresh.Refresher
}

// Build connects every backend named by cfg. Empty DATABASE_URL and
// REDIS_URL select the in-memory implementations.
func Build(ctx context.Context, cfg *config.Config) (*App, error) {
	log := logger.Get()
	a := &App{
		Config: cfg,
		Mock:   news.MockSource{},
		Market: market.NewAssembler(market.NewSource(cfg)),
	}

	if cfg.DatabaseURL != "" {
		pg, err := storage.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		if err := pg.Migrate(ctx); err != nil {
			pg.Close()
			return nil, err
		}
		a.Store = pg
	} else {
		log.Warn().Msg("DATABASE_URL not set, using in-memory news store")
		a.Store = storage.NewMemoryStore()
	}

	if cfg.RedisURL != "" {
		rc, err := cache.NewRedisCache(cfg.RedisURL, cfg.NewsCacheTTL)
		if err != nil {
			a.Close()
			return nil, err
		}
		a.Cache = rc
	} else {
		a.Cache = cache.NewMemoryCache(cfg.NewsCacheTTL)
	}

	switch cfg.NewsSource {
	case config.NewsSourceRSS:
		a.Source = feed.NewRSSSource(feed.DefaultTimeout)
	default:
		p, err := news.NewPerplexityPipeline(cfg.PerplexityAPIKey, cfg.PerplexityBaseURL, cfg.PerplexityModel, cfg.UpstreamTimeout)
		switch {
		case errors.Is(err, news.ErrMissingAPIKey):
			log.Warn().Msg("PERPLEXITY_API_KEY not set, live news falls back to mock data")
		case err != nil:
			a.Close()
			return nil, err
		default:
			a.Source = p
		}
	}

	var archiver archive.Archiver
	if cfg.ArchiveEnabled() {
		s3a, err := archive.NewS3Archiver(ctx, archive.Config{
			Endpoint:  cfg.R2Endpoint,
			AccessKey: cfg.R2AccessKey,
			SecretKey: cfg.R2SecretKey,
			Bucket:    cfg.R2Bucket,
		})
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("failed to init archive: %w", err)
		}
		archiver = s3a
	}

	if a.Source != nil {
		a.Refresher = refresh.New(a.Source, a.Store, a.Cache, archiver)
	}

	log.Info().
		Str("news_source", cfg.NewsSource).
		Str("news_mode", cfg.NewsMode).
		Bool("archive", archiver != nil).
		Msg("Components initialized")
	return a, nil
}

// Close releases the store and cache connections.
func (a *App) Close() error {
	var errs []error
	if a.Cache != nil {
		errs = append(errs, a.Cache.Close())
	}
	if a.Store != nil {
		errs = append(errs, a.Store.Close())
	}
	return errors.Join(errs...)
}
