package api

import (
	"context"
	"time"

	"github.com/JayDad/energy-insight-ui/internal/cache"
	"github.com/JayDad/energy-insight-ui/internal/config"
	"github.com/JayDad/energy-insight-ui/internal/logger"
	"github.com/JayDad/energy-insight-ui/internal/middleware"
	"github.com/JayDad/energy-insight-ui/internal/models"
	"github.com/JayDad/energy-insight-ui/internal/news"
	"github.com/JayDad/energy-insight-ui/internal/refresh"
	"github.com/JayDad/energy-insight-ui/internal/sector"
	"github.com/JayDad/energy-insight-ui/internal/storage"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
)

const (
	version = "1.0.0"

	cacheNews    = "s-maxage=120, stale-while-revalidate=300"
	cacheHistory = "s-maxage=600, stale-while-revalidate=1200"
	cacheMarket  = "public, s-maxage=300, stale-while-revalidate=60"
)

type snapshotter interface {
	Snapshot(ctx context.Context) (*models.MarketSnapshot, error)
}

type runner interface {
	Run(ctx context.Context, sectors []string) refresh.Report
}

// Deps are the components behind the HTTP handlers. Source and Refresher are
// left nil when no news API key is configured.
type Deps struct {
	Config    *config.Config
	Source    news.Source
	Mock      news.Source
	Store     storage.NewsStore
	Cache     cache.NewsCache
	Market    snapshotter
	Refresher runner
}

type Handlers struct {
	cfg       *config.Config
	source    news.Source
	mock      news.Source
	store     storage.NewsStore
	cache     cache.NewsCache
	market    snapshotter
	refresher runner
	validator *middleware.Validator
	log       zerolog.Logger
}

func NewHandlers(d Deps) *Handlers {
	h := &Handlers{
		cfg:       d.Config,
		source:    d.Source,
		mock:      d.Mock,
		store:     d.Store,
		cache:     d.Cache,
		market:    d.Market,
		refresher: d.Refresher,
		validator: middleware.NewValidator(),
		log:       logger.Component("api"),
	}
	if h.mock == nil {
		h.mock = news.MockSource{}
	}
	return h
}

// HealthCheck handles the /health endpoint
func (h *Handlers) HealthCheck(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "ok",
		"version": version,
		"time":    time.Now().Format(time.RFC3339),
	})
}

// GetNews handles GET /api/news
func (h *Handlers) GetNews(c *fiber.Ctx) error {
	sec, err := sector.Parse(c.Query("sector", sector.Offshore.String()))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid sector",
		})
	}
	ctx := c.UserContext()

	var items []models.NewsItem
	switch h.cfg.NewsMode {
	case config.NewsModeCache:
		items, err = h.cachedNews(ctx, sec)
		if err != nil {
			h.log.Error().Err(err).Str("sector", sec.String()).Msg("Error reading news cache")
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error":  "Failed to read cached news",
				"detail": err.Error(),
			})
		}

	case config.NewsModeDB:
		items, err = h.store.RecentNews(ctx, sec)
		if err != nil {
			h.log.Error().Err(err).Str("sector", sec.String()).Msg("Error getting recent news")
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error":  "Failed to fetch news",
				"detail": err.Error(),
			})
		}

	default:
		items, err = h.liveNews(ctx, sec)
		if err != nil {
			h.log.Error().Err(err).Str("sector", sec.String()).Msg("Error fetching live news")
			return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
				"error":  "Failed to fetch news",
				"detail": err.Error(),
			})
		}
	}

	c.Set(fiber.HeaderCacheControl, cacheNews)
	return c.JSON(items)
}

func (h *Handlers) cachedNews(ctx context.Context, sec sector.Sector) ([]models.NewsItem, error) {
	if h.cache == nil {
		return []models.NewsItem{}, nil
	}
	items, ok, err := h.cache.Get(ctx, sec)
	if err != nil {
		return nil, err
	}
	if !ok || items == nil {
		return []models.NewsItem{}, nil
	}
	return items, nil
}

func (h *Handlers) liveNews(ctx context.Context, sec sector.Sector) ([]models.NewsItem, error) {
	if h.source == nil {
		h.log.Warn().Str("sector", sec.String()).Str("reason", "no_api_key").Msg("Serving mock news")
		return h.mock.Fetch(ctx, sec)
	}

	items, err := h.source.Fetch(ctx, sec)
	if err != nil {
		return nil, err
	}

	if h.cache != nil {
		if err := h.cache.Set(ctx, sec, items); err != nil {
			h.log.Warn().Err(err).Str("sector", sec.String()).Msg("Failed to cache news")
		}
	}
	return items, nil
}

// GetRecentNews handles GET /api/news-recent
func (h *Handlers) GetRecentNews(c *fiber.Ctx) error {
	grouped, err := h.store.AllRecentNews(c.UserContext())
	if err != nil {
		h.log.Error().Err(err).Msg("Error getting recent news")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":  "Failed to fetch recent news",
			"detail": err.Error(),
		})
	}
	c.Set(fiber.HeaderCacheControl, cacheNews)
	return c.JSON(grouped)
}

type historyQuery struct {
	Sector string `query:"sector" validate:"required"`
}

// GetNewsHistory handles GET /api/news-history
func (h *Handlers) GetNewsHistory(c *fiber.Ctx) error {
	var q historyQuery
	err := h.validator.ParseQuery(c, &q)
	var sec sector.Sector
	if err == nil {
		sec, err = sector.Parse(q.Sector)
	}
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid or missing sector parameter",
		})
	}

	page, limit := storage.ClampPage(
		c.QueryInt("page", 1),
		c.QueryInt("limit", storage.DefaultPageLimit),
	)

	result, err := h.store.HistoricalNews(c.UserContext(), sec, page, limit)
	if err != nil {
		h.log.Error().Err(err).Str("sector", sec.String()).Msg("Error getting historical news")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":  "Failed to fetch historical news",
			"detail": err.Error(),
		})
	}

	c.Set(fiber.HeaderCacheControl, cacheHistory)
	return c.JSON(result)
}

// GetMarketIndicators handles GET /api/market-indicators
func (h *Handlers) GetMarketIndicators(c *fiber.Ctx) error {
	snapshot, err := h.market.Snapshot(c.UserContext())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "Failed to fetch market indicators",
			"message": err.Error(),
		})
	}

	c.Set(fiber.HeaderCacheControl, cacheMarket)
	return c.JSON(snapshot)
}

// UpdateNews handles GET /api/cron/update-news
func (h *Handlers) UpdateNews(c *fiber.Ctx) error {
	if h.refresher == nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Missing PERPLEXITY_API_KEY",
		})
	}

	var sectors []string
	if s := c.Query("sector"); s != "" {
		sectors = []string{s}
	}

	report := h.refresher.Run(c.UserContext(), sectors)
	h.log.Info().
		Bool("ok", report.OK).
		Int("updated", len(report.Updated)).
		Int("failed", len(report.Failures)).
		Msg("Cron news update finished")

	return c.JSON(report)
}

// CleanupNews handles GET /api/cron/cleanup-news
func (h *Handlers) CleanupNews(c *fiber.Ctx) error {
	deleted, err := h.store.DeleteOldNews(c.UserContext())
	if err != nil {
		h.log.Error().Err(err).Msg("Error deleting old news")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":  "Failed to delete old news",
			"detail": err.Error(),
		})
	}
	return c.JSON(fiber.Map{
		"ok":      true,
		"deleted": deleted,
	})
}

