package market

import (
	"context"
	"time"

	"github.com/JayDad/energy-insight-ui/internal/config"
	"github.com/JayDad/energy-insight-ui/internal/models"
)

// MarketDataSource supplies the raw readings behind a snapshot.
type MarketDataSource interface {
	OilPrices(ctx context.Context) (models.OilPrices, error)
	ExchangeRates(ctx context.Context) (models.ExchangeRates, error)
	CommodityPrices(ctx context.Context) (models.CommodityPrices, error)
}

// NewSource returns the mock source when no market key is configured.
func NewSource(cfg *config.Config) MarketDataSource {
	if cfg.AlphaVantageAPIKey == "" && cfg.ExchangeRateAPIKey == "" {
		return NewMockSource()
	}
	return NewLiveSource(LiveConfig{
		AlphaVantageKey: cfg.AlphaVantageAPIKey,
		ExchangeRateKey: cfg.ExchangeRateAPIKey,
		RequestsPerMin:  cfg.AlphaVantageRPM,
		Timeout:         cfg.UpstreamTimeout,
	})
}

func today(now time.Time) string {
	return now.UTC().Format("2006-01-02")
}

func isoNow(now time.Time) string {
	return now.UTC().Format("2006-01-02T15:04:05.000Z")
}
