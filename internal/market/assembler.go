package market

import (
	"context"
	"fmt"
	"time"

	"github.com/JayDad/energy-insight-ui/internal/logger"
	"github.com/JayDad/energy-insight-ui/internal/models"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// Assembler builds the dashboard market snapshot.
type Assembler struct {
	source MarketDataSource
	now    func() time.Time
	log    zerolog.Logger
}

func NewAssembler(source MarketDataSource) *Assembler {
	return &Assembler{
		source: source,
		now:    time.Now,
		log:    logger.Component("market"),
	}
}

// Snapshot fetches oil, FX and commodities concurrently. Any error fails the
// whole snapshot.
func (a *Assembler) Snapshot(ctx context.Context) (*models.MarketSnapshot, error) {
	var (
		oil models.OilPrices
		fx  models.ExchangeRates
		com models.CommodityPrices
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		oil, err = a.source.OilPrices(gctx)
		if err != nil {
			err = fmt.Errorf("oil prices: %w", err)
		}
		return err
	})
	g.Go(func() (err error) {
		fx, err = a.source.ExchangeRates(gctx)
		if err != nil {
			err = fmt.Errorf("exchange rates: %w", err)
		}
		return err
	})
	g.Go(func() (err error) {
		com, err = a.source.CommodityPrices(gctx)
		if err != nil {
			err = fmt.Errorf("commodity prices: %w", err)
		}
		return err
	})
	if err := g.Wait(); err != nil {
		a.log.Error().Err(err).Msg("Failed to assemble market snapshot")
		return nil, err
	}

	signals := signalsOf(oil, fx, com)
	snapshot := &models.MarketSnapshot{
		LastUpdate:   isoNow(a.now()),
		MarketStatus: Status(signals),
		Brent:        indicator("Brent Crude", "$"+oil.Brent.Display, "/barrel", models.ImpactHigh, "🛢️", oil.Brent),
		WTI:          indicator("WTI Crude", "$"+oil.WTI.Display, "/barrel", models.ImpactHigh, "🛢️", oil.WTI),
		USDKRW:       indicator("USD/KRW", "₩"+fx.USDKRW.Display, "KRW", models.ImpactCritical, "💱", fx.USDKRW),
		EURUSD:       indicator("EUR/USD", fx.EURUSD.Display, "USD", models.ImpactMedium, "💱", fx.EURUSD),
		Steel:        indicator("Steel Price Index", com.Steel.Display, "index", models.ImpactMedium, "📊", com.Steel),
		LNG:          indicator("LNG Price (JKM)", "$"+com.LNG.Display, "/MMBtu", models.ImpactHigh, "⛽", com.LNG),
		AIInsight:    Insight(signals),
	}

	a.log.Info().
		Str("status", snapshot.MarketStatus.Status).
		Float64("brent_change", signals.BrentChange).
		Float64("krw_change", signals.KRWChange).
		Msg("Market snapshot assembled")

	return snapshot, nil
}

func indicator(label, value, unit string, impact models.Impact, icon string, q models.Quote) models.Indicator {
	return models.Indicator{
		Label:  label,
		Value:  value,
		Change: q.Change,
		Trend:  q.Trend,
		Unit:   unit,
		Impact: impact,
		Icon:   icon,
	}
}
