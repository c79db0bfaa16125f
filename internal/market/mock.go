package market

import (
	"context"
	"time"

	"github.com/JayDad/energy-insight-ui/internal/models"
)

// MockSource returns fixed readings. LiveSource falls back to it per call.
type MockSource struct {
	now func() time.Time
}

func NewMockSource() *MockSource {
	return &MockSource{now: time.Now}
}

func (m *MockSource) OilPrices(context.Context) (models.OilPrices, error) {
	day := today(m.now())
	return models.OilPrices{
		Brent: models.NewQuote("85.43", 85.43, 2.1, day),
		WTI:   models.NewQuote("82.17", 82.17, 1.8, day),
	}, nil
}

func (m *MockSource) ExchangeRates(context.Context) (models.ExchangeRates, error) {
	ts := isoNow(m.now())
	return models.ExchangeRates{
		USDKRW: models.NewQuote("1327.50", 1327.50, -0.3, ts),
		EURUSD: models.NewQuote("1.0842", 1.0842, 0.2, ts),
	}, nil
}

func (m *MockSource) CommodityPrices(context.Context) (models.CommodityPrices, error) {
	day := today(m.now())
	return models.CommodityPrices{
		Steel:   models.NewQuote("142.5", 142.5, 0.5, day),
		IronOre: models.NewQuote("118.20", 118.20, 1.2, day),
		LNG:     models.NewQuote("12.34", 12.34, -1.2, day),
	}, nil
}
