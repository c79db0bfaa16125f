package models

import "math"

// Trend is the direction of a day-over-day change
type Trend string

const (
	TrendUp   Trend = "up"
	TrendDown Trend = "down"
	TrendFlat Trend = "flat"
)

// TrendOf classifies a percent change. Non-finite changes are flat, matching
// the zero Round2 reports for them.
func TrendOf(change float64) Trend {
	switch {
	case math.IsInf(change, 0) || math.IsNaN(change):
		return TrendFlat
	case change > 0:
		return TrendUp
	case change < 0:
		return TrendDown
	default:
		return TrendFlat
	}
}

// Impact ranks how strongly an indicator affects the business
type Impact string

const (
	ImpactCritical Impact = "critical"
	ImpactHigh     Impact = "high"
	ImpactMedium   Impact = "medium"
	ImpactLow      Impact = "low"
)

// Quote is one upstream reading. Display keeps the upstream precision.
type Quote struct {
	Display     string
	Value       float64
	Change      float64
	Trend       Trend
	LastUpdated string
}

// NewQuote builds a quote, rounding the change to two decimals.
func NewQuote(display string, value, change float64, lastUpdated string) Quote {
	return Quote{
		Display:     display,
		Value:       value,
		Change:      Round2(change),
		Trend:       TrendOf(change),
		LastUpdated: lastUpdated,
	}
}

type OilPrices struct {
	Brent Quote
	WTI   Quote
}

type ExchangeRates struct {
	USDKRW Quote
	EURUSD Quote
}

type CommodityPrices struct {
	Steel   Quote
	IronOre Quote
	LNG     Quote
}

// Indicator is the per-instrument record rendered by the dashboard
type Indicator struct {
	Label  string  `json:"label"`
	Value  string  `json:"value"`
	Change float64 `json:"change"`
	Trend  Trend   `json:"trend"`
	Unit   string  `json:"unit"`
	Impact Impact  `json:"impact"`
	Icon   string  `json:"icon"`
}

// MarketStatus is the qualitative label derived from oil and FX changes
type MarketStatus struct {
	Status string `json:"status"`
	Label  string `json:"label"`
	Color  string `json:"color"`
	Icon   string `json:"icon"`
}

// MarketSnapshot is the payload of the market indicators endpoint
type MarketSnapshot struct {
	LastUpdate   string       `json:"lastUpdate"`
	MarketStatus MarketStatus `json:"marketStatus"`
	Brent        Indicator    `json:"brent"`
	WTI          Indicator    `json:"wti"`
	USDKRW       Indicator    `json:"usdkrw"`
	EURUSD       Indicator    `json:"eurusd"`
	Steel        Indicator    `json:"steel"`
	LNG          Indicator    `json:"lng"`
	AIInsight    string       `json:"aiInsight"`
}

// Round2 rounds to two decimals and maps non-finite values to zero.
func Round2(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return math.Round(v*100) / 100
}
