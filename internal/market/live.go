package market

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/JayDad/energy-insight-ui/internal/logger"
	"github.com/JayDad/energy-insight-ui/internal/models"
	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

const (
	DefaultAlphaVantageURL = "https://www.alphavantage.co/query"
	DefaultExchangeRateURL = "https://v6.exchangerate-api.com/v6"

	brentSymbol = "BZ=F"
	seriesKey   = "Time Series (Daily)"
	closeKey    = "4. close"

	// WTI is estimated from Brent; the free tier has no second symbol.
	wtiPriceRatio  = 0.96
	wtiChangeRatio = 0.95

	// The free FX tier has no history, so day-over-day changes are fixed.
	usdKRWChange  = -0.3
	eurUSDChange  = 0.2
	eurUSDDefault = 1.0842
)

// Fallback reasons logged when a call degrades to mock data.
const (
	reasonNoAPIKey       = "no_api_key"
	reasonUpstreamError  = "upstream_error"
	reasonRateLimited    = "rate_limited"
	reasonInvalidPayload = "invalid_payload"
	reasonLocalLimit     = "local_rate_limit"
)

type LiveConfig struct {
	AlphaVantageKey string
	ExchangeRateKey string
	AlphaVantageURL string
	ExchangeRateURL string
	RequestsPerMin  int
	Timeout         time.Duration
}

// LiveSource reads Alpha Vantage and Exchange-Rate API. Every failure
// degrades that call to MockSource values; callers never see an error.
type LiveSource struct {
	av      *resty.Client
	fx      *resty.Client
	avKey   string
	fxKey   string
	limiter *rate.Limiter
	mock    *MockSource
	avLog   zerolog.Logger
	fxLog   zerolog.Logger
}

func NewLiveSource(cfg LiveConfig) *LiveSource {
	if cfg.AlphaVantageURL == "" {
		cfg.AlphaVantageURL = DefaultAlphaVantageURL
	}
	if cfg.ExchangeRateURL == "" {
		cfg.ExchangeRateURL = DefaultExchangeRateURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}

	limiter := rate.NewLimiter(rate.Inf, 0)
	if cfg.RequestsPerMin > 0 {
		limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(cfg.RequestsPerMin)), cfg.RequestsPerMin)
	}

	return &LiveSource{
		av:      resty.New().SetBaseURL(cfg.AlphaVantageURL).SetTimeout(cfg.Timeout),
		fx:      resty.New().SetBaseURL(cfg.ExchangeRateURL).SetTimeout(cfg.Timeout),
		avKey:   cfg.AlphaVantageKey,
		fxKey:   cfg.ExchangeRateKey,
		limiter: limiter,
		mock:    NewMockSource(),
		avLog:   logger.Component("alphavantage"),
		fxLog:   logger.Component("exchangerate"),
	}
}

type dailySeries map[string]map[string]string

func (s *LiveSource) OilPrices(ctx context.Context) (models.OilPrices, error) {
	fallback := func(reason string, err error) (models.OilPrices, error) {
		ev := s.avLog.Warn().Str("reason", reason)
		if err != nil {
			ev = ev.Err(err)
		}
		ev.Msg("Using mock oil prices")
		return s.mock.OilPrices(ctx)
	}

	if s.avKey == "" {
		return fallback(reasonNoAPIKey, nil)
	}
	if !s.limiter.Allow() {
		return fallback(reasonLocalLimit, nil)
	}

	resp, err := s.av.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"function": "TIME_SERIES_DAILY",
			"symbol":   brentSymbol,
			"apikey":   s.avKey,
		}).
		Get("")
	if err != nil {
		return fallback(reasonUpstreamError, err)
	}
	if code := resp.StatusCode(); code < 200 || code >= 300 {
		return fallback(reasonUpstreamError, fmt.Errorf("alpha vantage api error: %d", code))
	}

	var payload map[string]json.RawMessage
	if err := json.Unmarshal(resp.Body(), &payload); err != nil {
		return fallback(reasonInvalidPayload, err)
	}
	for _, marker := range []string{"Note", "Information"} {
		if _, ok := payload[marker]; ok {
			return fallback(reasonRateLimited, nil)
		}
	}

	var series dailySeries
	raw, ok := payload[seriesKey]
	if !ok {
		return fallback(reasonInvalidPayload, nil)
	}
	if err := json.Unmarshal(raw, &series); err != nil {
		return fallback(reasonInvalidPayload, err)
	}

	dates := make([]string, 0, len(series))
	for d := range series {
		dates = append(dates, d)
	}
	if len(dates) < 2 {
		return fallback(reasonInvalidPayload, fmt.Errorf("need two trading days, got %d", len(dates)))
	}
	sort.Sort(sort.Reverse(sort.StringSlice(dates)))

	latest, err := strconv.ParseFloat(series[dates[0]][closeKey], 64)
	if err != nil {
		return fallback(reasonInvalidPayload, err)
	}
	previous, err := strconv.ParseFloat(series[dates[1]][closeKey], 64)
	if err != nil {
		return fallback(reasonInvalidPayload, err)
	}
	if previous == 0 {
		return fallback(reasonInvalidPayload, fmt.Errorf("zero previous close on %s", dates[1]))
	}

	change := (latest - previous) / previous * 100
	wti := latest * wtiPriceRatio

	s.avLog.Debug().
		Str("date", dates[0]).
		Float64("brent", latest).
		Float64("change", change).
		Msg("Fetched oil prices")

	return models.OilPrices{
		Brent: models.NewQuote(fmt.Sprintf("%.2f", latest), models.Round2(latest), change, dates[0]),
		WTI:   models.NewQuote(fmt.Sprintf("%.2f", wti), models.Round2(wti), change*wtiChangeRatio, dates[0]),
	}, nil
}

type pairResponse struct {
	Result         string  `json:"result"`
	ErrorType      string  `json:"error-type"`
	ConversionRate float64 `json:"conversion_rate"`
	LastUpdate     string  `json:"time_last_update_utc"`
}

func (s *LiveSource) pair(ctx context.Context, from, to string) (*resty.Response, pairResponse, error) {
	var out pairResponse
	resp, err := s.fx.R().
		SetContext(ctx).
		SetPathParams(map[string]string{"key": s.fxKey, "from": from, "to": to}).
		Get("/{key}/pair/{from}/{to}")
	if err != nil {
		return nil, out, err
	}
	if err := json.Unmarshal(resp.Body(), &out); err != nil {
		return resp, out, err
	}
	return resp, out, nil
}

func (s *LiveSource) ExchangeRates(ctx context.Context) (models.ExchangeRates, error) {
	fallback := func(reason string, err error) (models.ExchangeRates, error) {
		ev := s.fxLog.Warn().Str("reason", reason)
		if err != nil {
			ev = ev.Err(err)
		}
		ev.Msg("Using mock exchange rates")
		return s.mock.ExchangeRates(ctx)
	}

	if s.fxKey == "" {
		return fallback(reasonNoAPIKey, nil)
	}

	resp, krw, err := s.pair(ctx, "USD", "KRW")
	if err != nil {
		if resp == nil {
			return fallback(reasonUpstreamError, err)
		}
		return fallback(reasonInvalidPayload, err)
	}
	if code := resp.StatusCode(); code < 200 || code >= 300 {
		return fallback(reasonUpstreamError, fmt.Errorf("exchange rate api error: %d", code))
	}
	if krw.Result != "success" {
		return fallback(reasonInvalidPayload, fmt.Errorf("exchange rate api: %s", krw.ErrorType))
	}

	resp, eur, err := s.pair(ctx, "EUR", "USD")
	if err != nil {
		if resp == nil {
			return fallback(reasonUpstreamError, err)
		}
		return fallback(reasonInvalidPayload, err)
	}
	eurRate := eurUSDDefault
	eurUpdated := isoNow(s.mock.now())
	if eur.Result == "success" {
		eurRate = eur.ConversionRate
		if eur.LastUpdate != "" {
			eurUpdated = eur.LastUpdate
		}
	} else {
		s.fxLog.Warn().Str("error_type", eur.ErrorType).Msg("EUR/USD unavailable, using default rate")
	}

	return models.ExchangeRates{
		USDKRW: models.NewQuote(fmt.Sprintf("%.2f", krw.ConversionRate), krw.ConversionRate, usdKRWChange, krw.LastUpdate),
		EURUSD: models.NewQuote(fmt.Sprintf("%.4f", eurRate), eurRate, eurUSDChange, eurUpdated),
	}, nil
}

// CommodityPrices has no free upstream and is always mock backed.
func (s *LiveSource) CommodityPrices(ctx context.Context) (models.CommodityPrices, error) {
	return s.mock.CommodityPrices(ctx)
}
