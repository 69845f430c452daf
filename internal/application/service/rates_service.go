// internal/application/service/rates_service.go
package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/damon-houk/superrich-rate-tracker/internal/domain/entity"
	"github.com/damon-houk/superrich-rate-tracker/internal/domain/repository"
	"github.com/damon-houk/superrich-rate-tracker/internal/domain/trend"
	"github.com/damon-houk/superrich-rate-tracker/internal/infrastructure/cache"
	"github.com/damon-houk/superrich-rate-tracker/internal/infrastructure/logger"
)

// ErrNoData indicates the store holds no snapshots yet. Callers should
// render a "try again later" style response, never a stack trace.
var ErrNoData = errors.New("no rate data available")

const (
	historyMaxPoints  = 10
	historyStrideDays = 2
	historyBarWidth   = 20
)

// CurrencyQuote is one currency's latest quote with its buying-rate trend.
// Rate is nil when the snapshot holds no record for the requested code.
type CurrencyQuote struct {
	Code     string
	Rate     *entity.RateRecord
	BuyTrend trend.Direction
}

// LatestRates is the renderable result of a latest-with-trend query
type LatestRates struct {
	Date   string
	Quotes []CurrencyQuote
}

// RateHistory is the renderable result of a history query
type RateHistory struct {
	Currency string
	Points   []trend.Point
	Bars     []trend.Bar
}

// RatesService answers rate queries for the delivery layers
type RatesService struct {
	store  repository.SnapshotRepository
	cache  *cache.LatestEntryCache
	logger logger.Logger
}

// NewRatesService creates a new rates query service
func NewRatesService(store repository.SnapshotRepository, latestCache *cache.LatestEntryCache, log logger.Logger) *RatesService {
	if log == nil {
		log = logger.GetDefaultLogger()
	}

	return &RatesService{
		store:  store,
		cache:  latestCache,
		logger: log,
	}
}

// GetLatestWithTrend returns the most recent quote for each requested
// currency, each with the buying rate's direction against the prior stored
// date. Currencies absent from the snapshot yield a quote with no rate and
// a flat trend, distinguishing missing data from failure.
func (s *RatesService) GetLatestWithTrend(ctx context.Context, currencies []string) (*LatestRates, error) {
	entry, err := s.latest(ctx)
	if err != nil {
		return nil, err
	}

	quotes := make([]CurrencyQuote, 0, len(currencies))
	for _, code := range currencies {
		quote := CurrencyQuote{Code: code, BuyTrend: trend.Flat}

		if rec, ok := entry.Snapshot.Rates[code]; ok {
			rate := rec
			quote.Rate = &rate

			var previous *float64
			if entry.Previous != nil {
				if prevRec, ok := entry.Previous.Rates[code]; ok {
					prev := prevRec.BuyingRate
					previous = &prev
				}
			}
			quote.BuyTrend = trend.Compare(rec.BuyingRate, previous)
		}

		quotes = append(quotes, quote)
	}

	return &LatestRates{
		Date:   entry.Date,
		Quotes: quotes,
	}, nil
}

// GetHistory returns the sampled buying-rate history for a currency,
// together with bar lengths normalized for rendering.
func (s *RatesService) GetHistory(ctx context.Context, currency string) (*RateHistory, error) {
	series, _, err := s.store.Load(ctx)
	if err != nil {
		s.logger.Error("Failed to load series for history query", map[string]interface{}{
			"currency": currency,
			"error":    err.Error(),
		})
		return nil, fmt.Errorf("failed to load rate history: %w", err)
	}

	if len(series) == 0 {
		return nil, ErrNoData
	}

	points := trend.History(series, currency, historyMaxPoints, historyStrideDays)

	return &RateHistory{
		Currency: currency,
		Points:   points,
		Bars:     trend.Normalize(points, historyBarWidth),
	}, nil
}

// latest returns the most recent entry, consulting the cache first
func (s *RatesService) latest(ctx context.Context) (*entity.LatestEntry, error) {
	if s.cache != nil {
		if entry := s.cache.Get(); entry != nil {
			return entry, nil
		}
	}

	entry, err := s.store.Latest(ctx)
	if err != nil {
		s.logger.Error("Failed to load latest snapshot", map[string]interface{}{
			"error": err.Error(),
		})
		return nil, fmt.Errorf("failed to load latest snapshot: %w", err)
	}

	if entry == nil {
		return nil, ErrNoData
	}

	if s.cache != nil {
		s.cache.Put(entry)
	}

	return entry, nil
}
