package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/rjb_tranz/internal/core/domain"
)

// RateFetcher produces a full table of rates relative to base.
type RateFetcher interface {
	Source() domain.RateSource
	FetchRates(ctx context.Context, base string) ([]domain.ExchangeRate, error)
}

// RateHistorian produces a daily history of a pair ending at now.
type RateHistorian interface {
	Historical(pair string, days int, now time.Time) ([]domain.HistoricalRate, error)
}
