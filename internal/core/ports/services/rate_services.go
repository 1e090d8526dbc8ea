package services

import (
	"context"
	"time"

	"github.com/SscSPs/rjb_tranz/internal/core/domain"
	"github.com/shopspring/decimal"
)

// RateReaderSvc defines read access to the published rate set.
type RateReaderSvc interface {
	// Current returns a copy of the last published rate set.
	Current() domain.RateSet
	// Status returns the refresh state shown to operators.
	Status() domain.RateStatus
	// FindRate resolves units of `to` per one unit of `from` against the current set.
	FindRate(from, to string) (decimal.Decimal, bool)
	// LookupRate resolves a pair with its change info, apperrors.ErrRateNotFound when no path exists.
	LookupRate(from, to string) (domain.ExchangeRate, error)
	// Historical returns a synthetic daily history for pair.
	Historical(ctx context.Context, pair string, days int) ([]domain.HistoricalRate, error)
	// Subscribe delivers every newly published set until cancel is called.
	Subscribe() (updates <-chan domain.RateSet, cancel func())
}

// RateRefresherSvc defines the refresh controls of the rate store.
type RateRefresherSvc interface {
	// Refresh fetches, validates and publishes a new set. Concurrent calls share one fetch.
	Refresh(ctx context.Context) (domain.RateSet, error)
	// Run refreshes on the configured interval until ctx is done.
	Run(ctx context.Context)
	SetAutoRefresh(enabled bool)
	SetRefreshInterval(interval time.Duration) error
}

// RateStoreSvcFacade combines all rate store interfaces
type RateStoreSvcFacade interface {
	RateReaderSvc
	RateRefresherSvc
}
