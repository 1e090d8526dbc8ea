package dto

import (
	"time"

	"github.com/SscSPs/rjb_tranz/internal/core/domain"
	"github.com/shopspring/decimal"
)

// RatesResponse is the published rate set plus the store status.
type RatesResponse struct {
	Base       string                `json:"base"`
	Source     domain.RateSource     `json:"source"`
	Generation uint64                `json:"generation"`
	FetchedAt  time.Time             `json:"fetchedAt"`
	Rates      []domain.ExchangeRate `json:"rates"`
	Status     domain.RateStatus     `json:"status"`
}

// ToRatesResponse converts a rate set and status to RatesResponse.
func ToRatesResponse(set domain.RateSet, status domain.RateStatus) RatesResponse {
	rates := set.Rates
	if rates == nil {
		rates = []domain.ExchangeRate{}
	}
	return RatesResponse{
		Base:       set.Base,
		Source:     set.Source,
		Generation: set.Generation,
		FetchedAt:  set.FetchedAt,
		Rates:      rates,
		Status:     status,
	}
}

// PairRateResponse is the resolved rate between two currencies.
type PairRateResponse struct {
	From          string          `json:"from"`
	To            string          `json:"to"`
	Rate          decimal.Decimal `json:"rate"`
	InverseRate   decimal.Decimal `json:"inverseRate"`
	Change        decimal.Decimal `json:"change"`
	ChangePercent decimal.Decimal `json:"changePercent"`
	LastUpdated   time.Time       `json:"lastUpdated"`
}

// HistoryQuery selects the length of a rate history.
type HistoryQuery struct {
	Days int `form:"days,default=7" binding:"gte=1,lte=365"`
}

// HistoryResponse is a daily rate history for one pair.
type HistoryResponse struct {
	Pair   string                  `json:"pair"`
	Points []domain.HistoricalRate `json:"points"`
}

// QuoteQuery asks for a fee-aware conversion quote.
type QuoteQuery struct {
	Amount  decimal.Decimal `form:"amount"`
	FeeRate decimal.Decimal `form:"feeRate"`
}
