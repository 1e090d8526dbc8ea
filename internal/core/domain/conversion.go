package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ConversionPair is one row of a quick-conversion board. It only lives for the session.
type ConversionPair struct {
	ID           string          `json:"id"`
	FromCurrency string          `json:"fromCurrency"`
	ToCurrency   string          `json:"toCurrency"`
	Amount       decimal.Decimal `json:"amount"`
	IsVisible    bool            `json:"isVisible"`
}

// ConversionBoard is an ordered set of conversion pairs owned by one client session.
type ConversionBoard struct {
	ID        string           `json:"id"`
	Pairs     []ConversionPair `json:"pairs"`
	CreatedAt time.Time        `json:"createdAt"`
}

// RateChange is the movement of a pair as seen from the requested direction.
type RateChange struct {
	Change        decimal.Decimal `json:"change"`
	ChangePercent decimal.Decimal `json:"changePercent"`
	LastUpdated   time.Time       `json:"lastUpdated"`
}

// ConversionQuote is a conversion pair evaluated against the current rate set.
// Rate and ConvertedAmount are nil when no rate path exists.
type ConversionQuote struct {
	Pair            ConversionPair   `json:"pair"`
	Rate            *decimal.Decimal `json:"rate"`
	ConvertedAmount *decimal.Decimal `json:"convertedAmount"`
	Display         string           `json:"display"`
	Change          RateChange       `json:"change"`
}
