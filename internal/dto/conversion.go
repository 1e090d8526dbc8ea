package dto

import (
	"time"

	"github.com/SscSPs/rjb_tranz/internal/core/domain"
	"github.com/shopspring/decimal"
)

// AddConversionPairRequest adds a row to a board. Omitted fields take the defaults USD, EUR and 1000.
type AddConversionPairRequest struct {
	FromCurrency string           `json:"fromCurrency" binding:"omitempty,len=3,alpha"`
	ToCurrency   string           `json:"toCurrency" binding:"omitempty,len=3,alpha"`
	Amount       *decimal.Decimal `json:"amount"`
}

// UpdateConversionPairRequest changes the amount or visibility of a row.
type UpdateConversionPairRequest struct {
	Amount    *decimal.Decimal `json:"amount"`
	IsVisible *bool            `json:"isVisible"`
}

// ConversionBoardResponse is a board with every pair evaluated against the current rates.
type ConversionBoardResponse struct {
	ID        string                   `json:"id"`
	CreatedAt time.Time                `json:"createdAt"`
	Quotes    []domain.ConversionQuote `json:"quotes"`
}
