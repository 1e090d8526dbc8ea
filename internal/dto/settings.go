package dto

import (
	"github.com/SscSPs/rjb_tranz/internal/core/domain"
	"github.com/shopspring/decimal"
)

// UpdateSettingsRequest changes operator preferences. Omitted fields are kept.
type UpdateSettingsRequest struct {
	AutoRefresh     *bool            `json:"autoRefresh"`
	RefreshInterval *domain.Duration `json:"refreshInterval"`
	DefaultFeeRate  *decimal.Decimal `json:"defaultFeeRate"`
}
