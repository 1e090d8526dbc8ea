package dto

import (
	"github.com/SscSPs/rjb_tranz/internal/core/domain"
)

// ListTransactionsParams defines query parameters for listing transactions.
type ListTransactionsParams struct {
	Limit     int    `form:"limit,default=20" binding:"gte=1,lte=100"`
	NextToken string `form:"nextToken"`
	Status    string `form:"status" binding:"omitempty,oneof=pending completed failed cancelled"`
}

// ListTransactionsResponse is one page of transactions.
type ListTransactionsResponse struct {
	Transactions []domain.Transaction `json:"transactions"`
	NextToken    *string              `json:"nextToken,omitempty"`
}

// UpdateTransactionStatusRequest moves a pending transaction to a terminal status.
type UpdateTransactionStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=completed failed cancelled"`
}

// ReceiptQuery selects the receipt perspective.
type ReceiptQuery struct {
	Direction string `form:"direction,default=sent" binding:"oneof=sent received"`
}
