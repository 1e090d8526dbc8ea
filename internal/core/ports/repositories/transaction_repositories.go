package repositories

import (
	"context"

	"github.com/SscSPs/rjb_tranz/internal/core/domain"
	"github.com/SscSPs/rjb_tranz/internal/utils/pagination"
)

// ListTransactionsParams selects a page of transactions, newest first.
type ListTransactionsParams struct {
	Limit  int
	Cursor *pagination.Cursor
	Status domain.TransactionStatus // empty means any
}

// TransactionReader defines read operations for finalized transactions
type TransactionReader interface {
	// FindTransactionByID returns apperrors.ErrNotFound when the ID is unknown.
	FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)

	// ListTransactions returns at most params.Limit rows after params.Cursor.
	ListTransactions(ctx context.Context, params ListTransactionsParams) ([]domain.Transaction, error)
}

// TransactionWriter defines write operations for finalized transactions
type TransactionWriter interface {
	// SaveTransaction persists a new transaction, apperrors.ErrDuplicate when the ID exists.
	SaveTransaction(ctx context.Context, transaction domain.Transaction) error

	// UpdateTransactionStatus stores the status of updated, but only while the stored
	// row is still in expected. A row in any other status yields apperrors.ErrInvalidTransition.
	UpdateTransactionStatus(ctx context.Context, updated domain.Transaction, expected domain.TransactionStatus) error
}

// TransactionRepositoryFacade combines all transaction-related repository interfaces
type TransactionRepositoryFacade interface {
	TransactionReader
	TransactionWriter
}
