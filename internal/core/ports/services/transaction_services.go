package services

import (
	"context"

	"github.com/SscSPs/rjb_tranz/internal/core/domain"
	"github.com/SscSPs/rjb_tranz/internal/dto"
)

// TransactionReaderSvc defines read operations for finalized transactions
type TransactionReaderSvc interface {
	GetTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)
	ListTransactions(ctx context.Context, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error)
}

// TransactionWriterSvc defines write operations for finalized transactions
type TransactionWriterSvc interface {
	// CreateTransaction stores a transaction frozen by a wizard and announces it.
	CreateTransaction(ctx context.Context, tx domain.Transaction) error
	// UpdateStatus moves a pending transaction to a terminal status.
	UpdateStatus(ctx context.Context, transactionID string, status domain.TransactionStatus, operatorID string) (*domain.Transaction, error)
}

// TransactionSvcFacade combines all transaction interfaces
type TransactionSvcFacade interface {
	TransactionReaderSvc
	TransactionWriterSvc
}

// ReceiptSvcFacade renders and exports transaction receipts.
type ReceiptSvcFacade interface {
	// Render builds the screen receipt, using currency symbols and flags.
	Render(tx domain.Transaction, direction domain.ReceiptDirection) domain.Receipt
	// Export renders the print receipt and returns it as a PDF.
	Export(ctx context.Context, tx domain.Transaction, direction domain.ReceiptDirection) (fileName string, pdf []byte, err error)
}
