package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/rjb_tranz/internal/apperrors"
	"github.com/SscSPs/rjb_tranz/internal/core/domain"
	portsrepo "github.com/SscSPs/rjb_tranz/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/rjb_tranz/internal/core/ports/services"
	"github.com/SscSPs/rjb_tranz/internal/dto"
	"github.com/SscSPs/rjb_tranz/internal/utils/pagination"
)

const defaultPageSize = 20

type transactionService struct {
	BaseService
	repo     portsrepo.TransactionRepositoryFacade
	notifier portssvc.NotificationSvcFacade
	now      func() time.Time
}

// NewTransactionService creates the transaction service. notifier may be nil.
func NewTransactionService(repo portsrepo.TransactionRepositoryFacade, notifier portssvc.NotificationSvcFacade) portssvc.TransactionSvcFacade {
	return &transactionService{repo: repo, notifier: notifier, now: time.Now}
}

func (s *transactionService) CreateTransaction(ctx context.Context, tx domain.Transaction) error {
	if err := tx.Validate(); err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}
	if err := s.repo.SaveTransaction(ctx, tx); err != nil {
		s.LogError(ctx, err, "Failed to save transaction", slog.String("transaction_id", tx.ID))
		return fmt.Errorf("failed to save transaction %s: %w", tx.ID, err)
	}
	s.LogInfo(ctx, "Transaction created",
		slog.String("transaction_id", tx.ID),
		slog.String("format_id", tx.FormatID),
		slog.String("status", string(tx.Status)))
	if s.notifier != nil {
		s.notifier.TransactionCreated(ctx, tx)
	}
	return nil
}

func (s *transactionService) GetTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	tx, err := s.repo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		s.LogError(ctx, err, "Failed to get transaction", slog.String("transaction_id", transactionID))
		return nil, fmt.Errorf("failed to get transaction %s: %w", transactionID, err)
	}
	return tx, nil
}

// ListTransactions returns one page newest first. The next token is set only when
// the page is full; it encodes the position of the last row.
func (s *transactionService) ListTransactions(ctx context.Context, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = defaultPageSize
	}
	query := portsrepo.ListTransactionsParams{Limit: limit, Status: domain.TransactionStatus(params.Status)}
	if params.NextToken != "" {
		cursor, err := pagination.DecodeToken(params.NextToken)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid nextToken: %v", apperrors.ErrValidation, err)
		}
		query.Cursor = &cursor
	}

	txs, err := s.repo.ListTransactions(ctx, query)
	if err != nil {
		s.LogError(ctx, err, "Failed to list transactions")
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	resp := &dto.ListTransactionsResponse{Transactions: txs}
	if resp.Transactions == nil {
		resp.Transactions = []domain.Transaction{}
	}
	if len(txs) == limit {
		last := txs[len(txs)-1]
		token := pagination.EncodeToken(last.CreatedAt, last.ID)
		resp.NextToken = &token
	}
	return resp, nil
}

func (s *transactionService) UpdateStatus(ctx context.Context, transactionID string, status domain.TransactionStatus, operatorID string) (*domain.Transaction, error) {
	current, err := s.GetTransactionByID(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("%w: unknown transaction status %q", apperrors.ErrValidation, status)
	}
	updated, err := current.WithStatus(status, s.now().UTC(), operatorID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrInvalidTransition, err)
	}
	if err := s.repo.UpdateTransactionStatus(ctx, updated, current.Status); err != nil {
		if !errors.Is(err, apperrors.ErrInvalidTransition) && !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to update transaction status", slog.String("transaction_id", transactionID))
		}
		return nil, fmt.Errorf("failed to update transaction %s: %w", transactionID, err)
	}
	s.LogInfo(ctx, "Transaction status updated",
		slog.String("transaction_id", transactionID),
		slog.String("from", string(current.Status)),
		slog.String("to", string(status)))
	if s.notifier != nil {
		s.notifier.TransactionStatusChanged(ctx, updated, current.Status)
	}
	return &updated, nil
}
