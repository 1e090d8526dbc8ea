// Package memory is an in-process transaction repository used when no database is configured.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/SscSPs/rjb_tranz/internal/apperrors"
	"github.com/SscSPs/rjb_tranz/internal/core/domain"
	portsrepo "github.com/SscSPs/rjb_tranz/internal/core/ports/repositories"
)

const defaultListLimit = 20

type TransactionRepository struct {
	mu   sync.RWMutex
	byID map[string]domain.Transaction
}

func NewTransactionRepository() *TransactionRepository {
	return &TransactionRepository{byID: make(map[string]domain.Transaction)}
}

var _ portsrepo.TransactionRepositoryFacade = (*TransactionRepository)(nil)

func (r *TransactionRepository) SaveTransaction(_ context.Context, transaction domain.Transaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.byID[transaction.ID]; exists {
		return fmt.Errorf("%w: transaction %s already exists", apperrors.ErrDuplicate, transaction.ID)
	}
	r.byID[transaction.ID] = transaction
	return nil
}

func (r *TransactionRepository) FindTransactionByID(_ context.Context, transactionID string) (*domain.Transaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	tx, ok := r.byID[transactionID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &tx, nil
}

func (r *TransactionRepository) ListTransactions(_ context.Context, params portsrepo.ListTransactionsParams) ([]domain.Transaction, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}

	r.mu.RLock()
	all := make([]domain.Transaction, 0, len(r.byID))
	for _, tx := range r.byID {
		if params.Status != "" && tx.Status != params.Status {
			continue
		}
		if params.Cursor != nil && !params.Cursor.Before(tx.CreatedAt, tx.ID) {
			continue
		}
		all = append(all, tx)
	}
	r.mu.RUnlock()

	sort.Slice(all, func(i, j int) bool {
		if all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].ID > all[j].ID
		}
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})
	if len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

func (r *TransactionRepository) UpdateTransactionStatus(_ context.Context, updated domain.Transaction, expected domain.TransactionStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	current, ok := r.byID[updated.ID]
	if !ok {
		return apperrors.ErrNotFound
	}
	if current.Status != expected {
		return fmt.Errorf("%w: transaction %s is %s, not %s", apperrors.ErrInvalidTransition, updated.ID, current.Status, expected)
	}
	current.Status = updated.Status
	current.LastUpdatedAt = updated.LastUpdatedAt
	current.LastUpdatedBy = updated.LastUpdatedBy
	r.byID[updated.ID] = current
	return nil
}
