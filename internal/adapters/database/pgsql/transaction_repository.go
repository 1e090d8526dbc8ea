package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/SscSPs/rjb_tranz/internal/apperrors"
	"github.com/SscSPs/rjb_tranz/internal/core/domain"
	portsrepo "github.com/SscSPs/rjb_tranz/internal/core/ports/repositories"
	"github.com/SscSPs/rjb_tranz/internal/models"
	"github.com/SscSPs/rjb_tranz/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const defaultListLimit = 20

const transactionColumns = `
	transaction_id, unique_id, format_id, client_name, client_email, phone_number,
	amount, from_currency, to_currency, exchange_rate, fee_rate, fee, fee_currency,
	fee_on_sender, receiver_amount, sender, receiver, status, transaction_type,
	created_at, created_by, last_updated_at, last_updated_by`

type PgxTransactionRepository struct {
	BaseRepository
}

// newPgxTransactionRepository creates a new repository for finalized transactions.
func newPgxTransactionRepository(pool *pgxpool.Pool) portsrepo.TransactionRepositoryFacade {
	return &PgxTransactionRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.TransactionRepositoryFacade = (*PgxTransactionRepository)(nil)

func scanTransaction(row pgx.Row) (models.Transaction, error) {
	var m models.Transaction
	err := row.Scan(
		&m.TransactionID, &m.UniqueID, &m.FormatID, &m.ClientName, &m.ClientEmail, &m.PhoneNumber,
		&m.Amount, &m.FromCurrency, &m.ToCurrency, &m.ExchangeRate, &m.FeeRate, &m.Fee, &m.FeeCurrency,
		&m.FeeOnSender, &m.ReceiverAmount, &m.Sender, &m.Receiver, &m.Status, &m.TransactionType,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	return m, err
}

// SaveTransaction inserts a new transaction row.
func (r *PgxTransactionRepository) SaveTransaction(ctx context.Context, transaction domain.Transaction) error {
	m, err := mapping.ToModelTransaction(transaction)
	if err != nil {
		return apperrors.NewAppError(500, "failed to map transaction "+transaction.ID, err)
	}
	query := `INSERT INTO transactions (` + transactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23);`
	_, err = r.Pool.Exec(ctx, query,
		m.TransactionID, m.UniqueID, m.FormatID, m.ClientName, m.ClientEmail, m.PhoneNumber,
		m.Amount, m.FromCurrency, m.ToCurrency, m.ExchangeRate, m.FeeRate, m.Fee, m.FeeCurrency,
		m.FeeOnSender, m.ReceiverAmount, m.Sender, m.Receiver, m.Status, m.TransactionType,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: transaction %s already exists", apperrors.ErrDuplicate, transaction.ID)
		}
		return apperrors.NewAppError(500, "failed to insert transaction "+transaction.ID, err)
	}
	return nil
}

// FindTransactionByID retrieves a transaction by its ID.
func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE transaction_id = $1;`
	m, err := scanTransaction(r.Pool.QueryRow(ctx, query, transactionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to query transaction "+transactionID, err)
	}
	tx, err := mapping.ToDomainTransaction(m)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to map transaction "+transactionID, err)
	}
	return &tx, nil
}

// ListTransactions returns a page ordered by created_at DESC, transaction_id DESC.
func (r *PgxTransactionRepository) ListTransactions(ctx context.Context, params portsrepo.ListTransactionsParams) ([]domain.Transaction, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}

	var where []string
	var args []interface{}
	if params.Status != "" {
		args = append(args, string(params.Status))
		where = append(where, "status = $"+strconv.Itoa(len(args)))
	}
	if params.Cursor != nil {
		args = append(args, params.Cursor.CreatedAt, params.Cursor.ID)
		where = append(where, fmt.Sprintf("(created_at, transaction_id) < ($%d, $%d)", len(args)-1, len(args)))
	}
	query := `SELECT ` + transactionColumns + ` FROM transactions`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	args = append(args, limit)
	query += " ORDER BY created_at DESC, transaction_id DESC LIMIT $" + strconv.Itoa(len(args)) + ";"

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query transactions", err)
	}
	defer rows.Close()

	results := make([]models.Transaction, 0, limit)
	for rows.Next() {
		m, err := scanTransaction(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan transaction row", err)
		}
		results = append(results, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating transaction rows", err)
	}
	out, err := mapping.ToDomainTransactionSlice(results)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to map transactions", err)
	}
	return out, nil
}

// UpdateTransactionStatus writes the new status only while the row still holds expected.
func (r *PgxTransactionRepository) UpdateTransactionStatus(ctx context.Context, updated domain.Transaction, expected domain.TransactionStatus) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	var current string
	err = tx.QueryRow(ctx, `SELECT status FROM transactions WHERE transaction_id = $1 FOR UPDATE;`, updated.ID).Scan(&current)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrNotFound
		}
		return apperrors.NewAppError(500, "failed to lock transaction "+updated.ID, err)
	}
	if domain.TransactionStatus(current) != expected {
		return fmt.Errorf("%w: transaction %s is %s, not %s", apperrors.ErrInvalidTransition, updated.ID, current, expected)
	}

	_, err = tx.Exec(ctx, `
		UPDATE transactions
		SET status = $1, last_updated_at = $2, last_updated_by = $3
		WHERE transaction_id = $4;`,
		string(updated.Status), updated.LastUpdatedAt, updated.LastUpdatedBy, updated.ID,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update status of transaction "+updated.ID, err)
	}
	return r.Commit(ctx, tx)
}
