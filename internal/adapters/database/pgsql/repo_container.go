package pgsql

import (
	portsrepo "github.com/SscSPs/rjb_tranz/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewTransactionRepository returns the Postgres transaction repository.
func NewTransactionRepository(dbPool *pgxpool.Pool) portsrepo.TransactionRepositoryFacade {
	return newPgxTransactionRepository(dbPool)
}
