package mapping

import (
	"testing"
	"time"

	"github.com/SscSPs/rjb_tranz/internal/core/domain"
	"github.com/SscSPs/rjb_tranz/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransactionMapping_PartiesAsJSON(t *testing.T) {
	now := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	tx := domain.Transaction{
		ID:           "TXN-1",
		Amount:       decimal.RequireFromString("1000"),
		ExchangeRate: decimal.RequireFromString("12.45"),
		Sender:       domain.Party{Name: "Ama", Phone: "+233241234567", Currency: "USD"},
		Receiver:     domain.Party{Name: "Kofi", Phone: "0201234567", Currency: "GHS"},
		Status:       domain.StatusCompleted,
		AuditFields:  domain.AuditFields{CreatedAt: now, CreatedBy: "op-1", LastUpdatedAt: now, LastUpdatedBy: "op-1"},
	}

	row, err := ToModelTransaction(tx)
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"Ama","phone":"+233241234567","currency":"USD"}`, string(row.Sender))
	assert.Equal(t, "completed", row.Status)
	assert.Equal(t, "op-1", row.CreatedBy)

	back, err := ToDomainTransaction(row)
	require.NoError(t, err)
	assert.Equal(t, tx, back)
}

func TestToDomainTransaction_BadJSON(t *testing.T) {
	_, err := ToDomainTransactionSlice([]models.Transaction{{TransactionID: "x", Sender: []byte("{")}})
	assert.Error(t, err)
}
