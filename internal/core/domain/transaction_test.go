package domain_test

import (
	"testing"
	"time"

	"github.com/SscSPs/rjb_tranz/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validTransaction() domain.Transaction {
	now := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	return domain.Transaction{
		ID:              "TXN-1709287200000",
		UniqueID:        "GHS-0241234567-1709287200000-ab12",
		FormatID:        "GHS4567-0000",
		ClientName:      "Kwame Mensah",
		PhoneNumber:     "0241234567",
		Amount:          decimal.NewFromInt(1000),
		FromCurrency:    "USD",
		ToCurrency:      "GHS",
		ExchangeRate:    decimal.RequireFromString("12.45"),
		Status:          domain.StatusPending,
		TransactionType: domain.TypeInvoice,
		AuditFields:     domain.AuditFields{CreatedAt: now, LastUpdatedAt: now},
	}
}

func TestTransaction_WithStatus(t *testing.T) {
	at := time.Date(2024, 3, 1, 11, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		from    domain.TransactionStatus
		to      domain.TransactionStatus
		wantErr bool
	}{
		{name: "pending to completed", from: domain.StatusPending, to: domain.StatusCompleted},
		{name: "pending to failed", from: domain.StatusPending, to: domain.StatusFailed},
		{name: "pending to cancelled", from: domain.StatusPending, to: domain.StatusCancelled},
		{name: "pending to pending", from: domain.StatusPending, to: domain.StatusPending, wantErr: true},
		{name: "completed is terminal", from: domain.StatusCompleted, to: domain.StatusFailed, wantErr: true},
		{name: "cancelled is terminal", from: domain.StatusCancelled, to: domain.StatusCompleted, wantErr: true},
		{name: "unknown status", from: domain.StatusPending, to: domain.TransactionStatus("refunded"), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx := validTransaction()
			tx.Status = tt.from

			got, err := tx.WithStatus(tt.to, at, "op-1")
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.to, got.Status)
			assert.Equal(t, at, got.LastUpdatedAt)
			assert.Equal(t, "op-1", got.LastUpdatedBy)
			assert.Equal(t, tt.from, tx.Status, "original value must not change")
		})
	}
}

func TestTransaction_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*domain.Transaction)
		wantErr bool
	}{
		{name: "valid", mutate: func(*domain.Transaction) {}},
		{name: "missing unique id", mutate: func(tx *domain.Transaction) { tx.UniqueID = "" }, wantErr: true},
		{name: "zero amount", mutate: func(tx *domain.Transaction) { tx.Amount = decimal.Zero }, wantErr: true},
		{name: "negative rate", mutate: func(tx *domain.Transaction) { tx.ExchangeRate = decimal.NewFromInt(-1) }, wantErr: true},
		{name: "missing currency", mutate: func(tx *domain.Transaction) { tx.ToCurrency = "" }, wantErr: true},
		{name: "bad status", mutate: func(tx *domain.Transaction) { tx.Status = "unknown" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx := validTransaction()
			tt.mutate(&tx)
			err := tx.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestTransaction_TotalReceived(t *testing.T) {
	tx := validTransaction()
	assert.True(t, decimal.RequireFromString("12450").Equal(tx.TotalReceived()))
}

func TestRateSet_Validate(t *testing.T) {
	now := time.Now()
	good := domain.ExchangeRate{Pair: "USD/GHS", Rate: decimal.RequireFromString("12.45"), LastUpdated: now}

	tests := []struct {
		name    string
		rates   []domain.ExchangeRate
		wantErr bool
	}{
		{name: "valid", rates: []domain.ExchangeRate{good}},
		{name: "empty", rates: nil, wantErr: true},
		{name: "zero rate", rates: []domain.ExchangeRate{good, {Pair: "USD/NGN", Rate: decimal.Zero, LastUpdated: now}}, wantErr: true},
		{name: "wrong base", rates: []domain.ExchangeRate{{Pair: "EUR/GHS", Rate: decimal.NewFromInt(1), LastUpdated: now}}, wantErr: true},
		{name: "missing timestamp", rates: []domain.ExchangeRate{{Pair: "USD/KES", Rate: decimal.NewFromInt(1)}}, wantErr: true},
		{name: "malformed pair", rates: []domain.ExchangeRate{{Pair: "USD/", Rate: decimal.NewFromInt(1), LastUpdated: now}}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := domain.RateSet{Base: "USD", Rates: tt.rates}.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestRateSet_CloneDoesNotAlias(t *testing.T) {
	set := domain.RateSet{Base: "USD", Rates: []domain.ExchangeRate{{Pair: "USD/GHS", Rate: decimal.NewFromInt(12)}}}
	clone := set.Clone()
	clone.Rates[0].Rate = decimal.NewFromInt(99)

	assert.True(t, decimal.NewFromInt(12).Equal(set.Rates[0].Rate))
	found, ok := set.Find("USD/GHS")
	require.True(t, ok)
	assert.Equal(t, "USD", found.Base())
	assert.Equal(t, "GHS", found.Quote())
}

func TestDuration_Text(t *testing.T) {
	var d domain.Duration
	require.NoError(t, d.UnmarshalText([]byte("30s")))
	assert.Equal(t, 30*time.Second, d.Std())

	text, err := d.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "30s", string(text))

	assert.Error(t, d.UnmarshalText([]byte("soon")))
}
