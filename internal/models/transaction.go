package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is a row of the transactions table. Sender and Receiver are stored as JSONB.
type Transaction struct {
	TransactionID   string          `db:"transaction_id"`
	UniqueID        string          `db:"unique_id"`
	FormatID        string          `db:"format_id"`
	ClientName      string          `db:"client_name"`
	ClientEmail     string          `db:"client_email"`
	PhoneNumber     string          `db:"phone_number"`
	Amount          decimal.Decimal `db:"amount"`
	FromCurrency    string          `db:"from_currency"`
	ToCurrency      string          `db:"to_currency"`
	ExchangeRate    decimal.Decimal `db:"exchange_rate"`
	FeeRate         decimal.Decimal `db:"fee_rate"`
	Fee             decimal.Decimal `db:"fee"`
	FeeCurrency     string          `db:"fee_currency"`
	FeeOnSender     bool            `db:"fee_on_sender"`
	ReceiverAmount  decimal.Decimal `db:"receiver_amount"`
	Sender          []byte          `db:"sender"`
	Receiver        []byte          `db:"receiver"`
	Status          string          `db:"status"`
	TransactionType string          `db:"transaction_type"`
	AuditFields
}

// KVEntry is a row of the kv_store table.
type KVEntry struct {
	Key       string    `db:"key"`
	Value     string    `db:"value"`
	UpdatedAt time.Time `db:"updated_at"`
}
