package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// TransactionStatus is the lifecycle state of a finalized transaction.
type TransactionStatus string

const (
	StatusPending   TransactionStatus = "pending"
	StatusCompleted TransactionStatus = "completed"
	StatusFailed    TransactionStatus = "failed"
	StatusCancelled TransactionStatus = "cancelled"
)

// IsTerminal reports whether no further status change is allowed.
func (s TransactionStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusFailed || s == StatusCancelled
}

// IsValid reports whether s is a known status.
func (s TransactionStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusCompleted, StatusFailed, StatusCancelled:
		return true
	}
	return false
}

// TransactionType says which workflow produced the transaction.
type TransactionType string

const (
	TypeSend    TransactionType = "send"
	TypeReceive TransactionType = "receive"
	TypeInvoice TransactionType = "invoice"
)

// Transaction is a finalized transfer. It is never mutated in place; status
// changes produce a new value through WithStatus.
type Transaction struct {
	ID              string            `json:"id"`
	UniqueID        string            `json:"uniqueId"`
	FormatID        string            `json:"formatId"`
	ClientName      string            `json:"clientName"`
	ClientEmail     string            `json:"clientEmail,omitempty"`
	PhoneNumber     string            `json:"phoneNumber"`
	Amount          decimal.Decimal   `json:"amount"`
	FromCurrency    string            `json:"fromCurrency"`
	ToCurrency      string            `json:"toCurrency"`
	ExchangeRate    decimal.Decimal   `json:"exchangeRate"`
	FeeRate         decimal.Decimal   `json:"feeRate"`
	Fee             decimal.Decimal   `json:"fee"`
	FeeCurrency     string            `json:"feeCurrency"`
	FeeOnSender     bool              `json:"feeOnSender"`
	ReceiverAmount  decimal.Decimal   `json:"receiverAmount"`
	Sender          Party             `json:"sender"`
	Receiver        Party             `json:"receiver"`
	Status          TransactionStatus `json:"status"`
	TransactionType TransactionType   `json:"transactionType"`
	AuditFields
}

// CanTransition reports whether the status may move from the current value to next.
// Only pending transactions move, and only to a terminal status.
func (t Transaction) CanTransition(next TransactionStatus) bool {
	return t.Status == StatusPending && next.IsTerminal()
}

// WithStatus returns a copy of t with the new status, or an error when the change is not allowed.
func (t Transaction) WithStatus(next TransactionStatus, at time.Time, by string) (Transaction, error) {
	if !next.IsValid() {
		return Transaction{}, fmt.Errorf("unknown transaction status %q", next)
	}
	if !t.CanTransition(next) {
		return Transaction{}, fmt.Errorf("cannot move transaction %s from %s to %s", t.ID, t.Status, next)
	}
	out := t
	out.Status = next
	out.LastUpdatedAt = at
	out.LastUpdatedBy = by
	return out, nil
}

// TotalReceived is the amount shown on receipts: amount converted at the recorded rate.
func (t Transaction) TotalReceived() decimal.Decimal {
	return t.Amount.Mul(t.ExchangeRate)
}

// Validate checks the invariants of a freshly finalized transaction.
func (t Transaction) Validate() error {
	if t.ID == "" || t.UniqueID == "" || t.FormatID == "" {
		return fmt.Errorf("transaction identifiers are required")
	}
	if !t.Amount.IsPositive() {
		return fmt.Errorf("transaction amount must be positive")
	}
	if !t.ExchangeRate.IsPositive() {
		return fmt.Errorf("exchange rate must be positive")
	}
	if t.FromCurrency == "" || t.ToCurrency == "" {
		return fmt.Errorf("from and to currencies are required")
	}
	if !t.Status.IsValid() {
		return fmt.Errorf("unknown transaction status %q", t.Status)
	}
	return nil
}
