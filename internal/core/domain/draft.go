package domain

import "github.com/shopspring/decimal"

// Party is one side of a transfer as captured by the wizard.
type Party struct {
	Name          string `json:"name"`
	Email         string `json:"email,omitempty"`
	Phone         string `json:"phone"`
	Country       string `json:"country,omitempty"`
	Currency      string `json:"currency,omitempty"`
	PaymentMethod string `json:"paymentMethod,omitempty"`
}

// FeeConfig holds the fee and rate settings of a draft. ExchangeRate is always the raw
// market rate; the fee is applied to the amount, never folded into the rate.
// EffectiveRate is derived for display only.
type FeeConfig struct {
	FeeRate        decimal.Decimal `json:"feeRate"` // percent
	FeeAmount      decimal.Decimal `json:"feeAmount"`
	FeeCurrency    string          `json:"feeCurrency"`
	FeeOnSender    bool            `json:"feeOnSender"`
	ExchangeRate   decimal.Decimal `json:"exchangeRate"`
	EffectiveRate  decimal.Decimal `json:"effectiveRate"`
	IsRateEditable bool            `json:"isRateEditable"`
}

// TransactionDraft is the mutable state a wizard accumulates before finalization.
type TransactionDraft struct {
	TransactionType TransactionType `json:"transactionType,omitempty"`
	Pair            string          `json:"pair,omitempty"`
	Sender          Party           `json:"sender"`
	Amount          decimal.Decimal `json:"amount"`
	Receiver        Party           `json:"receiver"`
	Fee             FeeConfig       `json:"fee"`
	ReceiverAmount  decimal.Decimal `json:"receiverAmount"`
}

// TransactionIDs is the identifier pair assigned at finalization.
type TransactionIDs struct {
	FormatID string `json:"formatId"`
	UniqueID string `json:"uniqueId"`
}
