package wizard

import "github.com/shopspring/decimal"

// SenderInput is the sender step form. Currency, country and payment method are
// only taken from it in the invoice flow; the transfer flow derives them from the pair.
type SenderInput struct {
	Name          string          `json:"name"`
	Email         string          `json:"email" validate:"omitempty,email"`
	Phone         string          `json:"phone"`
	Amount        decimal.Decimal `json:"amount" validate:"gte=0"`
	Currency      string          `json:"currency" validate:"omitempty,len=3,alpha"`
	Country       string          `json:"country" validate:"omitempty,len=2,alpha"`
	PaymentMethod string          `json:"paymentMethod" validate:"omitempty,oneof=zelle mtn_momo cash interbank"`
}

// ReceiverInput is the receiver step form.
type ReceiverInput struct {
	Name          string `json:"name"`
	Email         string `json:"email" validate:"omitempty,email"`
	Phone         string `json:"phone"`
	Currency      string `json:"currency" validate:"omitempty,len=3,alpha"`
	Country       string `json:"country" validate:"omitempty,len=2,alpha"`
	PaymentMethod string `json:"paymentMethod" validate:"omitempty,oneof=zelle mtn_momo cash interbank"`
}

// FeeInput is the invoice fee configuration form. FeeRate is a percent in [0, 100).
type FeeInput struct {
	FeeRate        decimal.Decimal  `json:"feeRate" validate:"gte=0,lt=100"`
	FeeCurrency    string           `json:"feeCurrency" validate:"omitempty,len=3,alpha"`
	FeeOnSender    *bool            `json:"feeOnSender"`
	IsRateEditable bool             `json:"isRateEditable"`
	ExchangeRate   *decimal.Decimal `json:"exchangeRate"`
}
