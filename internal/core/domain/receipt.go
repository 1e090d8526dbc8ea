package domain

import "time"

// ReceiptDirection says whether the receipt is for the sending or the receiving side.
type ReceiptDirection string

const (
	DirectionSent     ReceiptDirection = "sent"
	DirectionReceived ReceiptDirection = "received"
)

// IsValid reports whether d is a known direction.
func (d ReceiptDirection) IsValid() bool {
	return d == DirectionSent || d == DirectionReceived
}

// ReceiptLine is a label/value row of a receipt block.
type ReceiptLine struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// ReceiptBlock is a titled group of lines.
type ReceiptBlock struct {
	Title string        `json:"title"`
	Lines []ReceiptLine `json:"lines"`
}

// Receipt is the renderable projection of a transaction. Its layout order is
// fixed: header, headline, rate line, sender, receiver, fee breakdown, totals, footer.
type Receipt struct {
	FileName         string           `json:"fileName"`
	Brand            string           `json:"brand"`
	Tagline          string           `json:"tagline"`
	LogoURL          string           `json:"logoUrl"`
	Headline         string           `json:"headline"`
	Direction        ReceiptDirection `json:"direction"`
	ExchangeRateLine string           `json:"exchangeRateLine"`
	AmountSent       string           `json:"amountSent"`
	Sender           ReceiptBlock     `json:"sender"`
	Receiver         ReceiptBlock     `json:"receiver"`
	FeeBreakdown     ReceiptBlock     `json:"feeBreakdown"`
	Status           string           `json:"status"`
	TotalReceived    string           `json:"totalReceived"`
	FormatID         string           `json:"formatId"`
	UniqueID         string           `json:"uniqueId"`
	Footer           []string         `json:"footer"`
	GeneratedAt      time.Time        `json:"generatedAt"`
}
