package pdf

import (
	"bytes"
	"testing"
	"time"

	"github.com/SscSPs/rjb_tranz/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReceiptExporter_Export(t *testing.T) {
	r := domain.Receipt{
		FileName:         "receipt-GHS-0241234567-1.pdf",
		Brand:            "RJB TRANZ",
		Tagline:          "Fast. Secure. Reliable.",
		Headline:         "You just sent money to Côte d'Ivoire",
		ExchangeRateLine: "1 USD = 12.4500 GHS",
		AmountSent:       "USD 1,000.00",
		Sender:           domain.ReceiptBlock{Title: "Sender", Lines: []domain.ReceiptLine{{Label: "Name", Value: "Ama"}}},
		Receiver:         domain.ReceiptBlock{Title: "Receiver", Lines: []domain.ReceiptLine{{Label: "Name", Value: "Kofi"}}},
		FeeBreakdown:     domain.ReceiptBlock{Title: "Fees", Lines: []domain.ReceiptLine{{Label: "Fee", Value: "USD 50.00"}}},
		Status:           "completed",
		TotalReceived:    "GHS 12,450.00",
		Footer:           []string{"Generated 2025-01-01 10:00"},
		GeneratedAt:      time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC),
	}

	out, err := NewReceiptExporter().Export(r)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
	assert.Greater(t, len(out), 500)
}
