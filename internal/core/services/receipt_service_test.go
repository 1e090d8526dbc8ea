package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/SscSPs/rjb_tranz/internal/adapters/pdf"
	"github.com/SscSPs/rjb_tranz/internal/apperrors"
	"github.com/SscSPs/rjb_tranz/internal/core/domain"
	"github.com/SscSPs/rjb_tranz/internal/core/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestReceiptService_RenderSent(t *testing.T) {
	svc := services.NewReceiptService("en-US", nil)
	r := svc.Render(sampleTransaction(), domain.DirectionSent)

	assert.Equal(t, "receipt-GHS-0241234567-U.pdf", r.FileName)
	assert.Equal(t, services.ReceiptBrand, r.Brand)
	assert.Equal(t, "You just sent money to Ghana 🇬🇭", r.Headline)
	assert.Equal(t, "1 USD = 12.4500 GHS", r.ExchangeRateLine)
	assert.Equal(t, "$1,000.00 USD", r.AmountSent)
	assert.Equal(t, "₵12,450.00 GHS", r.TotalReceived)
	assert.Equal(t, "Pending", r.Status)
	assert.Equal(t, "GHS-F", r.FormatID)
	require.Len(t, r.Footer, 2)
	assert.Equal(t, "Thank you for choosing RJB TRANZ", r.Footer[0])

	assert.Equal(t, "Sender", r.Sender.Title)
	assert.Contains(t, r.Sender.Lines, domain.ReceiptLine{Label: "Payment Method", Value: "Zelle"})
	assert.Contains(t, r.Receiver.Lines, domain.ReceiptLine{Label: "Country", Value: "Ghana"})
	assert.Contains(t, r.FeeBreakdown.Lines, domain.ReceiptLine{Label: "Fee", Value: "$50.00 USD"})
	assert.Contains(t, r.FeeBreakdown.Lines, domain.ReceiptLine{Label: "Fee Paid By", Value: "Sender"})
	assert.Contains(t, r.FeeBreakdown.Lines, domain.ReceiptLine{Label: "Exchange Rate", Value: "12.4500"})
	assert.Contains(t, r.FeeBreakdown.Lines, domain.ReceiptLine{Label: "Effective Rate", Value: "11.8275"})
	assert.Contains(t, r.FeeBreakdown.Lines, domain.ReceiptLine{Label: "Receiver Gets", Value: "₵11,827.50 GHS"})
}

func TestReceiptService_RenderReceived(t *testing.T) {
	svc := services.NewReceiptService("en-US", nil)
	r := svc.Render(sampleTransaction(), domain.DirectionReceived)

	assert.Equal(t, domain.DirectionReceived, r.Direction)
	assert.Equal(t, "You just received money from United States 🇺🇸", r.Headline)
}

func TestReceiptService_ExportUsesPrintStyle(t *testing.T) {
	exporter := new(MockReceiptExporter)
	exporter.On("Export", mock.MatchedBy(func(r domain.Receipt) bool {
		return r.Headline == "You just sent money to Ghana" && r.AmountSent == "1,000.00 USD"
	})).Return([]byte("%PDF-1.3"), nil).Once()
	svc := services.NewReceiptService("en-US", exporter)

	name, out, err := svc.Export(context.Background(), sampleTransaction(), domain.DirectionSent)

	require.NoError(t, err)
	assert.Equal(t, "receipt-GHS-0241234567-U.pdf", name)
	assert.Equal(t, []byte("%PDF-1.3"), out)
	exporter.AssertExpectations(t)
}

func TestReceiptService_ExportFailure(t *testing.T) {
	exporter := new(MockReceiptExporter)
	exporter.On("Export", mock.Anything).Return(nil, errors.New("font missing")).Once()
	svc := services.NewReceiptService("en-US", exporter)

	_, _, err := svc.Export(context.Background(), sampleTransaction(), domain.DirectionSent)

	assert.ErrorIs(t, err, apperrors.ErrExport)
}

func TestReceiptService_ExportWithPDFAdapter(t *testing.T) {
	svc := services.NewReceiptService("en-US", pdf.NewReceiptExporter())

	_, out, err := svc.Export(context.Background(), sampleTransaction(), domain.DirectionReceived)

	require.NoError(t, err)
	assert.Equal(t, "%PDF-", string(out[:5]))
}
