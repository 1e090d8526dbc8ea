// Package pdf exports receipts as A4 documents.
package pdf

import (
	"bytes"
	"fmt"

	"github.com/SscSPs/rjb_tranz/internal/apperrors"
	"github.com/SscSPs/rjb_tranz/internal/core/domain"
	"github.com/go-pdf/fpdf"
)

const (
	pageMargin  = 15.0
	labelWidth  = 60.0
	lineHeight  = 7.0
	titleHeight = 9.0
)

// ReceiptExporter lays a receipt out on one A4 portrait page using the core
// Helvetica font. Text is translated to cp1252; runes outside it print as '.'.
type ReceiptExporter struct{}

func NewReceiptExporter() *ReceiptExporter {
	return &ReceiptExporter{}
}

// Export renders r. Library errors and panics come back as apperrors.ErrExport.
func (e *ReceiptExporter) Export(r domain.Receipt) (out []byte, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			out, err = nil, fmt.Errorf("%w: %v", apperrors.ErrExport, rec)
		}
	}()

	doc := fpdf.New("P", "mm", "A4", "")
	doc.SetMargins(pageMargin, pageMargin, pageMargin)
	doc.SetAutoPageBreak(true, pageMargin)
	doc.SetTitle(r.FileName, true)
	doc.SetCreator(r.Brand, true)
	tr := doc.UnicodeTranslatorFromDescriptor("")
	doc.AddPage()
	width, _ := doc.GetPageSize()
	content := width - 2*pageMargin

	// header
	doc.SetFillColor(30, 64, 175)
	doc.SetTextColor(255, 255, 255)
	doc.SetFont("Helvetica", "B", 20)
	doc.CellFormat(content, 12, tr(r.Brand), "", 1, "C", true, 0, "")
	doc.SetFont("Helvetica", "", 10)
	doc.CellFormat(content, 6, tr(r.Tagline), "", 1, "C", true, 0, "")
	doc.Ln(6)

	doc.SetTextColor(17, 24, 39)
	doc.SetFont("Helvetica", "B", 14)
	doc.MultiCell(content, titleHeight, tr(r.Headline), "", "C", false)
	doc.SetFont("Helvetica", "", 11)
	doc.CellFormat(content, lineHeight, tr(r.ExchangeRateLine), "", 1, "C", false, 0, "")
	doc.SetFont("Helvetica", "B", 16)
	doc.CellFormat(content, 10, tr(r.AmountSent), "", 1, "C", false, 0, "")
	doc.Ln(4)

	for _, block := range []domain.ReceiptBlock{r.Sender, r.Receiver, r.FeeBreakdown} {
		writeBlock(doc, tr, block, content)
	}

	totals := domain.ReceiptBlock{
		Title: "Summary",
		Lines: []domain.ReceiptLine{
			{Label: "Status", Value: r.Status},
			{Label: "Total Received", Value: r.TotalReceived},
			{Label: "Transaction ID", Value: r.FormatID},
			{Label: "Reference", Value: r.UniqueID},
		},
	}
	writeBlock(doc, tr, totals, content)

	doc.Ln(4)
	doc.SetFont("Helvetica", "I", 9)
	doc.SetTextColor(107, 114, 128)
	for _, line := range r.Footer {
		doc.CellFormat(content, 5, tr(line), "", 1, "C", false, 0, "")
	}

	if doc.Err() {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrExport, doc.Error())
	}
	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrExport, err)
	}
	return buf.Bytes(), nil
}

func writeBlock(doc *fpdf.Fpdf, tr func(string) string, block domain.ReceiptBlock, content float64) {
	doc.SetFillColor(243, 244, 246)
	doc.SetTextColor(17, 24, 39)
	doc.SetFont("Helvetica", "B", 12)
	doc.CellFormat(content, titleHeight, tr(block.Title), "B", 1, "L", true, 0, "")
	for _, line := range block.Lines {
		doc.SetFont("Helvetica", "", 10)
		doc.CellFormat(labelWidth, lineHeight, tr(line.Label), "", 0, "L", false, 0, "")
		doc.SetFont("Helvetica", "B", 10)
		doc.CellFormat(content-labelWidth, lineHeight, tr(line.Value), "", 1, "R", false, 0, "")
	}
	doc.Ln(3)
}
