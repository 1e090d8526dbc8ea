package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/rjb_tranz/internal/apperrors"
	"github.com/SscSPs/rjb_tranz/internal/core/domain"
	portsrepo "github.com/SscSPs/rjb_tranz/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/rjb_tranz/internal/core/ports/services"
	"github.com/SscSPs/rjb_tranz/internal/refdata"
	"github.com/SscSPs/rjb_tranz/internal/utils"
	"github.com/SscSPs/rjb_tranz/internal/utils/conversion"
	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Receipt branding.
const (
	ReceiptBrand   = "RJB TRANZ"
	ReceiptTagline = "Professional Currency Exchange"
)

// receiptStyle selects how amounts and countries are written.
type receiptStyle int

const (
	// styleScreen uses currency symbols and flags.
	styleScreen receiptStyle = iota
	// stylePrint uses ISO codes only, for fonts without those glyphs.
	stylePrint
)

type receiptService struct {
	BaseService
	formatter *utils.MoneyFormatter
	exporter  portsrepo.ReceiptExporter
	title     cases.Caser
	now       func() time.Time
}

// NewReceiptService creates the receipt renderer for a BCP 47 locale such as "en-US".
func NewReceiptService(locale string, exporter portsrepo.ReceiptExporter) portssvc.ReceiptSvcFacade {
	return &receiptService{
		formatter: utils.NewMoneyFormatter(locale),
		exporter:  exporter,
		title:     cases.Title(language.English),
		now:       time.Now,
	}
}

// ReceiptFileName is the download name of a transaction's PDF receipt.
func ReceiptFileName(tx domain.Transaction) string {
	return "receipt-" + tx.UniqueID + ".pdf"
}

func (s *receiptService) Render(tx domain.Transaction, direction domain.ReceiptDirection) domain.Receipt {
	return s.render(tx, direction, styleScreen)
}

func (s *receiptService) Export(ctx context.Context, tx domain.Transaction, direction domain.ReceiptDirection) (string, []byte, error) {
	if s.exporter == nil {
		return "", nil, fmt.Errorf("%w: no receipt exporter configured", apperrors.ErrExport)
	}
	receipt := s.render(tx, direction, stylePrint)
	out, err := s.exporter.Export(receipt)
	if err != nil {
		s.LogError(ctx, err, "Failed to export receipt", slog.String("transaction_id", tx.ID))
		if !errors.Is(err, apperrors.ErrExport) {
			err = fmt.Errorf("%w: %v", apperrors.ErrExport, err)
		}
		return "", nil, err
	}
	s.LogDebug(ctx, "Receipt exported", slog.String("transaction_id", tx.ID), slog.Int("bytes", len(out)))
	return receipt.FileName, out, nil
}

func (s *receiptService) render(tx domain.Transaction, direction domain.ReceiptDirection, style receiptStyle) domain.Receipt {
	if !direction.IsValid() {
		direction = domain.DirectionSent
	}
	generatedAt := s.now().UTC()
	return domain.Receipt{
		FileName:         ReceiptFileName(tx),
		Brand:            ReceiptBrand,
		Tagline:          ReceiptTagline,
		LogoURL:          domain.NotificationIcon,
		Headline:         headline(tx, direction, style),
		Direction:        direction,
		ExchangeRateLine: fmt.Sprintf("1 %s = %s %s", tx.FromCurrency, tx.ExchangeRate.StringFixed(4), tx.ToCurrency),
		AmountSent:       s.money(tx.Amount, tx.FromCurrency, style),
		Sender:           s.partyBlock("Sender", tx.Sender),
		Receiver:         s.partyBlock("Receiver", tx.Receiver),
		FeeBreakdown:     s.feeBlock(tx, style),
		Status:           s.title.String(string(tx.Status)),
		TotalReceived:    s.money(tx.TotalReceived(), tx.ToCurrency, style),
		FormatID:         tx.FormatID,
		UniqueID:         tx.UniqueID,
		Footer: []string{
			"Thank you for choosing " + ReceiptBrand,
			"Generated on " + generatedAt.Format("January 2, 2006 15:04 MST"),
		},
		GeneratedAt: generatedAt,
	}
}

// money renders "₵11,827.50 GHS" on screen and "11,827.50 GHS" in print.
func (s *receiptService) money(amount decimal.Decimal, currency string, style receiptStyle) string {
	if style == stylePrint || refdata.CurrencySymbol(currency) == currency {
		return s.formatter.Code(amount, currency)
	}
	return s.formatter.Money(amount, currency) + " " + currency
}

// headline names the receiver's country for a sent receipt and the sender's for a received one.
func headline(tx domain.Transaction, direction domain.ReceiptDirection, style receiptStyle) string {
	party, currency := tx.Receiver, tx.ToCurrency
	verb := "You just sent money to"
	if direction == domain.DirectionReceived {
		party, currency = tx.Sender, tx.FromCurrency
		verb = "You just received money from"
	}
	country, ok := refdata.CountryByCode(party.Country)
	if !ok {
		country, ok = refdata.CountryByCurrency(currency)
	}
	if !ok {
		return verb + " " + currency
	}
	if style == stylePrint || country.Flag == "" {
		return verb + " " + country.Name
	}
	return verb + " " + country.Name + " " + country.Flag
}

func (s *receiptService) partyBlock(title string, p domain.Party) domain.ReceiptBlock {
	block := domain.ReceiptBlock{Title: title}
	add := func(label, value string) {
		if strings.TrimSpace(value) != "" {
			block.Lines = append(block.Lines, domain.ReceiptLine{Label: label, Value: value})
		}
	}
	add("Name", p.Name)
	add("Phone", p.Phone)
	add("Email", p.Email)
	if c, ok := refdata.CountryByCode(p.Country); ok {
		add("Country", c.Name)
	} else {
		add("Country", p.Country)
	}
	add("Currency", p.Currency)
	if m, ok := refdata.PaymentMethodByID(p.PaymentMethod); ok {
		add("Payment Method", m.Name)
	} else {
		add("Payment Method", p.PaymentMethod)
	}
	return block
}

func (s *receiptService) feeBlock(tx domain.Transaction, style receiptStyle) domain.ReceiptBlock {
	feeCurrency := tx.FeeCurrency
	if feeCurrency == "" {
		feeCurrency = tx.FromCurrency
	}
	paidBy := "Receiver"
	if tx.FeeOnSender {
		paidBy = "Sender"
	}
	return domain.ReceiptBlock{
		Title: "Fee Breakdown",
		Lines: []domain.ReceiptLine{
			{Label: "Amount", Value: s.money(tx.Amount, tx.FromCurrency, style)},
			{Label: "Fee Rate", Value: tx.FeeRate.String() + "%"},
			{Label: "Fee", Value: s.money(tx.Fee, feeCurrency, style)},
			{Label: "Fee Paid By", Value: paidBy},
			{Label: "Exchange Rate", Value: tx.ExchangeRate.StringFixed(4)},
			{Label: "Effective Rate", Value: conversion.EffectiveRate(tx.ExchangeRate, tx.FeeRate).StringFixed(4)},
			{Label: "Receiver Gets", Value: s.money(tx.ReceiverAmount, tx.ToCurrency, style)},
		},
	}
}
