package utils

import (
	"github.com/SscSPs/rjb_tranz/internal/refdata"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// MoneyFormatter renders amounts with locale grouping and the currency symbol.
type MoneyFormatter struct {
	printer *message.Printer
}

// NewMoneyFormatter builds a formatter for a BCP 47 locale tag such as "en-US".
// An unparseable tag falls back to English.
func NewMoneyFormatter(locale string) *MoneyFormatter {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.English
	}
	return &MoneyFormatter{printer: message.NewPrinter(tag)}
}

// Amount formats amount with two decimals and grouping, e.g. 11827.5 -> "11,827.50".
func (f *MoneyFormatter) Amount(amount decimal.Decimal) string {
	v, _ := amount.Round(2).Float64()
	return f.printer.Sprint(number.Decimal(v, number.Scale(2)))
}

// Money formats amount prefixed by the currency symbol, e.g. "₵11,827.50".
// Unknown currencies are prefixed by the code and a space.
func (f *MoneyFormatter) Money(amount decimal.Decimal, currency string) string {
	symbol := refdata.CurrencySymbol(currency)
	if symbol == currency {
		return symbol + " " + f.Amount(amount)
	}
	return symbol + f.Amount(amount)
}

// Code formats amount followed by the ISO code, e.g. "11,827.50 GHS".
func (f *MoneyFormatter) Code(amount decimal.Decimal, currency string) string {
	return f.Amount(amount) + " " + currency
}

// FormatWithPrecision formats an amount with the given precision.
func FormatWithPrecision(amount decimal.Decimal, precision int) string {
	return amount.StringFixed(int32(precision))
}
