// Package refdata holds the immutable reference tables shared by every component that
// needs currency or country metadata. Callers receive copies; the tables never change.
package refdata

import (
	"strings"

	"github.com/SscSPs/rjb_tranz/internal/core/domain"
)

var paymentMethods = []domain.PaymentMethod{
	{ID: "zelle", Name: "Zelle", Description: "US Bank Transfer"},
	{ID: "mtn_momo", Name: "MTN MoMo", Description: "Mobile Money"},
	{ID: "cash", Name: "Cash", Description: "Cash Payment"},
	{ID: "interbank", Name: "Interbank", Description: "Bank Transfer"},
}

// popularPairs is the display order of the rate board.
var popularPairs = []string{
	"USD/GHS", "USD/NGN", "USD/INR", "USD/PHP", "USD/KES",
	"USD/EUR", "USD/GBP", "USD/CAD", "USD/AUD", "USD/JPY",
}

var (
	byCode     = map[string]domain.Country{}
	byCurrency = map[string]domain.Country{}
)

func init() {
	for _, c := range countries {
		byCode[c.Code] = c
		if _, seen := byCurrency[c.Currency]; !seen {
			byCurrency[c.Currency] = c
		}
	}
}

// Countries returns a copy of the country table.
func Countries() []domain.Country {
	out := make([]domain.Country, len(countries))
	copy(out, countries)
	return out
}

// CountryByCode looks a country up by its ISO alpha-2 code.
func CountryByCode(code string) (domain.Country, bool) {
	c, ok := byCode[strings.ToUpper(code)]
	return c, ok
}

// CountryByCurrency returns the first country using the currency.
func CountryByCurrency(currency string) (domain.Country, bool) {
	c, ok := byCurrency[strings.ToUpper(currency)]
	return c, ok
}

// CurrencySymbol returns the display symbol of a currency, or the code itself when unknown.
func CurrencySymbol(currency string) string {
	if c, ok := CountryByCurrency(currency); ok && c.Symbol != "" {
		return c.Symbol
	}
	return strings.ToUpper(currency)
}

// RegionForCurrency returns the display region of a currency, RegionGlobal when unknown.
func RegionForCurrency(currency string) domain.Region {
	if c, ok := CountryByCurrency(currency); ok {
		return c.Region
	}
	return domain.RegionGlobal
}

// PaymentMethods returns a copy of the payment method table.
func PaymentMethods() []domain.PaymentMethod {
	out := make([]domain.PaymentMethod, len(paymentMethods))
	copy(out, paymentMethods)
	return out
}

// PaymentMethodByID looks up a payment method.
func PaymentMethodByID(id string) (domain.PaymentMethod, bool) {
	for _, m := range paymentMethods {
		if m.ID == id {
			return m, true
		}
	}
	return domain.PaymentMethod{}, false
}

// PopularPairs returns the rate board order.
func PopularPairs() []string {
	out := make([]string, len(popularPairs))
	copy(out, popularPairs)
	return out
}
