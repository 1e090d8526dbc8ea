// Package conversion holds the pure rate and fee arithmetic shared by the wizard,
// the conversion board and receipts.
package conversion

import (
	"time"

	"github.com/SscSPs/rjb_tranz/internal/core/domain"
	"github.com/shopspring/decimal"
)

var (
	one     = decimal.NewFromInt(1)
	hundred = decimal.NewFromInt(100)
)

// FeeBreakdown splits an amount into the fee and what is left after it.
type FeeBreakdown struct {
	FeeAmount decimal.Decimal `json:"feeAmount"`
	NetAmount decimal.Decimal `json:"netAmount"`
}

// Quote reports both the raw market rate and the fee-adjusted effective rate.
type Quote struct {
	MarketRate     decimal.Decimal `json:"marketRate"`
	EffectiveRate  decimal.Decimal `json:"effectiveRate"`
	FeeAmount      decimal.Decimal `json:"feeAmount"`
	NetAmount      decimal.Decimal `json:"netAmount"`
	ReceiverAmount decimal.Decimal `json:"receiverAmount"`
}

// FindRate resolves units of `to` per one unit of `from`.
// Lookup order: identity, exact pair, inverse pair, then a cross rate through base.
func FindRate(from, to string, rates []domain.ExchangeRate, base string) (decimal.Decimal, bool) {
	if from == to {
		return one, true
	}
	if r, ok := lookup(rates, domain.NewPair(from, to)); ok {
		return r.Rate, true
	}
	if r, ok := lookup(rates, domain.NewPair(to, from)); ok {
		return one.Div(r.Rate), true
	}
	if from == base || to == base {
		return decimal.Zero, false
	}

	fromRate, ok := leg(rates, base, from)
	if !ok {
		return decimal.Zero, false
	}
	toRate, ok := leg(rates, base, to)
	if !ok {
		return decimal.Zero, false
	}
	return toRate.Div(fromRate), true
}

// leg resolves base -> currency, directly or from the inverse pair.
func leg(rates []domain.ExchangeRate, base, currency string) (decimal.Decimal, bool) {
	if r, ok := lookup(rates, domain.NewPair(base, currency)); ok {
		return r.Rate, true
	}
	if r, ok := lookup(rates, domain.NewPair(currency, base)); ok {
		return one.Div(r.Rate), true
	}
	return decimal.Zero, false
}

func lookup(rates []domain.ExchangeRate, pair string) (domain.ExchangeRate, bool) {
	for _, r := range rates {
		if r.Pair == pair && r.Rate.IsPositive() {
			return r, true
		}
	}
	return domain.ExchangeRate{}, false
}

// ApplyFee computes fee = amount * feeRatePercent / 100 and net = amount - fee.
// Negative rates are computed as given; input validation rejects them.
func ApplyFee(amount, feeRatePercent decimal.Decimal) FeeBreakdown {
	fee := amount.Mul(feeRatePercent).Div(hundred)
	return FeeBreakdown{FeeAmount: fee, NetAmount: amount.Sub(fee)}
}

// Convert turns a net amount into the receiver's currency.
func Convert(netAmount, rate decimal.Decimal) decimal.Decimal {
	return netAmount.Mul(rate)
}

// ReceiverAmount is (amount - amount*feeRate/100) * rate.
func ReceiverAmount(amount, feeRatePercent, rate decimal.Decimal) decimal.Decimal {
	return Convert(ApplyFee(amount, feeRatePercent).NetAmount, rate)
}

// EffectiveRate is the market rate reduced by the fee: rate * (1 - feeRate/100).
func EffectiveRate(rate, feeRatePercent decimal.Decimal) decimal.Decimal {
	return rate.Mul(one.Sub(feeRatePercent.Div(hundred)))
}

// NewQuote evaluates an amount against a market rate and fee.
func NewQuote(amount, feeRatePercent, rate decimal.Decimal) Quote {
	fee := ApplyFee(amount, feeRatePercent)
	return Quote{
		MarketRate:     rate,
		EffectiveRate:  EffectiveRate(rate, feeRatePercent),
		FeeAmount:      fee.FeeAmount,
		NetAmount:      fee.NetAmount,
		ReceiverAmount: Convert(fee.NetAmount, rate),
	}
}

// RateChange returns the movement of the from/to pair. An inverse match is negated;
// with no match the change is zero and stamped with now.
func RateChange(from, to string, rates []domain.ExchangeRate, now time.Time) domain.RateChange {
	if r, ok := lookup(rates, domain.NewPair(from, to)); ok {
		return domain.RateChange{Change: r.Change, ChangePercent: r.ChangePercent, LastUpdated: r.LastUpdated}
	}
	if r, ok := lookup(rates, domain.NewPair(to, from)); ok {
		return domain.RateChange{Change: r.Change.Neg(), ChangePercent: r.ChangePercent.Neg(), LastUpdated: r.LastUpdated}
	}
	return domain.RateChange{Change: decimal.Zero, ChangePercent: decimal.Zero, LastUpdated: now}
}
