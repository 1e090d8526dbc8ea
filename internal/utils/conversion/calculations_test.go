package conversion_test

import (
	"testing"
	"time"

	"github.com/SscSPs/rjb_tranz/internal/core/domain"
	"github.com/SscSPs/rjb_tranz/internal/utils/conversion"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var tolerance = decimal.RequireFromString("0.0000000001")

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func assertClose(t *testing.T, want, got decimal.Decimal) {
	t.Helper()
	assert.True(t, want.Sub(got).Abs().LessThan(tolerance), "want %s, got %s", want, got)
}

func rates(pairs ...string) []domain.ExchangeRate {
	out := make([]domain.ExchangeRate, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, domain.ExchangeRate{Pair: pairs[i], Rate: d(pairs[i+1]), LastUpdated: time.Now()})
	}
	return out
}

func TestFindRate(t *testing.T) {
	table := rates("USD/GHS", "12.45", "USD/NGN", "795.50")

	tests := []struct {
		name   string
		from   string
		to     string
		want   decimal.Decimal
		wantOK bool
	}{
		{name: "identity", from: "GHS", to: "GHS", want: d("1"), wantOK: true},
		{name: "direct", from: "USD", to: "GHS", want: d("12.45"), wantOK: true},
		{name: "inverse", from: "GHS", to: "USD", want: d("1").Div(d("12.45")), wantOK: true},
		{name: "cross through base", from: "GHS", to: "NGN", want: d("795.50").Div(d("12.45")), wantOK: true},
		{name: "cross reversed", from: "NGN", to: "GHS", want: d("12.45").Div(d("795.50")), wantOK: true},
		{name: "missing leg", from: "GHS", to: "KES", wantOK: false},
		{name: "base to unknown", from: "USD", to: "KES", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := conversion.FindRate(tt.from, tt.to, table, "USD")
			require.Equal(t, tt.wantOK, ok)
			if ok {
				assertClose(t, tt.want, got)
			}
		})
	}
}

func TestFindRate_Scenarios(t *testing.T) {
	inv, ok := conversion.FindRate("GHS", "USD", rates("USD/GHS", "12.45"), "USD")
	require.True(t, ok)
	assert.Equal(t, "0.080321", inv.StringFixed(6))

	cross, ok := conversion.FindRate("GHS", "NGN", rates("USD/GHS", "12.45", "USD/NGN", "795.50"), "USD")
	require.True(t, ok)
	assert.Equal(t, "63.90", cross.StringFixed(2))
}

func TestFindRate_InverseSymmetry(t *testing.T) {
	for _, r := range []string{"0.0001", "0.92", "1", "12.45", "1335.50", "98765.4321"} {
		table := rates("AAA/BBB", r)

		direct, ok := conversion.FindRate("AAA", "BBB", table, "USD")
		require.True(t, ok)
		assert.True(t, d(r).Equal(direct))

		inverse, ok := conversion.FindRate("BBB", "AAA", table, "USD")
		require.True(t, ok)
		assertClose(t, d("1").Div(d(r)), inverse)
	}
}

func TestApplyFee_Scenario(t *testing.T) {
	fee := conversion.ApplyFee(d("1000"), d("5"))
	assert.Equal(t, "50.00", fee.FeeAmount.StringFixed(2))
	assert.Equal(t, "950.00", fee.NetAmount.StringFixed(2))
	assert.Equal(t, "11827.50", conversion.Convert(fee.NetAmount, d("12.45")).StringFixed(2))
	assert.Equal(t, "11827.50", conversion.ReceiverAmount(d("1000"), d("5"), d("12.45")).StringFixed(2))
}

func TestApplyFee_SumsToAmount(t *testing.T) {
	for _, amount := range []string{"0", "0.01", "1", "999.99", "1000000"} {
		for _, feeRate := range []string{"0", "0.5", "2.5", "5", "50", "99.99"} {
			fee := conversion.ApplyFee(d(amount), d(feeRate))
			assertClose(t, d(amount), fee.FeeAmount.Add(fee.NetAmount))
		}
	}
}

func TestApplyFee_NegativeRateIsComputed(t *testing.T) {
	fee := conversion.ApplyFee(d("100"), d("-5"))
	assert.True(t, d("-5").Equal(fee.FeeAmount))
	assert.True(t, d("105").Equal(fee.NetAmount))
}

func TestReceiverAmount_MonotonicInRate(t *testing.T) {
	amount, feeRate := d("250"), d("3")
	prev := conversion.ReceiverAmount(amount, feeRate, d("0.5"))
	for _, r := range []string{"0.92", "1", "7.28", "12.45", "795.5"} {
		next := conversion.ReceiverAmount(amount, feeRate, d(r))
		assert.True(t, next.GreaterThan(prev), "rate %s", r)
		prev = next
	}
}

func TestNewQuote_KeepsMarketRate(t *testing.T) {
	q := conversion.NewQuote(d("1000"), d("5"), d("12.45"))
	assert.True(t, d("12.45").Equal(q.MarketRate))
	assert.Equal(t, "11.8275", q.EffectiveRate.StringFixed(4))
	assert.Equal(t, "11827.50", q.ReceiverAmount.StringFixed(2))
	assert.True(t, q.NetAmount.Mul(q.MarketRate).Equal(q.ReceiverAmount))
}

func TestRateChange(t *testing.T) {
	now := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	stamp := now.Add(-time.Minute)
	table := []domain.ExchangeRate{{
		Pair: "USD/GHS", Rate: d("12.45"), Change: d("0.12"), ChangePercent: d("0.97"), LastUpdated: stamp,
	}}

	direct := conversion.RateChange("USD", "GHS", table, now)
	assert.True(t, d("0.12").Equal(direct.Change))
	assert.Equal(t, stamp, direct.LastUpdated)

	inverse := conversion.RateChange("GHS", "USD", table, now)
	assert.True(t, d("-0.12").Equal(inverse.Change))
	assert.True(t, d("-0.97").Equal(inverse.ChangePercent))

	none := conversion.RateChange("GHS", "NGN", table, now)
	assert.True(t, none.Change.IsZero())
	assert.Equal(t, now, none.LastUpdated)
}
