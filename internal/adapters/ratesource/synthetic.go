package ratesource

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"
	"sync"
	"time"

	"github.com/SscSPs/rjb_tranz/internal/core/domain"
	"github.com/SscSPs/rjb_tranz/internal/core/ports/repositories"
	"github.com/SscSPs/rjb_tranz/internal/refdata"
	"github.com/SscSPs/rjb_tranz/internal/utils/conversion"
	"github.com/shopspring/decimal"
)

// BaselineCurrency is the base of the built-in baseline table.
const BaselineCurrency = "USD"

// DefaultVolatility is the percent swing used for pairs without their own entry.
const DefaultVolatility = 1.0

// DefaultHistoryDays is used when Historical is called with days <= 0.
const DefaultHistoryDays = 7

type baselineRate struct {
	quote  string
	rate   string
	region domain.Region
}

var baseline = []baselineRate{
	{"GHS", "12.45", domain.RegionAfrica},
	{"NGN", "795.50", domain.RegionAfrica},
	{"KES", "129.75", domain.RegionAfrica},
	{"ZAR", "18.75", domain.RegionAfrica},
	{"EGP", "30.85", domain.RegionAfrica},
	{"INR", "83.25", domain.RegionAsia},
	{"PHP", "56.75", domain.RegionAsia},
	{"JPY", "149.85", domain.RegionAsia},
	{"CNY", "7.28", domain.RegionAsia},
	{"KRW", "1335.50", domain.RegionAsia},
	{"EUR", "0.92", domain.RegionEurope},
	{"GBP", "0.79", domain.RegionEurope},
	{"CHF", "0.88", domain.RegionEurope},
	{"CAD", "1.36", domain.RegionNorthAmerica},
	{"MXN", "17.85", domain.RegionNorthAmerica},
	{"BRL", "4.95", domain.RegionSouthAmerica},
	{"AUD", "1.52", domain.RegionOceania},
	{"AED", "3.67", domain.RegionMiddleEast},
	{"SAR", "3.75", domain.RegionMiddleEast},
}

var volatility = map[string]float64{
	"USD/EUR": 0.5,
	"USD/GBP": 0.6,
	"USD/JPY": 0.4,
	"USD/CHF": 0.4,
	"USD/CAD": 0.3,
	"USD/AUD": 0.7,
	"USD/GHS": 1.2,
	"USD/NGN": 2.0,
	"USD/KES": 1.5,
	"USD/ZAR": 1.8,
	"USD/INR": 0.8,
	"USD/PHP": 1.0,
	"USD/CNY": 0.3,
	"USD/BRL": 1.5,
	"USD/MXN": 1.2,
}

// Volatility returns the percent swing for a pair.
func Volatility(pair string) float64 {
	if v, ok := volatility[strings.ToUpper(pair)]; ok {
		return v
	}
	return DefaultVolatility
}

// Baseline returns the fixed USD based table the generator perturbs, stamped with at.
func Baseline(at time.Time) []domain.ExchangeRate {
	out := make([]domain.ExchangeRate, 0, len(baseline))
	for _, b := range baseline {
		out = append(out, domain.ExchangeRate{
			Pair:          domain.NewPair(BaselineCurrency, b.quote),
			Rate:          decimal.RequireFromString(b.rate),
			Change:        decimal.Zero,
			ChangePercent: decimal.Zero,
			LastUpdated:   at,
			Region:        b.region,
		})
	}
	return out
}

// Synthetic is the offline rate source. Every fetch perturbs the baseline, never the
// previous result, so values stay within one volatility band of the table.
type Synthetic struct {
	mu    sync.Mutex
	float func() float64
	now   func() time.Time
}

// NewSynthetic creates a generator. A nil float uses math/rand/v2.
func NewSynthetic(float func() float64, now func() time.Time) *Synthetic {
	if float == nil {
		float = rand.Float64
	}
	if now == nil {
		now = time.Now
	}
	return &Synthetic{float: float, now: now}
}

var (
	_ repositories.RateFetcher   = (*Synthetic)(nil)
	_ repositories.RateHistorian = (*Synthetic)(nil)
)

func (s *Synthetic) Source() domain.RateSource { return domain.RateSourceFallback }

func (s *Synthetic) random() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.float()
}

// perturb moves rate by a uniform percent in [-vol, vol).
func (s *Synthetic) perturb(rate decimal.Decimal, vol float64) decimal.Decimal {
	pct := (s.random() - 0.5) * 2 * vol
	factor := decimal.NewFromInt(1).Add(decimal.NewFromFloat(pct).Div(decimal.NewFromInt(100)))
	return rate.Mul(factor).Round(6)
}

// FetchRates returns one perturbed entry per baseline pair, rebased on base when it is
// not the baseline currency.
func (s *Synthetic) FetchRates(ctx context.Context, base string) ([]domain.ExchangeRate, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	base = strings.ToUpper(base)
	now := s.now().UTC()
	table, err := rebase(Baseline(now), base)
	if err != nil {
		return nil, err
	}

	hundred := decimal.NewFromInt(100)
	out := make([]domain.ExchangeRate, 0, len(table))
	for _, r := range table {
		next := s.perturb(r.Rate, Volatility(r.Pair))
		change := next.Sub(r.Rate)
		r.ChangePercent = change.Div(r.Rate).Mul(hundred).Round(4)
		r.Change = change.Round(6)
		r.Rate = next
		r.LastUpdated = now
		out = append(out, r)
	}
	return out, nil
}

// Historical returns days+1 daily points ending today for pair, oldest first.
func (s *Synthetic) Historical(pair string, days int, now time.Time) ([]domain.HistoricalRate, error) {
	if days <= 0 {
		days = DefaultHistoryDays
	}
	pair = strings.ToUpper(pair)
	base, quote, ok := domain.SplitPair(pair)
	if !ok {
		return nil, fmt.Errorf("pair %q must look like BASE/QUOTE", pair)
	}
	start, found := conversion.FindRate(base, quote, Baseline(now), BaselineCurrency)
	if !found {
		start = decimal.NewFromInt(1)
	}
	vol := Volatility(pair)

	out := make([]domain.HistoricalRate, 0, days+1)
	for i := days; i >= 0; i-- {
		day := now.UTC().AddDate(0, 0, -i)
		out = append(out, domain.HistoricalRate{
			Date: day.Format(time.DateOnly),
			Rate: s.perturb(start, vol),
		})
	}
	return out, nil
}

// rebase expresses the USD table in terms of base.
func rebase(table []domain.ExchangeRate, base string) ([]domain.ExchangeRate, error) {
	if base == BaselineCurrency {
		return table, nil
	}
	if _, ok := conversion.FindRate(BaselineCurrency, base, table, BaselineCurrency); !ok {
		return nil, fmt.Errorf("synthetic rates have no baseline for %s", base)
	}
	quotes := make([]string, 0, len(table))
	quotes = append(quotes, BaselineCurrency)
	for _, r := range table {
		if q := r.Quote(); q != base {
			quotes = append(quotes, q)
		}
	}
	out := make([]domain.ExchangeRate, 0, len(quotes))
	for _, q := range quotes {
		rate, ok := conversion.FindRate(base, q, table, BaselineCurrency)
		if !ok {
			continue
		}
		out = append(out, domain.ExchangeRate{
			Pair:        domain.NewPair(base, q),
			Rate:        rate.Round(6),
			LastUpdated: table[0].LastUpdated,
			Region:      refdata.RegionForCurrency(q),
		})
	}
	return out, nil
}
