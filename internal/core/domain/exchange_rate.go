package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Region groups currency pairs for display.
type Region string

const (
	RegionAfrica       Region = "africa"
	RegionAsia         Region = "asia"
	RegionEurope       Region = "europe"
	RegionNorthAmerica Region = "north-america"
	RegionSouthAmerica Region = "south-america"
	RegionOceania      Region = "oceania"
	RegionMiddleEast   Region = "middle-east"
	RegionGlobal       Region = "global"
)

// PairSeparator separates base and quote in a pair identifier.
const PairSeparator = "/"

// ExchangeRate is the rate of one currency pair. Rate is units of quote per one unit of base.
type ExchangeRate struct {
	Pair          string          `json:"pair"`
	Rate          decimal.Decimal `json:"rate"`
	Change        decimal.Decimal `json:"change"`
	ChangePercent decimal.Decimal `json:"changePercent"`
	LastUpdated   time.Time       `json:"lastUpdated"`
	Region        Region          `json:"region"`
}

// NewPair builds a "BASE/QUOTE" identifier.
func NewPair(base, quote string) string {
	return strings.ToUpper(base) + PairSeparator + strings.ToUpper(quote)
}

// SplitPair returns the base and quote of a pair identifier.
func SplitPair(pair string) (base, quote string, ok bool) {
	parts := strings.Split(pair, PairSeparator)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", false
	}
	return parts[0], parts[1], true
}

// Base returns the base currency of the pair, or "" for a malformed pair.
func (r ExchangeRate) Base() string {
	base, _, _ := SplitPair(r.Pair)
	return base
}

// Quote returns the quote currency of the pair, or "" for a malformed pair.
func (r ExchangeRate) Quote() string {
	_, quote, _ := SplitPair(r.Pair)
	return quote
}

// Validate checks a single entry of a batch about to be published for baseCurrency.
func (r ExchangeRate) Validate(baseCurrency string) error {
	if !r.Rate.IsPositive() {
		return fmt.Errorf("pair %q: rate must be positive, got %s", r.Pair, r.Rate.String())
	}
	if r.LastUpdated.IsZero() {
		return fmt.Errorf("pair %q: lastUpdated is empty", r.Pair)
	}
	if !strings.HasPrefix(r.Pair, strings.ToUpper(baseCurrency)+PairSeparator) {
		return fmt.Errorf("pair %q does not start with base currency %s", r.Pair, baseCurrency)
	}
	if _, _, ok := SplitPair(r.Pair); !ok {
		return fmt.Errorf("pair %q is malformed", r.Pair)
	}
	return nil
}

// RateSource identifies where a published rate set came from.
type RateSource string

const (
	RateSourceLive     RateSource = "live"
	RateSourceFallback RateSource = "fallback"
)

// RateSet is a complete, published table of rates. It is always replaced as a whole.
type RateSet struct {
	Base       string         `json:"base"`
	Rates      []ExchangeRate `json:"rates"`
	Source     RateSource     `json:"source"`
	Generation uint64         `json:"generation"`
	FetchedAt  time.Time      `json:"fetchedAt"`
}

// Validate checks every entry; a single violation invalidates the whole batch.
func (s RateSet) Validate() error {
	if len(s.Rates) == 0 {
		return fmt.Errorf("rate set is empty")
	}
	for _, r := range s.Rates {
		if err := r.Validate(s.Base); err != nil {
			return err
		}
	}
	return nil
}

// Clone returns a copy whose Rates slice does not alias the receiver's.
func (s RateSet) Clone() RateSet {
	out := s
	out.Rates = make([]ExchangeRate, len(s.Rates))
	copy(out.Rates, s.Rates)
	return out
}

// Find returns the entry with the given pair identifier.
func (s RateSet) Find(pair string) (ExchangeRate, bool) {
	for _, r := range s.Rates {
		if r.Pair == pair {
			return r, true
		}
	}
	return ExchangeRate{}, false
}

// HistoricalRate is one daily point of a synthetic rate history.
type HistoricalRate struct {
	Date string          `json:"date"`
	Rate decimal.Decimal `json:"rate"`
}

// RateStatus is the operator-facing state of the rate store.
type RateStatus struct {
	Base            string     `json:"base"`
	AutoRefresh     bool       `json:"autoRefresh"`
	RefreshInterval Duration   `json:"refreshInterval"`
	Source          RateSource `json:"source,omitempty"`
	Generation      uint64     `json:"generation"`
	PairCount       int        `json:"pairCount"`
	ErrorCount      int        `json:"errorCount"`
	Message         string     `json:"message,omitempty"`
	LastAttemptAt   time.Time  `json:"lastAttemptAt"`
	LastSuccessAt   time.Time  `json:"lastSuccessAt"`
}
