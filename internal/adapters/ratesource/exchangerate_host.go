package ratesource

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/SscSPs/rjb_tranz/internal/apperrors"
	"github.com/SscSPs/rjb_tranz/internal/core/domain"
	"github.com/SscSPs/rjb_tranz/internal/core/ports/repositories"
	"github.com/SscSPs/rjb_tranz/internal/refdata"
	"github.com/shopspring/decimal"
)

// DefaultLiveURL is the public exchangerate.host endpoint.
const DefaultLiveURL = "https://api.exchangerate.host"

// maxBodyBytes caps the response body read.
const maxBodyBytes = 1 << 20

type latestResponse struct {
	Base  string                     `json:"base"`
	Rates map[string]json.RawMessage `json:"rates"`
}

// ExchangeRateHost fetches the latest rates from an exchangerate.host compatible API.
type ExchangeRateHost struct {
	baseURL   string
	accessKey string
	client    *http.Client
	now       func() time.Time
}

// NewExchangeRateHost creates a live fetcher. A nil client gets one with the given timeout.
func NewExchangeRateHost(baseURL, accessKey string, client *http.Client, timeout time.Duration) *ExchangeRateHost {
	if baseURL == "" {
		baseURL = DefaultLiveURL
	}
	if client == nil {
		client = &http.Client{Timeout: timeout}
	}
	return &ExchangeRateHost{
		baseURL:   strings.TrimRight(baseURL, "/"),
		accessKey: accessKey,
		client:    client,
		now:       time.Now,
	}
}

var _ repositories.RateFetcher = (*ExchangeRateHost)(nil)

func (e *ExchangeRateHost) Source() domain.RateSource { return domain.RateSourceLive }

// FetchRates requests <baseURL>/latest?base=<base>. Any transport error, non-2xx status,
// missing or empty rates object or non-numeric value fails the whole batch.
func (e *ExchangeRateHost) FetchRates(ctx context.Context, base string) ([]domain.ExchangeRate, error) {
	base = strings.ToUpper(base)
	q := url.Values{}
	q.Set("base", base)
	if e.accessKey != "" {
		q.Set("access_key", e.accessKey)
	}
	endpoint := e.baseURL + "/latest?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %v", apperrors.ErrFetch, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrFetch, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: unexpected status %d", apperrors.ErrFetch, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %v", apperrors.ErrFetch, err)
	}
	var payload latestResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("%w: decode body: %v", apperrors.ErrFetch, err)
	}
	if len(payload.Rates) == 0 {
		return nil, fmt.Errorf("%w: response has no rates", apperrors.ErrFetch)
	}

	codes := make([]string, 0, len(payload.Rates))
	for code := range payload.Rates {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	now := e.now().UTC()
	out := make([]domain.ExchangeRate, 0, len(codes))
	for _, code := range codes {
		rate, err := parseRate(payload.Rates[code])
		if err != nil {
			return nil, fmt.Errorf("%w: rate for %s: %v", apperrors.ErrFetch, code, err)
		}
		quote := strings.ToUpper(code)
		out = append(out, domain.ExchangeRate{
			Pair:          domain.NewPair(base, quote),
			Rate:          rate,
			Change:        decimal.Zero,
			ChangePercent: decimal.Zero,
			LastUpdated:   now,
			Region:        refdata.RegionForCurrency(quote),
		})
	}
	return out, nil
}

// parseRate accepts only a bare JSON number.
func parseRate(raw json.RawMessage) (decimal.Decimal, error) {
	s := strings.TrimSpace(string(raw))
	if s == "" || s == "null" || strings.HasPrefix(s, "\"") {
		return decimal.Zero, fmt.Errorf("value %s is not a number", s)
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return decimal.Zero, err
	}
	return decimal.NewFromString(n.String())
}
