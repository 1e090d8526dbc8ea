package ratesource

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/SscSPs/rjb_tranz/internal/apperrors"
	"github.com/SscSPs/rjb_tranz/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

func newLive(t *testing.T, status int, body string) (*ExchangeRateHost, *http.Request) {
	t.Helper()
	var seen http.Request
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = *r
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	live := NewExchangeRateHost(srv.URL, "secret", nil, time.Second)
	live.now = func() time.Time { return fixedNow }
	return live, &seen
}

func TestExchangeRateHost_FetchRates(t *testing.T) {
	live, seen := newLive(t, http.StatusOK, `{"base":"USD","rates":{"GHS":12.45,"EUR":0.92,"XYZ":3}}`)

	rates, err := live.FetchRates(context.Background(), "usd")
	require.NoError(t, err)
	require.Len(t, rates, 3)

	assert.Equal(t, "/latest", seen.URL.Path)
	assert.Equal(t, "USD", seen.URL.Query().Get("base"))
	assert.Equal(t, "secret", seen.URL.Query().Get("access_key"))

	// sorted by code
	assert.Equal(t, "USD/EUR", rates[0].Pair)
	assert.Equal(t, domain.RegionEurope, rates[0].Region)
	assert.Equal(t, "USD/GHS", rates[1].Pair)
	assert.Equal(t, "12.45", rates[1].Rate.String())
	assert.True(t, rates[1].Change.IsZero())
	assert.Equal(t, fixedNow, rates[1].LastUpdated)
	assert.Equal(t, domain.RegionGlobal, rates[2].Region)
	assert.Equal(t, domain.RateSourceLive, live.Source())
}

func TestExchangeRateHost_Failures(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"server error", http.StatusInternalServerError, `{"rates":{"GHS":1}}`},
		{"missing rates", http.StatusOK, `{"success":false}`},
		{"empty rates", http.StatusOK, `{"rates":{}}`},
		{"string value", http.StatusOK, `{"rates":{"GHS":"12.45"}}`},
		{"null value", http.StatusOK, `{"rates":{"GHS":null}}`},
		{"not json", http.StatusOK, `<html>`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			live, _ := newLive(t, tt.status, tt.body)
			_, err := live.FetchRates(context.Background(), "USD")
			require.Error(t, err)
			assert.ErrorIs(t, err, apperrors.ErrFetch)
		})
	}
}

func TestExchangeRateHost_TransportError(t *testing.T) {
	live := NewExchangeRateHost("http://127.0.0.1:1", "", nil, 200*time.Millisecond)
	_, err := live.FetchRates(context.Background(), "USD")
	assert.ErrorIs(t, err, apperrors.ErrFetch)
}

func TestSynthetic_NoMovementAtMidpoint(t *testing.T) {
	s := NewSynthetic(func() float64 { return 0.5 }, func() time.Time { return fixedNow })

	rates, err := s.FetchRates(context.Background(), "USD")
	require.NoError(t, err)
	require.Len(t, rates, 19)

	ghs := rates[0]
	assert.Equal(t, "USD/GHS", ghs.Pair)
	assert.Equal(t, "12.45", ghs.Rate.String())
	assert.True(t, ghs.Change.IsZero())
	assert.True(t, ghs.ChangePercent.IsZero())
	assert.Equal(t, domain.RegionAfrica, ghs.Region)
	assert.Equal(t, domain.RateSourceFallback, s.Source())

	set := domain.RateSet{Base: "USD", Rates: rates}
	assert.NoError(t, set.Validate())
}

func TestSynthetic_StaysWithinVolatilityBand(t *testing.T) {
	// 0.9 -> +0.8 * volatility percent
	s := NewSynthetic(func() float64 { return 0.9 }, func() time.Time { return fixedNow })

	for i := 0; i < 3; i++ {
		rates, err := s.FetchRates(context.Background(), "USD")
		require.NoError(t, err)
		ghs := rates[0]
		// 12.45 * (1 + 0.96/100)
		assert.Equal(t, "12.56952", ghs.Rate.String())
		assert.Equal(t, "0.96", ghs.ChangePercent.String())
	}
}

func TestSynthetic_Rebase(t *testing.T) {
	s := NewSynthetic(func() float64 { return 0.5 }, func() time.Time { return fixedNow })

	rates, err := s.FetchRates(context.Background(), "GHS")
	require.NoError(t, err)
	set := domain.RateSet{Base: "GHS", Rates: rates}
	require.NoError(t, set.Validate())

	usd, ok := set.Find("GHS/USD")
	require.True(t, ok)
	assert.Equal(t, "0.080321", usd.Rate.String())
	_, ok = set.Find("GHS/GHS")
	assert.False(t, ok)

	_, err = s.FetchRates(context.Background(), "XXX")
	assert.Error(t, err)
}

func TestSynthetic_Historical(t *testing.T) {
	s := NewSynthetic(func() float64 { return 0.5 }, nil)

	points, err := s.Historical("usd/ghs", 7, fixedNow)
	require.NoError(t, err)
	require.Len(t, points, 8)
	assert.Equal(t, "2025-03-03", points[0].Date)
	assert.Equal(t, "2025-03-10", points[7].Date)
	assert.Equal(t, "12.45", points[7].Rate.String())

	points, err = s.Historical("ABC/DEF", 0, fixedNow)
	require.NoError(t, err)
	assert.Len(t, points, DefaultHistoryDays+1)
	assert.Equal(t, "1", points[0].Rate.String())

	_, err = s.Historical("broken", 3, fixedNow)
	assert.Error(t, err)
}

func TestVolatility(t *testing.T) {
	assert.Equal(t, 2.0, Volatility("USD/NGN"))
	assert.Equal(t, DefaultVolatility, Volatility("USD/AED"))
}
