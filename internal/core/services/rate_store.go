package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/SscSPs/rjb_tranz/internal/apperrors"
	"github.com/SscSPs/rjb_tranz/internal/core/domain"
	portsrepo "github.com/SscSPs/rjb_tranz/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/rjb_tranz/internal/core/ports/services"
	"github.com/SscSPs/rjb_tranz/internal/refdata"
	"github.com/SscSPs/rjb_tranz/internal/utils/conversion"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/singleflight"
)

// Status messages shown after a refresh.
const (
	MsgRatesUpdatedLive     = "Exchange rates updated with live data"
	MsgRatesUpdatedFallback = "Exchange rates updated with fallback data"
	MsgRatesRetrying        = "Failed to update exchange rates. Retrying..."
	MsgRatesUnavailable     = "Exchange rate service temporarily unavailable"
)

var (
	rateRefreshTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "rjb_rate_refresh_total",
		Help: "Rate refresh attempts by source and outcome.",
	}, []string{"source", "outcome"})

	rateConsecutiveErrors = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "rjb_rate_consecutive_errors",
		Help: "Consecutive failed rate refreshes.",
	})

	rateFetchDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "rjb_rate_fetch_duration_seconds",
		Help:    "Latency of rate fetches by source.",
		Buckets: prometheus.DefBuckets,
	}, []string{"source"})
)

// RateStoreConfig holds the tunables of the rate store.
type RateStoreConfig struct {
	Base            string
	AutoRefresh     bool
	RefreshInterval time.Duration
	FetchTimeout    time.Duration
	ErrorThreshold  int
	Now             func() time.Time
}

type rateStore struct {
	BaseService
	live     portsrepo.RateFetcher
	fallback portsrepo.RateFetcher
	history  portsrepo.RateHistorian
	base     string
	timeout  time.Duration
	maxErr   int
	now      func() time.Time

	group   singleflight.Group
	nextGen atomic.Uint64
	wake    chan struct{}

	mu          sync.RWMutex
	current     domain.RateSet
	autoRefresh bool
	interval    time.Duration
	errorCount  int
	message     string
	lastAttempt time.Time
	lastSuccess time.Time

	subMu   sync.Mutex
	subs    map[int]chan domain.RateSet
	nextSub int
}

// NewRateStore creates the rate store. live may be nil, in which case every refresh
// uses the fallback source.
func NewRateStore(live, fallback portsrepo.RateFetcher, history portsrepo.RateHistorian, cfg RateStoreConfig) portssvc.RateStoreSvcFacade {
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.RefreshInterval <= 0 {
		cfg.RefreshInterval = 30 * time.Second
	}
	if cfg.FetchTimeout <= 0 {
		cfg.FetchTimeout = 10 * time.Second
	}
	base := strings.ToUpper(cfg.Base)
	return &rateStore{
		live:        live,
		fallback:    fallback,
		history:     history,
		base:        base,
		timeout:     cfg.FetchTimeout,
		maxErr:      cfg.ErrorThreshold,
		now:         cfg.Now,
		wake:        make(chan struct{}, 1),
		current:     domain.RateSet{Base: base},
		autoRefresh: cfg.AutoRefresh,
		interval:    cfg.RefreshInterval,
		subs:        make(map[int]chan domain.RateSet),
	}
}

func (s *rateStore) Current() domain.RateSet {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current.Clone()
}

func (s *rateStore) Status() domain.RateStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return domain.RateStatus{
		Base:            s.base,
		AutoRefresh:     s.autoRefresh,
		RefreshInterval: domain.Duration(s.interval),
		Source:          s.current.Source,
		Generation:      s.current.Generation,
		PairCount:       len(s.current.Rates),
		ErrorCount:      s.errorCount,
		Message:         s.message,
		LastAttemptAt:   s.lastAttempt,
		LastSuccessAt:   s.lastSuccess,
	}
}

func (s *rateStore) FindRate(from, to string) (decimal.Decimal, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return conversion.FindRate(strings.ToUpper(from), strings.ToUpper(to), s.current.Rates, s.base)
}

func (s *rateStore) LookupRate(from, to string) (domain.ExchangeRate, error) {
	from, to = strings.ToUpper(from), strings.ToUpper(to)
	s.mu.RLock()
	rates := s.current.Rates
	rate, found := conversion.FindRate(from, to, rates, s.base)
	change := conversion.RateChange(from, to, rates, s.now())
	s.mu.RUnlock()
	if !found {
		return domain.ExchangeRate{}, fmt.Errorf("%w: %s", apperrors.ErrRateNotFound, domain.NewPair(from, to))
	}
	return domain.ExchangeRate{
		Pair:          domain.NewPair(from, to),
		Rate:          rate,
		Change:        change.Change,
		ChangePercent: change.ChangePercent,
		LastUpdated:   change.LastUpdated,
		Region:        refdata.RegionForCurrency(to),
	}, nil
}

func (s *rateStore) Historical(ctx context.Context, pair string, days int) ([]domain.HistoricalRate, error) {
	if s.history == nil {
		return nil, fmt.Errorf("%w: no rate history source configured", apperrors.ErrNotFound)
	}
	if days <= 0 {
		return nil, fmt.Errorf("%w: days must be positive", apperrors.ErrValidation)
	}
	points, err := s.history.Historical(strings.ToUpper(pair), days, s.now())
	if err != nil {
		s.LogError(ctx, err, "Failed to build rate history", slog.String("pair", pair))
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}
	return points, nil
}

func (s *rateStore) Subscribe() (<-chan domain.RateSet, func()) {
	ch := make(chan domain.RateSet, 1)
	s.subMu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = ch
	s.subMu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			s.subMu.Lock()
			delete(s.subs, id)
			s.subMu.Unlock()
			close(ch)
		})
	}
}

// notify hands set to every subscriber. A slow subscriber only ever sees the latest set.
func (s *rateStore) notify(set domain.RateSet) {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	for _, ch := range s.subs {
		select {
		case <-ch:
		default:
		}
		ch <- set.Clone()
	}
}

// Refresh fetches a new set. Concurrent callers share the in-flight fetch; a caller
// whose ctx ends stops waiting but the fetch runs to completion under its own timeout.
func (s *rateStore) Refresh(ctx context.Context) (domain.RateSet, error) {
	ch := s.group.DoChan("refresh", func() (any, error) {
		gen := s.nextGen.Add(1)
		fetchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.timeout)
		defer cancel()
		return s.refresh(fetchCtx, gen)
	})
	select {
	case res := <-ch:
		if res.Err != nil {
			return domain.RateSet{}, res.Err
		}
		return res.Val.(domain.RateSet), nil
	case <-ctx.Done():
		return domain.RateSet{}, ctx.Err()
	}
}

func (s *rateStore) refresh(ctx context.Context, gen uint64) (domain.RateSet, error) {
	startedAt := s.now()
	s.mu.Lock()
	s.lastAttempt = startedAt
	s.mu.Unlock()

	rates, source, err := s.fetch(ctx)
	if err != nil {
		return domain.RateSet{}, s.recordFailure(ctx, string(source), err)
	}

	set := domain.RateSet{
		Base:       s.base,
		Rates:      rates,
		Source:     source,
		Generation: gen,
		FetchedAt:  startedAt,
	}
	if err := set.Validate(); err != nil {
		return domain.RateSet{}, s.recordFailure(ctx, string(source), fmt.Errorf("%w: invalid rate batch: %v", apperrors.ErrFetch, err))
	}

	published, stale := s.publish(set)
	if stale {
		rateRefreshTotal.WithLabelValues(string(source), "stale").Inc()
		s.LogDebug(ctx, "Discarded stale rate set", slog.Uint64("generation", gen), slog.Uint64("published_generation", published.Generation))
		return published, nil
	}
	rateRefreshTotal.WithLabelValues(string(source), "success").Inc()
	rateConsecutiveErrors.Set(0)
	s.LogInfo(ctx, "Published exchange rates",
		slog.String("source", string(source)),
		slog.Uint64("generation", gen),
		slog.Int("pairs", len(set.Rates)))
	s.notify(set)
	return set.Clone(), nil
}

// fetch tries the live source first and falls back to the synthetic one.
func (s *rateStore) fetch(ctx context.Context) ([]domain.ExchangeRate, domain.RateSource, error) {
	if s.live != nil {
		rates, err := s.timedFetch(ctx, s.live)
		if err == nil {
			return rates, s.live.Source(), nil
		}
		s.LogWarn(ctx, "Live exchange rate fetch failed, falling back to internal rates", slog.String("error", err.Error()))
	}
	if s.fallback == nil {
		return nil, "none", fmt.Errorf("%w: no fallback rate source configured", apperrors.ErrFetch)
	}
	rates, err := s.timedFetch(ctx, s.fallback)
	if err != nil {
		return nil, s.fallback.Source(), err
	}
	return rates, s.fallback.Source(), nil
}

func (s *rateStore) timedFetch(ctx context.Context, src portsrepo.RateFetcher) ([]domain.ExchangeRate, error) {
	timer := prometheus.NewTimer(rateFetchDuration.WithLabelValues(string(src.Source())))
	defer timer.ObserveDuration()
	return src.FetchRates(ctx, s.base)
}

// publish replaces the current set unless a newer generation is already published.
func (s *rateStore) publish(set domain.RateSet) (domain.RateSet, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if set.Generation <= s.current.Generation {
		return s.current.Clone(), true
	}
	s.current = set.Clone()
	s.errorCount = 0
	s.lastSuccess = set.FetchedAt
	if set.Source == domain.RateSourceLive {
		s.message = MsgRatesUpdatedLive
	} else {
		s.message = MsgRatesUpdatedFallback
	}
	return s.current, false
}

// recordFailure bumps the consecutive error counter. The message is chosen from the
// count before the increment.
func (s *rateStore) recordFailure(ctx context.Context, source string, err error) error {
	s.mu.Lock()
	if s.errorCount < s.maxErr {
		s.message = MsgRatesRetrying
	} else {
		s.message = MsgRatesUnavailable
	}
	s.errorCount++
	count := s.errorCount
	s.mu.Unlock()

	rateRefreshTotal.WithLabelValues(source, "failure").Inc()
	rateConsecutiveErrors.Set(float64(count))
	s.LogError(ctx, err, "Failed to fetch exchange rates", slog.Int("error_count", count))
	if !errors.Is(err, apperrors.ErrFetch) {
		err = fmt.Errorf("%w: %v", apperrors.ErrFetch, err)
	}
	return err
}

func (s *rateStore) SetAutoRefresh(enabled bool) {
	s.mu.Lock()
	changed := s.autoRefresh != enabled
	s.autoRefresh = enabled
	s.mu.Unlock()
	if changed {
		s.poke()
	}
}

func (s *rateStore) SetRefreshInterval(interval time.Duration) error {
	if interval < time.Second {
		return fmt.Errorf("%w: refresh interval must be at least 1s", apperrors.ErrValidation)
	}
	s.mu.Lock()
	changed := s.interval != interval
	s.interval = interval
	s.mu.Unlock()
	if changed {
		s.poke()
	}
	return nil
}

func (s *rateStore) poke() {
	select {
	case s.wake <- struct{}{}:
	default:
	}
}

// Run refreshes immediately and then on every interval while auto refresh is enabled.
// Changing the interval or toggling auto refresh restarts the schedule. Failures never stop the loop.
func (s *rateStore) Run(ctx context.Context) {
	// changes made before Run starts are already reflected in the first read
	select {
	case <-s.wake:
	default:
	}
	for {
		s.mu.RLock()
		auto, interval := s.autoRefresh, s.interval
		s.mu.RUnlock()

		if !auto {
			select {
			case <-ctx.Done():
				return
			case <-s.wake:
				continue
			}
		}

		s.tick(ctx)
		ticker := time.NewTicker(interval)
	schedule:
		for {
			select {
			case <-ctx.Done():
				ticker.Stop()
				return
			case <-s.wake:
				break schedule
			case <-ticker.C:
				s.tick(ctx)
			}
		}
		ticker.Stop()
	}
}

func (s *rateStore) tick(ctx context.Context) {
	if _, err := s.Refresh(ctx); err != nil && ctx.Err() == nil {
		s.LogDebug(ctx, "Scheduled rate refresh failed", slog.String("error", err.Error()))
	}
}
