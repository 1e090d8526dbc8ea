package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/rjb_tranz/internal/apperrors"
	"github.com/SscSPs/rjb_tranz/internal/core/domain"
	portsrepo "github.com/SscSPs/rjb_tranz/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/rjb_tranz/internal/core/ports/services"
	"github.com/SscSPs/rjb_tranz/internal/dto"
	"github.com/shopspring/decimal"
)

// SettingsKey is the KV key of the operator preferences.
const SettingsKey = "settings"

var maxFeeRate = decimal.NewFromInt(100)

type settingsService struct {
	BaseService
	value *PersistentValue[domain.AppSettings]
	rates portssvc.RateRefresherSvc
}

// NewSettingsService loads the stored preferences, falling back to defaults, and
// applies them to the rate store.
func NewSettingsService(ctx context.Context, store portsrepo.KVStore, defaults domain.AppSettings, rates portssvc.RateRefresherSvc) portssvc.SettingsSvcFacade {
	s := &settingsService{
		value: NewPersistentValue(ctx, store, SettingsKey, defaults),
		rates: rates,
	}
	current := s.value.Get()
	if err := validateSettings(current); err != nil {
		s.LogWarn(ctx, "Stored settings are invalid, using defaults", slog.String("error", err.Error()))
		current = defaults
		s.value.Set(ctx, current)
	}
	s.apply(ctx, current)
	return s
}

func (s *settingsService) GetSettings(ctx context.Context) domain.AppSettings {
	return s.value.Get()
}

func (s *settingsService) UpdateSettings(ctx context.Context, req dto.UpdateSettingsRequest) (domain.AppSettings, error) {
	next := s.value.Get()
	if req.AutoRefresh != nil {
		next.AutoRefresh = *req.AutoRefresh
	}
	if req.RefreshInterval != nil {
		next.RefreshInterval = *req.RefreshInterval
	}
	if req.DefaultFeeRate != nil {
		next.DefaultFeeRate = *req.DefaultFeeRate
	}
	if err := validateSettings(next); err != nil {
		return domain.AppSettings{}, err
	}

	s.value.Set(ctx, next)
	s.apply(ctx, next)
	s.LogInfo(ctx, "Settings updated",
		slog.Bool("auto_refresh", next.AutoRefresh),
		slog.String("refresh_interval", next.RefreshInterval.Std().String()),
		slog.String("default_fee_rate", next.DefaultFeeRate.String()))
	return next, nil
}

func (s *settingsService) apply(ctx context.Context, settings domain.AppSettings) {
	if s.rates == nil {
		return
	}
	if err := s.rates.SetRefreshInterval(settings.RefreshInterval.Std()); err != nil {
		s.LogError(ctx, err, "Failed to apply refresh interval")
	}
	s.rates.SetAutoRefresh(settings.AutoRefresh)
}

func validateSettings(settings domain.AppSettings) error {
	if settings.RefreshInterval.Std() < time.Second {
		return fmt.Errorf("%w: refreshInterval must be at least 1s", apperrors.ErrValidation)
	}
	if settings.DefaultFeeRate.IsNegative() || settings.DefaultFeeRate.GreaterThanOrEqual(maxFeeRate) {
		return fmt.Errorf("%w: defaultFeeRate must be in [0, 100)", apperrors.ErrValidation)
	}
	return nil
}
