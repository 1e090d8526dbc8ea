package services

import (
	"context"

	"github.com/SscSPs/rjb_tranz/internal/core/domain"
	"github.com/SscSPs/rjb_tranz/internal/dto"
)

// SettingsSvcFacade reads and changes the persisted operator preferences.
type SettingsSvcFacade interface {
	GetSettings(ctx context.Context) domain.AppSettings
	// UpdateSettings stores the change and applies it to the rate store.
	UpdateSettings(ctx context.Context, req dto.UpdateSettingsRequest) (domain.AppSettings, error)
}
