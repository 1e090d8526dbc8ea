package services

import (
	"context"

	"github.com/SscSPs/rjb_tranz/internal/core/domain"
	portsrepo "github.com/SscSPs/rjb_tranz/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/rjb_tranz/internal/core/ports/services"
	"github.com/SscSPs/rjb_tranz/internal/platform/config"
	"github.com/SscSPs/rjb_tranz/internal/utils"
)

// NewServiceContainer creates a new service container with properly initialized dependencies.
// Background work (rate refresh timers, wizard processing timers) is bound to ctx.
func NewServiceContainer(ctx context.Context, cfg *config.Config, repos portsrepo.RepositoryProvider, analytics *utils.PosthogClientWrapper) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// The rate store comes first; settings, conversions and wizards read from it
	container.Rates = NewRateStore(repos.LiveRates, repos.FallbackRates, repos.RateHistory, RateStoreConfig{
		Base:            cfg.RatesBaseCurrency,
		AutoRefresh:     cfg.RatesAutoRefresh,
		RefreshInterval: cfg.RatesRefreshInterval,
		FetchTimeout:    cfg.RatesFetchTimeout,
		ErrorThreshold:  cfg.RatesErrorThreshold,
	})

	container.Settings = NewSettingsService(ctx, repos.KVStore, domain.AppSettings{
		AutoRefresh:     cfg.RatesAutoRefresh,
		RefreshInterval: domain.Duration(cfg.RatesRefreshInterval),
		DefaultFeeRate:  cfg.DefaultFeeRate,
	}, container.Rates)

	container.Conversion = NewConversionService(container.Rates)
	container.Notification = NewNotificationService(repos.Notifier, analytics)
	container.Analytics = analytics
	container.Transaction = NewTransactionService(repos.TransactionRepo, container.Notification)
	container.Receipt = NewReceiptService(cfg.ReceiptLocale, repos.ReceiptExporter)

	container.Wizard = NewWizardService(ctx, WizardServiceDeps{
		Store:           repos.KVStore,
		Rates:           container.Rates,
		IDs:             utils.NewTransactionIDGenerator(),
		Transactions:    container.Transaction,
		Settings:        container.Settings,
		ProcessingDelay: cfg.WizardProcessingDelay,
	})

	container.TokenService = NewTokenService(cfg)
	container.OperatorLogin = NewOperatorLoginService(cfg)
	container.GoogleOAuth = NewGoogleOAuthHandlerService(cfg)

	return container
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.RateStoreSvcFacade    = (*rateStore)(nil)
	_ portssvc.ConversionSvcFacade   = (*conversionService)(nil)
	_ portssvc.WizardSvcFacade       = (*wizardService)(nil)
	_ portssvc.TransactionSvcFacade  = (*transactionService)(nil)
	_ portssvc.ReceiptSvcFacade      = (*receiptService)(nil)
	_ portssvc.NotificationSvcFacade = (*notificationService)(nil)
	_ portssvc.SettingsSvcFacade     = (*settingsService)(nil)
	_ portssvc.OperatorLoginSvc      = (*operatorLoginService)(nil)
)
