package services

import "github.com/SscSPs/rjb_tranz/internal/utils"

// ServiceContainer holds instances of all the application services.
// This is the main entry point for accessing service functionality and
// is used throughout the application, particularly in the handlers.
type ServiceContainer struct {
	Rates         RateStoreSvcFacade
	Conversion    ConversionSvcFacade
	Wizard        WizardSvcFacade
	Transaction   TransactionSvcFacade
	Receipt       ReceiptSvcFacade
	Notification  NotificationSvcFacade
	Settings      SettingsSvcFacade
	TokenService  TokenSvcFacade
	GoogleOAuth   GoogleOAuthHandlerSvcFacade
	OperatorLogin OperatorLoginSvc
	// Analytics is nil-safe; handlers use it for custom events.
	Analytics *utils.PosthogClientWrapper
}
