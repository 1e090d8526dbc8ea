package services

import (
	"context"

	"github.com/SscSPs/rjb_tranz/internal/core/domain"
	"github.com/SscSPs/rjb_tranz/internal/core/wizard"
)

// WizardReaderSvc defines read operations for wizard sessions
type WizardReaderSvc interface {
	// GetWizard returns a copy of the session, restoring it from persistence when needed.
	GetWizard(ctx context.Context, sessionID string) (*wizard.Wizard, error)
}

// WizardWriterSvc defines the step operations of a wizard session
type WizardWriterSvc interface {
	StartWizard(ctx context.Context, flow wizard.Flow, operatorID string) (*wizard.Wizard, error)
	SetTransactionType(ctx context.Context, sessionID string, t domain.TransactionType) (*wizard.Wizard, error)
	SetPair(ctx context.Context, sessionID, pair string) (*wizard.Wizard, error)
	SetSender(ctx context.Context, sessionID string, in wizard.SenderInput) (*wizard.Wizard, error)
	SetReceiver(ctx context.Context, sessionID string, in wizard.ReceiverInput) (*wizard.Wizard, error)
	SetFee(ctx context.Context, sessionID string, in wizard.FeeInput) (*wizard.Wizard, error)
	// Next takes the forward transition of the current step.
	Next(ctx context.Context, sessionID string) (*wizard.Wizard, error)
	// Back returns to the previous step, cancelling a pending processing timer.
	Back(ctx context.Context, sessionID string) (*wizard.Wizard, error)
	// CloseWizard drops the session and its persisted draft.
	CloseWizard(ctx context.Context, sessionID string) error
}

// WizardSvcFacade combines all wizard interfaces
type WizardSvcFacade interface {
	WizardReaderSvc
	WizardWriterSvc
}
