package dto

import (
	"github.com/SscSPs/rjb_tranz/internal/core/wizard"
)

// CreateWizardRequest starts a wizard session.
type CreateWizardRequest struct {
	Flow wizard.Flow `json:"flow" binding:"required,oneof=transfer invoice"`
}

// SetTransactionTypeRequest is the type step body.
type SetTransactionTypeRequest struct {
	TransactionType string `json:"transactionType" binding:"required,oneof=send receive"`
}

// SetPairRequest is the country step body, e.g. {"pair":"USD/GHS"}.
type SetPairRequest struct {
	Pair string `json:"pair" binding:"required"`
}

// WizardResponse is a wizard session with its navigation state.
type WizardResponse struct {
	*wizard.Wizard
	Steps     []wizard.Step `json:"steps"`
	NextStep  wizard.Step   `json:"nextStep,omitempty"`
	CanGoBack bool          `json:"canGoBack"`
	Automatic bool          `json:"automatic"`
}

// ToWizardResponse converts a wizard to WizardResponse.
func ToWizardResponse(w *wizard.Wizard) WizardResponse {
	resp := WizardResponse{
		Wizard:    w,
		Steps:     wizard.Steps(w.Flow),
		CanGoBack: w.CanGoBack(),
		Automatic: w.IsAutomatic(),
	}
	if next, ok := w.NextStep(); ok {
		resp.NextStep = next
	}
	return resp
}
