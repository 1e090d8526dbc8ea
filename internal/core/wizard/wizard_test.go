package wizard_test

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/SscSPs/rjb_tranz/internal/apperrors"
	"github.com/SscSPs/rjb_tranz/internal/core/domain"
	"github.com/SscSPs/rjb_tranz/internal/core/wizard"
	"github.com/SscSPs/rjb_tranz/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticRates map[string]decimal.Decimal

func (r staticRates) FindRate(from, to string) (decimal.Decimal, bool) {
	if from == to {
		return decimal.NewFromInt(1), true
	}
	rate, ok := r[domain.NewPair(from, to)]
	return rate, ok
}

type fixedIDs struct{ err error }

func (f fixedIDs) Generate(currency, phone string) (domain.TransactionIDs, error) {
	if f.err != nil {
		return domain.TransactionIDs{}, f.err
	}
	return domain.TransactionIDs{FormatID: currency + "-F", UniqueID: currency + "-" + phone + "-U"}, nil
}

var now = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

func deps(rates staticRates) wizard.Deps {
	return wizard.Deps{Rates: rates, IDs: fixedIDs{}, Now: func() time.Time { return now }}
}

func newTransfer(t *testing.T) *wizard.Wizard {
	t.Helper()
	w, err := wizard.New(wizard.FlowTransfer, "op-1", wizard.Options{TransferFeeRate: decimal.NewFromInt(5)}, now)
	require.NoError(t, err)
	return w
}

func TestSteps(t *testing.T) {
	assert.Equal(t, []wizard.Step{
		wizard.StepChooseType, wizard.StepChooseCountry, wizard.StepSenderDetails, wizard.StepReview,
		wizard.StepProcessing, wizard.StepReceiverDetails, wizard.StepComplete,
	}, wizard.Steps(wizard.FlowTransfer))
	assert.Equal(t, []wizard.Step{
		wizard.StepSenderInfo, wizard.StepReceiverInfo, wizard.StepFeeConfig, wizard.StepPrintAndComplete, wizard.StepComplete,
	}, wizard.Steps(wizard.FlowInvoice))
	assert.Nil(t, wizard.Steps("unknown"))
}

func TestNew_UnknownFlow(t *testing.T) {
	_, err := wizard.New("remittance", "op-1", wizard.Options{}, now)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestTransferFlow_HappyPath(t *testing.T) {
	w := newTransfer(t)
	d := deps(staticRates{"USD/GHS": decimal.RequireFromString("12.45")})

	require.NoError(t, w.SetTransactionType(domain.TypeSend, now))
	require.NoError(t, w.Forward(d))
	assert.Equal(t, wizard.StepChooseCountry, w.Step)

	require.NoError(t, w.SetPair("usd/ghs", now))
	require.NoError(t, w.Forward(d))
	assert.Equal(t, wizard.StepSenderDetails, w.Step)
	assert.Equal(t, "US", w.Draft.Sender.Country)
	assert.Equal(t, "GH", w.Draft.Receiver.Country)

	require.NoError(t, w.SetSender(wizard.SenderInput{Name: "Ama", Phone: "0241234567", Amount: decimal.NewFromInt(1000)}, now))
	require.NoError(t, w.Forward(d))
	assert.Equal(t, wizard.StepReview, w.Step)

	require.NoError(t, w.Forward(d))
	assert.Equal(t, wizard.StepProcessing, w.Step)
	assert.True(t, w.IsAutomatic())
	assert.True(t, decimal.RequireFromString("12.45").Equal(w.Draft.Fee.ExchangeRate))
	assert.Equal(t, "50.00", w.Draft.Fee.FeeAmount.StringFixed(2))
	assert.Equal(t, "11827.50", w.Draft.ReceiverAmount.StringFixed(2))

	err := w.Forward(d)
	assert.ErrorIs(t, err, apperrors.ErrInvalidTransition, "processing is not user driven")

	require.NoError(t, w.Advance(now))
	assert.Equal(t, wizard.StepReceiverDetails, w.Step)

	require.NoError(t, w.SetReceiver(wizard.ReceiverInput{Name: "Kofi", Phone: "0201112222"}, now))
	require.NoError(t, w.Forward(d))
	require.True(t, w.IsComplete())
	require.NotNil(t, w.Transaction)

	tx := w.Transaction
	assert.Equal(t, domain.StatusCompleted, tx.Status)
	assert.Equal(t, domain.TypeSend, tx.TransactionType)
	assert.Equal(t, "USD", tx.FromCurrency)
	assert.Equal(t, "GHS", tx.ToCurrency)
	assert.Equal(t, "GHS-F", tx.FormatID)
	assert.Equal(t, "GHS-0241234567-U", tx.UniqueID)
	assert.Equal(t, "Ama", tx.ClientName)
	assert.Equal(t, "op-1", tx.CreatedBy)
	assert.True(t, decimal.RequireFromString("12.45").Equal(tx.ExchangeRate), "stored rate is the raw market rate")

	assert.ErrorIs(t, w.Back(now), apperrors.ErrInvalidTransition, "complete is terminal")
	assert.ErrorIs(t, w.Forward(d), apperrors.ErrInvalidTransition)
}

func TestForward_ValidationLeavesStateUnchanged(t *testing.T) {
	w := newTransfer(t)
	d := deps(nil)

	err := w.Forward(d)
	require.ErrorIs(t, err, apperrors.ErrValidation)
	assert.Equal(t, wizard.StepChooseType, w.Step)

	require.NoError(t, w.SetTransactionType(domain.TypeReceive, now))
	require.NoError(t, w.Forward(d))
	require.NoError(t, w.Forward(d), "country step does not block")

	tests := []struct {
		name  string
		input wizard.SenderInput
	}{
		{name: "missing name", input: wizard.SenderInput{Phone: "024", Amount: decimal.NewFromInt(10)}},
		{name: "missing phone", input: wizard.SenderInput{Name: "Ama", Amount: decimal.NewFromInt(10)}},
		{name: "zero amount", input: wizard.SenderInput{Name: "Ama", Phone: "024"}},
		{name: "blank name", input: wizard.SenderInput{Name: "   ", Phone: "024", Amount: decimal.NewFromInt(10)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NoError(t, w.SetSender(tt.input, now))
			before := *w
			err := w.Forward(d)
			assert.ErrorIs(t, err, apperrors.ErrValidation)
			assert.Equal(t, before, *w)
		})
	}
}

func TestSetSender_RejectsBadFormats(t *testing.T) {
	w, err := wizard.New(wizard.FlowInvoice, "op-1", wizard.Options{}, now)
	require.NoError(t, err)

	assert.ErrorIs(t, w.SetSender(wizard.SenderInput{Name: "Ama", Phone: "1", Amount: decimal.NewFromInt(-5)}, now), apperrors.ErrValidation)
	assert.ErrorIs(t, w.SetSender(wizard.SenderInput{Name: "Ama", Email: "not-an-email"}, now), apperrors.ErrValidation)
	assert.ErrorIs(t, w.SetSender(wizard.SenderInput{Name: "Ama", PaymentMethod: "paypal"}, now), apperrors.ErrValidation)
	assert.ErrorIs(t, w.SetReceiver(wizard.ReceiverInput{Name: "Kofi"}, now), apperrors.ErrInvalidTransition, "wrong step")
}

func TestReview_MissingRateAbortsAndStays(t *testing.T) {
	w := newTransfer(t)
	d := deps(staticRates{})

	require.NoError(t, w.SetTransactionType(domain.TypeSend, now))
	require.NoError(t, w.Forward(d))
	require.NoError(t, w.SetPair("USD/XYZ", now))
	require.NoError(t, w.Forward(d))
	require.NoError(t, w.SetSender(wizard.SenderInput{Name: "Ama", Phone: "024", Amount: decimal.NewFromInt(1)}, now))
	require.NoError(t, w.Forward(d))

	err := w.Forward(d)
	assert.True(t, errors.Is(err, apperrors.ErrRateNotFound))
	assert.Equal(t, wizard.StepReview, w.Step)
	assert.Nil(t, w.Transaction)
}

func TestBack(t *testing.T) {
	w := newTransfer(t)
	d := deps(staticRates{"USD/GHS": decimal.RequireFromString("12.45")})

	assert.ErrorIs(t, w.Back(now), apperrors.ErrInvalidTransition, "first step has no previous")
	assert.False(t, w.CanGoBack())

	require.NoError(t, w.SetTransactionType(domain.TypeSend, now))
	require.NoError(t, w.Forward(d))
	require.NoError(t, w.SetPair("USD/GHS", now))
	require.NoError(t, w.Forward(d))
	require.NoError(t, w.SetSender(wizard.SenderInput{Name: "Ama", Phone: "024", Amount: decimal.NewFromInt(1)}, now))
	require.NoError(t, w.Forward(d))
	require.NoError(t, w.Forward(d))
	require.Equal(t, wizard.StepProcessing, w.Step)

	require.NoError(t, w.Back(now))
	assert.Equal(t, wizard.StepReview, w.Step)

	require.NoError(t, w.Forward(d))
	require.NoError(t, w.Advance(now))
	require.Equal(t, wizard.StepReceiverDetails, w.Step)

	require.NoError(t, w.Back(now))
	assert.Equal(t, wizard.StepReview, w.Step, "back skips the automatic processing step")

	require.NoError(t, w.Back(now))
	assert.Equal(t, wizard.StepSenderDetails, w.Step)
	assert.Equal(t, "Ama", w.Draft.Sender.Name, "draft survives navigation")
}

func TestInvoiceFlow(t *testing.T) {
	w, err := wizard.New(wizard.FlowInvoice, "op-2", wizard.Options{TransferFeeRate: decimal.NewFromInt(9)}, now)
	require.NoError(t, err)
	assert.Equal(t, "GHS", w.Draft.Sender.Currency)
	assert.Equal(t, "mtn_momo", w.Draft.Receiver.PaymentMethod)
	assert.True(t, w.Draft.Fee.FeeRate.IsZero(), "invoice fee starts at zero")

	d := deps(staticRates{"USD/GHS": decimal.RequireFromString("12.45")})

	require.NoError(t, w.SetSender(wizard.SenderInput{Name: "Ama", Phone: "+1 555 0100", Amount: decimal.NewFromInt(200), Currency: "usd", PaymentMethod: "zelle"}, now))
	assert.Equal(t, "US", w.Draft.Sender.Country)
	assert.Equal(t, "USD/GHS", w.Draft.Pair)
	require.NoError(t, w.Forward(d))

	require.NoError(t, w.SetReceiver(wizard.ReceiverInput{Name: "Kofi", Phone: "0201112222"}, now))
	require.NoError(t, w.Forward(d))
	require.Equal(t, wizard.StepFeeConfig, w.Step)
	assert.True(t, decimal.RequireFromString("12.45").Equal(w.Draft.Fee.ExchangeRate), "rate prefilled")

	assert.ErrorIs(t, w.SetFee(wizard.FeeInput{FeeRate: decimal.NewFromInt(100)}, d.Rates, now), apperrors.ErrValidation)
	assert.ErrorIs(t, w.SetFee(wizard.FeeInput{FeeRate: decimal.NewFromInt(-1)}, d.Rates, now), apperrors.ErrValidation)

	override := decimal.RequireFromString("12.00")
	require.NoError(t, w.SetFee(wizard.FeeInput{FeeRate: decimal.NewFromInt(5), IsRateEditable: true, ExchangeRate: &override}, d.Rates, now))
	assert.Equal(t, "10.00", w.Draft.Fee.FeeAmount.StringFixed(2))
	assert.Equal(t, "2280.00", w.Draft.ReceiverAmount.StringFixed(2))

	require.NoError(t, w.Forward(d))
	require.NoError(t, w.Forward(d))
	require.True(t, w.IsComplete())

	tx := w.Transaction
	assert.Equal(t, domain.StatusPending, tx.Status)
	assert.Equal(t, domain.TypeInvoice, tx.TransactionType)
	assert.True(t, override.Equal(tx.ExchangeRate))
	assert.Equal(t, "USD", tx.FeeCurrency)
	assert.Contains(t, tx.ID, "INV-")
}

func TestInvoice_ClearingOverrideRestoresMarketRate(t *testing.T) {
	w, err := wizard.New(wizard.FlowInvoice, "op-2", wizard.Options{}, now)
	require.NoError(t, err)
	d := deps(staticRates{"USD/GHS": decimal.RequireFromString("12.45")})

	require.NoError(t, w.SetSender(wizard.SenderInput{Name: "Ama", Phone: "1", Amount: decimal.NewFromInt(10), Currency: "USD"}, now))
	require.NoError(t, w.Forward(d))
	require.NoError(t, w.SetReceiver(wizard.ReceiverInput{Name: "Kofi", Phone: "2"}, now))
	require.NoError(t, w.Forward(d))

	override := decimal.NewFromInt(11)
	require.NoError(t, w.SetFee(wizard.FeeInput{IsRateEditable: true, ExchangeRate: &override}, d.Rates, now))
	require.NoError(t, w.SetFee(wizard.FeeInput{}, d.Rates, now))
	assert.True(t, decimal.RequireFromString("12.45").Equal(w.Draft.Fee.ExchangeRate))
}

func TestSetFee_ReportsEffectiveRateBesideMarketRate(t *testing.T) {
	w, err := wizard.New(wizard.FlowInvoice, "op-2", wizard.Options{}, now)
	require.NoError(t, err)
	d := deps(staticRates{"USD/GHS": decimal.RequireFromString("12.45")})

	require.NoError(t, w.SetSender(wizard.SenderInput{Name: "Ama", Phone: "1", Amount: decimal.NewFromInt(1000), Currency: "USD"}, now))
	require.NoError(t, w.Forward(d))
	require.NoError(t, w.SetReceiver(wizard.ReceiverInput{Name: "Kofi", Phone: "2"}, now))
	require.NoError(t, w.Forward(d))

	require.NoError(t, w.SetFee(wizard.FeeInput{FeeRate: decimal.NewFromInt(5)}, d.Rates, now))
	assert.True(t, decimal.RequireFromString("12.45").Equal(w.Draft.Fee.ExchangeRate), "market rate unchanged")
	assert.True(t, decimal.RequireFromString("11.8275").Equal(w.Draft.Fee.EffectiveRate), "got %s", w.Draft.Fee.EffectiveRate)

	body, err := json.Marshal(dto.ToWizardResponse(w))
	require.NoError(t, err)
	assert.Contains(t, string(body), `"exchangeRate":"12.45"`)
	assert.Contains(t, string(body), `"effectiveRate":"11.8275"`)
}

func TestEffectiveRate_ZeroWithoutRate(t *testing.T) {
	w := newTransfer(t)
	require.NoError(t, w.SetTransactionType(domain.TypeSend, now))
	require.NoError(t, w.Forward(deps(nil)))
	require.NoError(t, w.SetPair("USD/ZZZ", now))
	assert.True(t, w.Draft.Fee.EffectiveRate.IsZero())
}

func TestFinalize_IDGeneratorFailureKeepsStep(t *testing.T) {
	w, err := wizard.New(wizard.FlowInvoice, "op-2", wizard.Options{}, now)
	require.NoError(t, err)
	d := deps(staticRates{})

	require.NoError(t, w.SetSender(wizard.SenderInput{Name: "Ama", Phone: "1", Amount: decimal.NewFromInt(10)}, now))
	require.NoError(t, w.Forward(d))
	require.NoError(t, w.SetReceiver(wizard.ReceiverInput{Name: "Kofi", Phone: "2"}, now))
	require.NoError(t, w.Forward(d))
	require.NoError(t, w.Forward(d))
	require.Equal(t, wizard.StepPrintAndComplete, w.Step)

	d.IDs = fixedIDs{err: errors.New("boom")}
	assert.Error(t, w.Forward(d))
	assert.Equal(t, wizard.StepPrintAndComplete, w.Step)
	assert.Nil(t, w.Transaction)
}
