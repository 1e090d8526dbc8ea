package wizard

import (
	"fmt"
	"strings"
	"time"

	"github.com/SscSPs/rjb_tranz/internal/apperrors"
	"github.com/SscSPs/rjb_tranz/internal/core/domain"
	"github.com/SscSPs/rjb_tranz/internal/refdata"
	"github.com/SscSPs/rjb_tranz/internal/utils/conversion"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Invoice defaults for both parties.
const (
	DefaultInvoiceCurrency      = "GHS"
	DefaultInvoiceCountry       = "GH"
	DefaultInvoicePaymentMethod = "mtn_momo"
)

// RateFinder resolves units of `to` per one unit of `from`.
type RateFinder interface {
	FindRate(from, to string) (decimal.Decimal, bool)
}

// IDGenerator assigns the identifier pair of a finalized transaction.
type IDGenerator interface {
	Generate(currency, phone string) (domain.TransactionIDs, error)
}

// Deps are the collaborators a forward transition may use.
type Deps struct {
	Rates RateFinder
	IDs   IDGenerator
	Now   func() time.Time
}

func (d Deps) now() time.Time {
	if d.Now == nil {
		return time.Now()
	}
	return d.Now()
}

// Options configure a new wizard.
type Options struct {
	// TransferFeeRate is the percent fee applied by the transfer flow.
	TransferFeeRate decimal.Decimal
}

// Wizard is one transaction creation session. The zero value is not usable; use New.
type Wizard struct {
	ID          string                  `json:"id"`
	Flow        Flow                    `json:"flow"`
	Step        Step                    `json:"step"`
	Draft       domain.TransactionDraft `json:"draft"`
	Transaction *domain.Transaction     `json:"transaction,omitempty"`
	OperatorID  string                  `json:"operatorId"`
	CreatedAt   time.Time               `json:"createdAt"`
	UpdatedAt   time.Time               `json:"updatedAt"`
}

// New starts a wizard of the given flow at its first step.
func New(flow Flow, operatorID string, opts Options, now time.Time) (*Wizard, error) {
	first, ok := firstSteps[flow]
	if !ok {
		return nil, fmt.Errorf("%w: unknown wizard flow %q", apperrors.ErrValidation, flow)
	}
	w := &Wizard{
		ID:         uuid.NewString(),
		Flow:       flow,
		Step:       first,
		OperatorID: operatorID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	switch flow {
	case FlowTransfer:
		w.Draft.Fee.FeeRate = opts.TransferFeeRate
	case FlowInvoice:
		w.Draft.TransactionType = domain.TypeInvoice
		w.Draft.Sender = domain.Party{Currency: DefaultInvoiceCurrency, Country: DefaultInvoiceCountry, PaymentMethod: DefaultInvoicePaymentMethod}
		w.Draft.Receiver = domain.Party{Currency: DefaultInvoiceCurrency, Country: DefaultInvoiceCountry, PaymentMethod: DefaultInvoicePaymentMethod}
		w.Draft.Fee.FeeRate = decimal.Zero
		w.Draft.Fee.FeeCurrency = DefaultInvoiceCurrency
		w.Draft.Pair = domain.NewPair(DefaultInvoiceCurrency, DefaultInvoiceCurrency)
	}
	w.recompute()
	return w, nil
}

// Clone returns a deep copy safe to hand to another goroutine.
func (w *Wizard) Clone() *Wizard {
	out := *w
	if w.Transaction != nil {
		tx := *w.Transaction
		out.Transaction = &tx
	}
	return &out
}

// IsComplete reports whether the wizard reached its terminal step.
func (w *Wizard) IsComplete() bool {
	return w.Step == StepComplete
}

// IsAutomatic reports whether the current step leaves on its own.
func (w *Wizard) IsAutomatic() bool {
	return transitions[w.Flow][w.Step].automatic
}

// NextStep returns the step a forward transition would move to.
func (w *Wizard) NextStep() (Step, bool) {
	t, ok := transitions[w.Flow][w.Step]
	return t.to, ok
}

// CanGoBack reports whether Back is allowed from the current step.
func (w *Wizard) CanGoBack() bool {
	_, ok := previous[w.Flow][w.Step]
	return ok
}

// Forward validates the current step and moves to the next one. On any error the
// wizard is left exactly as it was.
func (w *Wizard) Forward(deps Deps) error {
	t, ok := transitions[w.Flow][w.Step]
	if !ok {
		return fmt.Errorf("%w: wizard %s is already complete", apperrors.ErrInvalidTransition, w.ID)
	}
	if t.automatic {
		return fmt.Errorf("%w: step %s completes automatically", apperrors.ErrInvalidTransition, w.Step)
	}
	if err := validators[w.Step](w.Draft); err != nil {
		return err
	}

	next := *w
	switch t.action {
	case actionResolveRate:
		if err := next.resolveRate(deps, true); err != nil {
			return err
		}
	case actionPrefillRate:
		_ = next.resolveRate(deps, false)
	case actionFinalize:
		tx, err := next.finalize(deps)
		if err != nil {
			return err
		}
		next.Transaction = &tx
	}
	next.Step = t.to
	next.UpdatedAt = deps.now()
	*w = next
	return nil
}

// Advance takes the automatic transition of the current step.
func (w *Wizard) Advance(now time.Time) error {
	t, ok := transitions[w.Flow][w.Step]
	if !ok || !t.automatic {
		return fmt.Errorf("%w: step %s has no automatic transition", apperrors.ErrInvalidTransition, w.Step)
	}
	w.Step = t.to
	w.UpdatedAt = now
	return nil
}

// Back returns to the previous step. It is refused on the first and the terminal step.
func (w *Wizard) Back(now time.Time) error {
	prev, ok := previous[w.Flow][w.Step]
	if !ok {
		return fmt.Errorf("%w: cannot go back from %s", apperrors.ErrInvalidTransition, w.Step)
	}
	w.Step = prev
	w.UpdatedAt = now
	return nil
}

func (w *Wizard) requireStep(allowed ...Step) error {
	for _, s := range allowed {
		if w.Step == s {
			return nil
		}
	}
	return fmt.Errorf("%w: input not accepted at step %s", apperrors.ErrInvalidTransition, w.Step)
}

// SetTransactionType records send or receive at the type step of the transfer flow.
func (w *Wizard) SetTransactionType(t domain.TransactionType, now time.Time) error {
	if err := w.requireStep(StepChooseType); err != nil {
		return err
	}
	if t != domain.TypeSend && t != domain.TypeReceive {
		return fmt.Errorf("%w: transaction type must be send or receive", apperrors.ErrValidation)
	}
	w.Draft.TransactionType = t
	w.UpdatedAt = now
	return nil
}

// SetPair selects the corridor at the country step, e.g. "USD/GHS".
func (w *Wizard) SetPair(pair string, now time.Time) error {
	if err := w.requireStep(StepChooseCountry); err != nil {
		return err
	}
	base, quote, ok := domain.SplitPair(strings.ToUpper(strings.TrimSpace(pair)))
	if !ok {
		return fmt.Errorf("%w: pair must look like BASE/QUOTE", apperrors.ErrValidation)
	}
	w.Draft.Pair = domain.NewPair(base, quote)
	w.Draft.Sender.Currency = base
	w.Draft.Receiver.Currency = quote
	if c, ok := refdata.CountryByCurrency(base); ok {
		w.Draft.Sender.Country = c.Code
	}
	if c, ok := refdata.CountryByCurrency(quote); ok {
		w.Draft.Receiver.Country = c.Code
	}
	w.Draft.Fee.FeeCurrency = base
	w.Draft.Fee.ExchangeRate = decimal.Zero
	w.recompute()
	w.UpdatedAt = now
	return nil
}

// SetSender stores sender input. Required fields are checked on Forward, formats here.
func (w *Wizard) SetSender(in SenderInput, now time.Time) error {
	if err := w.requireStep(StepSenderDetails, StepSenderInfo); err != nil {
		return err
	}
	if err := validate.Struct(in); err != nil {
		return validationError("sender", err)
	}
	party := w.Draft.Sender
	party.Name = strings.TrimSpace(in.Name)
	party.Email = strings.TrimSpace(in.Email)
	party.Phone = strings.TrimSpace(in.Phone)
	if w.Flow == FlowInvoice {
		applyPartyOverrides(&party, in.Currency, in.Country, in.PaymentMethod)
		// the fee currency follows the sender currency until set explicitly
		if w.Draft.Fee.FeeCurrency == "" || w.Draft.Fee.FeeCurrency == w.Draft.Sender.Currency {
			w.Draft.Fee.FeeCurrency = party.Currency
		}
	} else if in.PaymentMethod != "" {
		party.PaymentMethod = in.PaymentMethod
	}
	w.Draft.Sender = party
	w.Draft.Amount = in.Amount
	if w.Flow == FlowInvoice {
		w.syncInvoicePair()
	}
	w.recompute()
	w.UpdatedAt = now
	return nil
}

// SetReceiver stores receiver input.
func (w *Wizard) SetReceiver(in ReceiverInput, now time.Time) error {
	if err := w.requireStep(StepReceiverDetails, StepReceiverInfo); err != nil {
		return err
	}
	if err := validate.Struct(in); err != nil {
		return validationError("receiver", err)
	}
	party := w.Draft.Receiver
	party.Name = strings.TrimSpace(in.Name)
	party.Email = strings.TrimSpace(in.Email)
	party.Phone = strings.TrimSpace(in.Phone)
	if w.Flow == FlowInvoice {
		applyPartyOverrides(&party, in.Currency, in.Country, in.PaymentMethod)
	} else if in.PaymentMethod != "" {
		party.PaymentMethod = in.PaymentMethod
	}
	w.Draft.Receiver = party
	if w.Flow == FlowInvoice {
		w.syncInvoicePair()
	}
	w.recompute()
	w.UpdatedAt = now
	return nil
}

// SetFee stores the invoice fee configuration. A rate override is kept only while
// IsRateEditable is set; clearing it restores the looked-up market rate on the next lookup.
func (w *Wizard) SetFee(in FeeInput, rates RateFinder, now time.Time) error {
	if err := w.requireStep(StepFeeConfig); err != nil {
		return err
	}
	if err := validate.Struct(in); err != nil {
		return validationError("fee", err)
	}
	fee := w.Draft.Fee
	fee.FeeRate = in.FeeRate
	if in.FeeCurrency != "" {
		fee.FeeCurrency = strings.ToUpper(in.FeeCurrency)
	}
	if in.FeeOnSender != nil {
		fee.FeeOnSender = *in.FeeOnSender
	}
	fee.IsRateEditable = in.IsRateEditable
	if in.IsRateEditable && in.ExchangeRate != nil {
		if !in.ExchangeRate.IsPositive() {
			return fmt.Errorf("%w: fee: exchangeRate must be greater than 0", apperrors.ErrValidation)
		}
		fee.ExchangeRate = *in.ExchangeRate
	}
	w.Draft.Fee = fee
	if !in.IsRateEditable && rates != nil {
		w.lookupRate(rates)
	}
	w.recompute()
	w.UpdatedAt = now
	return nil
}

func applyPartyOverrides(p *domain.Party, currency, country, method string) {
	if currency != "" {
		p.Currency = strings.ToUpper(currency)
		if country == "" {
			if c, ok := refdata.CountryByCurrency(p.Currency); ok {
				p.Country = c.Code
			}
		}
	}
	if country != "" {
		p.Country = strings.ToUpper(country)
	}
	if method != "" {
		p.PaymentMethod = method
	}
}

func (w *Wizard) syncInvoicePair() {
	pair := domain.NewPair(w.Draft.Sender.Currency, w.Draft.Receiver.Currency)
	if pair != w.Draft.Pair {
		w.Draft.Pair = pair
		if !w.Draft.Fee.IsRateEditable {
			w.Draft.Fee.ExchangeRate = decimal.Zero
		}
	}
}

func (w *Wizard) lookupRate(rates RateFinder) bool {
	base, quote, ok := domain.SplitPair(w.Draft.Pair)
	if !ok || rates == nil {
		return false
	}
	rate, found := rates.FindRate(base, quote)
	if !found {
		return false
	}
	w.Draft.Fee.ExchangeRate = rate
	return true
}

// resolveRate fills the market rate unless the operator overrode it.
func (w *Wizard) resolveRate(deps Deps, required bool) error {
	if w.Draft.Fee.IsRateEditable && w.Draft.Fee.ExchangeRate.IsPositive() {
		return nil
	}
	if !w.lookupRate(deps.Rates) {
		if required {
			return fmt.Errorf("%w: no rate for pair %q", apperrors.ErrRateNotFound, w.Draft.Pair)
		}
		return nil
	}
	w.recompute()
	return nil
}

// recompute refreshes the derived fee and receiver amounts.
func (w *Wizard) recompute() {
	fee := conversion.ApplyFee(w.Draft.Amount, w.Draft.Fee.FeeRate)
	w.Draft.Fee.FeeAmount = fee.FeeAmount
	if w.Draft.Fee.ExchangeRate.IsPositive() {
		w.Draft.ReceiverAmount = conversion.Convert(fee.NetAmount, w.Draft.Fee.ExchangeRate)
		w.Draft.Fee.EffectiveRate = conversion.EffectiveRate(w.Draft.Fee.ExchangeRate, w.Draft.Fee.FeeRate)
	} else {
		w.Draft.ReceiverAmount = decimal.Zero
		w.Draft.Fee.EffectiveRate = decimal.Zero
	}
}

func (w *Wizard) finalize(deps Deps) (domain.Transaction, error) {
	if !w.Draft.Fee.ExchangeRate.IsPositive() {
		return domain.Transaction{}, fmt.Errorf("%w: no rate for pair %q", apperrors.ErrRateNotFound, w.Draft.Pair)
	}
	base, quote, ok := domain.SplitPair(w.Draft.Pair)
	if !ok {
		return domain.Transaction{}, fmt.Errorf("%w: no currency pair selected", apperrors.ErrValidation)
	}
	if deps.IDs == nil {
		return domain.Transaction{}, fmt.Errorf("no transaction id generator configured")
	}
	ids, err := deps.IDs.Generate(quote, w.Draft.Sender.Phone)
	if err != nil {
		return domain.Transaction{}, fmt.Errorf("failed to generate transaction ids: %w", err)
	}

	now := deps.now()
	prefix, status, txType := "TXN", domain.StatusCompleted, w.Draft.TransactionType
	if w.Flow == FlowInvoice {
		prefix, status, txType = "INV", domain.StatusPending, domain.TypeInvoice
	}

	w.recompute()
	tx := domain.Transaction{
		ID:              fmt.Sprintf("%s-%d-%s", prefix, now.UnixMilli(), uuid.NewString()[:8]),
		UniqueID:        ids.UniqueID,
		FormatID:        ids.FormatID,
		ClientName:      w.Draft.Sender.Name,
		ClientEmail:     w.Draft.Sender.Email,
		PhoneNumber:     w.Draft.Sender.Phone,
		Amount:          w.Draft.Amount,
		FromCurrency:    base,
		ToCurrency:      quote,
		ExchangeRate:    w.Draft.Fee.ExchangeRate,
		FeeRate:         w.Draft.Fee.FeeRate,
		Fee:             w.Draft.Fee.FeeAmount,
		FeeCurrency:     w.Draft.Fee.FeeCurrency,
		FeeOnSender:     w.Draft.Fee.FeeOnSender,
		ReceiverAmount:  w.Draft.ReceiverAmount,
		Sender:          w.Draft.Sender,
		Receiver:        w.Draft.Receiver,
		Status:          status,
		TransactionType: txType,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     w.OperatorID,
			LastUpdatedAt: now,
			LastUpdatedBy: w.OperatorID,
		},
	}
	if err := tx.Validate(); err != nil {
		return domain.Transaction{}, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}
	return tx, nil
}
