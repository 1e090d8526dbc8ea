package services_test

import (
	"context"
	"encoding/json"
	"runtime"
	"sync"
	"testing"
	"time"

	"github.com/SscSPs/rjb_tranz/internal/adapters/kv"
	"github.com/SscSPs/rjb_tranz/internal/apperrors"
	"github.com/SscSPs/rjb_tranz/internal/core/domain"
	portssvc "github.com/SscSPs/rjb_tranz/internal/core/ports/services"
	"github.com/SscSPs/rjb_tranz/internal/core/services"
	"github.com/SscSPs/rjb_tranz/internal/core/wizard"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type tableRates map[string]decimal.Decimal

func (r tableRates) FindRate(from, to string) (decimal.Decimal, bool) {
	if from == to {
		return decimal.NewFromInt(1), true
	}
	rate, ok := r[domain.NewPair(from, to)]
	return rate, ok
}

type stubIDs struct{}

func (stubIDs) Generate(currency, phone string) (domain.TransactionIDs, error) {
	return domain.TransactionIDs{FormatID: currency + "-F", UniqueID: currency + "-" + phone}, nil
}

// recordingTransactions keeps every created transaction.
type recordingTransactions struct {
	mu      sync.Mutex
	created []domain.Transaction
	err     error
}

func (r *recordingTransactions) CreateTransaction(_ context.Context, tx domain.Transaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.created = append(r.created, tx)
	return nil
}

func (r *recordingTransactions) UpdateStatus(context.Context, string, domain.TransactionStatus, string) (*domain.Transaction, error) {
	return nil, apperrors.ErrNotFound
}

type WizardServiceTestSuite struct {
	suite.Suite
	ctx          context.Context
	cancel       context.CancelFunc
	store        *kv.MemoryStore
	transactions *recordingTransactions
	service      portssvc.WizardSvcFacade
}

func (suite *WizardServiceTestSuite) SetupTest() {
	suite.ctx, suite.cancel = context.WithCancel(context.Background())
	suite.store = kv.NewMemoryStore()
	suite.transactions = &recordingTransactions{}
	suite.service = suite.newService(20 * time.Millisecond)
}

func (suite *WizardServiceTestSuite) TearDownTest() {
	suite.cancel()
}

func (suite *WizardServiceTestSuite) newService(delay time.Duration) portssvc.WizardSvcFacade {
	return services.NewWizardService(suite.ctx, services.WizardServiceDeps{
		Store:           suite.store,
		Rates:           tableRates{"USD/GHS": decimal.RequireFromString("12.45")},
		IDs:             stubIDs{},
		Transactions:    suite.transactions,
		ProcessingDelay: delay,
	})
}

func TestWizardServiceTestSuite(t *testing.T) {
	suite.Run(t, new(WizardServiceTestSuite))
}

// toReview drives a transfer wizard up to the review step.
func (suite *WizardServiceTestSuite) toReview(svc portssvc.WizardSvcFacade, pair string) string {
	w, err := svc.StartWizard(suite.ctx, wizard.FlowTransfer, "op-1")
	suite.Require().NoError(err)
	id := w.ID

	_, err = svc.SetTransactionType(suite.ctx, id, domain.TypeSend)
	suite.Require().NoError(err)
	_, err = svc.Next(suite.ctx, id)
	suite.Require().NoError(err)
	_, err = svc.SetPair(suite.ctx, id, pair)
	suite.Require().NoError(err)
	_, err = svc.Next(suite.ctx, id)
	suite.Require().NoError(err)
	_, err = svc.SetSender(suite.ctx, id, wizard.SenderInput{Name: "Ama", Phone: "0241234567", Amount: decimal.NewFromInt(1000)})
	suite.Require().NoError(err)
	w, err = svc.Next(suite.ctx, id)
	suite.Require().NoError(err)
	suite.Require().Equal(wizard.StepReview, w.Step)
	return id
}

func (suite *WizardServiceTestSuite) stepOf(id string) wizard.Step {
	w, err := suite.service.GetWizard(suite.ctx, id)
	if err != nil {
		return ""
	}
	return w.Step
}

func (suite *WizardServiceTestSuite) TestTransferFlow_ProcessingAdvancesAutomatically() {
	id := suite.toReview(suite.service, "USD/GHS")

	w, err := suite.service.Next(suite.ctx, id)
	suite.Require().NoError(err)
	suite.Equal(wizard.StepProcessing, w.Step)
	suite.Equal("12.45", w.Draft.Fee.ExchangeRate.String())

	suite.Eventually(func() bool {
		return suite.stepOf(id) == wizard.StepReceiverDetails
	}, time.Second, 5*time.Millisecond)

	_, err = suite.service.SetReceiver(suite.ctx, id, wizard.ReceiverInput{Name: "Kofi", Phone: "0201112222"})
	suite.Require().NoError(err)
	w, err = suite.service.Next(suite.ctx, id)
	suite.Require().NoError(err)
	suite.Equal(wizard.StepComplete, w.Step)
	suite.Require().NotNil(w.Transaction)
	suite.Equal(domain.StatusCompleted, w.Transaction.Status)

	suite.Require().Len(suite.transactions.created, 1)
	suite.Equal(w.Transaction.ID, suite.transactions.created[0].ID)
}

func (suite *WizardServiceTestSuite) TestReviewWithoutRateStaysInReview() {
	id := suite.toReview(suite.service, "USD/XOF")

	_, err := suite.service.Next(suite.ctx, id)

	suite.ErrorIs(err, apperrors.ErrRateNotFound)
	suite.Equal(wizard.StepReview, suite.stepOf(id))
}

func (suite *WizardServiceTestSuite) TestBackFromProcessingCancelsTimer() {
	id := suite.toReview(suite.service, "USD/GHS")
	_, err := suite.service.Next(suite.ctx, id)
	suite.Require().NoError(err)

	w, err := suite.service.Back(suite.ctx, id)
	suite.Require().NoError(err)
	suite.Equal(wizard.StepReview, w.Step)

	time.Sleep(60 * time.Millisecond)
	suite.Equal(wizard.StepReview, suite.stepOf(id))
}

func (suite *WizardServiceTestSuite) TestCloseCancelsTimerAndDeletesDraft() {
	id := suite.toReview(suite.service, "USD/GHS")
	_, err := suite.service.Next(suite.ctx, id)
	suite.Require().NoError(err)

	suite.Require().NoError(suite.service.CloseWizard(suite.ctx, id))

	_, found, err := suite.store.Get(suite.ctx, services.KeyPrefix+services.WizardKeyPrefix+id)
	suite.Require().NoError(err)
	suite.False(found)
	_, err = suite.service.GetWizard(suite.ctx, id)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *WizardServiceTestSuite) TestDraftIsPersistedAndRestored() {
	id := suite.toReview(suite.service, "USD/GHS")

	raw, found, err := suite.store.Get(suite.ctx, services.KeyPrefix+services.WizardKeyPrefix+id)
	suite.Require().NoError(err)
	suite.Require().True(found)
	var stored wizard.Wizard
	suite.Require().NoError(json.Unmarshal([]byte(raw), &stored))
	suite.Equal(wizard.StepReview, stored.Step)
	suite.Equal("Ama", stored.Draft.Sender.Name)

	// a fresh service sees the same store, as after a restart
	restarted := suite.newService(20 * time.Millisecond)
	w, err := restarted.GetWizard(suite.ctx, id)
	suite.Require().NoError(err)
	suite.Equal(wizard.StepReview, w.Step)
	suite.True(w.Draft.Amount.Equal(decimal.NewFromInt(1000)))
}

func (suite *WizardServiceTestSuite) TestRestoredProcessingSessionReschedules() {
	id := suite.toReview(suite.service, "USD/GHS")
	slow := suite.newService(time.Hour)
	_, err := slow.Next(suite.ctx, id)
	suite.Require().NoError(err)

	restarted := suite.newService(20 * time.Millisecond)
	w, err := restarted.GetWizard(suite.ctx, id)
	suite.Require().NoError(err)
	suite.Equal(wizard.StepProcessing, w.Step)

	suite.Eventually(func() bool {
		w, err := restarted.GetWizard(suite.ctx, id)
		return err == nil && w.Step == wizard.StepReceiverDetails
	}, time.Second, 5*time.Millisecond)
}

func (suite *WizardServiceTestSuite) TestInvoiceFlowCreatesPendingTransaction() {
	w, err := suite.service.StartWizard(suite.ctx, wizard.FlowInvoice, "op-1")
	suite.Require().NoError(err)
	id := w.ID

	_, err = suite.service.SetSender(suite.ctx, id, wizard.SenderInput{Name: "Ama", Phone: "0241234567", Amount: decimal.NewFromInt(1000), Currency: "USD"})
	suite.Require().NoError(err)
	_, err = suite.service.Next(suite.ctx, id)
	suite.Require().NoError(err)
	_, err = suite.service.SetReceiver(suite.ctx, id, wizard.ReceiverInput{Name: "Kofi", Phone: "0201112222"})
	suite.Require().NoError(err)
	w, err = suite.service.Next(suite.ctx, id)
	suite.Require().NoError(err)
	suite.Equal(wizard.StepFeeConfig, w.Step)
	suite.Equal("12.45", w.Draft.Fee.ExchangeRate.String())

	w, err = suite.service.SetFee(suite.ctx, id, wizard.FeeInput{FeeRate: decimal.NewFromInt(5)})
	suite.Require().NoError(err)
	suite.True(w.Draft.ReceiverAmount.Equal(dec("11827.5")), w.Draft.ReceiverAmount.String())
	_, err = suite.service.Next(suite.ctx, id)
	suite.Require().NoError(err)
	w, err = suite.service.Next(suite.ctx, id)
	suite.Require().NoError(err)

	suite.Equal(wizard.StepComplete, w.Step)
	suite.Require().Len(suite.transactions.created, 1)
	suite.Equal(domain.StatusPending, suite.transactions.created[0].Status)
	suite.Equal(domain.TypeInvoice, suite.transactions.created[0].TransactionType)
}

func (suite *WizardServiceTestSuite) TestFinalizeFailureLeavesWizardInPlace() {
	suite.transactions.err = apperrors.ErrDuplicate
	id := suite.toReview(suite.service, "USD/GHS")
	_, err := suite.service.Next(suite.ctx, id)
	suite.Require().NoError(err)
	suite.Eventually(func() bool {
		return suite.stepOf(id) == wizard.StepReceiverDetails
	}, time.Second, 5*time.Millisecond)
	_, err = suite.service.SetReceiver(suite.ctx, id, wizard.ReceiverInput{Name: "Kofi", Phone: "0201112222"})
	suite.Require().NoError(err)

	_, err = suite.service.Next(suite.ctx, id)

	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.Equal(wizard.StepReceiverDetails, suite.stepOf(id))
}

func (suite *WizardServiceTestSuite) TestUnknownSessionAndFlow() {
	_, err := suite.service.GetWizard(suite.ctx, "missing")
	suite.ErrorIs(err, apperrors.ErrNotFound)

	_, err = suite.service.StartWizard(suite.ctx, wizard.Flow("remittance"), "op-1")
	suite.ErrorIs(err, apperrors.ErrValidation)
}

// detachedCtx is a root context whose cancellation the runtime cannot see through,
// so every derived WithCancel child is watched by its own goroutine.
type detachedCtx struct {
	context.Context
	done chan struct{}
}

func (c detachedCtx) Done() <-chan struct{} { return c.done }

func (suite *WizardServiceTestSuite) TestFiredTimersReleaseTheirContexts() {
	root := detachedCtx{Context: context.Background(), done: make(chan struct{})}
	defer close(root.done)
	svc := services.NewWizardService(root, services.WizardServiceDeps{
		Store:           kv.NewMemoryStore(),
		Rates:           tableRates{"USD/GHS": decimal.RequireFromString("12.45")},
		IDs:             stubIDs{},
		Transactions:    suite.transactions,
		ProcessingDelay: time.Millisecond,
	})

	ids := make([]string, 0, 20)
	for range 20 {
		ids = append(ids, suite.toReview(svc, "USD/GHS"))
	}
	before := runtime.NumGoroutine()
	for _, id := range ids {
		_, err := svc.Next(suite.ctx, id)
		suite.Require().NoError(err)
	}

	suite.Eventually(func() bool {
		for _, id := range ids {
			w, err := svc.GetWizard(suite.ctx, id)
			if err != nil || w.Step != wizard.StepReceiverDetails {
				return false
			}
		}
		return true
	}, time.Second, 5*time.Millisecond)
	// the condition itself runs on a goroutine of its own
	suite.Eventually(func() bool {
		return runtime.NumGoroutine() <= before+2
	}, time.Second, 5*time.Millisecond, "timer contexts still registered on the root context")
}

// gatedStore blocks reads of one key until release is closed.
type gatedStore struct {
	*kv.MemoryStore
	key     string
	entered chan struct{}
	release chan struct{}
}

func (g *gatedStore) Get(ctx context.Context, key string) (string, bool, error) {
	if key == g.key {
		close(g.entered)
		<-g.release
	}
	return g.MemoryStore.Get(ctx, key)
}

func (suite *WizardServiceTestSuite) TestRestoreDoesNotBlockOtherSessions() {
	restoring := suite.toReview(suite.service, "USD/GHS")
	store := &gatedStore{
		MemoryStore: suite.store,
		key:         services.KeyPrefix + services.WizardKeyPrefix + restoring,
		entered:     make(chan struct{}),
		release:     make(chan struct{}),
	}
	svc := services.NewWizardService(suite.ctx, services.WizardServiceDeps{
		Store:        store,
		Rates:        tableRates{"USD/GHS": decimal.RequireFromString("12.45")},
		IDs:          stubIDs{},
		Transactions: suite.transactions,
	})
	live, err := svc.StartWizard(suite.ctx, wizard.FlowInvoice, "op-2")
	suite.Require().NoError(err)

	restored := make(chan *wizard.Wizard, 1)
	go func() {
		w, _ := svc.GetWizard(suite.ctx, restoring)
		restored <- w
	}()
	<-store.entered

	got := make(chan wizard.Step, 1)
	go func() {
		w, err := svc.GetWizard(suite.ctx, live.ID)
		if err != nil {
			got <- ""
			return
		}
		got <- w.Step
	}()
	select {
	case step := <-got:
		suite.Equal(wizard.StepSenderInfo, step)
	case <-time.After(time.Second):
		suite.Fail("live session lookup waited on a backend read")
	}

	close(store.release)
	w := <-restored
	suite.Require().NotNil(w)
	suite.Equal(wizard.StepReview, w.Step)
}
