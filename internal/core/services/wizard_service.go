package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/SscSPs/rjb_tranz/internal/apperrors"
	"github.com/SscSPs/rjb_tranz/internal/core/domain"
	portsrepo "github.com/SscSPs/rjb_tranz/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/rjb_tranz/internal/core/ports/services"
	"github.com/SscSPs/rjb_tranz/internal/core/wizard"
)

// WizardKeyPrefix namespaces persisted wizard drafts.
const WizardKeyPrefix = "wizard:"

// DefaultProcessingDelay is how long a transfer stays in the processing step.
const DefaultProcessingDelay = 2 * time.Second

func wizardKey(sessionID string) string {
	return WizardKeyPrefix + sessionID
}

// WizardServiceDeps are the collaborators of the wizard service.
type WizardServiceDeps struct {
	Store        portsrepo.KVStore
	Rates        wizard.RateFinder
	IDs          wizard.IDGenerator
	Transactions portssvc.TransactionWriterSvc
	Settings     portssvc.SettingsSvcFacade
	// ProcessingDelay defaults to DefaultProcessingDelay.
	ProcessingDelay time.Duration
}

// wizardSession guards one wizard. cancel is set while a processing timer is pending;
// timerGen identifies the latest timer so a superseded one never fires.
type wizardSession struct {
	mu       sync.Mutex
	w        *wizard.Wizard
	cancel   context.CancelFunc
	timerGen uint64
	closed   bool
}

type wizardService struct {
	BaseService
	deps    WizardServiceDeps
	delay   time.Duration
	now     func() time.Time
	rootCtx context.Context

	mu       sync.Mutex
	sessions map[string]*wizardSession
}

// NewWizardService creates the wizard service. Processing timers run under rootCtx and
// stop when it is cancelled.
func NewWizardService(rootCtx context.Context, deps WizardServiceDeps) portssvc.WizardSvcFacade {
	delay := deps.ProcessingDelay
	if delay <= 0 {
		delay = DefaultProcessingDelay
	}
	return &wizardService{
		deps:     deps,
		delay:    delay,
		now:      time.Now,
		rootCtx:  rootCtx,
		sessions: make(map[string]*wizardSession),
	}
}

func (s *wizardService) StartWizard(ctx context.Context, flow wizard.Flow, operatorID string) (*wizard.Wizard, error) {
	opts := wizard.Options{}
	if s.deps.Settings != nil {
		opts.TransferFeeRate = s.deps.Settings.GetSettings(ctx).DefaultFeeRate
	}
	w, err := wizard.New(flow, operatorID, opts, s.now().UTC())
	if err != nil {
		return nil, err
	}
	sess := &wizardSession{w: w}

	s.mu.Lock()
	s.sessions[w.ID] = sess
	s.mu.Unlock()

	sess.mu.Lock()
	defer sess.mu.Unlock()
	s.persistLocked(ctx, sess)
	s.LogInfo(ctx, "Wizard started", slog.String("session_id", w.ID), slog.String("flow", string(flow)))
	return w.Clone(), nil
}

// session returns the live session, restoring it from persistence on first use.
// The backend read happens outside s.mu; a concurrent restore of the same session wins once.
func (s *wizardService) session(ctx context.Context, sessionID string) (*wizardSession, error) {
	s.mu.Lock()
	sess, ok := s.sessions[sessionID]
	s.mu.Unlock()
	if ok {
		return sess, nil
	}
	if s.deps.Store == nil {
		return nil, fmt.Errorf("%w: wizard session %s", apperrors.ErrNotFound, sessionID)
	}
	w, found, err := loadJSON[wizard.Wizard](ctx, s.deps.Store, wizardKey(sessionID))
	if err != nil {
		s.LogWarn(ctx, "Failed to restore wizard draft", slog.String("session_id", sessionID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("%w: wizard session %s", apperrors.ErrNotFound, sessionID)
	}
	if !found || w.ID != sessionID || !w.Flow.IsValid() {
		return nil, fmt.Errorf("%w: wizard session %s", apperrors.ErrNotFound, sessionID)
	}

	s.mu.Lock()
	if existing, ok := s.sessions[sessionID]; ok {
		s.mu.Unlock()
		return existing, nil
	}
	sess = &wizardSession{w: &w}
	s.sessions[sessionID] = sess
	s.mu.Unlock()

	s.LogDebug(ctx, "Wizard restored", slog.String("session_id", sessionID), slog.String("step", string(w.Step)))
	if w.IsAutomatic() {
		sess.mu.Lock()
		if !sess.closed && sess.w.IsAutomatic() && sess.cancel == nil {
			remaining := s.delay - s.now().Sub(sess.w.UpdatedAt)
			s.scheduleLocked(sess, max(remaining, 0))
		}
		sess.mu.Unlock()
	}
	return sess, nil
}

// mutate applies fn to a copy of the wizard and commits it only when fn succeeds.
func (s *wizardService) mutate(ctx context.Context, sessionID string, fn func(w *wizard.Wizard) error) (*wizard.Wizard, error) {
	sess, err := s.session(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	if sess.closed {
		return nil, fmt.Errorf("%w: wizard session %s", apperrors.ErrNotFound, sessionID)
	}
	working := sess.w.Clone()
	if err := fn(working); err != nil {
		return nil, err
	}
	sess.w = working
	s.persistLocked(ctx, sess)
	return working.Clone(), nil
}

func (s *wizardService) GetWizard(ctx context.Context, sessionID string) (*wizard.Wizard, error) {
	sess, err := s.session(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	if sess.closed {
		return nil, fmt.Errorf("%w: wizard session %s", apperrors.ErrNotFound, sessionID)
	}
	return sess.w.Clone(), nil
}

func (s *wizardService) SetTransactionType(ctx context.Context, sessionID string, t domain.TransactionType) (*wizard.Wizard, error) {
	return s.mutate(ctx, sessionID, func(w *wizard.Wizard) error {
		return w.SetTransactionType(t, s.now().UTC())
	})
}

func (s *wizardService) SetPair(ctx context.Context, sessionID, pair string) (*wizard.Wizard, error) {
	return s.mutate(ctx, sessionID, func(w *wizard.Wizard) error {
		return w.SetPair(pair, s.now().UTC())
	})
}

func (s *wizardService) SetSender(ctx context.Context, sessionID string, in wizard.SenderInput) (*wizard.Wizard, error) {
	return s.mutate(ctx, sessionID, func(w *wizard.Wizard) error {
		return w.SetSender(in, s.now().UTC())
	})
}

func (s *wizardService) SetReceiver(ctx context.Context, sessionID string, in wizard.ReceiverInput) (*wizard.Wizard, error) {
	return s.mutate(ctx, sessionID, func(w *wizard.Wizard) error {
		return w.SetReceiver(in, s.now().UTC())
	})
}

func (s *wizardService) SetFee(ctx context.Context, sessionID string, in wizard.FeeInput) (*wizard.Wizard, error) {
	return s.mutate(ctx, sessionID, func(w *wizard.Wizard) error {
		return w.SetFee(in, s.deps.Rates, s.now().UTC())
	})
}

// Next moves forward. Reaching the processing step schedules the automatic transition;
// reaching the terminal step stores the frozen transaction before the move is committed.
func (s *wizardService) Next(ctx context.Context, sessionID string) (*wizard.Wizard, error) {
	sess, err := s.session(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	if sess.closed {
		return nil, fmt.Errorf("%w: wizard session %s", apperrors.ErrNotFound, sessionID)
	}

	working := sess.w.Clone()
	deps := wizard.Deps{Rates: s.deps.Rates, IDs: s.deps.IDs, Now: func() time.Time { return s.now().UTC() }}
	if err := working.Forward(deps); err != nil {
		s.LogDebug(ctx, "Wizard step rejected", slog.String("session_id", sessionID), slog.String("step", string(sess.w.Step)), slog.String("error", err.Error()))
		return nil, err
	}
	if working.IsComplete() && working.Transaction != nil && s.deps.Transactions != nil {
		if err := s.deps.Transactions.CreateTransaction(ctx, *working.Transaction); err != nil {
			return nil, err
		}
	}

	sess.w = working
	if working.IsAutomatic() {
		s.scheduleLocked(sess, s.delay)
	}
	s.persistLocked(ctx, sess)
	s.LogInfo(ctx, "Wizard advanced", slog.String("session_id", sessionID), slog.String("step", string(working.Step)))
	return working.Clone(), nil
}

// Back returns to the previous step. Leaving the processing step cancels its timer.
func (s *wizardService) Back(ctx context.Context, sessionID string) (*wizard.Wizard, error) {
	sess, err := s.session(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	if sess.closed {
		return nil, fmt.Errorf("%w: wizard session %s", apperrors.ErrNotFound, sessionID)
	}
	working := sess.w.Clone()
	if err := working.Back(s.now().UTC()); err != nil {
		return nil, err
	}
	cancelTimerLocked(sess)
	sess.w = working
	s.persistLocked(ctx, sess)
	return working.Clone(), nil
}

func (s *wizardService) CloseWizard(ctx context.Context, sessionID string) error {
	sess, err := s.session(ctx, sessionID)
	if err != nil {
		return err
	}
	sess.mu.Lock()
	cancelTimerLocked(sess)
	sess.closed = true
	sess.mu.Unlock()

	s.mu.Lock()
	delete(s.sessions, sessionID)
	s.mu.Unlock()

	if s.deps.Store != nil {
		if err := removeKey(ctx, s.deps.Store, wizardKey(sessionID)); err != nil {
			s.LogError(ctx, err, "Failed to remove wizard draft", slog.String("session_id", sessionID))
		}
	}
	s.LogInfo(ctx, "Wizard closed", slog.String("session_id", sessionID))
	return nil
}

// scheduleLocked arms the automatic transition of the current step. Caller holds sess.mu.
func (s *wizardService) scheduleLocked(sess *wizardSession, delay time.Duration) {
	cancelTimerLocked(sess)
	ctx, cancel := context.WithCancel(s.rootCtx)
	sess.cancel = cancel
	sess.timerGen++
	gen := sess.timerGen

	go func() {
		defer cancel()
		timer := time.NewTimer(delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return
		case <-timer.C:
		}
		s.advance(ctx, sess, gen)
	}()
}

func cancelTimerLocked(sess *wizardSession) {
	if sess.cancel != nil {
		sess.cancel()
		sess.cancel = nil
	}
	sess.timerGen++
}

func (s *wizardService) advance(ctx context.Context, sess *wizardSession, gen uint64) {
	sess.mu.Lock()
	defer sess.mu.Unlock()
	if sess.closed || sess.timerGen != gen || ctx.Err() != nil {
		return
	}
	// the timer goroutine releases ctx once advance returns
	sess.cancel = nil
	working := sess.w.Clone()
	if err := working.Advance(s.now().UTC()); err != nil {
		s.LogError(ctx, err, "Automatic wizard transition failed", slog.String("session_id", working.ID))
		return
	}
	sess.w = working
	s.persistLocked(ctx, sess)
	s.LogDebug(ctx, "Wizard advanced automatically", slog.String("session_id", working.ID), slog.String("step", string(working.Step)))
}

// persistLocked writes the draft through. Failures are logged and the in-memory state kept.
func (s *wizardService) persistLocked(ctx context.Context, sess *wizardSession) {
	if s.deps.Store == nil {
		return
	}
	if err := saveJSON(ctx, s.deps.Store, wizardKey(sess.w.ID), sess.w); err != nil {
		s.LogError(ctx, err, "Failed to persist wizard draft", slog.String("session_id", sess.w.ID))
	}
}
