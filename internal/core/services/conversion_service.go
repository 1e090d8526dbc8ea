package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/SscSPs/rjb_tranz/internal/apperrors"
	"github.com/SscSPs/rjb_tranz/internal/core/domain"
	portssvc "github.com/SscSPs/rjb_tranz/internal/core/ports/services"
	"github.com/SscSPs/rjb_tranz/internal/dto"
	"github.com/SscSPs/rjb_tranz/internal/utils/conversion"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// QuoteUnavailable is displayed for a pair without a rate path.
const QuoteUnavailable = "N/A"

// Defaults of a pair added without explicit values.
const (
	DefaultPairFrom   = "USD"
	DefaultPairTo     = "EUR"
	DefaultPairAmount = 1000
)

// defaultBoardPairs seed every new board.
var defaultBoardPairs = []struct {
	from, to string
	amount   int64
}{
	{"USD", "GHS", 1000},
	{"USD", "NGN", 500},
	{"USD", "KES", 1000},
}

type conversionService struct {
	BaseService
	rates portssvc.RateReaderSvc
	now   func() time.Time

	mu     sync.RWMutex
	boards map[string]*domain.ConversionBoard
}

// NewConversionService creates the quick-conversion board service.
func NewConversionService(rates portssvc.RateReaderSvc) portssvc.ConversionSvcFacade {
	return &conversionService{
		rates:  rates,
		now:    time.Now,
		boards: make(map[string]*domain.ConversionBoard),
	}
}

func cloneBoard(b *domain.ConversionBoard) *domain.ConversionBoard {
	out := *b
	out.Pairs = make([]domain.ConversionPair, len(b.Pairs))
	copy(out.Pairs, b.Pairs)
	return &out
}

func (s *conversionService) CreateBoard(ctx context.Context) (*domain.ConversionBoard, error) {
	board := &domain.ConversionBoard{ID: uuid.NewString(), CreatedAt: s.now().UTC()}
	for _, p := range defaultBoardPairs {
		board.Pairs = append(board.Pairs, domain.ConversionPair{
			ID:           uuid.NewString(),
			FromCurrency: p.from,
			ToCurrency:   p.to,
			Amount:       decimal.NewFromInt(p.amount),
			IsVisible:    true,
		})
	}

	s.mu.Lock()
	s.boards[board.ID] = board
	s.mu.Unlock()

	s.LogInfo(ctx, "Conversion board created", slog.String("board_id", board.ID))
	return cloneBoard(board), nil
}

func (s *conversionService) GetBoard(ctx context.Context, boardID string) (*domain.ConversionBoard, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	board, ok := s.boards[boardID]
	if !ok {
		return nil, fmt.Errorf("%w: conversion board %s", apperrors.ErrNotFound, boardID)
	}
	return cloneBoard(board), nil
}

// mutate runs fn on the stored board under the write lock and returns a copy of the result.
func (s *conversionService) mutate(boardID string, fn func(*domain.ConversionBoard) error) (*domain.ConversionBoard, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	board, ok := s.boards[boardID]
	if !ok {
		return nil, fmt.Errorf("%w: conversion board %s", apperrors.ErrNotFound, boardID)
	}
	if err := fn(board); err != nil {
		return nil, err
	}
	return cloneBoard(board), nil
}

func pairIndex(board *domain.ConversionBoard, pairID string) (int, error) {
	for i, p := range board.Pairs {
		if p.ID == pairID {
			return i, nil
		}
	}
	return -1, fmt.Errorf("%w: conversion pair %s", apperrors.ErrNotFound, pairID)
}

func (s *conversionService) AddPair(ctx context.Context, boardID string, req dto.AddConversionPairRequest) (*domain.ConversionBoard, error) {
	pair := domain.ConversionPair{
		ID:           uuid.NewString(),
		FromCurrency: DefaultPairFrom,
		ToCurrency:   DefaultPairTo,
		Amount:       decimal.NewFromInt(DefaultPairAmount),
		IsVisible:    true,
	}
	if req.FromCurrency != "" {
		pair.FromCurrency = strings.ToUpper(req.FromCurrency)
	}
	if req.ToCurrency != "" {
		pair.ToCurrency = strings.ToUpper(req.ToCurrency)
	}
	if req.Amount != nil {
		if req.Amount.IsNegative() {
			return nil, fmt.Errorf("%w: amount must not be negative", apperrors.ErrValidation)
		}
		pair.Amount = *req.Amount
	}
	board, err := s.mutate(boardID, func(b *domain.ConversionBoard) error {
		b.Pairs = append(b.Pairs, pair)
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.LogDebug(ctx, "Conversion pair added", slog.String("board_id", boardID), slog.String("pair_id", pair.ID))
	return board, nil
}

func (s *conversionService) UpdatePair(ctx context.Context, boardID, pairID string, req dto.UpdateConversionPairRequest) (*domain.ConversionBoard, error) {
	if req.Amount != nil && req.Amount.IsNegative() {
		return nil, fmt.Errorf("%w: amount must not be negative", apperrors.ErrValidation)
	}
	return s.mutate(boardID, func(b *domain.ConversionBoard) error {
		i, err := pairIndex(b, pairID)
		if err != nil {
			return err
		}
		if req.Amount != nil {
			b.Pairs[i].Amount = *req.Amount
		}
		if req.IsVisible != nil {
			b.Pairs[i].IsVisible = *req.IsVisible
		}
		return nil
	})
}

func (s *conversionService) RemovePair(ctx context.Context, boardID, pairID string) (*domain.ConversionBoard, error) {
	return s.mutate(boardID, func(b *domain.ConversionBoard) error {
		i, err := pairIndex(b, pairID)
		if err != nil {
			return err
		}
		b.Pairs = append(b.Pairs[:i], b.Pairs[i+1:]...)
		return nil
	})
}

func (s *conversionService) Quotes(ctx context.Context, boardID string) ([]domain.ConversionQuote, error) {
	board, err := s.GetBoard(ctx, boardID)
	if err != nil {
		return nil, err
	}
	set := s.rates.Current()
	now := s.now().UTC()

	quotes := make([]domain.ConversionQuote, 0, len(board.Pairs))
	for _, p := range board.Pairs {
		q := domain.ConversionQuote{
			Pair:    p,
			Display: QuoteUnavailable,
			Change:  conversion.RateChange(p.FromCurrency, p.ToCurrency, set.Rates, now),
		}
		if rate, ok := conversion.FindRate(p.FromCurrency, p.ToCurrency, set.Rates, set.Base); ok {
			converted := conversion.Convert(p.Amount, rate)
			q.Rate = &rate
			q.ConvertedAmount = &converted
			q.Display = rate.StringFixed(6)
		}
		quotes = append(quotes, q)
	}
	return quotes, nil
}
