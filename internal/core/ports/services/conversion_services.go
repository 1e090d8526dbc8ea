package services

import (
	"context"

	"github.com/SscSPs/rjb_tranz/internal/core/domain"
	"github.com/SscSPs/rjb_tranz/internal/dto"
)

// ConversionReaderSvc defines read operations for conversion boards
type ConversionReaderSvc interface {
	GetBoard(ctx context.Context, boardID string) (*domain.ConversionBoard, error)
	// Quotes evaluates every pair of the board against the current rates.
	Quotes(ctx context.Context, boardID string) ([]domain.ConversionQuote, error)
}

// ConversionWriterSvc defines write operations for conversion boards
type ConversionWriterSvc interface {
	// CreateBoard starts a board with the default pairs.
	CreateBoard(ctx context.Context) (*domain.ConversionBoard, error)
	AddPair(ctx context.Context, boardID string, req dto.AddConversionPairRequest) (*domain.ConversionBoard, error)
	UpdatePair(ctx context.Context, boardID, pairID string, req dto.UpdateConversionPairRequest) (*domain.ConversionBoard, error)
	RemovePair(ctx context.Context, boardID, pairID string) (*domain.ConversionBoard, error)
}

// ConversionSvcFacade combines all conversion board interfaces
type ConversionSvcFacade interface {
	ConversionReaderSvc
	ConversionWriterSvc
}
