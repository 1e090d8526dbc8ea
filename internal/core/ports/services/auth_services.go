package services

import (
	"context"
	"time"

	"github.com/SscSPs/rjb_tranz/internal/core/domain"
	"golang.org/x/oauth2"
	"google.golang.org/api/idtoken"
)

// TokenSvcFacade issues operator access tokens.
type TokenSvcFacade interface {
	GenerateAccessToken(ctx context.Context, operator *domain.Operator) (string, time.Time, error)
}

// OperatorLoginSvc authenticates operators.
type OperatorLoginSvc interface {
	// LoginWithPassword returns apperrors.ErrUnauthorized for unknown users or bad passwords.
	LoginWithPassword(ctx context.Context, username, password string) (*domain.Operator, error)
	// LoginWithGoogle admits a verified Google account on the operator allow list.
	LoginWithGoogle(ctx context.Context, payload *idtoken.Payload) (*domain.Operator, error)
}

// GoogleOAuthHandlerSvcFacade defines the interface for Google OAuth operations.
type GoogleOAuthHandlerSvcFacade interface {
	// ExchangeCodeForToken exchanges an OAuth authorization code for a token.
	ExchangeCodeForToken(ctx context.Context, code string) (*oauth2.Token, error)
	// ValidateGoogleIDToken validates an ID token string from Google and returns its payload.
	ValidateGoogleIDToken(ctx context.Context, idTokenString string) (*idtoken.Payload, error)
}
