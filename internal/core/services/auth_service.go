package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/rjb_tranz/internal/apperrors"
	"github.com/SscSPs/rjb_tranz/internal/core/domain"
	portssvc "github.com/SscSPs/rjb_tranz/internal/core/ports/services"
	"github.com/SscSPs/rjb_tranz/internal/platform/config"
	"github.com/SscSPs/rjb_tranz/internal/utils"
	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/idtoken"
)

// tokenService implements the TokenSvcFacade for issuing operator access tokens.
type tokenService struct {
	cfg *config.Config
}

// NewTokenService creates a new instance of tokenService.
func NewTokenService(cfg *config.Config) portssvc.TokenSvcFacade {
	return &tokenService{cfg: cfg}
}

// GenerateAccessToken creates a new JWT access token for the given operator.
func (s *tokenService) GenerateAccessToken(ctx context.Context, operator *domain.Operator) (string, time.Time, error) {
	// Calculate expiry time first
	expiryTime := time.Now().Add(s.cfg.JWTExpiryDuration)

	accessToken, err := utils.GenerateOperatorJWT(operator.OperatorID, operator.Username, s.cfg.JWTSecret, s.cfg.JWTExpiryDuration, s.cfg.JWTIssuer)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign access token: %w", err)
	}
	return accessToken, expiryTime, nil
}

// operatorLoginService authenticates the configured operator account and the Google
// accounts on the allow list.
type operatorLoginService struct {
	BaseService
	cfg *config.Config
}

// NewOperatorLoginService creates the operator login service.
func NewOperatorLoginService(cfg *config.Config) portssvc.OperatorLoginSvc {
	return &operatorLoginService{cfg: cfg}
}

// operatorID derives a stable ID so tokens survive restarts without an operator table.
func operatorID(kind, name string) string {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte("rjb-tranz:"+kind+":"+strings.ToLower(name))).String()
}

func (s *operatorLoginService) LoginWithPassword(ctx context.Context, username, password string) (*domain.Operator, error) {
	if s.cfg.OperatorUsername == "" || s.cfg.OperatorPasswordHash == "" {
		s.LogWarn(ctx, "Password login attempted but no operator account is configured")
		return nil, fmt.Errorf("%w: password login is not configured", apperrors.ErrUnauthorized)
	}
	if username != s.cfg.OperatorUsername || !utils.CheckPasswordHash(password, s.cfg.OperatorPasswordHash) {
		s.LogWarn(ctx, "Operator login failed", slog.String("username", username))
		return nil, fmt.Errorf("%w: invalid username or password", apperrors.ErrUnauthorized)
	}
	return &domain.Operator{
		OperatorID: operatorID("password", username),
		Username:   username,
	}, nil
}

func (s *operatorLoginService) LoginWithGoogle(ctx context.Context, payload *idtoken.Payload) (*domain.Operator, error) {
	if payload == nil {
		return nil, fmt.Errorf("%w: missing google identity", apperrors.ErrUnauthorized)
	}
	email, _ := payload.Claims["email"].(string)
	verified, _ := payload.Claims["email_verified"].(bool)
	if email == "" || !verified {
		return nil, fmt.Errorf("%w: google account has no verified email", apperrors.ErrUnauthorized)
	}
	if !s.allowed(email) {
		s.LogWarn(ctx, "Google account is not an operator", slog.String("email", email))
		return nil, fmt.Errorf("%w: %s is not an operator", apperrors.ErrUnauthorized, email)
	}
	name, _ := payload.Claims["name"].(string)
	if name == "" {
		name = email
	}
	return &domain.Operator{
		OperatorID: operatorID("google", email),
		Username:   name,
		Email:      email,
	}, nil
}

func (s *operatorLoginService) allowed(email string) bool {
	for _, e := range s.cfg.OperatorEmails {
		if strings.EqualFold(strings.TrimSpace(e), email) {
			return true
		}
	}
	return false
}

// --- GoogleOAuthHandlerSvcFacade Implementation ---

// googleOAuthHandlerService implements the GoogleOAuthHandlerSvcFacade.
type googleOAuthHandlerService struct {
	cfg *config.Config
	// oauth2Config is configured at initialization time
	oauth2Config *oauth2.Config
}

// NewGoogleOAuthHandlerService creates a new instance of googleOAuthHandlerService.
func NewGoogleOAuthHandlerService(cfg *config.Config) portssvc.GoogleOAuthHandlerSvcFacade {
	return &googleOAuthHandlerService{
		cfg: cfg,
		oauth2Config: &oauth2.Config{
			ClientID:     cfg.GoogleClientID,
			ClientSecret: cfg.GoogleClientSecret,
			RedirectURL:  cfg.GoogleRedirectURL,
			Scopes:       []string{"https://www.googleapis.com/auth/userinfo.email", "https://www.googleapis.com/auth/userinfo.profile"},
			Endpoint:     google.Endpoint,
		},
	}
}

// ExchangeCodeForToken exchanges an OAuth authorization code for a token.
func (s *googleOAuthHandlerService) ExchangeCodeForToken(ctx context.Context, code string) (*oauth2.Token, error) {
	token, err := s.oauth2Config.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange oauth code for token: %w", err)
	}
	return token, nil
}

// ValidateGoogleIDToken validates an ID token received from Google and returns the payload if valid.
func (s *googleOAuthHandlerService) ValidateGoogleIDToken(ctx context.Context, idTokenString string) (*idtoken.Payload, error) {
	if s.cfg.GoogleClientID == "" {
		return nil, errors.New("google client ID is not configured in the application")
	}

	payload, err := idtoken.Validate(ctx, idTokenString, s.cfg.GoogleClientID)
	if err != nil {
		return nil, fmt.Errorf("%w: google ID token validation failed: %v", apperrors.ErrUnauthorized, err)
	}
	return payload, nil
}
