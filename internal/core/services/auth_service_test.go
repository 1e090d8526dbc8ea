package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/rjb_tranz/internal/apperrors"
	"github.com/SscSPs/rjb_tranz/internal/core/domain"
	"github.com/SscSPs/rjb_tranz/internal/core/services"
	"github.com/SscSPs/rjb_tranz/internal/platform/config"
	"github.com/SscSPs/rjb_tranz/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/idtoken"
)

func authConfig(t *testing.T) *config.Config {
	hash, err := utils.HashPassword("s3cret-pass")
	require.NoError(t, err)
	return &config.Config{
		JWTSecret:            "test-secret-key-that-is-long-enough",
		JWTExpiryDuration:    time.Hour,
		JWTIssuer:            "rjb-test",
		OperatorUsername:     "admin",
		OperatorPasswordHash: hash,
		OperatorEmails:       []string{"ops@rjbtranz.com"},
	}
}

func TestOperatorLogin_Password(t *testing.T) {
	ctx := context.Background()
	svc := services.NewOperatorLoginService(authConfig(t))

	op, err := svc.LoginWithPassword(ctx, "admin", "s3cret-pass")
	require.NoError(t, err)
	assert.Equal(t, "admin", op.Username)
	assert.NotEmpty(t, op.OperatorID)

	again, err := svc.LoginWithPassword(ctx, "admin", "s3cret-pass")
	require.NoError(t, err)
	assert.Equal(t, op.OperatorID, again.OperatorID, "operator IDs are stable")

	_, err = svc.LoginWithPassword(ctx, "admin", "wrong")
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
	_, err = svc.LoginWithPassword(ctx, "root", "s3cret-pass")
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}

func TestOperatorLogin_PasswordDisabledWithoutHash(t *testing.T) {
	cfg := authConfig(t)
	cfg.OperatorPasswordHash = ""
	svc := services.NewOperatorLoginService(cfg)

	_, err := svc.LoginWithPassword(context.Background(), "admin", "")
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}

func TestOperatorLogin_Google(t *testing.T) {
	ctx := context.Background()
	svc := services.NewOperatorLoginService(authConfig(t))

	testCases := []struct {
		name    string
		claims  map[string]interface{}
		wantErr bool
	}{
		{"allowed and verified", map[string]interface{}{"email": "OPS@rjbtranz.com", "email_verified": true, "name": "Ops"}, false},
		{"not verified", map[string]interface{}{"email": "ops@rjbtranz.com", "email_verified": false}, true},
		{"not on allow list", map[string]interface{}{"email": "someone@example.com", "email_verified": true}, true},
		{"no email", map[string]interface{}{"email_verified": true}, true},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			op, err := svc.LoginWithGoogle(ctx, &idtoken.Payload{Subject: "g-1", Claims: tc.claims})
			if tc.wantErr {
				assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "Ops", op.Username)
			assert.Equal(t, "OPS@rjbtranz.com", op.Email)
		})
	}

	_, err := svc.LoginWithGoogle(ctx, nil)
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}

func TestTokenService_GenerateAccessToken(t *testing.T) {
	cfg := authConfig(t)
	svc := services.NewTokenService(cfg)

	token, expiresAt, err := svc.GenerateAccessToken(context.Background(), &domain.Operator{OperatorID: "op-1", Username: "admin"})
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	claims, err := utils.ParseAndValidateJWT(token, cfg.JWTSecret)
	require.NoError(t, err)
	assert.Equal(t, "op-1", claims.Subject)
}
