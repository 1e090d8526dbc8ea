package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/SscSPs/rjb_tranz/internal/apperrors"
	"github.com/SscSPs/rjb_tranz/internal/core/domain"
	portssvc "github.com/SscSPs/rjb_tranz/internal/core/ports/services"
	"github.com/SscSPs/rjb_tranz/internal/dto"
	"github.com/SscSPs/rjb_tranz/internal/middleware"
	"github.com/gin-gonic/gin"
)

// authHandler handles operator sign-in.
type authHandler struct {
	login       portssvc.OperatorLoginSvc
	tokens      portssvc.TokenSvcFacade
	googleOAuth portssvc.GoogleOAuthHandlerSvcFacade
}

func newAuthHandler(login portssvc.OperatorLoginSvc, tokens portssvc.TokenSvcFacade, googleOAuth portssvc.GoogleOAuthHandlerSvcFacade) *authHandler {
	return &authHandler{login: login, tokens: tokens, googleOAuth: googleOAuth}
}

// registerAuthRoutes sets up the public authentication routes. limit guards both endpoints.
func registerAuthRoutes(rg *gin.RouterGroup, limit gin.HandlerFunc, services *portssvc.ServiceContainer) {
	h := newAuthHandler(services.OperatorLogin, services.TokenService, services.GoogleOAuth)

	auth := rg.Group("/auth", limit)
	{
		auth.POST("/login", h.Login)
		auth.POST("/google/exchange-code", h.ExchangeCodeGoogle)
	}
}

// Login godoc
// @Summary Operator login
// @Description Authenticates the operator and returns a JWT token.
// @Tags auth
// @Accept json
// @Produce json
// @Param login body dto.LoginRequest true "Login Credentials"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 429 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /auth/login [post]
func (h *authHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}
	operator, err := h.login.LoginWithPassword(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		middleware.GetLoggerFromCtx(c.Request.Context()).Warn("Operator login rejected", slog.String("username", req.Username))
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Invalid username or password"})
		return
	}
	h.respondWithToken(c, operator)
}

// ExchangeCodeGoogle godoc
// @Summary Exchange a Google authorization code for an operator token
// @Description Exchanges the code with Google, validates the ID token and checks the operator allow list.
// @Tags auth
// @Accept json
// @Produce json
// @Param code body dto.GoogleExchangeCodeRequest true "Authorization code"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} apperrors.AppError
// @Failure 401 {object} apperrors.AppError
// @Failure 504 {object} apperrors.AppError
// @Router /auth/google/exchange-code [post]
func (h *authHandler) ExchangeCodeGoogle(c *gin.Context) {
	ctx := c.Request.Context()
	logger := middleware.GetLoggerFromCtx(ctx)

	var req dto.GoogleExchangeCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		appErr := apperrors.NewBadRequestError("Authorization code is required.")
		c.JSON(appErr.Code, appErr)
		return
	}

	oauth2Token, err := h.googleOAuth.ExchangeCodeForToken(ctx, req.Code)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to exchange authorization code with Google", slog.String("error", err.Error()))
		appErr := apperrors.NewGatewayTimeoutError("Failed to communicate with Google OAuth service.")
		lower := strings.ToLower(err.Error())
		if strings.Contains(lower, "invalid_grant") || strings.Contains(lower, "bad request") {
			appErr = apperrors.NewBadRequestError("Invalid or expired authorization code provided by Google.")
		}
		c.JSON(appErr.Code, appErr)
		return
	}

	idTokenString, ok := oauth2Token.Extra("id_token").(string)
	if !ok || idTokenString == "" {
		logger.ErrorContext(ctx, "ID token not found in Google's token response")
		appErr := apperrors.NewInternalServerError("Failed to retrieve ID token from Google.")
		c.JSON(appErr.Code, appErr)
		return
	}

	payload, err := h.googleOAuth.ValidateGoogleIDToken(ctx, idTokenString)
	if err != nil {
		logger.WarnContext(ctx, "Google ID token validation failed", slog.String("error", err.Error()))
		appErr := apperrors.NewUnauthorizedError("Invalid Google ID token.")
		c.JSON(appErr.Code, appErr)
		return
	}

	operator, err := h.login.LoginWithGoogle(ctx, payload)
	if err != nil {
		logger.WarnContext(ctx, "Google account is not an operator", slog.String("google_user_id", payload.Subject))
		appErr := apperrors.NewUnauthorizedError("This Google account is not allowed to sign in.")
		c.JSON(appErr.Code, appErr)
		return
	}

	h.respondWithToken(c, operator)
}

// respondWithToken answers with a fresh access token for the operator.
func (h *authHandler) respondWithToken(c *gin.Context, operator *domain.Operator) {
	token, expiresAt, err := h.tokens.GenerateAccessToken(c.Request.Context(), operator)
	if err != nil {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("Failed to sign JWT token", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to generate token"})
		return
	}
	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Operator signed in", slog.String("operator_id", operator.OperatorID))
	c.JSON(http.StatusOK, dto.LoginResponse{Token: token, ExpiresAt: expiresAt})
}
