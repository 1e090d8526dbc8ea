package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/SscSPs/rjb_tranz/internal/apperrors"
	"github.com/SscSPs/rjb_tranz/internal/core/domain"
	portssvc "github.com/SscSPs/rjb_tranz/internal/core/ports/services"
	"github.com/SscSPs/rjb_tranz/internal/core/wizard"
	"github.com/SscSPs/rjb_tranz/internal/dto"
	"github.com/SscSPs/rjb_tranz/internal/middleware"
	"github.com/gin-gonic/gin"
)

// wizardHandler drives transaction wizard sessions.
type wizardHandler struct {
	wizards portssvc.WizardSvcFacade
}

func newWizardHandler(wizards portssvc.WizardSvcFacade) *wizardHandler {
	return &wizardHandler{wizards: wizards}
}

// registerWizardRoutes registers the wizard session routes.
func registerWizardRoutes(rg *gin.RouterGroup, wizards portssvc.WizardSvcFacade) {
	h := newWizardHandler(wizards)

	w := rg.Group("/wizards")
	{
		w.POST("", h.startWizard)
		w.GET("/:sessionID", h.getWizard)
		w.DELETE("/:sessionID", h.closeWizard)
		w.PUT("/:sessionID/type", h.setType)
		w.PUT("/:sessionID/country", h.setCountry)
		w.PUT("/:sessionID/sender", h.setSender)
		w.PUT("/:sessionID/receiver", h.setReceiver)
		w.PUT("/:sessionID/fee", h.setFee)
		w.POST("/:sessionID/next", h.next)
		w.POST("/:sessionID/back", h.back)
	}
}

func (h *wizardHandler) respond(c *gin.Context, status int, w *wizard.Wizard, err error) {
	if err != nil {
		respondError(c, err, "Failed to update wizard")
		return
	}
	c.JSON(status, dto.ToWizardResponse(w))
}

// startWizard godoc
// @Summary Start a wizard session
// @Description Starts a transfer or invoice wizard at its first step.
// @Tags wizards
// @Accept json
// @Produce json
// @Param wizard body dto.CreateWizardRequest true "Flow"
// @Success 201 {object} dto.WizardResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /wizards [post]
func (h *wizardHandler) startWizard(c *gin.Context) {
	var req dto.CreateWizardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	operatorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}
	w, err := h.wizards.StartWizard(c.Request.Context(), req.Flow, operatorID)
	h.respond(c, http.StatusCreated, w, err)
}

// getWizard godoc
// @Summary Get a wizard session
// @Tags wizards
// @Produce json
// @Param sessionID path string true "Session ID"
// @Success 200 {object} dto.WizardResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /wizards/{sessionID} [get]
func (h *wizardHandler) getWizard(c *gin.Context) {
	w, err := h.wizards.GetWizard(c.Request.Context(), c.Param("sessionID"))
	h.respond(c, http.StatusOK, w, err)
}

// closeWizard godoc
// @Summary Close a wizard session
// @Description Drops the session, its pending timer and its saved draft.
// @Tags wizards
// @Param sessionID path string true "Session ID"
// @Success 204
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /wizards/{sessionID} [delete]
func (h *wizardHandler) closeWizard(c *gin.Context) {
	if err := h.wizards.CloseWizard(c.Request.Context(), c.Param("sessionID")); err != nil {
		respondError(c, err, "Failed to close wizard")
		return
	}
	c.Status(http.StatusNoContent)
}

// setType godoc
// @Summary Choose send or receive
// @Tags wizards
// @Accept json
// @Produce json
// @Param sessionID path string true "Session ID"
// @Param body body dto.SetTransactionTypeRequest true "Transaction type"
// @Success 200 {object} dto.WizardResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Not accepted at the current step"
// @Security BearerAuth
// @Router /wizards/{sessionID}/type [put]
func (h *wizardHandler) setType(c *gin.Context) {
	var req dto.SetTransactionTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	w, err := h.wizards.SetTransactionType(c.Request.Context(), c.Param("sessionID"), domain.TransactionType(req.TransactionType))
	h.respond(c, http.StatusOK, w, err)
}

// setCountry godoc
// @Summary Choose the currency corridor
// @Tags wizards
// @Accept json
// @Produce json
// @Param sessionID path string true "Session ID"
// @Param body body dto.SetPairRequest true "Pair such as USD/GHS"
// @Success 200 {object} dto.WizardResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Security BearerAuth
// @Router /wizards/{sessionID}/country [put]
func (h *wizardHandler) setCountry(c *gin.Context) {
	var req dto.SetPairRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	w, err := h.wizards.SetPair(c.Request.Context(), c.Param("sessionID"), req.Pair)
	h.respond(c, http.StatusOK, w, err)
}

// setSender godoc
// @Summary Enter sender details
// @Tags wizards
// @Accept json
// @Produce json
// @Param sessionID path string true "Session ID"
// @Param body body wizard.SenderInput true "Sender"
// @Success 200 {object} dto.WizardResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Security BearerAuth
// @Router /wizards/{sessionID}/sender [put]
func (h *wizardHandler) setSender(c *gin.Context) {
	var in wizard.SenderInput
	if err := c.ShouldBindJSON(&in); err != nil {
		bindError(c, err)
		return
	}
	w, err := h.wizards.SetSender(c.Request.Context(), c.Param("sessionID"), in)
	h.respond(c, http.StatusOK, w, err)
}

// setReceiver godoc
// @Summary Enter receiver details
// @Tags wizards
// @Accept json
// @Produce json
// @Param sessionID path string true "Session ID"
// @Param body body wizard.ReceiverInput true "Receiver"
// @Success 200 {object} dto.WizardResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Security BearerAuth
// @Router /wizards/{sessionID}/receiver [put]
func (h *wizardHandler) setReceiver(c *gin.Context) {
	var in wizard.ReceiverInput
	if err := c.ShouldBindJSON(&in); err != nil {
		bindError(c, err)
		return
	}
	w, err := h.wizards.SetReceiver(c.Request.Context(), c.Param("sessionID"), in)
	h.respond(c, http.StatusOK, w, err)
}

// setFee godoc
// @Summary Configure the invoice fee
// @Tags wizards
// @Accept json
// @Produce json
// @Param sessionID path string true "Session ID"
// @Param body body wizard.FeeInput true "Fee configuration"
// @Success 200 {object} dto.WizardResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Security BearerAuth
// @Router /wizards/{sessionID}/fee [put]
func (h *wizardHandler) setFee(c *gin.Context) {
	var in wizard.FeeInput
	if err := c.ShouldBindJSON(&in); err != nil {
		bindError(c, err)
		return
	}
	w, err := h.wizards.SetFee(c.Request.Context(), c.Param("sessionID"), in)
	h.respond(c, http.StatusOK, w, err)
}

// next godoc
// @Summary Move to the next step
// @Description Validates the current step. A missing exchange rate at review answers 422 and the session stays put.
// @Tags wizards
// @Produce json
// @Param sessionID path string true "Session ID"
// @Success 200 {object} dto.WizardResponse
// @Failure 400 {object} ErrorResponse "Step requirements not met"
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse "No exchange rate for the pair"
// @Security BearerAuth
// @Router /wizards/{sessionID}/next [post]
func (h *wizardHandler) next(c *gin.Context) {
	w, err := h.wizards.Next(c.Request.Context(), c.Param("sessionID"))
	if errors.Is(err, apperrors.ErrRateNotFound) {
		middleware.GetLoggerFromCtx(c.Request.Context()).Warn("Wizard step aborted without a rate", slog.String("error", err.Error()))
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: "Exchange rate not available. Please try again."})
		return
	}
	h.respond(c, http.StatusOK, w, err)
}

// back godoc
// @Summary Return to the previous step
// @Tags wizards
// @Produce json
// @Param sessionID path string true "Session ID"
// @Success 200 {object} dto.WizardResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Security BearerAuth
// @Router /wizards/{sessionID}/back [post]
func (h *wizardHandler) back(c *gin.Context) {
	w, err := h.wizards.Back(c.Request.Context(), c.Param("sessionID"))
	h.respond(c, http.StatusOK, w, err)
}
