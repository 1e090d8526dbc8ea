package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/SscSPs/rjb_tranz/internal/apperrors"
	"github.com/SscSPs/rjb_tranz/internal/core/domain"
	portssvc "github.com/SscSPs/rjb_tranz/internal/core/ports/services"
	"github.com/SscSPs/rjb_tranz/internal/dto"
	"github.com/SscSPs/rjb_tranz/internal/middleware"
	"github.com/SscSPs/rjb_tranz/internal/utils"
	"github.com/gin-gonic/gin"
)

// transactionHandler serves finalized transactions and their receipts.
type transactionHandler struct {
	transactions portssvc.TransactionSvcFacade
	receipts     portssvc.ReceiptSvcFacade
	analytics    *utils.PosthogClientWrapper
}

func newTransactionHandler(transactions portssvc.TransactionSvcFacade, receipts portssvc.ReceiptSvcFacade, analytics *utils.PosthogClientWrapper) *transactionHandler {
	return &transactionHandler{transactions: transactions, receipts: receipts, analytics: analytics}
}

// registerTransactionRoutes registers routes related to transactions.
func registerTransactionRoutes(rg *gin.RouterGroup, transactions portssvc.TransactionSvcFacade, receipts portssvc.ReceiptSvcFacade, analytics *utils.PosthogClientWrapper) {
	h := newTransactionHandler(transactions, receipts, analytics)

	tx := rg.Group("/transactions")
	{
		tx.GET("", h.listTransactions)
		tx.GET("/:transactionID", h.getTransaction)
		tx.PATCH("/:transactionID/status", h.updateStatus)
		tx.GET("/:transactionID/receipt", h.getReceipt)
		tx.GET("/:transactionID/receipt.pdf", h.exportReceipt)
	}
}

// listTransactions godoc
// @Summary List transactions
// @Description Newest first, paginated with an opaque token.
// @Tags transactions
// @Produce json
// @Param limit query int false "Page size" default(20) minimum(1) maximum(100)
// @Param nextToken query string false "Token from the previous page"
// @Param status query string false "Filter by status" Enums(pending, completed, failed, cancelled)
// @Success 200 {object} dto.ListTransactionsResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /transactions [get]
func (h *transactionHandler) listTransactions(c *gin.Context) {
	var params dto.ListTransactionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindError(c, err)
		return
	}
	resp, err := h.transactions.ListTransactions(c.Request.Context(), params)
	if err != nil {
		respondError(c, err, "Failed to list transactions")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// getTransaction godoc
// @Summary Get a transaction
// @Tags transactions
// @Produce json
// @Param transactionID path string true "Transaction ID"
// @Success 200 {object} domain.Transaction
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /transactions/{transactionID} [get]
func (h *transactionHandler) getTransaction(c *gin.Context) {
	tx, err := h.transactions.GetTransactionByID(c.Request.Context(), c.Param("transactionID"))
	if err != nil {
		respondError(c, err, "Failed to get transaction")
		return
	}
	c.JSON(http.StatusOK, tx)
}

// updateStatus godoc
// @Summary Change the status of a pending transaction
// @Description Completed, failed and cancelled are final.
// @Tags transactions
// @Accept json
// @Produce json
// @Param transactionID path string true "Transaction ID"
// @Param body body dto.UpdateTransactionStatusRequest true "New status"
// @Success 200 {object} domain.Transaction
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Transaction is not pending"
// @Security BearerAuth
// @Router /transactions/{transactionID}/status [patch]
func (h *transactionHandler) updateStatus(c *gin.Context) {
	var req dto.UpdateTransactionStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	operatorID, _ := middleware.GetUserIDFromContext(c)
	tx, err := h.transactions.UpdateStatus(c.Request.Context(), c.Param("transactionID"), domain.TransactionStatus(req.Status), operatorID)
	if err != nil {
		respondError(c, err, "Failed to update transaction status")
		return
	}
	c.JSON(http.StatusOK, tx)
}

// receiptTarget loads the transaction and the requested direction.
func (h *transactionHandler) receiptTarget(c *gin.Context) (*domain.Transaction, domain.ReceiptDirection, bool) {
	var q dto.ReceiptQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		bindError(c, err)
		return nil, "", false
	}
	tx, err := h.transactions.GetTransactionByID(c.Request.Context(), c.Param("transactionID"))
	if err != nil {
		respondError(c, err, "Failed to get transaction")
		return nil, "", false
	}
	return tx, domain.ReceiptDirection(q.Direction), true
}

// getReceipt godoc
// @Summary Render a receipt
// @Tags transactions
// @Produce json
// @Param transactionID path string true "Transaction ID"
// @Param direction query string false "Perspective" Enums(sent, received) default(sent)
// @Success 200 {object} domain.Receipt
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /transactions/{transactionID}/receipt [get]
func (h *transactionHandler) getReceipt(c *gin.Context) {
	tx, direction, ok := h.receiptTarget(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, h.receipts.Render(*tx, direction))
}

// exportReceipt godoc
// @Summary Download a receipt as PDF
// @Tags transactions
// @Produce application/pdf
// @Param transactionID path string true "Transaction ID"
// @Param direction query string false "Perspective" Enums(sent, received) default(sent)
// @Success 200 {file} file
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse "Export failed, retry"
// @Security BearerAuth
// @Router /transactions/{transactionID}/receipt.pdf [get]
func (h *transactionHandler) exportReceipt(c *gin.Context) {
	tx, direction, ok := h.receiptTarget(c)
	if !ok {
		return
	}
	name, pdf, err := h.receipts.Export(c.Request.Context(), *tx, direction)
	if err != nil {
		logger := middleware.GetLoggerFromCtx(c.Request.Context())
		if errors.Is(err, apperrors.ErrExport) {
			logger.Error("Receipt export failed", slog.String("transaction_id", tx.ID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to export receipt. Please try again."})
			return
		}
		respondError(c, err, "Failed to export receipt")
		return
	}
	middleware.PosthogEvent(c, h.analytics, "receipt_exported", map[string]any{
		"transaction_id": tx.ID,
		"direction":      string(direction),
	})
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	c.Data(http.StatusOK, "application/pdf", pdf)
}
