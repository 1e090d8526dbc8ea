package handlers

import (
	"net/http"

	"github.com/SscSPs/rjb_tranz/internal/core/domain"
	portssvc "github.com/SscSPs/rjb_tranz/internal/core/ports/services"
	"github.com/SscSPs/rjb_tranz/internal/dto"
	"github.com/gin-gonic/gin"
)

// conversionHandler handles the quick-conversion boards.
type conversionHandler struct {
	conversions portssvc.ConversionSvcFacade
}

func newConversionHandler(conversions portssvc.ConversionSvcFacade) *conversionHandler {
	return &conversionHandler{conversions: conversions}
}

// registerConversionRoutes registers routes related to conversion boards.
func registerConversionRoutes(rg *gin.RouterGroup, conversions portssvc.ConversionSvcFacade) {
	h := newConversionHandler(conversions)

	boards := rg.Group("/conversions")
	{
		boards.POST("", h.createBoard)
		boards.GET("/:boardID", h.getBoard)
		boards.POST("/:boardID/pairs", h.addPair)
		boards.PATCH("/:boardID/pairs/:pairID", h.updatePair)
		boards.DELETE("/:boardID/pairs/:pairID", h.removePair)
	}
}

// respondBoard answers with the board evaluated against the current rates.
func (h *conversionHandler) respondBoard(c *gin.Context, status int, board *domain.ConversionBoard) {
	quotes, err := h.conversions.Quotes(c.Request.Context(), board.ID)
	if err != nil {
		respondError(c, err, "Failed to evaluate conversion board")
		return
	}
	c.JSON(status, dto.ConversionBoardResponse{ID: board.ID, CreatedAt: board.CreatedAt, Quotes: quotes})
}

// createBoard godoc
// @Summary Create a conversion board
// @Description Starts a board with the default pairs USD/GHS, USD/NGN and USD/KES.
// @Tags conversions
// @Produce json
// @Success 201 {object} dto.ConversionBoardResponse
// @Security BearerAuth
// @Router /conversions [post]
func (h *conversionHandler) createBoard(c *gin.Context) {
	board, err := h.conversions.CreateBoard(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to create conversion board")
		return
	}
	h.respondBoard(c, http.StatusCreated, board)
}

// getBoard godoc
// @Summary Get a conversion board
// @Description Every pair is quoted against the current rates; pairs without a rate show N/A.
// @Tags conversions
// @Produce json
// @Param boardID path string true "Board ID"
// @Success 200 {object} dto.ConversionBoardResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /conversions/{boardID} [get]
func (h *conversionHandler) getBoard(c *gin.Context) {
	board, err := h.conversions.GetBoard(c.Request.Context(), c.Param("boardID"))
	if err != nil {
		respondError(c, err, "Failed to get conversion board")
		return
	}
	h.respondBoard(c, http.StatusOK, board)
}

// addPair godoc
// @Summary Add a pair to a board
// @Description Omitted fields default to USD, EUR and 1000.
// @Tags conversions
// @Accept json
// @Produce json
// @Param boardID path string true "Board ID"
// @Param pair body dto.AddConversionPairRequest false "Pair"
// @Success 201 {object} dto.ConversionBoardResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /conversions/{boardID}/pairs [post]
func (h *conversionHandler) addPair(c *gin.Context) {
	var req dto.AddConversionPairRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			bindError(c, err)
			return
		}
	}
	board, err := h.conversions.AddPair(c.Request.Context(), c.Param("boardID"), req)
	if err != nil {
		respondError(c, err, "Failed to add conversion pair")
		return
	}
	h.respondBoard(c, http.StatusCreated, board)
}

// updatePair godoc
// @Summary Update a board pair
// @Description Changes the amount or the visibility of a pair.
// @Tags conversions
// @Accept json
// @Produce json
// @Param boardID path string true "Board ID"
// @Param pairID path string true "Pair ID"
// @Param pair body dto.UpdateConversionPairRequest true "Changes"
// @Success 200 {object} dto.ConversionBoardResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /conversions/{boardID}/pairs/{pairID} [patch]
func (h *conversionHandler) updatePair(c *gin.Context) {
	var req dto.UpdateConversionPairRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	board, err := h.conversions.UpdatePair(c.Request.Context(), c.Param("boardID"), c.Param("pairID"), req)
	if err != nil {
		respondError(c, err, "Failed to update conversion pair")
		return
	}
	h.respondBoard(c, http.StatusOK, board)
}

// removePair godoc
// @Summary Remove a board pair
// @Tags conversions
// @Produce json
// @Param boardID path string true "Board ID"
// @Param pairID path string true "Pair ID"
// @Success 200 {object} dto.ConversionBoardResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /conversions/{boardID}/pairs/{pairID} [delete]
func (h *conversionHandler) removePair(c *gin.Context) {
	board, err := h.conversions.RemovePair(c.Request.Context(), c.Param("boardID"), c.Param("pairID"))
	if err != nil {
		respondError(c, err, "Failed to remove conversion pair")
		return
	}
	h.respondBoard(c, http.StatusOK, board)
}
