package handlers

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/SscSPs/rjb_tranz/internal/apperrors"
	"github.com/SscSPs/rjb_tranz/internal/core/domain"
	portssvc "github.com/SscSPs/rjb_tranz/internal/core/ports/services"
	"github.com/SscSPs/rjb_tranz/internal/dto"
	"github.com/SscSPs/rjb_tranz/internal/middleware"
	"github.com/SscSPs/rjb_tranz/internal/utils/conversion"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// rateHandler handles HTTP requests related to exchange rates.
type rateHandler struct {
	rates portssvc.RateStoreSvcFacade
}

func newRateHandler(rates portssvc.RateStoreSvcFacade) *rateHandler {
	return &rateHandler{rates: rates}
}

// registerRateRoutes registers the public rate reads.
func registerRateRoutes(rg *gin.RouterGroup, rates portssvc.RateStoreSvcFacade) {
	h := newRateHandler(rates)

	r := rg.Group("/rates")
	{
		r.GET("", h.listRates)
		r.GET("/status", h.getStatus)
		r.GET("/history/:base/:quote", h.getHistory)
		r.GET("/:base/:quote", h.getPairRate)
		r.GET("/:base/:quote/quote", h.getQuote)
	}
}

// registerRateOperatorRoutes registers the rate controls that need an operator.
func registerRateOperatorRoutes(rg *gin.RouterGroup, rates portssvc.RateStoreSvcFacade) {
	h := newRateHandler(rates)
	rg.POST("/rates/refresh", h.refresh)
}

// pairParams reads and checks the :base and :quote path parameters.
func pairParams(c *gin.Context) (string, string, bool) {
	base := strings.ToUpper(c.Param("base"))
	quote := strings.ToUpper(c.Param("quote"))
	if len(base) != 3 || len(quote) != 3 {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Currency codes must be 3 letters"})
		return "", "", false
	}
	return base, quote, true
}

// listRates godoc
// @Summary Current exchange rates
// @Description Returns the last published rate set together with the refresh status.
// @Tags rates
// @Produce json
// @Success 200 {object} dto.RatesResponse
// @Router /rates [get]
func (h *rateHandler) listRates(c *gin.Context) {
	c.JSON(http.StatusOK, dto.ToRatesResponse(h.rates.Current(), h.rates.Status()))
}

// getStatus godoc
// @Summary Rate refresh status
// @Tags rates
// @Produce json
// @Success 200 {object} domain.RateStatus
// @Router /rates/status [get]
func (h *rateHandler) getStatus(c *gin.Context) {
	c.JSON(http.StatusOK, h.rates.Status())
}

// getPairRate godoc
// @Summary Rate between two currencies
// @Description Resolves a direct, inverse or cross rate between two currencies.
// @Tags rates
// @Produce json
// @Param base path string true "Base currency (3 letters)" MinLength(3) MaxLength(3)
// @Param quote path string true "Quote currency (3 letters)" MinLength(3) MaxLength(3)
// @Success 200 {object} dto.PairRateResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /rates/{base}/{quote} [get]
func (h *rateHandler) getPairRate(c *gin.Context) {
	base, quote, ok := pairParams(c)
	if !ok {
		return
	}
	rate, err := h.rates.LookupRate(base, quote)
	if err != nil {
		respondError(c, err, "Failed to resolve exchange rate")
		return
	}
	resp := dto.PairRateResponse{
		From:          base,
		To:            quote,
		Rate:          rate.Rate,
		Change:        rate.Change,
		ChangePercent: rate.ChangePercent,
		LastUpdated:   rate.LastUpdated,
	}
	if rate.Rate.IsPositive() {
		resp.InverseRate = decimal.NewFromInt(1).Div(rate.Rate)
	}
	c.JSON(http.StatusOK, resp)
}

// getQuote godoc
// @Summary Fee-aware conversion quote
// @Description Evaluates an amount against the market rate after deducting a percent fee.
// @Tags rates
// @Produce json
// @Param base path string true "Base currency (3 letters)"
// @Param quote path string true "Quote currency (3 letters)"
// @Param amount query string true "Amount in the base currency"
// @Param feeRate query string false "Fee in percent"
// @Success 200 {object} conversion.Quote
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /rates/{base}/{quote}/quote [get]
func (h *rateHandler) getQuote(c *gin.Context) {
	base, quote, ok := pairParams(c)
	if !ok {
		return
	}
	amount, err := decimal.NewFromString(c.Query("amount"))
	if err != nil || amount.IsNegative() {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "amount must be a non-negative number"})
		return
	}
	q := dto.QuoteQuery{Amount: amount}
	if raw := c.Query("feeRate"); raw != "" {
		fee, err := decimal.NewFromString(raw)
		if err != nil || fee.IsNegative() || fee.GreaterThanOrEqual(decimal.NewFromInt(100)) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "feeRate must be in [0, 100)"})
			return
		}
		q.FeeRate = fee
	}
	rate, found := h.rates.FindRate(base, quote)
	if !found {
		respondError(c, fmt.Errorf("%w: %s", apperrors.ErrRateNotFound, domain.NewPair(base, quote)), "Failed to resolve exchange rate")
		return
	}
	c.JSON(http.StatusOK, conversion.NewQuote(q.Amount, q.FeeRate, rate))
}

// getHistory godoc
// @Summary Daily rate history
// @Description Synthetic daily history ending today, one point per day plus today.
// @Tags rates
// @Produce json
// @Param base path string true "Base currency (3 letters)"
// @Param quote path string true "Quote currency (3 letters)"
// @Param days query int false "Number of days" default(7) minimum(1) maximum(365)
// @Success 200 {object} dto.HistoryResponse
// @Failure 400 {object} ErrorResponse
// @Router /rates/history/{base}/{quote} [get]
func (h *rateHandler) getHistory(c *gin.Context) {
	base, quote, ok := pairParams(c)
	if !ok {
		return
	}
	var q dto.HistoryQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		bindError(c, err)
		return
	}
	pair := domain.NewPair(base, quote)
	points, err := h.rates.Historical(c.Request.Context(), pair, q.Days)
	if err != nil {
		respondError(c, err, "Failed to build rate history")
		return
	}
	c.JSON(http.StatusOK, dto.HistoryResponse{Pair: pair, Points: points})
}

// refresh godoc
// @Summary Refresh exchange rates now
// @Description Fetches a new rate set. Concurrent refreshes share one fetch.
// @Tags rates
// @Produce json
// @Success 200 {object} dto.RatesResponse
// @Failure 502 {object} ErrorResponse "Rate source unavailable"
// @Security BearerAuth
// @Router /rates/refresh [post]
func (h *rateHandler) refresh(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	set, err := h.rates.Refresh(c.Request.Context())
	if err != nil {
		logger.Warn("Manual rate refresh failed", slog.String("error", err.Error()))
		msg := h.rates.Status().Message
		if msg == "" {
			msg = "Failed to refresh exchange rates"
		}
		c.JSON(apperrors.HTTPStatus(err), ErrorResponse{Error: msg})
		return
	}
	logger.Info("Manual rate refresh", slog.Uint64("generation", set.Generation), slog.String("source", string(set.Source)))
	c.JSON(http.StatusOK, dto.ToRatesResponse(set, h.rates.Status()))
}
