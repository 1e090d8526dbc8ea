package handlers

import (
	"net/http"

	"github.com/SscSPs/rjb_tranz/internal/middleware"
	"github.com/SscSPs/rjb_tranz/internal/refdata"
	"github.com/gin-gonic/gin"
)

// registerReferenceRoutes serves the static reference tables through the response cache.
func registerReferenceRoutes(rg *gin.RouterGroup, cache *middleware.ResponseCache) {
	ref := rg.Group("/reference", middleware.CachePolicy(cache))
	{
		ref.GET("/countries", listCountries)
		ref.GET("/payment-methods", listPaymentMethods)
		ref.GET("/pairs", listPopularPairs)
	}
}

// listCountries godoc
// @Summary List supported countries
// @Description Country and currency reference table with phone codes, flags and symbols.
// @Tags reference
// @Produce json
// @Success 200 {array} domain.Country
// @Router /reference/countries [get]
func listCountries(c *gin.Context) {
	c.JSON(http.StatusOK, refdata.Countries())
}

// listPaymentMethods godoc
// @Summary List payment methods
// @Tags reference
// @Produce json
// @Success 200 {array} domain.PaymentMethod
// @Router /reference/payment-methods [get]
func listPaymentMethods(c *gin.Context) {
	c.JSON(http.StatusOK, refdata.PaymentMethods())
}

// listPopularPairs godoc
// @Summary List popular currency pairs in display order
// @Tags reference
// @Produce json
// @Success 200 {array} string
// @Router /reference/pairs [get]
func listPopularPairs(c *gin.Context) {
	c.JSON(http.StatusOK, refdata.PopularPairs())
}
