package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/rjb_tranz/internal/core/ports/services"
	"github.com/SscSPs/rjb_tranz/internal/dto"
	"github.com/gin-gonic/gin"
)

type settingsHandler struct {
	settings portssvc.SettingsSvcFacade
}

// registerSettingsRoutes registers the operator preference routes.
func registerSettingsRoutes(rg *gin.RouterGroup, settings portssvc.SettingsSvcFacade) {
	h := &settingsHandler{settings: settings}
	rg.GET("/settings", h.getSettings)
	rg.PUT("/settings", h.updateSettings)
}

// getSettings godoc
// @Summary Get operator settings
// @Tags settings
// @Produce json
// @Success 200 {object} domain.AppSettings
// @Security BearerAuth
// @Router /settings [get]
func (h *settingsHandler) getSettings(c *gin.Context) {
	c.JSON(http.StatusOK, h.settings.GetSettings(c.Request.Context()))
}

// updateSettings godoc
// @Summary Update operator settings
// @Description Omitted fields are kept. Refresh changes apply to the rate store immediately.
// @Tags settings
// @Accept json
// @Produce json
// @Param body body dto.UpdateSettingsRequest true "Changes"
// @Success 200 {object} domain.AppSettings
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /settings [put]
func (h *settingsHandler) updateSettings(c *gin.Context) {
	var req dto.UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	settings, err := h.settings.UpdateSettings(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "Failed to update settings")
		return
	}
	c.JSON(http.StatusOK, settings)
}
