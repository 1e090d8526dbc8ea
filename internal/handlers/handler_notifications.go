package handlers

import (
	"io"
	"net/http"

	portssvc "github.com/SscSPs/rjb_tranz/internal/core/ports/services"
	"github.com/SscSPs/rjb_tranz/internal/dto"
	"github.com/gin-gonic/gin"
)

// maxPushPayload bounds the push body read into memory.
const maxPushPayload = 64 << 10

type notificationHandler struct {
	notifications portssvc.NotificationSvcFacade
}

// registerNotificationRoutes registers the push and click endpoints.
func registerNotificationRoutes(rg *gin.RouterGroup, notifications portssvc.NotificationSvcFacade) {
	h := &notificationHandler{notifications: notifications}

	n := rg.Group("/notifications")
	{
		n.POST("/push", h.push)
		n.POST("/click", h.click)
	}
}

// push godoc
// @Summary Push a notification
// @Description Accepts a JSON notification or plain text used as the body, fills the defaults and publishes it.
// @Tags notifications
// @Accept json,plain
// @Produce json
// @Success 202 {object} dto.PushResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /notifications/push [post]
func (h *notificationHandler) push(c *gin.Context) {
	payload, err := io.ReadAll(io.LimitReader(c.Request.Body, maxPushPayload))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Failed to read payload"})
		return
	}
	n := h.notifications.ParsePushPayload(payload)
	h.notifications.Notify(c.Request.Context(), n)
	c.JSON(http.StatusAccepted, dto.PushResponse{Notification: n})
}

// click godoc
// @Summary Resolve a notification click
// @Description Dismiss closes it, otherwise an open window with the URL is focused or a new one opened.
// @Tags notifications
// @Accept json
// @Produce json
// @Param body body dto.NotificationClickRequest true "Click"
// @Success 200 {object} domain.ClickResult
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /notifications/click [post]
func (h *notificationHandler) click(c *gin.Context) {
	var req dto.NotificationClickRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.notifications.ResolveClick(req.Action, req.URL, req.OpenURLs))
}
