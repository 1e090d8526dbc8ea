package services

import (
	"context"

	"github.com/SscSPs/rjb_tranz/internal/core/domain"
)

// NotificationSvcFacade builds and delivers operator notifications.
type NotificationSvcFacade interface {
	// ParsePushPayload builds a notification from a JSON or plain-text push body.
	ParsePushPayload(payload []byte) domain.Notification
	// ResolveClick decides how a client reacts to a click given its open window URLs.
	ResolveClick(action, url string, openURLs []string) domain.ClickResult
	// Notify publishes a notification; delivery failures are logged, never returned.
	Notify(ctx context.Context, n domain.Notification)
	// TransactionCreated and TransactionStatusChanged announce transaction events.
	TransactionCreated(ctx context.Context, tx domain.Transaction)
	TransactionStatusChanged(ctx context.Context, tx domain.Transaction, previous domain.TransactionStatus)
}
