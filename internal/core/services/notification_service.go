package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/rjb_tranz/internal/core/domain"
	portsrepo "github.com/SscSPs/rjb_tranz/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/rjb_tranz/internal/core/ports/services"
	"github.com/SscSPs/rjb_tranz/internal/utils"
)

// Analytics event names.
const (
	EventNameTransactionCreated       = "transaction_created"
	EventNameTransactionStatusChanged = "transaction_status_changed"
)

// pushPayload is the JSON shape accepted by ParsePushPayload. Every field is optional.
type pushPayload struct {
	Title              string `json:"title"`
	Body               string `json:"body"`
	Tag                string `json:"tag"`
	RequireInteraction bool   `json:"requireInteraction"`
	URL                string `json:"url"`
	TransactionID      string `json:"transactionId"`
	Type               string `json:"type"`
}

type notificationService struct {
	BaseService
	publisher portsrepo.NotificationPublisher
	analytics *utils.PosthogClientWrapper
	now       func() time.Time
}

// NewNotificationService creates the notification service. analytics may be nil.
func NewNotificationService(publisher portsrepo.NotificationPublisher, analytics *utils.PosthogClientWrapper) portssvc.NotificationSvcFacade {
	return &notificationService{publisher: publisher, analytics: analytics, now: time.Now}
}

// buildNotification fills every missing field with its default.
func buildNotification(p pushPayload, event domain.NotificationEvent, at time.Time) domain.Notification {
	n := domain.Notification{
		Title:              p.Title,
		Body:               p.Body,
		Icon:               domain.NotificationIcon,
		Badge:              domain.NotificationIcon,
		Tag:                p.Tag,
		RequireInteraction: p.RequireInteraction,
		Actions: []domain.NotificationAction{
			{Action: domain.ActionView, Title: "View Details", Icon: domain.NotificationIcon},
			{Action: domain.ActionDismiss, Title: "Dismiss"},
		},
		Data: domain.NotificationData{
			URL:           p.URL,
			TransactionID: p.TransactionID,
			Type:          p.Type,
		},
		Event:     event,
		CreatedAt: at,
	}
	if n.Title == "" {
		n.Title = domain.DefaultNotificationTitle
	}
	if n.Body == "" {
		n.Body = domain.DefaultNotificationBody
	}
	if n.Tag == "" {
		n.Tag = domain.DefaultNotificationTag
	}
	if n.Data.URL == "" {
		n.Data.URL = domain.DefaultNotificationURL
	}
	return n
}

// ParsePushPayload accepts a JSON object or plain text. Text that is not JSON becomes
// the body; valid JSON that is not an object yields the defaults.
func (s *notificationService) ParsePushPayload(payload []byte) domain.Notification {
	var p pushPayload
	trimmed := strings.TrimSpace(string(payload))
	if trimmed != "" {
		var probe any
		if err := json.Unmarshal([]byte(trimmed), &probe); err != nil {
			p = pushPayload{Title: domain.DefaultNotificationTitle, Body: trimmed}
		} else if _, isObject := probe.(map[string]any); isObject {
			// type mismatches on individual fields fall back to the defaults of those fields
			_ = json.Unmarshal([]byte(trimmed), &p)
		}
	}
	return buildNotification(p, domain.EventPush, s.now().UTC())
}

// ResolveClick dismisses on the dismiss action, focuses a window already showing url,
// and opens a new window otherwise.
func (s *notificationService) ResolveClick(action, url string, openURLs []string) domain.ClickResult {
	if action == domain.ActionDismiss {
		return domain.ClickResult{Kind: domain.ClickDismiss}
	}
	if url == "" {
		url = domain.DefaultNotificationURL
	}
	for _, open := range openURLs {
		if open == url {
			return domain.ClickResult{Kind: domain.ClickFocus, URL: url}
		}
	}
	return domain.ClickResult{Kind: domain.ClickOpen, URL: url}
}

func (s *notificationService) Notify(ctx context.Context, n domain.Notification) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, n); err != nil {
		s.LogError(ctx, err, "Failed to publish notification",
			slog.String("tag", n.Tag),
			slog.String("event", string(n.Event)))
	}
}

func transactionTag(tx domain.Transaction) string {
	return domain.DefaultNotificationTag + "-" + tx.ID
}

func transactionURL(tx domain.Transaction) string {
	return "/transactions/" + tx.ID
}

func (s *notificationService) TransactionCreated(ctx context.Context, tx domain.Transaction) {
	n := buildNotification(pushPayload{
		Body:          fmt.Sprintf("%s %s %s to %s for %s", transactionVerb(tx), tx.Amount.StringFixed(2), tx.FromCurrency, tx.ToCurrency, tx.ClientName),
		Tag:           transactionTag(tx),
		URL:           transactionURL(tx),
		TransactionID: tx.ID,
		Type:          string(tx.TransactionType),
	}, domain.EventTransactionCreated, s.now().UTC())
	s.Notify(ctx, n)
	s.track(tx.CreatedBy, EventNameTransactionCreated, tx, map[string]any{
		"amount":        tx.Amount.String(),
		"from_currency": tx.FromCurrency,
		"to_currency":   tx.ToCurrency,
		"fee":           tx.Fee.String(),
	})
}

func (s *notificationService) TransactionStatusChanged(ctx context.Context, tx domain.Transaction, previous domain.TransactionStatus) {
	n := buildNotification(pushPayload{
		Body:               fmt.Sprintf("Transaction %s is now %s", tx.FormatID, tx.Status),
		Tag:                transactionTag(tx),
		RequireInteraction: tx.Status == domain.StatusFailed,
		URL:                transactionURL(tx),
		TransactionID:      tx.ID,
		Type:               string(tx.TransactionType),
	}, domain.EventTransactionStatusChanged, s.now().UTC())
	s.Notify(ctx, n)
	s.track(tx.LastUpdatedBy, EventNameTransactionStatusChanged, tx, map[string]any{
		"previous_status": string(previous),
	})
}

func transactionVerb(tx domain.Transaction) string {
	switch tx.TransactionType {
	case domain.TypeReceive:
		return "Received"
	case domain.TypeInvoice:
		return "Invoiced"
	default:
		return "Sent"
	}
}

func (s *notificationService) track(distinctID, event string, tx domain.Transaction, extra map[string]any) {
	if !s.analytics.IsInitialized() {
		return
	}
	props := map[string]any{
		"transaction_id":   tx.ID,
		"transaction_type": string(tx.TransactionType),
		"status":           string(tx.Status),
	}
	for k, v := range extra {
		props[k] = v
	}
	if distinctID == "" {
		distinctID = tx.ID
	}
	s.analytics.Enqueue(distinctID, event, props)
}
