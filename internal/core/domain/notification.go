package domain

import "time"

const (
	DefaultNotificationTitle = "RJB TRANZ"
	DefaultNotificationBody  = "New transaction update"
	DefaultNotificationTag   = "rjb-tranz-notification"
	DefaultNotificationURL   = "/"
	NotificationIcon         = "https://i.ibb.co/6LY7bxR/rjb-logo.jpg"

	ActionView    = "view"
	ActionDismiss = "dismiss"
)

// NotificationEvent names a transaction event pushed to operators.
type NotificationEvent string

const (
	EventTransactionCreated       NotificationEvent = "created"
	EventTransactionStatusChanged NotificationEvent = "status_changed"
	EventPush                     NotificationEvent = "push"
)

// NotificationAction is a button shown with a system notification.
type NotificationAction struct {
	Action string `json:"action"`
	Title  string `json:"title"`
	Icon   string `json:"icon,omitempty"`
}

// NotificationData is the payload handed back when a notification is clicked.
type NotificationData struct {
	URL           string `json:"url"`
	TransactionID string `json:"transactionId,omitempty"`
	Type          string `json:"type,omitempty"`
}

// Notification is a system notification about a transaction event.
type Notification struct {
	Title              string               `json:"title"`
	Body               string               `json:"body"`
	Icon               string               `json:"icon"`
	Badge              string               `json:"badge"`
	Tag                string               `json:"tag"`
	RequireInteraction bool                 `json:"requireInteraction"`
	Actions            []NotificationAction `json:"actions"`
	Data               NotificationData     `json:"data"`
	Event              NotificationEvent    `json:"event"`
	CreatedAt          time.Time            `json:"createdAt"`
}

// ClickKind is what a client should do after a notification click.
type ClickKind string

const (
	ClickDismiss ClickKind = "dismiss"
	ClickFocus   ClickKind = "focus"
	ClickOpen    ClickKind = "open"
)

// ClickResult is the resolved reaction to a notification click.
type ClickResult struct {
	Kind ClickKind `json:"kind"`
	URL  string    `json:"url,omitempty"`
}
