package dto

import "github.com/SscSPs/rjb_tranz/internal/core/domain"

// NotificationClickRequest describes a click on a system notification.
type NotificationClickRequest struct {
	Action string `json:"action"`
	URL    string `json:"url"`
	// OpenURLs are the URLs of the client windows already open.
	OpenURLs []string `json:"openUrls"`
}

// PushResponse echoes the notification built from a push payload.
type PushResponse struct {
	Notification domain.Notification `json:"notification"`
}
