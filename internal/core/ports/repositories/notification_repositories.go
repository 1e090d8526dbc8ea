package repositories

import (
	"context"

	"github.com/SscSPs/rjb_tranz/internal/core/domain"
)

// NotificationPublisher delivers notifications to the operator channel.
type NotificationPublisher interface {
	Publish(ctx context.Context, notification domain.Notification) error
	Close() error
}
