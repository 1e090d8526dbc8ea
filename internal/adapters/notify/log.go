package notify

import (
	"context"
	"log/slog"

	"github.com/SscSPs/rjb_tranz/internal/core/domain"
	"github.com/SscSPs/rjb_tranz/internal/core/ports/repositories"
)

// LogPublisher only logs notifications. It is used when no broker is configured.
type LogPublisher struct {
	logger *slog.Logger
}

func NewLogPublisher(logger *slog.Logger) *LogPublisher {
	return &LogPublisher{logger: logger}
}

var _ repositories.NotificationPublisher = (*LogPublisher)(nil)

func (p *LogPublisher) Publish(_ context.Context, n domain.Notification) error {
	p.logger.Info("Notification",
		slog.String("event", string(n.Event)),
		slog.String("title", n.Title),
		slog.String("body", n.Body),
		slog.String("transaction_id", n.Data.TransactionID),
	)
	return nil
}

func (p *LogPublisher) Close() error { return nil }
