// Package eventhandlers reacts to domain events published after a unit of work commits.
package eventhandlers

import (
	"context"
	"time"

	"optistore/internal/core/domain/model/kernel"
	"optistore/internal/core/domain/model/notification"
	"optistore/internal/core/ports"
)

// OrderNotificationHandler queues the emails that order events call for.
// It implements ports.EventPublisher.
type OrderNotificationHandler struct {
	outbox ports.NotificationOutbox
}

func NewOrderNotificationHandler(outbox ports.NotificationOutbox) *OrderNotificationHandler {
	return &OrderNotificationHandler{outbox: outbox}
}

func (h *OrderNotificationHandler) Publish(ctx context.Context, event kernel.DomainEvent) error {
	messages, err := notification.Compose(event, time.Now().UTC())
	if err != nil {
		return err
	}
	if len(messages) == 0 {
		return nil
	}
	return h.outbox.Add(ctx, messages...)
}
