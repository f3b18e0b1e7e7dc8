package ports

import (
	"context"

	"optistore/internal/core/domain/model/kernel"
	"optistore/internal/core/domain/model/notification"
)

// EventPublisher receives domain events after the transaction that raised them committed.
type EventPublisher interface {
	Publish(ctx context.Context, event kernel.DomainEvent) error
}

// NotificationOutbox stores messages until the dispatcher sends them.
type NotificationOutbox interface {
	Add(ctx context.Context, messages ...*notification.Message) error

	// GetPending returns up to limit pending messages, oldest first. Inside a
	// transaction the returned rows are locked and skipped by concurrent callers.
	GetPending(ctx context.Context, limit int) ([]*notification.Message, error)

	Update(ctx context.Context, message *notification.Message) error
}

// EmailSender renders and delivers one message.
type EmailSender interface {
	Send(ctx context.Context, message *notification.Message) error
}
