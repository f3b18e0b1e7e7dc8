package commands

import (
	"context"
	"log/slog"
	"time"

	"optistore/internal/core/domain/model/notification"
	"optistore/internal/core/ports"
)

// DispatchResult summarizes one dispatcher run.
type DispatchResult struct {
	Sent   int
	Failed int
}

// DispatchNotificationsCommandHandler sends pending outbox messages by email.
//
// A failed send never aborts the batch: the error is recorded on the message,
// which is retried on later runs until it runs out of attempts. Each message's
// new state is committed on its own right after the send, so no transaction is
// open while the mail provider is called. Runs must not overlap; the dispatch
// job skips a tick while the previous run is still going.
type DispatchNotificationsCommandHandler struct {
	uowFactory OutboxUoWFactory
	sender     ports.EmailSender
	logger     *slog.Logger
}

func NewDispatchNotificationsCommandHandler(
	uowFactory OutboxUoWFactory,
	sender ports.EmailSender,
	logger *slog.Logger,
) DispatchNotificationsCommandHandler {
	return DispatchNotificationsCommandHandler{
		uowFactory: uowFactory,
		sender:     sender,
		logger:     logger.With("component", "notification_dispatcher"),
	}
}

func (h *DispatchNotificationsCommandHandler) Handle(
	ctx context.Context,
	cmd DispatchNotificationsCommand,
) (DispatchResult, error) {
	var result DispatchResult

	if err := cmd.Validate(); err != nil {
		return result, err
	}

	messages, err := h.pending(ctx, cmd.BatchSize())
	if err != nil {
		return result, err
	}

	for _, m := range messages {
		if sendErr := h.sender.Send(ctx, m); sendErr != nil {
			m.MarkAttemptFailed(sendErr)
			result.Failed++
			h.logger.WarnContext(ctx, "failed to send notification",
				"message_id", m.ID().String(),
				"kind", string(m.Kind()),
				"attempts", m.Attempts(),
				"error", sendErr,
			)
		} else {
			m.MarkSent(time.Now().UTC())
			result.Sent++
		}

		if err = h.record(ctx, m); err != nil {
			return result, err
		}
	}

	return result, nil
}

func (h *DispatchNotificationsCommandHandler) pending(
	ctx context.Context,
	batchSize int,
) ([]*notification.Message, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	messages, err := uow.NotificationOutbox().GetPending(ctx, batchSize)
	if err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return messages, nil
}

func (h *DispatchNotificationsCommandHandler) record(ctx context.Context, m *notification.Message) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := uow.NotificationOutbox().Update(ctx, m); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
