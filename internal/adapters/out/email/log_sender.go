package email

import (
	"context"
	"log/slog"

	"optistore/internal/core/domain/model/notification"
)

// LogSender writes rendered messages to the log instead of sending them.
type LogSender struct {
	renderer *Renderer
	logger   *slog.Logger
}

func NewLogSender(renderer *Renderer, logger *slog.Logger) *LogSender {
	return &LogSender{
		renderer: renderer,
		logger:   logger.With("component", "log_email_sender"),
	}
}

func (s *LogSender) Send(ctx context.Context, m *notification.Message) error {
	rendered, err := s.renderer.Render(m)
	if err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "email",
		"to", m.ToEmail(),
		"subject", rendered.Subject,
		"body", rendered.Text,
	)
	return nil
}
