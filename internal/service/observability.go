package service

import (
	"context"
	"io"
	"log/slog"
)

// logNotifier writes status events as structured log lines.
type logNotifier struct {
	logger *slog.Logger
}

// NewLogNotifier writes session status events to the provided writer.
func NewLogNotifier(w io.Writer) Notifier {
	if w == nil {
		return NoopNotifier{}
	}
	return &logNotifier{
		logger: slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo})),
	}
}

func (n *logNotifier) NotifyStatusChange(ctx context.Context, ev StatusEvent) {
	attrs := []any{
		"session_id", ev.SessionID,
		"user_id", ev.UserID,
		"status", string(ev.Status),
		"at", ev.At,
	}
	if ev.Comment != "" {
		attrs = append(attrs, "comment", ev.Comment)
	}
	n.logger.InfoContext(ctx, "session_status", attrs...)
}
