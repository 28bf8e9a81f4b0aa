package service

import (
	"context"
	"time"

	"github.com/toad-frogski/visits/internal/domain"
)

// StatusEvent describes a possibly-changed session status after a
// committed mutation. Events are dispatched post-commit and best-effort:
// a slow or failing consumer never blocks or fails the mutation that
// produced the event.
type StatusEvent struct {
	SessionID string
	UserID    string
	Status    domain.SessionStatus
	Comment   string
	At        time.Time
}

// Notifier receives post-commit status events.
type Notifier interface {
	NotifyStatusChange(ctx context.Context, ev StatusEvent)
}

// NoopNotifier ignores all events.
type NoopNotifier struct{}

func (NoopNotifier) NotifyStatusChange(context.Context, StatusEvent) {}

// MultiNotifier fans one event out to several notifiers in order.
type MultiNotifier []Notifier

func (m MultiNotifier) NotifyStatusChange(ctx context.Context, ev StatusEvent) {
	for _, n := range m {
		n.NotifyStatusChange(ctx, ev)
	}
}
