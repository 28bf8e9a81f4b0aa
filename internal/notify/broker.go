// Package notify fans session status events out to in-process listeners.
// Delivery is best-effort: a subscriber that stops draining its channel
// loses events instead of stalling the mutation path.
package notify

import (
	"context"
	"sync"

	"github.com/toad-frogski/visits/internal/service"
)

const subscriberBuffer = 16

// Broker implements service.Notifier over per-subscriber channels.
type Broker struct {
	mu   sync.RWMutex
	subs map[int]chan service.StatusEvent
	next int
}

// NewBroker creates an empty broker.
func NewBroker() *Broker {
	return &Broker{subs: make(map[int]chan service.StatusEvent)}
}

// Subscribe registers a listener and returns its event channel plus an
// unsubscribe func. The channel is closed on unsubscribe.
func (b *Broker) Subscribe() (<-chan service.StatusEvent, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.next
	b.next++
	ch := make(chan service.StatusEvent, subscriberBuffer)
	b.subs[id] = ch

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			delete(b.subs, id)
			close(ch)
		})
	}
	return ch, cancel
}

// NotifyStatusChange delivers the event to every subscriber without
// blocking; full subscriber buffers drop the event.
func (b *Broker) NotifyStatusChange(_ context.Context, ev service.StatusEvent) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for _, ch := range b.subs {
		select {
		case ch <- ev:
		default:
		}
	}
}

var _ service.Notifier = (*Broker)(nil)
