// Package event provides the domain event publishing contract and an
// in-process bus implementation.
package event

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	teamModel "github.com/festy23/team_service/internal/team/model"
)

// Publisher receives domain events drained from an aggregate after a
// successful persistence step. Events must be published in emission order.
type Publisher interface {
	Publish(ctx context.Context, ev teamModel.Event) error
}

// Subscriber handles a single published event.
type Subscriber func(ctx context.Context, ev teamModel.Event) error

// Bus is an in-process publisher dispatching events synchronously to
// subscribers registered per event type. It is injected wherever events
// are published; there is no process-wide instance.
type Bus struct {
	mu     sync.RWMutex
	subs   map[teamModel.EventType][]Subscriber
	logger *zap.SugaredLogger
}

// NewBus creates a new event bus instance.
func NewBus(logger *zap.SugaredLogger) *Bus {
	return &Bus{
		subs:   make(map[teamModel.EventType][]Subscriber),
		logger: logger,
	}
}

// Subscribe registers a subscriber for an event type. Subscribers are
// invoked in registration order. Not safe to call concurrently with
// Publish from the same subscriber.
func (b *Bus) Subscribe(t teamModel.EventType, fn Subscriber) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subs[t] = append(b.subs[t], fn)
}

// Publish dispatches the event to all subscribers of its type. The first
// subscriber error aborts the dispatch and is returned to the caller.
func (b *Bus) Publish(ctx context.Context, ev teamModel.Event) error {
	b.mu.RLock()
	subs := b.subs[ev.Type]
	b.mu.RUnlock()

	b.logger.Debugw("publishing domain event",
		"event_id", ev.ID,
		"event_type", ev.Type,
		"team_id", ev.TeamID,
	)

	for _, fn := range subs {
		if err := fn(ctx, ev); err != nil {
			return fmt.Errorf("subscriber failed for %s: %w", ev.Type, err)
		}
	}
	return nil
}
