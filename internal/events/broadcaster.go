package events

import (
	"context"
	"log/slog"
	"sync"

	"github.com/obeng-labs/agencyledger/internal/obs"
)

// Broadcaster fans events out to all active subscribers (SSE dashboard
// clients). Publish never blocks: a subscriber whose buffer is full misses the
// event, which is acceptable for a live dashboard feed.
type Broadcaster struct {
	mu     sync.RWMutex
	subs   map[int]subscriber
	next   int
	logger *slog.Logger
}

type subscriber struct {
	companyID string
	ch        chan Event
}

// NewBroadcaster initialises an empty broadcaster.
func NewBroadcaster(logger *slog.Logger) *Broadcaster {
	if logger == nil {
		logger = slog.Default()
	}
	return &Broadcaster{
		subs:   make(map[int]subscriber),
		logger: logger,
	}
}

var _ Publisher = (*Broadcaster)(nil)

// Subscribe registers a subscriber for one company's events and returns the
// channel events arrive on. The channel is closed when ctx ends.
func (b *Broadcaster) Subscribe(ctx context.Context, companyID string) <-chan Event {
	ch := make(chan Event, 16)

	b.mu.Lock()
	id := b.next
	b.next++
	b.subs[id] = subscriber{companyID: companyID, ch: ch}
	b.mu.Unlock()

	go func() {
		<-ctx.Done()
		b.mu.Lock()
		delete(b.subs, id)
		close(ch)
		b.mu.Unlock()
	}()

	return ch
}

// Publish fans the event out to every subscriber of its company. Slow
// subscribers are skipped rather than waited on.
func (b *Broadcaster) Publish(evt Event) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	obs.EventsEmitted.WithLabelValues(string(evt.Type)).Inc()

	for _, sub := range b.subs {
		if sub.companyID != evt.CompanyID {
			continue
		}
		select {
		case sub.ch <- evt:
		default:
			b.logger.Warn("event subscriber buffer full, dropping event",
				slog.String("event_id", evt.ID),
				slog.String("event_type", string(evt.Type)))
		}
	}
}

// SubscriberCount reports the number of active subscribers, for diagnostics.
func (b *Broadcaster) SubscriberCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}
