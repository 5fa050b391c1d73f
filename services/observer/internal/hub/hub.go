package hub

import (
	"context"
	"sync"

	"github.com/muhammadchandra19/orderbook-observer/pkg/errors"
	"github.com/muhammadchandra19/orderbook-observer/pkg/logger"
	venuev1 "github.com/muhammadchandra19/orderbook-observer/services/observer/internal/domain/venue/v1"
)

const subscriberBuffer = 64

// Hub fans venue changes out to in-process subscribers (websocket clients,
// the sink follower) and, when configured, to a remote notifier.
type Hub struct {
	notifier venuev1.Notifier
	logger   logger.Interface

	mu          sync.RWMutex
	subscribers map[int]chan venuev1.Change
	next        int
	closed      bool
	dropped     int64
}

// New creates a Hub. notifier may be nil.
func New(notifier venuev1.Notifier, logger logger.Interface) *Hub {
	return &Hub{
		notifier:    notifier,
		logger:      logger,
		subscribers: make(map[int]chan venuev1.Change),
	}
}

// Subscribe returns a buffered channel of changes and a function that
// releases it. The channel is closed when the hub stops.
func (h *Hub) Subscribe() (<-chan venuev1.Change, func()) {
	ch := make(chan venuev1.Change, subscriberBuffer)

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		close(ch)
		return ch, func() {}
	}

	id := h.next
	h.next++
	h.subscribers[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			h.mu.Lock()
			defer h.mu.Unlock()
			if sub, ok := h.subscribers[id]; ok {
				delete(h.subscribers, id)
				close(sub)
			}
		})
	}
}

// Subscribers is the number of live subscriptions.
func (h *Hub) Subscribers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscribers)
}

// Dropped is the number of changes not delivered to a slow subscriber.
func (h *Hub) Dropped() int64 {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.dropped
}

// Run broadcasts every change of in until in is closed or ctx is done, then
// closes all subscriptions.
func (h *Hub) Run(ctx context.Context, in <-chan venuev1.Change) {
	defer h.close()

	for {
		select {
		case <-ctx.Done():
			return
		case change, ok := <-in:
			if !ok {
				return
			}
			h.Broadcast(ctx, change)
		}
	}
}

// Broadcast delivers change without blocking on slow subscribers.
func (h *Hub) Broadcast(ctx context.Context, change venuev1.Change) {
	h.mu.Lock()
	for _, ch := range h.subscribers {
		select {
		case ch <- change:
		default:
			h.dropped++
		}
	}
	h.mu.Unlock()

	if h.notifier == nil {
		return
	}
	if err := h.notifier.Notify(ctx, change); err != nil {
		h.logger.WarnContext(ctx, "change notification failed",
			logger.NewField("source", string(change.Source)),
			logger.NewField("error", errors.TracerFromError(err).Error()),
		)
	}
}

func (h *Hub) close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
	for id, ch := range h.subscribers {
		delete(h.subscribers, id)
		close(ch)
	}
}
