package publish

import (
	"context"
	"encoding/json"
	"io"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/autotype/pkg/observability"
	"github.com/matzehuels/autotype/pkg/record"
)

// DefaultBuffer is the number of snapshots queued per subscriber before
// further snapshots are dropped for it.
const DefaultBuffer = 16

// Hub stores the latest snapshot and broadcasts every published snapshot to
// its subscribers. It is safe for concurrent use.
type Hub struct {
	mu          sync.RWMutex
	latest      []byte
	subscribers map[string]chan []byte
	buffer      int
	logger      *log.Logger
}

// HubOption configures a [Hub].
type HubOption func(*Hub)

// WithBuffer sets the per-subscriber queue length.
func WithBuffer(n int) HubOption {
	return func(h *Hub) {
		if n > 0 {
			h.buffer = n
		}
	}
}

// WithHubLogger sets the logger used for drop and subscription events.
func WithHubLogger(l *log.Logger) HubOption {
	return func(h *Hub) {
		if l != nil {
			h.logger = l
		}
	}
}

// NewHub creates an empty hub.
func NewHub(opts ...HubOption) *Hub {
	h := &Hub{
		subscribers: make(map[string]chan []byte),
		buffer:      DefaultBuffer,
		logger:      log.NewWithOptions(io.Discard, log.Options{}),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Publish encodes snap, stores it as the latest snapshot and queues it for
// every subscriber. It never blocks on a subscriber.
func (h *Hub) Publish(ctx context.Context, snap *record.Record) error {
	data, err := json.Marshal(snap)
	observability.Stream().OnPublish(ctx, "hub", len(data), err)
	if err != nil {
		return err
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	h.latest = data
	for id, ch := range h.subscribers {
		select {
		case ch <- data:
		default:
			h.logger.Debug("subscriber buffer full, dropping snapshot", "subscriber", id)
			observability.Stream().OnDrop(ctx)
		}
	}
	return nil
}

// Latest returns the most recent snapshot as JSON, or nil if nothing has
// been published yet. The returned slice must not be modified.
func (h *Hub) Latest() []byte {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.latest
}

// Subscribe registers a new subscriber. The latest snapshot, if any, is
// queued immediately. The returned cancel function unregisters the
// subscriber and closes its channel; it is safe to call more than once.
func (h *Hub) Subscribe(ctx context.Context) (id string, snapshots <-chan []byte, cancel func()) {
	id = uuid.NewString()
	ch := make(chan []byte, h.buffer)

	h.mu.Lock()
	if h.latest != nil {
		ch <- h.latest
	}
	h.subscribers[id] = ch
	n := len(h.subscribers)
	h.mu.Unlock()

	h.logger.Debug("subscriber connected", "subscriber", id, "subscribers", n)
	observability.Stream().OnSubscribe(ctx, n)

	var once sync.Once
	return id, ch, func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.subscribers, id)
			close(ch)
			n := len(h.subscribers)
			h.mu.Unlock()

			h.logger.Debug("subscriber disconnected", "subscriber", id, "subscribers", n)
			observability.Stream().OnUnsubscribe(ctx, n)
		})
	}
}

// Subscribers returns the number of live subscribers.
func (h *Hub) Subscribers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscribers)
}
