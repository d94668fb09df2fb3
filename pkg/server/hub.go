package server

import (
	"log/slog"
	"sync"
)

// subscriber is one live WebSocket connection waiting for updates to a
// single document. Frames are queued on send; the connection's write
// loop drains it.
type subscriber struct {
	document string
	send     chan []byte
	once     sync.Once
}

// close shuts the send channel exactly once. The write loop exits when
// the channel drains.
func (s *subscriber) close() {
	s.once.Do(func() { close(s.send) })
}

// hub fans published document frames out to subscribers, keyed by
// document name.
type hub struct {
	mu      sync.RWMutex
	subs    map[string]map[*subscriber]struct{}
	logger  *slog.Logger
	metrics *metrics
}

func newHub(logger *slog.Logger, m *metrics) *hub {
	return &hub{
		subs:    make(map[string]map[*subscriber]struct{}),
		logger:  logger,
		metrics: m,
	}
}

func (h *hub) subscribe(sub *subscriber) {
	h.mu.Lock()
	set, ok := h.subs[sub.document]
	if !ok {
		set = make(map[*subscriber]struct{})
		h.subs[sub.document] = set
	}
	set[sub] = struct{}{}
	h.mu.Unlock()
	h.metrics.activeSubscribers.Inc()
}

func (h *hub) unsubscribe(sub *subscriber) {
	h.mu.Lock()
	set, ok := h.subs[sub.document]
	if ok {
		if _, member := set[sub]; member {
			delete(set, sub)
			if len(set) == 0 {
				delete(h.subs, sub.document)
			}
			h.metrics.activeSubscribers.Dec()
		}
	}
	h.mu.Unlock()
	sub.close()
}

// broadcast queues frame for every subscriber of document. Subscribers
// whose queue is full are dropped rather than allowed to stall the
// publisher.
func (h *hub) broadcast(document string, frame []byte) {
	h.mu.RLock()
	var stalled []*subscriber
	for sub := range h.subs[document] {
		select {
		case sub.send <- frame:
			h.metrics.broadcastFrames.Inc()
		default:
			stalled = append(stalled, sub)
		}
	}
	h.mu.RUnlock()

	for _, sub := range stalled {
		h.logger.Warn("dropping slow subscriber", "document", document)
		h.metrics.websocketErrors.WithLabelValues("slow_subscriber").Inc()
		h.unsubscribe(sub)
	}
}

// subscriberCount reports the live subscriber count for a document.
func (h *hub) subscriberCount(document string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs[document])
}
