package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// metrics holds the Prometheus instruments for the document server.
type metrics struct {
	documentsPublished prometheus.Counter
	documentRequests   *prometheus.CounterVec
	activeSubscribers  prometheus.Gauge
	broadcastFrames    prometheus.Counter
	websocketErrors    *prometheus.CounterVec
}

func newMetrics(reg prometheus.Registerer) *metrics {
	factory := promauto.With(reg)
	return &metrics{
		documentsPublished: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "domkit",
			Name:      "documents_published_total",
			Help:      "Total number of document versions published",
		}),
		documentRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "domkit",
			Name:      "document_requests_total",
			Help:      "Total HTTP document fetches by status",
		}, []string{"status"}),
		activeSubscribers: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "domkit",
			Name:      "active_subscribers",
			Help:      "Number of live WebSocket subscribers",
		}),
		broadcastFrames: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "domkit",
			Name:      "broadcast_frames_total",
			Help:      "Total document frames broadcast to subscribers",
		}),
		websocketErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "domkit",
			Name:      "websocket_errors_total",
			Help:      "Total WebSocket errors by type",
		}, []string{"type"}),
	}
}
