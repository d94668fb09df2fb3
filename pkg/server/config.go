package server

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Config holds the server configuration.
type Config struct {
	// Address is the listen address. Default: ":8090".
	Address string

	// ReadBufferSize is the WebSocket read buffer size. Default: 4KB.
	ReadBufferSize int

	// WriteBufferSize is the WebSocket write buffer size. Default: 4KB.
	WriteBufferSize int

	// CheckOrigin validates the Origin header on WebSocket upgrades.
	// Default: same-host check.
	CheckOrigin func(r *http.Request) bool

	// WriteTimeout is the per-message WebSocket write deadline.
	// Default: 10 seconds.
	WriteTimeout time.Duration

	// PingInterval is the time between WebSocket pings. Default: 30s.
	PingInterval time.Duration

	// PongTimeout is how long to wait for a pong before dropping the
	// subscriber. Default: 60 seconds.
	PongTimeout time.Duration

	// MaxMessageSize caps incoming WebSocket messages. Default: 64KB.
	MaxMessageSize int64

	// SendQueueSize is the per-subscriber outgoing frame buffer.
	// A subscriber that falls this far behind is dropped. Default: 16.
	SendQueueSize int

	// ShutdownTimeout bounds graceful shutdown. Default: 10 seconds.
	ShutdownTimeout time.Duration

	// Registry is the Prometheus registry for server metrics.
	// Default: prometheus.DefaultRegisterer.
	Registry prometheus.Registerer
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Address:         ":8090",
		ReadBufferSize:  4096,
		WriteBufferSize: 4096,
		CheckOrigin:     sameHostOrigin,
		WriteTimeout:    10 * time.Second,
		PingInterval:    30 * time.Second,
		PongTimeout:     60 * time.Second,
		MaxMessageSize:  64 * 1024,
		SendQueueSize:   16,
		ShutdownTimeout: 10 * time.Second,
		Registry:        prometheus.DefaultRegisterer,
	}
}

// withDefaults fills unset fields in from the defaults.
func (c *Config) withDefaults() *Config {
	if c == nil {
		return DefaultConfig()
	}
	d := DefaultConfig()
	out := *c
	if out.Address == "" {
		out.Address = d.Address
	}
	if out.ReadBufferSize == 0 {
		out.ReadBufferSize = d.ReadBufferSize
	}
	if out.WriteBufferSize == 0 {
		out.WriteBufferSize = d.WriteBufferSize
	}
	if out.CheckOrigin == nil {
		out.CheckOrigin = d.CheckOrigin
	}
	if out.WriteTimeout == 0 {
		out.WriteTimeout = d.WriteTimeout
	}
	if out.PingInterval == 0 {
		out.PingInterval = d.PingInterval
	}
	if out.PongTimeout == 0 {
		out.PongTimeout = d.PongTimeout
	}
	if out.MaxMessageSize == 0 {
		out.MaxMessageSize = d.MaxMessageSize
	}
	if out.SendQueueSize == 0 {
		out.SendQueueSize = d.SendQueueSize
	}
	if out.ShutdownTimeout == 0 {
		out.ShutdownTimeout = d.ShutdownTimeout
	}
	if out.Registry == nil {
		out.Registry = d.Registry
	}
	return &out
}

// sameHostOrigin accepts requests with no Origin header or an Origin
// matching the request host.
func sameHostOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	u, err := parseOriginHost(origin)
	if err != nil {
		return false
	}
	return u == r.Host
}
