package client

import "time"

// Config holds client configuration.
type Config struct {
	// HandshakeTimeout bounds the dial and hello exchange. Default: 10s.
	HandshakeTimeout time.Duration

	// WriteTimeout is the per-message write deadline. Default: 10s.
	WriteTimeout time.Duration

	// PingInterval is the time between keepalive pings. Default: 30s.
	PingInterval time.Duration

	// PongTimeout is the read deadline extension granted per pong or
	// received message. Default: 90 seconds.
	PongTimeout time.Duration

	// MaxMessageSize caps incoming messages. Default: 16MB — documents
	// arrive whole, so this is larger than a typical message cap.
	MaxMessageSize int64

	// UpdateBuffer is the capacity of the Updates channel. Default: 1;
	// delivery is latest-wins either way.
	UpdateBuffer int

	// TracerName names the OpenTelemetry tracer. Default: "domkit".
	TracerName string
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		HandshakeTimeout: 10 * time.Second,
		WriteTimeout:     10 * time.Second,
		PingInterval:     30 * time.Second,
		PongTimeout:      90 * time.Second,
		MaxMessageSize:   16 * 1024 * 1024,
		UpdateBuffer:     1,
		TracerName:       "domkit",
	}
}

// withDefaults fills unset fields in from the defaults.
func (c *Config) withDefaults() *Config {
	if c == nil {
		return DefaultConfig()
	}
	d := DefaultConfig()
	out := *c
	if out.HandshakeTimeout == 0 {
		out.HandshakeTimeout = d.HandshakeTimeout
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
	if out.UpdateBuffer == 0 {
		out.UpdateBuffer = d.UpdateBuffer
	}
	if out.TracerName == "" {
		out.TracerName = d.TracerName
	}
	return &out
}
