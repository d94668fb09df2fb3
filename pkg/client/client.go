// Package client subscribes to live Domkit documents over WebSocket.
//
// A Client dials a document server, performs the hello exchange and
// then delivers every received document tree on Updates. Delivery is
// latest-wins: if the consumer lags, older trees are dropped rather
// than queued without bound — each update is a full document, so only
// the newest matters.
package client

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/domkit-dev/domkit/pkg/dom"
	"github.com/domkit-dev/domkit/pkg/protocol"
)

// Client errors.
var (
	ErrRejected = errors.New("client: subscription rejected")
	ErrClosed   = errors.New("client: closed")
)

// Client is a live subscription to one document.
type Client struct {
	conn    *websocket.Conn
	config  *Config
	logger  *slog.Logger
	tracer  trace.Tracer
	updates chan *dom.Tree

	// writeMu serializes data writes: Resync runs on the caller's
	// goroutine while the heartbeat ticks on its own, and the conn
	// allows only one concurrent writer. WriteControl is exempt.
	writeMu sync.Mutex

	mu        sync.Mutex
	err       error // terminal read-loop error
	closeOnce sync.Once
	done      chan struct{}
}

// Dial connects to a live document endpoint (ws://host/live/<name>),
// performs the handshake for the named document and starts receiving.
// A nil config uses defaults.
func Dial(ctx context.Context, url, document string, config *Config) (*Client, error) {
	config = config.withDefaults()

	dialer := websocket.Dialer{HandshakeTimeout: config.HandshakeTimeout}
	conn, _, err := dialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("client: dial %s: %w", url, err)
	}
	conn.SetReadLimit(config.MaxMessageSize)

	c := &Client{
		conn:    conn,
		config:  config,
		logger:  slog.Default().With("component", "client", "document", document),
		tracer:  otel.Tracer(config.TracerName),
		updates: make(chan *dom.Tree, config.UpdateBuffer),
		done:    make(chan struct{}),
	}

	if err := c.handshake(document); err != nil {
		conn.Close()
		return nil, err
	}

	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(config.PongTimeout))
	})

	go c.readLoop()
	go c.pingLoop()
	return c, nil
}

// writeMessage sends one data message under the write lock.
func (c *Client) writeMessage(messageType int, data []byte) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	c.conn.SetWriteDeadline(time.Now().Add(c.config.WriteTimeout))
	return c.conn.WriteMessage(messageType, data)
}

// handshake sends the client hello and validates the server's answer.
func (c *Client) handshake(document string) error {
	hello := protocol.EncodeHello(protocol.NewClientHello(document))
	if err := c.writeMessage(websocket.BinaryMessage, hello.Encode()); err != nil {
		return fmt.Errorf("client: send hello: %w", err)
	}

	c.conn.SetReadDeadline(time.Now().Add(c.config.HandshakeTimeout))
	_, data, err := c.conn.ReadMessage()
	if err != nil {
		return fmt.Errorf("client: read hello: %w", err)
	}
	frame, err := protocol.DecodeFrame(data)
	if err != nil {
		return fmt.Errorf("client: decode hello frame: %w", err)
	}
	if frame.Type != protocol.FrameHello {
		return fmt.Errorf("client: expected hello frame, got %v", frame.Type)
	}
	reply, err := protocol.DecodeHello(frame.Payload)
	if err != nil {
		return err
	}
	if !reply.Accepted {
		return fmt.Errorf("%w: %s", ErrRejected, reply.Reason)
	}
	return nil
}

// Updates delivers received document trees. The channel is closed when
// the connection ends; Err reports why.
func (c *Client) Updates() <-chan *dom.Tree {
	return c.updates
}

// Err returns the terminal error after Updates is closed, or nil for a
// clean close.
func (c *Client) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.err
}

// Resync asks the server to resend the full current document.
func (c *Client) Resync() error {
	select {
	case <-c.done:
		return ErrClosed
	default:
	}
	frame := protocol.EncodeControl(protocol.ControlResync)
	return c.writeMessage(websocket.BinaryMessage, frame.Encode())
}

// Close tears the connection down. Updates is closed shortly after.
func (c *Client) Close() error {
	c.closeOnce.Do(func() {
		close(c.done)
		c.conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			time.Now().Add(c.config.WriteTimeout))
		c.conn.Close()
	})
	return nil
}

// readLoop receives frames until the connection ends.
func (c *Client) readLoop() {
	defer close(c.updates)
	c.conn.SetReadDeadline(time.Now().Add(c.config.PongTimeout))

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			select {
			case <-c.done:
				// Deliberate close, not an error.
			default:
				c.setErr(err)
			}
			return
		}
		c.conn.SetReadDeadline(time.Now().Add(c.config.PongTimeout))

		frame, err := protocol.DecodeFrame(data)
		if err != nil {
			c.logger.Warn("dropping malformed frame", "error", err)
			continue
		}

		switch frame.Type {
		case protocol.FrameDocument:
			c.handleDocument(frame.Payload)

		case protocol.FrameError:
			em, err := protocol.DecodeErrorMessage(frame.Payload)
			if err != nil {
				continue
			}
			c.logger.Warn("server error", "code", em.Code.String(), "message", em.Message)
			if em.Fatal {
				c.setErr(em)
				c.conn.Close()
				return
			}

		case protocol.FrameControl:
			// Pong and friends; nothing to do.
		}
	}
}

// handleDocument decodes a document payload and delivers the tree,
// dropping the oldest pending update when the consumer is behind.
func (c *Client) handleDocument(payload []byte) {
	_, span := c.tracer.Start(context.Background(), "client.document.decode",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attribute.Int("domkit.payload_bytes", len(payload))),
	)
	defer span.End()

	tree, err := protocol.DecodeDocument(payload)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		c.logger.Warn("dropping undecodable document", "error", err)
		return
	}
	span.SetAttributes(attribute.Int("domkit.node_count", tree.Len()))
	span.SetStatus(codes.Ok, "")

	for {
		select {
		case c.updates <- tree:
			return
		default:
			// Consumer is behind: discard the oldest pending tree.
			select {
			case <-c.updates:
			default:
			}
		}
	}
}

// pingLoop keeps the connection alive with WebSocket pings.
func (c *Client) pingLoop() {
	ticker := time.NewTicker(c.config.PingInterval)
	defer ticker.Stop()
	for {
		select {
		case <-c.done:
			return
		case <-ticker.C:
			if err := c.writeMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (c *Client) setErr(err error) {
	c.mu.Lock()
	if c.err == nil {
		c.err = err
	}
	c.mu.Unlock()
}
