package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/domkit-dev/domkit/pkg/protocol"
)

// Server exposes a Store over HTTP and WebSocket.
type Server struct {
	store    *Store
	hub      *hub
	config   *Config
	upgrader websocket.Upgrader
	metrics  *metrics
	logger   *slog.Logger

	httpServer *http.Server
}

// New creates a server over store. A nil config uses defaults.
func New(store *Store, config *Config) *Server {
	config = config.withDefaults()
	logger := slog.Default().With("component", "server")
	m := newMetrics(config.Registry)

	s := &Server{
		store:   store,
		hub:     newHub(logger, m),
		config:  config,
		metrics: m,
		logger:  logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  config.ReadBufferSize,
			WriteBufferSize: config.WriteBufferSize,
			CheckOrigin:     config.CheckOrigin,
		},
	}

	// Every publish fans out to the document's subscribers.
	store.setOnPublish(func(doc *Document) {
		m.documentsPublished.Inc()
		s.hub.broadcast(doc.Name, protocol.DocumentFrame(doc.Payload).Encode())
	})
	return s
}

// Handler returns the chi router for the server.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Get("/healthz", s.handleHealth)
	r.Get("/metrics", promhttp.Handler().ServeHTTP)
	r.Get("/documents", s.handleList)
	r.Get("/documents/{name}", s.handleGet)
	r.Get("/live/{name}", s.handleLive)
	return r
}

// ListenAndServe runs the server until ctx is cancelled, then shuts
// down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	s.httpServer = &http.Server{
		Addr:              s.config.Address,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", s.config.Address)
		errc <- s.httpServer.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
		defer cancel()
		s.logger.Info("shutting down")
		return s.httpServer.Shutdown(shutdownCtx)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

// documentInfo is the listing representation of a document.
type documentInfo struct {
	Name        string    `json:"name"`
	Nodes       int       `json:"nodes"`
	Version     uint64    `json:"version"`
	Subscribers int       `json:"subscribers"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	docs := s.store.List()
	infos := make([]documentInfo, 0, len(docs))
	for _, doc := range docs {
		infos = append(infos, documentInfo{
			Name:        doc.Name,
			Nodes:       doc.Nodes,
			Version:     doc.Version,
			Subscribers: s.hub.subscriberCount(doc.Name),
			UpdatedAt:   doc.UpdatedAt,
		})
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(infos)
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	doc, err := s.store.Get(name)
	if err != nil {
		s.metrics.documentRequests.WithLabelValues("not_found").Inc()
		http.Error(w, "document not found", http.StatusNotFound)
		return
	}
	s.metrics.documentRequests.WithLabelValues("ok").Inc()
	w.Header().Set("Content-Type", "application/octet-stream")
	w.Write(doc.Payload)
}

// handleLive upgrades to WebSocket, performs the hello exchange and
// streams document frames until the client goes away.
func (s *Server) handleLive(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.metrics.websocketErrors.WithLabelValues("upgrade").Inc()
		s.logger.Warn("websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()
	conn.SetReadLimit(s.config.MaxMessageSize)

	// A peer that answers neither pings nor messages within PongTimeout
	// is dead; the expiring read deadline unblocks the read loop.
	conn.SetReadDeadline(time.Now().Add(s.config.PongTimeout))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(s.config.PongTimeout))
	})

	if err := s.handshake(conn, name); err != nil {
		s.logger.Debug("handshake rejected", "document", name, "error", err)
		return
	}

	sub := &subscriber{
		document: name,
		send:     make(chan []byte, s.config.SendQueueSize),
	}
	s.hub.subscribe(sub)
	defer s.hub.unsubscribe(sub)

	// Initial snapshot so the subscriber has a tree before any update.
	if doc, err := s.store.Get(name); err == nil {
		sub.send <- protocol.DocumentFrame(doc.Payload).Encode()
	}

	go s.readLoop(conn, sub)
	s.writeLoop(conn, sub)
}

// handshake reads the client hello and answers it. An unknown document
// name is rejected but the handshake frame itself is still answered.
func (s *Server) handshake(conn *websocket.Conn, name string) error {
	_, data, err := conn.ReadMessage()
	if err != nil {
		return err
	}
	frame, err := protocol.DecodeFrame(data)
	if err != nil || frame.Type != protocol.FrameHello {
		s.metrics.websocketErrors.WithLabelValues("bad_handshake").Inc()
		return errors.New("server: expected hello frame")
	}
	hello, err := protocol.DecodeHello(frame.Payload)
	if err != nil {
		return err
	}

	accepted := true
	reason := ""
	if hello.Version != protocol.ProtocolVersion {
		accepted, reason = false, "unsupported protocol version"
	} else if _, err := s.store.Get(name); err != nil {
		accepted, reason = false, "no such document"
	}

	reply := protocol.EncodeHello(protocol.NewServerHello(name, accepted, reason))
	conn.SetWriteDeadline(time.Now().Add(s.config.WriteTimeout))
	if err := conn.WriteMessage(websocket.BinaryMessage, reply.Encode()); err != nil {
		return err
	}
	if !accepted {
		return errors.New("server: " + reason)
	}
	return nil
}

// readLoop consumes client frames. A resync request requeues the
// current document; anything else only keeps the connection alive.
func (s *Server) readLoop(conn *websocket.Conn, sub *subscriber) {
	defer s.hub.unsubscribe(sub)
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.metrics.websocketErrors.WithLabelValues("read").Inc()
			}
			return
		}
		conn.SetReadDeadline(time.Now().Add(s.config.PongTimeout))
		frame, err := protocol.DecodeFrame(data)
		if err != nil {
			s.metrics.websocketErrors.WithLabelValues("bad_frame").Inc()
			continue
		}
		if frame.Type != protocol.FrameControl {
			continue
		}
		code, err := protocol.DecodeControl(frame.Payload)
		if err != nil {
			continue
		}
		switch code {
		case protocol.ControlPing:
			select {
			case sub.send <- protocol.EncodeControl(protocol.ControlPong).Encode():
			default:
			}
		case protocol.ControlResync:
			if doc, err := s.store.Get(sub.document); err == nil {
				select {
				case sub.send <- protocol.DocumentFrame(doc.Payload).Encode():
				default:
				}
			}
		}
	}
}

// writeLoop drains the subscriber queue and keeps the connection alive
// with pings. Returns when the queue is closed or a write fails.
func (s *Server) writeLoop(conn *websocket.Conn, sub *subscriber) {
	ticker := time.NewTicker(s.config.PingInterval)
	defer ticker.Stop()

	for {
		select {
		case frame, ok := <-sub.send:
			if !ok {
				conn.WriteControl(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
					time.Now().Add(s.config.WriteTimeout))
				return
			}
			conn.SetWriteDeadline(time.Now().Add(s.config.WriteTimeout))
			if err := conn.WriteMessage(websocket.BinaryMessage, frame); err != nil {
				s.metrics.websocketErrors.WithLabelValues("write").Inc()
				return
			}
		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(s.config.WriteTimeout))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// parseOriginHost extracts the host from an Origin header value.
func parseOriginHost(origin string) (string, error) {
	u, err := url.Parse(origin)
	if err != nil {
		return "", err
	}
	return u.Host, nil
}
