// Package gateway exposes the message bus over a websocket endpoint for host
// frameworks that reach the node over the network instead of stdio. Every
// connected client receives every outbound status and indicator event.
package gateway

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/MWoidt/simplecast/internal/bus"
	"github.com/MWoidt/simplecast/internal/domain"
)

type Server struct {
	addr     string
	bus      *bus.MessageBus
	log      *slog.Logger
	upgrader websocket.Upgrader

	mu    sync.Mutex
	conns map[*websocket.Conn]struct{}
}

func New(addr string, mb *bus.MessageBus, log *slog.Logger) *Server {
	return &Server{
		addr: addr,
		bus:  mb,
		log:  log,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		conns: make(map[*websocket.Conn]struct{}),
	}
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWS)
	return mux
}

// Run serves the websocket endpoint and fans outbound statuses out to every
// connected client until the context ends.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go s.pumpOutbound(ctx)

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		s.closeAll()
		return ctx.Err()
	case err := <-errCh:
		return err
	}
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn("websocket upgrade", slog.String("error", err.Error()))
		return
	}

	s.mu.Lock()
	s.conns[conn] = struct{}{}
	s.mu.Unlock()
	s.log.Info("gateway client connected", slog.String("remote", conn.RemoteAddr().String()))

	defer func() {
		s.mu.Lock()
		delete(s.conns, conn)
		s.mu.Unlock()
		conn.Close()
		s.log.Info("gateway client disconnected", slog.String("remote", conn.RemoteAddr().String()))
	}()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.log.Warn("websocket read", slog.String("error", err.Error()))
			}
			return
		}

		payload, ok := bus.RawPayload(data)
		if !ok {
			continue
		}
		msg := bus.NewInbound(payload, nil)
		if err := s.bus.PublishInbound(r.Context(), msg); err != nil {
			return
		}
		s.log.Debug("input accepted", slog.String("message_id", msg.ID))
	}
}

func (s *Server) pumpOutbound(ctx context.Context) {
	for {
		msg, ok := s.bus.SubscribeOutbound(ctx)
		if !ok {
			return
		}
		s.broadcast(msg)
	}
}

type indicatorEvent struct {
	Indicator domain.Indicator `json:"indicator"`
}

// Indicate broadcasts a status indicator transition to every client.
func (s *Server) Indicate(in domain.Indicator) {
	s.broadcast(indicatorEvent{Indicator: in})
}

func (s *Server) broadcast(v any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for conn := range s.conns {
		if err := conn.WriteJSON(v); err != nil {
			conn.Close()
			delete(s.conns, conn)
		}
	}
}

func (s *Server) closeAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for conn := range s.conns {
		conn.Close()
		delete(s.conns, conn)
	}
}
