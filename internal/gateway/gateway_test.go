package gateway

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/MWoidt/simplecast/internal/bus"
	"github.com/MWoidt/simplecast/internal/domain"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func dialTestServer(t *testing.T, s *Server) *websocket.Conn {
	t.Helper()
	srv := httptest.NewServer(s.Handler())
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial %s: %v", url, err)
	}
	t.Cleanup(func() { conn.Close() })

	// The handler registers the connection just after the handshake; wait for
	// it so broadcasts cannot race the registration.
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		s.mu.Lock()
		n := len(s.conns)
		s.mu.Unlock()
		if n > 0 {
			return conn
		}
		time.Sleep(2 * time.Millisecond)
	}
	t.Fatal("expected the client to register with the server")
	return nil
}

func TestInboundFramesReachBus(t *testing.T) {
	mb := bus.NewMessageBus()
	defer mb.Close()
	s := New("127.0.0.1:0", mb, testLogger())
	conn := dialTestServer(t, s)

	if err := conn.WriteMessage(websocket.TextMessage, []byte("MUTE")); err != nil {
		t.Fatalf("write frame: %v", err)
	}
	if err := conn.WriteMessage(websocket.TextMessage, []byte(`{"type":"VOLUME","volume":30}`)); err != nil {
		t.Fatalf("write frame: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	first, ok := mb.ConsumeInbound(ctx)
	if !ok {
		t.Fatal("expected a first inbound message")
	}
	if string(first.Payload) != `"MUTE"` {
		t.Fatalf("expected bare word wrapped as JSON string, got %s", first.Payload)
	}

	second, ok := mb.ConsumeInbound(ctx)
	if !ok {
		t.Fatal("expected a second inbound message")
	}
	if !json.Valid(second.Payload) || second.Payload[0] != '{' {
		t.Fatalf("expected structured payload, got %s", second.Payload)
	}
}

func TestOutboundStatusIsBroadcast(t *testing.T) {
	mb := bus.NewMessageBus()
	defer mb.Close()
	s := New("127.0.0.1:0", mb, testLogger())
	conn := dialTestServer(t, s)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go s.pumpOutbound(ctx)

	out := bus.OutboundMessage{
		CorrelationID: "msg-1",
		Payload:       json.RawMessage(`{"playerState":"PAUSED"}`),
	}
	if err := mb.PublishOutbound(ctx, out); err != nil {
		t.Fatalf("publish outbound: %v", err)
	}

	conn.SetReadDeadline(time.Now().Add(time.Second))
	var got bus.OutboundMessage
	if err := conn.ReadJSON(&got); err != nil {
		t.Fatalf("read broadcast: %v", err)
	}
	if got.CorrelationID != "msg-1" {
		t.Fatalf("expected correlation msg-1, got %q", got.CorrelationID)
	}
}

func TestIndicatorBroadcast(t *testing.T) {
	mb := bus.NewMessageBus()
	defer mb.Close()
	s := New("127.0.0.1:0", mb, testLogger())
	conn := dialTestServer(t, s)

	s.Indicate(domain.IndicatorConnected)

	conn.SetReadDeadline(time.Now().Add(time.Second))
	var got indicatorEvent
	if err := conn.ReadJSON(&got); err != nil {
		t.Fatalf("read indicator event: %v", err)
	}
	if got.Indicator != domain.IndicatorConnected {
		t.Fatalf("expected connected indicator, got %+v", got.Indicator)
	}
}
