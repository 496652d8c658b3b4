package stdio

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/MWoidt/simplecast/internal/bus"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestReadLoopPublishesLines(t *testing.T) {
	mb := bus.NewMessageBus()
	defer mb.Close()

	input := "MUTE\n\n{\"type\":\"VOLUME\",\"volume\":30}\n"
	bridge := New(strings.NewReader(input), io.Discard, mb, testLogger())

	done := make(chan error, 1)
	go func() { done <- bridge.Run(context.Background()) }()

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
	var cmd struct {
		Type   string  `json:"type"`
		Volume float64 `json:"volume"`
	}
	if err := json.Unmarshal(second.Payload, &cmd); err != nil {
		t.Fatalf("unmarshal second payload: %v", err)
	}
	if cmd.Type != "VOLUME" || cmd.Volume != 30 {
		t.Fatalf("unexpected structured payload: %+v", cmd)
	}
	if first.ID == second.ID {
		t.Fatal("expected distinct message IDs")
	}

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("run: %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("expected run to stop at EOF")
	}
}

func TestWriteLoopEmitsStatusLines(t *testing.T) {
	mb := bus.NewMessageBus()
	defer mb.Close()

	pr, pw := io.Pipe()
	defer pr.Close()
	bridge := New(strings.NewReader(""), pw, mb, testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go bridge.writeLoop(ctx)

	out := bus.OutboundMessage{
		CorrelationID: "msg-1",
		Payload:       json.RawMessage(`{"playerState":"PLAYING"}`),
	}
	if err := mb.PublishOutbound(ctx, out); err != nil {
		t.Fatalf("publish outbound: %v", err)
	}

	line, err := bufio.NewReader(pr).ReadString('\n')
	if err != nil {
		t.Fatalf("read status line: %v", err)
	}

	var got bus.OutboundMessage
	if err := json.Unmarshal([]byte(line), &got); err != nil {
		t.Fatalf("unmarshal status line: %v", err)
	}
	if got.CorrelationID != "msg-1" {
		t.Fatalf("expected correlation msg-1, got %q", got.CorrelationID)
	}
	var status struct {
		PlayerState string `json:"playerState"`
	}
	if err := json.Unmarshal(got.Payload, &status); err != nil {
		t.Fatalf("unmarshal payload: %v", err)
	}
	if status.PlayerState != "PLAYING" {
		t.Fatalf("expected PLAYING, got %q", status.PlayerState)
	}
}
