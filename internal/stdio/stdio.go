// Package stdio bridges a JSON-lines reader/writer pair onto the message bus.
// Each input line is one command payload; bare words like MUTE are accepted
// and wrapped as JSON strings. Each outbound status is written as one JSON
// line.
package stdio

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"log/slog"

	"github.com/MWoidt/simplecast/internal/bus"
)

const maxLineSize = 1 << 20

type Bridge struct {
	in  io.Reader
	out io.Writer
	bus *bus.MessageBus
	log *slog.Logger
}

func New(in io.Reader, out io.Writer, mb *bus.MessageBus, log *slog.Logger) *Bridge {
	return &Bridge{in: in, out: out, bus: mb, log: log}
}

// Run pumps both directions until the input reaches EOF or the context ends.
func (b *Bridge) Run(ctx context.Context) error {
	go b.writeLoop(ctx)
	return b.readLoop(ctx)
}

func (b *Bridge) readLoop(ctx context.Context) error {
	scanner := bufio.NewScanner(b.in)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	for scanner.Scan() {
		payload, ok := bus.RawPayload(scanner.Bytes())
		if !ok {
			continue
		}

		msg := bus.NewInbound(payload, nil)
		if err := b.bus.PublishInbound(ctx, msg); err != nil {
			return err
		}
		b.log.Debug("input accepted", slog.String("message_id", msg.ID))
	}
	return scanner.Err()
}

func (b *Bridge) writeLoop(ctx context.Context) {
	encoder := json.NewEncoder(b.out)
	for {
		msg, ok := b.bus.SubscribeOutbound(ctx)
		if !ok {
			return
		}
		if err := encoder.Encode(msg); err != nil {
			b.log.Warn("write status line", slog.String("error", err.Error()))
			return
		}
	}
}
