// Package node is the cast control node: it supervises the connection to one
// device, interprets inbound payloads into commands, dispatches them against
// the device, and reports normalized statuses back over the message bus.
package node

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/MWoidt/simplecast/internal/adapters"
	"github.com/MWoidt/simplecast/internal/bus"
	"github.com/MWoidt/simplecast/internal/command"
	"github.com/MWoidt/simplecast/internal/domain"
)

const defaultRetryInterval = 20 * time.Second

// Options configures a Node. Host and Factory are required; everything else
// has a usable zero value.
type Options struct {
	Host          string
	Name          string
	RetryInterval time.Duration
	Factory       adapters.ClientFactory
	Speech        adapters.SpeechSynthesizer
	Bus           *bus.MessageBus
	Logger        *slog.Logger
	Indicate      func(domain.Indicator)
}

// Node drives a single cast device.
type Node struct {
	log      *slog.Logger
	bus      *bus.MessageBus
	speech   adapters.SpeechSynthesizer
	indicate func(domain.Indicator)
	sup      *supervisor
	rep      *reporter
}

func New(opts Options) (*Node, error) {
	if opts.Host == "" {
		return nil, errors.New("node: device host is required")
	}
	if opts.Factory == nil {
		return nil, errors.New("node: client factory is required")
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if opts.Name != "" {
		logger = logger.With(slog.String("device", opts.Name))
	}

	indicate := opts.Indicate
	if indicate == nil {
		indicate = func(domain.Indicator) {}
	}

	interval := opts.RetryInterval
	if interval <= 0 {
		interval = defaultRetryInterval
	}

	n := &Node{
		log:      logger,
		bus:      opts.Bus,
		speech:   opts.Speech,
		indicate: indicate,
	}
	n.sup = newSupervisor(opts.Factory, opts.Host, interval, indicate, logger)
	n.rep = newReporter(n.emitStatus, indicate, n.sup.HandleError, logger)
	return n, nil
}

// Run connects to the device and processes inbound messages until the context
// is cancelled or the bus closes. Each message is handled on its own
// goroutine; the device serializes commands over its single control
// connection, so no ordering is imposed here.
func (n *Node) Run(ctx context.Context) error {
	if n.bus == nil {
		return errors.New("node: no message bus configured")
	}

	n.indicate(domain.IndicatorNotConnected)
	go n.sup.ConnectNow(ctx)

	for {
		msg, ok := n.bus.ConsumeInbound(ctx)
		if !ok {
			break
		}
		go n.Handle(ctx, msg)
	}

	n.sup.Shutdown()
	return ctx.Err()
}

// Handle processes one inbound message end to end: normalize the payload,
// verify a live client, resolve the receiver session, dispatch. The
// completion signal fires unconditionally at the end; error paths that
// already consumed it win because the signal is idempotent.
func (n *Node) Handle(ctx context.Context, msg bus.InboundMessage) {
	done := bus.Idempotent(msg.Done)
	cmd := command.Normalize(msg.Payload)

	client := n.sup.Client()
	if client == nil {
		n.rep.Report(msg.ID, nil, domain.ErrNotConnected, done)
		return
	}

	available, err := client.AppAvailability(ctx, domain.DefaultMediaReceiverAppID)
	if err != nil {
		n.rep.Report(msg.ID, nil, err, done)
		return
	}
	if !available {
		// The media receiver is not available on this device. Nothing to
		// dispatch against, but not an error either.
		n.rep.Report(msg.ID, nil, nil, done)
		n.finish(done)
		return
	}

	session, err := n.resolveSession(ctx, client)
	if err != nil {
		n.rep.Report(msg.ID, nil, err, done)
		return
	}

	n.dispatch(ctx, client, session, cmd, msg.ID, done)
	n.finish(done)
}

// resolveSession joins the running media receiver session when one exists and
// launches a fresh one otherwise.
func (n *Node) resolveSession(ctx context.Context, client adapters.Client) (adapters.MediaSession, error) {
	sessions, err := client.Sessions(ctx)
	if err != nil {
		return nil, err
	}

	for _, s := range sessions {
		if s.AppID != domain.DefaultMediaReceiverAppID {
			continue
		}
		session, err := client.Join(ctx, s)
		if err != nil {
			return nil, err
		}
		n.indicate(domain.IndicatorJoined)
		return session, nil
	}

	session, err := client.Launch(ctx, domain.DefaultMediaReceiverAppID)
	if err != nil {
		return nil, err
	}
	n.indicate(domain.IndicatorLaunched)
	return session, nil
}

func (n *Node) finish(done bus.CompletionFunc) {
	if done != nil {
		done(nil)
	}
}

func (n *Node) emitStatus(correlationID string, status *domain.Status) {
	if n.bus == nil {
		return
	}
	payload, err := json.Marshal(status)
	if err != nil {
		n.log.Error("marshal status", slog.String("error", err.Error()))
		return
	}
	out := bus.OutboundMessage{CorrelationID: correlationID, Payload: payload}
	if err := n.bus.PublishOutbound(context.Background(), out); err != nil {
		n.log.Warn("drop status message", slog.String("error", err.Error()))
	}
}
