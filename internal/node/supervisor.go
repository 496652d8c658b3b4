package node

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/MWoidt/simplecast/internal/adapters"
	"github.com/MWoidt/simplecast/internal/bus"
	"github.com/MWoidt/simplecast/internal/domain"
)

// supervisor owns the device connection lifecycle. Unreachable-class errors
// drop the client handle and arm a fixed-interval reconnect loop; at most one
// loop runs at a time.
type supervisor struct {
	factory  adapters.ClientFactory
	host     string
	interval time.Duration
	indicate func(domain.Indicator)
	log      *slog.Logger

	mu          sync.Mutex
	client      adapters.Client
	retryActive bool
	retryArms   int
	retryCancel context.CancelFunc
}

func newSupervisor(factory adapters.ClientFactory, host string, interval time.Duration, indicate func(domain.Indicator), log *slog.Logger) *supervisor {
	return &supervisor{
		factory:  factory,
		host:     host,
		interval: interval,
		indicate: indicate,
		log:      log,
	}
}

// Client returns the current client handle, or nil when disconnected.
// Command paths fail fast on nil instead of waiting for a reconnect.
func (s *supervisor) Client() adapters.Client {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.client
}

// ConnectNow is idempotent: an existing client is reused, a missing one is
// created, and a connect is issued either way. A successful connect clears
// any pending retry loop.
func (s *supervisor) ConnectNow(ctx context.Context) {
	s.mu.Lock()
	if s.client == nil {
		client, err := s.factory.NewClient(s.host)
		if err != nil {
			s.mu.Unlock()
			s.indicate(domain.IndicatorCantConnect)
			s.HandleError(err, nil)
			return
		}
		s.client = client
	}
	client := s.client
	s.mu.Unlock()

	if err := client.Connect(ctx); err != nil {
		s.HandleError(err, nil)
		return
	}

	s.indicate(domain.IndicatorConnected)
	s.mu.Lock()
	if s.retryActive {
		s.retryActive = false
		if s.retryCancel != nil {
			s.retryCancel()
			s.retryCancel = nil
		}
	}
	s.mu.Unlock()
	s.log.Info("device connected", slog.String("host", s.host))
}

// HandleError classifies every error surfaced by an in-flight operation.
// Host-unreachable and device-timeout errors tear the client down and arm the
// reconnect loop; anything else is reported without touching connection
// state. When the triggering message supplied a completion callback the error
// is routed there instead of the generic error channel.
func (s *supervisor) HandleError(err error, done bus.CompletionFunc) {
	if err == nil {
		return
	}

	if domain.IsUnreachable(err) {
		s.mu.Lock()
		if s.client != nil {
			_ = s.client.Close()
			s.client = nil
		}
		if !s.retryActive {
			s.retryActive = true
			s.retryArms++
			retryCtx, cancel := context.WithCancel(context.Background())
			s.retryCancel = cancel
			go s.retryLoop(retryCtx)
		}
		s.mu.Unlock()
		s.indicate(domain.IndicatorHostUnreachable)
	} else {
		s.indicate(domain.IndicatorError)
	}

	if done != nil {
		done(err)
		return
	}
	s.log.Error("device error",
		slog.String("kind", string(domain.Classify(err))),
		slog.String("error", err.Error()),
	)
}

func (s *supervisor) retryLoop(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.ConnectNow(ctx)
		}
	}
}

func (s *supervisor) retrying() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.retryActive
}

// Shutdown cancels any reconnect loop and drops the client handle.
func (s *supervisor) Shutdown() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.retryCancel != nil {
		s.retryCancel()
		s.retryCancel = nil
	}
	s.retryActive = false
	if s.client != nil {
		_ = s.client.Close()
		s.client = nil
	}
}
