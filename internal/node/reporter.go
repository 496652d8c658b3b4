package node

import (
	"log/slog"
	"sync"

	"github.com/MWoidt/simplecast/internal/bus"
	"github.com/MWoidt/simplecast/internal/domain"
)

// reporter is the single normalization point for every asynchronous device
// result: errors go to the connection error classifier, successes update the
// cached device state and flow downstream.
type reporter struct {
	emit     func(correlationID string, status *domain.Status)
	indicate func(domain.Indicator)
	onError  func(err error, done bus.CompletionFunc)
	log      *slog.Logger

	mu         sync.Mutex
	lastStatus *domain.Status
	lastVolume float64
	hasVolume  bool
}

func newReporter(emit func(string, *domain.Status), indicate func(domain.Indicator), onError func(error, bus.CompletionFunc), log *slog.Logger) *reporter {
	return &reporter{
		emit:     emit,
		indicate: indicate,
		onError:  onError,
		log:      log,
	}
}

// Report handles one result. A nil status with a nil error is the idle case
// (nothing playing): cached state is updated but nothing is emitted.
func (r *reporter) Report(correlationID string, status *domain.Status, err error, done bus.CompletionFunc) {
	if err != nil {
		r.onError(err, done)
		return
	}

	r.indicate(domain.IndicatorIdle)

	r.mu.Lock()
	r.lastStatus = status
	if level, ok := extractVolumeLevel(status); ok {
		r.lastVolume = level
		r.hasVolume = true
	}
	r.mu.Unlock()

	if status != nil {
		r.emit(correlationID, status)
	}
}

// LastVolume returns the cached volume level. The second return is false
// until a volume has been observed.
func (r *reporter) LastVolume() (float64, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lastVolume, r.hasVolume
}

// LastStatus returns the most recently cached status object, which may be nil.
func (r *reporter) LastStatus() *domain.Status {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lastStatus
}

// extractVolumeLevel pulls a volume level out of a status object. Volume
// callbacks carry the controlType/level pair at the top level; receiver and
// media statuses nest it. The nested form wins when both are present.
func extractVolumeLevel(status *domain.Status) (float64, bool) {
	if status == nil {
		return 0, false
	}
	level := -1.0
	if status.ControlType != "" && status.Level != nil {
		level = *status.Level
	}
	if status.Volume != nil && status.Volume.ControlType != "" {
		level = status.Volume.Level
	}
	if level < 0 {
		return 0, false
	}
	return level, true
}
