package adapters

import (
	"context"

	"github.com/MWoidt/simplecast/internal/domain"
)

// Client represents the control connection to one cast device.
type Client interface {
	Connect(ctx context.Context) error
	Close() error
	AppAvailability(ctx context.Context, appID string) (bool, error)
	Sessions(ctx context.Context) ([]domain.Session, error)
	Join(ctx context.Context, session domain.Session) (MediaSession, error)
	Launch(ctx context.Context, appID string) (MediaSession, error)
	StopSession(ctx context.Context, sessionID string) error
	Status(ctx context.Context) (*domain.Status, error)
	Volume(ctx context.Context) (*domain.Status, error)
	SetVolume(ctx context.Context, req domain.VolumeRequest) (*domain.Status, error)
}

// MediaSession is the receiver handle for media-level commands. Status
// returns (nil, nil) when nothing is playing.
type MediaSession interface {
	ID() string
	Kind() domain.SessionKind
	Load(ctx context.Context, item domain.MediaItem, opts domain.LoadOptions) (*domain.Status, error)
	QueueLoad(ctx context.Context, items []domain.QueueItem, opts domain.QueueOptions) (*domain.Status, error)
	Play(ctx context.Context) (*domain.Status, error)
	Pause(ctx context.Context) (*domain.Status, error)
	Stop(ctx context.Context) (*domain.Status, error)
	Seek(ctx context.Context, seconds float64) (*domain.Status, error)
	QueueUpdate(ctx context.Context, jump int) (*domain.Status, error)
	Status(ctx context.Context) (*domain.Status, error)
}

// ClientFactory creates Client instances for a device host.
type ClientFactory interface {
	NewClient(host string) (Client, error)
}

// SpeechSynthesizer resolves spoken text into a playable URL.
type SpeechSynthesizer interface {
	SpeechURL(ctx context.Context, text, language string, speed float64) (string, error)
}
