// Package gochromecast adapts github.com/vishen/go-chromecast to the cast
// client contracts.
package gochromecast

import (
	"context"
	"net"
	"strconv"

	"github.com/vishen/go-chromecast/application"
	castlib "github.com/vishen/go-chromecast/cast"

	"github.com/MWoidt/simplecast/internal/adapters"
	"github.com/MWoidt/simplecast/internal/domain"
)

const defaultCastPort = 8009

// volumeControlType is what cast receivers report for their master volume.
const volumeControlType = "attenuation"

type Factory struct{}

func (Factory) NewClient(host string) (adapters.Client, error) {
	addr, port := splitHostPort(host)
	return &client{
		app:  application.NewApplication(),
		addr: addr,
		port: port,
	}, nil
}

type client struct {
	app  *application.Application
	addr string
	port int
}

func (c *client) Connect(_ context.Context) error {
	return c.app.Start(c.addr, c.port)
}

func (c *client) Close() error {
	return c.app.Close(false)
}

func (c *client) AppAvailability(_ context.Context, _ string) (bool, error) {
	// The default media receiver ships with every cast device, so a
	// successful receiver-status refresh doubles as the availability check.
	if err := c.app.Update(); err != nil {
		return false, err
	}
	return true, nil
}

func (c *client) Sessions(_ context.Context) ([]domain.Session, error) {
	if err := c.app.Update(); err != nil {
		return nil, err
	}
	appl, _, _ := c.app.Status()
	if appl == nil || appl.IsIdleScreen {
		return nil, nil
	}
	return []domain.Session{{
		AppID:       appl.AppId,
		DisplayName: appl.DisplayName,
		SessionID:   appl.SessionId,
		TransportID: appl.TransportId,
		StatusText:  appl.StatusText,
	}}, nil
}

func (c *client) Join(_ context.Context, session domain.Session) (adapters.MediaSession, error) {
	return &mediaSession{app: c.app, id: session.SessionID, kind: sessionKind(session.AppID)}, nil
}

func (c *client) Launch(_ context.Context, appID string) (adapters.MediaSession, error) {
	// go-chromecast brings up the receiver application lazily on the first
	// media call, so launching only hands out the session handle.
	return &mediaSession{app: c.app, kind: sessionKind(appID)}, nil
}

func (c *client) StopSession(_ context.Context, _ string) error {
	return c.app.Stop()
}

func (c *client) Status(_ context.Context) (*domain.Status, error) {
	if err := c.app.Update(); err != nil {
		return nil, err
	}
	appl, media, vol := c.app.Status()
	return deviceStatus(appl, media, vol), nil
}

func (c *client) Volume(_ context.Context) (*domain.Status, error) {
	if err := c.app.Update(); err != nil {
		return nil, err
	}
	_, _, vol := c.app.Status()
	if vol == nil {
		return nil, nil
	}
	level := float64(vol.Level)
	muted := vol.Muted
	return &domain.Status{
		ControlType: volumeControlType,
		Level:       &level,
		Muted:       &muted,
	}, nil
}

func (c *client) SetVolume(ctx context.Context, req domain.VolumeRequest) (*domain.Status, error) {
	if req.Muted != nil {
		if err := c.app.SetMuted(*req.Muted); err != nil {
			return nil, err
		}
	}
	if req.Level != nil {
		if err := c.app.SetVolume(float32(*req.Level)); err != nil {
			return nil, err
		}
	}
	return c.Volume(ctx)
}

type mediaSession struct {
	app  *application.Application
	id   string
	kind domain.SessionKind
}

func (s *mediaSession) ID() string { return s.id }

func (s *mediaSession) Kind() domain.SessionKind { return s.kind }

func (s *mediaSession) Load(ctx context.Context, item domain.MediaItem, _ domain.LoadOptions) (*domain.Status, error) {
	if err := s.app.Load(item.ContentID, 0, item.ContentType, false, false, false); err != nil {
		return nil, err
	}
	return s.Status(ctx)
}

func (s *mediaSession) QueueLoad(ctx context.Context, items []domain.QueueItem, _ domain.QueueOptions) (*domain.Status, error) {
	urls := make([]string, 0, len(items))
	contentType := ""
	for _, item := range items {
		urls = append(urls, item.Media.ContentID)
		if contentType == "" {
			contentType = item.Media.ContentType
		}
	}
	if err := s.app.QueueLoad(urls, contentType, false); err != nil {
		return nil, err
	}
	return s.Status(ctx)
}

func (s *mediaSession) Play(ctx context.Context) (*domain.Status, error) {
	if err := s.app.Unpause(); err != nil {
		return nil, err
	}
	return s.Status(ctx)
}

func (s *mediaSession) Pause(ctx context.Context) (*domain.Status, error) {
	if err := s.app.Pause(); err != nil {
		return nil, err
	}
	return s.Status(ctx)
}

func (s *mediaSession) Stop(ctx context.Context) (*domain.Status, error) {
	if err := s.app.StopMedia(); err != nil {
		return nil, err
	}
	return s.Status(ctx)
}

func (s *mediaSession) Seek(ctx context.Context, seconds float64) (*domain.Status, error) {
	if err := s.app.SeekToTime(float32(seconds)); err != nil {
		return nil, err
	}
	return s.Status(ctx)
}

func (s *mediaSession) QueueUpdate(ctx context.Context, jump int) (*domain.Status, error) {
	step := s.app.Next
	if jump < 0 {
		step = s.app.Previous
		jump = -jump
	}
	for i := 0; i < jump; i++ {
		if err := step(); err != nil {
			return nil, err
		}
	}
	return s.Status(ctx)
}

func (s *mediaSession) Status(_ context.Context) (*domain.Status, error) {
	if err := s.app.Update(); err != nil {
		return nil, err
	}
	_, media, vol := s.app.Status()
	if media == nil {
		return nil, nil
	}
	return deviceStatus(nil, media, vol), nil
}

func deviceStatus(appl *castlib.Application, media *castlib.Media, vol *castlib.Volume) *domain.Status {
	if appl == nil && media == nil && vol == nil {
		return nil
	}

	status := &domain.Status{}
	if media != nil {
		status.PlayerState = media.PlayerState
		status.CurrentTime = float64(media.CurrentTime)
		status.IdleReason = media.IdleReason
	}
	if vol != nil {
		status.Volume = &domain.Volume{
			ControlType: volumeControlType,
			Level:       float64(vol.Level),
			Muted:       vol.Muted,
		}
	}
	if appl != nil {
		status.Applications = []domain.Session{{
			AppID:       appl.AppId,
			DisplayName: appl.DisplayName,
			SessionID:   appl.SessionId,
			TransportID: appl.TransportId,
			StatusText:  appl.StatusText,
		}}
	}
	return status
}

func sessionKind(appID string) domain.SessionKind {
	if appID == domain.DefaultMediaReceiverAppID {
		return domain.SessionKindMediaReceiver
	}
	return domain.SessionKindOther
}

func splitHostPort(host string) (string, int) {
	addr, rawPort, err := net.SplitHostPort(host)
	if err != nil {
		return host, defaultCastPort
	}
	port, err := strconv.Atoi(rawPort)
	if err != nil {
		return host, defaultCastPort
	}
	return addr, port
}

var _ adapters.ClientFactory = Factory{}
