package node

import (
	"context"
	"errors"

	"github.com/MWoidt/simplecast/internal/adapters"
	"github.com/MWoidt/simplecast/internal/bus"
	"github.com/MWoidt/simplecast/internal/domain"
	"github.com/MWoidt/simplecast/internal/media"
)

const (
	defaultTTSLanguage = "en"
	defaultTTSSpeed    = 1
	ttsContentType     = "audio/mp3"

	defaultVolumeStep = 0.1
)

type reportFunc func(status *domain.Status, err error)

// dispatch translates one normalized command into protocol calls. Transport
// commands go to the client; everything else needs the media receiver session.
func (n *Node) dispatch(ctx context.Context, client adapters.Client, session adapters.MediaSession, cmd domain.Command, id string, done bus.CompletionFunc) {
	n.indicate(domain.IndicatorSending)

	report := func(status *domain.Status, err error) {
		n.rep.Report(id, status, err, done)
	}

	switch cmd.Type {
	case domain.CommandClose:
		report(nil, client.StopSession(ctx, session.ID()))
	case domain.CommandGetVolume:
		report(client.Volume(ctx))
	case domain.CommandGetStatus:
		report(client.Status(ctx))
	case domain.CommandMute:
		n.setMuted(ctx, client, true, report)
	case domain.CommandUnmute:
		n.setMuted(ctx, client, false, report)
	case domain.CommandVolume:
		n.setVolume(ctx, client, cmd, report)
	case domain.CommandVolInc:
		n.stepVolume(ctx, client, cmd, +1, report)
	case domain.CommandVolDec:
		n.stepVolume(ctx, client, cmd, -1, report)
	default:
		n.dispatchMedia(ctx, session, cmd, report)
	}
}

func (n *Node) setMuted(ctx context.Context, client adapters.Client, muted bool, report reportFunc) {
	report(client.SetVolume(ctx, domain.VolumeRequest{Muted: &muted}))
}

// setVolume accepts levels in [0,100] inclusive and translates them to the
// device's [0,1] scale. Out-of-range levels are malformed, not clamped.
func (n *Node) setVolume(ctx context.Context, client adapters.Client, cmd domain.Command, report reportFunc) {
	if cmd.Volume == nil || *cmd.Volume < 0 || *cmd.Volume > 100 {
		report(nil, domain.ErrMalformedCommand)
		return
	}
	level := *cmd.Volume / 100
	report(client.SetVolume(ctx, domain.VolumeRequest{Level: &level}))
}

// stepVolume nudges the cached level. An absent cache means baseline 0, an
// absent step means 0.1; the result is clamped to [0,1].
func (n *Node) stepVolume(ctx context.Context, client adapters.Client, cmd domain.Command, direction float64, report reportFunc) {
	baseline, _ := n.rep.LastVolume()
	step := defaultVolumeStep
	if cmd.Step != nil {
		step = *cmd.Step / 100
	}
	level := baseline + direction*step
	if level < 0 {
		level = 0
	} else if level > 1 {
		level = 1
	}
	report(client.SetVolume(ctx, domain.VolumeRequest{Level: &level}))
}

func (n *Node) dispatchMedia(ctx context.Context, session adapters.MediaSession, cmd domain.Command, report reportFunc) {
	if session.Kind() != domain.SessionKindMediaReceiver {
		report(nil, domain.ErrMalformedCommand)
		return
	}

	switch cmd.Type {
	case domain.CommandMedia:
		n.loadMedia(ctx, session, cmd.Media, report)
	case domain.CommandTTS:
		n.speak(ctx, session, cmd, report)
	case domain.CommandPause, domain.CommandPlay, domain.CommandStop, domain.CommandStatus,
		domain.CommandSeek, domain.CommandSeekDelta,
		domain.CommandQueueUpdate, domain.CommandQueueNext, domain.CommandQueuePrev:
		n.playback(ctx, session, cmd, report)
	default:
		report(nil, domain.ErrMalformedMediaCommand)
	}
}

// loadMedia issues a single load or a queue load depending on the payload
// shape. A command without media is dropped without a report; the completion
// signal still fires at the end of the handler.
func (n *Node) loadMedia(ctx context.Context, session adapters.MediaSession, field domain.MediaField, report reportFunc) {
	if len(field.Items) == 0 {
		return
	}

	if field.Queue {
		items := media.BuildQueue(field.Items)
		report(session.QueueLoad(ctx, items, media.DefaultQueueOptions(len(items))))
		return
	}

	spec := field.Items[0]
	opts := domain.LoadOptions{Autoplay: true}
	if spec.Options != nil {
		opts = *spec.Options
	}
	report(session.Load(ctx, media.BuildItem(spec), opts))
}

// speak resolves spoken text to a stream URL and loads it like any other
// single media item. Empty text is dropped without a report; a resolution
// failure is an error, not a status.
func (n *Node) speak(ctx context.Context, session adapters.MediaSession, cmd domain.Command, report reportFunc) {
	if cmd.Text == "" {
		return
	}
	if n.speech == nil {
		report(nil, errors.New("no speech synthesizer configured"))
		return
	}

	language := cmd.Language
	if language == "" {
		language = defaultTTSLanguage
	}
	speed := cmd.Speed
	if speed == 0 {
		speed = defaultTTSSpeed
	}

	url, err := n.speech.SpeechURL(ctx, cmd.Text, language, speed)
	if err != nil {
		report(nil, err)
		return
	}

	item := media.BuildItem(domain.MediaSpec{
		URL:         url,
		ContentType: ttsContentType,
		Title:       cmd.Title,
	})
	report(session.Load(ctx, item, domain.LoadOptions{Autoplay: true}))
}

// playback runs the session-status sandwich shared by the playback controls:
// fetch status first (absent status means nothing is playing, reported as
// idle/null), issue the action, then re-fetch so the caller observes settled
// state. Stop reports its own callback status without a follow-up fetch.
func (n *Node) playback(ctx context.Context, session adapters.MediaSession, cmd domain.Command, report reportFunc) {
	current, err := session.Status(ctx)
	if err != nil {
		report(nil, err)
		return
	}
	if current == nil {
		report(nil, nil)
		return
	}

	switch cmd.Type {
	case domain.CommandPause:
		if _, err := session.Pause(ctx); err != nil {
			report(nil, err)
			return
		}
	case domain.CommandPlay:
		if _, err := session.Play(ctx); err != nil {
			report(nil, err)
			return
		}
	case domain.CommandStop:
		report(session.Stop(ctx))
		return
	case domain.CommandStatus:
		report(current, nil)
		return
	case domain.CommandSeek:
		if cmd.Time == nil {
			report(nil, domain.ErrMalformedCommand)
			return
		}
		if _, err := session.Seek(ctx, *cmd.Time); err != nil {
			report(nil, err)
			return
		}
	case domain.CommandSeekDelta:
		if cmd.Time == nil {
			report(nil, domain.ErrMalformedCommand)
			return
		}
		if _, err := session.Seek(ctx, current.CurrentTime+*cmd.Time); err != nil {
			report(nil, err)
			return
		}
	case domain.CommandQueueUpdate, domain.CommandQueueNext, domain.CommandQueuePrev:
		jump := cmd.Jump
		switch cmd.Type {
		case domain.CommandQueueNext:
			jump = 1
		case domain.CommandQueuePrev:
			jump = -1
		}
		if _, err := session.QueueUpdate(ctx, jump); err != nil {
			report(nil, err)
			return
		}
	}

	report(session.Status(ctx))
}
