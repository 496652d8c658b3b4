package command

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MWoidt/simplecast/internal/domain"
)

func normalizeJSON(t *testing.T, raw string) domain.Command {
	t.Helper()
	return Normalize(json.RawMessage(raw))
}

func TestNormalizeShorthandTable(t *testing.T) {
	cases := []struct {
		payload string
		want    domain.CommandType
	}{
		{`"MUTE"`, domain.CommandMute},
		{`"UNMUTE"`, domain.CommandUnmute},
		{`"CLOSE"`, domain.CommandClose},
		{`"GET_STATUS"`, domain.CommandGetStatus},
		{`"GET_VOLUME"`, domain.CommandGetVolume},
		{`"VOL_INC"`, domain.CommandVolInc},
		{`"VOL_DEC"`, domain.CommandVolDec},
		{`"STOP"`, domain.CommandStop},
		{`"STATUS"`, domain.CommandStatus},
		{`"PAUSE"`, domain.CommandPause},
	}

	for _, tc := range cases {
		cmd := normalizeJSON(t, tc.payload)
		assert.Equal(t, tc.want, cmd.Type, tc.payload)
	}
}

func TestNormalizeQueueJumpShorthands(t *testing.T) {
	next := normalizeJSON(t, `"NEXT"`)
	assert.Equal(t, domain.CommandQueueUpdate, next.Type)
	assert.Equal(t, 1, next.Jump)

	prev := normalizeJSON(t, `"PREV"`)
	assert.Equal(t, domain.CommandQueueUpdate, prev.Type)
	assert.Equal(t, -1, prev.Jump)
}

func TestNormalizeSeekShorthands(t *testing.T) {
	rwd := normalizeJSON(t, `"RWD"`)
	assert.Equal(t, domain.CommandSeekDelta, rwd.Type)
	require.NotNil(t, rwd.Time)
	assert.Equal(t, float64(-10), *rwd.Time)

	fwd := normalizeJSON(t, `"FWD"`)
	assert.Equal(t, domain.CommandSeekDelta, fwd.Type)
	require.NotNil(t, fwd.Time)
	assert.Equal(t, float64(10), *fwd.Time)
}

func TestNormalizeStationAlias(t *testing.T) {
	cmd := normalizeJSON(t, `"FRANCEINFO"`)
	assert.Equal(t, domain.CommandMedia, cmd.Type)
	require.Len(t, cmd.Media.Items, 1)
	assert.Equal(t, "http://direct.franceinfo.fr/live/franceinfo-midfi.mp3", cmd.Media.Items[0].URL)
	assert.False(t, cmd.Media.Queue)
}

func TestNormalizeMediaExtensionBoundary(t *testing.T) {
	load := normalizeJSON(t, `"song.mp3"`)
	assert.Equal(t, domain.CommandMedia, load.Type)
	require.Len(t, load.Media.Items, 1)
	assert.Equal(t, "song.mp3", load.Media.Items[0].URL)

	// An extension absent from the table fails the media check and falls
	// back to GetStatus.
	fallback := normalizeJSON(t, `"notes.txt"`)
	assert.Equal(t, domain.CommandGetStatus, fallback.Type)
}

func TestNormalizeMatchingIsExact(t *testing.T) {
	for _, payload := range []string{`"mute"`, `" MUTE"`, `"MUTE NOW"`, `"UNMUTED"`} {
		cmd := normalizeJSON(t, payload)
		assert.Equal(t, domain.CommandGetStatus, cmd.Type, payload)
	}
}

func TestNormalizeNonStringNonObjectDefaultsToGetStatus(t *testing.T) {
	for _, payload := range []string{``, `null`, `42`, `true`, `[1,2]`} {
		cmd := normalizeJSON(t, payload)
		assert.Equal(t, domain.CommandGetStatus, cmd.Type, payload)
	}
}

func TestNormalizeStructuredPassThrough(t *testing.T) {
	cmd := normalizeJSON(t, `{"type":"VOLUME","volume":55}`)
	assert.Equal(t, domain.CommandVolume, cmd.Type)
	require.NotNil(t, cmd.Volume)
	assert.Equal(t, float64(55), *cmd.Volume)

	tts := normalizeJSON(t, `{"type":"TTS","text":"hello","language":"fr","speed":0.8,"title":"greeting"}`)
	assert.Equal(t, domain.CommandTTS, tts.Type)
	assert.Equal(t, "hello", tts.Text)
	assert.Equal(t, "fr", tts.Language)
	assert.Equal(t, 0.8, tts.Speed)
	assert.Equal(t, "greeting", tts.Title)
}

func TestNormalizeStructuredMediaSingle(t *testing.T) {
	cmd := normalizeJSON(t, `{"type":"MEDIA","media":{"url":"http://example.com/a.mp3","options":{"autoplay":false}}}`)
	assert.Equal(t, domain.CommandMedia, cmd.Type)
	require.Len(t, cmd.Media.Items, 1)
	assert.False(t, cmd.Media.Queue)
	require.NotNil(t, cmd.Media.Items[0].Options)
	assert.False(t, cmd.Media.Items[0].Options.Autoplay)
}

func TestNormalizeStructuredMediaArray(t *testing.T) {
	cmd := normalizeJSON(t, `{"type":"MEDIA","media":[{"url":"http://example.com/a.mp3"},{"url":"http://example.com/b.mp3"}]}`)
	assert.Equal(t, domain.CommandMedia, cmd.Type)
	assert.True(t, cmd.Media.Queue)
	require.Len(t, cmd.Media.Items, 2)
	assert.Equal(t, "http://example.com/b.mp3", cmd.Media.Items[1].URL)
}

func TestNormalizeUnparsableObjectYieldsEmptyTag(t *testing.T) {
	cmd := normalizeJSON(t, `{"type":"MEDIA","media":{"url":7}}`)
	assert.Equal(t, domain.CommandType(""), cmd.Type)
}

func TestNormalizeUnknownTagPassesThrough(t *testing.T) {
	cmd := normalizeJSON(t, `{"type":"REBOOT"}`)
	assert.Equal(t, domain.CommandType("REBOOT"), cmd.Type)
}
