package media

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MWoidt/simplecast/internal/domain"
)

func TestBuildItemDefaults(t *testing.T) {
	item := BuildItem(domain.MediaSpec{URL: "http://example.com/music/song.mp3?token=abc"})

	assert.Equal(t, "http://example.com/music/song.mp3?token=abc", item.ContentID)
	assert.Equal(t, "audio/mp3", item.ContentType)
	assert.Equal(t, "BUFFERED", item.StreamType)
	assert.Equal(t, "song.mp3", item.Metadata.Title)
	require.Len(t, item.Metadata.Images, 1)
	assert.Equal(t, placeholderImageURL, item.Metadata.Images[0].URL)
}

func TestBuildItemExplicitFieldsWin(t *testing.T) {
	item := BuildItem(domain.MediaSpec{
		URL:         "http://example.com/stream",
		ContentType: "audio/ogg",
		StreamType:  "LIVE",
		Title:       "Morning Show",
		Image:       "http://example.com/cover.png",
	})

	assert.Equal(t, "audio/ogg", item.ContentType)
	assert.Equal(t, "LIVE", item.StreamType)
	assert.Equal(t, "Morning Show", item.Metadata.Title)
	assert.Equal(t, "http://example.com/cover.png", item.Metadata.Images[0].URL)
}

func TestBuildItemUnknownExtensionLeavesContentTypeEmpty(t *testing.T) {
	item := BuildItem(domain.MediaSpec{URL: "http://example.com/notes.txt"})
	assert.Empty(t, item.ContentType)
}

func TestBuildQueueItemShape(t *testing.T) {
	qi := BuildQueueItem(domain.MediaSpec{URL: "http://example.com/a.mp3"})

	assert.True(t, qi.Autoplay)
	assert.NotNil(t, qi.ActiveTrackIDs)
	assert.Empty(t, qi.ActiveTrackIDs)
	assert.Equal(t, float64(2), qi.PlaybackDuration)
	assert.Equal(t, "http://example.com/a.mp3", qi.Media.ContentID)
}

func TestBuildQueuePreservesOrder(t *testing.T) {
	items := BuildQueue([]domain.MediaSpec{
		{URL: "http://example.com/1.mp3"},
		{URL: "http://example.com/2.mp3"},
		{URL: "http://example.com/3.mp3"},
	})

	require.Len(t, items, 3)
	assert.Equal(t, "http://example.com/1.mp3", items[0].Media.ContentID)
	assert.Equal(t, "http://example.com/3.mp3", items[2].Media.ContentID)
}

func TestDefaultQueueOptions(t *testing.T) {
	opts := DefaultQueueOptions(4)
	assert.Equal(t, 0, opts.StartIndex)
	assert.Equal(t, "REPEAT_OFF", opts.RepeatMode)
	assert.Equal(t, 4, opts.Preload)
}
