// Package media builds wire-level media descriptors from loose media specs.
package media

import (
	"strings"

	"github.com/MWoidt/simplecast/internal/contenttype"
	"github.com/MWoidt/simplecast/internal/domain"
)

// placeholderImageURL backs items whose spec carries no artwork.
const placeholderImageURL = "https://nodered.org/node-red-icon.png"

const (
	defaultStreamType       = "BUFFERED"
	queuePlaybackDuration   = 2
	defaultQueueRepeatMode  = "REPEAT_OFF"
	defaultQueueStartOffset = 0
)

// BuildItem constructs a single-item descriptor. Content type is inferred from
// the URL's trailing file name when the spec omits it; title falls back to the
// file name, the image to a placeholder.
func BuildItem(spec domain.MediaSpec) domain.MediaItem {
	fileName := fileNameFromURL(spec.URL)

	contentType := spec.ContentType
	if contentType == "" {
		contentType, _ = contenttype.Lookup(fileName)
	}

	streamType := spec.StreamType
	if streamType == "" {
		streamType = defaultStreamType
	}

	title := spec.Title
	if title == "" {
		title = fileName
	}

	image := spec.Image
	if image == "" {
		image = placeholderImageURL
	}

	return domain.MediaItem{
		ContentID:   spec.URL,
		ContentType: contentType,
		StreamType:  streamType,
		Metadata: domain.MediaMetadata{
			MetadataType: 0,
			Title:        title,
			Images:       []domain.MediaImage{{URL: image}},
		},
		TextTrackStyle: spec.TextTrackStyle,
		Tracks:         spec.Tracks,
	}
}

// BuildQueueItem wraps a single-item descriptor in the queue shape: autoplay
// on, no active tracks, and a 2-unit playback duration placeholder.
func BuildQueueItem(spec domain.MediaSpec) domain.QueueItem {
	return domain.QueueItem{
		Autoplay:         true,
		ActiveTrackIDs:   []int{},
		PlaybackDuration: queuePlaybackDuration,
		Media:            BuildItem(spec),
	}
}

// BuildQueue builds one queue item per spec, in order.
func BuildQueue(specs []domain.MediaSpec) []domain.QueueItem {
	items := make([]domain.QueueItem, 0, len(specs))
	for _, spec := range specs {
		items = append(items, BuildQueueItem(spec))
	}
	return items
}

// DefaultQueueOptions returns the queue load options used when the caller
// supplies none; the preload count equals the item count.
func DefaultQueueOptions(itemCount int) domain.QueueOptions {
	return domain.QueueOptions{
		StartIndex: defaultQueueStartOffset,
		RepeatMode: defaultQueueRepeatMode,
		Preload:    itemCount,
	}
}

func fileNameFromURL(rawURL string) string {
	parts := strings.Split(rawURL, "/")
	last := parts[len(parts)-1]
	name, _, _ := strings.Cut(last, "?")
	return name
}
