package domain

import "encoding/json"

// MediaItem is the wire descriptor for a single loadable item. Immutable once
// built; construction lives in internal/media.
type MediaItem struct {
	ContentID      string          `json:"contentId"`
	ContentType    string          `json:"contentType"`
	StreamType     string          `json:"streamType"`
	Metadata       MediaMetadata   `json:"metadata"`
	TextTrackStyle json.RawMessage `json:"textTrackStyle,omitempty"`
	Tracks         json.RawMessage `json:"tracks,omitempty"`
}

type MediaMetadata struct {
	MetadataType int          `json:"metadataType"`
	Title        string       `json:"title"`
	Subtitle     string       `json:"subtitle,omitempty"`
	Images       []MediaImage `json:"images"`
}

type MediaImage struct {
	URL string `json:"url"`
}

// QueueItem wraps a media descriptor for queue loads.
type QueueItem struct {
	Autoplay         bool      `json:"autoplay"`
	ActiveTrackIDs   []int     `json:"activeTrackIds"`
	PlaybackDuration float64   `json:"playbackDuration"`
	Media            MediaItem `json:"media"`
}
