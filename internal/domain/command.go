package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// CommandType tags the single kind a Command carries. The values double as the
// structured payload's "type" field.
type CommandType string

const (
	CommandClose       CommandType = "CLOSE"
	CommandGetVolume   CommandType = "GET_VOLUME"
	CommandGetStatus   CommandType = "GET_STATUS"
	CommandMute        CommandType = "MUTE"
	CommandUnmute      CommandType = "UNMUTE"
	CommandVolume      CommandType = "VOLUME"
	CommandVolInc      CommandType = "VOL_INC"
	CommandVolDec      CommandType = "VOL_DEC"
	CommandMedia       CommandType = "MEDIA"
	CommandTTS         CommandType = "TTS"
	CommandPause       CommandType = "PAUSE"
	CommandPlay        CommandType = "PLAY"
	CommandStop        CommandType = "STOP"
	CommandStatus      CommandType = "STATUS"
	CommandSeek        CommandType = "SEEK"
	CommandSeekDelta   CommandType = "SEEK_DELTA"
	CommandQueueUpdate CommandType = "QUEUE_UPDATE"
	CommandQueueNext   CommandType = "QUEUE_NEXT"
	CommandQueuePrev   CommandType = "QUEUE_PREV"
)

// Command is the normalized form of an input payload. Exactly one kind applies;
// which optional fields are meaningful depends on Type. An unrecognized Type is
// carried through and rejected at dispatch.
type Command struct {
	Type     CommandType `json:"type"`
	Media    MediaField  `json:"media,omitempty"`
	Text     string      `json:"text,omitempty"`
	Language string      `json:"language,omitempty"`
	Speed    float64     `json:"speed,omitempty"`
	Title    string      `json:"title,omitempty"`
	Volume   *float64    `json:"volume,omitempty"`
	Step     *float64    `json:"step,omitempty"`
	Time     *float64    `json:"time,omitempty"`
	Jump     int         `json:"jump,omitempty"`
}

// MediaSpec is the loose media description callers supply; the descriptor
// builders fill in everything it leaves out.
type MediaSpec struct {
	URL            string          `json:"url"`
	ContentType    string          `json:"contentType,omitempty"`
	StreamType     string          `json:"streamType,omitempty"`
	Title          string          `json:"title,omitempty"`
	Image          string          `json:"image,omitempty"`
	TextTrackStyle json.RawMessage `json:"textTrackStyle,omitempty"`
	Tracks         json.RawMessage `json:"tracks,omitempty"`
	Options        *LoadOptions    `json:"options,omitempty"`
}

// MediaField accepts either a single media object or an array of them. Queue
// reports which shape the payload carried: an array always means a queue load,
// even with one element.
type MediaField struct {
	Items []MediaSpec
	Queue bool
}

func (f *MediaField) UnmarshalJSON(data []byte) error {
	if string(bytes.TrimSpace(data)) == "null" {
		*f = MediaField{}
		return nil
	}

	var single MediaSpec
	if err := json.Unmarshal(data, &single); err == nil {
		f.Items = []MediaSpec{single}
		f.Queue = false
		return nil
	}

	var many []MediaSpec
	if err := json.Unmarshal(data, &many); err != nil {
		return fmt.Errorf("media must be an object or an array of objects: %w", err)
	}
	f.Items = many
	f.Queue = true
	return nil
}

func (f MediaField) MarshalJSON() ([]byte, error) {
	if f.Queue {
		return json.Marshal(f.Items)
	}
	if len(f.Items) == 0 {
		return []byte("null"), nil
	}
	return json.Marshal(f.Items[0])
}

// LoadOptions are passed alongside a single-item load.
type LoadOptions struct {
	Autoplay bool `json:"autoplay"`
}

// QueueOptions are passed alongside a queue load. Preload is the queue-level
// preload count, set to the number of queued items.
type QueueOptions struct {
	StartIndex int    `json:"startIndex"`
	RepeatMode string `json:"repeatMode"`
	Preload    int    `json:"preloadTime,omitempty"`
}
