package domain

// DefaultMediaReceiverAppID identifies the receiver-side default media
// application every cast device ships with.
const DefaultMediaReceiverAppID = "CC1AD845"

// Volume is the device volume object as reported by the receiver.
type Volume struct {
	ControlType string  `json:"controlType,omitempty"`
	Level       float64 `json:"level"`
	Muted       bool    `json:"muted"`
}

// VolumeRequest carries a partial volume change; nil fields are left untouched
// on the device.
type VolumeRequest struct {
	Level *float64 `json:"level,omitempty"`
	Muted *bool    `json:"muted,omitempty"`
}

// Status is the normalized shape of every asynchronous device result. Volume
// callbacks report the volume fields at the top level; receiver and media
// status callbacks nest them under Volume.
type Status struct {
	ControlType  string     `json:"controlType,omitempty"`
	Level        *float64   `json:"level,omitempty"`
	Muted        *bool      `json:"muted,omitempty"`
	Volume       *Volume    `json:"volume,omitempty"`
	PlayerState  string     `json:"playerState,omitempty"`
	CurrentTime  float64    `json:"currentTime,omitempty"`
	IdleReason   string     `json:"idleReason,omitempty"`
	Media        *MediaItem `json:"media,omitempty"`
	Applications []Session  `json:"applications,omitempty"`
}

// Session describes one running receiver application.
type Session struct {
	AppID       string `json:"appId"`
	DisplayName string `json:"displayName,omitempty"`
	SessionID   string `json:"sessionId,omitempty"`
	TransportID string `json:"transportId,omitempty"`
	StatusText  string `json:"statusText,omitempty"`
}

// SessionKind tags a joined or launched session so media dispatch can check it
// belongs to the default media receiver before issuing media commands.
type SessionKind string

const (
	SessionKindMediaReceiver SessionKind = "media"
	SessionKindOther         SessionKind = "other"
)
