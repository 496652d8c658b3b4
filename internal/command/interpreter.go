// Package command normalizes raw input payloads into typed commands.
package command

import (
	"bytes"
	"encoding/json"

	"github.com/MWoidt/simplecast/internal/contenttype"
	"github.com/MWoidt/simplecast/internal/domain"
)

const (
	defaultSeekDelta = 10
	queueJumpForward = 1
	queueJumpBack    = -1
)

// stationStreams maps fixed station aliases to their stream URLs.
var stationStreams = map[string]string{
	"FRANCEINFO": "http://direct.franceinfo.fr/live/franceinfo-midfi.mp3",
}

// shorthand strings that translate directly into a command tag.
var shorthands = map[string]domain.CommandType{
	"MUTE":       domain.CommandMute,
	"UNMUTE":     domain.CommandUnmute,
	"CLOSE":      domain.CommandClose,
	"GET_STATUS": domain.CommandGetStatus,
	"GET_VOLUME": domain.CommandGetVolume,
	"VOL_INC":    domain.CommandVolInc,
	"VOL_DEC":    domain.CommandVolDec,
	"STOP":       domain.CommandStop,
	"STATUS":     domain.CommandStatus,
	"PAUSE":      domain.CommandPause,
}

// Normalize resolves a raw payload into exactly one Command. Strings go
// through the shorthand rules; objects pass through as structured commands;
// anything else (including absent or null payloads) defaults to GetStatus.
// Structured payloads that fail to parse yield a Command with an empty tag,
// which dispatch rejects as malformed.
func Normalize(payload json.RawMessage) domain.Command {
	trimmed := bytes.TrimSpace(payload)
	if len(trimmed) == 0 || string(trimmed) == "null" {
		return domain.Command{Type: domain.CommandGetStatus}
	}

	var s string
	if err := json.Unmarshal(trimmed, &s); err == nil {
		return normalizeString(s)
	}

	if trimmed[0] == '{' {
		var cmd domain.Command
		if err := json.Unmarshal(trimmed, &cmd); err != nil {
			return domain.Command{}
		}
		return cmd
	}

	return domain.Command{Type: domain.CommandGetStatus}
}

// Matching is exact and case-sensitive.
func normalizeString(s string) domain.Command {
	if t, ok := shorthands[s]; ok {
		return domain.Command{Type: t}
	}

	switch s {
	case "NEXT":
		return domain.Command{Type: domain.CommandQueueUpdate, Jump: queueJumpForward}
	case "PREV":
		return domain.Command{Type: domain.CommandQueueUpdate, Jump: queueJumpBack}
	case "RWD":
		return seekDelta(-defaultSeekDelta)
	case "FWD":
		return seekDelta(defaultSeekDelta)
	}

	if streamURL, ok := stationStreams[s]; ok {
		return loadCommand(streamURL)
	}

	if _, ok := contenttype.Lookup(s); ok {
		return loadCommand(s)
	}

	return domain.Command{Type: domain.CommandGetStatus}
}

func seekDelta(delta float64) domain.Command {
	return domain.Command{Type: domain.CommandSeekDelta, Time: &delta}
}

func loadCommand(url string) domain.Command {
	return domain.Command{
		Type: domain.CommandMedia,
		Media: domain.MediaField{
			Items: []domain.MediaSpec{{URL: url}},
		},
	}
}
