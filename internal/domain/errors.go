package domain

import (
	"errors"
	"strings"
)

var (
	// ErrNotConnected is reported when a command arrives while no device
	// client exists. Command paths fail fast rather than waiting for the
	// reconnect loop.
	ErrNotConnected = errors.New("not connected to device")

	// ErrMalformedCommand covers unrecognized command tags and invalid
	// fields on transport-level commands.
	ErrMalformedCommand = errors.New("malformed command")

	// ErrMalformedMediaCommand covers command tags that reached media
	// dispatch but match no media operation.
	ErrMalformedMediaCommand = errors.New("malformed media control command")
)

// ErrorKind classifies an error for reporting.
type ErrorKind string

const (
	ErrorKindUnreachable ErrorKind = "connection_unreachable"
	ErrorKindTransient   ErrorKind = "transient_device_error"
	ErrorKindMalformed   ErrorKind = "malformed_command"
)

// IsUnreachable reports whether an error indicates the device host cannot be
// reached. Matching is by substring, case-sensitive: these are the literal
// markers the cast transport puts in its error strings.
func IsUnreachable(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "EHOSTUNREACH") || strings.Contains(msg, "Device timeout")
}

// Classify maps an error onto its reporting kind.
func Classify(err error) ErrorKind {
	switch {
	case IsUnreachable(err):
		return ErrorKindUnreachable
	case errors.Is(err, ErrMalformedCommand), errors.Is(err, ErrMalformedMediaCommand):
		return ErrorKindMalformed
	default:
		return ErrorKindTransient
	}
}
