// Package errors provides centralized error definitions and error handling
// utilities for the camshell codebase. It defines domain-specific errors,
// error constructors with context wrapping, and error classification helpers.
//
// # Error Types
//
// The package provides two categories of errors:
//
// Sentinel errors represent well-known conditions callers match with
// errors.Is:
//   - ErrBusy: a command was attempted while the session was not idle
//   - ErrUnknownConfig / ErrReadonlyConfig: local config validation failures
//   - ErrSessionClosed / ErrSessionFailed: session lifecycle failures
//   - ErrCameraNotFound / ErrPortLocked: connection-time failures
//
// Typed errors carry additional context:
//   - TransportError: the underlying subprocess write/spawn failed (fatal)
//   - ConfigError: a named configuration entry could not be read or written
//
// # Usage
//
// Creating errors:
//
//	err := errors.NewTransportError("write", baseErr)
//	err := errors.NewConfigError("iso", errors.ErrReadonlyConfig)
//
// Checking errors:
//
//	if errors.Is(err, errors.ErrBusy) { ... }
//
//	var terr *errors.TransportError
//	if errors.As(err, &terr) { ... }
//
//	if errors.IsFatal(err) { ... }
package errors

import (
	"errors"
	"fmt"
)

// Re-export standard library functions for convenience.
// This allows callers to import only this package for all error handling.
var (
	Is     = errors.Is
	As     = errors.As
	Unwrap = errors.Unwrap
	New    = errors.New
	Join   = errors.Join
)

// Severity represents the severity level of an error.
type Severity int

const (
	// SeverityWarning is for errors the caller can recover from by retrying
	// or deferring (e.g. a busy rejection).
	SeverityWarning Severity = iota
	// SeverityError is for errors that indicate a real problem with the
	// requested operation but leave the session usable.
	SeverityError
	// SeverityFatal is for errors that require tearing the session down
	// and reconnecting.
	SeverityFatal
)

// String returns the string representation of the severity level.
func (s Severity) String() string {
	switch s {
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	case SeverityFatal:
		return "fatal"
	default:
		return "unknown"
	}
}

// Session-related sentinel errors
var (
	// ErrBusy indicates a command was attempted while the session was not
	// idle. The command is dropped, never queued; the caller decides whether
	// to retry or defer.
	ErrBusy = New("session busy")
	// ErrSessionClosed indicates the session has been disconnected.
	ErrSessionClosed = New("session closed")
	// ErrSessionFailed indicates the session entered the error state
	// (the shell subprocess likely died). The caller must reconnect.
	ErrSessionFailed = New("session failed")
)

// Configuration-related sentinel errors
var (
	// ErrUnknownConfig indicates the named configuration entry does not
	// exist in the model.
	ErrUnknownConfig = New("unknown config entry")
	// ErrReadonlyConfig indicates a write was attempted on a read-only
	// configuration entry. The device is never contacted.
	ErrReadonlyConfig = New("config entry is read-only")
)

// Connection-related sentinel errors
var (
	// ErrCameraNotFound indicates auto-detection found no attached camera.
	ErrCameraNotFound = New("no camera detected")
	// ErrPortLocked indicates another camshell process holds the lock for
	// the camera port.
	ErrPortLocked = New("camera port is locked by another process")
)

// TransportError indicates the underlying subprocess transport failed:
// the shell could not be spawned, or a command write failed. Transport
// errors are fatal; the session must be torn down and reconnected.
type TransportError struct {
	// Op is the transport operation that failed (e.g. "write", "spawn").
	Op string
	// Err is the underlying error.
	Err error
}

// NewTransportError creates a TransportError for the given operation.
func NewTransportError(op string, err error) *TransportError {
	return &TransportError{Op: op, Err: err}
}

// Error returns the error message.
func (e *TransportError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("transport %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("transport %s failed", e.Op)
}

// Unwrap returns the underlying error.
func (e *TransportError) Unwrap() error { return e.Err }

// Severity returns SeverityFatal; transport failures always require a
// reconnect.
func (e *TransportError) Severity() Severity { return SeverityFatal }

// ConfigError indicates a named configuration entry could not be read
// or written locally. The device is never contacted for these failures.
type ConfigError struct {
	// Name is the configuration entry name.
	Name string
	// Err is the underlying error, typically ErrUnknownConfig or
	// ErrReadonlyConfig.
	Err error
}

// NewConfigError creates a ConfigError for the named entry.
func NewConfigError(name string, err error) *ConfigError {
	return &ConfigError{Name: name, Err: err}
}

// Error returns the error message.
func (e *ConfigError) Error() string {
	return fmt.Sprintf("config %q: %v", e.Name, e.Err)
}

// Unwrap returns the underlying error.
func (e *ConfigError) Unwrap() error { return e.Err }

// Severity returns SeverityError; config errors are resolved synchronously
// at the call boundary and leave the session usable.
func (e *ConfigError) Severity() Severity { return SeverityError }

// IsFatal reports whether err requires tearing down the session.
// Transport failures and the session-failed sentinel are fatal.
func IsFatal(err error) bool {
	var terr *TransportError
	if As(err, &terr) {
		return true
	}
	return Is(err, ErrSessionFailed)
}

// IsBusy reports whether err is a busy rejection, i.e. the command was
// dropped because another command was in flight.
func IsBusy(err error) bool {
	return Is(err, ErrBusy)
}

// IsValidation reports whether err is a local validation failure
// (unknown or read-only config entry). Validation failures never reach
// the device.
func IsValidation(err error) bool {
	return Is(err, ErrUnknownConfig) || Is(err, ErrReadonlyConfig)
}
