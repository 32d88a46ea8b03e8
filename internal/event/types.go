// Package event defines event types for decoupling camshell components.
// The session core publishes readiness and capture transitions here; the
// CLI, download watcher, and monitor TUI subscribe without depending on
// the core directly.
package event

import "time"

// Event is the interface that all events must implement.
// It provides a common way to identify and timestamp events.
type Event interface {
	// EventType returns a string identifier for this event type.
	// Convention: "category.action" (e.g., "status.idle", "capture.started")
	EventType() string

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// Event type identifiers published by camshell.
const (
	// TypeStatusIdle fires when the session transitions to idle.
	TypeStatusIdle = "status.idle"
	// TypeStatusBusy fires when the session transitions to busy.
	TypeStatusBusy = "status.busy"
	// TypeStatusError fires when the session enters the terminal error state.
	TypeStatusError = "status.error"
	// TypeCaptureStarted fires synchronously when an image or preview
	// command is dispatched.
	TypeCaptureStarted = "capture.started"
	// TypeCaptureStopped fires when a capture continuation completes with
	// a non-empty file list.
	TypeCaptureStopped = "capture.stopped"
	// TypeConfigChanged fires when a configuration entry is written
	// (optimistically, before device confirmation).
	TypeConfigChanged = "config.changed"
	// TypeConfigRefreshed fires when a refresh-all completes and the
	// configuration model is atomically replaced.
	TypeConfigRefreshed = "config.refreshed"
	// TypeFileDownloaded fires when the download watcher sees a new file
	// appear in the capture directory.
	TypeFileDownloaded = "file.downloaded"
)

// baseEvent provides common fields for all events.
// Embed this in concrete event types to satisfy the Event interface.
type baseEvent struct {
	eventType string
	timestamp time.Time
}

func (e baseEvent) EventType() string    { return e.eventType }
func (e baseEvent) Timestamp() time.Time { return e.timestamp }

// newBaseEvent creates a baseEvent with the current time.
func newBaseEvent(eventType string) baseEvent {
	return baseEvent{
		eventType: eventType,
		timestamp: time.Now(),
	}
}

// -----------------------------------------------------------------------------
// Status Events
// -----------------------------------------------------------------------------

// StatusIdleEvent is emitted when the session becomes idle. Edge-triggered:
// it fires on the transition, not on every poll while idle.
type StatusIdleEvent struct {
	baseEvent
	SessionID string // Session that became idle
}

// NewStatusIdleEvent creates a StatusIdleEvent.
func NewStatusIdleEvent(sessionID string) StatusIdleEvent {
	return StatusIdleEvent{
		baseEvent: newBaseEvent(TypeStatusIdle),
		SessionID: sessionID,
	}
}

// StatusBusyEvent is emitted when the session becomes busy, either because
// output stopped ending in a prompt or because a command was dispatched.
type StatusBusyEvent struct {
	baseEvent
	SessionID string // Session that became busy
	Command   string // Command that triggered the transition, if any
}

// NewStatusBusyEvent creates a StatusBusyEvent.
func NewStatusBusyEvent(sessionID, command string) StatusBusyEvent {
	return StatusBusyEvent{
		baseEvent: newBaseEvent(TypeStatusBusy),
		SessionID: sessionID,
		Command:   command,
	}
}

// StatusErrorEvent is emitted when the session enters the error state.
// The error state is terminal; the caller must reconnect.
type StatusErrorEvent struct {
	baseEvent
	SessionID string // Session that failed
	Reason    string // Why the session failed (e.g. "empty output buffer")
}

// NewStatusErrorEvent creates a StatusErrorEvent.
func NewStatusErrorEvent(sessionID, reason string) StatusErrorEvent {
	return StatusErrorEvent{
		baseEvent: newBaseEvent(TypeStatusError),
		SessionID: sessionID,
		Reason:    reason,
	}
}

// -----------------------------------------------------------------------------
// Capture Events
// -----------------------------------------------------------------------------

// CapturedFile describes one file returned by a capture command.
type CapturedFile struct {
	Name    string // Filename as reported by the shell
	Preview bool   // True if the file is the fixed preview filename
}

// CaptureStartedEvent is emitted synchronously at the moment an image or
// preview command is dispatched.
type CaptureStartedEvent struct {
	baseEvent
	SessionID string // Session performing the capture
	Preview   bool   // True for capture-preview, false for a full image
}

// NewCaptureStartedEvent creates a CaptureStartedEvent.
func NewCaptureStartedEvent(sessionID string, preview bool) CaptureStartedEvent {
	return CaptureStartedEvent{
		baseEvent: newBaseEvent(TypeCaptureStarted),
		SessionID: sessionID,
		Preview:   preview,
	}
}

// CaptureStoppedEvent is emitted when a capture continuation completes
// with a non-empty file list.
type CaptureStoppedEvent struct {
	baseEvent
	SessionID string         // Session that performed the capture
	Files     []CapturedFile // Files reported, in shell output order
}

// NewCaptureStoppedEvent creates a CaptureStoppedEvent.
func NewCaptureStoppedEvent(sessionID string, files []CapturedFile) CaptureStoppedEvent {
	return CaptureStoppedEvent{
		baseEvent: newBaseEvent(TypeCaptureStopped),
		SessionID: sessionID,
		Files:     files,
	}
}

// -----------------------------------------------------------------------------
// Configuration Events
// -----------------------------------------------------------------------------

// ConfigChangedEvent is emitted when a configuration entry is written.
// The write is optimistic: the device has not yet confirmed the value.
type ConfigChangedEvent struct {
	baseEvent
	SessionID string // Session the entry belongs to
	Name      string // Configuration entry name
	Value     string // New value written to the cache
}

// NewConfigChangedEvent creates a ConfigChangedEvent.
func NewConfigChangedEvent(sessionID, name, value string) ConfigChangedEvent {
	return ConfigChangedEvent{
		baseEvent: newBaseEvent(TypeConfigChanged),
		SessionID: sessionID,
		Name:      name,
		Value:     value,
	}
}

// ConfigRefreshedEvent is emitted when a refresh-all fan-out completes
// and the configuration model has been atomically replaced.
type ConfigRefreshedEvent struct {
	baseEvent
	SessionID string // Session whose model was replaced
	Count     int    // Number of entries in the new model
}

// NewConfigRefreshedEvent creates a ConfigRefreshedEvent.
func NewConfigRefreshedEvent(sessionID string, count int) ConfigRefreshedEvent {
	return ConfigRefreshedEvent{
		baseEvent: newBaseEvent(TypeConfigRefreshed),
		SessionID: sessionID,
		Count:     count,
	}
}

// -----------------------------------------------------------------------------
// Download Events
// -----------------------------------------------------------------------------

// FileDownloadedEvent is emitted by the download watcher when a new file
// appears in the capture directory.
type FileDownloadedEvent struct {
	baseEvent
	Path string // Absolute path of the new file
}

// NewFileDownloadedEvent creates a FileDownloadedEvent.
func NewFileDownloadedEvent(path string) FileDownloadedEvent {
	return FileDownloadedEvent{
		baseEvent: newBaseEvent(TypeFileDownloaded),
		Path:      path,
	}
}
