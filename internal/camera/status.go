package camera

// Status represents the readiness of the shell session, inferred purely
// from its output tail.
type Status int

const (
	// StatusInit means the session exists but the shell has not produced
	// its first prompt yet.
	StatusInit Status = iota

	// StatusIdle means the output ends in a shell prompt; the device is
	// ready for the next command.
	StatusIdle

	// StatusBusy means a command is in flight: output is still streaming
	// or does not yet end in a prompt.
	StatusBusy

	// StatusError means the output buffer was unexpectedly empty or
	// unreadable; the subprocess likely died. Error is terminal until the
	// caller reconnects.
	StatusError
)

// String returns a human-readable name for the status.
func (s Status) String() string {
	switch s {
	case StatusInit:
		return "init"
	case StatusIdle:
		return "idle"
	case StatusBusy:
		return "busy"
	case StatusError:
		return "error"
	default:
		return "unknown"
	}
}
