// Package shell owns the gphoto2 --shell subprocess: spawning it under a
// pty, accumulating its output, and writing newline-terminated commands to
// it. The session core consumes this package through the Transport
// interface so tests can substitute a scripted implementation.
package shell

import "sync"

// Transport is the surface the session core consumes. Implementations:
// Proc (a real gphoto2 subprocess under a pty) and SimTransport (a
// scripted stand-in for tests and --simulate mode).
type Transport interface {
	// WriteLine writes a newline-terminated command to the shell's input.
	WriteLine(command string) error

	// Read returns everything accumulated since the last Clear.
	Read() string

	// Clear resets the accumulation buffer, establishing a new high-water
	// mark: subsequent Reads only see output produced after this point.
	Clear()

	// Close tears the transport down, killing the subprocess if any.
	Close() error
}

// DefaultBufferCap is the accumulation buffer limit. The buffer is cleared
// on every dispatch, so it only ever holds one command's worth of output;
// the cap guards against a wedged shell streaming unbounded text.
const DefaultBufferCap = 256 * 1024

// Buffer accumulates subprocess output between high-water marks.
//
// The pty reader goroutine writes while the session poll loop reads, so
// all methods are safe for concurrent use. When the cap is exceeded the
// oldest bytes are dropped; readiness detection only inspects the tail
// and the parser only needs output since the last Clear.
type Buffer struct {
	mu   sync.Mutex
	data []byte
	cap  int
}

// NewBuffer creates a Buffer with the given capacity in bytes.
// A capacity of zero or less uses DefaultBufferCap.
func NewBuffer(capacity int) *Buffer {
	if capacity <= 0 {
		capacity = DefaultBufferCap
	}
	return &Buffer{cap: capacity}
}

// Write appends data to the buffer, implementing io.Writer.
// Write always succeeds; if the cap is exceeded the oldest bytes are
// discarded to make room.
func (b *Buffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.data = append(b.data, p...)
	if overflow := len(b.data) - b.cap; overflow > 0 {
		b.data = b.data[overflow:]
	}
	return len(p), nil
}

// String returns a copy of everything accumulated since the last Reset.
func (b *Buffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return string(b.data)
}

// Len returns the number of bytes currently stored.
func (b *Buffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.data)
}

// Reset clears the buffer. The underlying memory is retained to avoid
// reallocation on the next command's output.
func (b *Buffer) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.data = b.data[:0]
}
