package shell

import (
	"fmt"
	"os"
	"sync"

	"gopkg.in/yaml.v3"

	"camshell/internal/errors"
)

// Script maps shell commands to the raw output the simulated shell should
// produce for them, excluding the trailing prompt (the transport appends
// that itself).
type Script map[string]string

// LoadScript reads a YAML script file of command -> response pairs.
func LoadScript(path string) (Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read script: %w", err)
	}
	var s Script
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse script %s: %w", path, err)
	}
	return s, nil
}

// SimTransport is a scripted Transport used by --simulate mode and tests.
// Every written command is answered immediately from the script, echoed
// the way a pty would, and followed by an idle prompt.
type SimTransport struct {
	mu     sync.Mutex
	script Script
	buf    string
	prompt string
	closed bool
}

// NewSimTransport creates a simulated shell. shellID is the prompt prefix
// token (normally "gphoto2"). The initial buffer already contains a prompt
// so the session reaches idle on its first poll.
func NewSimTransport(script Script, shellID string) *SimTransport {
	prompt := shellID + ": /> "
	return &SimTransport{
		script: script,
		prompt: prompt,
		buf:    prompt,
	}
}

// WriteLine answers the command from the script. Unknown commands produce
// an error line, mirroring how the real shell complains but stays alive.
func (s *SimTransport) WriteLine(command string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return errors.NewTransportError("write", errors.ErrSessionClosed)
	}

	response, ok := s.script[command]
	if !ok {
		response = fmt.Sprintf("*** Error: unknown command %q ***", command)
	}

	// Echo the command like a pty, then the scripted body, then a prompt.
	s.buf += command + "\n"
	if response != "" {
		s.buf += response + "\n"
	}
	s.buf += s.prompt
	return nil
}

// Read returns everything accumulated since the last Clear.
func (s *SimTransport) Read() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf
}

// Clear resets the accumulation buffer.
func (s *SimTransport) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.buf = ""
}

// Close marks the transport closed; subsequent writes fail.
func (s *SimTransport) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}
