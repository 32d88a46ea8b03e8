package shell

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofrs/flock"

	"camshell/internal/errors"
	"camshell/internal/logging"
)

// PortLock is an exclusive flock over a camera port, preventing two
// camshell processes from driving the same camera. The lock file lives in
// the state directory, named after the sanitized port.
type PortLock struct {
	fl     *flock.Flock
	logger *logging.Logger
}

// AcquirePortLock takes the exclusive lock for the given port.
// Returns ErrPortLocked if another process already holds it.
// An empty port locks the "default" slot (gphoto2 auto-picks the camera,
// so two portless sessions would still collide).
func AcquirePortLock(stateDir, port string, logger *logging.Logger) (*PortLock, error) {
	if err := os.MkdirAll(stateDir, 0755); err != nil {
		return nil, fmt.Errorf("create state dir: %w", err)
	}

	name := port
	if name == "" {
		name = "default"
	}
	path := filepath.Join(stateDir, sanitizePort(name)+".lock")

	fl := flock.New(path)
	ok, err := fl.TryLock()
	if err != nil {
		return nil, fmt.Errorf("lock %s: %w", path, err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", errors.ErrPortLocked, port)
	}

	logger.Debug("port lock acquired", "path", path)
	return &PortLock{fl: fl, logger: logger}, nil
}

// Release drops the lock. Safe to call multiple times.
func (l *PortLock) Release() error {
	if l == nil || l.fl == nil {
		return nil
	}
	if err := l.fl.Unlock(); err != nil {
		return err
	}
	l.logger.Debug("port lock released", "path", l.fl.Path())
	return nil
}

// sanitizePort maps a port name like "usb:001,007" to a filesystem-safe
// lock file stem.
func sanitizePort(port string) string {
	var sb strings.Builder
	for _, r := range port {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			sb.WriteRune(r)
		default:
			sb.WriteRune('_')
		}
	}
	return sb.String()
}
