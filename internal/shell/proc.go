package shell

import (
	"os"
	"os/exec"
	"sync/atomic"

	"github.com/creack/pty"

	"camshell/internal/errors"
	"camshell/internal/logging"
)

// Options holds the configuration for spawning the gphoto2 shell.
type Options struct {
	// Binary is the gphoto2 executable (default: "gphoto2").
	Binary string
	// Port is passed as --port when non-empty (e.g. "usb:001,007").
	Port string
	// ExtraArgs are appended to the invocation verbatim.
	ExtraArgs []string
	// Dir is the working directory; captures download into it.
	Dir string
	// BufferCap overrides the accumulation buffer cap (0 = default).
	BufferCap int
}

// Proc is a Transport backed by a real gphoto2 --shell subprocess running
// under a pty. gphoto2 only emits its interactive prompt when stdin is a
// terminal, so a plain pipe would never satisfy the readiness detector.
type Proc struct {
	cmd    *exec.Cmd
	ptmx   *os.File
	buf    *Buffer
	logger *logging.Logger
	closed atomic.Bool
	done   chan struct{}
}

// Start spawns the gphoto2 shell and begins draining its output into the
// accumulation buffer. A spawn failure is a fatal TransportError.
func Start(opts Options, logger *logging.Logger) (*Proc, error) {
	if opts.Binary == "" {
		opts.Binary = "gphoto2"
	}

	args := []string{"--shell"}
	if opts.Port != "" {
		args = append(args, "--port", opts.Port)
	}
	args = append(args, opts.ExtraArgs...)

	cmd := exec.Command(opts.Binary, args...)
	if opts.Dir != "" {
		cmd.Dir = opts.Dir
	}

	ptmx, err := pty.Start(cmd)
	if err != nil {
		return nil, errors.NewTransportError("spawn", err)
	}

	p := &Proc{
		cmd:    cmd,
		ptmx:   ptmx,
		buf:    NewBuffer(opts.BufferCap),
		logger: logger,
		done:   make(chan struct{}),
	}

	logger.Info("shell spawned",
		"binary", opts.Binary,
		"args", args,
		"pid", cmd.Process.Pid,
	)

	go p.readLoop()
	return p, nil
}

// readLoop drains pty output into the buffer until the pty closes.
func (p *Proc) readLoop() {
	defer close(p.done)

	chunk := make([]byte, 4096)
	for {
		n, err := p.ptmx.Read(chunk)
		if n > 0 {
			p.buf.Write(chunk[:n])
		}
		if err != nil {
			if !p.closed.Load() {
				p.logger.Warn("shell output stream ended", "error", err)
			}
			return
		}
	}
}

// WriteLine writes a newline-terminated command to the shell.
// A write failure is a fatal TransportError.
func (p *Proc) WriteLine(command string) error {
	if p.closed.Load() {
		return errors.NewTransportError("write", errors.ErrSessionClosed)
	}
	if _, err := p.ptmx.WriteString(command + "\n"); err != nil {
		return errors.NewTransportError("write", err)
	}
	return nil
}

// Read returns everything accumulated since the last Clear.
func (p *Proc) Read() string {
	return p.buf.String()
}

// Clear resets the accumulation buffer.
func (p *Proc) Clear() {
	p.buf.Reset()
}

// Close kills the subprocess and releases the pty.
// Safe to call multiple times.
func (p *Proc) Close() error {
	if !p.closed.CompareAndSwap(false, true) {
		return nil
	}

	// Closing the pty unblocks the read loop; killing the process ensures
	// gphoto2 does not keep the camera claimed.
	closeErr := p.ptmx.Close()
	if p.cmd.Process != nil {
		_ = p.cmd.Process.Kill()
	}
	_ = p.cmd.Wait()
	<-p.done

	p.logger.Info("shell closed")
	return closeErr
}
