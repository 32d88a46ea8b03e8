package camera

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"camshell/internal/errors"
	"camshell/internal/event"
	"camshell/internal/logging"
	"camshell/internal/shell"
)

// Command vocabulary sent to the shell.
const (
	cmdGetConfig      = "get-config"
	cmdSetConfig      = "set-config"
	cmdSetConfigIndex = "set-config-index"
	cmdCaptureImage   = "capture-image-and-download"
	cmdCapturePreview = "capture-preview"
	cmdListAllConfig  = "list-all-config"
	cmdChangeDir      = "lcd"
)

// SessionOptions configure a session.
type SessionOptions struct {
	// ShellID is the prompt prefix token (normally "gphoto2").
	ShellID string
	// WorkDir is where capture downloads land.
	WorkDir string
	// PreviewFilename is the fixed filename preview captures use.
	PreviewFilename string
	// PollInterval is the cadence of the Run loop and the granularity of
	// WaitIdle.
	PollInterval time.Duration
}

// refreshState tracks an in-flight refresh-all fan-out. Each collected
// per-entry result chains the next get, so the fan-out consumes one
// idle/busy round trip per path.
type refreshState struct {
	paths     []string
	next      int
	staged    *Model
	collected int
}

// Session drives one interactive shell subprocess. All mutation happens
// under the session mutex inside Tick and the dispatch methods; events
// are published after the lock is released so subscribers can call back
// into the session.
type Session struct {
	mu sync.Mutex

	id        string
	transport shell.Transport
	detector  *Detector
	parser    *Parser
	bus       *event.Bus
	logger    *logging.Logger

	poll time.Duration

	status  Status
	pending string // command in flight, for logging and busy events
	queue   Queue
	model   *Model
	refresh *refreshState
	capture []CaptureFile
	closed  bool
}

// NewSession creates a session over an already-started transport. The
// session does not poll by itself; drive it with Run or call Tick from
// an external timer.
func NewSession(transport shell.Transport, bus *event.Bus, logger *logging.Logger, opts SessionOptions) *Session {
	if opts.ShellID == "" {
		opts.ShellID = "gphoto2"
	}
	if opts.PollInterval <= 0 {
		opts.PollInterval = 250 * time.Millisecond
	}
	id := uuid.NewString()
	return &Session{
		id:        id,
		transport: transport,
		detector:  NewDetector(opts.ShellID),
		parser:    &Parser{WorkDir: opts.WorkDir, PreviewFilename: opts.PreviewFilename},
		bus:       bus,
		logger:    logger.WithSession(id),
		poll:      opts.PollInterval,
		status:    StatusInit,
		model:     NewModel(),
	}
}

// ID returns the session's unique identifier.
func (s *Session) ID() string { return s.id }

// Status returns the current readiness status.
func (s *Session) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// Pending returns the number of queued continuations plus the paths a
// refresh fan-out has yet to visit.
func (s *Session) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := s.queue.Len()
	if s.refresh != nil {
		n += len(s.refresh.paths) - s.refresh.next
	}
	return n
}

// Model returns a deep copy of the configuration model.
func (s *Session) Model() *Model {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.model.Snapshot()
}

// Entry returns a copy of one configuration entry by name or path.
func (s *Session) Entry(name string) (*Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, err := s.lookupLocked(name)
	if err != nil {
		return nil, err
	}
	return e.Clone(), nil
}

// LastCapture returns the files reported by the most recent completed
// capture.
func (s *Session) LastCapture() []CaptureFile {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]CaptureFile, len(s.capture))
	copy(out, s.capture)
	return out
}

// Tick is one cooperative poll: classify the output tail, apply the
// status transition, and if the shell is idle consume exactly one
// queued continuation. Safe to call from a single driving goroutine.
func (s *Session) Tick() {
	s.mu.Lock()
	if s.closed || s.status == StatusError {
		s.mu.Unlock()
		return
	}

	var events []event.Event
	out := s.transport.Read()
	events = append(events, s.transitionLocked(s.classifyLocked(out))...)
	if s.status == StatusIdle {
		if c, ok := s.queue.Pop(); ok {
			events = append(events, s.runContinuationLocked(c, out)...)
		}
	}
	s.mu.Unlock()

	s.publish(events)
}

// Send dispatches a command. The session must be idle: a busy session
// rejects with ErrBusy and the command is dropped, never queued. On
// success the output buffer is cleared so later parsing only sees text
// produced by this command, the continuation joins the queue tail, and
// the status flips to busy without waiting for the next poll.
func (s *Session) Send(command string, c Continuation) error {
	s.mu.Lock()
	events, err := s.sendLocked(command, c)
	s.mu.Unlock()
	s.publish(events)
	return err
}

func (s *Session) sendLocked(command string, c Continuation) ([]event.Event, error) {
	if s.closed {
		return nil, errors.ErrSessionClosed
	}
	switch s.status {
	case StatusError:
		return nil, errors.ErrSessionFailed
	case StatusIdle:
	default:
		s.logger.Debug("command rejected while not idle",
			"command", command, "status", s.status.String())
		return nil, fmt.Errorf("dispatch %q: %w", command, errors.ErrBusy)
	}

	s.transport.Clear()
	if err := s.transport.WriteLine(command); err != nil {
		s.logger.Error("command write failed", "command", command, "error", err)
		s.status = StatusError
		return []event.Event{event.NewStatusErrorEvent(s.id, "command write failed")},
			errors.NewTransportError("write", err)
	}

	s.logger.Debug("command dispatched", "command", command, "continuation", c.Kind.String())
	s.queue.Push(c)
	s.pending = command
	s.status = StatusBusy
	return []event.Event{event.NewStatusBusyEvent(s.id, command)}, nil
}

// classifyLocked maps transport output to a status. A session that has
// not yet seen any output stays in init; the shell simply has not
// printed its first prompt.
func (s *Session) classifyLocked(out string) Status {
	if s.status == StatusInit && out == "" {
		return StatusInit
	}
	return s.detector.Classify(out)
}

// transitionLocked applies a status change and returns the edge events
// to publish. No events fire while the status is unchanged.
func (s *Session) transitionLocked(next Status) []event.Event {
	if next == s.status {
		return nil
	}
	prev := s.status
	s.status = next
	s.logger.Debug("status transition", "from", prev.String(), "to", next.String())

	switch next {
	case StatusIdle:
		s.pending = ""
		return []event.Event{event.NewStatusIdleEvent(s.id)}
	case StatusBusy:
		return []event.Event{event.NewStatusBusyEvent(s.id, s.pending)}
	case StatusError:
		s.logger.Error("session failed", "last_command", s.pending)
		return []event.Event{event.NewStatusErrorEvent(s.id, "empty output buffer")}
	}
	return nil
}

// runContinuationLocked consumes one continuation against the output
// accumulated since the command that scheduled it.
func (s *Session) runContinuationLocked(c Continuation, out string) []event.Event {
	switch c.Kind {
	case KindGet:
		return s.handleGetLocked(c.Name, out)
	case KindImage:
		return s.handleCaptureLocked(out)
	case KindPreview:
		return s.handleCaptureLocked(out)
	case KindRefreshAll:
		return s.handleRefreshAllLocked(out)
	case KindCollectValue:
		return s.handleCollectLocked(c.Name, out)
	}
	return nil
}

// handleGetLocked folds a single get-config result into the model. An
// empty name discards the output; a fallback result never clobbers an
// entry the model already knows.
func (s *Session) handleGetLocked(path string, out string) []event.Event {
	if path == "" {
		return nil
	}
	name := SanitizeName(lastSegment(path))
	res := s.parser.Parse(out, []string{name})

	switch res.Kind {
	case ResultValue, ResultEntry:
		if res.Entry.Fallback && s.model.Has(name) {
			s.logger.Debug("discarding unparseable get result", "name", name)
			return nil
		}
		res.Entry.Name = name
		if res.Entry.Path == "" {
			res.Entry.Path = path
		}
		s.model.Add(res.Entry)
	case ResultModel:
		for _, e := range res.Model.Entries() {
			s.model.Add(e)
		}
	}
	return nil
}

// handleCaptureLocked records the downloaded files of a capture round
// trip. A capture that produced no surviving files fires no stop event.
func (s *Session) handleCaptureLocked(out string) []event.Event {
	res := s.parser.Parse(out, nil)
	if res.Kind != ResultCapture || len(res.Files) == 0 {
		s.logger.Warn("capture completed without downloadable files")
		return nil
	}
	s.capture = res.Files
	files := make([]event.CapturedFile, len(res.Files))
	for i, f := range res.Files {
		files[i] = event.CapturedFile{Name: f.Path, Preview: f.Preview}
	}
	s.logger.Info("capture completed", "files", len(files))
	return []event.Event{event.NewCaptureStoppedEvent(s.id, files)}
}

// handleRefreshAllLocked starts the per-entry fan-out over the paths the
// full listing reported. Dispatch requires idle, so the fan-out chains:
// each collected result sends the next get.
func (s *Session) handleRefreshAllLocked(out string) []event.Event {
	paths := ExtractPaths(out)
	if len(paths) == 0 {
		s.logger.Warn("config listing reported no paths")
		s.model = NewModel()
		return []event.Event{event.NewConfigRefreshedEvent(s.id, 0)}
	}
	s.logger.Info("refreshing config model", "paths", len(paths))
	s.refresh = &refreshState{paths: paths, staged: NewModel()}
	return s.sendNextCollectLocked()
}

// handleCollectLocked stages one fan-out result and either chains the
// next get or, once every path has answered, atomically replaces the
// model.
func (s *Session) handleCollectLocked(path string, out string) []event.Event {
	if s.refresh == nil {
		// A stale collect from a superseded refresh; drop it.
		return nil
	}
	name := SanitizeName(lastSegment(path))
	res := s.parser.Parse(out, []string{name})
	if res.Kind == ResultValue || res.Kind == ResultEntry {
		res.Entry.Name = name
		if res.Entry.Path == "" {
			res.Entry.Path = path
		}
		s.refresh.staged.Add(res.Entry)
	}
	s.refresh.collected++

	if s.refresh.collected < len(s.refresh.paths) {
		return s.sendNextCollectLocked()
	}

	count := s.refresh.staged.Len()
	s.model = s.refresh.staged
	s.refresh = nil
	s.logger.Info("config model replaced", "entries", count)
	return []event.Event{event.NewConfigRefreshedEvent(s.id, count)}
}

// sendNextCollectLocked dispatches the get for the next fan-out path.
// The continuation just ran, so the session is idle by construction; a
// write failure still fails the session the usual way.
func (s *Session) sendNextCollectLocked() []event.Event {
	path := s.refresh.paths[s.refresh.next]
	s.refresh.next++
	events, err := s.sendLocked(cmdGetConfig+" "+path, Continuation{Kind: KindCollectValue, Name: path})
	if err != nil {
		s.logger.Error("refresh fan-out aborted", "path", path, "error", err)
		s.refresh = nil
	}
	return events
}

// FetchConfig asks the device for one configuration entry; the result
// folds into the model when its continuation runs.
func (s *Session) FetchConfig(path string) error {
	return s.Send(cmdGetConfig+" "+path, Continuation{Kind: KindGet, Name: path})
}

// SetConfig writes a configuration value. Validation is local: unknown
// and read-only entries fail without contacting the device. On success
// the cached value updates immediately and a reconciling get is queued
// behind the write.
func (s *Session) SetConfig(path, value string) error {
	s.mu.Lock()
	entry, err := s.lookupLocked(path)
	if err != nil {
		s.mu.Unlock()
		return err
	}
	if entry.Readonly {
		s.mu.Unlock()
		return errors.NewConfigError(entry.Name, errors.ErrReadonlyConfig)
	}

	events, err := s.sendLocked(fmt.Sprintf("%s %s=%s", cmdSetConfig, path, value),
		Continuation{Kind: KindGet, Name: path})
	if err == nil {
		entry.Current = value
		events = append(events, event.NewConfigChangedEvent(s.id, entry.Name, value))
	}
	s.mu.Unlock()
	s.publish(events)
	return err
}

// SetConfigIndex writes a choice entry by index. The index must name
// one of the entry's known choices.
func (s *Session) SetConfigIndex(path string, index int) error {
	s.mu.Lock()
	entry, err := s.lookupLocked(path)
	if err != nil {
		s.mu.Unlock()
		return err
	}
	if entry.Readonly {
		s.mu.Unlock()
		return errors.NewConfigError(entry.Name, errors.ErrReadonlyConfig)
	}
	label, ok := entry.ChoiceLabel(index)
	if !ok {
		s.mu.Unlock()
		return errors.NewConfigError(entry.Name,
			fmt.Errorf("choice index %d out of range: %w", index, errors.ErrUnknownConfig))
	}

	events, err := s.sendLocked(fmt.Sprintf("%s %s=%d", cmdSetConfigIndex, path, index),
		Continuation{Kind: KindGet, Name: path})
	if err == nil {
		entry.Current = label
		events = append(events, event.NewConfigChangedEvent(s.id, entry.Name, label))
	}
	s.mu.Unlock()
	s.publish(events)
	return err
}

// RefreshAll rebuilds the configuration model: one listing command, then
// a chained get per reported path, then an atomic model swap. Costs one
// poll round trip per entry.
func (s *Session) RefreshAll() error {
	return s.Send(cmdListAllConfig, Continuation{Kind: KindRefreshAll})
}

// CaptureImage triggers a full image capture and download.
func (s *Session) CaptureImage() error {
	return s.sendCapture(cmdCaptureImage, KindImage, false)
}

// CapturePreview triggers a preview frame capture.
func (s *Session) CapturePreview() error {
	return s.sendCapture(cmdCapturePreview, KindPreview, true)
}

func (s *Session) sendCapture(command string, kind Kind, preview bool) error {
	s.mu.Lock()
	events, err := s.sendLocked(command, Continuation{Kind: kind})
	if err == nil {
		events = append(events, event.NewCaptureStartedEvent(s.id, preview))
	}
	s.mu.Unlock()
	s.publish(events)
	return err
}

// ChangeDir changes the shell's local download directory. The output
// carries no state, so the continuation discards it.
func (s *Session) ChangeDir(path string) error {
	return s.Send(cmdChangeDir+" "+path, Continuation{Kind: KindGet})
}

// lookupLocked resolves a name or full path against the model.
func (s *Session) lookupLocked(name string) (*Entry, error) {
	key := SanitizeName(lastSegment(name))
	return s.model.Get(key)
}

// Run drives the session with a ticker until the context is cancelled
// or the session fails or closes.
func (s *Session) Run(ctx context.Context) error {
	ticker := time.NewTicker(s.poll)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			s.Tick()
			s.mu.Lock()
			status, closed := s.status, s.closed
			s.mu.Unlock()
			if closed {
				return errors.ErrSessionClosed
			}
			if status == StatusError {
				return errors.ErrSessionFailed
			}
		}
	}
}

// WaitIdle polls until the session is idle with nothing pending. It
// sleeps between polls; it never blocks a tick handler, so it must not
// be called from an event subscriber.
func (s *Session) WaitIdle(ctx context.Context) error {
	interval := s.poll / 2
	if interval <= 0 {
		interval = 10 * time.Millisecond
	}
	for {
		s.mu.Lock()
		status := s.status
		pending := s.queue.Len()
		refreshing := s.refresh != nil
		closed := s.closed
		s.mu.Unlock()

		switch {
		case closed:
			return errors.ErrSessionClosed
		case status == StatusError:
			return errors.ErrSessionFailed
		case status == StatusIdle && pending == 0 && !refreshing:
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(interval):
		}
	}
}

// Close shuts the session down and kills the subprocess. Idempotent.
func (s *Session) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	s.mu.Unlock()

	s.logger.Info("session closed")
	return s.transport.Close()
}

func (s *Session) publish(events []event.Event) {
	if s.bus == nil {
		return
	}
	for _, e := range events {
		s.bus.Publish(e)
	}
}
