// Package tui implements the interactive session monitor. It shows the
// live readiness status, capture activity, downloads, and the current
// configuration model of one camera session.
package tui

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"camshell/internal/camera"
	"camshell/internal/event"
)

// refreshInterval is how often the config table re-reads the session
// model. Status changes arrive via bus events and need no polling.
const refreshInterval = 500 * time.Millisecond

// maxDownloads caps the download history shown in the sidebar.
const maxDownloads = 5

type eventMsg struct{ ev event.Event }

type refreshMsg time.Time

// Monitor is the bubbletea model for the session monitor.
type Monitor struct {
	session *camera.Session
	bus     *event.Bus

	events chan event.Event
	subID  string

	configTable table.Model

	width  int
	height int

	status      camera.Status
	lastCommand string
	capturing   bool
	lastCapture string
	downloads   []string
	quitting    bool
}

// NewMonitor creates a monitor bound to a running session. Bus events
// are bridged through a buffered channel; under sustained bursts the
// oldest signal wins and the periodic refresh catches the rest.
func NewMonitor(session *camera.Session, bus *event.Bus) *Monitor {
	m := &Monitor{
		session: session,
		bus:     bus,
		events:  make(chan event.Event, 64),
		status:  session.Status(),
	}

	m.subID = bus.SubscribeAll(func(e event.Event) {
		select {
		case m.events <- e:
		default:
		}
	})

	columns := []table.Column{
		{Title: "Name", Width: 22},
		{Title: "Type", Width: 8},
		{Title: "Current", Width: 26},
		{Title: "RO", Width: 3},
	}
	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(12),
	)
	st := table.DefaultStyles()
	st.Header = st.Header.Bold(true).Foreground(primaryColor)
	st.Selected = st.Selected.Foreground(textColor).Background(borderColor)
	t.SetStyles(st)
	m.configTable = t

	return m
}

// Init starts the event pump and the periodic model refresh.
func (m *Monitor) Init() tea.Cmd {
	return tea.Batch(m.waitForEvent(), m.scheduleRefresh())
}

// waitForEvent blocks on the bridged bus channel.
func (m *Monitor) waitForEvent() tea.Cmd {
	return func() tea.Msg {
		return eventMsg{ev: <-m.events}
	}
}

func (m *Monitor) scheduleRefresh() tea.Cmd {
	return tea.Tick(refreshInterval, func(t time.Time) tea.Msg {
		return refreshMsg(t)
	})
}

// Update handles key presses, bridged session events, and the periodic
// config refresh.
func (m *Monitor) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.quitting = true
			m.bus.Unsubscribe(m.subID)
			return m, tea.Quit
		case "r":
			// Best effort: a busy session rejects, the next keypress
			// can retry.
			_ = m.session.RefreshAll()
			return m, nil
		case "c":
			_ = m.session.CaptureImage()
			return m, nil
		case "p":
			_ = m.session.CapturePreview()
			return m, nil
		}
		var cmd tea.Cmd
		m.configTable, cmd = m.configTable.Update(msg)
		return m, cmd

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.configTable.SetHeight(max(4, msg.Height-10))
		return m, nil

	case eventMsg:
		m.applyEvent(msg.ev)
		return m, m.waitForEvent()

	case refreshMsg:
		m.reloadTable()
		return m, m.scheduleRefresh()
	}
	return m, nil
}

// applyEvent folds one session event into the view state.
func (m *Monitor) applyEvent(e event.Event) {
	switch ev := e.(type) {
	case event.StatusIdleEvent:
		m.status = camera.StatusIdle
		m.lastCommand = ""
	case event.StatusBusyEvent:
		m.status = camera.StatusBusy
		m.lastCommand = ev.Command
	case event.StatusErrorEvent:
		m.status = camera.StatusError
		m.lastCommand = ev.Reason
	case event.CaptureStartedEvent:
		m.capturing = true
	case event.CaptureStoppedEvent:
		m.capturing = false
		if len(ev.Files) > 0 {
			m.lastCapture = ev.Files[len(ev.Files)-1].Name
		}
	case event.FileDownloadedEvent:
		m.downloads = append(m.downloads, filepath.Base(ev.Path))
		if len(m.downloads) > maxDownloads {
			m.downloads = m.downloads[len(m.downloads)-maxDownloads:]
		}
	case event.ConfigRefreshedEvent, event.ConfigChangedEvent:
		m.reloadTable()
	}
}

// reloadTable rebuilds the config table rows from a model snapshot.
func (m *Monitor) reloadTable() {
	entries := m.session.Model().Entries()
	rows := make([]table.Row, 0, len(entries))
	for _, e := range entries {
		ro := ""
		if e.Readonly {
			ro = "y"
		}
		rows = append(rows, table.Row{e.Name, e.Type, e.Current, ro})
	}
	m.configTable.SetRows(rows)
}

// View renders the monitor.
func (m *Monitor) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(headerStyle.Render("camshell monitor"))
	b.WriteString("\n")

	b.WriteString(m.statusBadge())
	if m.lastCommand != "" {
		b.WriteString(mutedStyle.Render(m.lastCommand))
	}
	if pending := m.session.Pending(); pending > 0 {
		b.WriteString(mutedStyle.Render(fmt.Sprintf("  (%d pending)", pending)))
	}
	b.WriteString("\n")

	if m.capturing {
		b.WriteString(captureStyle.Render("● capturing..."))
		b.WriteString("\n")
	} else if m.lastCapture != "" {
		b.WriteString(captureStyle.Render("last capture: " + filepath.Base(m.lastCapture)))
		b.WriteString("\n")
	}
	if len(m.downloads) > 0 {
		b.WriteString(mutedStyle.Render("downloads: " + strings.Join(m.downloads, ", ")))
		b.WriteString("\n")
	}

	b.WriteString(tableBorder.Render(m.configTable.View()))
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("↑/↓ scroll · r refresh · c capture · p preview · q quit"))

	return b.String()
}

func (m *Monitor) statusBadge() string {
	switch m.status {
	case camera.StatusIdle:
		return badgeIdle.Render("IDLE")
	case camera.StatusBusy:
		return badgeBusy.Render("BUSY")
	case camera.StatusError:
		return badgeError.Render("ERROR")
	default:
		return badgeInit.Render("INIT")
	}
}

// Run starts the monitor program and blocks until it exits.
func Run(session *camera.Session, bus *event.Bus) error {
	p := tea.NewProgram(NewMonitor(session, bus), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
