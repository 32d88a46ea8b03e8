package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"camshell/internal/camera"
	"camshell/internal/event"
	"camshell/internal/logging"
	"camshell/internal/shell"
)

func newTestMonitor(t *testing.T) (*Monitor, *camera.Session, *event.Bus) {
	t.Helper()
	bus := event.NewBus()
	sim := shell.NewSimTransport(shell.Script{
		"get-config /main/imgsettings/iso": "Label: ISO Speed\nType: RADIO\nCurrent: 200\nEND",
	}, "gphoto2")
	s := camera.NewSession(sim, bus, logging.NopLogger(), camera.SessionOptions{
		WorkDir: t.TempDir(),
	})
	s.Tick() // reach idle
	return NewMonitor(s, bus), s, bus
}

func TestMonitorStatusBadge(t *testing.T) {
	m, s, _ := newTestMonitor(t)

	if !strings.Contains(m.View(), "IDLE") {
		t.Error("idle session should render an IDLE badge")
	}

	m.applyEvent(event.NewStatusBusyEvent(s.ID(), "get-config /main/imgsettings/iso"))
	view := m.View()
	if !strings.Contains(view, "BUSY") {
		t.Error("busy event should flip the badge")
	}
	if !strings.Contains(view, "get-config /main/imgsettings/iso") {
		t.Error("busy view should show the in-flight command")
	}

	m.applyEvent(event.NewStatusErrorEvent(s.ID(), "empty output buffer"))
	if !strings.Contains(m.View(), "ERROR") {
		t.Error("error event should flip the badge")
	}
}

func TestMonitorConfigTable(t *testing.T) {
	m, s, _ := newTestMonitor(t)

	if err := s.FetchConfig("/main/imgsettings/iso"); err != nil {
		t.Fatal(err)
	}
	s.Tick() // idle again, continuation folds the entry
	m.reloadTable()

	view := m.View()
	if !strings.Contains(view, "iso") || !strings.Contains(view, "200") {
		t.Errorf("config table should list the fetched entry:\n%s", view)
	}
}

func TestMonitorCaptureLifecycle(t *testing.T) {
	m, s, _ := newTestMonitor(t)

	m.applyEvent(event.NewCaptureStartedEvent(s.ID(), false))
	if !strings.Contains(m.View(), "capturing") {
		t.Error("capture start should show the capturing indicator")
	}

	m.applyEvent(event.NewCaptureStoppedEvent(s.ID(), []event.CapturedFile{
		{Name: "/shots/img_0001.jpg"},
	}))
	view := m.View()
	if strings.Contains(view, "capturing") {
		t.Error("capture stop should clear the indicator")
	}
	if !strings.Contains(view, "img_0001.jpg") {
		t.Error("capture stop should show the downloaded file")
	}
}

func TestMonitorDownloadHistoryCapped(t *testing.T) {
	m, _, _ := newTestMonitor(t)

	for i := 0; i < maxDownloads+3; i++ {
		m.applyEvent(event.NewFileDownloadedEvent("/shots/img.jpg"))
	}
	if len(m.downloads) != maxDownloads {
		t.Errorf("downloads = %d, want capped at %d", len(m.downloads), maxDownloads)
	}
}

func TestMonitorQuitUnsubscribes(t *testing.T) {
	m, _, bus := newTestMonitor(t)
	before := bus.SubscriptionCount()

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil {
		t.Fatal("q should produce a quit command")
	}
	if bus.SubscriptionCount() != before-1 {
		t.Error("quit should drop the bus subscription")
	}
	if m.View() != "" {
		t.Error("quitting view should be empty")
	}
}
