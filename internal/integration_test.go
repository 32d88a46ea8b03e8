package internal

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"camshell/internal/camera"
	"camshell/internal/event"
	"camshell/internal/logging"
	"camshell/internal/shell"
)

// End-to-end flow over the simulated shell: connect, refresh the full
// configuration, write a value, capture, and fail over when the shell
// dies. The simulator answers synchronously, so every round trip
// completes within one poll.

func isoBody(current string) string {
	return "Label: ISO Speed\nType: RADIO\nCurrent: " + current +
		"\nChoice: 0 Auto\nChoice: 1 200\nChoice: 2 400\nEND"
}

func newIntegrationSession(t *testing.T, script shell.Script) (*camera.Session, *event.Bus, string) {
	t.Helper()
	dir := t.TempDir()
	bus := event.NewBus()
	sim := shell.NewSimTransport(script, "gphoto2")
	sess := camera.NewSession(sim, bus, logging.NopLogger(), camera.SessionOptions{
		WorkDir:         dir,
		PreviewFilename: "capture_preview.jpg",
		PollInterval:    5 * time.Millisecond,
	})
	t.Cleanup(func() { _ = sess.Close() })
	return sess, bus, dir
}

// run drives the session in the background and waits for it to drain.
func run(t *testing.T, sess *camera.Session) context.CancelFunc {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	go func() { _ = sess.Run(ctx) }()
	return cancel
}

func drain(t *testing.T, sess *camera.Session) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := sess.WaitIdle(ctx); err != nil {
		t.Fatalf("session did not drain: %v", err)
	}
}

func TestIntegrationRefreshSetAndReadBack(t *testing.T) {
	script := shell.Script{
		"list-all-config":                      "/main/imgsettings/iso\n/main/status/batterylevel",
		"get-config /main/imgsettings/iso":     isoBody("200"),
		"get-config /main/status/batterylevel": "Label: Battery Level\nType: TEXT\nCurrent: 100%\nReadonly: 1\nEND",
		"set-config /main/imgsettings/iso=400": "",
	}
	sess, bus, _ := newIntegrationSession(t, script)

	var mu sync.Mutex
	var refreshed []event.ConfigRefreshedEvent
	bus.Subscribe(event.TypeConfigRefreshed, func(e event.Event) {
		mu.Lock()
		defer mu.Unlock()
		refreshed = append(refreshed, e.(event.ConfigRefreshedEvent))
	})

	cancel := run(t, sess)
	defer cancel()
	drain(t, sess)

	if err := sess.RefreshAll(); err != nil {
		t.Fatalf("RefreshAll: %v", err)
	}
	drain(t, sess)

	model := sess.Model()
	if model.Len() != 2 {
		t.Fatalf("model has %d entries, want 2", model.Len())
	}
	mu.Lock()
	if len(refreshed) != 1 || refreshed[0].Count != 2 {
		t.Fatalf("refresh events = %+v", refreshed)
	}
	mu.Unlock()

	battery, err := sess.Entry("batterylevel")
	if err != nil {
		t.Fatal(err)
	}
	if !battery.Readonly || battery.Current != "100%" {
		t.Errorf("battery = %+v", battery)
	}
	if err := sess.SetConfig("/main/status/batterylevel", "0"); err == nil {
		t.Error("writing a readonly entry should fail locally")
	}

	if err := sess.SetConfig("/main/imgsettings/iso", "400"); err != nil {
		t.Fatalf("SetConfig: %v", err)
	}
	drain(t, sess)

	iso, err := sess.Entry("iso")
	if err != nil {
		t.Fatal(err)
	}
	if iso.Current != "400" {
		t.Errorf("iso = %q after set, want 400", iso.Current)
	}
}

func TestIntegrationCaptureFlow(t *testing.T) {
	script := shell.Script{
		"capture-image-and-download": "New file is in location /capt0000.jpg\nSaving file as img_0001.jpg\nDeleting file /capt0000.jpg",
		"capture-preview":            "Saving file as capture_preview.jpg",
	}
	sess, bus, dir := newIntegrationSession(t, script)

	// The simulator does not write files; stage the downloads the way
	// the real shell would have.
	for _, name := range []string{"img_0001.jpg", "capture_preview.jpg"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("jpeg"), 0644); err != nil {
			t.Fatal(err)
		}
	}

	var mu sync.Mutex
	var stops []event.CaptureStoppedEvent
	bus.Subscribe(event.TypeCaptureStopped, func(e event.Event) {
		mu.Lock()
		defer mu.Unlock()
		stops = append(stops, e.(event.CaptureStoppedEvent))
	})

	cancel := run(t, sess)
	defer cancel()
	drain(t, sess)

	if err := sess.CaptureImage(); err != nil {
		t.Fatalf("CaptureImage: %v", err)
	}
	drain(t, sess)

	files := sess.LastCapture()
	if len(files) != 1 || files[0].Preview {
		t.Fatalf("LastCapture = %+v, want one final image", files)
	}
	if filepath.Base(files[0].Path) != "img_0001.jpg" {
		t.Errorf("captured file = %q", files[0].Path)
	}

	if err := sess.CapturePreview(); err != nil {
		t.Fatalf("CapturePreview: %v", err)
	}
	drain(t, sess)

	files = sess.LastCapture()
	if len(files) != 1 || !files[0].Preview {
		t.Fatalf("LastCapture = %+v, want one preview", files)
	}
	mu.Lock()
	if len(stops) != 2 {
		t.Errorf("capture.stopped events = %d, want 2", len(stops))
	}
	mu.Unlock()
}

func TestIntegrationShellDeathFailsSession(t *testing.T) {
	sess, _, _ := newIntegrationSession(t, shell.Script{})

	cancel := run(t, sess)
	defer cancel()
	drain(t, sess)

	// Closing the session stops the poll loop and kills the transport.
	_ = sess.Close()
	if err := sess.FetchConfig("/main/imgsettings/iso"); err == nil {
		t.Fatal("dispatch after close should fail")
	}
}
