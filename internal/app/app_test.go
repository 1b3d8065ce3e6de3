package app

import (
	"os"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"gocv.io/x/gocv"

	"github.com/ayusman/mudra/internal/capture"
	"github.com/ayusman/mudra/internal/detector"
	"github.com/ayusman/mudra/internal/gesture"
	"github.com/ayusman/mudra/internal/gesturelog"
	"github.com/ayusman/mudra/internal/slideshow"
)

// writeDeck drops an empty .pptx file into a temp dir and returns its path.
func writeDeck(t *testing.T) string {
	t.Helper()
	path := t.TempDir() + "/talk.pptx"
	if err := os.WriteFile(path, []byte("deck"), 0o644); err != nil {
		t.Fatalf("write test file: %v", err)
	}
	return path
}

func TestApp_FullSession(t *testing.T) {
	host := slideshow.NewFakeHost(10)
	a := New(Config{LogDir: t.TempDir()}, detector.NewMockDetector(), host, zerolog.Nop())

	if err := a.OpenPresentation(writeDeck(t)); err != nil {
		t.Fatalf("OpenPresentation() error = %v", err)
	}

	// Bypass the camera: open the log and dispatch directly, as the
	// capture loop would after classification.
	w, err := gesturelog.Open(a.config.LogDir)
	if err != nil {
		t.Fatalf("open gesture log: %v", err)
	}
	a.logWriter = w
	a.sessionID = "test-session"

	var events []Event
	a.OnGesture(func(ev Event) { events = append(events, ev) })

	for i := 0; i < 3; i++ {
		a.dispatch(gesture.LabelNextSlide)
	}
	a.dispatch(gesture.LabelPreviousSlide)

	a.Close()

	// Slide pointer: started at 1, advanced 3, stepped back 1.
	if got := host.Slide(); got != 3 {
		t.Errorf("slide pointer = %d, want 3", got)
	}

	data, err := os.ReadFile(w.Path())
	if err != nil {
		t.Fatalf("read gesture log: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 4 {
		t.Fatalf("got %d log lines, want 4:\n%s", len(lines), data)
	}

	if len(events) != 4 {
		t.Errorf("got %d events, want 4", len(events))
	}
	for _, ev := range events {
		if ev.Session != "test-session" {
			t.Errorf("event session = %q, want %q", ev.Session, "test-session")
		}
	}

	if host.Showing() {
		t.Error("slideshow view still showing after Close")
	}
	if host.QuitCalls() != 1 {
		t.Errorf("host quit %d times, want 1", host.QuitCalls())
	}
}

func TestApp_GotoSlideStubAdvances(t *testing.T) {
	host := slideshow.NewFakeHost(10)
	a := New(Config{LogDir: t.TempDir()}, detector.NewMockDetector(), host, zerolog.Nop())

	if err := a.OpenPresentation(writeDeck(t)); err != nil {
		t.Fatalf("OpenPresentation() error = %v", err)
	}

	a.dispatch(gesture.LabelGotoSlide)

	if got := host.Slide(); got != 2 {
		t.Errorf("slide pointer = %d, want 2 (go-to-slide behaves as next)", got)
	}
}

func TestApp_DispatchWithoutPresentation(t *testing.T) {
	a := New(Config{LogDir: t.TempDir()}, detector.NewMockDetector(), slideshow.NewFakeHost(5), zerolog.Nop())

	var events []Event
	a.OnGesture(func(ev Event) { events = append(events, ev) })

	// No presentation open: the command is a no-op but the gesture is
	// still observed.
	a.dispatch(gesture.LabelNextSlide)

	if len(events) != 1 {
		t.Errorf("got %d events, want 1", len(events))
	}
}

func TestApp_TickSkipsWhenNoFrame(t *testing.T) {
	mockDet := detector.NewMockDetector()
	a := New(Config{LogDir: t.TempDir()}, mockDet, slideshow.NewFakeHost(5), zerolog.Nop())

	// A camera with no frames fails every read; each tick is skipped
	// without reaching the detector.
	cam := capture.NewMockCamera(nil, false)
	cam.Open()
	a.camera = cam

	a.tick()
	a.tick()

	if mockDet.Calls() != 0 {
		t.Errorf("detector called %d times, want 0", mockDet.Calls())
	}
}

func TestApp_CloseWithoutStart(t *testing.T) {
	a := New(Config{LogDir: t.TempDir()}, detector.NewMockDetector(), slideshow.NewFakeHost(5), zerolog.Nop())

	// Must be safe on a never-started, never-opened App.
	a.Close()
	a.Close()
}

func TestApp_CaptureLoop(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	frame := gocv.NewMatWithSize(capture.DefaultHeight, capture.DefaultWidth, gocv.MatTypeCV8UC3)
	defer frame.Close()

	mockDet := detector.NewMockDetector()
	mockDet.SetHands([]detector.HandLandmarks{detector.NextSlideHand()})

	host := slideshow.NewFakeHost(50)
	a := New(Config{
		LogDir:       t.TempDir(),
		TickInterval: 10 * time.Millisecond,
		Cooldown:     40 * time.Millisecond,
	}, mockDet, host, zerolog.Nop())

	a.camera = capture.NewMockCamera([]*gocv.Mat{&frame}, true)

	if err := a.OpenPresentation(writeDeck(t)); err != nil {
		t.Fatalf("OpenPresentation() error = %v", err)
	}

	eventCh := make(chan Event, 64)
	a.OnGesture(func(ev Event) { eventCh <- ev })

	if err := a.StartDetection(); err != nil {
		t.Fatalf("StartDetection() error = %v", err)
	}

	select {
	case <-eventCh:
	case <-time.After(2 * time.Second):
		t.Fatal("no gesture dispatched by capture loop")
	}

	a.StopDetection()

	if host.Slide() < 2 {
		t.Errorf("slide pointer = %d, want advanced past 1", host.Slide())
	}
}
