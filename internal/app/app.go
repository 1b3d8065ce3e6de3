// Package app wires the camera, classifier, presentation controller,
// and gesture log into a single timer-driven detection session.
package app

import (
	"image"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/ayusman/mudra/internal/capture"
	"github.com/ayusman/mudra/internal/detector"
	"github.com/ayusman/mudra/internal/gesture"
	"github.com/ayusman/mudra/internal/gesturelog"
	"github.com/ayusman/mudra/internal/slideshow"
)

// DefaultTickInterval is the fixed frame period of the capture loop.
const DefaultTickInterval = 30 * time.Millisecond

// Config holds configuration options for the application.
type Config struct {
	CameraID     int
	TickInterval time.Duration
	Cooldown     time.Duration
	LogDir       string
}

func (c Config) withDefaults() Config {
	if c.TickInterval <= 0 {
		c.TickInterval = DefaultTickInterval
	}
	if c.Cooldown <= 0 {
		c.Cooldown = gesture.DefaultCooldown
	}
	if c.LogDir == "" {
		c.LogDir = "."
	}
	return c
}

// Event describes one dispatched gesture within a detection session.
type Event struct {
	Session string        `json:"session"`
	Gesture gesture.Label `json:"gesture"`
	At      time.Time     `json:"at"`
}

// App owns the detection session: one camera, one classifier, one
// presentation controller, one log writer. All per-tick work happens on
// a single goroutine, so a slow tick delays the next but never overlaps it.
type App struct {
	config     Config
	log        zerolog.Logger
	camera     capture.Camera
	classifier *gesture.Classifier
	controller *slideshow.Controller

	mu        sync.Mutex
	stopCh    chan struct{}
	logWriter *gesturelog.Writer
	sessionID string
	onFrame   func(image.Image)
	listeners []func(Event)
}

// New creates an App over the given detector and automation host.
func New(config Config, det detector.Detector, host slideshow.Host, log zerolog.Logger) *App {
	config = config.withDefaults()

	return &App{
		config:     config,
		log:        log.With().Str("component", "app").Logger(),
		camera:     capture.NewCamera(config.CameraID),
		classifier: gesture.NewClassifier(det, config.Cooldown, log),
		controller: slideshow.NewController(host, log),
	}
}

// OnFrame sets the callback receiving each annotated frame for display.
func (a *App) OnFrame(fn func(image.Image)) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.onFrame = fn
}

// OnGesture registers a listener for dispatched gestures.
func (a *App) OnGesture(fn func(Event)) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.listeners = append(a.listeners, fn)
}

// OpenPresentation validates and opens the presentation file and starts
// its slideshow.
func (a *App) OpenPresentation(path string) error {
	return a.controller.Open(path)
}

// Detecting reports whether the capture loop is running.
func (a *App) Detecting() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.stopCh != nil
}

// StartDetection acquires the camera, opens today's gesture log, and
// starts the capture loop.
func (a *App) StartDetection() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.stopCh != nil {
		return nil
	}

	if err := a.camera.Open(); err != nil {
		return err
	}

	w, err := gesturelog.Open(a.config.LogDir)
	if err != nil {
		a.camera.Close()
		return err
	}

	a.logWriter = w
	a.sessionID = uuid.NewString()
	a.stopCh = make(chan struct{})
	go a.runLoop(a.stopCh)

	a.log.Info().Str("session", a.sessionID).Str("log", w.Path()).Msg("detection started")
	return nil
}

// StopDetection cancels future ticks and releases the camera and log.
// A tick already in progress finishes on its own.
func (a *App) StopDetection() {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.stopCh == nil {
		return
	}

	close(a.stopCh)
	a.stopCh = nil

	if err := a.camera.Close(); err != nil {
		a.log.Warn().Err(err).Msg("error closing camera")
	}
	if a.logWriter != nil {
		a.logWriter.Close()
		a.logWriter = nil
	}

	a.log.Info().Str("session", a.sessionID).Msg("detection stopped")
}

// Close stops detection if active and tears the presentation session
// down. Safe to call on a partially-started App.
func (a *App) Close() {
	a.StopDetection()
	a.controller.Close()
}

// Controller exposes the presentation controller, mainly for tests.
func (a *App) Controller() *slideshow.Controller {
	return a.controller
}
