package slideshow

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/rs/zerolog"
)

// Extension is the single supported presentation file extension.
const Extension = ".pptx"

// State tracks the controller through its lifecycle.
type State int

const (
	StateUninitialized State = iota
	StateInitialized
	StatePresentationOpen
	StateSlideshowRunning
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateInitialized:
		return "initialized"
	case StatePresentationOpen:
		return "presentation open"
	case StateSlideshowRunning:
		return "slideshow running"
	case StateClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// Controller sequences the automation host: open a file, run the
// slideshow, navigate. All navigation requires a running slideshow.
// Open and Close run on the UI thread while navigation arrives from
// the capture loop, so every method takes the mutex.
type Controller struct {
	host Host
	log  zerolog.Logger

	mu         sync.Mutex
	state      State
	slideCount int
}

// NewController creates a Controller over the given host.
func NewController(host Host, log zerolog.Logger) *Controller {
	return &Controller{
		host:  host,
		state: StateUninitialized,
		log:   log.With().Str("component", "slideshow").Logger(),
	}
}

// Initialize acquires the automation host. Idempotent once initialized.
func (c *Controller) Initialize() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.initialize()
}

// initialize acquires the host. Callers must hold c.mu.
func (c *Controller) initialize() error {
	if c.state >= StateInitialized && c.state != StateClosed {
		return nil
	}

	if err := c.host.Start(); err != nil {
		return fmt.Errorf("%w: %v", ErrHostUnavailable, err)
	}

	c.state = StateInitialized
	return nil
}

// Open validates the path, opens the presentation, and immediately
// starts the slideshow at slide 1. Extension and existence are checked
// before any host call.
func (c *Controller) Open(path string) error {
	if !strings.EqualFold(filepath.Ext(path), Extension) {
		return ErrInvalidFormat
	}
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("%w: %s", ErrFileNotFound, path)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	// Host creation only happens once the path has been validated.
	if err := c.initialize(); err != nil {
		return err
	}

	count, err := c.host.Open(path)
	if err != nil {
		return fmt.Errorf("open presentation: %w", err)
	}
	c.slideCount = count
	c.state = StatePresentationOpen

	if err := c.host.StartShow(1); err != nil {
		return fmt.Errorf("start slideshow: %w", err)
	}
	c.state = StateSlideshowRunning

	c.log.Info().Str("path", path).Int("slides", count).Msg("slideshow started")
	return nil
}

// Next advances the slideshow by one slide.
func (c *Controller) Next() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != StateSlideshowRunning {
		return ErrNoActiveSession
	}
	return c.host.Next()
}

// Previous steps the slideshow back by one slide.
func (c *Controller) Previous() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != StateSlideshowRunning {
		return ErrNoActiveSession
	}
	return c.host.Previous()
}

// GotoSlide jumps to slide n. Out-of-range targets are silently
// ignored: no navigation, no error.
func (c *Controller) GotoSlide(n int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != StateSlideshowRunning {
		return ErrNoActiveSession
	}
	if n < 1 || n > c.slideCount {
		return nil
	}
	return c.host.Goto(n)
}

// SlideCount returns the slide count of the open presentation, or 0.
func (c *Controller) SlideCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.slideCount
}

// State returns the current lifecycle state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Close tears the session down: exit the slideshow view if running,
// close the presentation if open, quit the host if initialized. Each
// step is skipped when its resource was never acquired, so Close is
// safe on partially-initialized state and on repeated calls.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state == StateClosed || c.state == StateUninitialized {
		c.state = StateClosed
		return
	}

	if c.state == StateSlideshowRunning {
		if err := c.host.EndShow(); err != nil {
			c.log.Warn().Err(err).Msg("exit slideshow view failed")
		}
	}
	if c.state >= StatePresentationOpen {
		if err := c.host.ClosePresentation(); err != nil {
			c.log.Warn().Err(err).Msg("close presentation failed")
		}
	}
	if err := c.host.Quit(); err != nil {
		c.log.Warn().Err(err).Msg("quit host failed")
	}

	c.state = StateClosed
}
