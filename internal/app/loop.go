package app

import (
	"errors"
	"time"

	"gocv.io/x/gocv"

	"github.com/ayusman/mudra/internal/gesture"
	"github.com/ayusman/mudra/internal/slideshow"
)

// runLoop drives the fixed-interval capture loop until stop is closed.
// One tick = one frame read + one classify + one dispatch + one render.
func (a *App) runLoop(stop <-chan struct{}) {
	ticker := time.NewTicker(a.config.TickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			a.tick()
		}
	}
}

// tick processes exactly one frame. Transient failures (no frame,
// detector error) skip the tick.
func (a *App) tick() {
	frame, err := a.camera.ReadFrame()
	if err != nil {
		a.log.Debug().Err(err).Msg("no frame, skipping tick")
		return
	}
	defer frame.Close()

	label, err := a.classifier.Classify(frame)
	if err != nil {
		a.log.Debug().Err(err).Msg("classification failed, skipping tick")
		return
	}

	if label != gesture.LabelNone {
		a.dispatch(label)
	}

	a.render(frame)
}

// dispatch maps a gesture label to a controller command, appends the
// log line, and notifies listeners. The go-to-slide gesture advances to
// the next slide; the numeric-target input was never built.
func (a *App) dispatch(label gesture.Label) {
	var err error
	switch label {
	case gesture.LabelNextSlide:
		err = a.controller.Next()
	case gesture.LabelPreviousSlide:
		err = a.controller.Previous()
	case gesture.LabelGotoSlide:
		err = a.controller.Next()
	default:
		return
	}

	if err != nil {
		if errors.Is(err, slideshow.ErrNoActiveSession) {
			a.log.Debug().Str("gesture", string(label)).Msg("gesture ignored, no active slideshow")
		} else {
			a.log.Warn().Err(err).Str("gesture", string(label)).Msg("slideshow command failed")
		}
	}

	a.mu.Lock()
	writer := a.logWriter
	session := a.sessionID
	listeners := make([]func(Event), len(a.listeners))
	copy(listeners, a.listeners)
	a.mu.Unlock()

	if writer != nil {
		if err := writer.Record(string(label)); err != nil {
			a.log.Warn().Err(err).Msg("failed to append gesture log")
		}
	}

	ev := Event{Session: session, Gesture: label, At: time.Now()}
	for _, fn := range listeners {
		fn(ev)
	}
}

// render converts the annotated frame for display and hands it to the
// frame callback.
func (a *App) render(frame *gocv.Mat) {
	a.mu.Lock()
	onFrame := a.onFrame
	a.mu.Unlock()

	if onFrame == nil {
		return
	}

	img, err := frame.ToImage()
	if err != nil {
		a.log.Debug().Err(err).Msg("frame conversion failed")
		return
	}

	onFrame(img)
}
