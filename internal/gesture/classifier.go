// Package gesture classifies hand landmarks into slideshow commands.
package gesture

import (
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"gocv.io/x/gocv"

	"github.com/ayusman/mudra/internal/detector"
)

// Label is the discrete result of classifying one frame.
type Label string

const (
	// LabelNone means no gesture was recognized for this frame.
	LabelNone Label = ""
	// LabelNextSlide advances the slideshow by one slide.
	LabelNextSlide Label = "next slide"
	// LabelPreviousSlide steps the slideshow back by one slide.
	LabelPreviousSlide Label = "previous slide"
	// LabelGotoSlide is the jump-to-slide gesture. Its handler currently
	// advances to the next slide; a numeric target was never wired up.
	LabelGotoSlide Label = "go to slide"
)

// DefaultCooldown is the minimum interval between two non-None
// classifications.
const DefaultCooldown = time.Second

// Classifier turns one frame into at most one gesture Label. It owns
// the cooldown state: a non-None result re-arms the cooldown, and any
// frame arriving within the window is reported as None regardless of
// its content.
type Classifier struct {
	det      detector.Detector
	cooldown time.Duration
	log      zerolog.Logger

	mu          sync.Mutex
	lastGesture time.Time
}

// NewClassifier creates a Classifier over the given detector. A
// cooldown of zero or less falls back to DefaultCooldown.
func NewClassifier(det detector.Detector, cooldown time.Duration, log zerolog.Logger) *Classifier {
	if cooldown <= 0 {
		cooldown = DefaultCooldown
	}
	return &Classifier{
		det:      det,
		cooldown: cooldown,
		log:      log.With().Str("component", "classifier").Logger(),
	}
}

// Classify runs hand detection on the frame and maps the first detected
// hand to a Label. When a hand is found, its skeleton is drawn onto the
// frame in place as visual feedback; drawing never affects the result.
// Within the cooldown window the detector is not invoked at all.
func (c *Classifier) Classify(frame *gocv.Mat) (Label, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	if now.Sub(c.lastGesture) < c.cooldown {
		return LabelNone, nil
	}

	hands, err := c.det.Detect(frame)
	if err != nil {
		return LabelNone, fmt.Errorf("hand detection: %w", err)
	}

	if len(hands) == 0 {
		return LabelNone, nil
	}

	// Only the first detected hand is considered.
	hand := &hands[0]

	if frame != nil && !frame.Empty() {
		detector.DrawLandmarks(frame, hand)
	}

	label := classify(hand)
	if label != LabelNone {
		c.lastGesture = now
		c.log.Debug().Str("gesture", string(label)).Msg("gesture classified")
	}

	return label, nil
}

// classify applies the fingertip-height rules to one hand. Smaller Y is
// higher in the frame. First match wins.
func classify(hand *detector.HandLandmarks) Label {
	thumb := hand.Points[detector.ThumbTip]
	index := hand.Points[detector.IndexTip]
	middle := hand.Points[detector.MiddleTip]

	switch {
	case index.Y < middle.Y && thumb.Y > index.Y:
		return LabelNextSlide
	case thumb.Y < index.Y && thumb.Y < middle.Y:
		return LabelPreviousSlide
	case index.Y < thumb.Y && middle.Y < thumb.Y:
		return LabelGotoSlide
	default:
		return LabelNone
	}
}
