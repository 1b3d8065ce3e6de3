package gesture

import (
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/ayusman/mudra/internal/detector"
)

func newTestClassifier(det detector.Detector, cooldown time.Duration) *Classifier {
	return NewClassifier(det, cooldown, zerolog.Nop())
}

func TestClassifier_NoHands(t *testing.T) {
	mock := detector.NewMockDetector()
	mock.SetHands(nil)

	c := newTestClassifier(mock, time.Second)

	label, err := c.Classify(nil)
	if err != nil {
		t.Fatalf("Classify() error = %v", err)
	}
	if label != LabelNone {
		t.Errorf("label = %q, want LabelNone", label)
	}
}

func TestClassifier_NextSlide(t *testing.T) {
	mock := detector.NewMockDetector()
	mock.SetHands([]detector.HandLandmarks{detector.NextSlideHand()})

	c := newTestClassifier(mock, time.Second)

	label, err := c.Classify(nil)
	if err != nil {
		t.Fatalf("Classify() error = %v", err)
	}
	if label != LabelNextSlide {
		t.Errorf("label = %q, want %q", label, LabelNextSlide)
	}
}

func TestClassifier_PreviousSlide(t *testing.T) {
	mock := detector.NewMockDetector()
	mock.SetHands([]detector.HandLandmarks{detector.PreviousSlideHand()})

	c := newTestClassifier(mock, time.Second)

	label, err := c.Classify(nil)
	if err != nil {
		t.Fatalf("Classify() error = %v", err)
	}
	if label != LabelPreviousSlide {
		t.Errorf("label = %q, want %q", label, LabelPreviousSlide)
	}
}

func TestClassifier_GotoSlide(t *testing.T) {
	mock := detector.NewMockDetector()
	mock.SetHands([]detector.HandLandmarks{detector.GotoSlideHand()})

	c := newTestClassifier(mock, time.Second)

	label, err := c.Classify(nil)
	if err != nil {
		t.Fatalf("Classify() error = %v", err)
	}
	if label != LabelGotoSlide {
		t.Errorf("label = %q, want %q", label, LabelGotoSlide)
	}
}

func TestClassifier_Cooldown(t *testing.T) {
	mock := detector.NewMockDetector()
	mock.SetHands([]detector.HandLandmarks{detector.NextSlideHand()})

	c := newTestClassifier(mock, time.Hour)

	label, err := c.Classify(nil)
	if err != nil {
		t.Fatalf("first Classify() error = %v", err)
	}
	if label != LabelNextSlide {
		t.Fatalf("first label = %q, want %q", label, LabelNextSlide)
	}

	// A perfectly good gesture inside the window must be suppressed,
	// without even touching the detector.
	callsBefore := mock.Calls()
	label, err = c.Classify(nil)
	if err != nil {
		t.Fatalf("second Classify() error = %v", err)
	}
	if label != LabelNone {
		t.Errorf("second label = %q, want LabelNone", label)
	}
	if mock.Calls() != callsBefore {
		t.Error("detector invoked during cooldown window")
	}
}

func TestClassifier_CooldownReArmsOnSuccessOnly(t *testing.T) {
	mock := detector.NewMockDetector()
	mock.SetHands(nil)

	c := newTestClassifier(mock, time.Second)

	// None results must not re-arm the cooldown: simulate a prior
	// gesture just outside the window, then a run of empty frames.
	c.lastGesture = time.Now().Add(-2 * time.Second)

	for i := 0; i < 3; i++ {
		if label, _ := c.Classify(nil); label != LabelNone {
			t.Fatalf("label = %q, want LabelNone", label)
		}
	}

	// The stale timestamp is untouched, so a real gesture goes through.
	mock.SetHands([]detector.HandLandmarks{detector.PreviousSlideHand()})
	label, err := c.Classify(nil)
	if err != nil {
		t.Fatalf("Classify() error = %v", err)
	}
	if label != LabelPreviousSlide {
		t.Errorf("label = %q, want %q", label, LabelPreviousSlide)
	}
}

func TestClassifier_DetectorError(t *testing.T) {
	mock := detector.NewMockDetector()
	mock.SetError(errors.New("inference backend gone"))

	c := newTestClassifier(mock, time.Second)

	label, err := c.Classify(nil)
	if err == nil {
		t.Fatal("expected error from failing detector")
	}
	if label != LabelNone {
		t.Errorf("label = %q, want LabelNone on error", label)
	}
}

func TestClassifier_FirstHandOnly(t *testing.T) {
	mock := detector.NewMockDetector()
	mock.SetHands([]detector.HandLandmarks{
		detector.PreviousSlideHand(),
		detector.NextSlideHand(),
	})

	c := newTestClassifier(mock, time.Second)

	label, err := c.Classify(nil)
	if err != nil {
		t.Fatalf("Classify() error = %v", err)
	}
	if label != LabelPreviousSlide {
		t.Errorf("label = %q, want first hand's %q", label, LabelPreviousSlide)
	}
}

func TestClassify_Rules(t *testing.T) {
	tests := []struct {
		name                 string
		thumb, index, middle float64
		want                 Label
	}{
		{"index raised", 0.5, 0.1, 0.3, LabelNextSlide},
		{"thumb raised", 0.05, 0.3, 0.3, LabelPreviousSlide},
		{"index and middle raised", 0.5, 0.1, 0.1, LabelGotoSlide},
		{"index below thumb, middle above", 0.5, 0.6, 0.4, LabelNone},
		{"all level", 0.5, 0.5, 0.5, LabelNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hand := detector.HandLandmarks{}
			hand.Points[detector.ThumbTip] = detector.Point3D{Y: tt.thumb}
			hand.Points[detector.IndexTip] = detector.Point3D{Y: tt.index}
			hand.Points[detector.MiddleTip] = detector.Point3D{Y: tt.middle}

			if got := classify(&hand); got != tt.want {
				t.Errorf("classify() = %q, want %q", got, tt.want)
			}
		})
	}
}
