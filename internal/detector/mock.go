package detector

import (
	"gocv.io/x/gocv"
)

// MockDetector is a test implementation of the Detector interface.
// It allows tests to control the detection results.
type MockDetector struct {
	hands []HandLandmarks
	err   error
	calls int
}

// NewMockDetector creates a new MockDetector instance.
func NewMockDetector() *MockDetector {
	return &MockDetector{}
}

// SetHands sets the hands that will be returned by Detect.
func (m *MockDetector) SetHands(hands []HandLandmarks) {
	m.hands = hands
}

// SetError sets the error that will be returned by Detect.
func (m *MockDetector) SetError(err error) {
	m.err = err
}

// Calls returns how many times Detect has been invoked.
func (m *MockDetector) Calls() int {
	return m.calls
}

// Detect returns the pre-configured hands or error.
func (m *MockDetector) Detect(frame *gocv.Mat) ([]HandLandmarks, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	return m.hands, nil
}

// Close is a no-op for the mock detector.
func (m *MockDetector) Close() error {
	return nil
}

// baseHand returns a hand with every landmark in a neutral mid-frame
// position. Fixtures overwrite the fingertips they care about.
func baseHand() HandLandmarks {
	hand := HandLandmarks{
		Handedness: "Right",
		Score:      0.95,
	}

	hand.Points[Wrist] = Point3D{X: 0.50, Y: 0.85, Z: 0.0}

	hand.Points[ThumbCMC] = Point3D{X: 0.56, Y: 0.78, Z: 0.0}
	hand.Points[ThumbMCP] = Point3D{X: 0.60, Y: 0.70, Z: 0.0}
	hand.Points[ThumbIP] = Point3D{X: 0.62, Y: 0.62, Z: 0.0}
	hand.Points[ThumbTip] = Point3D{X: 0.63, Y: 0.55, Z: 0.0}

	hand.Points[IndexMCP] = Point3D{X: 0.54, Y: 0.65, Z: 0.0}
	hand.Points[IndexPIP] = Point3D{X: 0.55, Y: 0.55, Z: 0.0}
	hand.Points[IndexDIP] = Point3D{X: 0.55, Y: 0.48, Z: 0.0}
	hand.Points[IndexTip] = Point3D{X: 0.55, Y: 0.42, Z: 0.0}

	hand.Points[MiddleMCP] = Point3D{X: 0.50, Y: 0.64, Z: 0.0}
	hand.Points[MiddlePIP] = Point3D{X: 0.50, Y: 0.53, Z: 0.0}
	hand.Points[MiddleDIP] = Point3D{X: 0.50, Y: 0.46, Z: 0.0}
	hand.Points[MiddleTip] = Point3D{X: 0.50, Y: 0.40, Z: 0.0}

	hand.Points[RingMCP] = Point3D{X: 0.46, Y: 0.65, Z: 0.0}
	hand.Points[RingPIP] = Point3D{X: 0.45, Y: 0.56, Z: 0.0}
	hand.Points[RingDIP] = Point3D{X: 0.45, Y: 0.50, Z: 0.0}
	hand.Points[RingTip] = Point3D{X: 0.44, Y: 0.45, Z: 0.0}

	hand.Points[PinkyMCP] = Point3D{X: 0.42, Y: 0.68, Z: 0.0}
	hand.Points[PinkyPIP] = Point3D{X: 0.41, Y: 0.60, Z: 0.0}
	hand.Points[PinkyDIP] = Point3D{X: 0.40, Y: 0.55, Z: 0.0}
	hand.Points[PinkyTip] = Point3D{X: 0.39, Y: 0.51, Z: 0.0}

	return hand
}

// NextSlideHand returns a hand pose that classifies as "next slide":
// index tip raised above the middle tip, thumb tip below the index tip.
func NextSlideHand() HandLandmarks {
	hand := baseHand()
	hand.Points[IndexTip] = Point3D{X: 0.55, Y: 0.1, Z: 0.0}
	hand.Points[MiddleTip] = Point3D{X: 0.50, Y: 0.3, Z: 0.0}
	hand.Points[ThumbTip] = Point3D{X: 0.63, Y: 0.5, Z: 0.0}
	return hand
}

// PreviousSlideHand returns a hand pose that classifies as "previous
// slide": thumb tip raised above both fingertips.
func PreviousSlideHand() HandLandmarks {
	hand := baseHand()
	hand.Points[ThumbTip] = Point3D{X: 0.63, Y: 0.05, Z: 0.0}
	hand.Points[IndexTip] = Point3D{X: 0.55, Y: 0.3, Z: 0.0}
	hand.Points[MiddleTip] = Point3D{X: 0.50, Y: 0.3, Z: 0.0}
	return hand
}

// GotoSlideHand returns a hand pose that classifies as "go to slide":
// index and middle tips raised together above the thumb tip.
func GotoSlideHand() HandLandmarks {
	hand := baseHand()
	hand.Points[IndexTip] = Point3D{X: 0.55, Y: 0.1, Z: 0.0}
	hand.Points[MiddleTip] = Point3D{X: 0.50, Y: 0.1, Z: 0.0}
	hand.Points[ThumbTip] = Point3D{X: 0.63, Y: 0.5, Z: 0.0}
	return hand
}
