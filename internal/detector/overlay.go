package detector

import (
	"image"
	"image/color"

	"gocv.io/x/gocv"
)

var (
	jointColor = color.RGBA{0, 255, 0, 255}     // green joints
	boneColor  = color.RGBA{255, 255, 255, 255} // white skeleton
)

// DrawLandmarks draws the hand skeleton and joints onto the frame in
// place. Landmark coordinates are normalized, so they are scaled by the
// frame dimensions before drawing. Visual feedback only.
func DrawLandmarks(frame *gocv.Mat, hand *HandLandmarks) {
	if frame == nil || frame.Empty() || hand == nil {
		return
	}

	w := frame.Cols()
	h := frame.Rows()

	for _, conn := range Connections {
		a := hand.Points[conn[0]]
		b := hand.Points[conn[1]]
		gocv.Line(frame,
			image.Pt(int(a.X*float64(w)), int(a.Y*float64(h))),
			image.Pt(int(b.X*float64(w)), int(b.Y*float64(h))),
			boneColor, 2)
	}

	for i := 0; i < NumLandmarks; i++ {
		p := hand.Points[i]
		gocv.Circle(frame, image.Pt(int(p.X*float64(w)), int(p.Y*float64(h))), 4, jointColor, -1)
	}
}
