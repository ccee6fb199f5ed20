// Package facetest builds synthetic landmark frames for tests.
//
// The default frame is a centred, neutral, eyes-open face with refined iris
// landmarks looking straight ahead.
package facetest

import (
	"time"

	"github.com/oshokin/patient-monitor/internal/domain/face"
)

// Face layout of the synthetic frame.
const (
	faceLeftX  = 0.3
	faceRightX = 0.7
	faceWidth  = faceRightX - faceLeftX
	foreheadY  = 0.2
	chinY      = 0.8
	faceHeight = chinY - foreheadY

	mouthY = 0.7
	browY  = 0.35

	eyeY         = 0.42
	rightEyeX    = 0.4
	leftEyeX     = 0.6
	eyeHalfWidth = 0.04
	lidHalf      = 0.02
	irisRadius   = 0.005

	// Neutral measurements.
	OpenEyeRatio     = 0.30
	ClosedEyeRatio   = 0.10
	NeutralSmile     = 0.35
	NeutralMouthOpen = 0.05
	NeutralBrow      = 0.20
)

// Builder assembles a frame step by step.
type Builder struct {
	frame *face.Frame
}

// New returns a builder seeded with the neutral face.
func New() *Builder {
	points := make([]face.Point, face.MeshSize)
	for i := range points {
		points[i] = face.Point{X: 0.5, Y: 0.5}
	}

	b := &Builder{frame: &face.Frame{Points: points}}

	b.set(face.FaceLeft, faceLeftX, 0.5)
	b.set(face.FaceRight, faceRightX, 0.5)
	b.set(face.Forehead, 0.5, foreheadY)
	b.set(face.Chin, 0.5, chinY)

	return b.
		EyeRatio(OpenEyeRatio).
		Smile(NeutralSmile).
		MouthOpen(NeutralMouthOpen).
		BrowFurrow(NeutralBrow).
		Nose(0.5, 0.5).
		Gaze(0, 0)
}

// set moves a landmark if it is still present.
func (b *Builder) set(i int, x, y float64) {
	if i < len(b.frame.Points) {
		b.frame.Points[i] = face.Point{X: x, Y: y}
	}
}

// At sets the capture timestamp.
func (b *Builder) At(ts time.Time) *Builder {
	b.frame.Timestamp = ts
	return b
}

// EyeRatio shapes both eye contours to the given aspect ratio.
func (b *Builder) EyeRatio(ratio float64) *Builder {
	b.eye(face.RightEyeContour, rightEyeX, ratio)
	b.eye(face.LeftEyeContour, leftEyeX, ratio)

	b.set(face.RightEyeTop, rightEyeX, eyeY-lidHalf)
	b.set(face.RightEyeBottom, rightEyeX, eyeY+lidHalf)
	b.set(face.LeftEyeTop, leftEyeX, eyeY-lidHalf)
	b.set(face.LeftEyeBottom, leftEyeX, eyeY+lidHalf)

	return b
}

func (b *Builder) eye(contour [6]int, cx, ratio float64) {
	gap := 2 * eyeHalfWidth * ratio

	b.set(contour[0], cx-eyeHalfWidth, eyeY)
	b.set(contour[1], cx-eyeHalfWidth/2, eyeY-gap/2)
	b.set(contour[2], cx+eyeHalfWidth/2, eyeY-gap/2)
	b.set(contour[3], cx+eyeHalfWidth, eyeY)
	b.set(contour[4], cx+eyeHalfWidth/2, eyeY+gap/2)
	b.set(contour[5], cx-eyeHalfWidth/2, eyeY+gap/2)
}

// Smile sets the mouth-to-face width ratio.
func (b *Builder) Smile(ratio float64) *Builder {
	half := ratio * faceWidth / 2
	b.set(face.MouthLeft, 0.5-half, mouthY)
	b.set(face.MouthRight, 0.5+half, mouthY)

	return b
}

// MouthOpen sets the lip gap to face height ratio.
func (b *Builder) MouthOpen(ratio float64) *Builder {
	half := ratio * faceHeight / 2
	b.set(face.LipTop, 0.5, mouthY-half)
	b.set(face.LipBottom, 0.5, mouthY+half)

	return b
}

// BrowFurrow sets the inner brow distance to face width ratio.
func (b *Builder) BrowFurrow(ratio float64) *Builder {
	half := ratio * faceWidth / 2
	b.set(face.BrowInnerLeft, 0.5-half, browY)
	b.set(face.BrowInnerRight, 0.5+half, browY)

	return b
}

// Nose places the nose tip so that its mirrored x equals mirroredX.
func (b *Builder) Nose(mirroredX, y float64) *Builder {
	b.set(face.NoseTip, 1-mirroredX, y)
	return b
}

// Gaze moves both irises so each eye reports the normalized offset (dx, dy).
func (b *Builder) Gaze(dx, dy float64) *Builder {
	b.iris(face.RightIris, rightEyeX+dx*eyeHalfWidth, eyeY+dy*lidHalf)
	b.iris(face.LeftIris, leftEyeX+dx*eyeHalfWidth, eyeY+dy*lidHalf)

	return b
}

func (b *Builder) iris(ring [4]int, cx, cy float64) {
	b.set(ring[0], cx+irisRadius, cy)
	b.set(ring[1], cx, cy-irisRadius)
	b.set(ring[2], cx-irisRadius, cy)
	b.set(ring[3], cx, cy+irisRadius)
}

// Truncate keeps only the first n landmarks.
func (b *Builder) Truncate(n int) *Builder {
	if n < len(b.frame.Points) {
		b.frame.Points = b.frame.Points[:n]
	}

	return b
}

// Frame returns a copy of the assembled frame.
func (b *Builder) Frame() *face.Frame {
	return b.frame.Clone()
}
