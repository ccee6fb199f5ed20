package gaze

import (
	"math"

	"github.com/oshokin/patient-monitor/internal/domain/face"
	"github.com/oshokin/patient-monitor/internal/geometry"
)

// eye names the landmarks describing one eye.
type eye struct {
	outer, inner int
	top, bottom  int
	iris         [4]int
}

//nolint:gochecknoglobals // Fixed landmark layout.
var (
	rightEye = eye{
		outer: face.RightEyeOuter, inner: face.RightEyeInner,
		top: face.RightEyeTop, bottom: face.RightEyeBottom,
		iris: face.RightIris,
	}
	leftEye = eye{
		outer: face.LeftEyeOuter, inner: face.LeftEyeInner,
		top: face.LeftEyeTop, bottom: face.LeftEyeBottom,
		iris: face.LeftIris,
	}
)

// offset returns the pupil offset normalized by the eye half extents.
// It returns false when the eye geometry is missing or degenerate.
// Without iris landmarks the pupil falls back to the eye centre.
func (e eye) offset(frame *face.Frame) (x, y float64, ok bool) {
	if !frame.Has(e.outer, e.inner, e.top, e.bottom) {
		return 0, 0, false
	}

	outer, _ := frame.Point(e.outer)
	inner, _ := frame.Point(e.inner)
	top, _ := frame.Point(e.top)
	bottom, _ := frame.Point(e.bottom)

	halfWidth := math.Abs(outer.X-inner.X) / 2
	halfHeight := math.Abs(top.Y-bottom.Y) / 2

	if halfWidth == 0 || halfHeight == 0 {
		return 0, 0, false
	}

	center := face.Point{
		X: geometry.Midpoint(outer, inner).X,
		Y: geometry.Midpoint(top, bottom).Y,
	}

	pupil, found := geometry.Centroid(frame, e.iris[:]...)
	if !found {
		pupil = center
	}

	return (pupil.X - center.X) / halfWidth, (pupil.Y - center.Y) / halfHeight, true
}
