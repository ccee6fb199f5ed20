package geometry

import (
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/oshokin/patient-monitor/internal/domain/face"
)

// vec projects a landmark onto the image plane.
func vec(p face.Point) r2.Vec {
	return r2.Vec{X: p.X, Y: p.Y}
}

// Distance returns the Euclidean distance between the x,y projections of two points.
func Distance(p1, p2 face.Point) float64 {
	return r2.Norm(r2.Sub(vec(p1), vec(p2)))
}

// Midpoint returns the point halfway between p1 and p2.
func Midpoint(p1, p2 face.Point) face.Point {
	m := r2.Scale(0.5, r2.Add(vec(p1), vec(p2)))

	return face.Point{X: m.X, Y: m.Y, Z: (p1.Z + p2.Z) / 2}
}

// Centroid averages the listed landmarks. It returns false when the list is
// empty or any index is missing.
func Centroid(frame *face.Frame, indices ...int) (face.Point, bool) {
	if len(indices) == 0 || !frame.Has(indices...) {
		return face.Point{}, false
	}

	var sum r2.Vec

	for _, i := range indices {
		p, _ := frame.Point(i)
		sum = r2.Add(sum, vec(p))
	}

	c := r2.Scale(1/float64(len(indices)), sum)

	return face.Point{X: c.X, Y: c.Y}, true
}

// EyeAspectRatio computes (|p2-p6| + |p3-p5|) / (2*|p1-p4|) for a six-point
// eye contour. It returns false when a landmark is missing or the corners
// coincide; callers skip the eye feature for that frame.
func EyeAspectRatio(frame *face.Frame, contour [6]int) (float64, bool) {
	if !frame.Has(contour[:]...) {
		return 0, false
	}

	p := make([]face.Point, len(contour))
	for i, idx := range contour {
		p[i], _ = frame.Point(idx)
	}

	horizontal := Distance(p[0], p[3])
	if horizontal == 0 {
		return 0, false
	}

	return (Distance(p[1], p[5]) + Distance(p[2], p[4])) / (2 * horizontal), true
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	return max(lo, min(hi, v))
}
