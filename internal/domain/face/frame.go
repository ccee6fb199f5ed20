package face

import "time"

// Point is a single normalized landmark.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Frame is one sampled instant of facial geometry.
type Frame struct {
	// Timestamp is the capture time reported by the detector.
	Timestamp time.Time `json:"timestamp"`
	// Points holds landmarks indexed 0..N-1.
	Points []Point `json:"points"`
}

// Len returns the number of landmarks in the frame.
func (f *Frame) Len() int {
	if f == nil {
		return 0
	}

	return len(f.Points)
}

// Point returns the landmark at index i and whether it is present.
func (f *Frame) Point(i int) (Point, bool) {
	if i < 0 || i >= f.Len() {
		return Point{}, false
	}

	return f.Points[i], true
}

// Has reports whether every listed index is present in the frame.
func (f *Frame) Has(indices ...int) bool {
	n := f.Len()
	for _, i := range indices {
		if i < 0 || i >= n {
			return false
		}
	}

	return true
}

// Clone returns a deep copy of the frame.
func (f *Frame) Clone() *Frame {
	if f == nil {
		return nil
	}

	points := make([]Point, len(f.Points))
	copy(points, f.Points)

	return &Frame{
		Timestamp: f.Timestamp,
		Points:    points,
	}
}
