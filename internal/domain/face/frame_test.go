package face

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// TestFrame_PointAndHas verifies index validation against the frame length.
func TestFrame_PointAndHas(t *testing.T) {
	t.Parallel()

	f := &Frame{Points: []Point{{X: 0.1}, {X: 0.2}, {X: 0.3}}}

	p, ok := f.Point(2)
	require.True(t, ok)
	require.InDelta(t, 0.3, p.X, 1e-9)

	_, ok = f.Point(3)
	require.False(t, ok)

	_, ok = f.Point(-1)
	require.False(t, ok)

	require.True(t, f.Has(0, 1, 2))
	require.False(t, f.Has(0, NoseTip, MeshSize))

	var empty *Frame
	require.Equal(t, 0, empty.Len())
	require.False(t, empty.Has(0))
}

// TestFrame_Clone ensures the point slice is not shared.
func TestFrame_Clone(t *testing.T) {
	t.Parallel()

	f := &Frame{
		Timestamp: time.Unix(10, 0),
		Points:    []Point{{X: 1, Y: 2, Z: 3}},
	}

	c := f.Clone()
	require.Equal(t, f, c)

	c.Points[0].X = 9
	require.InDelta(t, 1.0, f.Points[0].X, 1e-9)
	require.Nil(t, (*Frame)(nil).Clone())
}
