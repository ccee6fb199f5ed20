package ring

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// TestBuffer_PushEvictsOldest verifies size-based eviction order.
func TestBuffer_PushEvictsOldest(t *testing.T) {
	t.Parallel()

	b := New[int](3)
	require.Equal(t, 3, b.Cap())

	require.False(t, b.Push(1))
	require.False(t, b.Push(2))
	require.False(t, b.Push(3))
	require.True(t, b.Push(4))

	require.Equal(t, []int{2, 3, 4}, b.Items())
	require.Equal(t, 2, b.At(0))

	last, ok := b.Last()
	require.True(t, ok)
	require.Equal(t, 4, last)
}

// TestBuffer_Tail returns only complete suffixes.
func TestBuffer_Tail(t *testing.T) {
	t.Parallel()

	b := New[string](4)
	for _, s := range []string{"a", "b", "c", "d", "e"} {
		b.Push(s)
	}

	require.Equal(t, []string{"d", "e"}, b.Tail(2))
	require.Equal(t, []string{"b", "c", "d", "e"}, b.Tail(4))
	require.Nil(t, b.Tail(5))
	require.Empty(t, b.Tail(0))
}

// TestBuffer_DropWhileAndClear checks age-style pruning from the front.
func TestBuffer_DropWhileAndClear(t *testing.T) {
	t.Parallel()

	b := New[int](5)
	for i := 1; i <= 7; i++ {
		b.Push(i)
	}

	removed := b.DropWhile(func(v int) bool { return v < 5 })
	require.Equal(t, 2, removed)
	require.Equal(t, []int{5, 6, 7}, b.Items())

	b.Push(8)
	require.Equal(t, []int{5, 6, 7, 8}, b.Items())

	b.Clear()
	require.Equal(t, 0, b.Len())

	_, ok := b.Last()
	require.False(t, ok)
	require.Panics(t, func() { b.At(0) })
}

// TestNew_MinimumCapacity ensures degenerate capacities still work.
func TestNew_MinimumCapacity(t *testing.T) {
	t.Parallel()

	b := New[int](0)
	b.Push(1)
	b.Push(2)
	require.Equal(t, []int{2}, b.Items())
}
