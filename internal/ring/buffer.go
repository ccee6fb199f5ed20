package ring

// Buffer is a fixed-capacity ring of values ordered oldest to newest.
// The zero value is unusable; create buffers with New.
type Buffer[T any] struct {
	items []T
	// head is the index of the oldest element.
	head int
	size int
}

// New creates a buffer holding at most capacity elements.
// Capacities below one are raised to one.
func New[T any](capacity int) *Buffer[T] {
	if capacity < 1 {
		capacity = 1
	}

	return &Buffer[T]{
		items: make([]T, capacity),
	}
}

// Cap returns the buffer capacity.
func (b *Buffer[T]) Cap() int {
	return len(b.items)
}

// Len returns the number of stored elements.
func (b *Buffer[T]) Len() int {
	return b.size
}

// Push appends v, evicting the oldest element when full.
// It reports whether an element was evicted.
func (b *Buffer[T]) Push(v T) bool {
	if b.size < len(b.items) {
		b.items[(b.head+b.size)%len(b.items)] = v
		b.size++

		return false
	}

	b.items[b.head] = v
	b.head = (b.head + 1) % len(b.items)

	return true
}

// At returns the i-th oldest element. It panics when i is out of range.
func (b *Buffer[T]) At(i int) T {
	if i < 0 || i >= b.size {
		panic("ring: index out of range")
	}

	return b.items[(b.head+i)%len(b.items)]
}

// Last returns the newest element.
func (b *Buffer[T]) Last() (T, bool) {
	var zero T
	if b.size == 0 {
		return zero, false
	}

	return b.At(b.size - 1), true
}

// Items returns a copy of the stored elements, oldest first.
func (b *Buffer[T]) Items() []T {
	result := make([]T, b.size)
	for i := range result {
		result[i] = b.At(i)
	}

	return result
}

// Tail returns a copy of the newest n elements, oldest first.
// It returns nil when fewer than n elements are stored.
func (b *Buffer[T]) Tail(n int) []T {
	if n < 0 || n > b.size {
		return nil
	}

	result := make([]T, n)
	for i := range result {
		result[i] = b.At(b.size - n + i)
	}

	return result
}

// DropWhile removes elements from the oldest end while drop returns true.
// It returns the number of removed elements.
func (b *Buffer[T]) DropWhile(drop func(T) bool) int {
	var (
		zero    T
		removed int
	)

	for b.size > 0 && drop(b.items[b.head]) {
		b.items[b.head] = zero
		b.head = (b.head + 1) % len(b.items)
		b.size--
		removed++
	}

	return removed
}

// Clear removes every element.
func (b *Buffer[T]) Clear() {
	var zero T
	for i := range b.items {
		b.items[i] = zero
	}

	b.head = 0
	b.size = 0
}
