package ringbuffer

// RingBuffer is a fixed capacity FIFO queue. It is not safe for concurrent use.
type RingBuffer[T any] struct {
	buf  []T
	head int
	tail int
	size int
}

// New creates a RingBuffer with the given capacity.
// A capacity of 1 is used if the given value is zero.
func New[T any](capacity uint) *RingBuffer[T] {
	return &RingBuffer[T]{
		buf: make([]T, max(1, capacity)),
	}
}

// Size returns the number of queued items.
func (r *RingBuffer[T]) Size() int {
	return r.size
}

// Cap returns the capacity the buffer was created with.
func (r *RingBuffer[T]) Cap() int {
	return len(r.buf)
}

// IsFull returns true if no more items can be pushed.
func (r *RingBuffer[T]) IsFull() bool {
	return r.size == len(r.buf)
}

// Push appends item to the tail. It returns false if the buffer is full.
func (r *RingBuffer[T]) Push(item T) bool {
	if r.IsFull() {
		return false
	}

	r.buf[r.tail] = item
	r.tail = (r.tail + 1) % len(r.buf)
	r.size++
	return true
}

// PushAll pushes items in order until the buffer fills up and returns how many were queued.
func (r *RingBuffer[T]) PushAll(items []T) int {
	var n int
	for _, item := range items {
		if !r.Push(item) {
			break
		}
		n++
	}
	return n
}

// Pop removes and returns the oldest item. If empty, it returns (zero, false).
func (r *RingBuffer[T]) Pop() (T, bool) {
	var zero T
	if r.size == 0 {
		return zero, false
	}

	item := r.buf[r.head]
	r.buf[r.head] = zero
	r.head = (r.head + 1) % len(r.buf)
	r.size--
	return item, true
}
