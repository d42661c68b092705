package events

import "sync"

// Feed hands values produced by slots to a goroutine reading a channel.
// Publish never blocks: values are dropped when the buffer is full so a slow
// reader cannot stall the signal that is firing.
type Feed[T any] struct {
	ch      chan T
	mutex   sync.Mutex
	closed  bool
	dropped int
}

func NewFeed[T any](size int) *Feed[T] {
	return &Feed[T]{ch: make(chan T, size)}
}

// C returns the channel values are delivered on. It is closed by Close.
func (f *Feed[T]) C() <-chan T {
	return f.ch
}

// Publish queues v and reports whether it was accepted
func (f *Feed[T]) Publish(v T) bool {
	f.mutex.Lock()
	defer f.mutex.Unlock()

	if f.closed {
		return false
	}

	select {
	case f.ch <- v:
		return true
	default:
		// buffer is full
		f.dropped++
		return false
	}
}

// Dropped returns how many values were rejected because the buffer was full
func (f *Feed[T]) Dropped() int {
	f.mutex.Lock()
	defer f.mutex.Unlock()
	return f.dropped
}

// Close closes the channel. Values already queued can still be read.
func (f *Feed[T]) Close() {
	f.mutex.Lock()
	defer f.mutex.Unlock()

	if f.closed {
		return
	}
	f.closed = true
	close(f.ch)
}
