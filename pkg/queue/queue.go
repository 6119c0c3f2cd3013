package queue

import "errors"

// ErrQueueFull is returned by Enqueue when the queue has no free capacity.
var ErrQueueFull = errors.New("queue is full")

// Queue represents a bounded FIFO queue.
// Implementations must be thread-safe.
type Queue interface {
	// Enqueue adds an item to the end of the queue without blocking.
	Enqueue(item interface{}) error
	// Size returns the number of pending items.
	Size() int
	// ReadAllMessages removes and returns all pending items in order.
	ReadAllMessages() ([]interface{}, error)
	// ClearQueue discards all pending items.
	ClearQueue()
}
