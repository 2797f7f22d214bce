package domain

import "sync"

// OperationQueue serializes the operations of a single account. Operations
// are applied in insertion order and at most one drain loop runs at a time.
type OperationQueue struct {
	mu       sync.Mutex
	pending  []*Operation
	draining bool
}

// NewOperationQueue creates an empty queue.
func NewOperationQueue() *OperationQueue {
	return &OperationQueue{}
}

// Enqueue appends an operation to the tail. Safe to call from any goroutine,
// including while a drain is in progress; the active drain picks the
// operation up because it re-checks emptiness on every iteration.
func (q *OperationQueue) Enqueue(op *Operation) {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.pending = append(q.pending, op)
}

// Len returns the number of pending operations.
func (q *OperationQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()

	return len(q.pending)
}

// Drain processes the queue until it is empty. When a drain is already
// active the call is a no-op; the active drain absorbs any operations
// enqueued in the meantime. The queue lock is released while an operation
// applies, so Apply may take account locks and enqueue further operations
// without risking deadlock.
func (q *OperationQueue) Drain() {
	q.mu.Lock()
	if q.draining {
		q.mu.Unlock()
		return
	}

	q.draining = true

	for len(q.pending) > 0 {
		op := q.pending[0]
		q.pending = q.pending[1:]
		q.mu.Unlock()

		op.Apply()

		q.mu.Lock()
	}

	// The emptiness check and the flag reset share one critical section,
	// so an operation enqueued after this point triggers its own drain.
	q.draining = false
	q.mu.Unlock()
}
