// Unbounded single-consumer FIFO used to hand results back to the UI goroutine
package mailbox

import (
	"errors"
	"sync"
)

var ErrClosed = errors.New("mailbox closed")

type queue[T any] struct {
	mu     sync.Mutex
	items  []T
	closed bool
	notify chan struct{}
}

// Sender is a producer handle. Clones share the same queue and are safe to
// use from any goroutine.
type Sender[T any] struct {
	q *queue[T]
}

// Receiver is the single consumer side of a mailbox.
type Receiver[T any] struct {
	q *queue[T]
}

func New[T any]() (*Sender[T], *Receiver[T]) {
	q := &queue[T]{
		items:  make([]T, 0, 2),
		notify: make(chan struct{}, 1),
	}
	return &Sender[T]{q: q}, &Receiver[T]{q: q}
}

func (s *Sender[T]) Clone() *Sender[T] {
	return &Sender[T]{q: s.q}
}

// Send never blocks.
func (s *Sender[T]) Send(v T) error {
	s.q.mu.Lock()
	if s.q.closed {
		s.q.mu.Unlock()
		return ErrClosed
	}
	wasEmpty := len(s.q.items) == 0
	s.q.items = append(s.q.items, v)
	s.q.mu.Unlock()

	if wasEmpty {
		select {
		case s.q.notify <- struct{}{}:
		default:
		}
	}
	return nil
}

// TryRecv returns the oldest pending message, or false when the mailbox is
// empty. It never blocks.
func (r *Receiver[T]) TryRecv() (T, bool) {
	r.q.mu.Lock()
	defer r.q.mu.Unlock()

	var zero T
	if len(r.q.items) == 0 {
		return zero, false
	}
	v := r.q.items[0]
	r.q.items[0] = zero
	r.q.items = r.q.items[1:]
	if len(r.q.items) == 0 {
		// drop the backing array once drained so it doesn't creep forward forever
		r.q.items = make([]T, 0, 2)
	}
	return v, true
}

func (r *Receiver[T]) Len() int {
	r.q.mu.Lock()
	defer r.q.mu.Unlock()
	return len(r.q.items)
}

// Notify receives a token whenever the mailbox goes from empty to non-empty.
// Tokens coalesce, so callers must drain with TryRecv after waking.
func (r *Receiver[T]) Notify() <-chan struct{} {
	return r.q.notify
}

// Close rejects further sends. Messages already queued stay receivable.
func (r *Receiver[T]) Close() {
	r.q.mu.Lock()
	defer r.q.mu.Unlock()
	r.q.closed = true
}
