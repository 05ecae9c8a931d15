package queue

import (
	"context"
	"errors"
	"sync"

	"github.com/Behyna/paymentbot/pkg/botapi"
)

var (
	ErrShutdown        = errors.New("QUEUE_SHUTDOWN")
	ErrInvalidCapacity = errors.New("INVALID_QUEUE_CAPACITY")
)

// Queue is a bounded FIFO between the update receiver and the dispatcher
// workers. Enqueue blocks while the queue is full; nothing is ever dropped.
type Queue struct {
	items   chan botapi.Event
	closing chan struct{}
	sealed  chan struct{}

	mu        sync.RWMutex
	closed    bool
	closeOnce sync.Once
}

func New(capacity int) (*Queue, error) {
	if capacity <= 0 {
		return nil, ErrInvalidCapacity
	}

	return &Queue{
		items:   make(chan botapi.Event, capacity),
		closing: make(chan struct{}),
		sealed:  make(chan struct{}),
	}, nil
}

// Enqueue appends event, blocking while the queue is full. It fails with
// ErrShutdown once Close has been called, or with ctx.Err().
func (q *Queue) Enqueue(ctx context.Context, event botapi.Event) error {
	q.mu.RLock()
	defer q.mu.RUnlock()

	if q.closed {
		return ErrShutdown
	}

	select {
	case q.items <- event:
		return nil
	case <-q.closing:
		return ErrShutdown
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Dequeue returns the oldest event, blocking while the queue is empty. After
// Close it keeps returning buffered events and reports ErrShutdown only once
// the queue is drained.
func (q *Queue) Dequeue(ctx context.Context) (botapi.Event, error) {
	select {
	case event := <-q.items:
		return event, nil
	case <-q.sealed:
		select {
		case event := <-q.items:
			return event, nil
		default:
			return nil, ErrShutdown
		}
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Close stops accepting events and wakes every blocked Enqueue.
func (q *Queue) Close() {
	q.closeOnce.Do(func() {
		close(q.closing)

		// waits for in-flight Enqueue calls, so no send can follow sealed
		q.mu.Lock()
		q.closed = true
		q.mu.Unlock()

		close(q.sealed)
	})
}

func (q *Queue) Len() int {
	return len(q.items)
}

func (q *Queue) Cap() int {
	return cap(q.items)
}
