package navigator

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

var errQueueClosed = errors.New("navigator: command queue closed")

// envelope carries a command through the queue with an id for log correlation.
type envelope struct {
	id        uuid.UUID
	cmd       Command
	emittedAt time.Time
}

// commandQueue is an unbounded FIFO with a single consumer. Producers never
// block; the consumer parks on signal while the queue is empty.
type commandQueue struct {
	mu     sync.Mutex
	items  []envelope
	closed bool
	signal chan struct{}
}

func newCommandQueue() *commandQueue {
	return &commandQueue{
		items:  make([]envelope, 0, 8),
		signal: make(chan struct{}, 1),
	}
}

// push appends env. Returns false if the queue is closed.
func (q *commandQueue) push(env envelope) bool {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return false
	}
	q.items = append(q.items, env)
	q.mu.Unlock()

	q.wake()
	return true
}

func (q *commandQueue) wake() {
	select {
	case q.signal <- struct{}{}:
	default:
	}
}

// next blocks until a command is available, the queue is closed and drained,
// or ctx is done. Cancellation is checked before every dequeue so a cancelled
// consumer never takes a command it will not apply.
func (q *commandQueue) next(ctx context.Context) (envelope, error) {
	for {
		if ctx.Err() != nil {
			return envelope{}, context.Cause(ctx)
		}

		q.mu.Lock()
		if len(q.items) > 0 {
			env := q.items[0]
			q.items[0] = envelope{}
			q.items = q.items[1:]
			q.mu.Unlock()
			return env, nil
		}
		if q.closed {
			q.mu.Unlock()
			return envelope{}, errQueueClosed
		}
		q.mu.Unlock()

		select {
		case <-ctx.Done():
			return envelope{}, context.Cause(ctx)
		case <-q.signal:
		}
	}
}

func (q *commandQueue) len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

func (q *commandQueue) close() {
	q.mu.Lock()
	q.closed = true
	q.mu.Unlock()
	q.wake()
}

func (q *commandQueue) isClosed() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.closed
}
