package stage

import (
	"context"
	"sync"

	"github.com/koscakluka/ema-avatar/core/frames"
)

// frameQueue is an unbounded FIFO with a single blocking consumer. Producers
// never block.
type frameQueue struct {
	mu      sync.Mutex
	items   []frames.Frame
	popping bool

	// signal holds at most one pending wake-up for the consumer.
	signal chan struct{}
}

func newFrameQueue() *frameQueue {
	return &frameQueue{signal: make(chan struct{}, 1)}
}

func (q *frameQueue) Push(frame frames.Frame) {
	q.mu.Lock()
	q.items = append(q.items, frame)
	q.mu.Unlock()

	select {
	case q.signal <- struct{}{}:
	default:
	}
}

// Pop blocks until a frame is available or ctx is done. Only one Pop may be
// in flight at a time; a second concurrent call panics.
func (q *frameQueue) Pop(ctx context.Context) (frames.Frame, error) {
	q.mu.Lock()
	if q.popping {
		q.mu.Unlock()
		panic(errConcurrentPop)
	}
	q.popping = true
	q.mu.Unlock()

	defer func() {
		q.mu.Lock()
		q.popping = false
		q.mu.Unlock()
	}()

	for {
		q.mu.Lock()
		if len(q.items) > 0 {
			frame := q.items[0]
			q.items[0] = nil
			q.items = q.items[1:]
			q.mu.Unlock()
			return frame, nil
		}
		q.mu.Unlock()

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-q.signal:
		}
	}
}

// Clear discards every queued frame and returns how many were dropped. A
// frame already handed out by Pop is not affected.
func (q *frameQueue) Clear() int {
	q.mu.Lock()
	defer q.mu.Unlock()

	n := len(q.items)
	q.items = nil
	return n
}

func (q *frameQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}
