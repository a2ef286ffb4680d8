package nvim

import "sync"

// queue is an unbounded FIFO handoff between goroutines. Pushes never block,
// which keeps the reader and callers decoupled from however slowly the other
// side drains. After close, pushes are refused and pops drain what remains.
type queue[T any] struct {
	mu       sync.Mutex
	nonEmpty *sync.Cond
	items    []T
	closed   bool
}

func newQueue[T any]() *queue[T] {
	q := &queue[T]{}
	q.nonEmpty = sync.NewCond(&q.mu)
	return q
}

// push appends v and reports whether the queue accepted it.
func (q *queue[T]) push(v T) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return false
	}
	q.items = append(q.items, v)
	q.nonEmpty.Signal()
	return true
}

// pop blocks until an item is available or the queue is closed and drained.
func (q *queue[T]) pop() (T, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	for len(q.items) == 0 && !q.closed {
		q.nonEmpty.Wait()
	}
	var zero T
	if len(q.items) == 0 {
		return zero, false
	}
	v := q.items[0]
	q.items[0] = zero
	q.items = q.items[1:]
	return v, true
}

// close stops the queue. Idempotent.
func (q *queue[T]) close() {
	q.mu.Lock()
	q.closed = true
	q.mu.Unlock()
	q.nonEmpty.Broadcast()
}

// pump forwards items to ch until the queue closes and drains, then closes
// ch so receivers observe shutdown.
func pump[T any](q *queue[T], ch chan<- T) {
	for {
		v, ok := q.pop()
		if !ok {
			close(ch)
			return
		}
		ch <- v
	}
}
