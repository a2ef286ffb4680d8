package nvim

import "container/heap"

// answer is a buffered response waiting for its turn to be released.
type answer[T any] struct {
	msgid uint64
	value T
}

// answerHeap orders buffered answers largest msgid first, matching the order
// a stack-disciplined responder releases them in.
type answerHeap[T any] []answer[T]

func (h answerHeap[T]) Len() int           { return len(h) }
func (h answerHeap[T]) Less(i, j int) bool { return h[i].msgid > h[j].msgid }
func (h answerHeap[T]) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }

func (h *answerHeap[T]) Push(x any) {
	*h = append(*h, x.(answer[T]))
}

func (h *answerHeap[T]) Pop() any {
	old := *h
	n := len(old)
	it := old[n-1]
	*h = old[:n-1]
	return it
}

// correlator enforces the protocol's answering discipline: requests are
// answered in reverse order of issuance, unwinding a stack. Responses that
// arrive (or are produced) early sit in a buffer until every request issued
// after theirs has been answered.
//
// The same mechanism serves both directions. For calls this process issues,
// track/offer/ready reorder the editor's responses; for requests the editor
// issues, they hold back locally produced responses until they may be sent.
//
// correlator is not goroutine safe; callers serialize access.
type correlator[T any] struct {
	pending []uint64
	buf     answerHeap[T]
}

// track records an issued msgid. Msgids increase monotonically, so the top
// of the pending stack is also its largest entry.
func (c *correlator[T]) track(msgid uint64) {
	c.pending = append(c.pending, msgid)
}

// drop forgets a tracked msgid that will never be answered.
func (c *correlator[T]) drop(msgid uint64) {
	for i := len(c.pending) - 1; i >= 0; i-- {
		if c.pending[i] == msgid {
			c.pending = append(c.pending[:i], c.pending[i+1:]...)
			return
		}
	}
}

// offer buffers a response for eventual release. It reports false when the
// msgid was never tracked or already has a buffered answer; such responses
// are protocol violations and must not disturb session state.
func (c *correlator[T]) offer(msgid uint64, v T) bool {
	if !c.tracked(msgid) || c.buffered(msgid) {
		return false
	}
	heap.Push(&c.buf, answer[T]{msgid: msgid, value: v})
	return true
}

// ready pops every answer that is now releasable, in release order. One
// arrival can unlock a cascade: releasing the stack top may expose the next
// buffered answer as the new top.
func (c *correlator[T]) ready() []answer[T] {
	var out []answer[T]
	for len(c.buf) > 0 && len(c.pending) > 0 && c.buf[0].msgid == c.pending[len(c.pending)-1] {
		out = append(out, heap.Pop(&c.buf).(answer[T]))
		c.pending = c.pending[:len(c.pending)-1]
	}
	return out
}

// depth is the number of unanswered tracked requests.
func (c *correlator[T]) depth() int { return len(c.pending) }

// discard empties both structures, returning how many unanswered requests
// were abandoned.
func (c *correlator[T]) discard() int {
	n := len(c.pending)
	c.pending = nil
	c.buf = nil
	return n
}

func (c *correlator[T]) tracked(msgid uint64) bool {
	for _, id := range c.pending {
		if id == msgid {
			return true
		}
	}
	return false
}

func (c *correlator[T]) buffered(msgid uint64) bool {
	for _, a := range c.buf {
		if a.msgid == msgid {
			return true
		}
	}
	return false
}
