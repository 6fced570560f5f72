package drum

import "sync/atomic"

// command is one control-rate update for the render side.
type command struct {
	note *NotePlan
	bend *BendPlan
}

// commandQueue is a bounded single-producer single-consumer ring. The producer
// only writes tail, the consumer only writes head.
type commandQueue struct {
	buf  []command
	mask uint64
	head atomic.Uint64
	tail atomic.Uint64
}

func newCommandQueue(size int) *commandQueue {
	n := 1
	for n < size {
		n <<= 1
	}
	return &commandQueue{buf: make([]command, n), mask: uint64(n - 1)}
}

func (q *commandQueue) push(c command) bool {
	t := q.tail.Load()
	if t-q.head.Load() == uint64(len(q.buf)) {
		return false
	}
	q.buf[t&q.mask] = c
	q.tail.Store(t + 1)
	return true
}

func (q *commandQueue) pop() (command, bool) {
	h := q.head.Load()
	if h == q.tail.Load() {
		return command{}, false
	}
	c := q.buf[h&q.mask]
	q.buf[h&q.mask] = command{}
	q.head.Store(h + 1)
	return c, true
}

func (q *commandQueue) pending() int {
	return int(q.tail.Load() - q.head.Load())
}
