package event

import "sync/atomic"

// DefaultQueueSize is large enough for a burst of key repeats between frames.
const DefaultQueueSize = 256

// Source yields pending events without blocking.
type Source interface {
	// Poll returns the next queued event, or false when the queue is empty.
	Poll() (Event, bool)
}

// Queue is a bounded hand-off from the platform goroutine to the frame loop.
// Push and Poll never block.
type Queue struct {
	ch      chan Event
	dropped atomic.Uint64
}

// NewQueue creates a queue holding at most size events.
func NewQueue(size int) *Queue {
	if size <= 0 {
		size = DefaultQueueSize
	}
	return &Queue{ch: make(chan Event, size)}
}

// Push enqueues an event. When the queue is full the event is dropped and
// false is returned; a Quit is never dropped silently, it evicts the oldest
// event instead.
func (q *Queue) Push(e Event) bool {
	select {
	case q.ch <- e:
		return true
	default:
	}

	if _, isQuit := e.(Quit); isQuit {
		select {
		case <-q.ch:
			q.dropped.Add(1)
		default:
		}
		select {
		case q.ch <- e:
			return true
		default:
		}
	}

	q.dropped.Add(1)
	return false
}

// Poll implements Source.
func (q *Queue) Poll() (Event, bool) {
	select {
	case e := <-q.ch:
		return e, true
	default:
		return nil, false
	}
}

// Len returns the number of queued events.
func (q *Queue) Len() int {
	return len(q.ch)
}

// Dropped returns how many events were discarded because the queue was full.
func (q *Queue) Dropped() uint64 {
	return q.dropped.Load()
}
