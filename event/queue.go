package event

import "sync"

// queue is the deferred FIFO buffer
// Producers append under the mutex; drain swaps the whole buffer out
type queue struct {
	mu     sync.Mutex
	events []Event
}

func (q *queue) push(ev Event) {
	q.mu.Lock()
	q.events = append(q.events, ev)
	q.mu.Unlock()
}

// drain returns pending events in FIFO order and leaves the buffer empty
// Events pushed after drain returns belong to the next drain
func (q *queue) drain() []Event {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := q.events
	q.events = nil
	return out
}

func (q *queue) len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.events)
}
