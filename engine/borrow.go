package engine

import "sync"

// Access is the borrow mode a caller requests on a component store
type Access uint8

const (
	Read Access = iota
	Write
)

func (a Access) String() string {
	if a == Write {
		return "write"
	}
	return "read"
}

// borrowToken admits many readers or exactly one writer
// Acquisition never blocks; a conflicting request fails immediately
type borrowToken struct {
	mu      sync.Mutex
	readers int
	writer  bool
}

func (t *borrowToken) acquire(a Access) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.writer {
		return false
	}
	if a == Write {
		if t.readers > 0 {
			return false
		}
		t.writer = true
		return true
	}
	t.readers++
	return true
}

func (t *borrowToken) release(a Access) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if a == Write {
		t.writer = false
		return
	}
	if t.readers > 0 {
		t.readers--
	}
}

func (t *borrowToken) idle() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return !t.writer && t.readers == 0
}
