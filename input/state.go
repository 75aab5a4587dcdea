package input

import "sync"

// KeyState is the frame-scoped set of held keys
// The poller presses keys between frames; the frame loop reads then resets
type KeyState struct {
	mu      sync.Mutex
	pressed map[string]struct{}
}

// NewKeyState returns a KeyState with the given keys held
func NewKeyState(names ...string) *KeyState {
	k := &KeyState{pressed: make(map[string]struct{}, len(names))}
	for _, n := range names {
		k.pressed[n] = struct{}{}
	}
	return k
}

// Press marks a key held until the next Reset
func (k *KeyState) Press(name string) {
	k.mu.Lock()
	defer k.mu.Unlock()
	if k.pressed == nil {
		k.pressed = make(map[string]struct{})
	}
	k.pressed[name] = struct{}{}
}

// Key implements Reader
func (k *KeyState) Key(name string) bool {
	k.mu.Lock()
	defer k.mu.Unlock()
	_, ok := k.pressed[name]
	return ok
}

// Reset releases every key
func (k *KeyState) Reset() {
	k.mu.Lock()
	defer k.mu.Unlock()
	clear(k.pressed)
}

// Snapshot copies the held keys into a new KeyState and resets this one
func (k *KeyState) Snapshot() *KeyState {
	k.mu.Lock()
	defer k.mu.Unlock()
	out := &KeyState{pressed: make(map[string]struct{}, len(k.pressed))}
	for n := range k.pressed {
		out.pressed[n] = struct{}{}
	}
	clear(k.pressed)
	return out
}

// Len returns the number of held keys
func (k *KeyState) Len() int {
	k.mu.Lock()
	defer k.mu.Unlock()
	return len(k.pressed)
}
