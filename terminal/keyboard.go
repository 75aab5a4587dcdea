package terminal

import (
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/duke-roguelike/input"
	"github.com/lixenwraith/duke-roguelike/logger"
)

// Keyboard collects key presses between frames
// Handle runs on the polling goroutine, Frame on the game loop
type Keyboard struct {
	keys     *input.KeyState
	quit     chan struct{}
	quitOnce sync.Once
}

func NewKeyboard() *Keyboard {
	return &Keyboard{
		keys: input.NewKeyState(),
		quit: make(chan struct{}),
	}
}

// Handle records one terminal event; returns false once quit is requested
func (k *Keyboard) Handle(ev tcell.Event) bool {
	key, ok := ev.(*tcell.EventKey)
	if !ok {
		return true
	}
	if IsQuit(key) {
		k.requestQuit()
		return false
	}
	if name, ok := KeyName(key); ok {
		k.keys.Press(name)
	}
	return true
}

// Frame returns the keys pressed since the previous frame and clears the set
func (k *Keyboard) Frame() *input.KeyState {
	return k.keys.Snapshot()
}

// Quit is closed when the player asks to leave or the screen stops delivering events
func (k *Keyboard) Quit() <-chan struct{} {
	return k.quit
}

// Poll reads events from screen until quit or until the screen is finalized
func (k *Keyboard) Poll(screen tcell.Screen) {
	for {
		ev := screen.PollEvent()
		if ev == nil {
			k.requestQuit()
			return
		}
		if !k.Handle(ev) {
			logger.Component("terminal").Debug("quit requested")
			return
		}
	}
}

func (k *Keyboard) requestQuit() {
	k.quitOnce.Do(func() { close(k.quit) })
}
