package terminal

import (
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/duke-roguelike/input"
)

// keyToName maps tcell arrow keys to the names the input system reads
var keyToName = map[tcell.Key]string{
	tcell.KeyLeft:  input.ArrowLeft,
	tcell.KeyRight: input.ArrowRight,
	tcell.KeyUp:    input.ArrowUp,
	tcell.KeyDown:  input.ArrowDown,
}

// runeToName adds vi movement keys as aliases
var runeToName = map[rune]string{
	'h': input.ArrowLeft,
	'l': input.ArrowRight,
	'k': input.ArrowUp,
	'j': input.ArrowDown,
}

// KeyName resolves a key event to a movement name
func KeyName(ev *tcell.EventKey) (string, bool) {
	if ev.Key() == tcell.KeyRune {
		name, ok := runeToName[ev.Rune()]
		return name, ok
	}
	name, ok := keyToName[ev.Key()]
	return name, ok
}

// IsQuit reports whether the event requests exit: Escape, Ctrl-C or q
func IsQuit(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyRune:
		return ev.Rune() == 'q'
	}
	return false
}
