package terminal

import (
	"github.com/gdamore/tcell/v2"
	"github.com/pkg/errors"
)

// OpenScreen initializes the controlling terminal as a tcell screen
// The caller owns the screen and must call Fini to restore the terminal
func OpenScreen() (tcell.Screen, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, errors.Wrap(err, "create screen")
	}
	if err := screen.Init(); err != nil {
		return nil, errors.Wrap(err, "init screen")
	}
	screen.SetStyle(tcell.StyleDefault.Background(tcell.ColorBlack))
	screen.HideCursor()
	screen.Clear()
	return screen, nil
}

// Fits reports whether the screen can show a width x height map plus the status line
func Fits(screen tcell.Screen, width, height int) bool {
	w, h := screen.Size()
	return w >= width && h >= height+1
}
