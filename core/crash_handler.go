package core

import (
	"fmt"
	"os"
	"runtime/debug"
	"sync/atomic"

	"github.com/lixenwraith/duke-roguelike/logger"
)

// resetHook restores the terminal before a crash report is printed
// Injected by the entry point so core stays independent of the terminal backend
var resetHook atomic.Pointer[func()]

// SetCrashReset registers the function run by HandleCrash before printing
func SetCrashReset(fn func()) {
	if fn == nil {
		resetHook.Store(nil)
		return
	}
	resetHook.Store(&fn)
}

// HandleCrash is the unified panic handler that resets the terminal and prints the stack trace
func HandleCrash(r any) {
	if r == nil {
		return
	}

	logger.Log.WithField("panic", r).Error("crash")

	if fn := resetHook.Load(); fn != nil {
		(*fn)()
	}

	os.Stdout.Sync()

	// \r\n keeps the report readable if the terminal is still in raw mode
	fmt.Fprintf(os.Stderr, "\r\n\x1b[31mCRASH DETECTED: %v\x1b[0m\r\n", r)
	fmt.Fprintf(os.Stderr, "Stack Trace:\r\n%s\r\n", debug.Stack())

	os.Stderr.Sync()

	os.Exit(1)
}

// Go runs fn on a new goroutine that routes panics through HandleCrash
func Go(fn func()) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				HandleCrash(r)
			}
		}()
		fn()
	}()
}
