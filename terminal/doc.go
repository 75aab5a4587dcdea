// Package terminal adapts the simulation to a tcell screen.
//
// Keyboard turns key events into the frame-scoped key set read by the input system.
// Renderer draws the world grid and a one-line status bar.
package terminal
