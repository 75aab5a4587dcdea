package core

// Area represents a rectangular console region
type Area struct {
	X, Y          int // Top-left corner
	Width, Height int // Dimensions (minimum 1x1)
}

// NewConsoleArea returns the full console rectangle anchored at the origin
func NewConsoleArea(width, height int) Area {
	return Area{Width: width, Height: height}
}

// Contains reports whether p lies in the area's interior, excluding the one-cell border
// For a console area this is 1 <= x <= width-2, 1 <= y <= height-2
func (a Area) Contains(p Position) bool {
	return p.X >= a.X+1 && p.X <= a.X+a.Width-2 &&
		p.Y >= a.Y+1 && p.Y <= a.Y+a.Height-2
}

// Interior returns the width and height of the playable region inside the border
func (a Area) Interior() (int, int) {
	return max(a.Width-2, 0), max(a.Height-2, 0)
}

// Center returns the centre cell of the area
func (a Area) Center() Position {
	return Position{X: a.X + a.Width/2, Y: a.Y + a.Height/2}
}
