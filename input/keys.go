package input

// Key names understood by the simulation
const (
	ArrowLeft  = "ArrowLeft"
	ArrowRight = "ArrowRight"
	ArrowUp    = "ArrowUp"
	ArrowDown  = "ArrowDown"
)

// Reader reports whether a named key is held this frame
type Reader interface {
	Key(name string) bool
}

// Direction is a movement key and its grid offset
type Direction struct {
	Name   string
	DX, DY int
}

// Directions in precedence order; the first held key wins
var Directions = [...]Direction{
	{ArrowLeft, -1, 0},
	{ArrowRight, 1, 0},
	{ArrowUp, 0, -1},
	{ArrowDown, 0, 1},
}

// FirstDirection returns the highest-precedence held direction
func FirstDirection(r Reader) (Direction, bool) {
	if r == nil {
		return Direction{}, false
	}
	for _, d := range Directions {
		if r.Key(d.Name) {
			return d, true
		}
	}
	return Direction{}, false
}
