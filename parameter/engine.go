package parameter

// Console
const (
	// ConsoleWidth and ConsoleHeight include the one-cell border
	ConsoleWidth  = 80
	ConsoleHeight = 45

	// MaxFPS caps the frame loop; each frame feeds one tick
	MaxFPS = 12
)

// Spawn placement
const (
	// SpawnRetryLimit bounds re-rolls of an occupied spawn cell before the roll is accepted as a skip
	SpawnRetryLimit = 16
)
