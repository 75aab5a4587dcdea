package component

// PlayerComponent marks the player-controlled entity
type PlayerComponent struct{}

// InputStateComponent is the singleton flag telling AI whether the player acted this tick
// Reset at the start of every input pass, set when a move or attack was consumed
type InputStateComponent struct {
	WasInputHandledThisFrame bool
}
