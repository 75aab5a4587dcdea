package component

import "fmt"

// AIState is the reactive state of a hostile entity
type AIState uint8

const (
	AIIdling AIState = iota
	AIAngry
	AIAfraid
)

func (s AIState) String() string {
	switch s {
	case AIIdling:
		return "idling"
	case AIAngry:
		return "angry"
	case AIAfraid:
		return "afraid"
	default:
		return fmt.Sprintf("ai_state(%d)", uint8(s))
	}
}

// AIComponent marks an entity driven by the decision engine
type AIComponent struct {
	State AIState
}
