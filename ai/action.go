package ai

import (
	"fmt"

	"github.com/lixenwraith/duke-roguelike/core"
)

// ActionKind is what an AI chose to do this tick
type ActionKind uint8

const (
	ActionWait ActionKind = iota
	ActionGoTo
	ActionAttack
)

func (k ActionKind) String() string {
	switch k {
	case ActionWait:
		return "wait"
	case ActionGoTo:
		return "goto"
	case ActionAttack:
		return "attack"
	default:
		return fmt.Sprintf("action(%d)", uint8(k))
	}
}

// Action is a decision; Target is unused for ActionWait
type Action struct {
	Kind   ActionKind
	Target core.Position
}

func Wait() Action {
	return Action{Kind: ActionWait}
}

func GoTo(target core.Position) Action {
	return Action{Kind: ActionGoTo, Target: target}
}

func Attack(target core.Position) Action {
	return Action{Kind: ActionAttack, Target: target}
}

func (a Action) String() string {
	if a.Kind == ActionWait {
		return a.Kind.String()
	}
	return a.Kind.String() + " " + a.Target.String()
}
