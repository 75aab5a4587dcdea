package engine

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/lixenwraith/duke-roguelike/core"
)

// Sentinel errors, match with errors.Is
var (
	ErrComponentMissing   = errors.New("component missing")
	ErrMissingEntity      = errors.New("missing entity")
	ErrGameOver           = errors.New("game over")
	ErrBorrowConflict     = errors.New("borrow conflict")
	ErrDuplicateComponent = errors.New("duplicate component")
)

// ComponentMissingError reports an entity lacking a required component
type ComponentMissingError struct {
	Entity    core.Entity
	Component string
}

func (e *ComponentMissingError) Error() string {
	return fmt.Sprintf("%s has no %s component", e.Entity, e.Component)
}

func (e *ComponentMissingError) Is(target error) bool {
	return target == ErrComponentMissing
}

// MissingEntityError reports a lookup of an entity that does not exist
// What names the entity or the role it was expected to fill ("player", "entity#7")
type MissingEntityError struct {
	What string
}

func (e *MissingEntityError) Error() string {
	return "missing entity: " + e.What
}

func (e *MissingEntityError) Is(target error) bool {
	return target == ErrMissingEntity
}

func missingEntity(e core.Entity) error {
	return &MissingEntityError{What: e.String()}
}
