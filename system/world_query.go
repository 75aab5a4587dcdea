package system

import (
	"github.com/pkg/errors"

	"github.com/lixenwraith/duke-roguelike/component"
	"github.com/lixenwraith/duke-roguelike/core"
	"github.com/lixenwraith/duke-roguelike/engine"
)

// Occupancy maps every occupied cell to its occupant, taken before a system mutates positions
type Occupancy map[core.Position]core.Entity

// SnapshotOccupancy copies all positions under a short read borrow
func SnapshotOccupancy(w *engine.World) (Occupancy, error) {
	q := engine.NewQuery1[core.Position](w, engine.Read)
	occ := make(Occupancy, engine.Count[core.Position](w))
	for e, row := range q.Iter() {
		occ[*row.First] = e
	}
	if err := q.Err(); err != nil {
		return nil, errors.Wrap(err, "occupancy snapshot")
	}
	return occ, nil
}

// Occupant returns the entity at p, if any
func (o Occupancy) Occupant(p core.Position) (core.Entity, bool) {
	e, ok := o[p]
	return e, ok
}

// LocatePlayer returns the player entity and its position
func LocatePlayer(w *engine.World) (core.Entity, core.Position, error) {
	q := engine.NewQuery2[component.PlayerComponent, core.Position](w, engine.Read, engine.Read)
	for e, row := range q.Iter() {
		return e, *row.Second, nil
	}
	if err := q.Err(); err != nil {
		return core.NoEntity, core.Position{}, errors.Wrap(err, "locate player")
	}
	return core.NoEntity, core.Position{}, &engine.MissingEntityError{What: "player"}
}

// locateInputState returns the singleton input flag entity
func locateInputState(w *engine.World) (core.Entity, error) {
	q := engine.NewQuery1[component.InputStateComponent](w, engine.Read)
	for e := range q.Iter() {
		return e, nil
	}
	if err := q.Err(); err != nil {
		return core.NoEntity, errors.Wrap(err, "locate input state")
	}
	return core.NoEntity, &engine.MissingEntityError{What: "input state"}
}
