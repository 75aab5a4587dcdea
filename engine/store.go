package engine

import (
	"reflect"

	"github.com/lixenwraith/duke-roguelike/core"
)

// ComponentID is the stable per-world identifier of a component type, assigned in registration order
type ComponentID uint32

// anyStore provides type-erased operations for lifecycle management
// World uses it to despawn and filter without knowing the concrete type
type anyStore interface {
	ID() ComponentID
	Name() string
	Has(e core.Entity) bool
	Len() int
	entityList() []core.Entity
	remove(e core.Entity) bool
	clear()
	token() *borrowToken
}

// Store is a columnar container for component type T
// Dense values and dense entities share an index; sparse maps entity to that index
type Store[T any] struct {
	id       ComponentID
	name     string
	borrow   borrowToken
	values   []T
	entities []core.Entity
	sparse   map[core.Entity]int
}

func newStore[T any](id ComponentID) *Store[T] {
	return &Store[T]{
		id:       id,
		name:     reflect.TypeFor[T]().Name(),
		values:   make([]T, 0, 16),
		entities: make([]core.Entity, 0, 16),
		sparse:   make(map[core.Entity]int),
	}
}

func (s *Store[T]) ID() ComponentID { return s.id }

func (s *Store[T]) Name() string { return s.name }

// Has checks if entity has this component, without borrowing
func (s *Store[T]) Has(e core.Entity) bool {
	_, ok := s.sparse[e]
	return ok
}

// Len returns number of entities with this component
func (s *Store[T]) Len() int {
	return len(s.entities)
}

func (s *Store[T]) entityList() []core.Entity {
	return s.entities
}

func (s *Store[T]) token() *borrowToken {
	return &s.borrow
}

// set inserts or overwrites the component for e
func (s *Store[T]) set(e core.Entity, v T) {
	if idx, ok := s.sparse[e]; ok {
		s.values[idx] = v
		return
	}
	s.sparse[e] = len(s.values)
	s.values = append(s.values, v)
	s.entities = append(s.entities, e)
}

// ptr returns the address of e's value in the dense column, nil if absent
// Valid until the next structural change to this store
func (s *Store[T]) ptr(e core.Entity) *T {
	idx, ok := s.sparse[e]
	if !ok {
		return nil
	}
	return &s.values[idx]
}

// remove swaps the last element into e's slot
func (s *Store[T]) remove(e core.Entity) bool {
	idx, ok := s.sparse[e]
	if !ok {
		return false
	}

	last := len(s.values) - 1
	if idx != last {
		moved := s.entities[last]
		s.values[idx] = s.values[last]
		s.entities[idx] = moved
		s.sparse[moved] = idx
	}

	var zero T
	s.values[last] = zero
	s.values = s.values[:last]
	s.entities = s.entities[:last]
	delete(s.sparse, e)
	return true
}

func (s *Store[T]) clear() {
	clear(s.values)
	s.values = s.values[:0]
	s.entities = s.entities[:0]
	s.sparse = make(map[core.Entity]int)
}
