package engine

import (
	"reflect"

	"github.com/pkg/errors"

	"github.com/lixenwraith/duke-roguelike/core"
)

// Part is one typed component destined for a new entity
type Part interface {
	Type() reflect.Type
	store(w *World) anyStore
	insert(s anyStore, e core.Entity)
}

// Bundle is the component set of one entity to spawn
type Bundle []Part

type part[T any] struct {
	value T
}

// Of wraps a component value for Spawn or SpawnBatch
func Of[T any](v T) Part {
	return part[T]{value: v}
}

func (p part[T]) Type() reflect.Type {
	return reflect.TypeFor[T]()
}

func (p part[T]) store(w *World) anyStore {
	return storeLocked[T](w)
}

func (p part[T]) insert(s anyStore, e core.Entity) {
	s.(*Store[T]).set(e, p.value)
}

// TypeOf returns the component type key used by query filters
func TypeOf[T any]() reflect.Type {
	return reflect.TypeFor[T]()
}

func (b Bundle) validate() error {
	seen := make(map[reflect.Type]struct{}, len(b))
	for _, p := range b {
		t := p.Type()
		if _, dup := seen[t]; dup {
			return errors.Wrapf(ErrDuplicateComponent, "bundle names %s twice", t.Name())
		}
		seen[t] = struct{}{}
	}
	return nil
}
