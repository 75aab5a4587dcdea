package engine

import (
	"github.com/pkg/errors"

	"github.com/lixenwraith/duke-roguelike/core"
)

// Ref is a borrowed handle to one component of one entity
// The borrow is held until Release; shared refs must not write through Value
type Ref[T any] struct {
	value    *T
	tok      *borrowToken
	access   Access
	released bool
}

// Value returns the component in place
func (r *Ref[T]) Value() *T {
	return r.value
}

// Release returns the borrow, safe to call more than once
func (r *Ref[T]) Release() {
	if r.released {
		return
	}
	r.released = true
	r.tok.release(r.access)
}

// Get borrows e's T for reading
func Get[T any](w *World, e core.Entity) (*Ref[T], error) {
	return borrowOne[T](w, e, Read)
}

// GetMut borrows e's T exclusively
func GetMut[T any](w *World, e core.Entity) (*Ref[T], error) {
	return borrowOne[T](w, e, Write)
}

// ReadValue copies e's T under a short read borrow
func ReadValue[T any](w *World, e core.Entity) (T, error) {
	ref, err := Get[T](w, e)
	if err != nil {
		var zero T
		return zero, err
	}
	defer ref.Release()
	return *ref.Value(), nil
}

func borrowOne[T any](w *World, e core.Entity, a Access) (*Ref[T], error) {
	if !w.Contains(e) {
		return nil, missingEntity(e)
	}

	s := StoreOf[T](w)
	if !s.Has(e) {
		return nil, &ComponentMissingError{Entity: e, Component: s.Name()}
	}
	if !s.borrow.acquire(a) {
		return nil, errors.Wrapf(ErrBorrowConflict, "%s of %s unavailable for %s", s.Name(), e, a)
	}
	return &Ref[T]{value: s.ptr(e), tok: &s.borrow, access: a}, nil
}

// Has reports whether e carries T; never borrows
func Has[T any](w *World, e core.Entity) bool {
	return StoreOf[T](w).Has(e)
}

// Count returns how many entities carry T
func Count[T any](w *World) int {
	return StoreOf[T](w).Len()
}

// Insert adds or overwrites e's T
func Insert[T any](w *World, e core.Entity, v T) error {
	if !w.Contains(e) {
		return missingEntity(e)
	}

	s := StoreOf[T](w)
	if !s.borrow.acquire(Write) {
		return errors.Wrapf(ErrBorrowConflict, "insert %s on %s", s.Name(), e)
	}
	defer s.borrow.release(Write)

	s.set(e, v)
	return nil
}

// Remove detaches T from e
func Remove[T any](w *World, e core.Entity) error {
	if !w.Contains(e) {
		return missingEntity(e)
	}

	s := StoreOf[T](w)
	if !s.borrow.acquire(Write) {
		return errors.Wrapf(ErrBorrowConflict, "remove %s from %s", s.Name(), e)
	}
	defer s.borrow.release(Write)

	if !s.remove(e) {
		return &ComponentMissingError{Entity: e, Component: s.Name()}
	}
	return nil
}
