package engine

import (
	"maps"
	"reflect"
	"slices"
	"sync"

	"github.com/pkg/errors"

	"github.com/lixenwraith/duke-roguelike/core"
)

// World contains all entities and their components in per-type columnar stores
type World struct {
	mu     sync.Mutex
	nextID core.Entity
	alive  map[core.Entity]struct{}
	types  map[reflect.Type]ComponentID
	stores []anyStore
}

// NewWorld creates an empty world
func NewWorld() *World {
	return &World{
		alive: make(map[core.Entity]struct{}),
		types: make(map[reflect.Type]ComponentID),
	}
}

// storeLocked returns the store for T, registering it on first use; caller holds w.mu
func storeLocked[T any](w *World) *Store[T] {
	t := reflect.TypeFor[T]()
	if id, ok := w.types[t]; ok {
		return w.stores[id].(*Store[T])
	}
	s := newStore[T](ComponentID(len(w.stores)))
	w.types[t] = s.id
	w.stores = append(w.stores, s)
	return s
}

// StoreOf returns the store for T, registering the type if needed
func StoreOf[T any](w *World) *Store[T] {
	w.mu.Lock()
	defer w.mu.Unlock()
	return storeLocked[T](w)
}

// RegisterComponent assigns T a ComponentID without spawning anything
func RegisterComponent[T any](w *World) ComponentID {
	return StoreOf[T](w).ID()
}

func (w *World) storeByType(t reflect.Type) (anyStore, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	id, ok := w.types[t]
	if !ok {
		return nil, false
	}
	return w.stores[id], true
}

// Spawn creates an entity carrying every part
func (w *World) Spawn(parts ...Part) (core.Entity, error) {
	ents, err := w.SpawnBatch([]Bundle{parts})
	if err != nil {
		return core.NoEntity, err
	}
	return ents[0], nil
}

// SpawnBatch creates one entity per bundle
// All bundles are validated and all stores borrowed before any entity is allocated
func (w *World) SpawnBatch(bundles []Bundle) ([]core.Entity, error) {
	for i, b := range bundles {
		if err := b.validate(); err != nil {
			return nil, errors.Wrapf(err, "bundle %d", i)
		}
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	resolved := make([][]anyStore, len(bundles))
	affected := make(map[ComponentID]anyStore)
	for i, b := range bundles {
		resolved[i] = make([]anyStore, len(b))
		for j, p := range b {
			s := p.store(w)
			resolved[i][j] = s
			affected[s.ID()] = s
		}
	}

	release, err := borrowExclusive(slices.Collect(maps.Values(affected)))
	if err != nil {
		return nil, errors.Wrap(err, "spawn")
	}
	defer release()

	ents := make([]core.Entity, len(bundles))
	for i, b := range bundles {
		w.nextID++
		e := w.nextID
		w.alive[e] = struct{}{}
		for j, p := range b {
			p.insert(resolved[i][j], e)
		}
		ents[i] = e
	}
	return ents, nil
}

// Despawn removes the entity and all of its components
func (w *World) Despawn(e core.Entity) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if _, ok := w.alive[e]; !ok {
		return missingEntity(e)
	}

	var owned []anyStore
	for _, s := range w.stores {
		if s.Has(e) {
			owned = append(owned, s)
		}
	}

	release, err := borrowExclusive(owned)
	if err != nil {
		return errors.Wrapf(err, "despawn %s", e)
	}
	defer release()

	for _, s := range owned {
		s.remove(e)
	}
	delete(w.alive, e)
	return nil
}

// Contains reports whether e is alive
func (w *World) Contains(e core.Entity) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	_, ok := w.alive[e]
	return ok
}

// Len returns the number of live entities
func (w *World) Len() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.alive)
}

// Entities returns live entities in allocation order
func (w *World) Entities() []core.Entity {
	w.mu.Lock()
	defer w.mu.Unlock()
	return slices.Sorted(maps.Keys(w.alive))
}

// Clear removes all entities and components; IDs keep counting up
func (w *World) Clear() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	release, err := borrowExclusive(w.stores)
	if err != nil {
		return errors.Wrap(err, "clear")
	}
	defer release()

	for _, s := range w.stores {
		s.clear()
	}
	clear(w.alive)
	return nil
}

// borrowExclusive takes write borrows on every store or none of them
func borrowExclusive(stores []anyStore) (func(), error) {
	access := make([]Access, len(stores))
	for i := range access {
		access[i] = Write
	}
	return borrowAll(stores, access)
}

// borrowAll acquires stores[i] with access[i], rolling back on the first conflict
func borrowAll(stores []anyStore, access []Access) (func(), error) {
	for i, s := range stores {
		if s.token().acquire(access[i]) {
			continue
		}
		for j := i - 1; j >= 0; j-- {
			stores[j].token().release(access[j])
		}
		return nil, errors.Wrapf(ErrBorrowConflict, "%s unavailable for %s", s.Name(), access[i])
	}
	return func() {
		for i := len(stores) - 1; i >= 0; i-- {
			stores[i].token().release(access[i])
		}
	}, nil
}
