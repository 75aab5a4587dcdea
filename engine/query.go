package engine

import (
	"iter"
	"reflect"
	"slices"

	"github.com/pkg/errors"

	"github.com/lixenwraith/duke-roguelike/core"
)

// Filter restricts a query by component presence without borrowing the component
type Filter struct {
	types   []reflect.Type
	present bool
}

// With keeps entities carrying every listed type
func With(types ...reflect.Type) Filter {
	return Filter{types: types, present: true}
}

// Without drops entities carrying any listed type
func Without(types ...reflect.Type) Filter {
	return Filter{types: types, present: false}
}

// query holds the column-independent state shared by Query1..Query4
type query struct {
	world   *World
	access  []Access
	filters []Filter
	invalid error
	err     error
}

func newQuery(w *World, columns []reflect.Type, access []Access, filters []Filter) query {
	q := query{world: w, access: access, filters: filters}
	seen := make(map[reflect.Type]struct{}, len(columns))
	for _, t := range columns {
		if _, dup := seen[t]; dup {
			q.invalid = errors.Wrapf(ErrBorrowConflict, "query names %s twice", t.Name())
			break
		}
		seen[t] = struct{}{}
	}
	return q
}

// Err returns the error that stopped the last Iter, nil if it ran
func (q *query) Err() error {
	return q.err
}

func (q *query) matches(e core.Entity, stores []anyStore) bool {
	for _, s := range stores {
		if !s.Has(e) {
			return false
		}
	}
	for _, f := range q.filters {
		for _, t := range f.types {
			s, ok := q.world.storeByType(t)
			has := ok && s.Has(e)
			if has != f.present {
				return false
			}
		}
	}
	return true
}

// run borrows every column for the whole iteration and visits matching entities
// The smallest column drives the scan
func (q *query) run(stores []anyStore, visit func(core.Entity) bool) {
	if q.invalid != nil {
		q.err = q.invalid
		return
	}

	release, err := borrowAll(stores, q.access)
	if err != nil {
		q.err = err
		return
	}
	defer release()
	q.err = nil

	driver := stores[0]
	for _, s := range stores[1:] {
		if s.Len() < driver.Len() {
			driver = s
		}
	}

	for _, e := range slices.Clone(driver.entityList()) {
		if !q.matches(e, stores) {
			continue
		}
		if !visit(e) {
			return
		}
	}
}

// Row1 is one matched entity's column of a Query1
type Row1[A any] struct {
	First *A
}

// Query1 iterates entities carrying A
type Query1[A any] struct {
	query
}

// NewQuery1 builds a query over A borrowed with the given access
func NewQuery1[A any](w *World, a Access, filters ...Filter) *Query1[A] {
	return &Query1[A]{newQuery(w, []reflect.Type{TypeOf[A]()}, []Access{a}, filters)}
}

// Iter borrows the column when iteration starts and releases it when iteration ends
func (q *Query1[A]) Iter() iter.Seq2[core.Entity, Row1[A]] {
	return func(yield func(core.Entity, Row1[A]) bool) {
		sa := StoreOf[A](q.world)
		q.run([]anyStore{sa}, func(e core.Entity) bool {
			return yield(e, Row1[A]{First: sa.ptr(e)})
		})
	}
}

// Row2 is one matched entity's columns of a Query2
type Row2[A, B any] struct {
	First  *A
	Second *B
}

// Query2 iterates entities carrying A and B
type Query2[A, B any] struct {
	query
}

func NewQuery2[A, B any](w *World, a, b Access, filters ...Filter) *Query2[A, B] {
	cols := []reflect.Type{TypeOf[A](), TypeOf[B]()}
	return &Query2[A, B]{newQuery(w, cols, []Access{a, b}, filters)}
}

func (q *Query2[A, B]) Iter() iter.Seq2[core.Entity, Row2[A, B]] {
	return func(yield func(core.Entity, Row2[A, B]) bool) {
		sa, sb := StoreOf[A](q.world), StoreOf[B](q.world)
		q.run([]anyStore{sa, sb}, func(e core.Entity) bool {
			return yield(e, Row2[A, B]{First: sa.ptr(e), Second: sb.ptr(e)})
		})
	}
}

// Row3 is one matched entity's columns of a Query3
type Row3[A, B, C any] struct {
	First  *A
	Second *B
	Third  *C
}

// Query3 iterates entities carrying A, B and C
type Query3[A, B, C any] struct {
	query
}

func NewQuery3[A, B, C any](w *World, a, b, c Access, filters ...Filter) *Query3[A, B, C] {
	cols := []reflect.Type{TypeOf[A](), TypeOf[B](), TypeOf[C]()}
	return &Query3[A, B, C]{newQuery(w, cols, []Access{a, b, c}, filters)}
}

func (q *Query3[A, B, C]) Iter() iter.Seq2[core.Entity, Row3[A, B, C]] {
	return func(yield func(core.Entity, Row3[A, B, C]) bool) {
		sa, sb, sc := StoreOf[A](q.world), StoreOf[B](q.world), StoreOf[C](q.world)
		q.run([]anyStore{sa, sb, sc}, func(e core.Entity) bool {
			return yield(e, Row3[A, B, C]{First: sa.ptr(e), Second: sb.ptr(e), Third: sc.ptr(e)})
		})
	}
}

// Row4 is one matched entity's columns of a Query4
type Row4[A, B, C, D any] struct {
	First  *A
	Second *B
	Third  *C
	Fourth *D
}

// Query4 iterates entities carrying A, B, C and D
type Query4[A, B, C, D any] struct {
	query
}

func NewQuery4[A, B, C, D any](w *World, a, b, c, d Access, filters ...Filter) *Query4[A, B, C, D] {
	cols := []reflect.Type{TypeOf[A](), TypeOf[B](), TypeOf[C](), TypeOf[D]()}
	return &Query4[A, B, C, D]{newQuery(w, cols, []Access{a, b, c, d}, filters)}
}

func (q *Query4[A, B, C, D]) Iter() iter.Seq2[core.Entity, Row4[A, B, C, D]] {
	return func(yield func(core.Entity, Row4[A, B, C, D]) bool) {
		sa, sb := StoreOf[A](q.world), StoreOf[B](q.world)
		sc, sd := StoreOf[C](q.world), StoreOf[D](q.world)
		q.run([]anyStore{sa, sb, sc, sd}, func(e core.Entity) bool {
			return yield(e, Row4[A, B, C, D]{
				First:  sa.ptr(e),
				Second: sb.ptr(e),
				Third:  sc.ptr(e),
				Fourth: sd.ptr(e),
			})
		})
	}
}
