package core

import "strconv"

// Entity is an opaque identifier owning zero or more components
// IDs are allocated monotonically from 1 and never reused within a process
type Entity uint64

// NoEntity is the zero identifier, never allocated
const NoEntity Entity = 0

// Valid reports whether e could refer to an allocated entity
func (e Entity) Valid() bool {
	return e != NoEntity
}

func (e Entity) String() string {
	return "entity#" + strconv.FormatUint(uint64(e), 10)
}
