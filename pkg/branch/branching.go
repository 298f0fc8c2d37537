package branch

import "sync/atomic"

// ID identifies a branching. Copies of a branching keep its ID so that
// descriptors created by one state can be committed on its clones.
type ID uint64

var lastID atomic.Uint64

func nextID() ID {
	return ID(lastID.Add(1))
}

// Branching generates decisions for a state of type S and replays their
// alternatives.
type Branching[S any] interface {
	ID() ID
	// Status returns true if the branching still has decisions to make.
	Status(home S) bool
	// Description creates a descriptor for the next decision. It must
	// only be called after Status returned true.
	Description(home S) Descriptor
	// Commit applies alternative alt of d to home.
	Commit(home S, d Descriptor, alt int) ExecStatus
	// Copy returns an independent branching for a clone of home.
	Copy() Branching[S]
	// Dispose releases the branching and returns its size.
	Dispose(home S) uintptr
}
