package branch

// View is a handle to a decision variable of a state of type S. Views carry
// no domain themselves: every query goes through the state passed as home,
// so a view stays valid for any clone of the state it was created in.
type View[S any] interface {
	Assigned(home S) bool
}

// ViewSelector decides which unassigned view to branch on.
type ViewSelector[S any, V View[S]] interface {
	// Init makes x the running best view.
	Init(home S, x V) ViewSelStatus
	// Select compares x against the running best view and makes it the
	// running best if it is better.
	Select(home S, x V) ViewSelStatus
	// Snapshot returns the state to store in a descriptor.
	Snapshot(home S) Snapshot
	// Commit brings the selector to the state recorded in s for
	// alternative alt.
	Commit(home S, s Snapshot, alt int)
	// Copy returns an independent selector for a cloned state.
	Copy() ViewSelector[S, V]
	// Dispose releases resources held by the selector.
	Dispose(home S)
}

// ValueSelector picks the value of a decision and implements its
// alternatives.
type ValueSelector[S any, V View[S], T any] interface {
	// Alternatives returns the number of alternatives of every
	// decision made by the selector.
	Alternatives() int
	// Val returns the value to branch on for x.
	Val(home S, x V) T
	// Snapshot returns the state to store in a descriptor.
	Snapshot(home S) Snapshot
	// Commit brings the selector to the state recorded in s for
	// alternative alt.
	Commit(home S, s Snapshot, alt int)
	// Tell applies alternative alt for value n to x.
	Tell(home S, alt int, x V, n T) ModEvent
	// Copy returns an independent selector for a cloned state.
	Copy() ValueSelector[S, V, T]
	// Dispose releases resources held by the selector.
	Dispose(home S)
}
