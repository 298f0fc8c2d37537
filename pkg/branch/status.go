// Package branch implements generic branching by view and value selection.
//
// A branching inspects an ordered array of views owned by a search state,
// picks one unassigned view with a ViewSelector, asks a ValueSelector for a
// value, and records the decision in an immutable Descriptor. The search
// engine later replays one alternative of that descriptor against a
// (typically cloned) state through Commit.
package branch

import "fmt"

// ViewSelStatus is the result of comparing a candidate view against the
// running best view of a ViewSelector.
type ViewSelStatus int

const (
	// ViewSelBest means no better view can exist; the scan stops.
	ViewSelBest ViewSelStatus = iota
	// ViewSelBetter means the candidate replaces the running best.
	ViewSelBetter
	// ViewSelTie means the candidate is as good as the running best.
	ViewSelTie
	// ViewSelWorse means the candidate is worse than the running best.
	ViewSelWorse
)

func (s ViewSelStatus) String() string {
	switch s {
	case ViewSelBest:
		return "best"
	case ViewSelBetter:
		return "better"
	case ViewSelTie:
		return "tie"
	case ViewSelWorse:
		return "worse"
	}
	return fmt.Sprintf("ViewSelStatus(%d)", int(s))
}

// ExecStatus reports whether committing an alternative left the state
// consistent.
type ExecStatus int

const (
	ExecOK ExecStatus = iota
	ExecFailed
)

func (s ExecStatus) String() string {
	if s == ExecFailed {
		return "failed"
	}
	return "ok"
}

// ModEvent describes how a tell modified the domain of a view.
type ModEvent int

const (
	ModEventFailed ModEvent = iota - 1
	ModEventNone
	ModEventVal
	ModEventBnd
	ModEventDom
)

// Failed returns true if the tell emptied the domain.
func (me ModEvent) Failed() bool {
	return me == ModEventFailed
}

// SpaceStatus is the status of a search state after propagation.
type SpaceStatus int

const (
	SpaceFailed SpaceStatus = iota
	SpaceSolved
	SpaceBranch
)

func (s SpaceStatus) String() string {
	switch s {
	case SpaceFailed:
		return "failed"
	case SpaceSolved:
		return "solved"
	case SpaceBranch:
		return "branch"
	}
	return fmt.Sprintf("SpaceStatus(%d)", int(s))
}
