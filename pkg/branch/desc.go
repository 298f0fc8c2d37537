package branch

import "unsafe"

// Snapshot is an opaque, immutable copy of the state of a selection
// policy, stored in a descriptor so the policy can be brought back to the
// point where the descriptor was created.
type Snapshot interface {
	// Size returns the memory occupied by the snapshot.
	Size() uintptr
}

// EmptySnapshot is the snapshot of a stateless policy.
type EmptySnapshot struct{}

func (EmptySnapshot) Size() uintptr {
	return 0
}

// Descriptor is an immutable, replayable record of one decision point.
type Descriptor interface {
	// ID identifies the branching that created the descriptor.
	ID() ID
	// Alternatives returns the number of alternatives of the decision.
	Alternatives() int
	// Size returns the memory occupied by the descriptor, including
	// any nested snapshots.
	Size() uintptr
}

// Pos is the position of the branching view in the view array.
type Pos struct {
	pos int
}

func NewPos(p int) Pos {
	return Pos{pos: p}
}

func (p Pos) Index() int {
	return p.pos
}

var _ Descriptor = &PosDesc{}

// PosDesc describes a decision by the position of its view.
type PosDesc struct {
	id           ID
	alternatives int
	pos          Pos
	viewDesc     Snapshot
}

// NewPosDesc creates a descriptor for branching id with a alternatives,
// position p and view selection snapshot viewDesc.
func NewPosDesc(id ID, a int, p Pos, viewDesc Snapshot) *PosDesc {
	if viewDesc == nil {
		viewDesc = EmptySnapshot{}
	}
	return &PosDesc{
		id:           id,
		alternatives: a,
		pos:          p,
		viewDesc:     viewDesc,
	}
}

func (d *PosDesc) ID() ID {
	return d.id
}

func (d *PosDesc) Alternatives() int {
	return d.alternatives
}

func (d *PosDesc) Pos() Pos {
	return d.pos
}

func (d *PosDesc) ViewSnapshot() Snapshot {
	return d.viewDesc
}

func (d *PosDesc) Size() uintptr {
	return unsafe.Sizeof(*d) + d.viewDesc.Size()
}

var _ Descriptor = &PosValDesc[int]{}

// PosValDesc describes a decision by the position of its view, the value
// picked for it and the snapshots of both selection policies.
type PosValDesc[T any] struct {
	PosDesc
	valDesc Snapshot
	val     T
}

// NewPosValDesc creates a descriptor with a alternatives, position p, view
// snapshot viewDesc, value snapshot valDesc and value n.
func NewPosValDesc[T any](id ID, a int, p Pos, viewDesc, valDesc Snapshot, n T) *PosValDesc[T] {
	if valDesc == nil {
		valDesc = EmptySnapshot{}
	}
	return &PosValDesc[T]{
		PosDesc: *NewPosDesc(id, a, p, viewDesc),
		valDesc: valDesc,
		val:     n,
	}
}

func (d *PosValDesc[T]) ValSnapshot() Snapshot {
	return d.valDesc
}

// Val returns the value to branch with.
func (d *PosValDesc[T]) Val() T {
	return d.val
}

func (d *PosValDesc[T]) Size() uintptr {
	return unsafe.Sizeof(*d) + d.viewDesc.Size() + d.valDesc.Size()
}
