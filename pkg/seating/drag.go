package seating

import (
	"math"

	"github.com/google/uuid"

	"github.com/matzehuels/seatplan/pkg/errors"
	"github.com/matzehuels/seatplan/pkg/geometry"
)

// DragState is the state of a drag interaction: [Idle] or [Dragging].
type DragState interface {
	isDragState()
}

// Idle means no drag is in progress.
type Idle struct{}

// Dragging holds the entity being dragged, the offset from the pointer to
// the photo's top-left corner, and the last pointer position.
type Dragging struct {
	Entity  uuid.UUID
	Offset  geometry.Point
	Pointer geometry.Point
}

func (Idle) isDragState()     {}
func (Dragging) isDragState() {}

// DropOutcome classifies the result of a drop.
type DropOutcome int

const (
	// DropRejected means the pointer was too far from every slot.
	DropRejected DropOutcome = iota
	// DropMoved means the entity took an empty slot.
	DropMoved
	// DropSwapped means the entity exchanged slots with the occupant.
	DropSwapped
	// DropNoOp means the entity was dropped on its own slot, or no drag
	// was in progress.
	DropNoOp
)

func (o DropOutcome) String() string {
	switch o {
	case DropRejected:
		return "rejected"
	case DropMoved:
		return "moved"
	case DropSwapped:
		return "swapped"
	case DropNoOp:
		return "no-op"
	}
	return "unknown"
}

// DropResult describes what a drop did.
type DropResult struct {
	Outcome DropOutcome
	Entity  uuid.UUID
	From    int
	To      int
	// Other is the displaced entity of a swap.
	Other uuid.UUID
}

// snapMultiplier scales the canonical seat size into a snap radius.
const snapMultiplier = 1.2

// minSnap is the smallest snap radius in display units.
const minSnap = 100

// SnapThreshold is the largest pointer-to-center distance at which a drop
// lands on a slot.
func SnapThreshold(seatSize int, zoom float64) float64 {
	return math.Max(minSnap, math.Floor(float64(seatSize)*snapMultiplier*zoom))
}

// State returns the current drag state.
func (b *Board) State() DragState {
	if b.drag == nil {
		return Idle{}
	}
	return b.drag
}

// BeginDrag starts dragging entity id from pointer p. The offset is taken
// from the entity's slot in g, so the photo keeps its grip point while it
// moves. Starting a new drag discards any previous one.
func (b *Board) BeginDrag(id uuid.UUID, p geometry.Point, g geometry.Geometry) error {
	e, ok := b.Find(id)
	if !ok {
		b.drag = Idle{}
		return errors.New(errors.ErrCodeEntityNotFound, "no entity with id %s", id)
	}
	var off geometry.Point
	if s, ok := g.Slot(e.Slot); ok {
		off = geometry.Point{X: p.X - s.X, Y: p.Y - s.Y}
	}
	b.drag = Dragging{Entity: id, Offset: off, Pointer: p}
	return nil
}

// DragPosition records a pointer move and returns where the dragged
// photo's top-left corner should be drawn. ok is false when idle.
func (b *Board) DragPosition(p geometry.Point) (topLeft geometry.Point, ok bool) {
	d, ok := b.drag.(Dragging)
	if !ok {
		return geometry.Point{}, false
	}
	d.Pointer = p
	b.drag = d
	return geometry.Point{X: p.X - d.Offset.X, Y: p.Y - d.Offset.Y}, true
}

// CancelDrag abandons the drag without changing placement.
func (b *Board) CancelDrag() {
	b.drag = Idle{}
}

// Drop ends the drag at pointer p. The nearest slot of g by center distance
// is the target; if it is farther than threshold the drop is rejected.
// An occupied target swaps the two entities, an empty one moves the
// dragged entity. The state is Idle afterwards in every case.
func (b *Board) Drop(p geometry.Point, g geometry.Geometry, threshold float64) DropResult {
	d, ok := b.drag.(Dragging)
	b.drag = Idle{}
	if !ok {
		return DropResult{Outcome: DropNoOp, From: Unplaced, To: Unplaced}
	}
	e, ok := b.Find(d.Entity)
	if !ok {
		return DropResult{Outcome: DropRejected, Entity: d.Entity, From: Unplaced, To: Unplaced}
	}

	res := DropResult{Entity: e.ID, From: e.Slot, To: e.Slot}
	target, dist, ok := g.Nearest(p)
	if !ok || dist > threshold || target >= b.slotCount {
		res.Outcome = DropRejected
		return res
	}
	res.To = target
	if target == e.Slot {
		res.Outcome = DropNoOp
		return res
	}

	if other, ok := b.Occupant(target); ok && other != e {
		other.Slot, e.Slot = e.Slot, target
		if !other.Placed(b.slotCount) {
			b.AutoAssign()
		}
		res.Outcome = DropSwapped
		res.Other = other.ID
		return res
	}
	e.Slot = target
	res.Outcome = DropMoved
	return res
}

// MoveSlot resolves a drag of the occupant of from onto the center of to,
// using g for positions. It is the keyboard and command-line equivalent of
// a mouse drag.
func (b *Board) MoveSlot(from, to int, g geometry.Geometry) (DropResult, error) {
	src, ok := g.Slot(from)
	if !ok {
		return DropResult{}, errors.New(errors.ErrCodeInvalidInput, "slot %d out of range [0, %d)", from, len(g.Slots))
	}
	dst, ok := g.Slot(to)
	if !ok {
		return DropResult{}, errors.New(errors.ErrCodeInvalidInput, "slot %d out of range [0, %d)", to, len(g.Slots))
	}
	e, ok := b.Occupant(from)
	if !ok {
		return DropResult{}, errors.New(errors.ErrCodeEntityNotFound, "slot %d is empty", from)
	}
	if err := b.BeginDrag(e.ID, src.Center(), g); err != nil {
		return DropResult{}, err
	}
	return b.Drop(dst.Center(), g, math.Inf(1)), nil
}
