// Package seating assigns entities to seat slots.
//
// A [Board] owns an ordered list of [Entity] values and the current slot
// count. List order is independent of placement: an entity's Slot field is
// the only link between it and a seat. Every mutation leaves the
// slot → entity mapping injective.
//
// Placement changes in three ways:
//
//   - [Board.AutoAssign] places unplaced entities into the smallest free
//     slots, in list order, without touching valid placements.
//   - [Board.Shuffle] permutes the list and seats entities 0..N-1 in the new
//     order; entities beyond the slot count become unplaced.
//   - Drag and drop, a two-state machine ([Idle] and [Dragging]) driven by
//     [Board.BeginDrag], [Board.DragPosition] and [Board.Drop]. A drop snaps
//     to the nearest slot center within a threshold and either moves the
//     entity or swaps it with the slot's occupant.
package seating
