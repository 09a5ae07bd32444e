package seating

import (
	"math/rand/v2"
	"slices"
	"strings"

	"github.com/google/uuid"

	"github.com/matzehuels/seatplan/pkg/errors"
	"github.com/matzehuels/seatplan/pkg/geometry"
)

// Board owns the entity list and its slot assignment.
// It is not safe for concurrent use.
type Board struct {
	entities  []*Entity
	slotCount int
	drag      DragState
}

// NewBoard returns an empty board with slotCount seats.
func NewBoard(slotCount int) *Board {
	return &Board{slotCount: max(0, slotCount), drag: Idle{}}
}

// SlotCount returns the number of seats.
func (b *Board) SlotCount() int { return b.slotCount }

// Len returns the number of entities.
func (b *Board) Len() int { return len(b.entities) }

// Entities returns the entities in list order. The slice is a copy; the
// entities are shared.
func (b *Board) Entities() []*Entity {
	return slices.Clone(b.entities)
}

// Add appends entities and auto-assigns them.
func (b *Board) Add(es ...*Entity) {
	for _, e := range es {
		if e == nil {
			continue
		}
		if e.ID == uuid.Nil {
			e.ID = uuid.New()
		}
		b.entities = append(b.entities, e)
	}
	b.AutoAssign()
}

// Replace discards all entities and installs es, keeping their saved slots
// where valid.
func (b *Board) Replace(es []*Entity) {
	b.entities = nil
	b.drag = Idle{}
	b.Add(es...)
}

// Find returns the entity with the given ID.
func (b *Board) Find(id uuid.UUID) (*Entity, bool) {
	for _, e := range b.entities {
		if e.ID == id {
			return e, true
		}
	}
	return nil, false
}

// FindByName returns the first entity with the given name.
func (b *Board) FindByName(name string) (*Entity, bool) {
	for _, e := range b.entities {
		if e.Name == name {
			return e, true
		}
	}
	return nil, false
}

// Occupant returns the entity in slot, if any.
func (b *Board) Occupant(slot int) (*Entity, bool) {
	if slot < 0 || slot >= b.slotCount {
		return nil, false
	}
	for _, e := range b.entities {
		if e.Slot == slot {
			return e, true
		}
	}
	return nil, false
}

// Unplaced returns entities without a valid slot.
func (b *Board) Unplaced() []*Entity {
	var out []*Entity
	for _, e := range b.entities {
		if !e.Placed(b.slotCount) {
			out = append(out, e)
		}
	}
	return out
}

// EntityAt returns the placed entity whose slot in g contains p.
func (b *Board) EntityAt(p geometry.Point, g geometry.Geometry) (*Entity, bool) {
	idx := g.SlotAt(p)
	if idx < 0 {
		return nil, false
	}
	return b.Occupant(idx)
}

// AutoAssign gives every entity without a valid slot the smallest free
// slot, in list order. An entity whose slot is negative, out of range, or
// already claimed by an earlier entity counts as unplaced. When no slot is
// free the entity stays Unplaced.
func (b *Board) AutoAssign() {
	used := make([]bool, b.slotCount)
	var pending []*Entity
	for _, e := range b.entities {
		if e.Placed(b.slotCount) && !used[e.Slot] {
			used[e.Slot] = true
			continue
		}
		pending = append(pending, e)
	}

	next := 0
	for _, e := range pending {
		for next < b.slotCount && used[next] {
			next++
		}
		if next >= b.slotCount {
			e.Slot = Unplaced
			continue
		}
		e.Slot = next
		used[next] = true
	}
}

// Shuffle permutes the entity list uniformly with rng and seats entity i in
// slot i. Entities past the slot count become Unplaced.
func (b *Board) Shuffle(rng *rand.Rand) {
	rng.Shuffle(len(b.entities), func(i, j int) {
		b.entities[i], b.entities[j] = b.entities[j], b.entities[i]
	})
	for i, e := range b.entities {
		if i < b.slotCount {
			e.Slot = i
		} else {
			e.Slot = Unplaced
		}
	}
}

// Reflow sets a new slot count after a layout change. Entities whose slot
// is now out of range are unplaced and re-assigned; the rest keep their
// seats.
func (b *Board) Reflow(slotCount int) {
	b.slotCount = max(0, slotCount)
	b.drag = Idle{}
	b.AutoAssign()
}

// Remove deletes the entity with the given ID and re-assigns.
func (b *Board) Remove(id uuid.UUID) error {
	i := slices.IndexFunc(b.entities, func(e *Entity) bool { return e.ID == id })
	if i < 0 {
		return errors.New(errors.ErrCodeEntityNotFound, "no entity with id %s", id)
	}
	if d, ok := b.drag.(Dragging); ok && d.Entity == id {
		b.drag = Idle{}
	}
	b.entities = slices.Delete(b.entities, i, i+1)
	b.AutoAssign()
	return nil
}

// Rename changes an entity's name and cached label size. A blank name keeps
// the old one.
func (b *Board) Rename(id uuid.UUID, name string, fontSize int) error {
	e, ok := b.Find(id)
	if !ok {
		return errors.New(errors.ErrCodeEntityNotFound, "no entity with id %s", id)
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil
	}
	if err := errors.ValidateEntityName(name); err != nil {
		return err
	}
	e.Name = name
	e.FontSize = fontSize
	return nil
}

// Reset removes every entity. The slot count is kept.
func (b *Board) Reset() {
	b.entities = nil
	b.drag = Idle{}
}

// Assignment returns the slot → entity mapping of placed entities.
func (b *Board) Assignment() map[int]*Entity {
	m := make(map[int]*Entity, len(b.entities))
	for _, e := range b.entities {
		if e.Placed(b.slotCount) {
			m[e.Slot] = e
		}
	}
	return m
}
