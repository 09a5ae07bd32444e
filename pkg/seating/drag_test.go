package seating

import (
	"testing"

	"github.com/matzehuels/seatplan/pkg/geometry"
	"github.com/matzehuels/seatplan/pkg/layout"
)

func classroom(t *testing.T) geometry.Geometry {
	t.Helper()
	topo, err := layout.Resolve(layout.Regular{Rows: 4, Banks: 3, Seats: 2})
	if err != nil {
		t.Fatal(err)
	}
	return geometry.Compute(topo, geometry.A4, 1)
}

// boardWith places entities at the given slots.
func boardWith(t *testing.T, g geometry.Geometry, at ...int) (*Board, []*Entity) {
	t.Helper()
	b := NewBoard(len(g.Slots))
	es := newEntities(len(at))
	for i, s := range at {
		es[i].Slot = s
	}
	b.Add(es...)
	return b, es
}

func TestSnapThreshold(t *testing.T) {
	tests := []struct {
		seat int
		zoom float64
		want float64
	}{
		{69, 1, 100},
		{130, 1, 156},
		{130, 0.5, 100},
		{100, 2, 240},
	}
	for _, tt := range tests {
		if got := SnapThreshold(tt.seat, tt.zoom); got != tt.want {
			t.Errorf("SnapThreshold(%d, %v) = %v, want %v", tt.seat, tt.zoom, got, tt.want)
		}
	}
}

func TestDropBeyondThresholdIsRejected(t *testing.T) {
	g := classroom(t)
	b, es := boardWith(t, g, 5)
	a := es[0]

	start := g.Slots[5].Center()
	if err := b.BeginDrag(a.ID, start, g); err != nil {
		t.Fatal(err)
	}
	res := b.Drop(geometry.Point{X: 5000, Y: 5000}, g, SnapThreshold(g.SeatSize, 1))

	if res.Outcome != DropRejected {
		t.Errorf("Outcome = %v, want rejected", res.Outcome)
	}
	if a.Slot != 5 {
		t.Errorf("slot = %d, want 5", a.Slot)
	}
	if _, idle := b.State().(Idle); !idle {
		t.Errorf("State() = %T after drop, want Idle", b.State())
	}
}

func TestDropSwaps(t *testing.T) {
	g := classroom(t)
	b, es := boardWith(t, g, 2, 7, 0, 11)
	a, other := es[0], es[1]
	bystanders := map[*Entity]int{es[2]: es[2].Slot, es[3]: es[3].Slot}

	if err := b.BeginDrag(a.ID, g.Slots[2].Center(), g); err != nil {
		t.Fatal(err)
	}
	target := g.Slots[7].Center()
	res := b.Drop(geometry.Point{X: target.X + 10, Y: target.Y - 10}, g, SnapThreshold(g.SeatSize, 1))

	if res.Outcome != DropSwapped || res.Other != other.ID {
		t.Errorf("result = %+v, want swap with %s", res, other.ID)
	}
	if a.Slot != 7 || other.Slot != 2 {
		t.Errorf("slots = (%d, %d), want (7, 2)", a.Slot, other.Slot)
	}
	for e, s := range bystanders {
		if e.Slot != s {
			t.Errorf("%s moved from %d to %d", e.Name, s, e.Slot)
		}
	}
	assertInjective(t, b)
}

func TestDropMovesToEmptySlot(t *testing.T) {
	g := classroom(t)
	b, es := boardWith(t, g, 3)
	a := es[0]

	_ = b.BeginDrag(a.ID, g.Slots[3].Center(), g)
	res := b.Drop(g.Slots[20].Center(), g, SnapThreshold(g.SeatSize, 1))
	if res.Outcome != DropMoved || res.From != 3 || res.To != 20 {
		t.Errorf("result = %+v, want moved 3 -> 20", res)
	}
	if a.Slot != 20 {
		t.Errorf("slot = %d, want 20", a.Slot)
	}
	if _, ok := b.Occupant(3); ok {
		t.Error("old slot still occupied")
	}
}

func TestDropOnOwnSlot(t *testing.T) {
	g := classroom(t)
	b, es := boardWith(t, g, 4, 5)
	_ = b.BeginDrag(es[0].ID, g.Slots[4].Center(), g)
	res := b.Drop(g.Slots[4].Center(), g, SnapThreshold(g.SeatSize, 1))
	if res.Outcome != DropNoOp {
		t.Errorf("Outcome = %v, want no-op", res.Outcome)
	}
	if es[0].Slot != 4 || es[1].Slot != 5 {
		t.Errorf("slots = %v", slots(es))
	}
}

func TestDropWhileIdle(t *testing.T) {
	g := classroom(t)
	b, es := boardWith(t, g, 1)
	res := b.Drop(g.Slots[9].Center(), g, 1e9)
	if res.Outcome != DropNoOp {
		t.Errorf("Outcome = %v, want no-op", res.Outcome)
	}
	if es[0].Slot != 1 {
		t.Errorf("slot = %d, want 1", es[0].Slot)
	}
}

func TestDragPosition(t *testing.T) {
	g := classroom(t)
	b, es := boardWith(t, g, 0)
	s := g.Slots[0]

	if _, ok := b.DragPosition(geometry.Point{}); ok {
		t.Error("DragPosition() ok while idle")
	}
	grip := geometry.Point{X: s.X + 10, Y: s.Y + 20}
	if err := b.BeginDrag(es[0].ID, grip, g); err != nil {
		t.Fatal(err)
	}
	got, ok := b.DragPosition(geometry.Point{X: 300, Y: 400})
	if !ok || got != (geometry.Point{X: 290, Y: 380}) {
		t.Errorf("DragPosition() = %v, %v, want (290, 380)", got, ok)
	}
	d, ok := b.State().(Dragging)
	if !ok || d.Entity != es[0].ID || d.Offset != (geometry.Point{X: 10, Y: 20}) {
		t.Errorf("State() = %+v", b.State())
	}

	b.CancelDrag()
	if _, idle := b.State().(Idle); !idle {
		t.Error("CancelDrag() did not return to Idle")
	}
	if es[0].Slot != 0 {
		t.Errorf("CancelDrag() moved entity to %d", es[0].Slot)
	}
}

func TestMoveSlot(t *testing.T) {
	g := classroom(t)
	b, es := boardWith(t, g, 2, 7)

	res, err := b.MoveSlot(2, 7, g)
	if err != nil {
		t.Fatal(err)
	}
	if res.Outcome != DropSwapped || es[0].Slot != 7 || es[1].Slot != 2 {
		t.Errorf("MoveSlot(2, 7) = %+v, slots %v", res, slots(es))
	}
	if _, err := b.MoveSlot(10, 1, g); err == nil {
		t.Error("MoveSlot(empty) succeeded")
	}
	if _, err := b.MoveSlot(0, 99, g); err == nil {
		t.Error("MoveSlot(out of range) succeeded")
	}
}

func TestInjectiveAfterRandomDrags(t *testing.T) {
	g := classroom(t)
	b, _ := boardWith(t, g, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1)
	threshold := SnapThreshold(g.SeatSize, 1)
	for i := 0; i < 200; i++ {
		es := b.Entities()
		e := es[(i*7)%len(es)]
		target := g.Slots[(i*13)%len(g.Slots)].Center()
		if err := b.BeginDrag(e.ID, g.Slots[e.Slot].Center(), g); err != nil {
			t.Fatal(err)
		}
		b.Drop(target, g, threshold)
		assertInjective(t, b)
	}
}

func TestEntityAt(t *testing.T) {
	g := classroom(t)
	b, es := boardWith(t, g, 6)
	if e, ok := b.EntityAt(g.Slots[6].Center(), g); !ok || e != es[0] {
		t.Errorf("EntityAt(slot 6) = %v, %v", e, ok)
	}
	if _, ok := b.EntityAt(g.Slots[7].Center(), g); ok {
		t.Error("EntityAt(empty slot) found an entity")
	}
}
