package plan

import (
	"fmt"
	"image"
	"math/rand/v2"
	"path/filepath"
	"testing"

	"github.com/matzehuels/seatplan/pkg/errors"
	"github.com/matzehuels/seatplan/pkg/geometry"
	"github.com/matzehuels/seatplan/pkg/layout"
	"github.com/matzehuels/seatplan/pkg/seating"
	"github.com/matzehuels/seatplan/pkg/session"
)

func people(n int) []*seating.Entity {
	out := make([]*seating.Entity, n)
	for i := range out {
		out[i] = seating.NewEntity(fmt.Sprintf("P%d", i+1), image.NewNRGBA(image.Rect(0, 0, 8, 8)))
	}
	return out
}

func placed(p *Plan) int {
	return len(p.Board().Assignment())
}

func TestNewUsesFirstLayout(t *testing.T) {
	p := New(nil)
	if p.LayoutName() != p.Registry().Names()[0] {
		t.Errorf("LayoutName() = %q, want first preset", p.LayoutName())
	}
	if got := p.Base().SlotCount(); got != 30 {
		t.Errorf("slots = %d, want 30", got)
	}
	if p.Base().SlotCount() != p.Display().SlotCount() {
		t.Error("base and display slot counts differ")
	}
	if p.Board().SlotCount() != 30 {
		t.Errorf("board slots = %d, want 30", p.Board().SlotCount())
	}
}

func TestSelectLayoutUnknownKeepsCurrent(t *testing.T) {
	p := New(nil)
	before := p.LayoutName()
	err := p.SelectLayout("Gym")
	if !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("SelectLayout() error = %v, want NOT_FOUND", err)
	}
	if p.LayoutName() != before {
		t.Errorf("LayoutName() = %q, want %q", p.LayoutName(), before)
	}
}

func TestSetCustom(t *testing.T) {
	p := New(nil)
	p.Add(people(26)...)
	if placed(p) != 26 {
		t.Fatalf("placed = %d, want 26", placed(p))
	}

	if err := p.SetCustom(layout.Regular{Rows: 4, Banks: 3, Seats: 2}); err != nil {
		t.Fatalf("SetCustom() error: %v", err)
	}
	if p.LayoutName() != layout.CustomName {
		t.Errorf("LayoutName() = %q, want Custom", p.LayoutName())
	}
	if placed(p) != 24 {
		t.Errorf("placed after shrink = %d, want 24", placed(p))
	}
	if got := len(p.Board().Unplaced()); got != 2 {
		t.Errorf("unplaced = %d, want 2", got)
	}

	err := p.SetCustom(layout.Regular{Rows: 0, Banks: 3, Seats: 2})
	if !errors.Is(err, errors.ErrCodeInvalidLayout) {
		t.Fatalf("SetCustom(invalid) error = %v, want INVALID_LAYOUT", err)
	}
	if p.Base().SlotCount() != 24 {
		t.Errorf("slots after rejected edit = %d, want 24", p.Base().SlotCount())
	}
}

func TestZoomOnlyChangesDisplay(t *testing.T) {
	p := New(nil)
	base := p.Base()

	p.ZoomIn()
	if p.Zoom() != 1.1 {
		t.Errorf("Zoom() = %v, want 1.1", p.Zoom())
	}
	if p.Base().SeatSize != base.SeatSize {
		t.Errorf("base seat changed: %d -> %d", base.SeatSize, p.Base().SeatSize)
	}
	if p.Display().SeatSize <= base.SeatSize {
		t.Errorf("display seat %d should exceed base %d", p.Display().SeatSize, base.SeatSize)
	}

	for range 20 {
		p.ZoomOut()
	}
	if p.Zoom() != geometry.ZoomMin {
		t.Errorf("Zoom() = %v, want %v", p.Zoom(), geometry.ZoomMin)
	}
	p.ZoomReset()
	if p.Display().SeatSize != base.SeatSize {
		t.Errorf("display seat after reset = %d, want %d", p.Display().SeatSize, base.SeatSize)
	}
}

func TestRenameRefitsLabel(t *testing.T) {
	p := New(nil)
	es := people(1)
	p.Add(es...)
	if es[0].FontSize != geometry.FontMax {
		t.Errorf("FontSize = %d, want %d", es[0].FontSize, geometry.FontMax)
	}

	long := "Maximiliane Wilhelmina von Habsburg-Lothringen"
	if err := p.Rename(es[0].ID, long); err != nil {
		t.Fatalf("Rename() error: %v", err)
	}
	if es[0].Name != long {
		t.Errorf("Name = %q", es[0].Name)
	}
	if es[0].FontSize != geometry.FontMin {
		t.Errorf("FontSize = %d, want %d", es[0].FontSize, geometry.FontMin)
	}
}

func TestResolve(t *testing.T) {
	p := New(nil)
	es := people(3)
	p.Add(es...)
	named := seating.NewEntity("12", nil)
	p.Add(named)

	tests := []struct {
		ref  string
		want *seating.Entity
	}{
		{"1", es[0]},
		{"3", es[2]},
		{"P2", es[1]},
		{"12", named},
	}
	for _, tt := range tests {
		got, err := p.Resolve(tt.ref)
		if err != nil {
			t.Errorf("Resolve(%q) error: %v", tt.ref, err)
			continue
		}
		if got != tt.want {
			t.Errorf("Resolve(%q) = %q, want %q", tt.ref, got.Name, tt.want.Name)
		}
	}
	for _, ref := range []string{"9", "nobody"} {
		if _, err := p.Resolve(ref); !errors.Is(err, errors.ErrCodeEntityNotFound) {
			t.Errorf("Resolve(%q) error = %v, want ENTITY_NOT_FOUND", ref, err)
		}
	}
}

func TestMoveAndShuffleStayInjective(t *testing.T) {
	p := New(nil)
	p.Add(people(10)...)

	res, err := p.Move(0, 20)
	if err != nil {
		t.Fatalf("Move() error: %v", err)
	}
	if res.Outcome != seating.DropMoved {
		t.Errorf("Move() outcome = %s, want moved", res.Outcome)
	}
	res, err = p.Move(20, 1)
	if err != nil {
		t.Fatalf("Move() error: %v", err)
	}
	if res.Outcome != seating.DropSwapped {
		t.Errorf("Move() outcome = %s, want swapped", res.Outcome)
	}

	p.Shuffle(rand.New(rand.NewPCG(7, 7^0xdeadbeef)))
	if placed(p) != 10 {
		t.Errorf("placed = %d, want 10", placed(p))
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	p := New(nil)
	p.Class, p.Room = "3A", "T121"
	if err := p.SetCustom(layout.Irregular{Pattern: [][]int{{2}, {2, 2}}}); err != nil {
		t.Fatal(err)
	}
	es := people(4)
	p.Add(es...)
	if _, err := p.Move(0, 5); err != nil {
		t.Fatal(err)
	}

	q, warnings := FromSession(layout.NewRegistry(), p.Snapshot())
	if len(warnings) != 0 {
		t.Errorf("FromSession() warnings = %v, want none", warnings)
	}
	if q.Class != "3A" || q.Room != "T121" || q.LayoutName() != layout.CustomName {
		t.Errorf("header = %q/%q/%q", q.Class, q.Room, q.LayoutName())
	}
	if q.Base().SlotCount() != 6 {
		t.Errorf("slots = %d, want 6", q.Base().SlotCount())
	}
	for i, e := range q.Entities() {
		if e.Slot != es[i].Slot {
			t.Errorf("entity %d slot = %d, want %d", i, e.Slot, es[i].Slot)
		}
	}
}

func TestFromSessionUnknownLayout(t *testing.T) {
	p := New(nil)
	s := p.Snapshot()
	s.Layout = "Removed layout"
	q, warnings := FromSession(layout.NewRegistry(), s)
	if q.LayoutName() != q.Registry().Names()[0] {
		t.Errorf("LayoutName() = %q, want first layout", q.LayoutName())
	}
	if len(warnings) != 1 || !errors.Is(warnings[0], errors.ErrCodeNotFound) {
		t.Errorf("warnings = %v, want one NOT_FOUND", warnings)
	}
}

func TestFromSessionInvalidCustomLayout(t *testing.T) {
	s := &session.Session{
		Class:    "3A",
		Layout:   layout.CustomName,
		Custom:   layout.Regular{Rows: 0, Banks: 3, Seats: 2},
		Entities: people(2),
	}
	q, warnings := FromSession(layout.NewRegistry(), s)
	if len(warnings) != 1 || !errors.Is(warnings[0], errors.ErrCodeInvalidLayout) {
		t.Fatalf("warnings = %v, want one INVALID_LAYOUT", warnings)
	}
	if q.LayoutName() != layout.CustomName {
		t.Errorf("LayoutName() = %q, want %q", q.LayoutName(), layout.CustomName)
	}
	if got, want := q.Base().SlotCount(), layout.DefaultCustom().Rows*layout.DefaultCustom().Banks*layout.DefaultCustom().Seats; got != want {
		t.Errorf("slots = %d, want the built-in Custom's %d", got, want)
	}
	if placed(q) != 2 {
		t.Errorf("placed = %d, want 2", placed(q))
	}
}

func TestFromSessionKeepsLoadWarnings(t *testing.T) {
	s := New(nil).Snapshot()
	s.Warnings = []error{errors.New(errors.ErrCodeInvalidLayout, "bad envelope")}
	if _, warnings := FromSession(layout.NewRegistry(), s); len(warnings) != 1 {
		t.Errorf("warnings = %v, want the session's warning", warnings)
	}
}

func TestDocumentAndExportName(t *testing.T) {
	p := New(nil)
	p.Class, p.Room = "3A", "T121"
	p.Add(people(2)...)
	doc := p.Document()
	if doc.Title != "Class 3A — Room T121" {
		t.Errorf("Title = %q", doc.Title)
	}
	if doc.SeatSize != p.Base().SeatSize {
		t.Errorf("SeatSize = %d, want %d", doc.SeatSize, p.Base().SeatSize)
	}
	if got := p.ExportName("pdf"); got != "3A_T121.pdf" {
		t.Errorf("ExportName() = %q", got)
	}

	p.Class, p.Room = "../x", "r/2"
	if got := p.ExportName("pdf"); got != "..x_r2.pdf" || filepath.Base(got) != got {
		t.Errorf("ExportName() = %q, want ..x_r2.pdf with no directory part", got)
	}
}
