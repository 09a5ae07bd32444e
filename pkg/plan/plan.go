// Package plan ties layouts, geometry and seating into one editable seat
// plan.
//
// A [Plan] owns the layout registry, the selected layout, the zoom level,
// both geometries (canonical for export, display for interaction) and the
// [seating.Board]. Every layout change recomputes both geometries and
// reflows the board; zoom changes recompute the display geometry only.
//
//	p := plan.New(layout.NewRegistry())
//	p.Class, p.Room = "3A", "T121"
//	if err := p.SelectLayout("Lab T117 — 4 rows × 2 banks × 4 seats"); err != nil {
//	    return err
//	}
//	p.Add(entities...)
//	doc := p.Document()
package plan

import (
	"fmt"
	"math/rand/v2"
	"strconv"

	"github.com/google/uuid"

	"github.com/matzehuels/seatplan/pkg/errors"
	"github.com/matzehuels/seatplan/pkg/fonts"
	"github.com/matzehuels/seatplan/pkg/geometry"
	"github.com/matzehuels/seatplan/pkg/layout"
	"github.com/matzehuels/seatplan/pkg/render"
	"github.com/matzehuels/seatplan/pkg/seating"
	"github.com/matzehuels/seatplan/pkg/session"
)

// Default header values.
const (
	DefaultClass = "class"
	DefaultRoom  = "room"
)

// Plan is the application context. It is not safe for concurrent use.
type Plan struct {
	Class string
	Room  string

	registry   *layout.Registry
	layoutName string
	config     layout.Config
	topo       layout.Topology
	zoom       float64

	base, display geometry.Geometry
	board         *seating.Board
}

// New returns an empty plan using the first layout of reg. A nil registry
// gets the built-in presets.
func New(reg *layout.Registry) *Plan {
	if reg == nil {
		reg = layout.NewRegistry()
	}
	p := &Plan{
		Class:    DefaultClass,
		Room:     DefaultRoom,
		registry: reg,
		zoom:     geometry.ZoomDefault,
		board:    seating.NewBoard(0),
	}
	name := reg.Names()[0]
	cfg, _ := reg.Get(name)
	if err := p.apply(name, cfg); err != nil {
		// Registry entries are validated on insertion.
		panic(fmt.Sprintf("plan: invalid registry layout %q: %v", name, err))
	}
	return p
}

// Registry returns the plan's layout registry.
func (p *Plan) Registry() *layout.Registry { return p.registry }

// LayoutName returns the name of the selected layout.
func (p *Plan) LayoutName() string { return p.layoutName }

// Layout returns the selected layout configuration.
func (p *Plan) Layout() layout.Config { return p.config }

// Topology returns the resolved selected layout.
func (p *Plan) Topology() layout.Topology { return p.topo }

// Base returns the canonical (scale 1) geometry used for export.
func (p *Plan) Base() geometry.Geometry { return p.base }

// Display returns the zoomed geometry used for interaction.
func (p *Plan) Display() geometry.Geometry { return p.display }

// Zoom returns the display zoom factor.
func (p *Plan) Zoom() float64 { return p.zoom }

// Board returns the seating board.
func (p *Plan) Board() *seating.Board { return p.board }

// Entities returns the board's entities in list order.
func (p *Plan) Entities() []*seating.Entity { return p.board.Entities() }

// SelectLayout switches to the named layout. On error the current layout is
// kept.
func (p *Plan) SelectLayout(name string) error {
	cfg, err := p.registry.Lookup(name)
	if err != nil {
		return err
	}
	return p.apply(name, cfg)
}

// SetCustom replaces the Custom layout and selects it. On error both the
// Custom entry and the current selection are kept.
func (p *Plan) SetCustom(cfg layout.Config) error {
	if err := p.registry.SetCustom(cfg); err != nil {
		return err
	}
	return p.apply(layout.CustomName, p.registry.Custom())
}

func (p *Plan) apply(name string, cfg layout.Config) error {
	topo, err := layout.Resolve(cfg)
	if err != nil {
		return err
	}
	p.layoutName, p.config, p.topo = name, cfg, topo
	p.regeometry()
	return nil
}

// regeometry recomputes both geometries and reflows the board.
func (p *Plan) regeometry() {
	page := geometry.PageFor(p.config.Orientation())
	p.base, p.display = geometry.ComputePair(p.topo, page, p.zoom)
	p.board.Reflow(p.base.SlotCount())
}

func (p *Plan) rezoom(z float64) {
	p.zoom = geometry.ClampZoom(z)
	p.display = geometry.Compute(p.topo, p.base.Page, p.zoom)
}

// ZoomIn enlarges the display by one step.
func (p *Plan) ZoomIn() { p.rezoom(geometry.ZoomIn(p.zoom)) }

// ZoomOut shrinks the display by one step.
func (p *Plan) ZoomOut() { p.rezoom(geometry.ZoomOut(p.zoom)) }

// ZoomReset restores the default zoom.
func (p *Plan) ZoomReset() { p.rezoom(geometry.ZoomDefault) }

// SetZoom sets the zoom factor, clamped to [ZoomMin, ZoomMax].
func (p *Plan) SetZoom(z float64) { p.rezoom(z) }

// labelSize fits name to the current display seat.
func (p *Plan) labelSize(name string) int {
	return fonts.FitSize(name, fonts.LabelWidth(float64(p.base.SeatSize)*p.zoom))
}

// Add puts entities on the board, fits their labels and auto-assigns.
func (p *Plan) Add(es ...*seating.Entity) {
	for _, e := range es {
		if e != nil {
			e.FontSize = p.labelSize(e.Name)
		}
	}
	p.board.Add(es...)
}

// Replace swaps all entities for es, keeping their saved slots and label
// sizes where valid.
func (p *Plan) Replace(es []*seating.Entity) {
	p.board.Replace(es)
}

// Rename renames an entity and refits its label. A blank name is ignored.
func (p *Plan) Rename(id uuid.UUID, name string) error {
	return p.board.Rename(id, name, p.labelSize(name))
}

// Remove deletes an entity.
func (p *Plan) Remove(id uuid.UUID) error { return p.board.Remove(id) }

// Reset removes every entity; the layout is kept.
func (p *Plan) Reset() { p.board.Reset() }

// Shuffle randomly reseats everyone.
func (p *Plan) Shuffle(rng *rand.Rand) { p.board.Shuffle(rng) }

// Threshold returns the snap distance for drops on the display geometry.
func (p *Plan) Threshold() float64 {
	return seating.SnapThreshold(p.base.SeatSize, p.zoom)
}

// Drop ends the current drag at display point pt.
func (p *Plan) Drop(pt geometry.Point) seating.DropResult {
	return p.board.Drop(pt, p.display, p.Threshold())
}

// Move drags the occupant of slot from onto slot to.
func (p *Plan) Move(from, to int) (seating.DropResult, error) {
	return p.board.MoveSlot(from, to, p.display)
}

// Resolve finds an entity by slot number (one based, as shown to users) or
// by exact name. A number that names an empty seat is also tried as a name.
func (p *Plan) Resolve(ref string) (*seating.Entity, error) {
	n, err := strconv.Atoi(ref)
	if err == nil {
		if e, ok := p.board.Occupant(n - 1); ok {
			return e, nil
		}
	}
	if e, ok := p.board.FindByName(ref); ok {
		return e, nil
	}
	if err == nil {
		return nil, errors.New(errors.ErrCodeEntityNotFound, "seat %d is empty", n)
	}
	return nil, errors.New(errors.ErrCodeEntityNotFound, "no student named %q", ref)
}

// Title returns the page title.
func (p *Plan) Title() string { return render.Title(p.Class, p.Room) }

// Document projects the plan for export.
func (p *Plan) Document(opts ...render.Option) render.Document {
	opts = append([]render.Option{render.WithTitle(p.Class, p.Room)}, opts...)
	return render.Project(p.base, p.board.Entities(), opts...)
}

// ExportName returns the default export file name, "{class}_{room}.{ext}",
// with class and room reduced to filename-safe characters.
func (p *Plan) ExportName(ext string) string {
	return fmt.Sprintf("%s_%s.%s", session.SanitizeFilename(p.Class), session.SanitizeFilename(p.Room), ext)
}
