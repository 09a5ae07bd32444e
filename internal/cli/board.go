package cli

import (
	"fmt"
	"math"
	"math/rand/v2"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/seatplan/pkg/errors"
	"github.com/matzehuels/seatplan/pkg/geometry"
	"github.com/matzehuels/seatplan/pkg/plan"
	"github.com/matzehuels/seatplan/pkg/seating"
)

// boardCommand creates the interactive board command.
func (c *CLI) boardCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "board <session.json>",
		Short: "Rearrange seats interactively",
		Long: `Open the seating chart in an interactive terminal board.

Drag students with the mouse, or move the cursor with the arrow keys and
press space to pick a student and space again to drop. Dropping on a taken
seat swaps the two students.

Keys:
  ←↑→↓ / hjkl  move cursor        space, enter  pick / drop
  s            shuffle            x             remove student
  + - 0        zoom in, out, reset
  w            save               q             quit`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			path := args[0]

			r, err := c.newRunner()
			if err != nil {
				return err
			}
			defer r.Close()

			p, err := c.openPlan(ctx, r, path)
			if err != nil {
				return err
			}

			m := newBoardModel(p, func() error { return r.Save(ctx, p, path) })
			prog := tea.NewProgram(m,
				tea.WithContext(ctx),
				tea.WithAltScreen(),
				tea.WithMouseCellMotion(),
			)
			final, err := prog.Run()
			if err != nil {
				return err
			}

			if bm, ok := final.(*BoardModel); ok && bm.dirty {
				printWarning("Quit without saving %s", path)
			} else {
				printSuccess("Closed %s", path)
			}
			return nil
		},
	}
}

// =============================================================================
// BoardModel - Interactive seat arrangement
// =============================================================================

// boardChrome is the number of terminal lines outside the seat canvas.
const boardChrome = 3

// BoardModel is the bubbletea model of the interactive board.
type BoardModel struct {
	plan *plan.Plan
	save func() error
	rng  *rand.Rand

	width, height int

	// cursor is the keyboard slot; picked is the slot lifted with space.
	cursor int
	picked int
	// ghost is the top-left of a mouse-dragged photo in display points.
	ghost *geometry.Point

	status   string
	dirty    bool
	confirmQ bool
}

func newBoardModel(p *plan.Plan, save func() error) *BoardModel {
	seed := uint64(time.Now().UnixNano())
	return &BoardModel{
		plan:   p,
		save:   save,
		rng:    newRand(seed),
		width:  80,
		height: 24,
		picked: seating.Unplaced,
	}
}

func (m *BoardModel) Init() tea.Cmd {
	return nil
}

func (m *BoardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		m.handleMouse(msg)
	}
	return m, nil
}

func (m *BoardModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if msg.Type == tea.KeySpace {
		key = " "
	}
	if key != "q" {
		m.confirmQ = false
	}
	switch key {
	case "ctrl+c":
		return m, tea.Quit
	case "q":
		if m.dirty && !m.confirmQ {
			m.confirmQ = true
			m.status = "Unsaved changes: press q again to quit, w to save"
			return m, nil
		}
		return m, tea.Quit
	case "left", "h":
		m.moveCursor(-1)
	case "right", "l":
		m.moveCursor(1)
	case "up", "k":
		m.moveCursorRow(-1)
	case "down", "j":
		m.moveCursorRow(1)
	case " ", "enter":
		m.pickOrDrop()
	case "esc":
		m.picked = seating.Unplaced
		m.ghost = nil
		m.plan.Board().CancelDrag()
		m.status = ""
	case "s":
		m.plan.Shuffle(m.rng)
		m.picked = seating.Unplaced
		m.dirty = true
		m.status = fmt.Sprintf("Shuffled %d students", m.plan.Board().Len())
	case "x", "delete":
		m.removeAtCursor()
	case "+", "=":
		m.plan.ZoomIn()
		m.status = m.zoomStatus()
	case "-":
		m.plan.ZoomOut()
		m.status = m.zoomStatus()
	case "0":
		m.plan.ZoomReset()
		m.status = m.zoomStatus()
	case "w", "ctrl+s":
		if err := m.save(); err != nil {
			m.status = "Save failed: " + errors.UserMessage(err)
			break
		}
		m.dirty = false
		m.status = "Saved"
	}
	return m, nil
}

func (m *BoardModel) zoomStatus() string {
	return fmt.Sprintf("Zoom %.0f%%", m.plan.Zoom()*100)
}

func (m *BoardModel) moveCursor(delta int) {
	n := m.plan.Display().SlotCount()
	if n == 0 {
		return
	}
	m.cursor = min(max(m.cursor+delta, 0), n-1)
}

// moveCursorRow moves to the slot in the adjacent row whose center is
// horizontally closest to the current one.
func (m *BoardModel) moveCursorRow(delta int) {
	g := m.plan.Display()
	cur, ok := g.Slot(m.cursor)
	if !ok {
		return
	}
	best, bestDist := -1, math.Inf(1)
	for _, s := range g.Slots {
		if s.Row != cur.Row+delta {
			continue
		}
		if d := math.Abs(s.CenterX() - cur.CenterX()); d < bestDist {
			best, bestDist = s.Index, d
		}
	}
	if best >= 0 {
		m.cursor = best
	}
}

func (m *BoardModel) pickOrDrop() {
	b := m.plan.Board()
	if m.picked == seating.Unplaced {
		e, ok := b.Occupant(m.cursor)
		if !ok {
			m.status = fmt.Sprintf("Seat %d is empty", m.cursor+1)
			return
		}
		m.picked = m.cursor
		m.status = fmt.Sprintf("Picked %s: move to a seat and press space", e.Name)
		return
	}
	from := m.picked
	m.picked = seating.Unplaced
	res, err := m.plan.Move(from, m.cursor)
	if err != nil {
		m.status = errors.UserMessage(err)
		return
	}
	m.applyResult(res)
}

func (m *BoardModel) removeAtCursor() {
	e, ok := m.plan.Board().Occupant(m.cursor)
	if !ok {
		m.status = fmt.Sprintf("Seat %d is empty", m.cursor+1)
		return
	}
	if err := m.plan.Remove(e.ID); err != nil {
		m.status = errors.UserMessage(err)
		return
	}
	m.picked = seating.Unplaced
	m.dirty = true
	m.status = "Removed " + e.Name
}

func (m *BoardModel) applyResult(res seating.DropResult) {
	b := m.plan.Board()
	name := "?"
	if e, ok := b.Find(res.Entity); ok {
		name = e.Name
	}
	switch res.Outcome {
	case seating.DropMoved:
		m.dirty = true
		m.cursor = res.To
		m.status = fmt.Sprintf("Moved %s to seat %d", name, res.To+1)
	case seating.DropSwapped:
		m.dirty = true
		m.cursor = res.To
		other := "?"
		if e, ok := b.Find(res.Other); ok {
			other = e.Name
		}
		m.status = fmt.Sprintf("Swapped %s and %s", name, other)
	case seating.DropRejected:
		m.status = "Too far from any seat"
	default:
		m.status = ""
	}
}

func (m *BoardModel) handleMouse(msg tea.MouseMsg) {
	pt, inside := m.point(msg.X, msg.Y)
	b := m.plan.Board()
	switch msg.Action {
	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			m.plan.ZoomIn()
			m.status = m.zoomStatus()
		case tea.MouseButtonWheelDown:
			m.plan.ZoomOut()
			m.status = m.zoomStatus()
		case tea.MouseButtonLeft:
			if !inside {
				return
			}
			e, ok := b.EntityAt(pt, m.plan.Display())
			if !ok {
				return
			}
			m.picked = seating.Unplaced
			m.cursor = e.Slot
			if err := b.BeginDrag(e.ID, pt, m.plan.Display()); err != nil {
				return
			}
			if tl, ok := b.DragPosition(pt); ok {
				m.ghost = &tl
			}
			m.status = "Dragging " + e.Name
		}
	case tea.MouseActionMotion:
		if tl, ok := b.DragPosition(pt); ok {
			m.ghost = &tl
		}
	case tea.MouseActionRelease:
		if _, dragging := b.State().(seating.Dragging); !dragging {
			return
		}
		m.ghost = nil
		m.applyResult(m.plan.Drop(pt))
	}
}

// =============================================================================
// Coordinates
// =============================================================================

// canvasSize returns the seat canvas size in cells.
func (m *BoardModel) canvasSize() (w, h int) {
	return max(m.width, 1), max(m.height-boardChrome, 1)
}

// cellSize returns the page points covered by one terminal cell. The page
// at zoom 1 fills the canvas; larger zooms are clipped.
func (m *BoardModel) cellSize() (sx, sy float64) {
	w, h := m.canvasSize()
	page := m.plan.Base().Page
	return page.W / float64(w), page.H / float64(h)
}

// point converts a terminal cell to display coordinates. inside is false
// for cells outside the canvas.
func (m *BoardModel) point(x, y int) (geometry.Point, bool) {
	sx, sy := m.cellSize()
	w, h := m.canvasSize()
	cy := y - 1
	pt := geometry.Point{X: (float64(x) + 0.5) * sx, Y: (float64(cy) + 0.5) * sy}
	return pt, x >= 0 && x < w && cy >= 0 && cy < h
}

// cell converts display coordinates to a terminal cell of the canvas.
func (m *BoardModel) cell(x, y float64) (col, row int) {
	sx, sy := m.cellSize()
	return int(math.Floor(x / sx)), int(math.Floor(y / sy))
}

// =============================================================================
// Rendering
// =============================================================================

type cellStyle uint8

const (
	cellPlain cellStyle = iota
	cellBank
	cellSeat
	cellEmpty
	cellCursor
	cellPicked
	cellGhost
)

var boardStyles = map[cellStyle]lipgloss.Style{
	cellPlain:  lipgloss.NewStyle(),
	cellBank:   lipgloss.NewStyle().Foreground(colorDim),
	cellSeat:   lipgloss.NewStyle().Foreground(colorWhite),
	cellEmpty:  lipgloss.NewStyle().Foreground(colorDim),
	cellCursor: lipgloss.NewStyle().Reverse(true),
	cellPicked: lipgloss.NewStyle().Foreground(colorYellow).Bold(true),
	cellGhost:  lipgloss.NewStyle().Foreground(colorYellow).Bold(true).Reverse(true),
}

type canvasCell struct {
	r  rune
	st cellStyle
}

// canvas is a fixed-size grid of styled runes; writes outside it are dropped.
type canvas [][]canvasCell

func newCanvas(w, h int) canvas {
	c := make(canvas, h)
	for y := range c {
		c[y] = make([]canvasCell, w)
		for x := range c[y] {
			c[y][x] = canvasCell{r: ' '}
		}
	}
	return c
}

func (c canvas) set(x, y int, r rune, st cellStyle) {
	if y < 0 || y >= len(c) || x < 0 || x >= len(c[y]) {
		return
	}
	c[y][x] = canvasCell{r: r, st: st}
}

func (c canvas) text(x, y int, s string, st cellStyle) {
	for _, r := range s {
		c.set(x, y, r, st)
		x++
	}
}

func (c canvas) box(x0, y0, x1, y1 int, st cellStyle) {
	if x1 <= x0 || y1 <= y0 {
		return
	}
	for x := x0 + 1; x < x1; x++ {
		c.set(x, y0, '─', st)
		c.set(x, y1, '─', st)
	}
	for y := y0 + 1; y < y1; y++ {
		c.set(x0, y, '│', st)
		c.set(x1, y, '│', st)
	}
	c.set(x0, y0, '╭', st)
	c.set(x1, y0, '╮', st)
	c.set(x0, y1, '╰', st)
	c.set(x1, y1, '╯', st)
}

// String renders the canvas, grouping runs of equal style.
func (c canvas) String() string {
	var b strings.Builder
	for y, row := range c {
		if y > 0 {
			b.WriteByte('\n')
		}
		var run []rune
		st := cellPlain
		flush := func() {
			if len(run) > 0 {
				b.WriteString(boardStyles[st].Render(string(run)))
				run = run[:0]
			}
		}
		for _, cell := range row {
			if cell.st != st {
				flush()
				st = cell.st
			}
			run = append(run, cell.r)
		}
		flush()
	}
	return b.String()
}

// label fits s into n cells, centered.
func label(s string, n int) string {
	if n <= 0 {
		return ""
	}
	rs := []rune(s)
	if len(rs) > n {
		if n == 1 {
			return "…"
		}
		return string(rs[:n-1]) + "…"
	}
	pad := (n - len(rs)) / 2
	return strings.Repeat(" ", pad) + s
}

func (m *BoardModel) View() string {
	w, h := m.canvasSize()
	c := newCanvas(w, h)
	g := m.plan.Display()
	b := m.plan.Board()

	for _, bank := range g.Banks {
		x0, y0 := m.cell(bank.X, bank.Y)
		x1, y1 := m.cell(bank.Right(), bank.Bottom())
		c.box(x0, y0, x1, y1, cellBank)
	}

	dragged := seating.Unplaced
	if d, ok := b.State().(seating.Dragging); ok {
		if e, ok := b.Find(d.Entity); ok {
			dragged = e.Slot
		}
	}

	for _, s := range g.Slots {
		x0, y0 := m.cell(s.X, s.Y)
		x1, y1 := m.cell(s.Right(), s.Bottom())
		cy := (y0 + y1) / 2
		n := max(x1-x0-1, 1)

		text, st := fmt.Sprintf("·%d", s.Index+1), cellEmpty
		if e, ok := b.Occupant(s.Index); ok && s.Index != dragged {
			text, st = e.Name, cellSeat
		}
		switch s.Index {
		case m.picked:
			st = cellPicked
		case m.cursor:
			st = cellCursor
		}
		c.text(x0+1, cy, label(text, n), st)
	}

	if d, ok := b.State().(seating.Dragging); ok && m.ghost != nil {
		if e, ok := b.Find(d.Entity); ok {
			side := float64(g.SeatSize)
			x0, _ := m.cell(m.ghost.X, m.ghost.Y)
			x1, cy := m.cell(m.ghost.X+side, m.ghost.Y+side/2)
			c.text(x0+1, cy, label(e.Name, max(x1-x0-1, 1)), cellGhost)
		}
	}

	header := StyleTitle.Render(m.plan.Title()) + StyleDim.Render(fmt.Sprintf("  %s · zoom %.0f%%", m.plan.LayoutName(), m.plan.Zoom()*100))
	if m.dirty {
		header += StyleWarning.Render("  ● modified")
	}

	unplaced := len(b.Unplaced())
	stats := fmt.Sprintf("%d/%d seats taken", b.Len()-unplaced, g.SlotCount())
	if unplaced > 0 {
		stats += fmt.Sprintf(" · %d unplaced", unplaced)
	}
	help := StyleDim.Render("space pick/drop · s shuffle · x remove · +/- zoom · w save · q quit")

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		c.String(),
		StyleDim.Render(stats)+"  "+m.status,
		help,
	)
}
