package geometry

import (
	"math"

	"github.com/matzehuels/seatplan/pkg/layout"
)

// Slot is a single seat position.
type Slot struct {
	Rect
	Index int
	Row   int
	Bank  int // bank index within the row
	Seat  int // seat index within the bank
}

// Bank is the bordered rectangle around a group of adjacent seats.
type Bank struct {
	Rect
	Row       int
	Index     int // bank index within the row
	FirstSlot int
	Seats     int
}

// Geometry is the computed placement of every bank and slot of a layout at
// one scale.
type Geometry struct {
	Scale    float64
	Page     Page
	SeatSize int
	Banks    []Bank
	Slots    []Slot
}

// SlotCount returns the number of slots.
func (g Geometry) SlotCount() int { return len(g.Slots) }

// Bounds returns the scaled page rectangle.
func (g Geometry) Bounds() Rect {
	return Rect{W: g.Page.W * g.Scale, H: g.Page.H * g.Scale}
}

// CanonicalSeat returns the seat size of topo on page at scale 1: the
// smaller of the width-bound and height-bound seat sizes, clamped to
// [SeatMin, SeatMax] and floored. An empty topology yields SeatMax.
func CanonicalSeat(topo layout.Topology, page Page) int {
	rows := topo.Rows()
	maxBanks := topo.MaxBanks()
	seats := topo.MaxSeats()
	if rows == 0 || maxBanks == 0 || seats == 0 {
		return SeatMax
	}

	availW := page.W - 2*MarginLR - float64(maxBanks-1)*BankSpacing
	byW := (availW/float64(maxBanks) - 2*InnerPadX - float64(seats-1)*SeatSpacing) / float64(seats)

	availH := page.H - MarginTop - MarginBottom - float64(rows-1)*RowSpacing
	byH := availH/float64(rows) - captionAllowance

	return int(math.Floor(clamp(math.Min(byW, byH), SeatMin, SeatMax)))
}

// Compute lays out topo on page at the given scale.
//
// The seat size at scale S is max(4, floor(canonical·S)). Page size,
// margins and spacings are scaled by S; inner paddings and the caption
// allowance are not. Rows are stacked top to bottom and the block is
// centered vertically when it fits (never pushed above the top margin);
// every row is centered horizontally on its own width.
func Compute(topo layout.Topology, page Page, scale float64) Geometry {
	if scale <= 0 {
		scale = 1
	}
	seat := max(minDisplaySeat, int(math.Floor(float64(CanonicalSeat(topo, page))*scale)))
	g := Geometry{Scale: scale, Page: page, SeatSize: seat}

	rows := topo.Rows()
	if rows == 0 || topo.MaxBanks() == 0 {
		return g
	}

	sc := func(v float64) float64 { return math.Floor(v * scale) }
	var (
		pageW       = page.W * scale
		pageH       = page.H * scale
		marginLR    = sc(MarginLR)
		marginTop   = sc(MarginTop)
		marginBot   = sc(MarginBottom)
		seatSpacing = sc(SeatSpacing)
		bankSpacing = sc(BankSpacing)
		rowSpacing  = sc(RowSpacing)
		s           = float64(seat)
	)

	bankW := func(n int) float64 {
		return 2*InnerPadX + float64(n)*s + float64(n-1)*seatSpacing
	}
	bankH := captionAllowance + s

	block := float64(rows)*bankH + float64(rows-1)*rowSpacing
	y := marginTop + math.Max(0, math.Floor((pageH-marginTop-marginBot-block)/2))
	if y < TitleY*scale+10 {
		y = TitleY*scale + 16
	}

	g.Banks = make([]Bank, 0, rows*topo.MaxBanks())
	g.Slots = make([]Slot, 0, topo.SlotCount())
	for r := 0; r < rows; r++ {
		nb := topo.BanksInRow(r)
		rowW := float64(nb-1) * bankSpacing
		for b := 0; b < nb; b++ {
			rowW += bankW(topo.SeatsInBank(r, b))
		}
		x := marginLR + math.Floor((pageW-2*marginLR-rowW)/2)

		for b := 0; b < nb; b++ {
			n := topo.SeatsInBank(r, b)
			bw := bankW(n)
			g.Banks = append(g.Banks, Bank{
				Rect:      Rect{X: x, Y: y, W: bw, H: bankH},
				Row:       r,
				Index:     b,
				FirstSlot: len(g.Slots),
				Seats:     n,
			})
			sx, sy := x+InnerPadX, y+InnerPadTop
			for k := 0; k < n; k++ {
				g.Slots = append(g.Slots, Slot{
					Rect:  Rect{X: sx, Y: sy, W: s, H: s},
					Index: len(g.Slots),
					Row:   r,
					Bank:  b,
					Seat:  k,
				})
				sx += s + seatSpacing
			}
			x += bw + bankSpacing
		}
		y += bankH + rowSpacing
	}
	return g
}

// ComputePair returns the canonical (scale 1) and display (scale zoom)
// geometries of topo. The display geometry is computed independently, not
// derived from the canonical one.
func ComputePair(topo layout.Topology, page Page, zoom float64) (base, display Geometry) {
	return Compute(topo, page, 1), Compute(topo, page, ClampZoom(zoom))
}

// Nearest returns the index of the slot whose center is closest to p and
// the distance to it. ok is false when there are no slots.
func (g Geometry) Nearest(p Point) (idx int, dist float64, ok bool) {
	idx, dist = -1, math.Inf(1)
	for _, s := range g.Slots {
		if d := s.Center().Dist(p); d < dist {
			idx, dist = s.Index, d
		}
	}
	return idx, dist, idx >= 0
}

// SlotAt returns the index of the slot containing p, or -1.
func (g Geometry) SlotAt(p Point) int {
	for _, s := range g.Slots {
		if s.Contains(p) {
			return s.Index
		}
	}
	return -1
}

// Slot returns slot i and whether it exists.
func (g Geometry) Slot(i int) (Slot, bool) {
	if i < 0 || i >= len(g.Slots) {
		return Slot{}, false
	}
	return g.Slots[i], true
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
