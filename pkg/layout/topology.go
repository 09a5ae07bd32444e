package layout

import (
	"github.com/matzehuels/seatplan/pkg/errors"
)

// Topology is the normalized shape of a layout: rows of banks of seats.
// It is immutable once resolved.
type Topology struct {
	rows [][]int
}

// Resolve normalizes cfg into a Topology.
//
// Resolve fails with [errors.ErrCodeInvalidLayout] when any count is ≤ 0, the
// pattern is empty, or a pattern row is empty. A nil cfg is rejected the
// same way. Callers must keep their previous configuration on failure.
func Resolve(cfg Config) (Topology, error) {
	if cfg == nil {
		return Topology{}, errors.New(errors.ErrCodeInvalidLayout, "no layout configured")
	}
	return cfg.topology()
}

func (r Regular) topology() (Topology, error) {
	switch {
	case r.Rows <= 0:
		return Topology{}, errors.New(errors.ErrCodeInvalidLayout, "rows must be > 0, got %d", r.Rows)
	case r.Banks <= 0:
		return Topology{}, errors.New(errors.ErrCodeInvalidLayout, "banks per row must be > 0, got %d", r.Banks)
	case r.Seats <= 0:
		return Topology{}, errors.New(errors.ErrCodeInvalidLayout, "seats per bank must be > 0, got %d", r.Seats)
	}
	rows := make([][]int, r.Rows)
	for i := range rows {
		row := make([]int, r.Banks)
		for b := range row {
			row[b] = r.Seats
		}
		rows[i] = row
	}
	return Topology{rows: rows}, nil
}

func (i Irregular) topology() (Topology, error) {
	if len(i.Pattern) == 0 {
		return Topology{}, errors.New(errors.ErrCodeInvalidLayout, "pattern is empty")
	}
	rows := make([][]int, len(i.Pattern))
	for r, row := range i.Pattern {
		if len(row) == 0 {
			return Topology{}, errors.New(errors.ErrCodeInvalidLayout, "row %d has no banks", r+1)
		}
		out := make([]int, len(row))
		for b, seats := range row {
			if seats <= 0 {
				return Topology{}, errors.New(errors.ErrCodeInvalidLayout,
					"row %d bank %d: seat count must be > 0, got %d", r+1, b+1, seats)
			}
			out[b] = seats
		}
		rows[r] = out
	}
	return Topology{rows: rows}, nil
}

// Rows returns the number of rows.
func (t Topology) Rows() int { return len(t.rows) }

// BanksInRow returns the number of banks in row r, or 0 when r is out of range.
func (t Topology) BanksInRow(r int) int {
	if r < 0 || r >= len(t.rows) {
		return 0
	}
	return len(t.rows[r])
}

// SeatsInBank returns the seat count of bank b in row r, or 0 when out of range.
func (t Topology) SeatsInBank(r, b int) int {
	if b < 0 || b >= t.BanksInRow(r) {
		return 0
	}
	return t.rows[r][b]
}

// SlotCount returns the total number of seats.
func (t Topology) SlotCount() int {
	n := 0
	for _, row := range t.rows {
		for _, seats := range row {
			n += seats
		}
	}
	return n
}

// MaxBanks returns the largest bank count of any row.
func (t Topology) MaxBanks() int {
	m := 0
	for _, row := range t.rows {
		m = max(m, len(row))
	}
	return m
}

// MaxSeats returns the largest seat count of any bank.
func (t Topology) MaxSeats() int {
	m := 0
	for _, row := range t.rows {
		for _, seats := range row {
			m = max(m, seats)
		}
	}
	return m
}
