package layout

import (
	"fmt"
	"slices"
)

// Orientation selects the page dimensions a layout is drawn on.
type Orientation string

const (
	Portrait  Orientation = "portrait"
	Landscape Orientation = "landscape"
)

// ParseOrientation parses an orientation name. The empty string defaults to
// [Portrait].
func ParseOrientation(s string) (Orientation, error) {
	switch Orientation(s) {
	case "", Portrait:
		return Portrait, nil
	case Landscape:
		return Landscape, nil
	}
	return "", fmt.Errorf("invalid orientation: %q (must be 'portrait' or 'landscape')", s)
}

// Config is a layout description. The two variants, [Regular] and
// [Irregular], are the only implementations.
type Config interface {
	// Orientation reports the page orientation of the layout.
	Orientation() Orientation
	// Describe returns a short human-readable summary.
	Describe() string

	topology() (Topology, error)
}

// Regular is a layout where every row has Banks banks of Seats seats.
type Regular struct {
	Rows   int
	Banks  int
	Seats  int
	Orient Orientation
}

func (r Regular) Orientation() Orientation { return orientationOrDefault(r.Orient) }

func (r Regular) Describe() string {
	return fmt.Sprintf("%d rows × %d banks × %d seats (%s)", r.Rows, r.Banks, r.Seats, r.Orientation())
}

// Irregular is a layout given as a per-row, per-bank seat count table.
// Pattern[r][b] is the number of seats in bank b of row r.
type Irregular struct {
	Pattern [][]int
	Orient  Orientation
}

func (i Irregular) Orientation() Orientation { return orientationOrDefault(i.Orient) }

func (i Irregular) Describe() string {
	return fmt.Sprintf("pattern %s (%s)", FormatPattern(i.Pattern), i.Orientation())
}

// Clone returns a deep copy so callers can't alias the pattern table.
func (i Irregular) Clone() Irregular {
	p := make([][]int, len(i.Pattern))
	for r, row := range i.Pattern {
		p[r] = slices.Clone(row)
	}
	return Irregular{Pattern: p, Orient: i.Orient}
}

func orientationOrDefault(o Orientation) Orientation {
	if o == "" {
		return Portrait
	}
	return o
}

var (
	_ Config = Regular{}
	_ Config = Irregular{}
)
