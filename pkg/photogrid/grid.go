package photogrid

import (
	"fmt"
	"image"
	"image/color"

	"github.com/disintegration/imaging"

	"github.com/matzehuels/seatplan/pkg/errors"
)

// Grid describes where photos sit on a rasterized page, in pixels at DPI.
type Grid struct {
	Cols       int
	PhotoW     int
	PhotoH     int
	MarginLeft int
	MarginTop  int
	HSpacing   int
	VSpacing   int
	DPI        int
}

// DefaultGrid is the layout of the school's photo sheets at 200 DPI.
var DefaultGrid = Grid{
	Cols:       5,
	PhotoW:     236,
	PhotoH:     236,
	MarginLeft: 140,
	MarginTop:  319,
	HSpacing:   40,
	VSpacing:   88,
	DPI:        200,
}

// offPage fills the part of a cell that lies beyond the page.
var offPage = color.NRGBA{A: 255}

// String returns a compact form of the grid used in cache keys.
func (g Grid) String() string {
	return fmt.Sprintf("%dc/%dx%d/%d,%d/%d,%d@%d",
		g.Cols, g.PhotoW, g.PhotoH, g.MarginLeft, g.MarginTop, g.HSpacing, g.VSpacing, g.DPI)
}

// Validate checks that the grid can produce crops.
func (g Grid) Validate() error {
	switch {
	case g.Cols <= 0:
		return errors.New(errors.ErrCodeInvalidInput, "grid columns must be > 0, got %d", g.Cols)
	case g.PhotoW <= 0 || g.PhotoH <= 0:
		return errors.New(errors.ErrCodeInvalidInput, "grid photo size must be > 0, got %dx%d", g.PhotoW, g.PhotoH)
	case g.DPI <= 0:
		return errors.New(errors.ErrCodeInvalidInput, "grid DPI must be > 0, got %d", g.DPI)
	case g.HSpacing < 0 || g.VSpacing < 0 || g.MarginLeft < 0 || g.MarginTop < 0:
		return errors.New(errors.ErrCodeInvalidInput, "grid margins and spacing must be >= 0")
	}
	return nil
}

// Cell returns the crop rectangle of photo i relative to the page origin.
func (g Grid) Cell(i int) image.Rectangle {
	row, col := i/g.Cols, i%g.Cols
	x := g.MarginLeft + col*(g.PhotoW+g.HSpacing)
	y := g.MarginTop + row*(g.PhotoH+g.VSpacing)
	return image.Rect(x, y, x+g.PhotoW, y+g.PhotoH)
}

// SquareCenter returns the largest square centered in r.
func SquareCenter(r image.Rectangle) image.Rectangle {
	w, h := r.Dx(), r.Dy()
	side := min(w, h)
	x := r.Min.X + (w-side)/2
	y := r.Min.Y + (h-side)/2
	return image.Rect(x, y, x+side, y+side)
}

// SquareCrop trims img to its centered square.
func SquareCrop(img image.Image) *image.NRGBA {
	return imaging.Crop(img, SquareCenter(img.Bounds()))
}

// Extract cuts photo i out of page and trims it to a centered square.
// A cell that only partly overlaps the page keeps its full size, with the
// part beyond the page filled black; a cell entirely off the page is an
// INVALID_INPUT error.
func Extract(page image.Image, g Grid, i int) (*image.NRGBA, error) {
	if i < 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "grid index must be >= 0, got %d", i)
	}
	if err := g.Validate(); err != nil {
		return nil, err
	}
	b := page.Bounds()
	cell := g.Cell(i).Add(b.Min)
	if !cell.Overlaps(b) {
		return nil, errors.New(errors.ErrCodeInvalidInput,
			"photo %d at %v lies outside the %dx%d page", i, cell, b.Dx(), b.Dy())
	}
	if cell.In(b) {
		return SquareCrop(imaging.Crop(page, cell)), nil
	}
	visible := cell.Intersect(b)
	full := imaging.New(cell.Dx(), cell.Dy(), offPage)
	full = imaging.Paste(full, imaging.Crop(page, visible), visible.Min.Sub(cell.Min))
	return SquareCrop(full), nil
}
