package render

import (
	"image"

	"github.com/matzehuels/seatplan/pkg/geometry"
)

// OpKind identifies a drawing operation.
type OpKind int

const (
	OpTitle OpKind = iota
	OpBank
	OpPlaceholder
	OpPhoto
	OpLabel
)

func (k OpKind) String() string {
	switch k {
	case OpTitle:
		return "title"
	case OpBank:
		return "bank"
	case OpPlaceholder:
		return "placeholder"
	case OpPhoto:
		return "photo"
	case OpLabel:
		return "label"
	}
	return "unknown"
}

// Op is one drawing operation in print coordinates.
//
// Rectangle ops (bank, placeholder, photo) use X, Y as the bottom-left
// corner. Text ops (title, label) use X as the horizontal center and Y as
// the baseline.
type Op struct {
	Kind OpKind
	X, Y float64
	W, H float64

	Text     string
	FontSize float64
	Dashed   bool

	// Image is the resampled photo of an OpPhoto.
	Image image.Image

	// Slot is the seat index of placeholder, photo and label ops; -1
	// otherwise.
	Slot int
	// Entity is the ID of the entity drawn by photo and label ops.
	Entity string
}

// Document is a projected page.
type Document struct {
	Page     geometry.Page
	Title    string
	SeatSize int
	Ops      []Op
}

// Surface draws primitives in print coordinates.
type Surface interface {
	// Rect strokes a rectangle with bottom-left corner (x, y).
	Rect(x, y, w, h float64, dashed bool) error
	// Image draws img scaled into the rectangle with bottom-left corner
	// (x, y).
	Image(img image.Image, x, y, w, h float64) error
	// Text draws bold text centered on cx with its baseline at y.
	Text(s string, cx, y, size float64) error
}

// Draw replays the document's operations on s in order, stopping at the
// first error.
func (d Document) Draw(s Surface) error {
	for _, op := range d.Ops {
		var err error
		switch op.Kind {
		case OpTitle, OpLabel:
			err = s.Text(op.Text, op.X, op.Y, op.FontSize)
		case OpBank, OpPlaceholder:
			err = s.Rect(op.X, op.Y, op.W, op.H, op.Dashed)
		case OpPhoto:
			err = s.Image(op.Image, op.X, op.Y, op.W, op.H)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// Filter returns the ops of the given kind.
func (d Document) Filter(kind OpKind) []Op {
	var out []Op
	for _, op := range d.Ops {
		if op.Kind == kind {
			out = append(out, op)
		}
	}
	return out
}

// FlipY converts a print-space y of a box with height h into a top-left
// origin y, for surfaces whose y axis points down.
func (d Document) FlipY(y, h float64) float64 {
	return d.Page.H - y - h
}
