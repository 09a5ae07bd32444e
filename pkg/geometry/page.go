package geometry

import "github.com/matzehuels/seatplan/pkg/layout"

// Page is a page size in points.
type Page struct {
	W, H float64
}

// A4 is the portrait A4 page.
var A4 = Page{W: 595.28, H: 841.89}

// Landscape returns the page with its longer side horizontal.
func (p Page) Landscape() Page {
	if p.W >= p.H {
		return p
	}
	return Page{W: p.H, H: p.W}
}

// Portrait returns the page with its longer side vertical.
func (p Page) Portrait() Page {
	if p.H >= p.W {
		return p
	}
	return Page{W: p.H, H: p.W}
}

// PageFor returns the A4 page for the given orientation.
func PageFor(o layout.Orientation) Page {
	if o == layout.Landscape {
		return A4.Landscape()
	}
	return A4
}
