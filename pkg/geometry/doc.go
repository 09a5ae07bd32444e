// Package geometry turns a resolved layout topology into concrete bank and
// seat rectangles on a page.
//
// [Compute] is a pure function of (topology, page, scale). The plan calls it
// twice: at scale 1 for the canonical geometry that export uses, and at the
// active zoom for the display geometry the board draws. The display geometry
// is recomputed from the scaled seat size rather than by scaling the
// canonical rectangles, so the two can round differently; both always have
// the same slot count and slot ordering.
//
// All coordinates are in points with the origin at the top-left corner of
// the page and y growing downwards. The export projector flips them into
// print space.
//
// Slots are enumerated row-major, then bank-major, then seat-major. That
// enumeration order is the slot index used by seat assignment.
package geometry
