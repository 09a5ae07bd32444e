// Package render projects a seat plan onto a printable page.
//
// # Overview
//
// [Project] takes the canonical (scale 1) geometry and the current entity
// placement and produces a [Document]: an ordered list of drawing
// operations in print coordinates, where the origin is the bottom-left
// corner of the page and y grows upwards. A layout rectangle at y with height
// h lands at yPrint = pageHeight − y − h.
//
// The operations are, in order:
//
//   - the title, centered 36pt below the top edge at 20pt bold
//   - one border per bank
//   - one dashed placeholder per empty seat
//   - per occupied seat, the photo resampled at 2x seat size and a centered
//     label below it at the entity's cached font size
//
// # Surfaces
//
// A Document is drawn onto any [Surface], a three-method capability for
// rectangles, images and text. The [sink] subpackage provides PDF, SVG and
// PNG surfaces plus a JSON export of the placement.
//
//	doc := render.Project(base, board.Entities(), render.WithTitle("3A", "T121"))
//	pdf, err := sink.RenderPDF(doc)
package render
