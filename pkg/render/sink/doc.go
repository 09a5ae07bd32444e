// Package sink writes projected seat plans to output formats.
//
// Each format has a Render function taking a [render.Document] and
// functional options:
//
//   - [RenderPDF]: vector PDF with embedded fonts and photos (go-pdf/fpdf)
//   - [RenderSVG]: standalone SVG with base64-embedded photos
//   - [RenderPNG]: raster image at a scale factor (fogleman/gg)
//   - [RenderJSON]: page, banks and seat placement for other tools
//
// PDF, SVG and PNG are [render.Surface] implementations driven by
// [render.Document.Draw], so all three draw exactly the same operations.
package sink
