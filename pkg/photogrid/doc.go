// Package photogrid cuts individual photos out of a multi-photo page.
//
// Class photo sheets are printed on a fixed grid: photo i sits in row
// i / Cols and column i % Cols, at a fixed offset and pitch on the first page
// rendered at a fixed DPI. [Grid.Cell] turns an index into its crop
// rectangle and [Extract] cuts the cell and trims it to a centered square.
// Both are pure functions of their inputs, so a thumbnail can always be
// re-derived from (source, index) instead of being stored.
//
// Rendering the page is delegated to a [Rasterizer]; [Pdftoppm] shells out to
// poppler. An [Extractor] combines rasterization, cropping and a crop cache.
package photogrid
