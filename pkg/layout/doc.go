// Package layout describes classroom seat layouts and resolves them into a
// uniform topology.
//
// # Overview
//
// A layout is declared either as a [Regular] grid (every row has the same
// number of banks and every bank the same number of seats) or as an
// [Irregular] pattern table that gives the seat count of every bank in every
// row. Both variants implement [Config]; [Resolve] normalizes either one
// into a [Topology] that downstream geometry code consumes without caring
// how the layout was declared.
//
//	topo, err := layout.Resolve(layout.Regular{Rows: 4, Banks: 3, Seats: 2})
//	if err != nil {
//	    // errors.ErrCodeInvalidLayout: keep the previous layout
//	}
//	topo.SlotCount() // 24
//
// # Patterns
//
// Irregular layouts can be typed as text. [ParsePattern] accepts the
// bracketed form "[4],[3,3,3]", a semicolon form "4;3,3,3" or one row per
// line, and [FormatPattern] renders a pattern back to the bracketed form.
//
// # Registry
//
// A [Registry] is an ordered name → [Config] mapping with the built-in
// presets and one editable custom entry. It is owned by the plan that uses
// it rather than shared as global state. [Registry.SetCustom] validates the
// new configuration before replacing the custom entry, so a rejected edit
// leaves the previous layout in place.
package layout
