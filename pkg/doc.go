// Package pkg provides the core libraries for seatplan classroom seating charts.
//
// # Overview
//
// Seatplan places student photos on a printable classroom chart made of rows
// of banks of seats. The pkg directory is organized into these areas:
//
//  1. Domain logic: [layout], [geometry], [seating], [render]
//  2. Import: [photogrid] (photo sheets) and [io] (folders, name lists, rosters)
//  3. Persistence: [session] (JSON file plus zip of thumbnails)
//  4. Orchestration: [plan] (application state) and [pipeline] (workflows)
//  5. Support: [cache], [fonts], [errors], [observability], [buildinfo]
//
// # Architecture
//
// The typical data flow through seatplan:
//
//	Layout preset or custom pattern
//	         ↓
//	    [layout] package (resolve to a topology of rows, banks, seats)
//	         ↓
//	    [geometry] package (seat size, bank and slot rectangles)
//	         ↓
//	    [seating] package (entities on slots, drag and drop, shuffle)
//	         ↓
//	    [render] package (print-space document)
//	         ↓
//	    PDF/SVG/PNG/JSON output
//
// # Quick Start
//
// Seat a folder of photos and export a PDF:
//
//	p := plan.New(nil)
//	p.Class, p.Room = "3A", "T117"
//
//	r := pipeline.NewRunner(nil, nil, nil, nil)
//	if _, err := r.ImportFolder(ctx, p, "photos/3a", nil); err != nil {
//	    return err
//	}
//	res, err := r.Render(ctx, p, pipeline.Options{Formats: []string{"pdf"}})
//	if err != nil {
//	    return err
//	}
//	os.WriteFile(p.ExportName("pdf"), res.Artifacts["pdf"], 0o644)
//
// # Main Packages
//
// ## Domain Logic
//
// [layout] - Layout configurations (regular rows × banks × seats, or an
// irregular per-row pattern), the named-layout registry and pattern parsing.
//
// [geometry] - The single geometry function shared by print and display:
// canonical seat size, bank and slot rectangles, zoom.
//
// [seating] - Entities, slot assignment, the two-state drag machine and the
// drop rules (move, swap, reject).
//
// [render] - Projection of a plan into a page-space document, and the
// [render/sink] formats (PDF, SVG, PNG, JSON).
//
// ## Import and Persistence
//
// [photogrid] - Cuts photos from a fixed grid on the first page of a photo
// sheet, with cached crops.
//
// [io] - Photo folders, name lists and CSV rosters.
//
// [session] - Session files and their thumbnail containers.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...                    # All tests
//	go test ./pkg/geometry/...           # Specific package
//	go test -run Example                 # Examples only
//
// [layout]: https://pkg.go.dev/github.com/matzehuels/seatplan/pkg/layout
// [geometry]: https://pkg.go.dev/github.com/matzehuels/seatplan/pkg/geometry
// [seating]: https://pkg.go.dev/github.com/matzehuels/seatplan/pkg/seating
// [render]: https://pkg.go.dev/github.com/matzehuels/seatplan/pkg/render
// [render/sink]: https://pkg.go.dev/github.com/matzehuels/seatplan/pkg/render/sink
// [photogrid]: https://pkg.go.dev/github.com/matzehuels/seatplan/pkg/photogrid
// [io]: https://pkg.go.dev/github.com/matzehuels/seatplan/pkg/io
// [session]: https://pkg.go.dev/github.com/matzehuels/seatplan/pkg/session
// [plan]: https://pkg.go.dev/github.com/matzehuels/seatplan/pkg/plan
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/seatplan/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/seatplan/pkg/cache
// [fonts]: https://pkg.go.dev/github.com/matzehuels/seatplan/pkg/fonts
// [errors]: https://pkg.go.dev/github.com/matzehuels/seatplan/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/seatplan/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/seatplan/pkg/buildinfo
package pkg
