// Package cli implements the seatplan command-line interface.
//
// This package provides commands for creating seating sessions, importing
// student photos from folders or scanned photo sheets, rearranging seats
// from the command line or an interactive terminal board, and exporting the
// chart. The CLI is built using cobra and supports verbose logging via the
// charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - new: Create a session file for a class and room
//   - import: Add students from a photo folder or a photo sheet
//   - shuffle, move, rename, remove, reset: Edit seat assignments
//   - board: Interactive drag-and-drop seating board
//   - export: Write PDF, SVG, PNG, JSON or CSV output
//   - serve: Read-only HTTP preview of a session
//   - layouts: Inspect and validate classroom layouts
//   - cache: Manage the photo crop cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context to allow structured progress tracking.
//
// # Example
//
//	import "github.com/matzehuels/seatplan/internal/cli"
//
//	func main() {
//	    if err := cli.Execute(ctx); err != nil {
//	        os.Exit(1)
//	    }
//	}
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/seatplan/pkg/pipeline"
)

// newLogger creates a logger that writes "15:04:05.00"-stamped lines to w.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

type loggerKey struct{}

func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, l)
}

// loggerFromContext returns the command's logger, or an info-level stderr
// logger when none is attached.
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey{}).(*log.Logger); ok {
		return l
	}
	return newLogger(os.Stderr, LogInfo)
}

// sessionLogger tags the command's logger with the session file name.
func sessionLogger(ctx context.Context, path string) *log.Logger {
	return loggerFromContext(ctx).With("session", filepath.Base(path))
}

// progress times one import or export and logs its outcome.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

func (p *progress) took() time.Duration {
	return time.Since(p.start).Round(time.Millisecond)
}

// imported logs how many students an import added from source.
func (p *progress) imported(source string, res pipeline.ImportResult) {
	p.logger.Info("Imported students",
		"source", filepath.Base(source), "added", res.Added, "skipped", len(res.Skipped), "took", p.took())
}

// exported logs the written files and seat occupancy of an export.
func (p *progress) exported(files []string, stats pipeline.Stats) {
	p.logger.Info("Exported chart",
		"files", len(files), "seats", stats.Seats, "placed", stats.Placed, "took", p.took())
}
