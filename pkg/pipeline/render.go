package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	photoio "github.com/matzehuels/seatplan/pkg/io"
	"github.com/matzehuels/seatplan/pkg/observability"
	"github.com/matzehuels/seatplan/pkg/plan"
	"github.com/matzehuels/seatplan/pkg/render"
	"github.com/matzehuels/seatplan/pkg/render/sink"
)

// Render projects p once and renders it in every requested format.
func (r *Runner) Render(ctx context.Context, p *plan.Plan, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	start := time.Now()
	observability.Plan().OnExportStart(ctx, opts.Formats)

	artifacts, err := Render(p, opts)
	elapsed := time.Since(start)
	observability.Plan().OnExportComplete(ctx, opts.Formats, elapsed, err)
	if err != nil {
		return nil, err
	}

	r.Logger.Debug("rendered outputs", "formats", opts.Formats, "duration", elapsed)
	return &Result{
		Artifacts: artifacts,
		Stats: Stats{
			Seats:      p.Base().SlotCount(),
			Placed:     len(p.Board().Assignment()),
			RenderTime: elapsed,
		},
	}, nil
}

// Render generates output artifacts in the requested formats. Options must
// already be validated.
func Render(p *plan.Plan, opts Options) (map[string][]byte, error) {
	var projOpts []render.Option
	if !opts.needsPhotos() {
		projOpts = append(projOpts, render.WithoutPhotos())
	}
	doc := p.Document(projOpts...)

	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatPDF:
			data, err = sink.RenderPDF(doc)
		case FormatSVG:
			var svgOpts []sink.SVGOption
			if opts.SlotIDs {
				svgOpts = append(svgOpts, sink.WithSlotIDs())
			}
			data, err = sink.RenderSVG(doc, svgOpts...)
		case FormatPNG:
			data, err = sink.RenderPNG(doc, sink.WithScale(opts.Scale))
		case FormatJSON:
			data, err = sink.RenderJSON(doc,
				sink.WithJSONLayout(p.LayoutName()),
				sink.WithJSONClass(p.Class, p.Room))
		case FormatCSV:
			var buf bytes.Buffer
			err = photoio.WriteRoster(&buf, p.Entities(), p.Base().SlotCount())
			data = buf.Bytes()
		default:
			return nil, fmt.Errorf("unsupported format: %s", format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

// OutputPaths maps each format to its file: base with the format's
// extension. An empty base uses the plan's default export name.
func OutputPaths(p *plan.Plan, base string, formats []string) map[string]string {
	if base == "" {
		base = p.ExportName(DefaultFormat)
	}
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	paths := make(map[string]string, len(formats))
	for _, f := range formats {
		paths[f] = stem + "." + f
	}
	return paths
}

// WriteArtifacts writes each artifact to its path from OutputPaths and
// returns the written paths in format order.
func WriteArtifacts(result *Result, paths map[string]string, formats []string) ([]string, error) {
	var written []string
	for _, f := range formats {
		data, ok := result.Artifacts[f]
		if !ok {
			continue
		}
		path := paths[f]
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return written, fmt.Errorf("write %s: %w", path, err)
		}
		written = append(written, path)
	}
	return written, nil
}
