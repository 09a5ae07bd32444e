// Package pipeline runs the seat plan workflows shared by the CLI, the
// interactive board and the preview server.
//
// # Workflows
//
//  1. Import: photos from a folder, or cut from a multi-photo page
//  2. Open/Save: session files with photo recovery on load
//  3. Render: project the plan and write it in one or more formats
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, photogrid.Pdftoppm{}, logger)
//	p, err := runner.Open(ctx, layout.NewRegistry(), "3A.json")
//	if err != nil {
//	    return err
//	}
//	if _, err := runner.ImportGrid(ctx, p, "photos.pdf", 24, names); err != nil {
//	    return err
//	}
//	result, err := runner.Render(ctx, p, pipeline.Options{Formats: []string{"pdf"}})
package pipeline

import (
	"fmt"
	"slices"
	"time"
)

// Format constants for output formats.
const (
	FormatPDF  = "pdf"
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatJSON = "json"
	FormatCSV  = "csv"
)

// DefaultFormat is written when no format is requested.
const DefaultFormat = FormatPDF

// DefaultPNGScale is the default pixels per point of PNG output.
const DefaultPNGScale = 2.0

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatPDF:  true,
	FormatSVG:  true,
	FormatPNG:  true,
	FormatJSON: true,
	FormatCSV:  true,
}

// Options configures rendering.
type Options struct {
	Formats []string `json:"formats,omitempty"`
	// Scale is the PNG scale factor.
	Scale float64 `json:"scale,omitempty"`
	// SlotIDs tags SVG seats with their slot index.
	SlotIDs bool `json:"slot_ids,omitempty"`
}

// ValidateAndSetDefaults fills in defaults and validates the options.
func (o *Options) ValidateAndSetDefaults() error {
	if len(o.Formats) == 0 {
		o.Formats = []string{DefaultFormat}
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.Scale <= 0 {
		o.Scale = DefaultPNGScale
	}
	return nil
}

// needsPhotos reports whether any requested format draws photos.
func (o *Options) needsPhotos() bool {
	return slices.ContainsFunc(o.Formats, func(f string) bool {
		return f == FormatPDF || f == FormatSVG || f == FormatPNG
	})
}

// Result contains the outputs of a render.
type Result struct {
	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte
	// Stats contains timing and size information.
	Stats Stats
}

// Stats contains render statistics.
type Stats struct {
	Seats      int
	Placed     int
	RenderTime time.Duration
}

// ImportResult describes an import.
type ImportResult struct {
	// Added is the number of entities added to the plan.
	Added int
	// Skipped lists files that could not be decoded.
	Skipped  []error
	Duration time.Duration
}

// OpenResult describes a session load.
type OpenResult struct {
	Entities int
	// Recovered counts photos re-derived from their source.
	Recovered int
	// Placeholders counts photos that could not be recovered.
	Placeholders int
	// Warnings lists saved layout state that could not be restored.
	Warnings []error
	Duration time.Duration
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return fmt.Errorf("invalid format: %q (must be one of: pdf, svg, png, json, csv)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}
