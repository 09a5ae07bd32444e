package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/seatplan/pkg/pipeline"
)

// exportOpts holds export command options.
type exportOpts struct {
	formats string
	output  string
	scale   float64
	slotIDs bool
}

// exportCommand creates the export command.
func (c *CLI) exportCommand() *cobra.Command {
	var opts exportOpts

	cmd := &cobra.Command{
		Use:   "export <session.json>",
		Short: "Export the seating chart",
		Long: `Export the seating chart as PDF, SVG, PNG, JSON or a CSV roster.

Files are named after the class and room ("{class}_{room}.pdf") unless -o is
given; with several formats, the extension of -o is replaced per format.`,
		Example: `  seatplan export 3a.json
  seatplan export 3a.json -f pdf,png --scale 3 -o charts/3a.pdf
  seatplan export 3a.json -f csv`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			popts := pipeline.Options{
				Formats: c.parseFormats(opts.formats),
				Scale:   opts.scale,
				SlotIDs: opts.slotIDs,
			}
			if !cmd.Flags().Changed("scale") {
				popts.Scale = c.Config.Defaults.PNGScale
			}
			if err := popts.ValidateAndSetDefaults(); err != nil {
				return err
			}

			r, err := c.newRunner()
			if err != nil {
				return err
			}
			defer r.Close()

			p, err := c.openPlan(ctx, r, args[0])
			if err != nil {
				return err
			}

			prog := newProgress(sessionLogger(ctx, args[0]))
			result, err := r.Render(ctx, p, popts)
			if err != nil {
				return err
			}
			paths := pipeline.OutputPaths(p, opts.output, popts.Formats)
			written, err := pipeline.WriteArtifacts(result, paths, popts.Formats)
			if err != nil {
				return err
			}
			prog.exported(written, result.Stats)

			printSuccess("Exported %s", p.Title())
			for _, path := range written {
				printFile(path)
			}
			printStats(result.Stats.Seats, result.Stats.Placed, p.Board().Len()-result.Stats.Placed)
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.formats, "format", "f", "", "output formats: pdf, svg, png, json, csv (comma-separated)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default {class}_{room}.{format})")
	cmd.Flags().Float64Var(&opts.scale, "scale", pipeline.DefaultPNGScale, "PNG pixels per point")
	cmd.Flags().BoolVar(&opts.slotIDs, "slot-ids", false, "add slot-N ids to SVG elements")

	return cmd
}
