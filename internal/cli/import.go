package cli

import (
	"context"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/matzehuels/seatplan/pkg/errors"
	photoio "github.com/matzehuels/seatplan/pkg/io"
	"github.com/matzehuels/seatplan/pkg/pipeline"
	"github.com/matzehuels/seatplan/pkg/plan"
)

// importCommand creates the import command group.
func (c *CLI) importCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Add students to a session",
		Long: `Add students to a session from a folder of photos or from a photo sheet.

New students take the free seats in order; students that do not fit stay
unplaced until seats are freed or the layout grows.`,
	}

	cmd.AddCommand(c.importFolderCommand())
	cmd.AddCommand(c.importPDFCommand())

	return cmd
}

// importFolderCommand creates the "import folder" subcommand.
func (c *CLI) importFolderCommand() *cobra.Command {
	var namesFile string

	cmd := &cobra.Command{
		Use:   "folder <session.json> <dir>",
		Short: "Import every photo in a folder",
		Long: `Import every .png, .jpg and .jpeg file in a folder, sorted by file name.

Names come from --names (one per line, matched to files in order) or from
the file names. Photos that cannot be decoded are skipped.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runImport(cmd.Context(), args[0], args[1], namesFile,
				func(ctx context.Context, r *pipeline.Runner, p *plan.Plan, names []string) (pipeline.ImportResult, error) {
					return r.ImportFolder(ctx, p, args[1], names)
				})
		},
	}

	cmd.Flags().StringVar(&namesFile, "names", "", "text file with one student name per line")
	return cmd
}

// importPDFCommand creates the "import pdf" subcommand.
func (c *CLI) importPDFCommand() *cobra.Command {
	var (
		namesFile string
		count     int
	)

	cmd := &cobra.Command{
		Use:   "pdf <session.json> <file>",
		Short: "Cut student photos out of a photo sheet",
		Long: `Cut student photos out of the first page of a photo sheet.

The sheet is a PDF (rasterized with pdftoppm) or a scanned image holding
photos on a fixed grid of five columns. Names come from --names or default
to student_1, student_2, ...`,
		Example: `  seatplan import pdf 3a.json photos-3a.pdf --count 24 --names 3a.txt`,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if count <= 0 {
				return errors.New(errors.ErrCodeInvalidInput, "--count must be > 0, got %d", count)
			}
			return c.runImport(cmd.Context(), args[0], args[1], namesFile,
				func(ctx context.Context, r *pipeline.Runner, p *plan.Plan, names []string) (pipeline.ImportResult, error) {
					sp := newSpinner(ctx, os.Stderr, "Cutting photos from "+filepath.Base(args[1]), count)
					r.OnPhoto = sp.Step
					sp.Start()
					defer sp.Stop()
					return r.ImportGrid(ctx, p, args[1], count, names)
				})
		},
	}

	cmd.Flags().IntVarP(&count, "count", "n", 0, "number of photos on the sheet (required)")
	cmd.Flags().StringVar(&namesFile, "names", "", "text file with one student name per line")
	_ = cmd.MarkFlagRequired("count")
	return cmd
}

type importFunc func(ctx context.Context, r *pipeline.Runner, p *plan.Plan, names []string) (pipeline.ImportResult, error)

// runImport loads the session, runs fn and saves the result.
func (c *CLI) runImport(ctx context.Context, path, source, namesFile string, fn importFunc) error {
	names, err := photoio.ImportNames(namesFile)
	if err != nil {
		return err
	}

	r, err := c.newRunner()
	if err != nil {
		return err
	}
	defer r.Close()

	p, err := c.openPlan(ctx, r, path)
	if err != nil {
		return err
	}

	prog := newProgress(sessionLogger(ctx, path))
	res, err := fn(ctx, r, p, names)
	if err != nil {
		return err
	}
	if err := r.Save(ctx, p, path); err != nil {
		return err
	}
	prog.imported(source, res)

	for _, skip := range res.Skipped {
		printWarning("Skipped %s", errors.UserMessage(skip))
	}
	printSuccess("Saved %s", path)
	printPlanStats(p)
	return nil
}

// printPlanStats prints seat occupancy of p.
func printPlanStats(p *plan.Plan) {
	unplaced := len(p.Board().Unplaced())
	printStats(p.Base().SlotCount(), p.Board().Len()-unplaced, unplaced)
}
