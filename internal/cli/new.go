package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/seatplan/pkg/errors"
	"github.com/matzehuels/seatplan/pkg/layout"
	"github.com/matzehuels/seatplan/pkg/plan"
)

// layoutFlags selects a preset or describes a custom layout.
type layoutFlags struct {
	name        string
	pattern     string
	rows        int
	banks       int
	seats       int
	orientation string
}

func (f *layoutFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.name, "layout", "l", "", "layout name, number or name prefix (see 'seatplan layouts list')")
	cmd.Flags().StringVar(&f.pattern, "custom-pattern", "", `custom pattern of seats per bank, e.g. "[4], [3, 3, 3]"`)
	cmd.Flags().IntVar(&f.rows, "rows", 0, "custom layout rows")
	cmd.Flags().IntVar(&f.banks, "banks", 0, "custom layout banks per row")
	cmd.Flags().IntVar(&f.seats, "seats", 0, "custom layout seats per bank")
	cmd.Flags().StringVar(&f.orientation, "orientation", "", "custom layout page orientation (portrait or landscape)")
	cmd.MarkFlagsMutuallyExclusive("custom-pattern", "rows")
	cmd.MarkFlagsMutuallyExclusive("layout", "custom-pattern")
	cmd.MarkFlagsMutuallyExclusive("layout", "rows")
}

// custom reports whether any custom layout flag was given.
func (f *layoutFlags) custom() bool {
	return f.pattern != "" || f.rows != 0 || f.banks != 0 || f.seats != 0
}

// config builds the custom layout described by the flags.
func (f *layoutFlags) config() (layout.Config, error) {
	orient, err := layout.ParseOrientation(f.orientation)
	if err != nil {
		return nil, err
	}
	if f.pattern != "" {
		pattern, err := layout.ParsePattern(f.pattern)
		if err != nil {
			return nil, err
		}
		return layout.Irregular{Pattern: pattern, Orient: orient}, nil
	}
	return layout.Regular{Rows: f.rows, Banks: f.banks, Seats: f.seats, Orient: orient}, nil
}

// apply selects the flagged layout on p. Without flags, fallback is used
// when set and the current layout is kept otherwise.
func (f *layoutFlags) apply(p *plan.Plan, fallback string) error {
	switch {
	case f.custom():
		cfg, err := f.config()
		if err != nil {
			return err
		}
		return p.SetCustom(cfg)
	case f.name != "":
		fallback = f.name
	case fallback == "":
		return nil
	}
	name, err := resolveLayoutName(p.Registry(), fallback)
	if err != nil {
		return err
	}
	return p.SelectLayout(name)
}

// newCommand creates the new command for starting a session.
func (c *CLI) newCommand() *cobra.Command {
	var (
		class, room string
		force       bool
		lf          layoutFlags
	)

	cmd := &cobra.Command{
		Use:   "new <session.json>",
		Short: "Create a seating session",
		Long: `Create an empty seating session for a class and room.

The layout is a preset from 'seatplan layouts list' or a custom layout given
either as rows, banks and seats per bank or as a pattern of seats per bank.`,
		Example: `  seatplan new 3a.json --class 3A --room T117 --layout "Lab T117"
  seatplan new 3a.json --rows 5 --banks 3 --seats 2
  seatplan new physics.json --custom-pattern "[4], [3, 3, 3], [3, 3, 3]" --orientation landscape`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			if _, err := os.Stat(path); err == nil && !force {
				return errors.New(errors.ErrCodeInvalidPath, "%s already exists (use --force to overwrite)", path)
			}

			reg, err := c.registry()
			if err != nil {
				return err
			}
			p := plan.New(reg)
			if v := orDefault(class, c.Config.Defaults.Class); v != "" {
				p.Class = v
			}
			if v := orDefault(room, c.Config.Defaults.Room); v != "" {
				p.Room = v
			}
			if err := lf.apply(p, c.Config.Defaults.Layout); err != nil {
				return err
			}

			r, err := c.newRunner()
			if err != nil {
				return err
			}
			defer r.Close()
			if err := r.Save(cmd.Context(), p, path); err != nil {
				return err
			}

			printSuccess("Created %s", path)
			printKeyValue("Title", p.Title())
			printKeyValue("Layout", p.LayoutName())
			printKeyValue("Seats", fmt.Sprintf("%d (seat size %d)", p.Base().SlotCount(), p.Base().SeatSize))
			printNewline()
			printNextStep("Add students", fmt.Sprintf("seatplan import folder %s <photo-dir>", path))
			return nil
		},
	}

	cmd.Flags().StringVar(&class, "class", "", "class name shown in the title")
	cmd.Flags().StringVar(&room, "room", "", "room name shown in the title")
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing session")
	lf.register(cmd)
	_ = cmd.RegisterFlagCompletionFunc("layout", c.completeLayoutFlag)
	_ = cmd.RegisterFlagCompletionFunc("orientation", completeOrientation)

	return cmd
}

func orDefault(v, def string) string {
	if v != "" {
		return v
	}
	return def
}
