package cli

import (
	"math/rand/v2"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/matzehuels/seatplan/pkg/errors"
	"github.com/matzehuels/seatplan/pkg/plan"
	"github.com/matzehuels/seatplan/pkg/seating"
)

// shuffleCommand creates the shuffle command.
func (c *CLI) shuffleCommand() *cobra.Command {
	var seed uint64

	cmd := &cobra.Command{
		Use:   "shuffle <session.json>",
		Short: "Randomly reseat all students",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("seed") {
				seed = uint64(time.Now().UnixNano())
			}
			p, err := c.editSession(cmd.Context(), args[0], func(p *plan.Plan) error {
				p.Shuffle(newRand(seed))
				return nil
			})
			if err != nil {
				return err
			}
			printSuccess("Shuffled %d students", p.Board().Len())
			printDetail("Seed: %d", seed)
			printPlanStats(p)
			return nil
		},
	}

	cmd.Flags().Uint64Var(&seed, "seed", 0, "random seed for a reproducible shuffle")
	return cmd
}

// newRand returns a PCG generator seeded with seed.
func newRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// renameCommand creates the rename command.
func (c *CLI) renameCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "rename <session.json> <seat|name> <new-name>",
		Short: "Rename a student",
		Long: `Rename the student on a seat (numbered from 1) or with the given name.
The label is refitted to the seat.`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			var old string
			_, err := c.editSession(cmd.Context(), args[0], func(p *plan.Plan) error {
				e, err := p.Resolve(args[1])
				if err != nil {
					return err
				}
				old = e.Name
				return p.Rename(e.ID, args[2])
			})
			if err != nil {
				return err
			}
			printSuccess("Renamed %s %s %s", old, iconArrow, args[2])
			return nil
		},
	}
}

// removeCommand creates the remove command.
func (c *CLI) removeCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "remove <session.json> <seat|name>",
		Aliases: []string{"rm"},
		Short:   "Remove a student",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var name string
			p, err := c.editSession(cmd.Context(), args[0], func(p *plan.Plan) error {
				e, err := p.Resolve(args[1])
				if err != nil {
					return err
				}
				name = e.Name
				return p.Remove(e.ID)
			})
			if err != nil {
				return err
			}
			printSuccess("Removed %s", name)
			printPlanStats(p)
			return nil
		},
	}
}

// resetCommand creates the reset command.
func (c *CLI) resetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "reset <session.json>",
		Short: "Remove all students, keeping class, room and layout",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var n int
			_, err := c.editSession(cmd.Context(), args[0], func(p *plan.Plan) error {
				n = p.Board().Len()
				p.Reset()
				return nil
			})
			if err != nil {
				return err
			}
			printSuccess("Removed %d students", n)
			return nil
		},
	}
}

// moveCommand creates the move command.
func (c *CLI) moveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "move <session.json> <from-seat> <to-seat>",
		Short: "Move a student to another seat",
		Long: `Move the student on one seat to another, numbered from 1.
If the target seat is taken, the two students swap.`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			from, err := parseSeat(args[1])
			if err != nil {
				return err
			}
			to, err := parseSeat(args[2])
			if err != nil {
				return err
			}

			var res seating.DropResult
			p, err := c.editSession(cmd.Context(), args[0], func(p *plan.Plan) error {
				res, err = p.Move(from, to)
				return err
			})
			if err != nil {
				return err
			}
			printDropResult(p, res)
			return nil
		},
	}
}

// parseSeat converts a 1-based seat number into a slot index.
func parseSeat(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 0, errors.New(errors.ErrCodeInvalidInput, "seat must be a number >= 1, got %q", s)
	}
	return n - 1, nil
}

// printDropResult describes the outcome of a move.
func printDropResult(p *plan.Plan, res seating.DropResult) {
	name := func(id uuid.UUID) string {
		if e, ok := p.Board().Find(id); ok {
			return e.Name
		}
		return "?"
	}
	switch res.Outcome {
	case seating.DropSwapped:
		printSuccess("Swapped %s (seat %d) and %s (seat %d)", name(res.Entity), res.To+1, name(res.Other), res.From+1)
	case seating.DropMoved:
		printSuccess("Moved %s to seat %d", name(res.Entity), res.To+1)
	default:
		printInfo("Nothing changed (%s)", res.Outcome)
	}
}
