package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/seatplan/pkg/errors"
	"github.com/matzehuels/seatplan/pkg/geometry"
	"github.com/matzehuels/seatplan/pkg/layout"
)

// layoutsCommand creates the layouts command group.
func (c *CLI) layoutsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "layouts",
		Aliases: []string{"layout"},
		Short:   "Inspect classroom layouts",
	}

	cmd.AddCommand(c.layoutsListCommand())
	cmd.AddCommand(c.layoutsShowCommand())
	cmd.AddCommand(c.layoutsValidateCommand())

	return cmd
}

// layoutsListCommand creates the "layouts list" subcommand.
func (c *CLI) layoutsListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List available layouts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := c.registry()
			if err != nil {
				return err
			}
			fmt.Println(layoutTable(reg))
			return nil
		},
	}
}

// layoutTable renders the registry as a table with one row per layout.
func layoutTable(reg *layout.Registry) string {
	var rows [][]string
	for i, name := range reg.Names() {
		cfg, _ := reg.Get(name)
		topo, err := layout.Resolve(cfg)
		if err != nil {
			continue
		}
		g := geometry.Compute(topo, geometry.PageFor(cfg.Orientation()), 1)
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			name,
			cfg.Describe(),
			strconv.Itoa(g.SlotCount()),
			strconv.Itoa(g.SeatSize),
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("#", "Layout", "Shape", "Seats", "Seat size").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == -1:
				return headerStyle
			case col == 0:
				return lipgloss.NewStyle().Foreground(colorDim)
			case col >= 3:
				return StyleNumber
			}
			return lipgloss.NewStyle()
		}).
		Render()
}

// layoutsShowCommand creates the "layouts show" subcommand.
func (c *CLI) layoutsShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:               "show <name|number>",
		Short:             "Show a layout's geometry and a sketch of its banks",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: c.completeLayouts,
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := c.registry()
			if err != nil {
				return err
			}
			name, err := resolveLayoutName(reg, args[0])
			if err != nil {
				return err
			}
			cfg, _ := reg.Get(name)
			printLayout(name, cfg)
			return nil
		},
	}
}

// layoutsValidateCommand creates the "layouts validate" subcommand.
func (c *CLI) layoutsValidateCommand() *cobra.Command {
	var lf layoutFlags

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check a custom layout without creating a session",
		Example: `  seatplan layouts validate --rows 4 --banks 3 --seats 2
  seatplan layouts validate --custom-pattern "[4], [3, 3, 3]"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !lf.custom() {
				return errors.New(errors.ErrCodeInvalidInput, "give --custom-pattern or --rows, --banks and --seats")
			}
			cfg, err := lf.config()
			if err != nil {
				return err
			}
			if _, err := layout.Resolve(cfg); err != nil {
				return err
			}
			printSuccess("Layout is valid")
			printLayout(layout.CustomName, cfg)
			return nil
		},
	}

	lf.register(cmd)
	return cmd
}

// printLayout prints the key figures of cfg and a text sketch of its rows.
// cfg must resolve.
func printLayout(name string, cfg layout.Config) {
	topo, _ := layout.Resolve(cfg)
	g := geometry.Compute(topo, geometry.PageFor(cfg.Orientation()), 1)

	fmt.Println(StyleTitle.Render(name))
	printKeyValue("Shape", cfg.Describe())
	if irr, ok := cfg.(layout.Irregular); ok {
		printKeyValue("Pattern", layout.FormatPattern(irr.Pattern))
	}
	printKeyValue("Page", fmt.Sprintf("%s (%.0f × %.0f pt)", cfg.Orientation(), g.Page.W, g.Page.H))
	printKeyValue("Seats", strconv.Itoa(g.SlotCount()))
	printKeyValue("Seat size", fmt.Sprintf("%d pt", g.SeatSize))
	printNewline()
	fmt.Println(sketch(topo))
}

// sketch draws each row as bracketed banks of seat marks, centered above
// a board line.
func sketch(topo layout.Topology) string {
	lines := make([]string, topo.Rows())
	for r := range lines {
		banks := make([]string, topo.BanksInRow(r))
		for b := range banks {
			banks[b] = "[" + strings.Repeat("■", topo.SeatsInBank(r, b)) + "]"
		}
		lines[r] = strings.Join(banks, "  ")
	}
	board := lipgloss.NewStyle().Foreground(colorDim).Render("── board ──")
	lines = append(lines, board)
	return lipgloss.JoinVertical(lipgloss.Center, lines...)
}

// resolveLayoutName accepts an exact layout name, a 1-based number from
// 'layouts list', or a unique case-insensitive name prefix.
func resolveLayoutName(reg *layout.Registry, ref string) (string, error) {
	names := reg.Names()
	if _, ok := reg.Get(ref); ok {
		return ref, nil
	}
	if n, err := strconv.Atoi(ref); err == nil {
		if n >= 1 && n <= len(names) {
			return names[n-1], nil
		}
		return "", errors.New(errors.ErrCodeNotFound, "layout number %d out of range 1..%d", n, len(names))
	}
	var match string
	for _, name := range names {
		if strings.HasPrefix(strings.ToLower(name), strings.ToLower(ref)) {
			if match != "" {
				return "", errors.New(errors.ErrCodeInvalidInput, "layout %q is ambiguous", ref)
			}
			match = name
		}
	}
	if match == "" {
		return "", errors.New(errors.ErrCodeNotFound, "unknown layout %q", ref)
	}
	return match, nil
}
