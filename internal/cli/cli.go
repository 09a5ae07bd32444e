package cli

import (
	"context"
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/seatplan/internal/config"
	"github.com/matzehuels/seatplan/pkg/buildinfo"
	"github.com/matzehuels/seatplan/pkg/cache"
	"github.com/matzehuels/seatplan/pkg/errors"
	"github.com/matzehuels/seatplan/pkg/layout"
	"github.com/matzehuels/seatplan/pkg/photogrid"
	"github.com/matzehuels/seatplan/pkg/pipeline"
	"github.com/matzehuels/seatplan/pkg/plan"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "seatplan"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	Config config.Config

	configPath string
	noCache    bool
}

// New creates a new CLI instance with a default logger and the built-in
// configuration. The configuration file is read when a command runs.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: config.Default(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Seatplan arranges student photos on a classroom seating chart",
		Long:         `Seatplan imports student photos from a folder or a scanned photo sheet, seats them on a classroom layout of rows and banks, and exports the chart as PDF, SVG, PNG, JSON or a CSV roster.`,
		Version:      buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(c.configPath)
			if err != nil {
				return err
			}
			c.Config = cfg
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $SEATPLAN_CONFIG or ~/.config/seatplan/config.toml)")
	root.PersistentFlags().BoolVar(&c.noCache, "no-cache", false, "disable the photo crop cache")

	// Register all subcommands
	root.AddCommand(c.newCommand())
	root.AddCommand(c.layoutsCommand())
	root.AddCommand(c.importCommand())
	root.AddCommand(c.shuffleCommand())
	root.AddCommand(c.renameCommand())
	root.AddCommand(c.removeCommand())
	root.AddCommand(c.resetCommand())
	root.AddCommand(c.moveCommand())
	root.AddCommand(c.exportCommand())
	root.AddCommand(c.boardCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())
	registerCompletions(root)

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner() (*pipeline.Runner, error) {
	cache, err := c.newCache()
	if err != nil {
		return nil, err
	}
	raster := photogrid.Pdftoppm{Bin: c.Config.Tools.Pdftoppm}
	return pipeline.NewRunner(cache, nil, raster, c.Logger), nil
}

func (c *CLI) newCache() (cache.Cache, error) {
	if c.noCache || c.Config.Cache.Disabled {
		return cache.NewNullCache(), nil
	}
	dir, err := c.cacheDir()
	if err != nil {
		c.Logger.Debug("cache disabled", "error", err)
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// cacheDir returns the configured cache directory or the XDG default
// (~/.cache/seatplan/).
func (c *CLI) cacheDir() (string, error) {
	if c.Config.Cache.Dir != "" {
		return c.Config.Cache.Dir, nil
	}
	return cache.DefaultDir()
}

// registry returns the built-in layouts plus those from the config file.
func (c *CLI) registry() (*layout.Registry, error) {
	return c.Config.Registry()
}

// =============================================================================
// Session Helpers
// =============================================================================

// openPlan loads a session and reports photos that had to be replaced.
func (c *CLI) openPlan(ctx context.Context, r *pipeline.Runner, path string) (*plan.Plan, error) {
	reg, err := c.registry()
	if err != nil {
		return nil, err
	}
	p, res, err := r.Open(ctx, reg, path)
	if err != nil {
		return nil, err
	}
	for _, w := range res.Warnings {
		printWarning("%s", errors.UserMessage(w))
	}
	if res.Placeholders > 0 {
		printWarning("%d photo(s) could not be recovered and show a placeholder", res.Placeholders)
	}
	return p, nil
}

// editSession opens the session at path, applies fn and saves it back.
func (c *CLI) editSession(ctx context.Context, path string, fn func(p *plan.Plan) error) (*plan.Plan, error) {
	r, err := c.newRunner()
	if err != nil {
		return nil, err
	}
	defer r.Close()

	p, err := c.openPlan(ctx, r, path)
	if err != nil {
		return nil, err
	}
	if err := fn(p); err != nil {
		return nil, err
	}
	if err := r.Save(ctx, p, path); err != nil {
		return nil, err
	}
	return p, nil
}

// =============================================================================
// Options Helpers
// =============================================================================

// parseFormats parses a comma-separated format string into a slice.
// An empty string yields the configured default formats.
func (c *CLI) parseFormats(s string) []string {
	if s == "" {
		if len(c.Config.Defaults.Formats) > 0 {
			return c.Config.Defaults.Formats
		}
		return []string{pipeline.DefaultFormat}
	}
	var formats []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.ToLower(strings.TrimSpace(f)); f != "" {
			formats = append(formats, f)
		}
	}
	return formats
}
