package cli

import (
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/seatplan/internal/config"
	"github.com/matzehuels/seatplan/pkg/layout"
)

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for seatplan.

Session arguments complete to .json files, and --layout and "layouts show"
complete to layout numbers with the layout name as description.

Bash:
  $ source <(seatplan completion bash)

Zsh:
  $ seatplan completion zsh > "${fpath[1]}/_seatplan"

Fish:
  $ seatplan completion fish > ~/.config/fish/completions/seatplan.fish

PowerShell:
  PS> seatplan completion powershell | Out-String | Invoke-Expression`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(os.Stdout, true)
			case "zsh":
				return cmd.Root().GenZshCompletion(os.Stdout)
			case "fish":
				return cmd.Root().GenFishCompletion(os.Stdout, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(os.Stdout)
			}
			return nil
		},
	}

	return cmd
}

// registerCompletions gives every command that takes a session file as
// its first argument .json completion.
func registerCompletions(cmd *cobra.Command) {
	for _, sub := range cmd.Commands() {
		if strings.Contains(sub.Use, "<session.json>") && sub.ValidArgsFunction == nil {
			sub.ValidArgsFunction = completeSession
		}
		registerCompletions(sub)
	}
}

func completeSession(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
	if len(args) == 0 {
		return []string{"json"}, cobra.ShellCompDirectiveFilterFileExt
	}
	return nil, cobra.ShellCompDirectiveDefault
}

// completeLayouts completes the layout argument of "layouts show".
func (c *CLI) completeLayouts(_ *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return c.layoutCandidates(toComplete), cobra.ShellCompDirectiveNoFileComp
}

// completeLayoutFlag completes --layout.
func (c *CLI) completeLayoutFlag(_ *cobra.Command, _ []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	return c.layoutCandidates(toComplete), cobra.ShellCompDirectiveNoFileComp
}

// layoutCandidates offers layout numbers described by their names. Once
// the word no longer looks like a number, matching names are offered
// instead.
func (c *CLI) layoutCandidates(toComplete string) []string {
	var out []string
	for i, name := range c.completionRegistry().Names() {
		num := strconv.Itoa(i + 1)
		switch {
		case strings.HasPrefix(num, toComplete):
			out = append(out, num+"\t"+name)
		case strings.HasPrefix(strings.ToLower(name), strings.ToLower(toComplete)):
			out = append(out, name)
		}
	}
	return out
}

func completeOrientation(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return []string{string(layout.Portrait), string(layout.Landscape)}, cobra.ShellCompDirectiveNoFileComp
}

// completionRegistry loads the configured layouts. Completion can run
// before the root command's config hook, so the file is read here.
func (c *CLI) completionRegistry() *layout.Registry {
	if cfg, err := config.Load(c.configPath); err == nil {
		c.Config = cfg
	}
	reg, err := c.registry()
	if err != nil {
		return layout.NewRegistry()
	}
	return reg
}
