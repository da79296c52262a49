package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/oddkernel/pkg/graph"
)

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for oddkernel.

Besides commands and flags, the scripts complete graph collection files,
--identity and --format values, and graph names for pairwise:

  $ oddkernel pairwise mutag.json <TAB>

Bash:
  $ source <(oddkernel completion bash)

Zsh:
  $ oddkernel completion zsh > "${fpath[1]}/_oddkernel"

Fish:
  $ oddkernel completion fish > ~/.config/fish/completions/oddkernel.fish

PowerShell:
  PS> oddkernel completion powershell | Out-String | Invoke-Expression
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(out, true)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			default:
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
		},
	}
}

// completeCollections completes up to n graph collection files.
func completeCollections(n int) cobra.CompletionFunc {
	return func(cmd *cobra.Command, args []string, toComplete string) ([]cobra.Completion, cobra.ShellCompDirective) {
		if len(args) >= n {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		return []cobra.Completion{"json"}, cobra.ShellCompDirectiveFilterFileExt
	}
}

// completeGraphs completes the collection file, then graph names read from it.
func completeGraphs(cmd *cobra.Command, args []string, toComplete string) ([]cobra.Completion, cobra.ShellCompDirective) {
	switch len(args) {
	case 0:
		return completeCollections(1)(cmd, args, toComplete)
	case 1, 2:
		named, err := graph.ImportCollection(args[0])
		if err != nil {
			return nil, cobra.ShellCompDirectiveError
		}
		var names []cobra.Completion
		for _, n := range named {
			if n.Name != "" && strings.HasPrefix(n.Name, toComplete) {
				names = append(names, n.Name)
			}
		}
		return names, cobra.ShellCompDirectiveNoFileComp
	}
	return nil, cobra.ShellCompDirectiveNoFileComp
}

var completeIdentity = cobra.FixedCompletions(
	[]cobra.Completion{"string\tnested label strings", "hashed\txxhash64 digests"},
	cobra.ShellCompDirectiveNoFileComp,
)
