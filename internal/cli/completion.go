package cli

import (
	"github.com/spf13/cobra"
)

// completionCommand prints shell completion scripts.
func (c *CLI) completionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate a shell completion script for anchor.

Besides command and flag names, the scripts complete widget profile names
for --widget, including profiles defined in your config file:

  $ anchor place --widget <TAB>
  context-menu  dropdown  hover-card  popover

Load for the current shell:

  bash:        source <(anchor completion bash)
  zsh:         source <(anchor completion zsh)
  fish:        anchor completion fish | source
  powershell:  anchor completion powershell | Out-String | Invoke-Expression

To load on every start, write the script to your shell's completion
directory instead, e.g. "anchor completion zsh > ${fpath[1]}/_anchor".
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(out)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
			return nil
		},
	}

	return cmd
}
