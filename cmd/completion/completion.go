// Package completion provides shell completion generation commands.
package completion

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewCommand returns the completion command.
func NewCommand(rootCmd *cobra.Command) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completions",
		Long: `Generate shell completion scripts for devkit.

Install instructions:
  Bash:       devkit completion bash > /etc/bash_completion.d/devkit
              echo 'source <(devkit completion bash)' >> ~/.bashrc
  Zsh:        devkit completion zsh > ~/.zsh/completions/_devkit
  Fish:       devkit completion fish > ~/.config/fish/completions/devkit.fish
  PowerShell: devkit completion powershell >> $PROFILE`,
		ValidArgs: []string{"bash", "zsh", "fish", "powershell"},
		Args:      cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				fmt.Fprintln(w, "# devkit bash completion")
				fmt.Fprintln(w, "# Install: devkit completion bash > /etc/bash_completion.d/devkit")
				fmt.Fprintln(w)
				return rootCmd.GenBashCompletion(w)
			case "zsh":
				fmt.Fprintln(w, "# devkit zsh completion")
				fmt.Fprintln(w, "# Install: devkit completion zsh > ~/.zsh/completions/_devkit")
				fmt.Fprintln(w)
				return rootCmd.GenZshCompletion(w)
			case "fish":
				fmt.Fprintln(w, "# devkit fish completion")
				fmt.Fprintln(w, "# Install: devkit completion fish > ~/.config/fish/completions/devkit.fish")
				fmt.Fprintln(w)
				return rootCmd.GenFishCompletion(w, true)
			case "powershell":
				fmt.Fprintln(w, "# devkit PowerShell completion")
				fmt.Fprintln(w, "# Install: devkit completion powershell >> $PROFILE")
				fmt.Fprintln(w)
				return rootCmd.GenPowerShellCompletionWithDesc(w)
			default:
				return fmt.Errorf("unsupported shell: %s (supported: bash, zsh, fish, powershell)", args[0])
			}
		},
	}
	return cmd
}
