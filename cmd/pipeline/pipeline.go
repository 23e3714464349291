// Package pipeline provides CLI commands for running recipe files.
package pipeline

import "github.com/spf13/cobra"

// NewCommand returns the pipeline subcommand group.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pipeline",
		Short: "Run multi-step excel recipes defined in YAML",
		Long:  "Execute recipes that chain excel count, cat, to-csv and split steps, passing each step's output to the next.",
	}

	cmd.AddCommand(newRunCommand())

	return cmd
}
