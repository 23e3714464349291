// Package shell provides the "devkit shell" interactive REPL command.
package shell

import (
	"fmt"

	"github.com/spf13/cobra"

	shellpkg "github.com/klytics/devkit/internal/shell"
)

// NewCommand creates the "shell" command.
func NewCommand() *cobra.Command {
	var (
		evalCmd string
		input   string
		sheet   string
	)

	cmd := &cobra.Command{
		Use:   "shell",
		Short: "Start an interactive devkit shell",
		Long: `Start an interactive REPL with history and tab completion.

History is kept in ~/.devkit/shell_history. Use "set input <path>" and
"set sheet <name>" to avoid repeating --input and --sheet-name on every
excel command.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := shellpkg.NewSession()
			if err != nil {
				return err
			}
			session.Out = cmd.OutOrStdout()
			session.Err = cmd.ErrOrStderr()
			session.DefaultInput = input
			session.DefaultSheet = sheet

			if evalCmd != "" {
				output, err := session.Eval(cmd.Context(), evalCmd)
				fmt.Fprint(cmd.OutOrStdout(), output)
				return err
			}
			return session.Run(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&evalCmd, "eval", "", "Run a single command and exit")
	cmd.Flags().StringVar(&input, "input", "", "Default input xlsx file for excel commands")
	cmd.Flags().StringVar(&sheet, "sheet-name", "", "Default sheet name for excel commands")
	return cmd
}
