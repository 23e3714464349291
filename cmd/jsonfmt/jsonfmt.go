// Package jsonfmt provides the JSON pretty-print command.
package jsonfmt

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/klytics/devkit/internal/textutil"
)

// NewCommand returns the jsonfmt command.
func NewCommand() *cobra.Command {
	var (
		text string
		file string
	)

	cmd := &cobra.Command{
		Use:     "jsonfmt",
		Aliases: []string{"jsn-fmt"},
		Short:   "Json string format",
		Long: `Re-indents a JSON document with four spaces per level.

Reads the document from --json, from --file, or from stdin when neither is given.

Examples:
  devkit jsonfmt --json '{"a":1}'
  devkit jsonfmt --file response.json
  curl -s https://example.com/api | devkit jsonfmt`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var data []byte
			switch {
			case cmd.Flags().Changed("json"):
				data = []byte(text)
			case file != "":
				b, err := os.ReadFile(file)
				if err != nil {
					return fmt.Errorf("could not read %s: %w", file, err)
				}
				data = b
			default:
				b, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return fmt.Errorf("could not read stdin: %w", err)
				}
				data = b
			}

			pretty, err := textutil.PrettyJSON(data)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), pretty)
			return nil
		},
	}

	cmd.Flags().StringVarP(&text, "json", "j", "", "The JSON string that needs to be formatted")
	cmd.Flags().StringVarP(&file, "file", "f", "", "Read the JSON document from a file")
	cmd.MarkFlagsMutuallyExclusive("json", "file")

	return cmd
}
