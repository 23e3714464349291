package excel

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/klytics/devkit/internal/excel"
	"github.com/klytics/devkit/internal/output"
)

func newCountCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "count",
		Short: "Count the rows and columns of the xlsx file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonFlag, _ := cmd.Flags().GetBool("json")

			if jsonFlag {
				res, err := excel.Run(io.Discard, opts.job(excel.OpCount))
				if err != nil {
					return err
				}
				return output.PrintJSON(cmd.OutOrStdout(), "excel count", res)
			}

			_, err := excel.Run(cmd.OutOrStdout(), opts.job(excel.OpCount))
			return err
		},
	}
}
