package excel

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/klytics/devkit/internal/excel"
)

func newCatCommand(opts *options) *cobra.Command {
	var (
		row    uint
		column uint
	)

	cmd := &cobra.Command{
		Use:   "cat",
		Short: "Preview the xlsx file",
		Long: `Prints the sheet as tab-separated lines. --row and --column bound the
preview window; values larger than the sheet are clamped to its size.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			job := opts.job(excel.OpCat)
			if cmd.Flags().Changed("row") {
				job.Rows = int(row)
			}
			if cmd.Flags().Changed("column") {
				job.Columns = int(column)
			}
			job.TrailingTab = viper.GetBool("excel.trailing_tab")

			_, err := excel.Run(cmd.OutOrStdout(), job)
			return err
		},
	}

	cmd.Flags().UintVarP(&row, "row", "r", 0, "Number of lines to preview (default: all)")
	cmd.Flags().UintVarP(&column, "column", "c", 0, "Number of columns to preview (default: all)")
	cmd.Flags().Bool("trailing-tab", false, "Follow every field, including the last, with a tab")
	_ = viper.BindPFlag("excel.trailing_tab", cmd.Flags().Lookup("trailing-tab"))

	return cmd
}
