// Package excel provides CLI commands for inspecting and converting .xlsx files.
package excel

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/klytics/devkit/internal/excel"
)

// options holds the flags shared by every excel subcommand.
type options struct {
	input string
}

// NewCommand returns the excel subcommand group.
func NewCommand() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "excel",
		Short: "Work with excel file tools",
		Long: `Inspect and convert one sheet of an .xlsx file.

Examples:
  devkit excel -i data.xlsx count
  devkit excel -i data.xlsx -s Totals cat --row 10 --column 3
  devkit excel -i data.xlsx to-csv -o data.csv
  devkit excel -i data.xlsx split --line 1000 --header`,
	}

	cmd.PersistentFlags().StringVarP(&opts.input, "input", "i", "", "Path to the input xlsx file (required)")
	cmd.PersistentFlags().StringP("sheet-name", "s", "Sheet1", "Excel sheet name")
	_ = cmd.MarkPersistentFlagRequired("input")
	_ = viper.BindPFlag("excel.sheet_name", cmd.PersistentFlags().Lookup("sheet-name"))

	cmd.AddCommand(newCountCommand(opts))
	cmd.AddCommand(newCatCommand(opts))
	cmd.AddCommand(newToCSVCommand(opts))
	cmd.AddCommand(newSplitCommand(opts))
	cmd.AddCommand(newWatchCommand(opts))

	return cmd
}

// job returns a job for op against the selected input and sheet.
func (o *options) job(op excel.Op) excel.Job {
	return excel.Job{
		Op:      op,
		Input:   o.input,
		Sheet:   viper.GetString("excel.sheet_name"),
		Rows:    -1,
		Columns: -1,
	}
}
