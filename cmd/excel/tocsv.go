package excel

import (
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/klytics/devkit/internal/excel"
	"github.com/klytics/devkit/internal/formats/convert"
	"github.com/klytics/devkit/internal/output"
)

func newToCSVCommand(opts *options) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "to-csv",
		Short: "Convert the xlsx file to a csv file",
		Long: `Writes the sheet as CSV. An output path ending in .gz, .zst or .xz is
compressed; --encoding transcodes the text for tools that expect a legacy
code page.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonFlag, _ := cmd.Flags().GetBool("json")

			job := opts.job(excel.OpToCSV)
			job.Output = out
			job.Encoding = viper.GetString("csv.encoding")

			res, err := excel.Run(cmd.OutOrStdout(), job)
			if err != nil {
				return err
			}

			if jsonFlag {
				return output.PrintJSON(cmd.OutOrStdout(), "excel to-csv", res)
			}
			color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "Wrote %s (%d rows, %d columns)\n", out, res.Rows, res.Columns)
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "output", "o", "", "Output csv file path (required)")
	cmd.Flags().String("encoding", "utf-8", "Output character set: "+strings.Join(convert.Encodings(), ", "))
	_ = cmd.MarkFlagRequired("output")
	_ = viper.BindPFlag("csv.encoding", cmd.Flags().Lookup("encoding"))

	return cmd
}
