package excel

import (
	"fmt"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/klytics/devkit/internal/excel"
	"github.com/klytics/devkit/internal/output"
	"github.com/klytics/devkit/internal/progress"
)

func newSplitCommand(opts *options) *cobra.Command {
	var (
		line   int
		header bool
	)

	cmd := &cobra.Command{
		Use:   "split",
		Short: "Split the xlsx file by line",
		Long: `Writes the sheet's rows to <input>.1.xlsx, <input>.2.xlsx, ... with at most
--line data rows each. With --header the first row is repeated at the top of
every file. Existing files with those names are overwritten unless
--no-clobber is set.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonFlag, _ := cmd.Flags().GetBool("json")

			job := opts.job(excel.OpSplit)
			job.Line = line
			job.Header = header
			job.NoClobber = viper.GetBool("excel.no_clobber")

			bar := progress.New("split", 0, jsonFlag)
			job.OnChunk = func(n, total int, path string) {
				bar.Set(n, total, filepath.Base(path))
			}

			res, err := excel.Run(cmd.OutOrStdout(), job)
			if err != nil {
				return err
			}

			if jsonFlag {
				return output.PrintJSON(cmd.OutOrStdout(), "excel split", res)
			}

			bar.Finish(fmt.Sprintf("%d files written", len(res.Files)))

			w := cmd.OutOrStdout()
			if len(res.Files) == 0 {
				color.New(color.FgHiBlack).Fprintln(w, "No data rows to split")
				return nil
			}
			for _, f := range res.Files {
				fmt.Fprintf(w, "  %s\n", f)
			}
			color.New(color.FgGreen).Fprintf(w, "Split %s into %d files\n", opts.input, len(res.Files))
			return nil
		},
	}

	cmd.Flags().IntVarP(&line, "line", "l", 0, "The number of rows per output file (required)")
	cmd.Flags().BoolVar(&header, "header", false, "Repeat the first row as a header in every file")
	cmd.Flags().Bool("no-clobber", false, "Fail instead of overwriting an existing output file")
	_ = cmd.MarkFlagRequired("line")
	_ = viper.BindPFlag("excel.no_clobber", cmd.Flags().Lookup("no-clobber"))

	return cmd
}
