// Package batch provides the command that runs one excel operation over many files.
package batch

import (
	"fmt"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/klytics/devkit/internal/excel"
	"github.com/klytics/devkit/internal/formats/xlsx"
	"github.com/klytics/devkit/internal/output"
	"github.com/klytics/devkit/internal/progress"
)

// NewCommand returns the batch subcommand.
func NewCommand() *cobra.Command {
	var (
		action      string
		sheet       string
		outDir      string
		line        int
		header      bool
		concurrency int
	)

	cmd := &cobra.Command{
		Use:   "batch <glob-pattern>",
		Short: "Run one excel operation on every file matching a pattern",
		Long: `Applies count, cat, to-csv or split to all files matching a glob pattern.

to-csv writes <name>.csv next to each input, or into --out-dir.
On error, the batch logs the failure and continues to the next file.

Examples:
  devkit batch 'reports/*.xlsx' --action count
  devkit batch 'reports/*.xlsx' --action to-csv --out-dir csv --concurrency 4
  devkit batch 'reports/*.xlsx' --action split --line 1000 --header`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonFlag, _ := cmd.Flags().GetBool("json")

			op, err := excel.ParseOp(action)
			if err != nil {
				return err
			}
			if op == excel.OpSplit && line <= 0 {
				return fmt.Errorf("%w: --line is required for split", xlsx.ErrInvalidArgument)
			}

			files, err := excel.Expand(args[0])
			if err != nil {
				return err
			}

			if sheet == "" {
				sheet = viper.GetString("excel.sheet_name")
			}

			bar := progress.New("batch", len(files), jsonFlag)
			b := &excel.Batch{
				Template: excel.Job{
					Op:          op,
					Sheet:       sheet,
					Rows:        xlsx.All,
					Columns:     xlsx.All,
					TrailingTab: viper.GetBool("excel.trailing_tab"),
					Encoding:    viper.GetString("csv.encoding"),
					Line:        line,
					Header:      header,
					NoClobber:   viper.GetBool("excel.no_clobber"),
				},
				OutDir:      outDir,
				Concurrency: concurrency,
				OnDone: func(done, total int, item excel.BatchItem) {
					bar.Set(done, total, filepath.Base(item.File))
				},
			}

			items, err := b.Run(files)
			if err != nil {
				return err
			}
			succeeded, failed := excel.Summarize(items)

			var runErr error
			if failed > 0 {
				runErr = fmt.Errorf("%d of %d files failed, first: %w", failed, len(files), excel.FirstError(items))
			}

			w := cmd.OutOrStdout()
			if jsonFlag {
				if err := output.PrintJSON(w, "batch", items); err != nil {
					return err
				}
				return output.Reported(runErr)
			}

			bar.Finish(fmt.Sprintf("%d files processed", len(files)))
			for _, it := range items {
				if it.Status != "ok" {
					color.New(color.FgRed).Fprintf(w, "%s: %s\n", it.File, it.Error)
					continue
				}
				switch op {
				case excel.OpCount, excel.OpCat:
					fmt.Fprintf(w, "==> %s <==\n%s", it.File, it.Output)
				default:
					for _, f := range it.Result.Files {
						fmt.Fprintf(w, "  %s\n", f)
					}
				}
			}

			summary := color.New(color.FgGreen)
			if failed > 0 {
				summary = color.New(color.FgYellow)
			}
			summary.Fprintf(w, "\nProcessed %d files. %d succeeded, %d failed.\n", len(files), succeeded, failed)
			return runErr
		},
	}

	cmd.Flags().StringVar(&action, "action", "", "Operation to perform: count | cat | to-csv | split (required)")
	cmd.Flags().StringVarP(&sheet, "sheet-name", "s", "", "Excel sheet name (default from config)")
	cmd.Flags().StringVar(&outDir, "out-dir", "", "Output directory for to-csv results")
	cmd.Flags().IntVarP(&line, "line", "l", 0, "Rows per chunk for split")
	cmd.Flags().BoolVar(&header, "header", false, "Repeat the first row in every split chunk")
	cmd.Flags().IntVar(&concurrency, "concurrency", 1, "Number of parallel workers")
	_ = cmd.MarkFlagRequired("action")

	return cmd
}
