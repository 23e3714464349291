package excel

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/klytics/devkit/internal/excel"
	"github.com/klytics/devkit/internal/watch"
)

func newWatchCommand(opts *options) *cobra.Command {
	var (
		action string
		out    string
		line   int
		header bool
	)

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Re-run to-csv or split whenever the input file changes",
		Long: `Runs the action once, then again after every save of the input file,
until interrupted with Ctrl+C. A failed run is logged and watching continues.

Examples:
  devkit excel -i data.xlsx watch --action to-csv --output data.csv
  devkit excel -i data.xlsx watch --action split --line 500 --header`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			op, err := excel.ParseOp(action)
			if err != nil {
				return err
			}
			if op != excel.OpToCSV && op != excel.OpSplit {
				return fmt.Errorf("--action must be to-csv or split, got %q", action)
			}

			job := opts.job(op)
			job.Output = out
			job.Encoding = viper.GetString("csv.encoding")
			job.Line = line
			job.Header = header
			job.NoClobber = viper.GetBool("excel.no_clobber")

			w := cmd.OutOrStdout()
			run := func(string) error {
				res, err := excel.Run(w, job)
				if err != nil {
					return err
				}
				color.New(color.FgGreen).Fprintf(w, "[%s] %s: wrote %d file(s)\n",
					time.Now().Format("15:04:05"), op, len(res.Files))
				return nil
			}

			if err := run(opts.input); err != nil {
				logrus.WithField("watch", opts.input).WithError(err).Error("run failed")
			}

			debounce := time.Duration(viper.GetInt("watch.debounce_ms")) * time.Millisecond
			watcher, err := watch.New(watch.Config{Path: opts.input, Debounce: debounce}, run)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
			defer stop()

			color.New(color.FgCyan).Fprintf(w, "Watching %s (Ctrl+C to stop)\n", opts.input)
			return watcher.Start(ctx)
		},
	}

	cmd.Flags().StringVar(&action, "action", "to-csv", "Action to re-run: to-csv | split")
	cmd.Flags().StringVarP(&out, "output", "o", "", "Output csv file path (to-csv)")
	cmd.Flags().IntVarP(&line, "line", "l", 0, "Rows per output file (split)")
	cmd.Flags().BoolVar(&header, "header", false, "Repeat the header row in every file (split)")

	return cmd
}
