// Package cmd contains all CLI commands for the devkit binary.
package cmd

import (
	"context"
	"io"
	"os"
	"os/signal"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/klytics/devkit/cmd/batch"
	"github.com/klytics/devkit/cmd/completion"
	cmdconfig "github.com/klytics/devkit/cmd/config"
	"github.com/klytics/devkit/cmd/excel"
	"github.com/klytics/devkit/cmd/jsonfmt"
	"github.com/klytics/devkit/cmd/md5"
	"github.com/klytics/devkit/cmd/pipeline"
	cmdshell "github.com/klytics/devkit/cmd/shell"
	"github.com/klytics/devkit/cmd/version"
	"github.com/klytics/devkit/internal/config"
	"github.com/klytics/devkit/internal/output"
	"github.com/klytics/devkit/internal/shell"
)

func init() {
	shell.DefaultRunner = Run
}

// NewRootCommand creates and returns the root cobra command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	var (
		verbose bool
		noColor bool
	)

	rootCmd := &cobra.Command{
		Use:   "devkit",
		Short: "Command line development tools",
		Long: `devkit bundles small format and data helpers behind one binary.

Inspect, convert and split xlsx sheets, pretty-print JSON, hash strings,
and chain excel jobs in YAML recipes.`,
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if noColor || !viper.GetBool("output.color") {
				color.NoColor = true
			}
			setupLogging(cmd.ErrOrStderr(), verbose)
		},
	}

	rootCmd.PersistentFlags().Bool("json", false, "Output as machine-readable JSON")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable ANSI color output")
	rootCmd.PersistentFlags().Bool("legacy-errors", false, "Print errors to stdout and exit 0")
	_ = viper.BindPFlag("errors.legacy", rootCmd.PersistentFlags().Lookup("legacy-errors"))

	rootCmd.AddCommand(excel.NewCommand())
	rootCmd.AddCommand(jsonfmt.NewCommand())
	rootCmd.AddCommand(md5.NewCommand())
	rootCmd.AddCommand(batch.NewCommand())
	rootCmd.AddCommand(pipeline.NewCommand())
	rootCmd.AddCommand(cmdshell.NewCommand())
	rootCmd.AddCommand(cmdconfig.NewCommand())
	rootCmd.AddCommand(completion.NewCommand(rootCmd))
	rootCmd.AddCommand(version.NewCommand())

	return rootCmd
}

// setupLogging sends diagnostics to w: warnings by default, everything with --verbose.
func setupLogging(w io.Writer, verbose bool) {
	logrus.SetOutput(w)
	logrus.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
		DisableColors:    color.NoColor,
	})
	if verbose {
		logrus.SetLevel(logrus.DebugLevel)
	} else {
		logrus.SetLevel(logrus.WarnLevel)
	}
}

// Run executes one devkit command line against the given streams.
func Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	_, err := execute(ctx, args, stdout, stderr)
	return err
}

// execute runs args and also returns the command that handled them.
func execute(ctx context.Context, args []string, stdout, stderr io.Writer) (*cobra.Command, error) {
	rootCmd := NewRootCommand()
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	return rootCmd.ExecuteContextC(ctx)
}

// errorPolicy builds the reporting policy for a finished command. With
// --json, failures are written as a JSON result for that command.
func errorPolicy(c *cobra.Command, stdout, stderr io.Writer) output.ErrorPolicy {
	p := output.ErrorPolicy{
		Legacy: viper.GetBool("errors.legacy"),
		Stdout: stdout,
		Stderr: stderr,
	}
	if c != nil {
		// jsonfmt shadows --json with a string flag; GetBool fails there.
		if jsonFlag, err := c.Flags().GetBool("json"); err == nil && jsonFlag {
			p.JSON = true
			p.Command = c.CommandPath()
		}
	}
	return p
}

// Execute runs the root command and handles any returned errors.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if _, err := config.Load(); err != nil {
		policy := output.ErrorPolicy{Stdout: os.Stdout, Stderr: os.Stderr}
		os.Exit(policy.Report(err))
	}

	c, err := execute(ctx, os.Args[1:], os.Stdout, os.Stderr)
	code := errorPolicy(c, os.Stdout, os.Stderr).Report(err)
	stop()
	os.Exit(code)
}
