package pipeline

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/klytics/devkit/internal/output"
	pipelinepkg "github.com/klytics/devkit/internal/pipeline"
	"github.com/klytics/devkit/internal/pipeline/actions"
)

func newRunCommand() *cobra.Command {
	var (
		dryRun  bool
		envFile string
	)

	cmd := &cobra.Command{
		Use:   "run <recipe.yaml>",
		Short: "Execute a recipe from a YAML file",
		Long: `Runs a multi-step recipe defined in a YAML file.

Steps are executed sequentially with variable interpolation between steps:
  ${{ steps.<id>.output }}  output of an earlier step
  ${{ env.NAME }}           environment variable
  ${{ date.today }}         current date (YYYY-MM-DD)

Use --dry-run to run read-only steps and preview the files other steps would write.
Use --env-file to load KEY=value pairs for ${{ env.NAME }} from a .env file;
variables already set in the environment win.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonFlag, _ := cmd.Flags().GetBool("json")
			verbose, _ := cmd.Flags().GetBool("verbose")

			if envFile != "" {
				if err := godotenv.Load(envFile); err != nil {
					return fmt.Errorf("could not load env file %s: %w", envFile, err)
				}
			}

			p, err := pipelinepkg.LoadPipeline(args[0])
			if err != nil {
				return err
			}

			executor := pipelinepkg.NewExecutor()
			executor.SetDryRun(dryRun)
			actions.RegisterAll(executor)

			results, execErr := executor.Run(cmd.Context(), p)

			w := cmd.OutOrStdout()
			if jsonFlag {
				// errors don't serialize well
				type jsonResult struct {
					StepID string `json:"stepId"`
					Output string `json:"output,omitempty"`
					Error  string `json:"error,omitempty"`
				}
				out := make([]jsonResult, len(results))
				for i, r := range results {
					out[i] = jsonResult{StepID: r.StepID, Output: r.Output}
					if r.Error != nil {
						out[i].Error = r.Error.Error()
					}
				}
				if err := output.PrintJSON(w, "pipeline run", out); err != nil {
					return err
				}
				return output.Reported(execErr)
			}

			for _, r := range results {
				if r.Error != nil {
					color.New(color.FgYellow).Fprintf(cmd.ErrOrStderr(), "Step %s: FAILED — %s\n", r.StepID, r.Error)
					continue
				}
				color.New(color.FgGreen).Fprintf(w, "Step %s: OK\n", r.StepID)
				if verbose && r.Output != "" {
					fmt.Fprintf(w, "  Output: %s\n", truncate(r.Output, 200))
				}
			}

			return execErr
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Run read-only steps and skip steps that write files")
	cmd.Flags().StringVar(&envFile, "env-file", "", "Load environment variables from a .env file before running")

	return cmd
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
