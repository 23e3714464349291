package pipeline

import (
	"context"
	"fmt"
	"os"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// ActionFunc is the signature for pipeline action handlers.
type ActionFunc func(ctx context.Context, step Step) (string, error)

// Executor runs pipeline steps sequentially, resolving variable interpolation between steps.
type Executor struct {
	actions map[string]ActionFunc
	results map[string]*StepResult
	dryRun  bool
	log     *logrus.Entry
}

// NewExecutor creates a new pipeline executor.
func NewExecutor() *Executor {
	return &Executor{
		actions: make(map[string]ActionFunc),
		results: make(map[string]*StepResult),
		log:     logrus.WithField("component", "pipeline"),
	}
}

// SetDryRun enables dry-run mode. Read-only steps execute normally; steps that
// write files are skipped with a description of what they would do.
func (e *Executor) SetDryRun(dryRun bool) {
	e.dryRun = dryRun
}

// RegisterAction adds an action handler to the executor's registry.
func (e *Executor) RegisterAction(name string, fn ActionFunc) {
	e.actions[name] = fn
}

// Run executes all steps in the pipeline sequentially.
func (e *Executor) Run(ctx context.Context, p *Pipeline) ([]StepResult, error) {
	var results []StepResult

	e.log.WithFields(logrus.Fields{"name": p.Name, "version": p.Version, "dryRun": e.dryRun}).Debug("running pipeline")

	for i, step := range p.Steps {
		if err := ctx.Err(); err != nil {
			return results, err
		}

		resolvedStep := e.resolveStepVariables(step)
		log := e.log.WithFields(logrus.Fields{"step": resolvedStep.ID, "action": resolvedStep.Action})
		log.Debugf("[%d/%d] running step", i+1, len(p.Steps))

		if e.dryRun && isWriteAction(resolvedStep.Action) {
			msg := fmt.Sprintf("[DRY-RUN] Would run %s on %s", resolvedStep.Action, resolvedStep.Input)
			result := StepResult{StepID: resolvedStep.ID, Output: msg}
			results = append(results, result)
			e.results[resolvedStep.ID] = &result
			continue
		}

		action, ok := e.actions[resolvedStep.Action]
		if !ok {
			err := fmt.Errorf("unknown action %q in step %q — registered actions: %v",
				resolvedStep.Action, resolvedStep.ID, e.actionNames())

			if resolvedStep.OnFailure == "skip" {
				log.WithError(err).Warn("skipping step")
				result := StepResult{StepID: resolvedStep.ID, Error: err}
				results = append(results, result)
				e.results[resolvedStep.ID] = &result
				continue
			}
			return results, err
		}

		start := time.Now()
		output, err := action(ctx, resolvedStep)

		result := StepResult{
			StepID: resolvedStep.ID,
			Output: output,
			Error:  err,
		}
		results = append(results, result)
		e.results[resolvedStep.ID] = &result

		log.WithField("duration", time.Since(start).Round(time.Millisecond)).Debug("step completed")

		if err != nil {
			if resolvedStep.OnFailure == "skip" {
				log.WithError(err).Warn("step failed, skipping")
				continue
			}
			return results, fmt.Errorf("step %q failed: %w", resolvedStep.ID, err)
		}
	}

	return results, nil
}

func isWriteAction(action string) bool {
	return action == "excel.to-csv" || action == "excel.split"
}

var interpolationPattern = regexp.MustCompile(`\$\{\{\s*([^}]+)\s*\}\}`)

func (e *Executor) resolveStepVariables(step Step) Step {
	resolved := step
	resolved.Input = e.interpolate(step.Input)
	resolved.Sheet = e.interpolate(step.Sheet)
	resolved.Output = e.interpolate(step.Output)

	if resolved.Options != nil {
		newOpts := make(map[string]string, len(resolved.Options))
		for k, v := range resolved.Options {
			newOpts[k] = e.interpolate(v)
		}
		resolved.Options = newOpts
	}

	return resolved
}

func (e *Executor) interpolate(s string) string {
	return interpolationPattern.ReplaceAllStringFunc(s, func(match string) string {
		inner := interpolationPattern.FindStringSubmatch(match)
		if len(inner) < 2 {
			return match
		}
		expr := strings.TrimSpace(inner[1])

		// steps.<id>.output
		if strings.HasPrefix(expr, "steps.") {
			parts := strings.Split(expr, ".")
			if len(parts) >= 3 && parts[2] == "output" {
				stepID := parts[1]
				if result, ok := e.results[stepID]; ok {
					return strings.TrimSpace(result.Output)
				}
			}
		}

		if expr == "date.today" {
			return time.Now().Format("2006-01-02")
		}

		if strings.HasPrefix(expr, "env.") {
			return os.Getenv(strings.TrimPrefix(expr, "env."))
		}

		return match
	})
}

func (e *Executor) actionNames() []string {
	names := make([]string, 0, len(e.actions))
	for name := range e.actions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
