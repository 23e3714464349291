// Package actions provides built-in pipeline action implementations.
package actions

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/viper"

	"github.com/klytics/devkit/internal/excel"
	"github.com/klytics/devkit/internal/formats/xlsx"
	"github.com/klytics/devkit/internal/pipeline"
)

// DefaultSheet is used when neither the step nor the config names a sheet.
const DefaultSheet = "Sheet1"

// RegisterAll registers all built-in actions with the given executor.
func RegisterAll(exec *pipeline.Executor) {
	exec.RegisterAction("excel.count", ExcelCountAction)
	exec.RegisterAction("excel.cat", ExcelCatAction)
	exec.RegisterAction("excel.to-csv", ExcelToCSVAction)
	exec.RegisterAction("excel.split", ExcelSplitAction)
}

// ExcelCountAction reports the sheet dimensions as "rows: R, columns: C".
func ExcelCountAction(ctx context.Context, step pipeline.Step) (string, error) {
	job, err := jobFor(excel.OpCount, step)
	if err != nil {
		return "", err
	}
	return runJob(job)
}

// ExcelCatAction returns the tab-separated preview of the sheet.
// Options: rows, columns, trailing_tab.
func ExcelCatAction(ctx context.Context, step pipeline.Step) (string, error) {
	job, err := jobFor(excel.OpCat, step)
	if err != nil {
		return "", err
	}
	if job.Rows, err = intOption(step, "rows", xlsx.All); err != nil {
		return "", err
	}
	if job.Columns, err = intOption(step, "columns", xlsx.All); err != nil {
		return "", err
	}
	if job.TrailingTab, err = boolOption(step, "trailing_tab", viper.GetBool("excel.trailing_tab")); err != nil {
		return "", err
	}
	return runJob(job)
}

// ExcelToCSVAction exports the sheet to step.Output and returns that path.
// Options: encoding.
func ExcelToCSVAction(ctx context.Context, step pipeline.Step) (string, error) {
	job, err := jobFor(excel.OpToCSV, step)
	if err != nil {
		return "", err
	}
	job.Output = step.Output
	job.Encoding = step.Options["encoding"]
	if job.Encoding == "" {
		job.Encoding = viper.GetString("csv.encoding")
	}
	return runJob(job)
}

// ExcelSplitAction splits the sheet into chunk files and returns their paths,
// one per line. Options: line (required), header, no_clobber.
func ExcelSplitAction(ctx context.Context, step pipeline.Step) (string, error) {
	job, err := jobFor(excel.OpSplit, step)
	if err != nil {
		return "", err
	}
	if job.Line, err = intOption(step, "line", 0); err != nil {
		return "", err
	}
	if job.Header, err = boolOption(step, "header", false); err != nil {
		return "", err
	}
	if job.NoClobber, err = boolOption(step, "no_clobber", viper.GetBool("excel.no_clobber")); err != nil {
		return "", err
	}
	return runJob(job)
}

func jobFor(op excel.Op, step pipeline.Step) (excel.Job, error) {
	if step.Input == "" {
		return excel.Job{}, fmt.Errorf("%w: excel.%s requires an input file path", xlsx.ErrInvalidArgument, op)
	}
	sheet := step.Sheet
	if sheet == "" {
		sheet = viper.GetString("excel.sheet_name")
	}
	if sheet == "" {
		sheet = DefaultSheet
	}
	return excel.Job{
		Op:      op,
		Input:   step.Input,
		Sheet:   sheet,
		Rows:    xlsx.All,
		Columns: xlsx.All,
	}, nil
}

func runJob(job excel.Job) (string, error) {
	var b strings.Builder
	res, err := excel.Run(&b, job)
	if err != nil {
		return "", err
	}
	if len(res.Files) > 0 {
		return strings.Join(res.Files, "\n"), nil
	}
	return b.String(), nil
}

func intOption(step pipeline.Step, key string, def int) (int, error) {
	v, ok := step.Options[key]
	if !ok || v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return 0, fmt.Errorf("%w: step %q: option %s must be a number, got %q", xlsx.ErrInvalidArgument, step.ID, key, v)
	}
	return n, nil
}

func boolOption(step pipeline.Step, key string, def bool) (bool, error) {
	v, ok := step.Options[key]
	if !ok || v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(strings.TrimSpace(v))
	if err != nil {
		return false, fmt.Errorf("%w: step %q: option %s must be true or false, got %q", xlsx.ErrInvalidArgument, step.ID, key, v)
	}
	return b, nil
}
