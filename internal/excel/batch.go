package excel

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/klytics/devkit/internal/formats/xlsx"
)

// BatchItem is the outcome of one file in a batch.
type BatchItem struct {
	File   string  `json:"file"`
	Status string  `json:"status"`
	Output string  `json:"output,omitempty"`
	Result *Result `json:"result,omitempty"`
	Error  string  `json:"error,omitempty"`

	// Err is the failure behind Error, kept for exit-code classification.
	Err error `json:"-"`
}

// Batch applies one job template to many input files.
type Batch struct {
	// Template supplies Op, Sheet and the op-specific options. Input and
	// Output are filled in per file.
	Template Job
	// OutDir receives to-csv outputs; empty means next to each input.
	OutDir      string
	Concurrency int
	// OnDone is called after each file, serialized.
	OnDone func(done, total int, item BatchItem)
}

// Expand resolves a glob pattern to the matching files, sorted.
func Expand(pattern string) ([]string, error) {
	files, err := filepath.Glob(pattern)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid glob pattern %q: %v", xlsx.ErrInvalidArgument, pattern, err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%w: no files matched pattern %q", xlsx.ErrNotFound, pattern)
	}
	return files, nil
}

// CSVPathFor returns where to-csv writes the export of input.
func CSVPathFor(input, outDir string) string {
	base := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input)) + ".csv"
	if outDir == "" {
		return filepath.Join(filepath.Dir(input), base)
	}
	return filepath.Join(outDir, base)
}

// Run processes every file and returns one item per file in input order. A
// failing file is recorded and does not stop the batch.
func (b *Batch) Run(files []string) ([]BatchItem, error) {
	if _, err := ParseOp(string(b.Template.Op)); err != nil {
		return nil, err
	}
	if b.OutDir != "" {
		if err := os.MkdirAll(b.OutDir, 0755); err != nil {
			return nil, fmt.Errorf("%w: could not create output directory %s: %v", xlsx.ErrIO, b.OutDir, err)
		}
	}

	workers := b.Concurrency
	if workers < 1 {
		workers = 1
	}

	results := make([]BatchItem, len(files))
	var (
		mu   sync.Mutex
		done int
		wg   sync.WaitGroup
	)
	sem := make(chan struct{}, workers)

	for i, file := range files {
		wg.Add(1)
		go func(idx int, f string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			item := b.processFile(f)

			mu.Lock()
			defer mu.Unlock()
			results[idx] = item
			done++
			if b.OnDone != nil {
				b.OnDone(done, len(files), item)
			}
		}(i, file)
	}
	wg.Wait()

	return results, nil
}

func (b *Batch) processFile(file string) BatchItem {
	job := b.Template
	job.Input = file
	job.OnChunk = nil
	if job.Op == OpToCSV {
		job.Output = CSVPathFor(file, b.OutDir)
	}

	var out strings.Builder
	res, err := Run(&out, job)
	if err != nil {
		logrus.WithFields(logrus.Fields{"file": file, "op": job.Op}).WithError(err).Warn("batch item failed")
		return BatchItem{File: file, Status: "error", Error: err.Error(), Err: err}
	}
	return BatchItem{File: file, Status: "ok", Output: out.String(), Result: res}
}

// FirstError returns the error of the first failed item, or nil.
func FirstError(items []BatchItem) error {
	for _, it := range items {
		if it.Status != "ok" {
			if it.Err != nil {
				return it.Err
			}
			return fmt.Errorf("%s: %s", it.File, it.Error)
		}
	}
	return nil
}

// Summarize counts successes and failures.
func Summarize(items []BatchItem) (succeeded, failed int) {
	for _, it := range items {
		if it.Status == "ok" {
			succeeded++
		} else {
			failed++
		}
	}
	return succeeded, failed
}
