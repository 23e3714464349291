// Package excel routes a single spreadsheet operation: it opens the source
// sheet once and dispatches to preview, CSV export or split.
package excel

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/klytics/devkit/internal/formats/convert"
	"github.com/klytics/devkit/internal/formats/xlsx"
)

// Op names an operation on a sheet.
type Op string

const (
	OpCount Op = "count"
	OpCat   Op = "cat"
	OpToCSV Op = "to-csv"
	OpSplit Op = "split"
)

// Ops lists the supported operations.
var Ops = []Op{OpCount, OpCat, OpToCSV, OpSplit}

// ParseOp validates an operation name.
func ParseOp(s string) (Op, error) {
	for _, op := range Ops {
		if string(op) == s {
			return op, nil
		}
	}
	return "", fmt.Errorf("%w: unknown excel operation %q (supported: %v)", xlsx.ErrInvalidArgument, s, Ops)
}

// Job describes one invocation against one sheet.
type Job struct {
	Op    Op
	Input string
	Sheet string

	// cat
	Rows        int // xlsx.All for every row
	Columns     int // xlsx.All for every column
	TrailingTab bool

	// to-csv
	Output   string
	Encoding string

	// split
	Line      int
	Header    bool
	NoClobber bool
	OnChunk   func(n, total int, path string)
}

// Result carries what an operation produced.
type Result struct {
	Rows    int      `json:"rows"`
	Columns int      `json:"columns"`
	Files   []string `json:"files,omitempty"`
}

// Run executes the job. Count and cat write their text to w; to-csv and split
// write files and report them in the result.
func Run(w io.Writer, job Job) (*Result, error) {
	if _, err := ParseOp(string(job.Op)); err != nil {
		return nil, err
	}
	if job.Input == "" {
		return nil, fmt.Errorf("%w: an input .xlsx path is required", xlsx.ErrInvalidArgument)
	}
	if job.Op == OpToCSV && job.Output == "" {
		return nil, fmt.Errorf("%w: an output .csv path is required", xlsx.ErrInvalidArgument)
	}
	if job.Op == OpSplit && job.Line <= 0 {
		return nil, fmt.Errorf("%w: --line must be a positive number of rows, got %d", xlsx.ErrInvalidArgument, job.Line)
	}

	log := logrus.WithFields(logrus.Fields{"op": job.Op, "input": job.Input, "sheet": job.Sheet})

	r, err := xlsx.Open(job.Input, job.Sheet)
	if err != nil {
		return nil, err
	}
	rows, cols := r.Dimensions()
	log.WithFields(logrus.Fields{"rows": rows, "columns": cols}).Debug("sheet loaded")

	res := &Result{Rows: rows, Columns: cols}

	switch job.Op {
	case OpCount:
		_, err = fmt.Fprintf(w, "rows: %d, columns: %d\n", rows, cols)
	case OpCat:
		err = xlsx.Preview(w, r, xlsx.PreviewOptions{
			Rows:        job.Rows,
			Columns:     job.Columns,
			TrailingTab: job.TrailingTab,
		})
	case OpToCSV:
		if err = convert.RangeToCSVFile(r, job.Output, convert.CSVOptions{Encoding: job.Encoding}); err == nil {
			res.Files = []string{job.Output}
		}
	case OpSplit:
		res.Files, err = xlsx.Split(r, xlsx.SplitOptions{
			Source:    job.Input,
			ChunkSize: job.Line,
			Header:    job.Header,
			NoClobber: job.NoClobber,
			OnChunk:   job.OnChunk,
		})
	}
	if err != nil {
		return res, err
	}

	log.WithField("files", len(res.Files)).Debug("operation complete")
	return res, nil
}
