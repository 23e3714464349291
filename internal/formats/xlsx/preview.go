package xlsx

import (
	"bufio"
	"io"
	"strings"
)

// All requests every row or column of a range in PreviewOptions.
const All = -1

// PreviewOptions bounds the preview window. A negative Rows or Columns means
// the whole extent; larger requests are clamped to the range size.
type PreviewOptions struct {
	Rows    int
	Columns int

	// TrailingTab follows every field, the last included, with a tab.
	TrailingTab bool
}

// Preview writes one tab-separated line per row of the clamped window.
func Preview(w io.Writer, r *Range, opts PreviewOptions) error {
	totalRows, totalCols := r.Dimensions()
	rows := clampRequest(opts.Rows, totalRows)
	cols := clampRequest(opts.Columns, totalCols)

	bw := bufio.NewWriter(w)
	for i := 0; i < rows; i++ {
		fields := DisplayRow(r.Row(i)[:cols])
		line := strings.Join(fields, "\t")
		if opts.TrailingTab && cols > 0 {
			line += "\t"
		}
		if _, err := bw.WriteString(line + "\n"); err != nil {
			return err
		}
	}
	return bw.Flush()
}

func clampRequest(requested, actual int) int {
	if requested < 0 || requested > actual {
		return actual
	}
	return requested
}
