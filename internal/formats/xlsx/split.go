package xlsx

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
)

// SplitOptions configures Split.
type SplitOptions struct {
	// Source is the input path that output file names are derived from.
	Source string
	// ChunkSize is the number of data rows per output file. Must be positive.
	ChunkSize int
	// Header repeats the first row of the range at the top of every file.
	Header bool
	// NoClobber refuses to overwrite an existing output file.
	NoClobber bool
	// OnChunk, if set, is called after each file is written.
	OnChunk func(n, total int, path string)
}

// ChunkPath returns the output path of the n-th (1-based) chunk of source.
func ChunkPath(source string, n int) string {
	return fmt.Sprintf("%s.%d.xlsx", source, n)
}

// ChunkCount returns how many chunks of size hold dataRows rows.
func ChunkCount(dataRows, size int) int {
	if size <= 0 || dataRows <= 0 {
		return 0
	}
	n := dataRows / size
	if dataRows%size != 0 {
		n++
	}
	return n
}

// Split writes the data rows of r into numbered .xlsx files of at most
// opts.ChunkSize rows each and returns the paths written. Files are written
// one at a time; on failure the files already written are left in place and
// returned alongside the error.
func Split(r *Range, opts SplitOptions) ([]string, error) {
	if opts.ChunkSize <= 0 {
		return nil, fmt.Errorf("%w: chunk size must be positive, got %d", ErrInvalidArgument, opts.ChunkSize)
	}

	cur := r.Cursor()

	var header []Cell
	if opts.Header {
		header, _ = cur.Next()
	}

	chunks := ChunkCount(cur.Remaining(), opts.ChunkSize)
	log := logrus.WithFields(logrus.Fields{
		"source": opts.Source,
		"rows":   cur.Remaining(),
		"chunks": chunks,
	})
	log.Debug("splitting range")

	var written []string
	for n := 1; n <= chunks; n++ {
		path := ChunkPath(opts.Source, n)
		if opts.NoClobber {
			if _, err := os.Stat(path); err == nil {
				return written, fmt.Errorf("%w: %s already exists — remove it or drop --no-clobber", ErrIO, path)
			}
		}

		rows, err := writeChunk(path, header, cur, opts.ChunkSize)
		if err != nil {
			return written, err
		}
		written = append(written, path)
		log.WithFields(logrus.Fields{"chunk": n, "path": path, "rows": rows}).Debug("chunk written")
		if opts.OnChunk != nil {
			opts.OnChunk(n, chunks, path)
		}
	}

	return written, nil
}

// writeChunk writes the header (if any) and up to size cursor rows to path.
// The file is flushed and closed before it returns, on success or failure.
func writeChunk(path string, header []Cell, cur *RowCursor, size int) (rows int, err error) {
	w, err := newChunkWriter(path)
	if err != nil {
		return 0, err
	}
	defer func() {
		if cerr := w.Close(); err == nil {
			err = cerr
		}
	}()

	if header != nil {
		if err := w.Append(header); err != nil {
			return rows, err
		}
		rows++
	}

	for appended := 0; appended < size; appended++ {
		row, ok := cur.Next()
		if !ok {
			break
		}
		if err := w.Append(row); err != nil {
			return rows, err
		}
		rows++
	}

	return rows, nil
}
