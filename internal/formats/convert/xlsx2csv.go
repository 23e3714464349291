// Package convert exports spreadsheet ranges to other formats.
package convert

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/klytics/devkit/internal/formats/compress"
	"github.com/klytics/devkit/internal/formats/xlsx"
)

// CSVOptions controls how a CSV file is written.
type CSVOptions struct {
	// Encoding names the output character set; empty means UTF-8.
	Encoding string
}

// RangeToCSV writes every row of r to w as one CSV record of display strings.
func RangeToCSV(w io.Writer, r *xlsx.Range) error {
	cw := csv.NewWriter(w)

	cur := r.Cursor()
	for row, ok := cur.Next(); ok; row, ok = cur.Next() {
		if err := cw.Write(xlsx.DisplayRow(row)); err != nil {
			return fmt.Errorf("%w: could not write CSV record: %w", xlsx.ErrIO, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("%w: could not flush CSV: %w", xlsx.ErrIO, err)
	}
	return nil
}

// RangeToCSVFile writes r to outputPath as CSV, truncating any existing file.
// A .gz, .zst or .xz suffix on outputPath compresses the export. A failed
// export leaves whatever was written on disk.
func RangeToCSVFile(r *xlsx.Range, outputPath string, opts CSVOptions) (err error) {
	cm, err := encoder(opts.Encoding)
	if err != nil {
		return err
	}

	f, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("%w: could not create %s: %w", xlsx.ErrIO, outputPath, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("%w: could not close %s: %w", xlsx.ErrIO, outputPath, cerr)
		}
	}()

	zw, err := compress.NewWriter(f, outputPath)
	if err != nil {
		return fmt.Errorf("%w: %w", xlsx.ErrIO, err)
	}
	defer func() {
		if cerr := zw.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("%w: could not finish %s: %w", xlsx.ErrIO, outputPath, cerr)
		}
	}()

	if cm == nil {
		return RangeToCSV(zw, r)
	}

	ew := encodeWriter(zw, cm)
	if err := RangeToCSV(ew, r); err != nil {
		return err
	}
	if err := ew.Close(); err != nil {
		return fmt.Errorf("%w: could not encode %s as %s: %w", xlsx.ErrIO, outputPath, opts.Encoding, err)
	}
	return nil
}
