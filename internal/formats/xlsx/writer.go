package xlsx

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// Sheet is a named grid of plain Go values (string, bool, int, float64 or
// nil) to be written to a workbook.
type Sheet struct {
	Name string  `json:"name"`
	Rows [][]any `json:"rows"`
}

// Workbook is an ordered set of sheets to be written to a file.
type Workbook struct {
	Sheets []Sheet `json:"sheets"`
}

// WriteFile creates a new .xlsx file from the given workbook data. Nil values
// leave their cell unset.
func WriteFile(wb *Workbook, path string) error {
	f := excelize.NewFile()
	defer f.Close()

	for i, sheet := range wb.Sheets {
		sheetName := sheet.Name
		if sheetName == "" {
			sheetName = fmt.Sprintf("Sheet%d", i+1)
		}

		if i == 0 {
			// Rename default sheet
			defaultSheet := f.GetSheetName(0)
			if err := f.SetSheetName(defaultSheet, sheetName); err != nil {
				return fmt.Errorf("could not rename sheet: %w", err)
			}
		} else {
			if _, err := f.NewSheet(sheetName); err != nil {
				return fmt.Errorf("could not create sheet %q: %w", sheetName, err)
			}
		}

		for rowIdx, row := range sheet.Rows {
			for colIdx, value := range row {
				if value == nil {
					continue
				}
				cellName, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+1)
				if err != nil {
					return fmt.Errorf("invalid cell coordinates: %w", err)
				}
				if err := f.SetCellValue(sheetName, cellName, value); err != nil {
					return fmt.Errorf("could not set cell %s: %w", cellName, err)
				}
			}
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("%w: could not save %s: %w", ErrIO, path, err)
	}

	return nil
}

// chunkSheet is the sheet name used in every split output file.
const chunkSheet = "Sheet1"

// chunkWriter streams display rows into one new workbook. Close must be
// called exactly once; it flushes the stream, saves the file and releases it.
type chunkWriter struct {
	path string
	f    *excelize.File
	sw   *excelize.StreamWriter
	rows int
}

func newChunkWriter(path string) (*chunkWriter, error) {
	f := excelize.NewFile()
	sw, err := f.NewStreamWriter(chunkSheet)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("%w: could not create %s: %w", ErrIO, path, err)
	}
	return &chunkWriter{path: path, f: f, sw: sw}, nil
}

// Append writes cells as the next row.
func (w *chunkWriter) Append(cells []Cell) error {
	display := DisplayRow(cells)
	values := make([]any, len(display))
	for i, s := range display {
		values[i] = s
	}

	axis, err := excelize.CoordinatesToCellName(1, w.rows+1)
	if err != nil {
		return fmt.Errorf("%w: invalid cell coordinates: %w", ErrIO, err)
	}
	if err := w.sw.SetRow(axis, values); err != nil {
		return fmt.Errorf("%w: could not write row %d of %s: %w", ErrIO, w.rows+1, w.path, err)
	}
	w.rows++
	return nil
}

// Close flushes, saves and closes the workbook, reporting the first failure.
func (w *chunkWriter) Close() error {
	var firstErr error
	if err := w.sw.Flush(); err != nil {
		firstErr = fmt.Errorf("%w: could not flush %s: %w", ErrIO, w.path, err)
	}
	if firstErr == nil {
		if err := w.f.SaveAs(w.path); err != nil {
			firstErr = fmt.Errorf("%w: could not save %s: %w", ErrIO, w.path, err)
		}
	}
	if err := w.f.Close(); err != nil && firstErr == nil {
		firstErr = fmt.Errorf("%w: could not close %s: %w", ErrIO, w.path, err)
	}
	return firstErr
}
