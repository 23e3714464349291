// Package xlsx reads a single sheet of an .xlsx file into a typed cell range
// and renders that range as a preview or as split .xlsx files.
package xlsx

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/xuri/excelize/v2"

	"github.com/klytics/devkit/internal/formats/compress"
)

// Open decodes the workbook at path and returns the data range of the named
// sheet. Legacy .xls workbooks are read as well, and a .gz, .zst or .xz
// suffix is decompressed first.
func Open(path, sheetName string) (*Range, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: file not found: %s — check that the path is correct", ErrIO, path)
		}
		return nil, fmt.Errorf("%w: could not access %s: %w", ErrIO, path, err)
	}

	if compress.Detect(path) != compress.None {
		return openCompressed(path, sheetName)
	}
	if isLegacyXLS(path) {
		return openXLS(path, sheetName)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: could not open %s — is this a valid .xlsx file? %w", ErrDecode, path, err)
	}
	defer f.Close()

	return readRange(f, sheetName)
}

func openCompressed(path, sheetName string) (*Range, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: could not open %s: %w", ErrIO, path, err)
	}
	defer file.Close()

	zr, closeFn, err := compress.NewReader(file, path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrDecode, path, err)
	}
	defer closeFn()

	if isLegacyXLS(compress.Strip(path)) {
		return readXLS(zr, path, sheetName)
	}
	return OpenReader(zr, sheetName)
}

// OpenReader is like Open but decodes the workbook from r.
func OpenReader(r io.Reader, sheetName string) (*Range, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: could not read Excel data: %w", ErrIO, err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: could not read Excel data: %w", ErrDecode, err)
	}
	defer f.Close()

	return readRange(f, sheetName)
}

func readRange(f *excelize.File, sheetName string) (*Range, error) {
	if err := checkSheet(f, sheetName); err != nil {
		return nil, err
	}

	rows, err := f.Rows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("%w: could not read sheet %q: %w", ErrDecode, sheetName, err)
	}
	defer rows.Close()

	var grid [][]Cell
	for rowNum := 1; rows.Next(); rowNum++ {
		raw, err := rows.Columns(excelize.Options{RawCellValue: true})
		if err != nil {
			return nil, fmt.Errorf("%w: could not read row %d of %q: %w", ErrDecode, rowNum, sheetName, err)
		}

		row := make([]Cell, len(raw))
		for colIdx, value := range raw {
			if value == "" {
				continue
			}
			cellName, err := excelize.CoordinatesToCellName(colIdx+1, rowNum)
			if err != nil {
				return nil, fmt.Errorf("%w: invalid cell coordinates: %w", ErrDecode, err)
			}
			typ, err := f.GetCellType(sheetName, cellName)
			if err != nil {
				return nil, fmt.Errorf("%w: could not read cell %s: %w", ErrDecode, cellName, err)
			}
			row[colIdx] = typedCell(typ, value)
		}
		grid = append(grid, row)
	}
	if err := rows.Error(); err != nil {
		return nil, fmt.Errorf("%w: could not read sheet %q: %w", ErrDecode, sheetName, err)
	}

	return boundingRange(grid), nil
}

func checkSheet(f *excelize.File, name string) error {
	available := f.GetSheetList()
	for _, s := range available {
		if s == name {
			return nil
		}
	}
	return fmt.Errorf("%w: sheet %q not found — available sheets: %v", ErrNotFound, name, available)
}
