package xlsx

import (
	"bytes"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/extrame/xls"
	"github.com/xuri/excelize/v2"

	"github.com/klytics/devkit/internal/formats/compress"
)

// xlsErrors are the error literals a legacy workbook renders for error cells.
var xlsErrors = map[string]bool{
	"#NULL!": true, "#DIV/0!": true, "#VALUE!": true, "#REF!": true,
	"#NAME?": true, "#NUM!": true, "#N/A": true,
}

func isLegacyXLS(path string) bool {
	return strings.EqualFold(filepath.Ext(compress.Strip(path)), ".xls")
}

func openXLS(path, sheetName string) (rng *Range, err error) {
	defer recoverDecode(path, &err)

	wb, err := xls.Open(path, "utf-8")
	if err != nil {
		return nil, fmt.Errorf("%w: could not open %s — is this a valid .xls file? %w", ErrDecode, path, err)
	}
	return readXLSSheet(wb, sheetName)
}

func readXLS(r io.Reader, path, sheetName string) (rng *Range, err error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: could not read %s: %w", ErrIO, path, err)
	}

	defer recoverDecode(path, &err)

	wb, err := xls.OpenReader(bytes.NewReader(data), "utf-8")
	if err != nil {
		return nil, fmt.Errorf("%w: could not open %s — is this a valid .xls file? %w", ErrDecode, path, err)
	}
	return readXLSSheet(wb, sheetName)
}

// recoverDecode turns a panic inside the BIFF parser into ErrDecode.
func recoverDecode(path string, err *error) {
	if p := recover(); p != nil {
		*err = fmt.Errorf("%w: could not parse %s: %v", ErrDecode, path, p)
	}
}

func readXLSSheet(wb *xls.WorkBook, sheetName string) (*Range, error) {
	var (
		sheet     *xls.WorkSheet
		available []string
	)
	for i := 0; i < wb.NumSheets(); i++ {
		s := wb.GetSheet(i)
		if s == nil {
			continue
		}
		available = append(available, s.Name)
		if s.Name == sheetName {
			sheet = s
		}
	}
	if sheet == nil {
		return nil, fmt.Errorf("%w: sheet %q not found — available sheets: %v", ErrNotFound, sheetName, available)
	}

	grid := make([][]Cell, 0, int(sheet.MaxRow)+1)
	for i := 0; i <= int(sheet.MaxRow); i++ {
		row := sheet.Row(i)
		if row == nil {
			grid = append(grid, nil)
			continue
		}
		cells := make([]Cell, row.LastCol()+1)
		for c := row.FirstCol(); c <= row.LastCol(); c++ {
			cells[c] = xlsCell(row.Col(c))
		}
		grid = append(grid, cells)
	}

	return boundingRange(grid), nil
}

// xlsCell types a formatted legacy cell string. The BIFF reader only exposes
// text, so booleans and error literals are recognised by their rendering.
func xlsCell(raw string) Cell {
	switch {
	case raw == "":
		return Cell{}
	case raw == "TRUE":
		return BoolCell(true)
	case raw == "FALSE":
		return BoolCell(false)
	case xlsErrors[raw]:
		return ErrorCell(raw)
	default:
		return typedCell(excelize.CellTypeUnset, raw)
	}
}
