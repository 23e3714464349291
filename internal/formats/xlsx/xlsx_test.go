package xlsx

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

// writeFixture writes rows to a single-sheet workbook named Sheet1 and
// returns its path.
func writeFixture(t *testing.T, rows [][]any) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fixture.xlsx")
	wb := &Workbook{Sheets: []Sheet{{Name: "Sheet1", Rows: rows}}}
	if err := WriteFile(wb, path); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	return path
}

func TestCellString(t *testing.T) {
	cases := []struct {
		cell Cell
		want string
	}{
		{Cell{}, ""},
		{BoolCell(true), "true"},
		{BoolCell(false), "false"},
		{IntCell(-42), "-42"},
		{FloatCell(3), "3"},
		{FloatCell(0.25), "0.25"},
		{FloatCell(1e21), "1000000000000000000000"},
		{TextCell("a,b"), "a,b"},
		{ErrorCell("#DIV/0!"), "#DIV/0!"},
	}
	for _, c := range cases {
		if got := c.cell.String(); got != c.want {
			t.Errorf("%s cell: expected %q, got %q", c.cell.Kind, c.want, got)
		}
	}
}

func TestDisplayRowPreservesOrder(t *testing.T) {
	row := []Cell{TextCell("x"), {}, IntCell(7)}
	got := DisplayRow(row)
	want := []string{"x", "", "7"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestNewRangePadsRaggedRows(t *testing.T) {
	r := NewRange([][]Cell{
		{TextCell("a")},
		{TextCell("b"), TextCell("c"), TextCell("d")},
	})

	rows, cols := r.Dimensions()
	if rows != 2 || cols != 3 {
		t.Fatalf("expected 2x3, got %dx%d", rows, cols)
	}
	if !r.ValueAt(0, 2).IsEmpty() {
		t.Errorf("expected padded cell to be empty, got %q", r.ValueAt(0, 2))
	}
	if got := r.ValueAt(1, 2).String(); got != "d" {
		t.Errorf("expected 'd', got %q", got)
	}
	if !r.ValueAt(5, 5).IsEmpty() {
		t.Error("expected out-of-range access to yield an empty cell")
	}
}

func TestCursorIsSinglePass(t *testing.T) {
	r := NewRange([][]Cell{{IntCell(1)}, {IntCell(2)}})
	cur := r.Cursor()

	if cur.Remaining() != 2 {
		t.Fatalf("expected 2 remaining, got %d", cur.Remaining())
	}
	first, ok := cur.Next()
	if !ok || first[0].String() != "1" {
		t.Fatalf("expected first row, got %v %v", first, ok)
	}
	if cur.Remaining() != 1 {
		t.Errorf("expected 1 remaining, got %d", cur.Remaining())
	}
	cur.Next()
	if _, ok := cur.Next(); ok {
		t.Error("expected exhausted cursor")
	}
	if cur.Remaining() != 0 {
		t.Errorf("expected 0 remaining, got %d", cur.Remaining())
	}
}

func TestBoundingRangeTrimsEmptyMargins(t *testing.T) {
	grid := [][]Cell{
		{},
		{{}, TextCell("b2"), {}},
		{{}, {}, IntCell(3)},
		{},
	}
	r := boundingRange(grid)

	rows, cols := r.Dimensions()
	if rows != 2 || cols != 2 {
		t.Fatalf("expected 2x2, got %dx%d", rows, cols)
	}
	if got := r.ValueAt(0, 0).String(); got != "b2" {
		t.Errorf("expected 'b2' at origin, got %q", got)
	}
	if got := r.ValueAt(1, 1).String(); got != "3" {
		t.Errorf("expected '3' at (1,1), got %q", got)
	}

	if rows, cols := boundingRange([][]Cell{{}, {}}).Dimensions(); rows != 0 || cols != 0 {
		t.Errorf("expected empty range, got %dx%d", rows, cols)
	}
}

func TestOpenReadsTypedCells(t *testing.T) {
	path := writeFixture(t, [][]any{
		{"Name", "Qty", "Price", "Active"},
		{"Widget", 3, 2.5, true},
		{"Gadget", 10, 4.0, false},
	})

	r, err := Open(path, "Sheet1")
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}

	rows, cols := r.Dimensions()
	if rows != 3 || cols != 4 {
		t.Fatalf("expected 3x4, got %dx%d", rows, cols)
	}

	checks := []struct {
		row, col int
		kind     Kind
		want     string
	}{
		{0, 0, KindText, "Name"},
		{1, 1, KindInt, "3"},
		{1, 2, KindFloat, "2.5"},
		{1, 3, KindBool, "true"},
		{2, 2, KindInt, "4"},
		{2, 3, KindBool, "false"},
	}
	for _, c := range checks {
		cell := r.ValueAt(c.row, c.col)
		if cell.Kind != c.kind || cell.String() != c.want {
			t.Errorf("(%d,%d): expected %s %q, got %s %q", c.row, c.col, c.kind, c.want, cell.Kind, cell.String())
		}
	}
}

func TestOpenMissingCellsAreEmpty(t *testing.T) {
	path := writeFixture(t, [][]any{
		{"a", "b", "c"},
		{"d"},
	})

	r, err := Open(path, "Sheet1")
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if !r.ValueAt(1, 2).IsEmpty() {
		t.Errorf("expected empty cell, got %q", r.ValueAt(1, 2))
	}
}

func TestOpenSheetNotFound(t *testing.T) {
	path := writeFixture(t, [][]any{{"x"}})

	_, err := Open(path, "Missing")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestOpenInvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.xlsx")
	if err := os.WriteFile(path, []byte("not a spreadsheet"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := Open(path, "Sheet1")
	if !errors.Is(err, ErrDecode) {
		t.Fatalf("expected ErrDecode, got %v", err)
	}
}

func TestOpenFileNotFound(t *testing.T) {
	_, err := Open("/nonexistent/file.xlsx", "Sheet1")
	if !errors.Is(err, ErrIO) {
		t.Fatalf("expected ErrIO, got %v", err)
	}
}

func TestOpenReader(t *testing.T) {
	path := writeFixture(t, [][]any{{"k", "v"}, {"a", 1}})
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	r, err := OpenReader(f, "Sheet1")
	if err != nil {
		t.Fatalf("OpenReader failed: %v", err)
	}
	if rows, cols := r.Dimensions(); rows != 2 || cols != 2 {
		t.Errorf("expected 2x2, got %dx%d", rows, cols)
	}
}
