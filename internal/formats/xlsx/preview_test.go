package xlsx

import (
	"bytes"
	"strings"
	"testing"
)

func gridRange(rows, cols int) *Range {
	grid := make([][]Cell, rows)
	for i := range grid {
		grid[i] = make([]Cell, cols)
		for j := range grid[i] {
			grid[i][j] = IntCell(int64(i*cols + j))
		}
	}
	return NewRange(grid)
}

func TestPreviewClampsWindow(t *testing.T) {
	r := gridRange(4, 3)
	cases := []struct {
		reqRows, reqCols   int
		wantRows, wantCols int
	}{
		{All, All, 4, 3},
		{2, 2, 2, 2},
		{10, 10, 4, 3},
		{0, 3, 0, 3},
		{3, 1, 3, 1},
	}

	for _, c := range cases {
		var buf bytes.Buffer
		if err := Preview(&buf, r, PreviewOptions{Rows: c.reqRows, Columns: c.reqCols}); err != nil {
			t.Fatalf("Preview failed: %v", err)
		}

		out := buf.String()
		lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
		if out == "" {
			lines = nil
		}
		if len(lines) != c.wantRows {
			t.Errorf("request %dx%d: expected %d lines, got %d", c.reqRows, c.reqCols, c.wantRows, len(lines))
			continue
		}
		for _, line := range lines {
			if fields := strings.Split(line, "\t"); len(fields) != c.wantCols {
				t.Errorf("request %dx%d: expected %d fields, got %d in %q", c.reqRows, c.reqCols, c.wantCols, len(fields), line)
			}
		}
	}
}

func TestPreviewContent(t *testing.T) {
	r := NewRange([][]Cell{
		{TextCell("id"), TextCell("name")},
		{IntCell(1), TextCell("alice")},
	})

	var buf bytes.Buffer
	if err := Preview(&buf, r, PreviewOptions{Rows: All, Columns: All}); err != nil {
		t.Fatal(err)
	}
	expected := "id\tname\n1\talice\n"
	if buf.String() != expected {
		t.Errorf("expected %q, got %q", expected, buf.String())
	}
}

func TestPreviewTrailingTab(t *testing.T) {
	r := NewRange([][]Cell{{TextCell("a"), TextCell("b")}})

	var buf bytes.Buffer
	if err := Preview(&buf, r, PreviewOptions{Rows: All, Columns: All, TrailingTab: true}); err != nil {
		t.Fatal(err)
	}
	if buf.String() != "a\tb\t\n" {
		t.Errorf("expected legacy trailing tab, got %q", buf.String())
	}
}

func TestPreviewEmptyRange(t *testing.T) {
	var buf bytes.Buffer
	if err := Preview(&buf, NewRange(nil), PreviewOptions{Rows: 5, Columns: 5}); err != nil {
		t.Fatal(err)
	}
	if buf.Len() != 0 {
		t.Errorf("expected no output, got %q", buf.String())
	}
}
