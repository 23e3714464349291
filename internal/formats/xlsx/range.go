package xlsx

// Range is an immutable, rectangular, row-major grid of cells. Every row has
// exactly Columns cells; missing cells are empty.
type Range struct {
	rows [][]Cell
	cols int
}

// NewRange builds a range from rows of possibly different lengths, padding
// short rows with empty cells.
func NewRange(rows [][]Cell) *Range {
	cols := 0
	for _, row := range rows {
		if len(row) > cols {
			cols = len(row)
		}
	}

	grid := make([][]Cell, len(rows))
	for i, row := range rows {
		padded := make([]Cell, cols)
		copy(padded, row)
		grid[i] = padded
	}

	return &Range{rows: grid, cols: cols}
}

// Dimensions returns the row and column counts.
func (r *Range) Dimensions() (rows, cols int) {
	return len(r.rows), r.cols
}

// ValueAt returns the cell at the zero-based position. Positions without a
// stored value, including positions outside the range, yield an empty cell.
func (r *Range) ValueAt(row, col int) Cell {
	if row < 0 || row >= len(r.rows) || col < 0 || col >= r.cols {
		return Cell{}
	}
	return r.rows[row][col]
}

// Row returns the cells of a row. The returned slice must not be modified.
func (r *Range) Row(i int) []Cell {
	return r.rows[i]
}

// Cursor returns a forward-only cursor positioned before the first row.
func (r *Range) Cursor() *RowCursor {
	return &RowCursor{rows: r.rows}
}

// boundingRange trims a decoded sheet grid to the rectangle spanning its
// non-empty cells.
func boundingRange(grid [][]Cell) *Range {
	minRow, maxRow, minCol, maxCol := -1, -1, -1, -1
	for i, row := range grid {
		for j, c := range row {
			if c.IsEmpty() {
				continue
			}
			if minRow < 0 {
				minRow = i
			}
			maxRow = i
			if minCol < 0 || j < minCol {
				minCol = j
			}
			if j > maxCol {
				maxCol = j
			}
		}
	}

	if minRow < 0 {
		return NewRange(nil)
	}

	rows := make([][]Cell, 0, maxRow-minRow+1)
	for _, row := range grid[minRow : maxRow+1] {
		out := make([]Cell, maxCol-minCol+1)
		if minCol < len(row) {
			copy(out, row[minCol:min(len(row), maxCol+1)])
		}
		rows = append(rows, out)
	}
	return NewRange(rows)
}
