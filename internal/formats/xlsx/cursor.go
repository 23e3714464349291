package xlsx

// RowCursor walks a range's rows once, in order. A consumed row cannot be
// revisited.
type RowCursor struct {
	rows [][]Cell
	pos  int
}

// Next returns the next row and true, or nil and false once exhausted.
func (c *RowCursor) Next() ([]Cell, bool) {
	if c.pos >= len(c.rows) {
		return nil, false
	}
	row := c.rows[c.pos]
	c.pos++
	return row, true
}

// Remaining returns how many rows Next will still yield.
func (c *RowCursor) Remaining() int {
	return len(c.rows) - c.pos
}
