package xlsx

import (
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Kind identifies which variant a Cell holds.
type Kind uint8

const (
	KindEmpty Kind = iota
	KindBool
	KindInt
	KindFloat
	KindText
	KindError
)

var kindNames = [...]string{"empty", "bool", "int", "float", "text", "error"}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "kind(" + strconv.Itoa(int(k)) + ")"
}

// Cell is a single typed spreadsheet value. The zero value is an empty cell.
type Cell struct {
	Kind Kind

	b bool
	i int64
	f float64
	s string
}

// BoolCell returns a boolean cell.
func BoolCell(v bool) Cell { return Cell{Kind: KindBool, b: v} }

// IntCell returns an integer cell.
func IntCell(v int64) Cell { return Cell{Kind: KindInt, i: v} }

// FloatCell returns a floating point cell.
func FloatCell(v float64) Cell { return Cell{Kind: KindFloat, f: v} }

// TextCell returns a text cell.
func TextCell(v string) Cell { return Cell{Kind: KindText, s: v} }

// ErrorCell returns a cell holding a spreadsheet error literal such as "#N/A".
func ErrorCell(v string) Cell { return Cell{Kind: KindError, s: v} }

// IsEmpty reports whether the cell holds no value.
func (c Cell) IsEmpty() bool { return c.Kind == KindEmpty }

// String renders the cell the same way for preview, CSV and split output.
// Floats use the shortest exact decimal form and never an exponent, so 3.0
// renders as "3".
func (c Cell) String() string {
	switch c.Kind {
	case KindBool:
		return strconv.FormatBool(c.b)
	case KindInt:
		return strconv.FormatInt(c.i, 10)
	case KindFloat:
		return strconv.FormatFloat(c.f, 'f', -1, 64)
	case KindText, KindError:
		return c.s
	default:
		return ""
	}
}

// DisplayRow renders cells to their display strings, preserving order and length.
func DisplayRow(cells []Cell) []string {
	out := make([]string, len(cells))
	for i, c := range cells {
		out[i] = c.String()
	}
	return out
}

// typedCell classifies a raw (unformatted) cell value using the cell type
// recorded in the sheet XML.
func typedCell(typ excelize.CellType, raw string) Cell {
	if raw == "" {
		return Cell{}
	}

	switch typ {
	case excelize.CellTypeBool:
		switch strings.ToUpper(raw) {
		case "1", "TRUE":
			return BoolCell(true)
		case "0", "FALSE":
			return BoolCell(false)
		}
		return TextCell(raw)
	case excelize.CellTypeError:
		return ErrorCell(raw)
	case excelize.CellTypeNumber, excelize.CellTypeUnset:
		if v, err := strconv.ParseInt(raw, 10, 64); err == nil {
			return IntCell(v)
		}
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			return FloatCell(v)
		}
		return TextCell(raw)
	default:
		// Shared and inline strings, formula string results and ISO dates.
		return TextCell(raw)
	}
}
