package xlsx

import "errors"

// Error kinds surfaced by range operations. Callers match them with errors.Is;
// the wrapped message carries the detail.
var (
	// ErrNotFound reports a sheet name missing from the workbook.
	ErrNotFound = errors.New("not found")
	// ErrDecode reports a source file that is not a readable spreadsheet.
	ErrDecode = errors.New("decode error")
	// ErrIO reports a failure creating, reading, writing or flushing a file.
	ErrIO = errors.New("i/o error")
	// ErrInvalidArgument reports a rejected parameter, such as a zero chunk size.
	ErrInvalidArgument = errors.New("invalid argument")
)
