package output

import (
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/klytics/devkit/internal/formats/xlsx"
)

// Exit codes for consistent error reporting.
const (
	ExitOK          = 0 // success
	ExitUserError   = 1 // bad flags, missing sheet, invalid argument
	ExitSystemError = 2 // unreadable or undecodable file, write failure
)

// ExitCode maps an error to the process exit code.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, xlsx.ErrIO), errors.Is(err, xlsx.ErrDecode):
		return ExitSystemError
	default:
		return ExitUserError
	}
}

// reportedError marks a failure whose JSON result was already written.
type reportedError struct{ err error }

func (e *reportedError) Error() string { return e.err.Error() }
func (e *reportedError) Unwrap() error { return e.err }

// Reported marks err as already written to stdout as a JSON result, so the
// error policy does not print a second document. Nil stays nil.
func Reported(err error) error {
	if err == nil {
		return nil
	}
	return &reportedError{err: err}
}

// ErrorPolicy decides where a failed command's message goes and which exit
// code the process ends with.
type ErrorPolicy struct {
	// Legacy prints the bare message to Stdout and exits 0.
	Legacy bool
	// JSON writes a JSON error result for Command to Stdout.
	JSON    bool
	Command string
	Stdout  io.Writer
	Stderr  io.Writer
}

// Report writes err according to the policy and returns the exit code.
func (p ErrorPolicy) Report(err error) int {
	if err == nil {
		return ExitOK
	}
	if p.Legacy {
		fmt.Fprintln(p.Stdout, err.Error())
		return ExitOK
	}
	code := ExitCode(err)
	if p.JSON {
		var done *reportedError
		if !errors.As(err, &done) {
			_ = PrintJSONError(p.Stdout, p.Command, err, code)
		}
		return code
	}
	color.New(color.FgRed).Fprintf(p.Stderr, "Error: %s\n", err)
	return code
}
