package cli

import (
	"errors"
	"fmt"

	"github.com/rshade/b62/internal/failure"
)

// Process exit codes returned by the b62 binary.
const (
	ExitOK            = 0
	ExitFailure       = 1
	ExitInvalidInput  = 2
	ExitBatchTooLarge = 3
)

// ExitError carries the process exit code for a failed command.
// Reported is true when the failure was already written to stdout in a
// machine-readable format and should not be printed again.
type ExitError struct {
	Code     int
	Err      error
	Reported bool
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit status %d", e.Code)
	}
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error { return e.Err }

// ExitCode returns the exit code for err. A nil error is ExitOK and an error
// without an *ExitError in its chain is ExitFailure.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}

// usageError marks err as a command-line usage problem.
func usageError(err error) *ExitError {
	return &ExitError{Code: ExitFailure, Err: err}
}

// conversionError maps a codec or batch failure to its exit code.
func conversionError(err error, reported bool) *ExitError {
	code := ExitFailure
	switch kind := failure.KindOf(err); {
	case kind.IsElementContent():
		code = ExitInvalidInput
	case kind == failure.KindBatchTooLarge:
		code = ExitBatchTooLarge
	}
	return &ExitError{Code: code, Err: err, Reported: reported}
}
