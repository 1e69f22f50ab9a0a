package cli

import (
	"errors"
	"fmt"
)

// ExitError carries the process exit code out of a command's RunE.
//
// Commands print their own message through the [output.Printer] first, so
// the error holds only the code. [RunWithConfig] turns it into an
// [ExecuteResult] and [Execute] is the only place that calls os.Exit.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit status %d", e.Code)
}

// NewExitError returns an [ExitError] for code.
func NewExitError(code int) *ExitError {
	return &ExitError{Code: code}
}

// IsExitError returns the code of the first [ExitError] in err's chain.
func IsExitError(err error) (int, bool) {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code, true
	}
	return 0, false
}
