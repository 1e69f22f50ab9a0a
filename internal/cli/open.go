package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"offboard/internal/casestore"
	"offboard/internal/offboarding"
)

// openSession opens the employee's case, printing a readable error and
// returning an [ExitError] on failure.
func openSession(cmd *cobra.Command, app *App, employeeID string) (*offboarding.Session, error) {
	sess, err := app.Service.Open(cmd.Context(), employeeID)
	if err != nil {
		if errors.Is(err, casestore.ErrInvalidEmployeeID) {
			app.Printer.Error("%q is not a valid employee id", employeeID)
		} else {
			app.Printer.Error("Failed to open case %s: %v", employeeID, err)
		}
		return nil, NewExitError(1)
	}
	return sess, nil
}

// fail prints the error and returns exit code 1.
func fail(app *App, format string, args ...any) error {
	app.Printer.Error(format, args...)
	return NewExitError(1)
}
