package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"offboard/internal/offboarding"
)

func newFinalizeCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "finalize <employee-id>",
		Short: "Complete the termination",
		Long: `Complete the termination once the resignation notice, last working day,
exit interview summary and final pay details are all recorded.

The employee is removed from the remote systems first. Only when that
succeeds is the local case deleted; any failure leaves the case unchanged
so the command can be retried.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := openSession(cmd, app, args[0])
			if err != nil {
				return err
			}

			err = sess.Finalize(cmd.Context())
			var validationErr *offboarding.ValidationError
			var removalErr *offboarding.RemovalError
			switch {
			case err == nil:
				app.Printer.Success("Employee %s has been terminated", sess.EmployeeID())
				return nil
			case errors.As(err, &validationErr):
				return fail(app, "Cannot finalize: %v", err)
			case errors.As(err, &removalErr):
				return fail(app, "%v. The case was kept; try again later.", err)
			default:
				return fail(app, "%v", err)
			}
		},
	}
}
