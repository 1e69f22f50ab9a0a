package cli

import (
	"github.com/spf13/cobra"

	"offboard/internal/record"
)

func newLastDayCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "last-day <employee-id> <YYYY-MM-DD>",
		Short: "Set the last working day",
		Long: `Set the employee's last working day.

Example:
  offboard last-day E1 2025-01-15`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			day, err := record.ParseDate(args[1])
			if err != nil {
				return fail(app, "Invalid date %q: expected YYYY-MM-DD", args[1])
			}

			sess, err := openSession(cmd, app, args[0])
			if err != nil {
				return err
			}
			if err := sess.SetLastWorkingDay(cmd.Context(), day); err != nil {
				return fail(app, "%v", err)
			}
			app.Printer.Success("Last working day set to %s", day)
			return nil
		},
	}
}
