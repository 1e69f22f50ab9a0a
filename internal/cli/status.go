package cli

import (
	"github.com/spf13/cobra"
)

func newStatusCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "status <employee-id>",
		Short: "Show an offboarding case",
		Long: `Show every stage of the employee's case, the stage the case resumes at
and what is still missing before the termination can be completed.

A case that was never started is shown empty; nothing is saved.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := openSession(cmd, app, args[0])
			if err != nil {
				return err
			}
			rec := sess.Record()
			app.Printer.CaseSummary(sess.EmployeeID(), sess.Progress(), rec)
			app.Printer.Checklist(rec.PropertyChecklist)
			return nil
		},
	}
}
