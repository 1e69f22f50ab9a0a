package cli

import (
	"github.com/spf13/cobra"
)

func newCasesCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "cases",
		Short: "List open offboarding cases",
		Long: `List the employees whose offboarding case has been started but not
finalized.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := app.Cases.List(cmd.Context())
			if err != nil {
				return fail(app, "Failed to list cases: %v", err)
			}
			app.Printer.Cases(ids)
			return nil
		},
	}
}
