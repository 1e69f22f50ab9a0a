package cli

import (
	"github.com/spf13/cobra"

	"offboard/internal/stage"
)

func newStagesCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "stages",
		Short: "List the offboarding stages",
		Long:  `List the offboarding stages in order with the requirement each one gates on.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app.Printer.Stages(stage.Catalog())
			return nil
		},
	}
}
