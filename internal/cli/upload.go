package cli

import (
	"github.com/spf13/cobra"

	"offboard/internal/artifact"
	"offboard/internal/record"
)

func newUploadCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "upload <employee-id> <slot> <file>",
		Short: "Upload a document into a case",
		Long: `Upload a document and record it in the employee's case. Uploading again
replaces the earlier document.

Slots:
  resignation     resignation letter
  exit-interview  exit interview summary
  final-pay       final pay statement

Example:
  offboard upload E1 resignation ./letter.pdf`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			employeeID, slotArg, path := args[0], args[1], args[2]

			slot, err := record.ParseSlot(slotArg)
			if err != nil {
				return fail(app, "Unknown slot %q: use resignation, exit-interview or final-pay", slotArg)
			}

			file, err := artifact.ReadFile(path)
			if err != nil {
				return fail(app, "%v", err)
			}

			sess, err := openSession(cmd, app, employeeID)
			if err != nil {
				return err
			}

			url, err := sess.SaveArtifact(cmd.Context(), slot, file)
			if err != nil {
				return fail(app, "%v", err)
			}
			app.Printer.Success("Saved %s: %s", slot.Label(), url)
			return nil
		},
	}
}
