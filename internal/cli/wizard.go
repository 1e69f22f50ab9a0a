package cli

import (
	"github.com/spf13/cobra"
)

func newWizardCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "wizard <employee-id>",
		Short: "Step through a case interactively",
		Long: `Open the interactive wizard for the employee's case. It starts at the
first unfinished stage.

Keys:
  ←/→    previous / next stage (next is locked until the stage is done)
  u      upload the stage's document
  d      set the last working day
  ↑/↓    select a checklist item
  space  toggle the selected item
  a      add a checklist item
  f      finalize (on Complete Termination)
  q      quit, progress is kept`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := openSession(cmd, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Wizard(cmd.Context(), sess); err != nil {
				return fail(app, "%v", err)
			}
			return nil
		},
	}
}
