package cli

import (
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

func newChecklistCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "checklist <employee-id>",
		Short: "Show or edit the property-return checklist",
		Long: `Show the employee's property-return checklist. Items are numbered from 1.

Property return is tracked but never blocks the termination.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := openSession(cmd, app, args[0])
			if err != nil {
				return err
			}
			app.Printer.Checklist(sess.Record().PropertyChecklist)
			return nil
		},
	}

	cmd.AddCommand(newChecklistAddCommand(app), newChecklistToggleCommand(app))
	return cmd
}

func newChecklistAddCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "add <employee-id> <item name...>",
		Short: "Add an item to the checklist",
		Long: `Append a not yet returned item. Duplicate names are allowed.

Example:
  offboard checklist add E1 Parking pass`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := strings.Join(args[1:], " ")

			sess, err := openSession(cmd, app, args[0])
			if err != nil {
				return err
			}
			if err := sess.AddChecklistItem(cmd.Context(), name); err != nil {
				return fail(app, "%v", err)
			}
			app.Printer.Success("Added %q", strings.TrimSpace(name))
			app.Printer.Checklist(sess.Record().PropertyChecklist)
			return nil
		},
	}
}

func newChecklistToggleCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "toggle <employee-id> <n>",
		Short: "Mark a checklist item returned or not returned",
		Long: `Flip the returned flag of item n, numbered from 1 as shown by
'offboard checklist'.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := strconv.Atoi(args[1])
			if err != nil {
				return fail(app, "Invalid item number %q", args[1])
			}

			sess, err := openSession(cmd, app, args[0])
			if err != nil {
				return err
			}
			count := len(sess.Record().PropertyChecklist)
			if n < 1 || n > count {
				return fail(app, "No item %d: the checklist has %d items, numbered from 1", n, count)
			}
			if err := sess.ToggleChecklistItem(cmd.Context(), n-1); err != nil {
				return fail(app, "%v", err)
			}
			item := sess.Record().PropertyChecklist[n-1]
			state := "not returned"
			if item.Returned {
				state = "returned"
			}
			app.Printer.Success("%s marked %s", item.Name, state)
			return nil
		},
	}
}
