// Package cli implements the offboard command line interface.
//
// Commands are built with Cobra. Every command receives an [App] that holds
// its dependencies, so tests can build an App from in-memory stores and mock
// collaborators and run commands without touching the network or exiting the
// process.
//
// Commands:
//   - stages: list the offboarding stages and their requirements
//   - cases: list employees with an open case
//   - status: show one case
//   - upload, last-day, checklist: edit a case
//   - finalize: complete the termination
//   - wizard: step through a case interactively
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"offboard/internal/casestore"
	"offboard/internal/config"
	"offboard/internal/offboarding"
	"offboard/internal/output"
)

// WizardFunc runs the interactive wizard for an open session.
type WizardFunc func(ctx context.Context, sess *offboarding.Session) error

// App holds the dependencies shared by all commands.
type App struct {
	Config  *config.Config
	Service *offboarding.Service
	Cases   casestore.Lister
	Printer output.Printer
	Logger  *slog.Logger

	// Wizard runs the interactive wizard. Tests replace it.
	Wizard WizardFunc

	// closers release backend connections when the command finishes.
	closers []func() error
}

// Close releases the resources opened by [NewApp].
func (a *App) Close() error {
	var first error
	for _, c := range a.closers {
		if err := c(); err != nil && first == nil {
			first = err
		}
	}
	a.closers = nil
	return first
}

// ExecuteResult is the outcome of running the root command.
type ExecuteResult struct {
	ExitCode int
	Err      error
}

// NewRootCommand creates the root command with every subcommand attached.
func NewRootCommand(app *App) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "offboard",
		Short: "Employee offboarding workflow",
		Long: `offboard walks an employee's termination through six stages:

  0. Resignation Notice      upload the resignation letter
  1. Last Working Day        set the date
  2. Exit Interview Summary  upload the interview summary
  3. Property Return         track returned company property
  4. Final Pay Details       upload the final pay statement
  5. Complete Termination    remove the employee from all systems

Progress is saved after every change. Reopening a case continues at the
first unfinished stage.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		newStagesCommand(app),
		newCasesCommand(app),
		newStatusCommand(app),
		newUploadCommand(app),
		newLastDayCommand(app),
		newChecklistCommand(app),
		newFinalizeCommand(app),
		newWizardCommand(app),
	)
	return rootCmd
}

// RunWithConfig builds the application from cfg and runs the root command
// with the process arguments.
func RunWithConfig(cfg *config.Config) ExecuteResult {
	app, err := NewApp(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return ExecuteResult{ExitCode: 1, Err: err}
	}
	defer app.Close()

	rootCmd := NewRootCommand(app)
	if err := rootCmd.Execute(); err != nil {
		if code, ok := IsExitError(err); ok {
			return ExecuteResult{ExitCode: code, Err: err}
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return ExecuteResult{ExitCode: 1, Err: err}
	}
	return ExecuteResult{ExitCode: 0}
}

// Execute loads configuration, runs the CLI and exits with its code.
func Execute() {
	cfg, err := config.NewLoader().Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	result := RunWithConfig(cfg)
	if result.ExitCode != 0 {
		os.Exit(result.ExitCode)
	}
}
