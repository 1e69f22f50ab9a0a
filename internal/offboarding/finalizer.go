package offboarding

import (
	"context"
	"fmt"
	"log/slog"

	"offboard/internal/casestore"
	"offboard/internal/record"
	"offboard/internal/removal"
	"offboard/internal/stage"
)

// Finalizer completes a termination: it verifies the hard requirements,
// removes the employee remotely and then deletes the persisted case.
//
// Finalization is all-or-nothing. Any failure before the remote removal
// succeeds leaves the persisted case untouched.
type Finalizer struct {
	store   casestore.Store
	remover removal.Remover
	logger  *slog.Logger
}

// NewFinalizer creates a Finalizer.
func NewFinalizer(store casestore.Store, remover removal.Remover) *Finalizer {
	return &Finalizer{store: store, remover: remover, logger: slog.Default()}
}

// SetLogger configures the logger.
func (f *Finalizer) SetLogger(l *slog.Logger) {
	f.logger = l
}

// Finalize checks rec and, when complete, removes the employee.
//
// Requirements are checked in the order resignation, last working day, exit
// interview, final pay, and the first unmet one is returned as a
// [*ValidationError]. Property return is not checked. A failed remote call
// is returned as a [*RemovalError]. If the remote call succeeds but the case
// cannot be deleted, the error is returned and a retry will call the remote
// removal again, which treats an already removed employee as success.
func (f *Finalizer) Finalize(ctx context.Context, employeeID string, rec record.Record) error {
	if missing := stage.Missing(rec); len(missing) > 0 {
		first := missing[0]
		f.logger.Info("finalize refused",
			slog.String("employee_id", employeeID),
			slog.String("slot", string(first.Slot)),
		)
		return &ValidationError{Stage: first.Stage, Slot: first.Slot}
	}

	if err := f.remover.Remove(ctx, employeeID); err != nil {
		f.logger.Warn("remote removal failed", slog.String("employee_id", employeeID), slog.Any("error", err))
		return &RemovalError{EmployeeID: employeeID, Err: err}
	}

	if err := f.store.Remove(ctx, employeeID); err != nil {
		return fmt.Errorf("employee %s was removed but the case could not be deleted: %w", employeeID, err)
	}

	f.logger.Info("case finalized", slog.String("employee_id", employeeID))
	return nil
}
