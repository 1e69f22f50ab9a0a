// Package offboarding runs an employee's offboarding case.
//
// A [Service] wires the collaborators together: the case store that
// persists records, the artifact store that receives uploaded documents and
// the remote removal service called on completion. [Service.Open] loads a
// case into a [Session], which holds the in-memory record, the stage cursor
// and the busy flags.
//
// Key concepts:
//   - The cursor is never stored. Opening a case derives it with
//     [stage.Resolve], so a returning user lands on the first unfinished
//     stage.
//   - Every mutation is written through. The change is applied to a copy,
//     the copy is saved, and only then does the session adopt it.
//   - Uploads and finalization each refuse a second call while one is in
//     flight with [ErrBusy].
//   - [Finalizer] removes the employee remotely and deletes the case, or
//     changes nothing at all.
package offboarding

import (
	"context"
	"errors"
	"log/slog"

	"offboard/internal/artifact"
	"offboard/internal/casestore"
	"offboard/internal/record"
	"offboard/internal/removal"
	"offboard/internal/stage"
)

// Service opens offboarding sessions.
//
// Service uses dependency injection for testability: [casestore.Store]
// persists records, [artifact.Store] uploads documents and
// [removal.Remover] deletes the employee remotely. Use [NewService] to
// create an instance and [Service.Open] to start a session.
type Service struct {
	store     casestore.Store
	artifacts artifact.Store
	finalizer *Finalizer
	defaults  []string
	logger    *slog.Logger
}

// NewService creates a Service with the required dependencies.
//
// The default checklist is empty; use [Service.SetDefaultChecklist] to seed
// new cases with property items.
func NewService(store casestore.Store, artifacts artifact.Store, remover removal.Remover) *Service {
	return &Service{
		store:     store,
		artifacts: artifacts,
		finalizer: NewFinalizer(store, remover),
		logger:    slog.Default(),
	}
}

// SetLogger configures the logger used by the service, its sessions and its
// finalizer.
func (s *Service) SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.Default()
	}
	s.logger = l
	s.finalizer.SetLogger(l)
}

// SetDefaultChecklist sets the property items a new case starts with. The
// names are copied, so later changes to names never reach the service.
func (s *Service) SetDefaultChecklist(names []string) {
	s.defaults = append([]string(nil), names...)
}

// DefaultChecklist returns a copy of the configured default items.
func (s *Service) DefaultChecklist() []string {
	return append([]string(nil), s.defaults...)
}

// Open loads the employee's case and positions the cursor on the first
// unfinished stage.
//
// An absent case is not an error: the session starts from an empty record
// with the default checklist. Nothing is written until the first mutation.
func (s *Service) Open(ctx context.Context, employeeID string) (*Session, error) {
	rec, err := s.store.Load(ctx, employeeID)
	switch {
	case errors.Is(err, casestore.ErrNotFound):
		rec = record.New(s.defaults)
		s.logger.Debug("new case", slog.String("employee_id", employeeID))
	case err != nil:
		return nil, err
	default:
		rec = rec.Normalize().WithDefaults(s.defaults)
	}

	landing := stage.Resolve(rec)
	s.logger.Info("case opened",
		slog.String("employee_id", employeeID),
		slog.String("stage", landing.String()),
	)

	return &Session{
		svc:        s,
		employeeID: employeeID,
		rec:        rec,
		cursor:     landing,
	}, nil
}
