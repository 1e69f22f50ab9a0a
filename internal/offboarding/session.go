package offboarding

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"offboard/internal/artifact"
	"offboard/internal/record"
	"offboard/internal/stage"
)

// Progress summarizes where a case stands.
type Progress struct {
	Stage    stage.Stage
	Missing  []stage.Requirement
	Returned int
	Items    int
}

// Complete reports whether every hard requirement is met.
func (p Progress) Complete() bool {
	return len(p.Missing) == 0
}

// Session is one open offboarding case.
//
// All methods are safe for concurrent use. Uploads and finalization run
// their remote call outside the session lock and apply the result under
// it. While finalization is in flight the record is frozen and edits
// return [ErrBusy].
type Session struct {
	svc        *Service
	employeeID string

	mu         sync.Mutex
	rec        record.Record
	cursor     stage.Stage
	uploading  bool
	finalizing bool
	finalized  bool
}

// EmployeeID returns the employee the case belongs to.
func (s *Session) EmployeeID() string {
	return s.employeeID
}

// Stage returns the current cursor.
func (s *Session) Stage() stage.Stage {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cursor
}

// Record returns a copy of the in-memory record.
func (s *Session) Record() record.Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rec.Clone()
}

// CanAdvance reports whether forward navigation from the current stage is
// allowed.
func (s *Session) CanAdvance() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return stage.CanAdvance(s.cursor, s.rec)
}

// Advance moves the cursor forward when the current stage's requirement is
// met. It reports whether the cursor moved.
func (s *Session) Advance() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := stage.Next(s.cursor, s.rec)
	if next == s.cursor {
		return false
	}
	s.cursor = next
	return true
}

// Retreat moves the cursor back one stage. It reports whether the cursor
// moved, which is false only on the first stage.
func (s *Session) Retreat() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	prev := stage.Prev(s.cursor)
	if prev == s.cursor {
		return false
	}
	s.cursor = prev
	return true
}

// Busy reports whether an upload or finalization is in flight.
func (s *Session) Busy() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.uploading || s.finalizing
}

// Finalized reports whether the case was finalized.
func (s *Session) Finalized() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.finalized
}

// Progress returns the cursor, the unmet hard requirements and the
// checklist counts.
func (s *Session) Progress() Progress {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Progress{
		Stage:    s.cursor,
		Missing:  stage.Missing(s.rec),
		Returned: s.rec.ReturnedCount(),
		Items:    len(s.rec.PropertyChecklist),
	}
}

// SaveArtifact uploads file into slot and records the returned URL,
// replacing any earlier document in the slot.
//
// An upload failure is returned as [*UploadError] and leaves the slot as it
// was. A call made while another upload is in flight returns [ErrBusy]. An
// upload that completes once finalization has started is not recorded and
// returns [ErrUploadDiscarded].
func (s *Session) SaveArtifact(ctx context.Context, slot record.SlotID, file artifact.File) (string, error) {
	if !slot.IsArtifact() {
		return "", fmt.Errorf("%w: %q", ErrUnknownSlot, slot)
	}

	s.mu.Lock()
	if err := s.checkEditable(); err != nil {
		s.mu.Unlock()
		return "", err
	}
	if s.uploading {
		s.mu.Unlock()
		s.svc.logger.Debug("upload dropped", slog.String("employee_id", s.employeeID), slog.String("slot", string(slot)))
		return "", ErrBusy
	}
	s.uploading = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.uploading = false
		s.mu.Unlock()
	}()

	destination := artifact.DestinationPath(s.employeeID, slot, file.Name)
	url, err := s.svc.artifacts.Upload(ctx, file, destination)
	if err != nil {
		s.svc.logger.Warn("upload failed",
			slog.String("employee_id", s.employeeID),
			slog.String("slot", string(slot)),
			slog.Any("error", err),
		)
		return "", &UploadError{Slot: slot, Err: err}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.finalized {
		return "", fmt.Errorf("%w: %w", ErrUploadDiscarded, ErrFinalized)
	}
	if s.finalizing {
		return "", fmt.Errorf("%w: case is being finalized", ErrUploadDiscarded)
	}
	next, err := s.rec.WithArtifact(slot, url)
	if err != nil {
		return "", &UploadError{Slot: slot, Err: err}
	}
	if err := s.commit(ctx, next); err != nil {
		return "", err
	}

	s.svc.logger.Info("artifact saved",
		slog.String("employee_id", s.employeeID),
		slog.String("slot", string(slot)),
		slog.String("url", url),
	)
	return url, nil
}

// SetLastWorkingDay records the employee's last working day.
func (s *Session) SetLastWorkingDay(ctx context.Context, day record.Date) error {
	if day.IsZero() {
		return ErrEmptyDate
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkEditable(); err != nil {
		return err
	}
	return s.commit(ctx, s.rec.WithLastWorkingDay(day))
}

// ToggleChecklistItem flips the returned flag of the item at index.
func (s *Session) ToggleChecklistItem(ctx context.Context, index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkEditable(); err != nil {
		return err
	}
	next, err := s.rec.WithChecklistToggled(index)
	if err != nil {
		return err
	}
	return s.commit(ctx, next)
}

// AddChecklistItem appends a not yet returned item. The name is trimmed and
// must not be empty. Duplicate names are allowed.
func (s *Session) AddChecklistItem(ctx context.Context, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyItemName
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkEditable(); err != nil {
		return err
	}
	return s.commit(ctx, s.rec.WithChecklistItem(name))
}

// Finalize completes the termination through the service's [Finalizer].
//
// On success the case record is deleted and every later mutation returns
// [ErrFinalized]. On failure nothing changes and the call may be retried.
// A call made while another finalization is in flight returns [ErrBusy].
func (s *Session) Finalize(ctx context.Context) error {
	s.mu.Lock()
	if s.finalized {
		s.mu.Unlock()
		return ErrFinalized
	}
	if s.finalizing {
		s.mu.Unlock()
		s.svc.logger.Debug("finalize dropped", slog.String("employee_id", s.employeeID))
		return ErrBusy
	}
	s.finalizing = true
	snapshot := s.rec.Clone()
	s.mu.Unlock()

	err := s.svc.finalizer.Finalize(ctx, s.employeeID, snapshot)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.finalizing = false
	if err != nil {
		return err
	}
	s.finalized = true
	return nil
}

// checkEditable returns the error that blocks edits, if any. Callers hold mu.
func (s *Session) checkEditable() error {
	if s.finalized {
		return ErrFinalized
	}
	if s.finalizing {
		return ErrBusy
	}
	return nil
}

// commit persists next and adopts it on success. Callers hold mu.
func (s *Session) commit(ctx context.Context, next record.Record) error {
	if err := s.svc.store.Save(ctx, s.employeeID, next); err != nil {
		s.svc.logger.Error("case save failed", slog.String("employee_id", s.employeeID), slog.Any("error", err))
		return fmt.Errorf("failed to save case %s: %w", s.employeeID, err)
	}
	s.rec = next
	return nil
}
