package offboarding

import (
	"errors"
	"fmt"

	"offboard/internal/record"
	"offboard/internal/stage"
)

// Sentinel errors returned by [Session] operations.
var (
	// ErrBusy is returned when an operation of the same kind is already in
	// flight. The second call is dropped, not queued.
	ErrBusy = errors.New("operation already in progress")

	// ErrFinalized is returned by every mutation after the case was
	// finalized and its record deleted.
	ErrFinalized = errors.New("case already finalized")

	// ErrUploadDiscarded is returned when an upload reached the artifact
	// store but finished after finalization began, so its URL was not
	// recorded.
	ErrUploadDiscarded = errors.New("upload discarded")

	// ErrEmptyItemName is returned when a checklist item name is blank after
	// trimming.
	ErrEmptyItemName = errors.New("checklist item name is empty")

	// ErrEmptyDate is returned when the last working day is the zero date.
	ErrEmptyDate = errors.New("last working day is empty")

	// ErrChecklistIndex is returned when a checklist index is out of range.
	ErrChecklistIndex = record.ErrChecklistIndex

	// ErrUnknownSlot is returned when an upload names a slot that is not an
	// artifact slot.
	ErrUnknownSlot = record.ErrUnknownSlot
)

// UploadError reports a failed document upload. Its message is the artifact
// store's message unchanged so it can be shown to the user as is.
type UploadError struct {
	Slot record.SlotID
	Err  error
}

func (e *UploadError) Error() string {
	return e.Err.Error()
}

func (e *UploadError) Unwrap() error {
	return e.Err
}

// ValidationError names the first hard requirement that blocks
// finalization.
type ValidationError struct {
	Stage stage.Stage
	Slot  record.SlotID
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s is missing: complete %q first", e.Slot.Label(), e.Stage)
}

// RemovalError reports that the remote removal call failed. Nothing was
// deleted locally when it is returned.
type RemovalError struct {
	EmployeeID string
	Err        error
}

func (e *RemovalError) Error() string {
	return fmt.Sprintf("failed to remove employee %s: %v", e.EmployeeID, e.Err)
}

func (e *RemovalError) Unwrap() error {
	return e.Err
}
