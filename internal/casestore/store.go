// Package casestore persists offboarding case records keyed by employee
// identifier.
//
// The workflow writes through to a [Store] after every mutation and deletes
// the record once the case is finalized. An absent record is not an error
// condition for the workflow: it means the case has not been started, and
// [Store.Load] reports it with [ErrNotFound] so callers can default to an
// empty case.
//
// Implementations:
//   - [FileStore] - one YAML file per employee, written atomically
//   - [MemoryStore] - in-process map, for tests and dry runs
//   - [RedisStore] - shared Redis keyspace
package casestore

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"offboard/internal/record"
)

// Sentinel errors for case persistence.
var (
	// ErrNotFound is returned by Load when no record exists for the employee.
	ErrNotFound = errors.New("casestore: case not found")

	// ErrInvalidEmployeeID is returned for identifiers that cannot be used as
	// a storage key.
	ErrInvalidEmployeeID = errors.New("casestore: invalid employee id")
)

// maxEmployeeIDLength bounds identifiers so they stay usable as file names.
const maxEmployeeIDLength = 128

// Store is the persistence contract for offboarding cases.
type Store interface {
	// Load returns the record for the employee, or [ErrNotFound].
	Load(ctx context.Context, employeeID string) (record.Record, error)

	// Save replaces the record for the employee.
	Save(ctx context.Context, employeeID string, rec record.Record) error

	// Remove deletes the record for the employee. Removing an absent record
	// is not an error.
	Remove(ctx context.Context, employeeID string) error
}

// Lister is implemented by stores that can enumerate open cases.
type Lister interface {
	// List returns the employee identifiers with a stored case, sorted.
	List(ctx context.Context) ([]string, error)
}

// ValidateEmployeeID checks that id is usable as a storage key.
//
// Identifiers must be non-blank, at most 128 bytes, and free of path
// separators and whitespace.
func ValidateEmployeeID(id string) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("%w: empty", ErrInvalidEmployeeID)
	}
	if len(id) > maxEmployeeIDLength {
		return fmt.Errorf("%w: longer than %d bytes", ErrInvalidEmployeeID, maxEmployeeIDLength)
	}
	if id == "." || id == ".." || strings.ContainsAny(id, "/\\ \t\r\n") {
		return fmt.Errorf("%w: %q", ErrInvalidEmployeeID, id)
	}
	return nil
}
