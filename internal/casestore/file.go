package casestore

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"offboard/internal/record"
)

var (
	_ Store  = (*FileStore)(nil)
	_ Lister = (*FileStore)(nil)
)

// fileExt is the extension of case files inside the store directory.
const fileExt = ".yaml"

// FileStore keeps one YAML file per employee inside a directory.
//
// Writes go to a temporary file that is renamed over the target, so a crash
// mid-write leaves the previous record intact.
type FileStore struct {
	dir    string
	logger *slog.Logger
}

// FileOption configures a [FileStore].
type FileOption func(*FileStore)

// WithFileLogger sets the logger used by the store.
func WithFileLogger(l *slog.Logger) FileOption {
	return func(s *FileStore) { s.logger = l }
}

// NewFileStore creates a store rooted at dir. The directory is created on
// the first save.
func NewFileStore(dir string, opts ...FileOption) *FileStore {
	s := &FileStore{dir: dir, logger: slog.Default()}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Dir returns the store directory.
func (s *FileStore) Dir() string { return s.dir }

// Path returns the file that holds the employee's case.
func (s *FileStore) Path(employeeID string) string {
	return filepath.Join(s.dir, employeeID+fileExt)
}

// Load reads and parses the employee's case file.
func (s *FileStore) Load(_ context.Context, employeeID string) (record.Record, error) {
	if err := ValidateEmployeeID(employeeID); err != nil {
		return record.Record{}, err
	}

	data, err := os.ReadFile(s.Path(employeeID))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return record.Record{}, ErrNotFound
		}
		return record.Record{}, fmt.Errorf("failed to read case %s: %w", employeeID, err)
	}

	var rec record.Record
	if err := yaml.Unmarshal(data, &rec); err != nil {
		return record.Record{}, fmt.Errorf("failed to parse case %s: %w", employeeID, err)
	}
	return rec.Normalize(), nil
}

// Save writes the employee's case file atomically.
func (s *FileStore) Save(_ context.Context, employeeID string, rec record.Record) error {
	if err := ValidateEmployeeID(employeeID); err != nil {
		return err
	}

	data, err := yaml.Marshal(&rec)
	if err != nil {
		return fmt.Errorf("failed to marshal case %s: %w", employeeID, err)
	}

	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return fmt.Errorf("failed to create case directory: %w", err)
	}

	fullPath := s.Path(employeeID)
	tmpPath := fullPath + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write case %s: %w", employeeID, err)
	}
	if err := os.Rename(tmpPath, fullPath); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write case %s: %w", employeeID, err)
	}

	s.logger.Debug("case saved", slog.String("employee_id", employeeID), slog.String("path", fullPath))
	return nil
}

// Remove deletes the employee's case file.
func (s *FileStore) Remove(_ context.Context, employeeID string) error {
	if err := ValidateEmployeeID(employeeID); err != nil {
		return err
	}
	err := os.Remove(s.Path(employeeID))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to remove case %s: %w", employeeID, err)
	}
	return nil
}

// List returns the employees with a case file, sorted.
func (s *FileStore) List(_ context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to list cases: %w", err)
	}

	ids := make([]string, 0, len(entries))
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, fileExt) {
			continue
		}
		ids = append(ids, strings.TrimSuffix(name, fileExt))
	}
	sort.Strings(ids)
	return ids, nil
}
