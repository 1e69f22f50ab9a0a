package artifact

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

var _ Store = (*DirStore)(nil)

// DirStore keeps uploaded documents under a local directory and returns
// file:// URLs.
type DirStore struct {
	root   string
	logger *slog.Logger
}

// NewDirStore creates a store rooted at dir.
func NewDirStore(dir string, logger *slog.Logger) *DirStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &DirStore{root: dir, logger: logger}
}

// Upload writes the file to root/destination.
func (s *DirStore) Upload(ctx context.Context, file File, destination string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if len(file.Data) == 0 {
		return "", ErrEmptyFile
	}

	rel := filepath.Clean(filepath.FromSlash(destination))
	if rel == "." || filepath.IsAbs(rel) || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("invalid destination %q", destination)
	}

	root, err := filepath.Abs(s.root)
	if err != nil {
		return "", fmt.Errorf("failed to resolve artifact directory: %w", err)
	}
	target := filepath.Join(root, rel)
	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return "", fmt.Errorf("failed to create artifact directory: %w", err)
	}

	f, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return "", fmt.Errorf("failed to create %s: %w", destination, err)
	}
	if _, err := io.Copy(f, file.body()); err != nil {
		f.Close()
		os.Remove(target)
		return "", fmt.Errorf("failed to write %s: %w", destination, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(target)
		return "", fmt.Errorf("failed to write %s: %w", destination, err)
	}

	u := url.URL{Scheme: "file", Path: filepath.ToSlash(target)}
	s.logger.Debug("artifact stored", slog.String("destination", destination), slog.String("path", target))
	return u.String(), nil
}
