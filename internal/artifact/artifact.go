// Package artifact uploads offboarding documents to a blob store.
//
// The [Store] interface is the only thing the offboarding workflow knows
// about. [DirStore] copies files into a local directory and [HTTPStore]
// PUTs them to a hosted blob service. Both return the URL the document can
// later be fetched from; that URL is what gets recorded in the case.
package artifact

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"mime"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"offboard/internal/record"
)

// ErrEmptyFile is returned when an upload carries no content.
var ErrEmptyFile = errors.New("file is empty")

// File is a document selected for upload.
type File struct {
	// Name is the original file name. Only its base name is kept in the
	// destination.
	Name        string
	ContentType string
	Data        []byte
}

// Store uploads files to a destination path and returns a retrievable URL.
type Store interface {
	Upload(ctx context.Context, file File, destination string) (string, error)
}

// ReadFile loads a local file for upload, guessing the content type from
// its extension.
func ReadFile(filePath string) (File, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return File{}, fmt.Errorf("failed to read %s: %w", filePath, err)
	}
	if len(data) == 0 {
		return File{}, fmt.Errorf("%s: %w", filePath, ErrEmptyFile)
	}
	contentType := mime.TypeByExtension(filepath.Ext(filePath))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return File{Name: filepath.Base(filePath), ContentType: contentType, Data: data}, nil
}

// DestinationPath builds <employee>/<slot>/<uuid>-<basename>.
//
// The random prefix keeps every upload at a distinct path, so replacing a
// document never overwrites the blob an older URL points at.
func DestinationPath(employeeID string, slot record.SlotID, fileName string) string {
	return path.Join(employeeID, string(slot), uuid.NewString()+"-"+baseName(fileName))
}

// baseName strips directories from either separator style and replaces
// characters that do not belong in a URL path.
func baseName(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	name = path.Base(name)
	if name == "." || name == "/" || name == ".." {
		return "document"
	}
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '.' || r == '-' || r == '_':
			return r
		}
		return '_'
	}, name)
}

// body returns the file content as a reader.
func (f File) body() *bytes.Reader {
	return bytes.NewReader(f.Data)
}
