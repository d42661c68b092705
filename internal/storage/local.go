package storage

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// ErrTooLarge is returned by Save when the contents exceed the size limit
var ErrTooLarge = errors.New("file exceeds maximum size")

// ErrNotFound is returned by Get when nothing is stored at the path
var ErrNotFound = errors.New("file not found")

// Storage keeps replay files
type Storage interface {
	Save(path string, contents io.Reader) error
	Get(path string) (*os.File, error)
}

// Local is a Storage backed by a directory on the local disk
type Local struct {
	maxFileSize int64 // Maximum number of bytes for files
	basePath    string
}

// NewLocal creates a new Local filesystem with the given base path
// basePath is the base directory to save the files to
// maxSize is the max number of bytes that a file can be
func NewLocal(basePath string, maxSize int64) (*Local, error) {
	p, err := filepath.Abs(basePath)
	if err != nil {
		return nil, err
	}

	return &Local{basePath: p, maxFileSize: maxSize}, nil
}

// Save writes contents to path. The file only appears once it is complete.
func (l *Local) Save(path string, contents io.Reader) error {
	fp, err := l.fullPath(path)
	if err != nil {
		return err
	}
	dir := filepath.Dir(fp)

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("unable to create directory: %w", err)
	}

	tempFile, err := os.CreateTemp(dir, "temp-*")
	if err != nil {
		return fmt.Errorf("unable to create temporary file: %w", err)
	}
	tempPath := tempFile.Name()
	// no-op once the rename succeeded
	defer os.Remove(tempPath)

	// read one byte past the limit to tell "exactly max" from "too big"
	written, err := io.Copy(tempFile, io.LimitReader(contents, l.maxFileSize+1))
	if err != nil {
		tempFile.Close()
		return fmt.Errorf("unable to write to file: %w", err)
	}

	if err = tempFile.Close(); err != nil {
		return fmt.Errorf("unable to close temporary file: %w", err)
	}

	if written > l.maxFileSize {
		return fmt.Errorf("%w of %d bytes", ErrTooLarge, l.maxFileSize)
	}

	if err := os.Rename(tempPath, fp); err != nil {
		return fmt.Errorf("unable to move temporary file to final location: %w", err)
	}

	return nil
}

// Get opens the file at path. The caller must close it.
func (l *Local) Get(path string) (*os.File, error) {
	fp, err := l.fullPath(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(fp)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	if err != nil {
		return nil, fmt.Errorf("unable to open the file: %w", err)
	}

	return f, nil
}

// fullPath joins path to the base path, refusing paths that escape it
func (l *Local) fullPath(path string) (string, error) {
	fp := filepath.Join(l.basePath, path)
	if fp != l.basePath && !strings.HasPrefix(fp, l.basePath+string(filepath.Separator)) {
		return "", fmt.Errorf("invalid path %q", path)
	}
	return fp, nil
}
