// Package filesystem provides sandboxed file access over an afero
// filesystem.
package filesystem

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// ReadFile opens path, reads it fully and closes it before returning,
// including when the read fails partway.
func ReadFile(fsys afero.Fs, path string) (content []byte, err error) {
	f, err := fsys.Open(path)
	if err != nil {
		return nil, describe(path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close file: %s - %w", path, cerr)
		}
	}()

	content, err = io.ReadAll(f)
	if err != nil {
		return nil, describe(path, err)
	}
	return content, nil
}

func describe(path string, err error) error {
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("file not found: %s - %w", path, err)
	}
	if errors.Is(err, fs.ErrPermission) {
		return fmt.Errorf("permission denied: %s - %w", path, err)
	}
	return fmt.Errorf("failed to read file: %s - %w", path, err)
}

// Service confines file access to a base directory.
type Service struct {
	fs       afero.Fs
	basePath string
}

// New creates a new Service rooted at basePath. A nil fsys uses the OS
// filesystem.
func New(fsys afero.Fs, basePath string) *Service {
	if fsys == nil {
		fsys = afero.NewOsFs()
	}
	absPath, err := filepath.Abs(basePath)
	if err != nil {
		absPath = filepath.Clean(basePath)
	}
	return &Service{
		fs:       fsys,
		basePath: absPath,
	}
}

// Fs returns the underlying filesystem.
func (s *Service) Fs() afero.Fs {
	return s.fs
}

// BasePath returns the absolute base directory.
func (s *Service) BasePath() string {
	return s.basePath
}

// ResolvePath resolves a relative path within the base directory and
// validates it.
func (s *Service) ResolvePath(relativePath string) (string, error) {
	relativePath = strings.TrimSpace(relativePath)
	relativePath = strings.TrimPrefix(relativePath, "/")

	fullPath := filepath.Join(s.basePath, relativePath)

	// Security check: ensure path is within the base directory
	relPath, err := filepath.Rel(s.basePath, fullPath)
	if err != nil {
		return "", err
	}
	if relPath == ".." || strings.HasPrefix(relPath, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("path traversal not allowed: %s", relativePath)
	}

	return fullPath, nil
}

// ReadFile reads a file relative to the base directory.
func (s *Service) ReadFile(path string) ([]byte, error) {
	fullPath, err := s.ResolvePath(path)
	if err != nil {
		return nil, err
	}

	isDir, _ := s.IsDirectory(path)
	if isDir {
		return nil, fmt.Errorf("cannot read directory as file: %s", path)
	}

	return ReadFile(s.fs, fullPath)
}

// IsDirectory checks if a path relative to the base directory is a
// directory.
func (s *Service) IsDirectory(path string) (bool, error) {
	fullPath, err := s.ResolvePath(path)
	if err != nil {
		return false, err
	}

	info, err := s.fs.Stat(fullPath)
	if err != nil {
		return false, nil
	}

	return info.IsDir(), nil
}

// RelativePath returns fullPath relative to the base directory with
// forward slashes. The base directory itself is ".".
func (s *Service) RelativePath(fullPath string) string {
	rel, err := filepath.Rel(s.basePath, fullPath)
	if err != nil {
		return filepath.ToSlash(fullPath)
	}
	return filepath.ToSlash(rel)
}
