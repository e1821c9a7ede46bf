// Package aggregator walks a directory tree and builds cumulative
// per-directory statistics of matching source files.
package aggregator

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	gitignore "github.com/monochromegane/go-gitignore"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"

	"github.com/taigrr/dirstats/internal/filesystem"
	"github.com/taigrr/dirstats/internal/pathfilter"
	"github.com/taigrr/dirstats/internal/scanner"
	"github.com/taigrr/dirstats/internal/types"
)

var (
	// ErrPathNotFound reports a root path that is missing or not a
	// directory.
	ErrPathNotFound = errors.New("path not found")

	errNotDirectory = errors.New("not a directory")
)

// PathError is returned by Traverse when the root cannot be scanned. It
// matches ErrPathNotFound with errors.Is.
type PathError struct {
	Path string
	Err  error
}

func (e *PathError) Error() string {
	return fmt.Sprintf("%s: %s: %v", ErrPathNotFound, e.Path, e.Err)
}

func (e *PathError) Unwrap() []error {
	return []error{ErrPathNotFound, e.Err}
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the logger used for skipped files and progress.
func WithLogger(log zerolog.Logger) Option {
	return func(s *Service) {
		s.log = log
	}
}

// WithGitignore makes traversal honour the .gitignore file at the root.
func WithGitignore(enabled bool) Option {
	return func(s *Service) {
		s.gitignore = enabled
	}
}

// Service aggregates directory statistics.
type Service struct {
	fs         afero.Fs
	pathFilter *pathfilter.PathFilter
	gitignore  bool
	log        zerolog.Logger
}

// New creates a new aggregator Service. A nil fsys uses the OS filesystem
// and a nil filter matches DefaultExtension.
func New(fsys afero.Fs, pf *pathfilter.PathFilter, opts ...Option) *Service {
	if fsys == nil {
		fsys = afero.NewOsFs()
	}
	if pf == nil {
		pf = pathfilter.New(nil)
	}
	s := &Service{
		fs:         fsys,
		pathFilter: pf,
		log:        zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// walk holds the state of a single Traverse call.
type walk struct {
	*Service
	root    string
	ignore  gitignore.IgnoreMatcher
	result  *types.TraversalResult
	scanned int
}

// Traverse computes a DirectorySummary for root and every directory
// beneath it. Each summary covers all matching files in that directory's
// whole subtree. Every matching file is read once and its stats are added
// to each of its ancestors up to root.
//
// Unreadable matching files are logged, recorded in the result's Errors
// and contribute nothing. Failing to list a directory aborts the walk and
// no result is returned.
func (s *Service) Traverse(root string) (*types.TraversalResult, error) {
	root = filepath.Clean(root)

	info, err := s.fs.Stat(root)
	if err != nil {
		return nil, &PathError{Path: root, Err: err}
	}
	if !info.IsDir() {
		return nil, &PathError{Path: root, Err: errNotDirectory}
	}

	w := &walk{
		Service: s,
		root:    root,
		result:  types.NewTraversalResult(),
	}
	if s.gitignore {
		w.ignore = s.loadGitignore(root)
	}

	if err := w.dir(root, ".", nil); err != nil {
		return nil, err
	}

	s.log.Info().
		Str("root", root).
		Int("directories", w.result.Len()).
		Int("files", w.scanned).
		Int("skipped", len(w.result.Errors())).
		Msg("traversal complete")

	return w.result, nil
}

func (s *Service) loadGitignore(root string) gitignore.IgnoreMatcher {
	path := filepath.Join(root, ".gitignore")
	content, err := filesystem.ReadFile(s.fs, path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			s.log.Warn().Err(err).Str("path", path).Msg("could not read .gitignore")
		}
		return nil
	}
	// Paths are matched relative to root, so the matcher base is ".".
	return gitignore.NewGitIgnoreFromReader(".", bytes.NewReader(content))
}

// dir registers path, then visits its entries in name order. ancestors
// holds every directory from root down to the parent of path.
func (w *walk) dir(path, rel string, ancestors []string) error {
	w.result.AddDirectory(path)
	ancestors = append(ancestors, path)

	w.log.Debug().Str("dir", path).Msg("scanning directory")

	entries, err := afero.ReadDir(w.fs, path)
	if err != nil {
		return fmt.Errorf("failed to list directory: %s - %w", path, err)
	}

	for _, entry := range entries {
		name := entry.Name()
		fullPath := filepath.Join(path, name)
		relPath := filepath.Join(rel, name)

		if w.skip(relPath, entry.IsDir()) {
			w.log.Debug().Str("path", fullPath).Msg("ignored")
			continue
		}

		if entry.IsDir() {
			// A slice per level keeps siblings from sharing a backing array.
			if err := w.dir(fullPath, relPath, ancestors[:len(ancestors):len(ancestors)]); err != nil {
				return err
			}
			continue
		}

		if !w.pathFilter.IsMatching(name) {
			continue
		}

		stats, ok, err := w.file(fullPath, entry)
		if err != nil {
			w.log.Warn().Err(err).Str("path", fullPath).Msg("skipping unreadable file")
			w.result.AddError(types.FileError{Path: fullPath, Err: err})
			continue
		}
		if !ok {
			continue
		}

		w.scanned++
		for _, dir := range ancestors {
			w.result.AddFile(dir, stats)
		}
	}

	return nil
}

func (w *walk) skip(relPath string, isDir bool) bool {
	if w.pathFilter.IsIgnored(relPath, isDir) {
		return true
	}
	return w.ignore != nil && w.ignore.Match(filepath.ToSlash(relPath), isDir)
}

// file scans one matching file. Symbolic links are resolved once; links
// to directories are not followed, so cycles cannot occur. ok is false
// for entries that are not regular files.
func (w *walk) file(path string, info os.FileInfo) (stats types.FileStats, ok bool, err error) {
	if info.Mode()&fs.ModeSymlink != 0 {
		info, err = w.fs.Stat(path)
		if err != nil {
			return types.FileStats{}, false, fmt.Errorf("failed to resolve link: %s - %w", path, err)
		}
	}
	if !info.Mode().IsRegular() {
		return types.FileStats{}, false, nil
	}

	content, err := filesystem.ReadFile(w.fs, path)
	if err != nil {
		return types.FileStats{}, false, err
	}

	return types.FileStats{
		Name:    filepath.Base(path),
		Size:    info.Size(),
		Markers: scanner.Scan(string(content)),
	}, true, nil
}
