package types

type (
	// DirectoryEntry pairs a directory path with its summary.
	DirectoryEntry struct {
		Path    string           `json:"path" yaml:"path"`
		Summary DirectorySummary `json:"summary" yaml:"summary"`
	}

	// FileError records a matching file that could not be read. The file
	// contributes nothing to any summary.
	FileError struct {
		Path string `json:"path" yaml:"path"`
		Err  error  `json:"-" yaml:"-"`
	}

	// TraversalResult maps directory paths to summaries, keeping the order
	// in which directories were first visited (pre-order, root first).
	TraversalResult struct {
		entries []DirectoryEntry
		index   map[string]int
		errors  []FileError
	}
)

func (e FileError) Error() string {
	return "read " + e.Path + ": " + e.Err.Error()
}

func (e FileError) Unwrap() error {
	return e.Err
}

// NewTraversalResult creates an empty result.
func NewTraversalResult() *TraversalResult {
	return &TraversalResult{index: make(map[string]int)}
}

// AddDirectory registers path with an empty summary. Registering a path
// twice keeps the first position.
func (r *TraversalResult) AddDirectory(path string) {
	if _, ok := r.index[path]; ok {
		return
	}
	r.index[path] = len(r.entries)
	r.entries = append(r.entries, DirectoryEntry{
		Path:    path,
		Summary: DirectorySummary{Files: []string{}},
	})
}

// AddFile folds stats into the summary of the registered directory path.
// It reports false if path was never registered.
func (r *TraversalResult) AddFile(path string, stats FileStats) bool {
	i, ok := r.index[path]
	if !ok {
		return false
	}
	r.entries[i].Summary.AddFile(stats)
	return true
}

// AddError records a file that could not be read.
func (r *TraversalResult) AddError(fe FileError) {
	r.errors = append(r.errors, fe)
}

// Get returns the summary stored for path.
func (r *TraversalResult) Get(path string) (DirectorySummary, bool) {
	i, ok := r.index[path]
	if !ok {
		return DirectorySummary{}, false
	}
	return r.entries[i].Summary, true
}

// Paths returns directory paths in visit order.
func (r *TraversalResult) Paths() []string {
	paths := make([]string, len(r.entries))
	for i, e := range r.entries {
		paths[i] = e.Path
	}
	return paths
}

// Entries returns a copy of the entries in visit order.
func (r *TraversalResult) Entries() []DirectoryEntry {
	out := make([]DirectoryEntry, len(r.entries))
	copy(out, r.entries)
	return out
}

// Errors returns the files that could not be read, in visit order.
func (r *TraversalResult) Errors() []FileError {
	out := make([]FileError, len(r.errors))
	copy(out, r.errors)
	return out
}

// Len returns the number of directories.
func (r *TraversalResult) Len() int {
	return len(r.entries)
}
