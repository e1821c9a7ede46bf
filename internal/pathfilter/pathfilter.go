// Package pathfilter decides which files are matching source files and
// which paths are skipped during traversal.
package pathfilter

import (
	"path/filepath"
	"regexp"
	"strings"

	"github.com/taigrr/dirstats/internal/types"
)

// PathFilter filters matching files and ignored paths.
type PathFilter struct {
	extension       string
	ignoredPatterns []*regexp.Regexp
}

// New creates a new PathFilter with the given configuration. Without a
// configured extension it matches DefaultExtension and ignores nothing.
func New(config *types.PathFilterConfig) *PathFilter {
	pf := &PathFilter{extension: types.DefaultExtension}
	if config == nil {
		return pf
	}

	if ext := strings.TrimSpace(config.Extension); ext != "" {
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		pf.extension = ext
	}
	for _, pattern := range config.IgnoredPatterns {
		if re, ok := compileGlob(pattern); ok {
			pf.ignoredPatterns = append(pf.ignoredPatterns, re)
		}
	}
	return pf
}

// compileGlob converts a glob pattern to an anchored regex.
func compileGlob(pattern string) (*regexp.Regexp, bool) {
	// Normalize pattern path separators (Windows compatibility)
	normalizedPattern := strings.ReplaceAll(strings.TrimSpace(pattern), "\\", "/")
	if normalizedPattern == "" {
		return nil, false
	}

	// Escape all regex special chars first
	regexPattern := regexp.QuoteMeta(normalizedPattern)

	// Convert glob patterns (unescape the escaped versions)
	regexPattern = strings.ReplaceAll(regexPattern, `\*\*`, ".*")  // ** matches any
	regexPattern = strings.ReplaceAll(regexPattern, `\*`, "[^/]*") // * matches non-slash
	regexPattern = strings.ReplaceAll(regexPattern, `\?`, "[^/]")  // ? matches single char

	re, err := regexp.Compile("^" + regexPattern + "$")
	if err != nil {
		return nil, false
	}
	return re, true
}

// Extension returns the target extension, including the leading dot.
func (pf *PathFilter) Extension() string {
	return pf.extension
}

// IsMatching reports whether the file name carries the target extension.
// Leading dots are not an extension, so ".java" alone does not match.
func (pf *PathFilter) IsMatching(name string) bool {
	base := strings.TrimLeft(filepath.Base(name), ".")
	return filepath.Ext(base) == pf.extension
}

// IsIgnored reports whether a path relative to the traversal root matches
// any ignored pattern. Directories are also tested with a trailing slash
// so "build/**" skips the build directory itself.
func (pf *PathFilter) IsIgnored(relPath string, isDir bool) bool {
	normalizedPath := strings.ReplaceAll(relPath, "\\", "/")
	if normalizedPath == "." || normalizedPath == "" {
		return false
	}

	for _, re := range pf.ignoredPatterns {
		if re.MatchString(normalizedPath) {
			return true
		}
		if isDir && re.MatchString(normalizedPath+"/") {
			return true
		}
	}
	return false
}
