// Package report renders traversal results.
package report

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/taigrr/dirstats/internal/types"
)

// Format selects the report encoding.
type Format string

const (
	// FormatText is the line-oriented report, one block per directory.
	FormatText Format = "text"
	// FormatJSON is one JSON document.
	FormatJSON Format = "json"
	// FormatYAML is one YAML document.
	FormatYAML Format = "yaml"
)

// ParseFormat validates a format name.
func ParseFormat(name string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(name))); f {
	case "":
		return FormatText, nil
	case FormatText, FormatJSON, FormatYAML:
		return f, nil
	case "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unsupported format %q: use text, json or yaml", name)
	}
}

type (
	// Document is the structured form of a traversal result.
	Document struct {
		Directories []types.DirectoryEntry `json:"directories" yaml:"directories"`
		Errors      []FileErrorRecord      `json:"errors" yaml:"errors"`
	}

	// FileErrorRecord describes a skipped file.
	FileErrorRecord struct {
		Path  string `json:"path" yaml:"path"`
		Error string `json:"error" yaml:"error"`
	}
)

// NewDocument converts a result into its structured form.
func NewDocument(result *types.TraversalResult) Document {
	doc := Document{
		Directories: result.Entries(),
		Errors:      []FileErrorRecord{},
	}
	for _, fe := range result.Errors() {
		doc.Errors = append(doc.Errors, FileErrorRecord{Path: fe.Path, Error: fe.Err.Error()})
	}
	return doc
}

// Write renders result to w in the given format.
func Write(w io.Writer, result *types.TraversalResult, format Format) error {
	switch format {
	case FormatText, "":
		return WriteText(w, result)
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(NewDocument(result))
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(NewDocument(result)); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unsupported format %q", format)
	}
}

// WriteText writes the directory path, its size and the four marker
// counts on separate lines, followed by a blank line, for every directory
// in visit order. Paths are printed in cleaned form: a root given as
// "src/" prints as "src" and its children as "src/A", not "src//A".
func WriteText(w io.Writer, result *types.TraversalResult) error {
	bw := bufio.NewWriter(w)
	for _, entry := range result.Entries() {
		s := entry.Summary
		fmt.Fprintln(bw, entry.Path)
		fmt.Fprintf(bw, "%d bytes\n", s.Size)
		fmt.Fprintf(bw, "%d public\n", s.Markers.Public)
		fmt.Fprintf(bw, "%d private\n", s.Markers.Private)
		fmt.Fprintf(bw, "%d try\n", s.Markers.Try)
		fmt.Fprintf(bw, "%d catch\n", s.Markers.Catch)
		fmt.Fprintln(bw)
	}
	return bw.Flush()
}
