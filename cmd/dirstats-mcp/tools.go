package main

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/taigrr/dirstats/internal/report"
	"github.com/taigrr/dirstats/internal/types"
)

type (
	// ScanInput contains parameters for scanning a directory.
	ScanInput struct {
		Path      string `json:"path,omitempty" jsonschema:"Directory relative to the workspace root (default: the root)"`
		Extension string `json:"extension,omitempty" jsonschema:"Extension of matching files, e.g. .java (default: configured extension)"`
	}

	// ScanOutput contains one record per visited directory, root first.
	ScanOutput struct {
		Root        string                   `json:"root"`
		Extension   string                   `json:"extension"`
		Directories []types.DirectoryEntry   `json:"directories"`
		Errors      []report.FileErrorRecord `json:"errors"`
	}

	// CountInput contains text, or a file path, to count markers in.
	CountInput struct {
		Content string `json:"content,omitempty" jsonschema:"Source text to scan"`
		Path    string `json:"path,omitempty" jsonschema:"File relative to the workspace root, used when content is empty"`
	}

	// CountOutput contains marker counts after comment and string stripping.
	CountOutput struct {
		Path    string             `json:"path,omitempty"`
		Markers types.MarkerCounts `json:"markers"`
	}
)

func registerTools(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "scan_directory",
		Description: "Walk a directory in the workspace and return, for it and every directory beneath it, the cumulative size of matching source files in its whole subtree and the counts of public, private, try and catch markers. Unreadable files are listed in errors and contribute nothing.",
	}, handleScan)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "count_markers",
		Description: "Count public, private, try and catch markers in source text or in a single workspace file. Comments are removed first, then double-quoted strings.",
	}, handleCount)
}
