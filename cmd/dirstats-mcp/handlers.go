package main

import (
	"context"
	"errors"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/taigrr/dirstats/internal/aggregator"
	"github.com/taigrr/dirstats/internal/pathfilter"
	"github.com/taigrr/dirstats/internal/report"
	"github.com/taigrr/dirstats/internal/scanner"
)

func handleScan(ctx context.Context, req *mcp.CallToolRequest, input ScanInput) (*mcp.CallToolResult, ScanOutput, error) {
	path := strings.TrimSpace(input.Path)
	fullPath, err := fileSystem.ResolvePath(path)
	if err != nil {
		return &mcp.CallToolResult{IsError: true}, ScanOutput{}, err
	}

	filterConfig := scanConfig.Filter
	if ext := strings.TrimSpace(input.Extension); ext != "" {
		filterConfig.Extension = ext
	}
	pf := pathfilter.New(&filterConfig)

	svc := aggregator.New(
		fileSystem.Fs(),
		pf,
		aggregator.WithLogger(log),
		aggregator.WithGitignore(scanConfig.Gitignore),
	)
	result, err := svc.Traverse(fullPath)
	if err != nil {
		var pathErr *aggregator.PathError
		if errors.As(err, &pathErr) {
			return &mcp.CallToolResult{IsError: true}, ScanOutput{}, errors.New("directory not found: " + path)
		}
		return &mcp.CallToolResult{IsError: true}, ScanOutput{}, err
	}

	doc := report.NewDocument(result)
	for i := range doc.Directories {
		doc.Directories[i].Path = fileSystem.RelativePath(doc.Directories[i].Path)
	}
	for i := range doc.Errors {
		doc.Errors[i].Path = fileSystem.RelativePath(doc.Errors[i].Path)
	}

	return nil, ScanOutput{
		Root:        fileSystem.RelativePath(fullPath),
		Extension:   pf.Extension(),
		Directories: doc.Directories,
		Errors:      doc.Errors,
	}, nil
}

func handleCount(ctx context.Context, req *mcp.CallToolRequest, input CountInput) (*mcp.CallToolResult, CountOutput, error) {
	if input.Content != "" {
		return nil, CountOutput{Markers: scanner.Scan(input.Content)}, nil
	}

	path := strings.TrimSpace(input.Path)
	if path == "" {
		return &mcp.CallToolResult{IsError: true}, CountOutput{},
			errors.New("either content or path is required")
	}

	content, err := fileSystem.ReadFile(path)
	if err != nil {
		return &mcp.CallToolResult{IsError: true}, CountOutput{Path: path}, err
	}

	return nil, CountOutput{Path: path, Markers: scanner.Scan(string(content))}, nil
}
