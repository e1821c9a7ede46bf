package main

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/afero"

	"github.com/taigrr/dirstats/internal/logger"
	"github.com/taigrr/dirstats/internal/types"
)

const testWorkspace = "/workspace"

func setupTestWorkspace(t *testing.T, files map[string]string) {
	t.Helper()
	fsys := afero.NewMemMapFs()
	fsys.MkdirAll(testWorkspace, 0o755)
	for path, content := range files {
		full := filepath.Join(testWorkspace, path)
		fsys.MkdirAll(filepath.Dir(full), 0o755)
		afero.WriteFile(fsys, full, []byte(content), 0o644)
	}
	cfg := types.Config{Filter: types.PathFilterConfig{Extension: types.DefaultExtension}}
	setup(fsys, testWorkspace, cfg, logger.Nop())
}

func TestHandleScan(t *testing.T) {
	t.Run("scans workspace root", func(t *testing.T) {
		setupTestWorkspace(t, map[string]string{
			"A/a.java": "public class A {}",
			"B/b.java": "try{}catch(E e){}",
		})

		res, out, err := handleScan(context.Background(), nil, ScanInput{})
		if err != nil || res != nil {
			t.Fatalf("handleScan() = %v, %v", res, err)
		}

		if out.Root != "." || out.Extension != ".java" {
			t.Errorf("Root = %q, Extension = %q", out.Root, out.Extension)
		}
		var paths []string
		for _, d := range out.Directories {
			paths = append(paths, d.Path)
		}
		if strings.Join(paths, ",") != ".,A,B" {
			t.Errorf("paths = %v, want [. A B]", paths)
		}
		want := types.MarkerCounts{Public: 1, Try: 1, Catch: 1}
		if got := out.Directories[0].Summary.Markers; got != want {
			t.Errorf("root markers = %+v, want %+v", got, want)
		}
		if out.Errors == nil {
			t.Error("Errors should be an empty list, not nil")
		}
	})

	t.Run("subdirectory with extension override", func(t *testing.T) {
		setupTestWorkspace(t, map[string]string{
			"app/Main.kt":   "private val x = 1",
			"app/Main.java": "public class Main {}",
		})

		_, out, err := handleScan(context.Background(), nil, ScanInput{Path: "app", Extension: "kt"})
		if err != nil {
			t.Fatalf("handleScan() error = %v", err)
		}
		if out.Root != "app" || out.Extension != ".kt" {
			t.Errorf("Root = %q, Extension = %q", out.Root, out.Extension)
		}
		if got := out.Directories[0].Summary; got.FileCount != 1 || got.Markers.Private != 1 {
			t.Errorf("summary = %+v", got)
		}
	})

	t.Run("missing directory", func(t *testing.T) {
		setupTestWorkspace(t, nil)

		res, _, err := handleScan(context.Background(), nil, ScanInput{Path: "nope"})
		if err == nil || res == nil || !res.IsError {
			t.Fatalf("handleScan() = %v, %v, want tool error", res, err)
		}
		if !strings.Contains(err.Error(), "directory not found") {
			t.Errorf("error = %v", err)
		}
	})

	t.Run("path traversal", func(t *testing.T) {
		setupTestWorkspace(t, nil)

		_, _, err := handleScan(context.Background(), nil, ScanInput{Path: "../etc"})
		if err == nil || !strings.Contains(err.Error(), "path traversal not allowed") {
			t.Errorf("error = %v, want path traversal", err)
		}
	})
}

func TestHandleCount(t *testing.T) {
	t.Run("content", func(t *testing.T) {
		setupTestWorkspace(t, nil)

		_, out, err := handleCount(context.Background(), nil, CountInput{Content: "// public\nprivate int x;"})
		if err != nil {
			t.Fatalf("handleCount() error = %v", err)
		}
		if out.Markers != (types.MarkerCounts{Private: 1}) {
			t.Errorf("Markers = %+v", out.Markers)
		}
	})

	t.Run("file path", func(t *testing.T) {
		setupTestWorkspace(t, map[string]string{"src/A.java": "public class A {}"})

		_, out, err := handleCount(context.Background(), nil, CountInput{Path: "src/A.java"})
		if err != nil {
			t.Fatalf("handleCount() error = %v", err)
		}
		if out.Path != "src/A.java" || out.Markers.Public != 1 {
			t.Errorf("out = %+v", out)
		}
	})

	t.Run("requires input", func(t *testing.T) {
		setupTestWorkspace(t, nil)

		res, _, err := handleCount(context.Background(), nil, CountInput{})
		if err == nil || res == nil || !res.IsError {
			t.Errorf("handleCount() = %v, %v, want tool error", res, err)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		setupTestWorkspace(t, nil)

		_, _, err := handleCount(context.Background(), nil, CountInput{Path: "Gone.java"})
		if err == nil || !strings.Contains(err.Error(), "file not found") {
			t.Errorf("error = %v, want file not found", err)
		}
	})
}
