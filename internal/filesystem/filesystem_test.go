package filesystem

import (
	"errors"
	"io/fs"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/afero"
)

const testBase = "/workspace"

func setupTestWorkspace(t *testing.T) (afero.Fs, *Service) {
	t.Helper()
	fsys := afero.NewMemMapFs()
	if err := fsys.MkdirAll(testBase, 0o755); err != nil {
		t.Fatalf("Failed to create workspace: %v", err)
	}
	return fsys, New(fsys, testBase)
}

type failingReadFs struct {
	afero.Fs
	failPath string
}

func (f failingReadFs) Open(name string) (afero.File, error) {
	if name == f.failPath {
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrPermission}
	}
	return f.Fs.Open(name)
}

func TestReadFile(t *testing.T) {
	t.Run("reads content", func(t *testing.T) {
		fsys, _ := setupTestWorkspace(t)
		path := filepath.Join(testBase, "A.java")
		afero.WriteFile(fsys, path, []byte("public class A {}"), 0o644)

		content, err := ReadFile(fsys, path)
		if err != nil {
			t.Fatalf("ReadFile() error = %v", err)
		}
		if string(content) != "public class A {}" {
			t.Errorf("ReadFile() = %q", content)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		fsys, _ := setupTestWorkspace(t)

		_, err := ReadFile(fsys, filepath.Join(testBase, "missing.java"))
		if err == nil {
			t.Fatal("ReadFile() should fail for missing file")
		}
		if !errors.Is(err, fs.ErrNotExist) {
			t.Errorf("error should wrap fs.ErrNotExist: %v", err)
		}
		if !strings.Contains(err.Error(), "file not found") {
			t.Errorf("error should mention file not found: %v", err)
		}
	})

	t.Run("permission denied", func(t *testing.T) {
		base, _ := setupTestWorkspace(t)
		path := filepath.Join(testBase, "Locked.java")
		afero.WriteFile(base, path, []byte("x"), 0o644)
		fsys := failingReadFs{Fs: base, failPath: path}

		_, err := ReadFile(fsys, path)
		if !errors.Is(err, fs.ErrPermission) {
			t.Errorf("error should wrap fs.ErrPermission: %v", err)
		}
		if !strings.Contains(err.Error(), "permission denied") {
			t.Errorf("error should mention permission denied: %v", err)
		}
	})
}

func TestService_PathTraversal(t *testing.T) {
	_, svc := setupTestWorkspace(t)

	tests := []string{
		"../outside.java",
		"folder/../../outside.java",
		"..",
	}

	for _, path := range tests {
		t.Run(path, func(t *testing.T) {
			_, err := svc.ReadFile(path)
			if err == nil {
				t.Fatal("ReadFile() should fail for path traversal")
			}
			if !strings.Contains(strings.ToLower(err.Error()), "path traversal not allowed") {
				t.Errorf("Error should mention path traversal: %v", err)
			}
		})
	}
}

func TestService_ResolvePath(t *testing.T) {
	_, svc := setupTestWorkspace(t)

	tests := []struct {
		name string
		path string
		want string
	}{
		{"empty is base", "", testBase},
		{"dot is base", ".", testBase},
		{"nested", "src/main", filepath.Join(testBase, "src", "main")},
		{"leading slash", "/src", filepath.Join(testBase, "src")},
		{"dotted name", "..hidden", filepath.Join(testBase, "..hidden")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.ResolvePath(tt.path)
			if err != nil {
				t.Fatalf("ResolvePath() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("ResolvePath(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

func TestService_ReadFile(t *testing.T) {
	t.Run("unicode in file paths", func(t *testing.T) {
		fsys, svc := setupTestWorkspace(t)
		fsys.MkdirAll(filepath.Join(testBase, "日本語"), 0o755)
		afero.WriteFile(fsys, filepath.Join(testBase, "日本語", "ノート.java"), []byte("class X {}"), 0o644)

		content, err := svc.ReadFile("日本語/ノート.java")
		if err != nil {
			t.Fatalf("ReadFile() error = %v", err)
		}
		if string(content) != "class X {}" {
			t.Errorf("ReadFile() = %q", content)
		}
	})

	t.Run("directory is rejected", func(t *testing.T) {
		fsys, svc := setupTestWorkspace(t)
		fsys.MkdirAll(filepath.Join(testBase, "src"), 0o755)

		_, err := svc.ReadFile("src")
		if err == nil || !strings.Contains(err.Error(), "cannot read directory") {
			t.Errorf("ReadFile(dir) error = %v, want directory error", err)
		}
	})
}

func TestService_IsDirectory(t *testing.T) {
	fsys, svc := setupTestWorkspace(t)
	fsys.MkdirAll(filepath.Join(testBase, "src"), 0o755)
	afero.WriteFile(fsys, filepath.Join(testBase, "A.java"), []byte("x"), 0o644)

	tests := []struct {
		path string
		want bool
	}{
		{"", true},
		{"src", true},
		{"A.java", false},
		{"missing", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := svc.IsDirectory(tt.path)
			if err != nil {
				t.Fatalf("IsDirectory() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("IsDirectory(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

func TestService_RelativePath(t *testing.T) {
	_, svc := setupTestWorkspace(t)

	tests := []struct {
		full string
		want string
	}{
		{testBase, "."},
		{filepath.Join(testBase, "src", "A.java"), "src/A.java"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := svc.RelativePath(tt.full); got != tt.want {
				t.Errorf("RelativePath(%q) = %q, want %q", tt.full, got, tt.want)
			}
		})
	}
}
