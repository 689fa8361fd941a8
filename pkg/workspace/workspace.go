package workspace

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/kamal-hamza/assetsym/pkg/config"
)

// Workspace represents the project directory assetsym operates in
type Workspace struct {
	RootPath   string
	ConfigPath string
}

// New locates the workspace for startDir: the nearest directory at or
// above it holding a config file, or startDir itself when none does
func New(startDir string) (*Workspace, error) {
	abs, err := filepath.Abs(startDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", startDir, err)
	}

	root := findRoot(abs)
	if root == "" {
		root = abs
	}

	return &Workspace{
		RootPath:   root,
		ConfigPath: filepath.Join(root, config.FileName),
	}, nil
}

// findRoot walks up from dir and returns the first directory holding a
// config file, or "" when the filesystem root is reached
func findRoot(dir string) string {
	for {
		if info, err := os.Stat(filepath.Join(dir, config.FileName)); err == nil && !info.IsDir() {
			return dir
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

// Exists checks if the workspace has a config file
func (w *Workspace) Exists() bool {
	info, err := os.Stat(w.ConfigPath)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// Resolve returns path unchanged when absolute, otherwise joined to the workspace root
func (w *Workspace) Resolve(path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(w.RootPath, path)
}

// Rel returns path relative to the workspace root for display, falling
// back to path itself when it lies elsewhere
func (w *Workspace) Rel(path string) string {
	rel, err := filepath.Rel(w.RootPath, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return path
	}
	return rel
}
