package repository

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// FileOutputRepository stores generated files on disk
type FileOutputRepository struct{}

func NewFileOutputRepository() *FileOutputRepository {
	return &FileOutputRepository{}
}

func (r *FileOutputRepository) Read(ctx context.Context, path string) ([]byte, error) {
	return os.ReadFile(path)
}

// Write replaces path atomically: readers see either the old file or
// the complete new one, never a partial write
func (r *FileOutputRepository) Write(ctx context.Context, path string, content []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write temp file: %w", err)
	}

	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Chmod(tmpPath, 0644); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to set permissions: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}

	return nil
}
