// Package storage persists review artifacts on the local filesystem and
// reads document content for file-sourced reviews.
package storage

import (
	"fmt"
	"os"
	"path/filepath"
)

// FileContentSource reads markdown documents relative to a project root.
// Absolute paths are used as-is.
type FileContentSource struct {
	Root string
}

// NewFileContentSource creates a content source anchored at root.
func NewFileContentSource(root string) *FileContentSource {
	return &FileContentSource{Root: root}
}

// Read returns the file's UTF-8 text.
func (s *FileContentSource) Read(path string) (string, error) {
	full := path
	if !filepath.IsAbs(full) {
		full = filepath.Join(s.Root, full)
	}

	data, err := os.ReadFile(filepath.Clean(full))
	if err != nil {
		return "", fmt.Errorf("read content: %w", err)
	}
	return string(data), nil
}
