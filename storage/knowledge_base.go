package storage

import (
	"fmt"
	"os"
	"path/filepath"
)

// KnowledgeBaseWriter writes the generated fact base to a fixed path.
type KnowledgeBaseWriter struct {
	path string
}

// NewKnowledgeBaseWriter creates a writer for path. Nothing is touched until Write.
func NewKnowledgeBaseWriter(path string) *KnowledgeBaseWriter {
	return &KnowledgeBaseWriter{path: path}
}

// Path is the output file location.
func (w *KnowledgeBaseWriter) Path() string {
	return w.path
}

// Write replaces the file with content. Parent directories are created as
// needed; previous content is never appended to.
func (w *KnowledgeBaseWriter) Write(content string) error {
	if err := os.MkdirAll(filepath.Dir(w.path), 0o755); err != nil {
		return fmt.Errorf("kb: create output dir: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(w.path), ".housing-kb-*")
	if err != nil {
		return fmt.Errorf("kb: create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.WriteString(content); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("kb: write %q: %w", w.path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("kb: close %q: %w", w.path, err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("kb: chmod %q: %w", w.path, err)
	}
	if err := os.Rename(tmp.Name(), w.path); err != nil {
		return fmt.Errorf("kb: replace %q: %w", w.path, err)
	}
	return nil
}
