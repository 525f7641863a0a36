package render

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"sync"
)

// Writer persists rendered text.
type Writer interface {
	Write(path, text string) error
}

// FileWriter writes files, creating parent directories as needed.
type FileWriter struct {
	Log *slog.Logger
}

func (w FileWriter) Write(path, text string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create directory for %s: %w", path, err)
	}
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	if w.Log != nil {
		w.Log.With("file", path).Info("generated")
	}
	return nil
}

// MemoryWriter keeps outputs in memory, used for dry runs and tests.
type MemoryWriter struct {
	mu    sync.Mutex
	files map[string]string
}

func NewMemoryWriter() *MemoryWriter {
	return &MemoryWriter{files: make(map[string]string)}
}

func (w *MemoryWriter) Write(path, text string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.files[path] = text
	return nil
}

func (w *MemoryWriter) Get(path string) (string, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	text, ok := w.files[path]
	return text, ok
}

// Paths returns the written paths in lexical order.
func (w *MemoryWriter) Paths() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]string, 0, len(w.files))
	for p := range w.files {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}
