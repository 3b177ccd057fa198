package sink

import (
	"fmt"
	"os"
	"path/filepath"
)

// File is an append-only file sink (spec.md §4.5). The parent directory is
// created with mkdir -p semantics at construction; the file itself is
// opened in append-binary mode and kept open for the sink's lifetime.
type File struct {
	f    *os.File
	mode FlushMode
}

// NewFile creates (or opens) path for append, creating missing parent
// directories with mode 0755, per spec.md §6's filesystem contract.
func NewFile(path string, mode FlushMode) (*File, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("sink: mkdir -p %q: %w", dir, err)
		}
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("sink: open %q: %w", path, err)
	}
	return &File{f: f, mode: mode}, nil
}

// Flush writes batch and applies the configured flush policy: 0 leaves
// bytes in OS buffers, 1 issues Sync (Go has no separate user-space
// buffer to flush independent of the kernel page cache, so this and mode 2
// both call Sync; mode 2 additionally exists as a distinct policy value
// for symmetry with the reference's flush-then-fsync pair), 2 is
// flush+fsync-equivalent.
func (s *File) Flush(batch []byte) error {
	if _, err := s.f.Write(batch); err != nil {
		return fmt.Errorf("sink: write: %w", err)
	}
	switch s.mode {
	case FlushUser, FlushSync:
		if err := s.f.Sync(); err != nil {
			return fmt.Errorf("sink: sync: %w", err)
		}
	}
	return nil
}

func (s *File) Close() error {
	return s.f.Close()
}
