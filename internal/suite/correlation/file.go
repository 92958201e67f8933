package correlation

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// FileBackend persists records as a pretty-printed JSON array, rewriting the
// whole collection on every append. The mutex serializes read-modify-write
// cycles within this process only; two suite processes sharing one file can
// still lose updates, which is why the runner is fixed at concurrency 1.
type FileBackend struct {
	path string
	mu   sync.Mutex
}

func NewFileBackend(path string) *FileBackend {
	return &FileBackend{path: path}
}

func (b *FileBackend) ReadAll() ([]Record, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.readLocked()
}

func (b *FileBackend) readLocked() ([]Record, error) {
	data, err := os.ReadFile(b.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read request store: %w", err)
	}

	var recs []Record
	if err := json.Unmarshal(data, &recs); err != nil {
		return nil, fmt.Errorf("parse request store %s: %w", b.path, err)
	}

	return recs, nil
}

func (b *FileBackend) Append(rec Record) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	recs, err := b.readLocked()
	if err != nil {
		return err
	}

	recs = append(recs, rec)

	data, err := json.MarshalIndent(recs, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal request store: %w", err)
	}

	if dir := filepath.Dir(b.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create request store dir: %w", err)
		}
	}

	if err := os.WriteFile(b.path, data, 0o644); err != nil {
		return fmt.Errorf("write request store: %w", err)
	}

	return nil
}

func (b *FileBackend) Clear() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	err := os.Remove(b.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("clear request store: %w", err)
	}
	return nil
}
