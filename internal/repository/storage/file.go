package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// FileStorage persists named JSON documents under a directory. Each
// document is rewritten whole on every write, which is good enough for
// the last-committed-wins repository contract.
type FileStorage struct {
	dir string
	mu  sync.Mutex
}

func NewFileStorage(dir string) (*FileStorage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}

	return &FileStorage{dir: dir}, nil
}

// Read - decodes the document into v. A missing file leaves v untouched.
func (that *FileStorage) Read(name string, v any) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	data, err := os.ReadFile(filepath.Join(that.dir, name))
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}

	if err != nil {
		return fmt.Errorf("failed to read %s: %w", name, err)
	}

	if len(data) == 0 {
		return nil
	}

	if err = json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to unmarshal %s: %w", name, err)
	}

	return nil
}

// Write - encodes v and replaces the document.
func (that *FileStorage) Write(name string, v any) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", name, err)
	}

	if err = os.WriteFile(filepath.Join(that.dir, name), data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", name, err)
	}

	return nil
}
