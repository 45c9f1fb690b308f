package db

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/natefinch/atomic"
)

// JSONFile stores a JSON array of T in a single file. Writes go through a
// temp file and rename, so a reader sees either the old or the new array.
type JSONFile[T any] struct {
	path string
	mu   sync.RWMutex
}

func NewJSONFile[T any](path string) *JSONFile[T] {
	return &JSONFile[T]{path: path}
}

func (f *JSONFile[T]) Path() string {
	return f.path
}

// Load returns ErrNotExist if the file is missing.
func (f *JSONFile[T]) Load() ([]T, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.read()
}

func (f *JSONFile[T]) Save(items []T) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.write(items)
}

// Update runs fn on the current contents and writes back what it returns.
// A missing file starts as an empty slice.
func (f *JSONFile[T]) Update(fn func([]T) ([]T, error)) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	items, err := f.read()
	if err != nil {
		if !errors.Is(err, ErrNotExist) {
			return err
		}
		items = []T{}
	}
	items, err = fn(items)
	if err != nil {
		return err
	}
	return f.write(items)
}

func (f *JSONFile[T]) read() ([]T, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNotExist
		}
		return nil, fmt.Errorf("read %s: %w", f.path, err)
	}

	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("decode %s: %w", f.path, err)
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

func (f *JSONFile[T]) write(items []T) error {
	if items == nil {
		items = []T{}
	}
	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", f.path, err)
	}
	if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		return fmt.Errorf("create dir for %s: %w", f.path, err)
	}
	if err := atomic.WriteFile(f.path, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("write %s: %w", f.path, err)
	}
	return nil
}
