// Package file implements storage.KeyValue as a single JSON document
// ({"key": "value", ...}) on an afero filesystem.
//
// Every write replaces the document atomically: the new content goes to
// a temp file in the same directory, which is then renamed over the
// target with 0600 permissions.
package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"sync"

	"github.com/spf13/afero"
)

// File implements storage.KeyValue.
type File struct {
	fs   afero.Fs
	path string

	// mu serializes read-modify-write cycles on the document.
	mu sync.Mutex
}

// New returns a store backed by path on fsys, creating the parent
// directory if needed. The document itself is created on first write.
func New(fsys afero.Fs, path string) (*File, error) {
	if path == "" {
		return nil, errors.New("file.New: path is empty")
	}
	if err := fsys.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("file.New: create dir: %w", err)
	}
	return &File{fs: fsys, path: path}, nil
}


func (f *File) GetItem(_ context.Context, key string) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	items, err := f.read()
	if err != nil {
		return "", false, err
	}
	v, ok := items[key]
	return v, ok, nil
}

func (f *File) SetItem(_ context.Context, key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	items, err := f.read()
	if err != nil {
		return err
	}
	items[key] = value
	return f.write(items)
}

func (f *File) RemoveItem(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	items, err := f.read()
	if err != nil {
		return err
	}
	if _, ok := items[key]; !ok {
		return nil
	}
	delete(items, key)
	return f.write(items)
}

func (f *File) Close() error { return nil }

func (f *File) read() (map[string]string, error) {
	items := make(map[string]string)

	data, err := afero.ReadFile(f.fs, f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return items, nil
	}
	if err != nil {
		return nil, fmt.Errorf("file.read: %w", err)
	}
	if len(data) == 0 {
		return items, nil
	}
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("file.read: decode %s: %w", f.path, err)
	}
	return items, nil
}

func (f *File) write(items map[string]string) error {
	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return fmt.Errorf("file.write: encode: %w", err)
	}

	tmp, err := afero.TempFile(f.fs, filepath.Dir(f.path), ".timezone-buddy-*.tmp")
	if err != nil {
		return fmt.Errorf("file.write: temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer f.fs.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("file.write: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("file.write: sync: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("file.write: close: %w", err)
	}
	if err := f.fs.Chmod(tmpName, 0o600); err != nil {
		return fmt.Errorf("file.write: chmod: %w", err)
	}
	if err := f.fs.Rename(tmpName, f.path); err != nil {
		return fmt.Errorf("file.write: rename: %w", err)
	}
	return nil
}
