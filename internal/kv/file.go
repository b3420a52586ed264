package kv

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// storeFileName is the single file holding all keys in the data directory.
const storeFileName = "store.json"

// Compile-time interface check: File must implement Store.
var _ Store = (*File)(nil)

// File is a Store backed by one JSON object on disk. Every Set and Remove
// rewrites the whole file atomically (temp file, fsync, rename), so a crash
// mid-write leaves either the old or the new state, never a torn one.
type File struct {
	mu     sync.RWMutex
	path   string
	values map[string]string
}

// OpenFile opens the file store rooted at dataDir, creating the directory
// if needed. A missing store file starts empty; an unparseable store file
// also starts empty, since per-entry corruption policy belongs to the
// stores above this layer.
func OpenFile(dataDir string) (*File, error) {
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}

	f := &File{
		path:   filepath.Join(dataDir, storeFileName),
		values: make(map[string]string),
	}

	data, err := os.ReadFile(f.path)
	if os.IsNotExist(err) {
		return f, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", f.path, err)
	}
	if jsonErr := json.Unmarshal(data, &f.values); jsonErr != nil {
		f.values = make(map[string]string)
	}
	return f, nil
}

func (f *File) Get(key string) (string, bool, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	v, ok := f.values[key]
	return v, ok, nil
}

func (f *File) Set(key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	prev, had := f.values[key]
	f.values[key] = value
	if err := f.persistLocked(); err != nil {
		if had {
			f.values[key] = prev
		} else {
			delete(f.values, key)
		}
		return err
	}
	return nil
}

func (f *File) Remove(key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	prev, had := f.values[key]
	if !had {
		return nil
	}
	delete(f.values, key)
	if err := f.persistLocked(); err != nil {
		f.values[key] = prev
		return err
	}
	return nil
}

func (f *File) Close() error {
	return nil
}

// persistLocked atomically writes the full key map using the temp-file,
// fsync, rename pattern. The caller must hold f.mu.
func (f *File) persistLocked() error {
	data, err := json.MarshalIndent(f.values, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling store: %w", err)
	}

	dir := filepath.Dir(f.path)
	tmp, err := os.CreateTemp(dir, ".store-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()

	w := bufio.NewWriter(tmp)
	if _, err := w.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing store: %w", err)
	}
	if err := w.Flush(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("flushing store: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("syncing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpName, f.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}
