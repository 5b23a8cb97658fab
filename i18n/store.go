package i18n

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"
)

// StoreKey is the preference key the language is persisted under.
const StoreKey = "language"

// Store persists the language choice between sessions.
type Store interface {
	// Load returns the persisted value, or "" when nothing was saved.
	Load() (string, error)
	Save(value string) error
}

// MemoryStore keeps the value in process memory.
type MemoryStore struct {
	mu    sync.Mutex
	value string
}

func (m *MemoryStore) Load() (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.value, nil
}

func (m *MemoryStore) Save(value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.value = value
	return nil
}

// FileStore keeps preferences in a small YAML file. Keys other than
// StoreKey are preserved on save.
type FileStore struct {
	Path string

	mu sync.Mutex
}

// NewFileStore returns a store backed by path. The file is created on the
// first Save.
func NewFileStore(path string) *FileStore {
	return &FileStore{Path: path}
}

func (f *FileStore) Load() (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	prefs, err := f.read()
	if err != nil {
		return "", err
	}
	switch v := prefs[StoreKey].(type) {
	case nil:
		return "", nil
	case string:
		return v, nil
	default:
		return fmt.Sprint(v), nil
	}
}

func (f *FileStore) Save(value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	prefs, err := f.read()
	if err != nil {
		return err
	}
	prefs[StoreKey] = value

	data, err := yaml.Marshal(prefs)
	if err != nil {
		return fmt.Errorf("marshal preferences: %w", err)
	}
	if dir := filepath.Dir(f.Path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create preferences dir: %w", err)
		}
	}
	tmp := f.Path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write preferences: %w", err)
	}
	if err := os.Rename(tmp, f.Path); err != nil {
		return fmt.Errorf("write preferences: %w", err)
	}
	return nil
}

func (f *FileStore) read() (map[string]any, error) {
	prefs := map[string]any{}
	data, err := os.ReadFile(f.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return prefs, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read preferences: %w", err)
	}
	if err := yaml.Unmarshal(data, &prefs); err != nil {
		return nil, fmt.Errorf("parse preferences %s: %w", f.Path, err)
	}
	if prefs == nil {
		prefs = map[string]any{}
	}
	return prefs, nil
}
