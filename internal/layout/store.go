package layout

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
)

// OptionsKey is the storage key under which layout options are persisted.
const OptionsKey = "depviz.layout-options"

// ErrNotFound is returned by a Store when the key has no value.
var ErrNotFound = errors.New("key not found")

// Store is a small key/value store for client-side UI state.
type Store interface {
	Load(key string) ([]byte, error)
	Save(key string, value []byte) error
}

// FileStore keeps every key in a single JSON object on disk.
//
// File format:
//
//	{
//	  "depviz.layout-options": {"algorithm": "force", "direction": "TB", ...}
//	}
type FileStore struct {
	path string
	mu   sync.Mutex
}

// NewFileStore returns a store backed by the file at path. The file and its
// directory are created on first Save.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the backing file path.
func (s *FileStore) Path() string {
	return s.path
}

// Load returns the raw value stored under key.
func (s *FileStore) Load(key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.read()
	if err != nil {
		return nil, err
	}
	value, ok := entries[key]
	if !ok {
		return nil, ErrNotFound
	}
	return value, nil
}

// Save stores value under key, keeping other keys intact. A corrupt file is
// replaced.
func (s *FileStore) Save(key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.read()
	if err != nil {
		entries = make(map[string]json.RawMessage)
	}
	entries[key] = json.RawMessage(value)

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal state: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create state directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".state-*.json")
	if err != nil {
		return fmt.Errorf("create temp state file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("write state: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("close state: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("replace state: %w", err)
	}
	return nil
}

// read must be called with mu held.
func (s *FileStore) read() (map[string]json.RawMessage, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return make(map[string]json.RawMessage), nil
		}
		return nil, fmt.Errorf("read state: %w", err)
	}
	entries := make(map[string]json.RawMessage)
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parse state: %w", err)
	}
	return entries, nil
}

// MemoryStore is an in-memory Store.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string][]byte
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string][]byte)}
}

// Load implements Store.
func (s *MemoryStore) Load(key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	value, ok := s.entries[key]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), value...), nil
}

// Save implements Store.
func (s *MemoryStore) Save(key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = append([]byte(nil), value...)
	return nil
}

// LoadOptions reads persisted options. Missing or corrupt data yields the
// defaults; the problem is logged at debug level and never surfaced.
func LoadOptions(store Store, logger *slog.Logger) Options {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if store == nil {
		return DefaultOptions()
	}

	data, err := store.Load(OptionsKey)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			logger.Debug("layout options unreadable, using defaults", "error", err)
		}
		return DefaultOptions()
	}

	// Start from defaults so absent fields keep their default value.
	opts := DefaultOptions()
	if err := json.Unmarshal(data, &opts); err != nil {
		logger.Debug("layout options corrupt, using defaults", "error", err)
		return DefaultOptions()
	}
	return opts.Normalize()
}

// SaveOptions persists options under OptionsKey.
func SaveOptions(store Store, opts Options) error {
	if store == nil {
		return nil
	}
	data, err := json.Marshal(opts.Normalize())
	if err != nil {
		return fmt.Errorf("marshal layout options: %w", err)
	}
	if err := store.Save(OptionsKey, data); err != nil {
		return fmt.Errorf("save layout options: %w", err)
	}
	return nil
}
