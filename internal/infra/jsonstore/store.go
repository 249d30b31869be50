// Package jsonstore provides a JSON file-based docstore.Backend.
package jsonstore

import (
	"context"
	"encoding/json"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"syscall"

	"github.com/fsnotify/fsnotify"

	"github.com/runoshun/editflow/internal/domain"
	"github.com/runoshun/editflow/internal/infra/docstore"
)

// storeData represents the JSON file structure.
// Fields are ordered to minimize memory padding.
type storeData struct {
	Collections map[string]map[string]json.RawMessage `json:"collections"`
	Meta        meta                                  `json:"meta"`
}

// meta contains store metadata.
type meta struct {
	Revision int64 `json:"revision"` // bumped on every write
}

// Store implements docstore.Backend using a single JSON file.
// Readers take a shared flock and writers an exclusive one, so several processes
// can share the file; writes go through a temp file and rename.
type Store struct {
	path     string
	lockPath string
	logger   domain.Logger
}

// New creates a new Store for the given file path.
// The file does not need to exist; Initialize creates it.
func New(path string, logger domain.Logger) *Store {
	if logger == nil {
		logger = domain.NopLogger{}
	}
	return &Store{
		path:     path,
		lockPath: path + ".lock",
		logger:   logger,
	}
}

// Path returns the store file path.
func (s *Store) Path() string {
	return s.path
}

// Initialize creates an empty store file if it doesn't exist.
func (s *Store) Initialize(_ context.Context) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}

	if _, err := os.Stat(s.path); err == nil {
		return nil // Already exists
	}

	return s.write(&storeData{Collections: emptyCollections()})
}

// Get retrieves a document by ID.
func (s *Store) Get(_ context.Context, collection, id string) ([]byte, error) {
	var doc []byte
	err := s.withLock(func(data *storeData) error {
		raw, ok := data.Collections[collection][id]
		if !ok {
			return docstore.ErrNotFound
		}
		doc = slices.Clone(raw)
		return nil
	})
	return doc, err
}

// List retrieves every document of a collection, ordered by ID.
func (s *Store) List(_ context.Context, collection string) ([][]byte, error) {
	var docs [][]byte
	err := s.withLock(func(data *storeData) error {
		coll := data.Collections[collection]
		docs = make([][]byte, 0, len(coll))
		for _, id := range slices.Sorted(maps.Keys(coll)) {
			docs = append(docs, slices.Clone(coll[id]))
		}
		return nil
	})
	return docs, err
}

// Put creates or replaces a document.
func (s *Store) Put(_ context.Context, collection, id string, doc []byte) error {
	if !json.Valid(doc) {
		return fmt.Errorf("put %s/%s: invalid JSON document", collection, id)
	}
	return s.withLockWrite(func(data *storeData) (bool, error) {
		if data.Collections[collection] == nil {
			data.Collections[collection] = make(map[string]json.RawMessage)
		}
		data.Collections[collection][id] = slices.Clone(doc)
		return true, nil
	})
}

// Delete removes a document by ID.
func (s *Store) Delete(_ context.Context, collection, id string) error {
	return s.withLockWrite(func(data *storeData) (bool, error) {
		if _, ok := data.Collections[collection][id]; !ok {
			return false, nil
		}
		delete(data.Collections[collection], id)
		return true, nil
	})
}

// Revision returns the number of writes since the file was created.
func (s *Store) Revision() (int64, error) {
	var rev int64
	err := s.withLock(func(data *storeData) error {
		rev = data.Meta.Revision
		return nil
	})
	return rev, err
}

// Close is a no-op; watchers stop with their context.
func (s *Store) Close() error {
	return nil
}

// withLock executes fn with a shared (read) lock.
func (s *Store) withLock(fn func(*storeData) error) error {
	lock, err := s.acquireLock(syscall.LOCK_SH)
	if err != nil {
		return err
	}
	defer s.releaseLock(lock)

	data, err := s.read()
	if err != nil {
		return err
	}

	return fn(data)
}

// withLockWrite executes fn with an exclusive (write) lock and writes the result
// when fn reports a change.
func (s *Store) withLockWrite(fn func(*storeData) (bool, error)) error {
	lock, err := s.acquireLock(syscall.LOCK_EX)
	if err != nil {
		return err
	}
	defer s.releaseLock(lock)

	data, err := s.read()
	if err != nil {
		return err
	}

	changed, err := fn(data)
	if err != nil || !changed {
		return err
	}

	data.Meta.Revision++
	return s.write(data)
}

func (s *Store) acquireLock(lockType int) (*os.File, error) {
	dir := filepath.Dir(s.lockPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("create lock directory: %w", err)
	}

	lock, err := os.OpenFile(s.lockPath, os.O_CREATE|os.O_RDWR, 0o600)
	if err != nil {
		return nil, fmt.Errorf("open lock file: %w", err)
	}

	if err := syscall.Flock(int(lock.Fd()), lockType); err != nil {
		_ = lock.Close()
		return nil, fmt.Errorf("acquire lock: %w", err)
	}

	return lock, nil
}

func (s *Store) releaseLock(lock *os.File) {
	_ = syscall.Flock(int(lock.Fd()), syscall.LOCK_UN)
	_ = lock.Close()
}

func (s *Store) read() (*storeData, error) {
	content, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, domain.ErrNotInitialized
		}
		return nil, fmt.Errorf("read store file: %w", err)
	}

	var data storeData
	if err := json.Unmarshal(content, &data); err != nil {
		return nil, fmt.Errorf("parse store file: %w", err)
	}

	if data.Collections == nil {
		data.Collections = emptyCollections()
	}

	return &data, nil
}

func (s *Store) write(data *storeData) error {
	content, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal store data: %w", err)
	}

	// Write to temp file first, then rename for atomicity
	tmpPath := s.path + ".tmp"
	if err := os.WriteFile(tmpPath, content, 0o600); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}

	if err := os.Rename(tmpPath, s.path); err != nil {
		_ = os.Remove(tmpPath) // Clean up
		return fmt.Errorf("rename temp file: %w", err)
	}

	return nil
}

func emptyCollections() map[string]map[string]json.RawMessage {
	colls := make(map[string]map[string]json.RawMessage)
	for _, name := range domain.Collections() {
		colls[name] = make(map[string]json.RawMessage)
	}
	return colls
}

// Changes watches the store file's directory and signals whenever the file is replaced or written,
// by this process or any other.
func (s *Store) Changes(ctx context.Context) (<-chan struct{}, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	// The file is replaced by rename on every write, so watch the directory.
	if err := watcher.Add(filepath.Dir(s.path)); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(s.path), err)
	}

	ch := make(chan struct{}, 1)
	target := filepath.Clean(s.path)
	go func() {
		defer close(ch)
		defer func() { _ = watcher.Close() }()
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(ev.Name) != target {
					continue
				}
				if ev.Has(fsnotify.Create) || ev.Has(fsnotify.Write) || ev.Has(fsnotify.Rename) || ev.Has(fsnotify.Remove) {
					docstore.Signal(ch)
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				s.logger.Warn("jsonstore", "watch error: "+err.Error())
			}
		}
	}()
	return ch, nil
}

// Ensure Store implements docstore.Backend.
var _ docstore.Backend = (*Store)(nil)
