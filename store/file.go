package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/hupe1980/admitflow/core"
)

// File is a JSON-file-backed application store. The whole catalog lives in
// one file keyed by application id, loaded on open and rewritten atomically
// on every mutation. Suited to demos and small deployments, not high
// concurrency across processes.
type File struct {
	mu   sync.RWMutex
	path string
	apps map[string]*core.Application
}

var _ core.ApplicationStore = (*File)(nil)

// OpenFile opens a file store at the given path, creating parent directories
// as needed. A missing file means an empty store; a malformed one is an
// error rather than silent data loss.
func OpenFile(path string) (*File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("store: create directory: %w", err)
	}
	s := &File{
		path: path,
		apps: make(map[string]*core.Application),
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("store: read %s: %w", path, err)
	}
	if len(data) == 0 {
		return s, nil
	}
	if err := json.Unmarshal(data, &s.apps); err != nil {
		return nil, fmt.Errorf("store: parse %s: %w", path, err)
	}
	return s, nil
}

// Save implements core.ApplicationStore.
func (s *File) Save(app *core.Application) error {
	if app == nil || app.ID == "" {
		return core.ErrNotFound
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.apps[app.ID] = app.Clone()
	return s.flush()
}

// Get implements core.ApplicationStore.
func (s *File) Get(applicationID string) (*core.Application, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	app, ok := s.apps[applicationID]
	if !ok {
		return nil, core.ErrNotFound
	}
	return app.Clone(), nil
}

// List implements core.ApplicationStore. Ordered by creation time, oldest
// first.
func (s *File) List() ([]*core.Application, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	apps := make([]*core.Application, 0, len(s.apps))
	for _, app := range s.apps {
		apps = append(apps, app.Clone())
	}
	sort.Slice(apps, func(i, j int) bool {
		if apps[i].Created.Equal(apps[j].Created) {
			return apps[i].ID < apps[j].ID
		}
		return apps[i].Created.Before(apps[j].Created)
	})
	return apps, nil
}

// Delete implements core.ApplicationStore.
func (s *File) Delete(applicationID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.apps[applicationID]; !ok {
		return core.ErrNotFound
	}
	delete(s.apps, applicationID)
	return s.flush()
}

// flush rewrites the backing file via a temp file and rename so readers
// never observe a partial write. Callers must hold the write lock.
func (s *File) flush() error {
	data, err := json.MarshalIndent(s.apps, "", "  ")
	if err != nil {
		return fmt.Errorf("store: encode: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("store: write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("store: rename %s: %w", tmp, err)
	}
	return nil
}
