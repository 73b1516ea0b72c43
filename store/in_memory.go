package store

import (
	"sort"
	"sync"

	"github.com/hupe1980/admitflow/core"
)

// InMemory is a thread-safe, map-backed application store. Applications are
// cloned on write and on read so no caller can mutate stored state through a
// retained pointer.
type InMemory struct {
	mu   sync.RWMutex
	apps map[string]*core.Application
}

var _ core.ApplicationStore = (*InMemory)(nil)

// NewInMemory creates an empty in-memory store.
func NewInMemory() *InMemory {
	return &InMemory{apps: make(map[string]*core.Application)}
}

// Save implements core.ApplicationStore. Saving an existing id overwrites.
func (s *InMemory) Save(app *core.Application) error {
	if app == nil || app.ID == "" {
		return core.ErrNotFound
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.apps[app.ID] = app.Clone()
	return nil
}

// Get implements core.ApplicationStore.
func (s *InMemory) Get(applicationID string) (*core.Application, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	app, ok := s.apps[applicationID]
	if !ok {
		return nil, core.ErrNotFound
	}
	return app.Clone(), nil
}

// List implements core.ApplicationStore. Results are ordered by creation
// time, oldest first, with the id as tiebreaker so ordering is stable.
func (s *InMemory) List() ([]*core.Application, error) {
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
func (s *InMemory) Delete(applicationID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.apps[applicationID]; !ok {
		return core.ErrNotFound
	}
	delete(s.apps, applicationID)
	return nil
}
