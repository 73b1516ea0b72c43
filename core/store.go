package core

import "errors"

// ErrNotFound is returned by stores when no application matches the given id.
var ErrNotFound = errors.New("application not found")

// ApplicationStore persists application records. Implementations should be
// thread-safe and return clones so callers cannot mutate stored state. The
// workflow engine itself never touches the store; the caller (or the
// admitflow façade) saves and loads around engine runs.
type ApplicationStore interface {
	Save(app *Application) error
	Get(applicationID string) (*Application, error)
	List() ([]*Application, error)
	Delete(applicationID string) error
}
