package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/hupe1980/admitflow/core"
	"github.com/hupe1980/admitflow/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFile_SaveSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "applications.json")

	s, err := OpenFile(path)
	require.NoError(t, err)

	app := testutil.NewApplicationBuilder().Name("Alice").Build()
	app.SetStatus(core.StatusShortlisted)
	app.AppendCommunication("instruction", "Payment Instructions", "pay")
	require.NoError(t, s.Save(app))

	reopened, err := OpenFile(path)
	require.NoError(t, err)

	got, err := reopened.Get(app.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alice", got.StudentName)
	assert.Equal(t, core.StatusShortlisted, got.Status)
	require.Len(t, got.Communications, 1)
	assert.Equal(t, "Payment Instructions", got.Communications[0].Subject)
}

func TestFile_MissingFileIsEmptyStore(t *testing.T) {
	s, err := OpenFile(filepath.Join(t.TempDir(), "applications.json"))
	require.NoError(t, err)

	apps, err := s.List()
	require.NoError(t, err)
	assert.Empty(t, apps)
}

func TestFile_MalformedFileFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "applications.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := OpenFile(path)
	assert.Error(t, err)
}

func TestFile_Delete(t *testing.T) {
	path := filepath.Join(t.TempDir(), "applications.json")
	s, err := OpenFile(path)
	require.NoError(t, err)

	app := testutil.NewApplicationBuilder().Build()
	require.NoError(t, s.Save(app))
	require.NoError(t, s.Delete(app.ID))

	reopened, err := OpenFile(path)
	require.NoError(t, err)
	_, err = reopened.Get(app.ID)
	assert.ErrorIs(t, err, core.ErrNotFound)
}
