package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type record struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func TestSaveAndLoad(t *testing.T) {
	store, err := NewJSONStore(t.TempDir(), "records.json")
	require.NoError(t, err)

	in := []record{{ID: "1", Name: "alpha"}, {ID: "2", Name: "beta"}}
	require.NoError(t, store.Save(in))

	var out []record
	require.NoError(t, store.Load(&out))
	assert.Equal(t, in, out)
}

func TestLoadMissingFileIsNotAnError(t *testing.T) {
	store, err := NewJSONStore(t.TempDir(), "missing.json")
	require.NoError(t, err)

	out := []record{{ID: "seed"}}
	require.NoError(t, store.Load(&out))
	// Untouched on missing snapshot.
	assert.Equal(t, []record{{ID: "seed"}}, out)
}

func TestSaveLeavesNoTempFile(t *testing.T) {
	dir := t.TempDir()
	store, err := NewJSONStore(dir, "records.json")
	require.NoError(t, err)

	require.NoError(t, store.Save([]record{{ID: "1"}}))

	_, err = os.Stat(filepath.Join(dir, "records.json.tmp"))
	assert.True(t, os.IsNotExist(err))
}

func TestNewJSONStoreCreatesDataDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")
	_, err := NewJSONStore(dir, "records.json")
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
