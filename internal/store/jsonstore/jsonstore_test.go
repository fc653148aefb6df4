package jsonstore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type doc struct {
	Name string `json:"name"`
}

func TestSaveLoadRemove(t *testing.T) {
	p := filepath.Join(t.TempDir(), "nested", "doc.json")

	var got doc
	found, err := Load(p, &got)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, Save(p, doc{Name: "alice"}))
	fi, err := os.Stat(p)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), fi.Mode().Perm())

	found, err = Load(p, &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "alice", got.Name)

	require.NoError(t, Remove(p))
	require.NoError(t, Remove(p))
}

func TestLoad_Corrupt(t *testing.T) {
	p := filepath.Join(t.TempDir(), "doc.json")
	require.NoError(t, os.WriteFile(p, []byte("{not json"), 0o600))

	var got doc
	_, err := Load(p, &got)
	assert.Error(t, err)
}
