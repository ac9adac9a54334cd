package refdoc

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_ReplaceAndCurrent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reference.txt")

	store, err := NewStore(path)
	require.NoError(t, err)
	assert.Equal(t, "", store.Current())

	require.NoError(t, store.Replace("Chapitre 3 : l'écoute active."))
	assert.Equal(t, "Chapitre 3 : l'écoute active.", store.Current())

	// Wholesale replacement, not append.
	require.NoError(t, store.Replace("Nouvelle édition."))
	assert.Equal(t, "Nouvelle édition.", store.Current())
}

func TestStore_SurvivesRestart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reference.txt")

	store, err := NewStore(path)
	require.NoError(t, err)
	require.NoError(t, store.Replace("persisted text"))

	reopened, err := NewStore(path)
	require.NoError(t, err)
	assert.Equal(t, "persisted text", reopened.Current())
}

func TestStore_RejectsEmptyReplacement(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reference.txt")

	store, err := NewStore(path)
	require.NoError(t, err)
	require.NoError(t, store.Replace("previous"))

	assert.Error(t, store.Replace(""))
	assert.Equal(t, "previous", store.Current())
}
