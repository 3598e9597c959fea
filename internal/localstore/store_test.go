package localstore

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTemp(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "state.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestPutGetRoundTrip(t *testing.T) {
	store := openTemp(t)

	require.NoError(t, store.Put(KeyToken, "abc"))
	got, err := store.Get(KeyToken)
	require.NoError(t, err)
	assert.Equal(t, "abc", got)

	require.NoError(t, store.Put(KeyToken, "def"))
	got, err = store.Get(KeyToken)
	require.NoError(t, err)
	assert.Equal(t, "def", got)
}

func TestGetMissingKey(t *testing.T) {
	store := openTemp(t)
	_, err := store.Get(KeyTheme)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteIsIdempotent(t *testing.T) {
	store := openTemp(t)
	require.NoError(t, store.Put(KeyUser, `{"id":1}`))
	require.NoError(t, store.Delete(KeyUser))
	require.NoError(t, store.Delete(KeyUser))

	_, err := store.Get(KeyUser)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.db")
	store, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, store.Put(KeyTheme, "dark"))
	require.NoError(t, store.Close())

	reopened, err := Open(path)
	require.NoError(t, err)
	defer func() { _ = reopened.Close() }()

	got, err := reopened.Get(KeyTheme)
	require.NoError(t, err)
	assert.Equal(t, "dark", got)
}
