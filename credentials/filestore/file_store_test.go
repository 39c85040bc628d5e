package filestore_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/earthen/shopctl/credentials"
	"github.com/earthen/shopctl/credentials/filestore"
)

func newStore(t *testing.T) (*filestore.FileStore, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "slot", "credentials.json")
	return filestore.New(path), path
}

func TestSaveLoadRoundTrip(t *testing.T) {
	store, _ := newStore(t)

	cred := &credentials.Credential{Access: "access-token", Refresh: "refresh-token"}
	require.NoError(t, store.Save(cred))

	loaded, err := store.Load()
	require.NoError(t, err)
	require.Equal(t, cred, loaded)
}

func TestSaveOverwrites(t *testing.T) {
	store, _ := newStore(t)

	require.NoError(t, store.Save(&credentials.Credential{Access: "first"}))
	require.NoError(t, store.Save(&credentials.Credential{Access: "second"}))

	loaded, err := store.Load()
	require.NoError(t, err)
	require.Equal(t, "second", loaded.Access)
}

func TestLoadMissingSlotIsAbsent(t *testing.T) {
	store, _ := newStore(t)

	loaded, err := store.Load()
	require.NoError(t, err)
	require.Nil(t, loaded)
}

func TestLoadCorruptSlotIsAbsent(t *testing.T) {
	store, path := newStore(t)

	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o700))
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	loaded, err := store.Load()
	require.NoError(t, err)
	require.Nil(t, loaded)
}

func TestLoadCorruptSlotRemovesFile(t *testing.T) {
	store, path := newStore(t)

	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o700))
	require.NoError(t, os.WriteFile(path, []byte("{corrupt json"), 0o600))

	_, err := store.Load()
	require.NoError(t, err)

	_, statErr := os.Stat(path)
	require.True(t, os.IsNotExist(statErr), "corrupt slot should be removed on load")
}

func TestLoadEmptyCredentialRemovesFile(t *testing.T) {
	store, path := newStore(t)

	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o700))
	require.NoError(t, os.WriteFile(path, []byte(`{"access": ""}`), 0o600))

	loaded, err := store.Load()
	require.NoError(t, err)
	require.Nil(t, loaded)

	_, statErr := os.Stat(path)
	require.True(t, os.IsNotExist(statErr))
}

func TestClearThenLoadIsAbsent(t *testing.T) {
	store, _ := newStore(t)

	require.NoError(t, store.Save(&credentials.Credential{Access: "access"}))
	require.NoError(t, store.Clear())

	loaded, err := store.Load()
	require.NoError(t, err)
	require.Nil(t, loaded)
}

func TestClearIsIdempotent(t *testing.T) {
	store, _ := newStore(t)

	require.NoError(t, store.Clear())
	require.NoError(t, store.Clear())
}
