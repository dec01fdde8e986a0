package session

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "sessions.db")
	store, err := NewSQLiteStore(dbPath, DeriveKey("test-passphrase"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreRoundTrip(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.Save(&Profile{
		Key:    DefaultProfileKey,
		Token:  "tok-secret",
		UserID: "42",
		Email:  "admin@example.com",
	}))

	got, err := store.Get(DefaultProfileKey)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "tok-secret", got.Token)
	assert.Equal(t, "42", got.UserID)
	assert.Equal(t, "admin@example.com", got.Email)
	assert.NotEmpty(t, got.DeviceID)
	assert.False(t, got.LastUpdated.IsZero())
}

func TestStoreGetMissingReturnsNil(t *testing.T) {
	store := newTestStore(t)

	got, err := store.Get("nope")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestStoreSaveAssignsDefaults(t *testing.T) {
	store := newTestStore(t)

	p := &Profile{Token: "tok"}
	require.NoError(t, store.Save(p))
	assert.Equal(t, DefaultProfileKey, p.Key)
	assert.NotEmpty(t, p.DeviceID)
}

func TestStoreSaveOverwritesKeepingKey(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.Save(&Profile{Key: DefaultProfileKey, Token: "old"}))
	require.NoError(t, store.Save(&Profile{Key: DefaultProfileKey, Token: "new"}))

	got, err := store.Get(DefaultProfileKey)
	require.NoError(t, err)
	assert.Equal(t, "new", got.Token)
}

func TestStoreDelete(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.Save(&Profile{Key: DefaultProfileKey, Token: "tok"}))
	require.NoError(t, store.Delete(DefaultProfileKey))

	got, err := store.Get(DefaultProfileKey)
	require.NoError(t, err)
	assert.Nil(t, got)

	// Deleting again is fine
	require.NoError(t, store.Delete(DefaultProfileKey))
}

func TestTokenNotStoredInPlaintext(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "sessions.db")
	store, err := NewSQLiteStore(dbPath, DeriveKey("test-passphrase"))
	require.NoError(t, err)

	require.NoError(t, store.Save(&Profile{Key: DefaultProfileKey, Token: "super-secret-token"}))
	require.NoError(t, store.Close())

	raw, err := os.ReadFile(dbPath)
	require.NoError(t, err)
	assert.False(t, strings.Contains(string(raw), "super-secret-token"))
}

func TestWrongKeyFailsToDecrypt(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "sessions.db")

	store, err := NewSQLiteStore(dbPath, DeriveKey("right"))
	require.NoError(t, err)
	require.NoError(t, store.Save(&Profile{Key: DefaultProfileKey, Token: "tok"}))
	require.NoError(t, store.Close())

	store2, err := NewSQLiteStore(dbPath, DeriveKey("wrong"))
	require.NoError(t, err)
	defer store2.Close()

	_, err = store2.Get(DefaultProfileKey)
	assert.Error(t, err)
}
