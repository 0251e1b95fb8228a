package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *PreferenceStore {
	t.Helper()
	store, err := NewPreferenceStore(filepath.Join(t.TempDir(), "nested", "prefs.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestPreferenceStore_SetGet(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	userID := uuid.New()

	_, ok, err := store.Get(ctx, userID, "current_workspace_id")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.Set(ctx, userID, "current_workspace_id", "abc"))
	require.NoError(t, store.Set(ctx, userID, "current_workspace_id", "def"))

	value, ok, err := store.Get(ctx, userID, "current_workspace_id")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "def", value)
}

func TestPreferenceStore_ScopedByUser(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	alice, bob := uuid.New(), uuid.New()

	require.NoError(t, store.Set(ctx, alice, "onboarding_completed", "true"))

	_, ok, err := store.Get(ctx, bob, "onboarding_completed")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestPreferenceStore_Delete(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	userID := uuid.New()

	require.NoError(t, store.Set(ctx, userID, "onboarding_completed", "true"))
	require.NoError(t, store.Set(ctx, userID, "current_workspace_id", "abc"))
	require.NoError(t, store.Set(ctx, userID, "theme", "dark"))

	require.NoError(t, store.Delete(ctx, userID, "onboarding_completed", "current_workspace_id", "missing"))
	require.NoError(t, store.Delete(ctx, userID))

	_, ok, err := store.Get(ctx, userID, "onboarding_completed")
	require.NoError(t, err)
	assert.False(t, ok)

	value, ok, err := store.Get(ctx, userID, "theme")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "dark", value)
}

func TestPreferenceStore_Reopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.db")
	ctx := context.Background()
	userID := uuid.New()

	store, err := NewPreferenceStore(path)
	require.NoError(t, err)
	require.NoError(t, store.Set(ctx, userID, "onboarding_completed", "true"))
	require.NoError(t, store.Close())

	reopened, err := NewPreferenceStore(path)
	require.NoError(t, err)
	defer reopened.Close()

	value, ok, err := reopened.Get(ctx, userID, "onboarding_completed")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "true", value)
}
