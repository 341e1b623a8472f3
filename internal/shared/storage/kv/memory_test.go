package kv

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// exerciseStore runs the shared slot contract against any backend.
func exerciseStore(t *testing.T, store Store) {
	t.Helper()
	ctx := context.Background()
	owner := UserOwner("Ada@Example.com")

	_, err := store.Get(ctx, owner, SlotResumeDraft)
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, store.Put(ctx, owner, SlotResumeDraft, `{"name":"Ada"}`))
	got, err := store.Get(ctx, owner, SlotResumeDraft)
	require.NoError(t, err)
	assert.Equal(t, `{"name":"Ada"}`, got)

	require.NoError(t, store.Put(ctx, owner, SlotResumeDraft, `{"name":"Grace"}`))
	got, err = store.Get(ctx, owner, SlotResumeDraft)
	require.NoError(t, err)
	assert.Equal(t, `{"name":"Grace"}`, got)

	_, err = store.Get(ctx, UserOwner("other@example.com"), SlotResumeDraft)
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, store.Delete(ctx, owner, SlotResumeDraft))
	_, err = store.Get(ctx, owner, SlotResumeDraft)
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, store.Delete(ctx, owner, SlotResumeDraft))
}

func TestMemoryStore(t *testing.T) {
	exerciseStore(t, NewMemory())
}

func TestFileStore(t *testing.T) {
	exerciseStore(t, NewFile(t.TempDir()))
}

func TestStoreRejectsEmptyOwner(t *testing.T) {
	err := NewMemory().Put(context.Background(), "", SlotResumeData, "{}")
	assert.Error(t, err)
}

func TestMemoryStoreHonoursCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewMemory().Get(ctx, SessionOwner("s1"), SlotAuth)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestOwnersAreNormalised(t *testing.T) {
	assert.Equal(t, "user:ada@example.com", UserOwner("  ADA@example.com "))
	assert.Equal(t, "session:abc", SessionOwner("abc"))
}
