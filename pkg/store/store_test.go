package store

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJoinPath(t *testing.T) {
	path, err := joinPath([]string{"recipes", "r1"})
	require.NoError(t, err)
	assert.Equal(t, "recipes/r1", path)

	_, err = joinPath(nil)
	assert.ErrorIs(t, err, ErrInvalidPath)

	_, err = joinPath([]string{"recipes", ""})
	assert.ErrorIs(t, err, ErrInvalidPath)

	_, err = joinPath([]string{"recipes/r1"})
	assert.ErrorIs(t, err, ErrInvalidPath)
}

func TestEscapeLike(t *testing.T) {
	// Underscores in collection names must not act as LIKE wildcards, or a
	// prefix scan of saved_recipes would also match a saved2recipes sibling.
	assert.Equal(t, `saved\_recipes/u1`, escapeLike("saved_recipes/u1"))
	assert.Equal(t, `external\_favorites`, escapeLike("external_favorites"))
	assert.Equal(t, `100\%done`, escapeLike("100%done"))
	assert.Equal(t, `a\\b`, escapeLike(`a\b`))
	assert.Equal(t, "recipes/r1", escapeLike("recipes/r1"))
}

func TestMemoryStore_GetSetRemove(t *testing.T) {
	st := NewMemoryStore()
	ctx := context.Background()

	var out map[string]string
	found, err := st.Get(ctx, &out, "users", "u1")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, st.Set(ctx, map[string]string{"email": "a@example.com"}, "users", "u1"))

	found, err = st.Get(ctx, &out, "users", "u1")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "a@example.com", out["email"])

	require.NoError(t, st.Remove(ctx, "users", "u1"))
	found, err = st.Get(ctx, &out, "users", "u1")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestMemoryStore_GetAllListsDirectChildrenOnly(t *testing.T) {
	st := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, st.Set(ctx, 1, "ratings", "r1", "u1"))
	require.NoError(t, st.Set(ctx, 2, "ratings", "r1", "u2"))
	require.NoError(t, st.Set(ctx, 3, "ratings", "r2", "u1"))

	children, err := st.GetAll(ctx, "ratings", "r1")
	require.NoError(t, err)
	assert.Len(t, children, 2)
	assert.Contains(t, children, "u1")
	assert.Contains(t, children, "u2")

	// A grandchild never shows up as a direct child.
	parents, err := st.GetAll(ctx, "ratings")
	require.NoError(t, err)
	assert.Empty(t, parents)
}

func TestMemoryStore_PushKeysAreSequential(t *testing.T) {
	st := NewMemoryStore()
	ctx := context.Background()

	k1, err := st.Push(ctx, "a", "recipes")
	require.NoError(t, err)
	k2, err := st.Push(ctx, "b", "recipes")
	require.NoError(t, err)
	assert.Less(t, k1, k2)

	children, err := st.GetAll(ctx, "recipes")
	require.NoError(t, err)
	assert.Len(t, children, 2)
}

func TestMemoryStore_RemoveSubtree(t *testing.T) {
	st := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, st.Set(ctx, 1, "ratings", "r1", "u1"))
	require.NoError(t, st.Set(ctx, 2, "ratings", "r1", "u2"))

	require.NoError(t, st.Remove(ctx, "ratings", "r1"))

	children, err := st.GetAll(ctx, "ratings", "r1")
	require.NoError(t, err)
	assert.Empty(t, children)
}

func TestMemoryStore_FailureInjection(t *testing.T) {
	st := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, st.Set(ctx, 1, "recipes", "r1"))

	FailPath(st, "recipes", "r1")
	var out json.RawMessage
	_, err := st.Get(ctx, &out, "recipes", "r1")
	assert.ErrorIs(t, err, ErrStoreUnavailable)

	// Other paths keep working.
	require.NoError(t, st.Set(ctx, 2, "recipes", "r2"))

	FailAll(st, true)
	assert.ErrorIs(t, st.Set(ctx, 3, "recipes", "r3"), ErrStoreUnavailable)

	FailAll(st, false)
	require.NoError(t, st.Set(ctx, 3, "recipes", "r3"))
}
