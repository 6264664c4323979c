package store

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFirebaseStore_GetNullMeansAbsent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/recipes/r1.json", r.URL.Path)
		w.Write([]byte("null"))
	}))
	defer server.Close()

	st := NewFirebaseStore(server.URL, "")
	var out map[string]any
	found, err := st.Get(context.Background(), &out, "recipes", "r1")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestFirebaseStore_GetDecodesValue(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"name":"Nasi Goreng"}`))
	}))
	defer server.Close()

	st := NewFirebaseStore(server.URL, "")
	var out map[string]string
	found, err := st.Get(context.Background(), &out, "recipes", "r1")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "Nasi Goreng", out["name"])
}

func TestFirebaseStore_GetAllNullMeansEmpty(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("null"))
	}))
	defer server.Close()

	st := NewFirebaseStore(server.URL, "")
	children, err := st.GetAll(context.Background(), "recipes")
	require.NoError(t, err)
	assert.NotNil(t, children)
	assert.Empty(t, children)
}

func TestFirebaseStore_AuthSecretAppended(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "secret", r.URL.Query().Get("auth"))
		w.Write([]byte("null"))
	}))
	defer server.Close()

	st := NewFirebaseStore(server.URL, "secret")
	var out any
	_, err := st.Get(context.Background(), &out, "recipes", "r1")
	require.NoError(t, err)
}

func TestFirebaseStore_PushReturnsGeneratedKey(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		w.Write([]byte(`{"name":"-Nabc123"}`))
	}))
	defer server.Close()

	st := NewFirebaseStore(server.URL, "")
	key, err := st.Push(context.Background(), map[string]string{"name": "Nasi Goreng"}, "recipes")
	require.NoError(t, err)
	assert.Equal(t, "-Nabc123", key)
}

func TestFirebaseStore_ServerErrorWrapsUnavailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	st := NewFirebaseStore(server.URL, "")
	var out any
	_, err := st.Get(context.Background(), &out, "recipes", "r1")
	assert.ErrorIs(t, err, ErrStoreUnavailable)

	assert.ErrorIs(t, st.Set(context.Background(), "x", "recipes", "r1"), ErrStoreUnavailable)
	assert.ErrorIs(t, st.Remove(context.Background(), "recipes", "r1"), ErrStoreUnavailable)
}

func TestFirebaseStore_UnreachableHostWrapsUnavailable(t *testing.T) {
	st := NewFirebaseStore("http://127.0.0.1:1", "")
	var out any
	_, err := st.Get(context.Background(), &out, "recipes", "r1")
	assert.ErrorIs(t, err, ErrStoreUnavailable)
}
