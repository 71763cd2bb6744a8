package store_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"coldcall/internal/store"
)

func openTemp(t *testing.T) *store.Store {
	t.Helper()

	st, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	return st
}

type record struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestStore_SaveAndLoad(t *testing.T) {
	st := openTemp(t)

	st.Save("records", []record{{Name: "a", Count: 1}, {Name: "b", Count: 2}})

	var got []record
	require.True(t, st.Load("records", &got))
	assert.Equal(t, []record{{Name: "a", Count: 1}, {Name: "b", Count: 2}}, got)
}

func TestStore_SaveOverwrites(t *testing.T) {
	st := openTemp(t)

	st.Save("key", record{Name: "old"})
	st.Save("key", record{Name: "new"})

	var got record
	require.True(t, st.Load("key", &got))
	assert.Equal(t, "new", got.Name)
}

func TestStore_LoadAbsentKeyLeavesDefault(t *testing.T) {
	st := openTemp(t)

	got := record{Name: "default"}
	assert.False(t, st.Load("missing", &got))
	assert.Equal(t, "default", got.Name)
}

func TestStore_ReopenPersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	st, err := store.Open(path)
	require.NoError(t, err)
	st.Save("key", record{Name: "kept"})
	require.NoError(t, st.Close())

	st, err = store.Open(path)
	require.NoError(t, err)
	defer st.Close()

	var got record
	require.True(t, st.Load("key", &got))
	assert.Equal(t, "kept", got.Name)
}

func TestStore_CorruptValueLoadsAsAbsent(t *testing.T) {
	st := openTemp(t)

	st.Save("key", "a plain string, not a record")

	var got record
	assert.False(t, st.Load("key", &got))
}

func TestStore_NilStoreIsInert(t *testing.T) {
	var st *store.Store

	st.Save("key", record{Name: "x"})

	var got record
	assert.False(t, st.Load("key", &got))
	assert.NoError(t, st.Close())
}
