package kvstore

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func backends(t *testing.T) map[string]Store {
	t.Helper()

	local, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)

	lite, err := NewSQLiteStore(context.Background(), ":memory:")
	require.NoError(t, err)

	stores := map[string]Store{
		"memory": NewMemoryStore(),
		"local":  local,
		"sqlite": lite,
	}
	t.Cleanup(func() {
		for _, s := range stores {
			s.Close()
		}
	})
	return stores
}

func TestStoreContract(t *testing.T) {
	ctx := context.Background()

	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			_, err := s.Get(ctx, "missing")
			assert.ErrorIs(t, err, ErrNotFound)

			require.NoError(t, s.Set(ctx, "userResources:u1", []byte(`[1]`)))
			got, err := s.Get(ctx, "userResources:u1")
			require.NoError(t, err)
			assert.Equal(t, `[1]`, string(got))

			require.NoError(t, s.Set(ctx, "userResources:u1", []byte(`[1,2]`)))
			got, err = s.Get(ctx, "userResources:u1")
			require.NoError(t, err)
			assert.Equal(t, `[1,2]`, string(got), "Set should overwrite")

			require.NoError(t, s.Create(ctx, "users/email/a@b.c", []byte(`{}`)))
			err = s.Create(ctx, "users/email/a@b.c", []byte(`{"x":1}`))
			assert.ErrorIs(t, err, ErrExists)

			got, err = s.Get(ctx, "users/email/a@b.c")
			require.NoError(t, err)
			assert.Equal(t, `{}`, string(got), "Create must not overwrite")
		})
	}
}

func TestMemoryStoreCopiesValues(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	v := []byte("abc")
	require.NoError(t, s.Set(ctx, "k", v))
	v[0] = 'z'

	got, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(got))
}

func TestLocalStoreEscapesKeys(t *testing.T) {
	dir := t.TempDir()
	s, err := NewLocalStore(dir)
	require.NoError(t, err)

	require.NoError(t, s.Set(context.Background(), "users/id/42", []byte("x")))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.False(t, entries[0].IsDir())
	assert.Equal(t, "users%2Fid%2F42.json", filepath.Base(entries[0].Name()))
}

func TestOpenUnknownBackend(t *testing.T) {
	_, err := Open(context.Background(), Options{Backend: "etcd"})
	assert.Error(t, err)
}
