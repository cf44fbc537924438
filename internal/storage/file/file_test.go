package file

import (
	"context"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileRoundTrip(t *testing.T) {
	ctx := context.Background()
	fsys := afero.NewMemMapFs()

	kv, err := New(fsys, "/home/ada/.config/timezone-buddy/buddies.json")
	require.NoError(t, err)

	_, ok, err := kv.GetItem(ctx, "timezone-buddy:buddies")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, kv.SetItem(ctx, "timezone-buddy:buddies", `[{"name":"Ada"}]`))
	require.NoError(t, kv.SetItem(ctx, "other:buddies", `[]`))

	v, ok, err := kv.GetItem(ctx, "timezone-buddy:buddies")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `[{"name":"Ada"}]`, v)

	info, err := fsys.Stat("/home/ada/.config/timezone-buddy/buddies.json")
	require.NoError(t, err)
	assert.Equal(t, "-rw-------", info.Mode().Perm().String())

	require.NoError(t, kv.RemoveItem(ctx, "timezone-buddy:buddies"))
	_, ok, err = kv.GetItem(ctx, "timezone-buddy:buddies")
	require.NoError(t, err)
	assert.False(t, ok)

	v, ok, err = kv.GetItem(ctx, "other:buddies")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `[]`, v)
}

func TestFileNoTempLeftovers(t *testing.T) {
	ctx := context.Background()
	fsys := afero.NewMemMapFs()

	kv, err := New(fsys, "/data/buddies.json")
	require.NoError(t, err)
	require.NoError(t, kv.SetItem(ctx, "k", "v"))

	entries, err := afero.ReadDir(fsys, "/data")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "buddies.json", entries[0].Name())
}

func TestFileCorruptDocument(t *testing.T) {
	fsys := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fsys, "/data/buddies.json", []byte("{not json"), 0o600))

	kv, err := New(fsys, "/data/buddies.json")
	require.NoError(t, err)

	_, _, err = kv.GetItem(context.Background(), "k")
	require.Error(t, err)
}

func TestNewRejectsEmptyPath(t *testing.T) {
	_, err := New(afero.NewMemMapFs(), "")
	require.Error(t, err)
}
