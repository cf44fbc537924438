package buddies_test

import (
	"context"
	"encoding/base64"
	"errors"
	"strings"
	"testing"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aanand-mishra/timezone-buddy/internal/buddies"
	"github.com/aanand-mishra/timezone-buddy/internal/storage/memory"
	"github.com/aanand-mishra/timezone-buddy/internal/types"
)

func newService(t *testing.T) (*buddies.Service, *buddies.Store, *memory.Memory) {
	t.Helper()
	kv := memory.New()
	store := buddies.NewStore(kv, "timezone-buddy")
	return buddies.NewService(store), store, kv
}

func names(list []types.Buddy) []string {
	out := make([]string, 0, len(list))
	for _, b := range list {
		out = append(out, b.Name)
	}
	return out
}

func TestEmptyStoreLoadsEmptyList(t *testing.T) {
	_, store, _ := newService(t)

	list, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
	assert.Equal(t, "timezone-buddy:buddies", store.Key())
}

func TestCreateThenLoad(t *testing.T) {
	ctx := context.Background()
	svc, store, _ := newService(t)

	pairs := []buddies.Input{
		{Name: "Ada", TZ: "Europe/London"},
		{Name: "Grace Hopper", TZ: "America/New_York", TwitterHandle: "@grace"},
		{Name: "Linus", TZ: "Europe/Helsinki"},
		{Name: "Yukihiro", TZ: "Asia/Tokyo"},
	}
	for i, in := range pairs {
		_, idx, err := svc.Create(ctx, in)
		require.NoError(t, err)
		assert.Equal(t, i, idx)
	}

	list, err := store.Load(ctx)
	require.NoError(t, err)
	require.Len(t, list, len(pairs))
	for i, in := range pairs {
		assert.Equal(t, in.Name, list[i].Name)
		assert.Equal(t, in.TZ, list[i].TZ)
		assert.NotEmpty(t, list[i].Avatar)
	}
	assert.Equal(t, "grace", list[1].TwitterHandle)
}

func TestDeletePreservesOrder(t *testing.T) {
	ctx := context.Background()

	for i := 0; i < 4; i++ {
		svc, _, _ := newService(t)
		for _, n := range []string{"a", "b", "c", "d"} {
			_, _, err := svc.Create(ctx, buddies.Input{Name: n, TZ: "UTC"})
			require.NoError(t, err)
		}

		removed, err := svc.Delete(ctx, i)
		require.NoError(t, err)

		want := []string{"a", "b", "c", "d"}
		assert.Equal(t, want[i], removed.Name)

		want = append(want[:i:i], want[i+1:]...)
		list, err := svc.List(ctx)
		require.NoError(t, err)
		assert.Equal(t, want, names(list))
	}
}

func TestUpdateInPlace(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newService(t)

	for _, n := range []string{"a", "b", "c"} {
		_, _, err := svc.Create(ctx, buddies.Input{Name: n, TZ: "UTC"})
		require.NoError(t, err)
	}

	updated, err := svc.Update(ctx, 1, buddies.Input{Name: "bee", TZ: "Australia/Sydney", TwitterHandle: "bee"})
	require.NoError(t, err)
	assert.Equal(t, "Australia/Sydney", updated.TZ)
	assert.Contains(t, updated.Avatar, "unavatar.io/twitter/bee")

	list, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "bee", "c"}, names(list))

	got, err := svc.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, updated, got)
}

func TestOutOfRange(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newService(t)

	_, _, err := svc.Create(ctx, buddies.Input{Name: "a", TZ: "UTC"})
	require.NoError(t, err)

	_, err = svc.Get(ctx, 1)
	assert.True(t, errors.Is(err, buddies.ErrNotFound))
	_, err = svc.Update(ctx, -1, buddies.Input{Name: "x", TZ: "UTC"})
	assert.True(t, errors.Is(err, buddies.ErrNotFound))
	_, err = svc.Delete(ctx, 5)
	assert.True(t, errors.Is(err, buddies.ErrNotFound))

	list, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestValidation(t *testing.T) {
	ctx := context.Background()
	svc, store, _ := newService(t)

	_, _, err := svc.Create(ctx, buddies.Input{Name: "   ", TZ: "Mars/Base"})
	var verr *buddies.ValidationError
	require.True(t, errors.As(err, &verr), "got %v", err)
	assert.Contains(t, err.Error(), "field name is required")
	assert.Contains(t, err.Error(), "field tz must be a valid IANA timezone")

	_, _, err = svc.Create(ctx, buddies.Input{Name: "Ada", TZ: "Local"})
	require.True(t, errors.As(err, &verr))

	_, _, err = svc.Create(ctx, buddies.Input{Name: "Ada"})
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, err.Error(), "field tz is required")

	list, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestBuildRejectsUnlistedZones(t *testing.T) {
	for _, tz := range []string{"right/UTC", "posix/Europe/London", "Factory", "posixrules"} {
		_, err := buddies.Build(buddies.Input{Name: "Ada", TZ: tz})
		var verr *buddies.ValidationError
		assert.True(t, errors.As(err, &verr), "tz %q: %v", tz, err)
	}
}

func TestCorruptBlobIsReported(t *testing.T) {
	ctx := context.Background()
	svc, store, kv := newService(t)

	require.NoError(t, kv.SetItem(ctx, store.Key(), "{oops"))

	_, err := svc.List(ctx)
	assert.True(t, errors.Is(err, buddies.ErrCorrupt))

	_, _, err = svc.Create(ctx, buddies.Input{Name: "Ada", TZ: "UTC"})
	assert.True(t, errors.Is(err, buddies.ErrCorrupt))

	raw, _, err := kv.GetItem(ctx, store.Key())
	require.NoError(t, err)
	assert.Equal(t, "{oops", raw)
}

func TestNullBlobLoadsEmpty(t *testing.T) {
	ctx := context.Background()
	_, store, kv := newService(t)

	require.NoError(t, kv.SetItem(ctx, store.Key(), "null"))
	list, err := store.Load(ctx)
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}

func TestSavedBlobShape(t *testing.T) {
	ctx := context.Background()
	svc, store, kv := newService(t)

	_, _, err := svc.Create(ctx, buddies.Input{Name: "Ada", TZ: "Europe/London", TwitterHandle: "ada"})
	require.NoError(t, err)

	raw, ok, err := kv.GetItem(ctx, store.Key())
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, strings.HasPrefix(raw, `[{"name":"Ada","twitter_handle":"ada","tz":"Europe/London","avatar":"https://unavatar.io/twitter/ada?fallback=`))

	_, err = svc.Delete(ctx, 0)
	require.NoError(t, err)
	raw, _, err = kv.GetItem(ctx, store.Key())
	require.NoError(t, err)
	assert.Equal(t, "[]", raw)
}

func TestReplace(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newService(t)

	_, _, err := svc.Create(ctx, buddies.Input{Name: "a", TZ: "UTC"})
	require.NoError(t, err)

	list, err := svc.Replace(ctx, []buddies.Input{{Name: "b", TZ: "UTC"}}, true)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, names(list))

	_, err = svc.Replace(ctx, []buddies.Input{{Name: "c", TZ: "UTC"}, {Name: "", TZ: "UTC"}}, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "record 2")

	list, err = svc.Replace(ctx, []buddies.Input{{Name: "c", TZ: "UTC"}}, false)
	require.NoError(t, err)
	assert.Equal(t, []string{"c"}, names(list))
}

func TestClearRemovesKey(t *testing.T) {
	ctx := context.Background()
	svc, store, kv := newService(t)

	_, _, err := svc.Create(ctx, buddies.Input{Name: "a", TZ: "UTC"})
	require.NoError(t, err)

	require.NoError(t, svc.Clear(ctx))
	_, ok, err := kv.GetItem(ctx, store.Key())
	require.NoError(t, err)
	assert.False(t, ok)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)

	// Clearing also drops a blob that no longer decodes.
	require.NoError(t, kv.SetItem(ctx, store.Key(), "not json"))
	_, err = svc.List(ctx)
	require.ErrorIs(t, err, buddies.ErrCorrupt)
	require.NoError(t, svc.Clear(ctx))
	list, err = svc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestAvatarURL(t *testing.T) {
	assert.Equal(t,
		"https://unavatar.io/twitter/jack?fallback=https://source.boringavatars.com/beam/jack",
		buddies.AvatarURL("Jack", "jack"))

	a := buddies.AvatarURL("Grace Brewster Hopper", "")
	require.True(t, strings.HasPrefix(a, "data:image/svg+xml;base64,"))
	svg, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(a, "data:image/svg+xml;base64,"))
	require.NoError(t, err)
	assert.Contains(t, string(svg), ">GB</text>")

	assert.Equal(t, a, buddies.InitialsAvatar("Grace Brewster Hopper"), "avatar must be deterministic")
}
