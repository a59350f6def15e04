package session

import (
	"context"
	"testing"
	"time"

	"github.com/dmitrijs2005/progressboard/internal/common"
	"github.com/dmitrijs2005/progressboard/internal/cryptox"
	"github.com/dmitrijs2005/progressboard/internal/dbx"
	"github.com/dmitrijs2005/progressboard/internal/storage"
	"github.com/dmitrijs2005/progressboard/internal/storage/kv"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRepo(t *testing.T) *kv.SQLRepository {
	t.Helper()
	db, err := storage.Open(context.Background(), dbx.SQLite, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return kv.NewSQLiteRepository(db)
}

func TestStore_SetGetClear(t *testing.T) {
	ctx := context.Background()
	st := NewManager(newRepo(t)).Store("")

	_, ok, err := st.Get(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.False(t, st.IsValid(ctx))

	require.NoError(t, st.Set(ctx, "h.p.s"))

	tok, ok, err := st.Get(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "h.p.s", tok)
	assert.True(t, st.IsValid(ctx))

	require.NoError(t, st.Clear(ctx))
	_, ok, err = st.Get(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStore_IsValid_ClearsMalformedToken(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t)
	st := NewManager(repo).Store("")

	for _, bad := range []string{"abc", "a.b", "a..c", "a.b.c.d"} {
		require.NoError(t, st.Set(ctx, bad))
		assert.False(t, st.IsValid(ctx), bad)

		v, err := repo.Get(ctx, cliKey)
		require.NoError(t, err)
		assert.Nil(t, v, "malformed token %q must be cleared", bad)
	}
}

func TestStore_Current(t *testing.T) {
	ctx := context.Background()
	st := NewManager(newRepo(t)).Store("abc")

	_, err := st.Current(ctx)
	require.ErrorIs(t, err, common.ErrNotAuthenticated)

	require.NoError(t, st.Set(ctx, "x.y.z"))
	s, err := st.Current(ctx)
	require.NoError(t, err)
	assert.Equal(t, "x.y.z", s.Token())
}

func TestStore_Current_StorageFailureIsNotALogout(t *testing.T) {
	ctx := context.Background()
	db, err := storage.Open(ctx, dbx.SQLite, ":memory:")
	require.NoError(t, err)
	st := NewManager(kv.NewSQLiteRepository(db)).Store("")
	require.NoError(t, st.Set(ctx, "h.p.s"))
	require.NoError(t, db.Close())

	_, err = st.Current(ctx)
	require.Error(t, err)
	assert.False(t, common.IsAuthError(err))
	assert.False(t, st.IsValid(ctx))
}

func TestStore_ScopesAreIndependent(t *testing.T) {
	ctx := context.Background()
	m := NewManager(newRepo(t))
	a, b, cli := m.Store("a"), m.Store("b"), m.Store("")

	require.NoError(t, a.Set(ctx, "a.a.a"))
	require.NoError(t, cli.Set(ctx, "c.c.c"))

	assert.True(t, a.IsValid(ctx))
	assert.False(t, b.IsValid(ctx))
	assert.True(t, cli.IsValid(ctx))

	require.NoError(t, a.Clear(ctx))
	assert.False(t, a.IsValid(ctx))
	assert.True(t, cli.IsValid(ctx))
}

func TestStore_SealedAtRest(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t)
	sealer, err := cryptox.NewSealer("secret")
	require.NoError(t, err)

	st := NewManager(repo, WithSealer(sealer)).Store("")
	require.NoError(t, st.Set(ctx, "h.p.s"))

	raw, err := repo.Get(ctx, cliKey)
	require.NoError(t, err)
	assert.NotEqual(t, "h.p.s", string(raw))

	tok, ok, err := st.Get(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "h.p.s", tok)
}

func TestStore_UnopenableValueIsRemoved(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t)
	oldSealer, err := cryptox.NewSealer("old")
	require.NoError(t, err)
	newSealer, err := cryptox.NewSealer("new")
	require.NoError(t, err)

	require.NoError(t, NewManager(repo, WithSealer(oldSealer)).Store("").Set(ctx, "h.p.s"))

	st := NewManager(repo, WithSealer(newSealer)).Store("")
	_, ok, err := st.Get(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	raw, err := repo.Get(ctx, cliKey)
	require.NoError(t, err)
	assert.Nil(t, raw)
}

func TestStore_ClearPurgesOnlyItsCache(t *testing.T) {
	ctx := context.Background()
	cache := NewCache(16, time.Minute)
	m := NewManager(newRepo(t), WithCache(cache))
	a, b := m.Store("a"), m.Store("b")

	a.Cache().Add("q1", []byte("1"))
	a.Cache().Add("q2", []byte("2"))
	b.Cache().Add("q1", []byte("3"))
	require.Equal(t, 3, cache.Len())

	require.NoError(t, a.Clear(ctx))

	_, ok := a.Cache().Get("q1")
	assert.False(t, ok)
	v, ok := b.Cache().Get("q1")
	assert.True(t, ok)
	assert.Equal(t, []byte("3"), v)
}

func TestManager_Sweep(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t)
	m := NewManager(repo)
	now := time.Now()

	expired := signed(t, jwt.MapClaims{"exp": now.Add(-time.Hour).Unix()})
	live := signed(t, jwt.MapClaims{"exp": now.Add(time.Hour).Unix()})

	require.NoError(t, m.Store("old").Set(ctx, expired))
	require.NoError(t, m.Store("live").Set(ctx, live))
	require.NoError(t, m.Store("opaque").Set(ctx, "h.p.s"))
	require.NoError(t, repo.Set(ctx, "session/broken/token", []byte("nope")))
	require.NoError(t, m.Store("").Set(ctx, expired))

	n, err := m.Sweep(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	left, err := repo.List(ctx, "")
	require.NoError(t, err)
	assert.Contains(t, left, "session/live/token")
	assert.Contains(t, left, "session/opaque/token")
	assert.Contains(t, left, cliKey, "the CLI token is not swept")
	assert.NotContains(t, left, "session/old/token")
	assert.NotContains(t, left, "session/broken/token")
}

func TestScopedCache_NilCacheIsNoop(t *testing.T) {
	var c ScopedCache
	c.Add("k", []byte("v"))
	_, ok := c.Get("k")
	assert.False(t, ok)
	c.Purge()
}
