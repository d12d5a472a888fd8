package session

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/dmitrijs2005/eventadmin/internal/client/repositories/kv"
	"github.com/dmitrijs2005/eventadmin/internal/client/storage"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSQLiteStore(t *testing.T) *Store {
	t.Helper()
	db, err := storage.InitDatabase(context.Background(), filepath.Join(t.TempDir(), "session.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewSQLiteStore(db)
}

func stores(t *testing.T) map[string]*Store {
	return map[string]*Store{
		"sqlite": newSQLiteStore(t),
		"memory": NewStore(kv.NewMemoryRepository()),
	}
}

func TestStore_EmptyByDefault(t *testing.T) {
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			c, err := s.Load(context.Background())
			require.NoError(t, err)
			assert.Empty(t, c.AccessToken)
			assert.Empty(t, c.RefreshToken)
			assert.Nil(t, c.AdminProfile)
		})
	}
}

func TestStore_SaveAndLoad(t *testing.T) {
	profile := json.RawMessage(`{"_id":"a1","name":"Root","role":"super_admin"}`)
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			require.NoError(t, s.Save(ctx, Credentials{AccessToken: "A1", RefreshToken: "R1", AdminProfile: profile}))

			c, err := s.Load(ctx)
			require.NoError(t, err)
			assert.Equal(t, "A1", c.AccessToken)
			assert.Equal(t, "R1", c.RefreshToken)
			assert.JSONEq(t, string(profile), string(c.AdminProfile))
		})
	}
}

func TestStore_SaveWithoutRefreshTokenKeepsPrevious(t *testing.T) {
	s := newSQLiteStore(t)
	ctx := context.Background()

	require.NoError(t, s.SetRefreshToken(ctx, "R0"))
	require.NoError(t, s.Save(ctx, Credentials{AccessToken: "A1"}))

	rt, err := s.RefreshToken(ctx)
	require.NoError(t, err)
	assert.Equal(t, "R0", rt)
}

func TestStore_ClearAccessTokenLeavesRefreshToken(t *testing.T) {
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			require.NoError(t, s.Save(ctx, Credentials{AccessToken: "A1", RefreshToken: "R1"}))
			require.NoError(t, s.ClearAccessToken(ctx))

			at, err := s.AccessToken(ctx)
			require.NoError(t, err)
			assert.Empty(t, at)

			rt, err := s.RefreshToken(ctx)
			require.NoError(t, err)
			assert.Equal(t, "R1", rt)
		})
	}
}

func TestStore_ClearRemovesEverything(t *testing.T) {
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			require.NoError(t, s.Save(ctx, Credentials{AccessToken: "A1", RefreshToken: "R1", AdminProfile: json.RawMessage(`{}`)}))
			require.NoError(t, s.Clear(ctx))

			c, err := s.Load(ctx)
			require.NoError(t, err)
			assert.Equal(t, Credentials{}, c)
		})
	}
}

func TestStore_SealingEncryptsAtRest(t *testing.T) {
	ctx := context.Background()
	repo := kv.NewMemoryRepository()
	s := NewStore(repo)
	require.NoError(t, s.EnableSealing(ctx, []byte("device-secret")))

	require.NoError(t, s.SetAccessToken(ctx, "A1-plain"))

	raw, err := repo.Get(ctx, "adminToken")
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "A1-plain")

	at, err := s.AccessToken(ctx)
	require.NoError(t, err)
	assert.Equal(t, "A1-plain", at)

	// a second store over the same repository and passphrase reads it back
	s2 := NewStore(repo)
	require.NoError(t, s2.EnableSealing(ctx, []byte("device-secret")))
	at, err = s2.AccessToken(ctx)
	require.NoError(t, err)
	assert.Equal(t, "A1-plain", at)

	// a wrong passphrase fails loudly instead of returning garbage
	s3 := NewStore(repo)
	require.NoError(t, s3.EnableSealing(ctx, []byte("other")))
	_, err = s3.AccessToken(ctx)
	require.Error(t, err)
}

func TestStore_DumpMasksTokens(t *testing.T) {
	ctx := context.Background()
	s := NewStore(kv.NewMemoryRepository())
	require.NoError(t, s.EnableSealing(ctx, []byte("pw")))
	require.NoError(t, s.Save(ctx, Credentials{
		AccessToken:  "access-token-value",
		RefreshToken: "refresh-token-value",
		AdminProfile: json.RawMessage(`{"name":"Root"}`),
	}))

	d, err := s.Dump(ctx)
	require.NoError(t, err)
	assert.Len(t, d, 3)
	assert.Equal(t, "acce**********alue", d["adminToken"])
	assert.NotContains(t, d["refreshToken"], "token")
	assert.Equal(t, `{"name":"Root"}`, d["adminData"])
}

func TestStore_Status(t *testing.T) {
	ctx := context.Background()
	s := NewStore(kv.NewMemoryRepository())

	st, err := s.Status(ctx)
	require.NoError(t, err)
	assert.False(t, st.LoggedIn)

	exp := time.Now().Add(-time.Minute).Truncate(time.Second)
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "admin-1",
		ExpiresAt: jwt.NewNumericDate(exp),
	}).SignedString([]byte("k"))
	require.NoError(t, err)
	require.NoError(t, s.Save(ctx, Credentials{AccessToken: tok, RefreshToken: "R1"}))

	st, err = s.Status(ctx)
	require.NoError(t, err)
	assert.True(t, st.LoggedIn)
	assert.True(t, st.HasRefreshToken)
	assert.Equal(t, "admin-1", st.Subject)
	assert.True(t, st.ExpiresAt.Equal(exp))
	assert.True(t, st.Expired(time.Now()))
}

func TestStore_StatusOpaqueToken(t *testing.T) {
	ctx := context.Background()
	s := NewStore(kv.NewMemoryRepository())
	require.NoError(t, s.SetAccessToken(ctx, "opaque"))

	st, err := s.Status(ctx)
	require.NoError(t, err)
	assert.True(t, st.LoggedIn)
	assert.True(t, st.ExpiresAt.IsZero())
	assert.False(t, st.Expired(time.Now()))
}
