package session

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ymgs-pharma/storefront/internal/localstore"
	"github.com/ymgs-pharma/storefront/pkg/api"
	"github.com/ymgs-pharma/storefront/pkg/enums"
)

func newManager(t *testing.T) (*Manager, *localstore.Store) {
	t.Helper()
	store, err := localstore.Open(filepath.Join(t.TempDir(), "state.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	m, err := NewManager(store)
	require.NoError(t, err)
	return m, store
}

func TestLoginLifecycle(t *testing.T) {
	m, _ := newManager(t)
	assert.Equal(t, StateAnonymous, m.State())

	require.NoError(t, m.BeginLogin())
	assert.Equal(t, StateAuthenticating, m.State())

	profile := api.UserProfile{ID: 7, Email: "a@b.c", Role: enums.RoleCustomer}
	require.NoError(t, m.CompleteLogin("tok-1", profile))
	assert.True(t, m.IsAuthenticated())
	assert.Equal(t, "tok-1", m.Token())
	require.NotNil(t, m.Profile())
	assert.Equal(t, enums.RoleCustomer, m.Profile().Role)

	require.NoError(t, m.Logout())
	assert.Equal(t, StateAnonymous, m.State())
	assert.Empty(t, m.Token())
	assert.Nil(t, m.Profile())
}

func TestBeginLoginRejectedWhenAuthenticated(t *testing.T) {
	m, _ := newManager(t)
	require.NoError(t, m.BeginLogin())
	require.NoError(t, m.CompleteLogin("tok", api.UserProfile{ID: 1}))
	assert.Error(t, m.BeginLogin())
}

func TestFailLoginReturnsToAnonymous(t *testing.T) {
	m, _ := newManager(t)
	require.NoError(t, m.BeginLogin())
	m.FailLogin()
	assert.Equal(t, StateAnonymous, m.State())
}

func TestHydrateRestoresPersistedSession(t *testing.T) {
	m, store := newManager(t)
	require.NoError(t, m.BeginLogin())
	require.NoError(t, m.CompleteLogin("tok-2", api.UserProfile{ID: 3, Role: enums.RolePharmacist, HasPharmacy: true}))

	fresh, err := NewManager(store)
	require.NoError(t, err)
	require.NoError(t, fresh.Hydrate())
	assert.True(t, fresh.IsAuthenticated())
	assert.Equal(t, "tok-2", fresh.Token())
	require.NotNil(t, fresh.Profile())
	assert.True(t, fresh.Profile().HasPharmacy)
}

func TestHydrateWithoutPersistedSession(t *testing.T) {
	m, _ := newManager(t)
	require.NoError(t, m.Hydrate())
	assert.Equal(t, StateAnonymous, m.State())
}

func TestClearOn401RemovesStorage(t *testing.T) {
	m, store := newManager(t)
	require.NoError(t, m.BeginLogin())
	require.NoError(t, m.CompleteLogin("tok-3", api.UserProfile{ID: 9}))

	require.NoError(t, m.ClearOn401())
	_, err := store.Get(localstore.KeyToken)
	assert.ErrorIs(t, err, localstore.ErrNotFound)
	_, err = store.Get(localstore.KeyUser)
	assert.ErrorIs(t, err, localstore.ErrNotFound)
}

func TestTokenExpiry(t *testing.T) {
	m, _ := newManager(t)

	_, ok := m.TokenExpiry()
	assert.False(t, ok, "no token")

	require.NoError(t, m.BeginLogin())
	require.NoError(t, m.CompleteLogin("opaque-django-token", api.UserProfile{ID: 1}))
	_, ok = m.TokenExpiry()
	assert.False(t, ok, "opaque token carries no expiry")

	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(exp),
	}).SignedString([]byte("secret"))
	require.NoError(t, err)

	require.NoError(t, m.Logout())
	require.NoError(t, m.BeginLogin())
	require.NoError(t, m.CompleteLogin(signed, api.UserProfile{ID: 1}))

	got, ok := m.TokenExpiry()
	require.True(t, ok)
	assert.True(t, got.Equal(exp))
}
