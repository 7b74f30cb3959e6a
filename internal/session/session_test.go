package session

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/basket-cli/basket/internal/model"
)

var maria = &model.User{ID: "u1", Name: "Maria", Username: "maria"}

// Requirement: no persisted token means Anonymous with no network call.
func TestBootstrap_NoToken(t *testing.T) {
	api := &FakeAPI{}
	store := &FakeTokenStore{}
	m := NewManager(api, store, nil)

	require.NoError(t, m.Bootstrap(context.Background()))

	assert.Equal(t, Anonymous, m.State())
	assert.Zero(t, api.MeCalls)
	assert.Empty(t, m.Token())
	assert.Nil(t, m.User())
}

// Requirement: a persisted token is revalidated on startup.
func TestBootstrap_ValidToken(t *testing.T) {
	api := &FakeAPI{MeUser: maria}
	store := &FakeTokenStore{Token: "tok-1"}
	m := NewManager(api, store, nil)

	require.NoError(t, m.Bootstrap(context.Background()))

	assert.Equal(t, Authenticated, m.State())
	assert.Equal(t, "tok-1", m.Token())
	require.NotNil(t, m.User())
	assert.Equal(t, "maria", m.User().Username)
}

// Requirement: a rejected persisted token ends Anonymous and is removed
// from durable storage.
func TestBootstrap_InvalidToken(t *testing.T) {
	api := &FakeAPI{MeErr: errors.New("me: invalid token")}
	store := &FakeTokenStore{Token: "stale"}
	m := NewManager(api, store, nil)

	require.NoError(t, m.Bootstrap(context.Background()))

	assert.Equal(t, Anonymous, m.State())
	assert.Equal(t, 1, store.Clears)
	assert.Empty(t, store.Token)
	assert.Nil(t, m.User())
}

// Requirement: successful login persists exactly the returned token and
// resolves a user.
func TestLogin_Success(t *testing.T) {
	tests := []struct {
		name        string
		result      *model.LoginResult
		wantMeCalls int
	}{
		{
			name:        "user included in login response",
			result:      &model.LoginResult{Token: "tok-2", User: maria},
			wantMeCalls: 0,
		},
		{
			name:        "user fetched separately",
			result:      &model.LoginResult{Token: "tok-2"},
			wantMeCalls: 1,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			api := &FakeAPI{LoginResult: test.result, MeUser: maria}
			store := &FakeTokenStore{}
			m := NewManager(api, store, nil)

			user, err := m.Login(context.Background(), "maria", "secret")
			require.NoError(t, err)

			assert.Equal(t, Authenticated, m.State())
			assert.Equal(t, "tok-2", store.Token)
			assert.Equal(t, "tok-2", m.Token())
			assert.Equal(t, "maria", user.Username)
			assert.Equal(t, test.wantMeCalls, api.MeCalls)
		})
	}
}

// Requirement: failed login leaves the session untouched and persists
// nothing.
func TestLogin_Failure(t *testing.T) {
	api := &FakeAPI{LoginErr: errors.New("login: Invalid credentials")}
	store := &FakeTokenStore{}
	m := NewManager(api, store, nil)
	require.NoError(t, m.Bootstrap(context.Background()))

	_, err := m.Login(context.Background(), "maria", "wrong")
	require.Error(t, err)

	assert.Equal(t, Anonymous, m.State())
	assert.Zero(t, store.Saves)
	assert.Empty(t, store.Token)
	assert.Nil(t, m.User())
}

// A token without a message body is a server bug; treat it as a failed
// login rather than an authenticated session with no user.
func TestLogin_EmptyToken(t *testing.T) {
	api := &FakeAPI{LoginResult: &model.LoginResult{}}
	m := NewManager(api, &FakeTokenStore{}, nil)

	_, err := m.Login(context.Background(), "maria", "secret")
	require.Error(t, err)
	assert.NotEqual(t, Authenticated, m.State())
}

// Requirement: logout clears both in-memory state and durable storage,
// regardless of prior state.
func TestLogout(t *testing.T) {
	tests := []struct {
		name  string
		setup func(t *testing.T, m *Manager)
	}{
		{name: "from authenticated", setup: func(t *testing.T, m *Manager) {
			_, err := m.Login(context.Background(), "maria", "secret")
			require.NoError(t, err)
		}},
		{name: "from anonymous", setup: func(t *testing.T, m *Manager) {}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			api := &FakeAPI{LoginResult: &model.LoginResult{Token: "tok", User: maria}}
			store := &FakeTokenStore{}
			m := NewManager(api, store, nil)
			test.setup(t, m)

			m.Logout()

			assert.Equal(t, Anonymous, m.State())
			assert.Empty(t, store.Token)
			assert.Empty(t, m.Token())
			assert.Nil(t, m.User())
		})
	}
}

// Requirement: registering never authenticates the new account.
func TestRegister_DoesNotAuthenticate(t *testing.T) {
	api := &FakeAPI{}
	store := &FakeTokenStore{}
	m := NewManager(api, store, nil)

	require.NoError(t, m.Register(context.Background(), "Maria", "maria", "secret"))

	assert.NotEqual(t, Authenticated, m.State())
	assert.Zero(t, store.Saves)
	assert.Equal(t, 1, api.RegisterCalls)
}

// Accessors hide token and user outside Authenticated, even mid-resolve.
func TestAccessors_OutsideAuthenticated(t *testing.T) {
	api := &FakeAPI{MeErr: errors.New("down")}
	store := &FakeTokenStore{Token: "tok"}
	m := NewManager(api, store, nil)

	assert.Empty(t, m.Token())
	assert.Nil(t, m.User())
	assert.False(t, m.Authenticated())

	require.NoError(t, m.Bootstrap(context.Background()))
	assert.Empty(t, m.Token())
	assert.Nil(t, m.User())
}
