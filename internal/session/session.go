// Package session owns the auth token lifecycle: startup revalidation,
// login, register, logout. Everything else only reads its state.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/basket-cli/basket/internal/model"
)

// State is the session lifecycle position.
type State int

const (
	Uninitialized State = iota
	Resolving
	Authenticated
	Anonymous
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case Resolving:
		return "resolving"
	case Authenticated:
		return "authenticated"
	case Anonymous:
		return "anonymous"
	}
	return "unknown"
}

var ErrNotAuthenticated = errors.New("not logged in")

// API is the slice of the REST client the session manager needs.
type API interface {
	Login(ctx context.Context, username, password string) (*model.LoginResult, error)
	Register(ctx context.Context, name, username, password string) (*model.User, error)
	Me(ctx context.Context, token string) (*model.User, error)
}

// TokenStore is the durable slot holding the bearer token across runs.
type TokenStore interface {
	Load() (string, error)
	Save(token string) error
	Clear() error
}

// Manager holds the token and resolved user. Invariant: user is set only
// together with a token that the backend has validated; both clear together.
// Overlapping logins are last-writer-wins; the mutex is for memory safety,
// not coordination.
type Manager struct {
	api    API
	tokens TokenStore
	log    *slog.Logger

	mu    sync.Mutex
	state State
	token string
	user  *model.User
}

func NewManager(api API, tokens TokenStore, log *slog.Logger) *Manager {
	if log == nil {
		log = slog.Default()
	}
	return &Manager{api: api, tokens: tokens, log: log, state: Uninitialized}
}

// Bootstrap resolves the persisted token, if any. No token means Anonymous
// without touching the network. A token the backend rejects is removed from
// the store so the next start skips the round trip.
func (m *Manager) Bootstrap(ctx context.Context) error {
	token, err := m.tokens.Load()
	if err != nil {
		return fmt.Errorf("load token: %w", err)
	}
	if token == "" {
		m.set(Anonymous, "", nil)
		return nil
	}

	m.set(Resolving, token, nil)
	user, err := m.api.Me(ctx, token)
	if err != nil {
		m.log.Info("stored token rejected, clearing", slog.Any("error", err))
		if cerr := m.tokens.Clear(); cerr != nil {
			m.log.Warn("clear stale token", slog.Any("error", cerr))
		}
		m.set(Anonymous, "", nil)
		return nil
	}

	m.set(Authenticated, token, user)
	m.log.Debug("session resolved", slog.String("username", user.Username))
	return nil
}

// Login authenticates, persists the token, and resolves the user (from the
// login response when present, otherwise via Me). On failure the session is
// left untouched and the error returned for the caller's own UI.
func (m *Manager) Login(ctx context.Context, username, password string) (*model.User, error) {
	res, err := m.api.Login(ctx, username, password)
	if err != nil {
		return nil, err
	}
	if res.Token == "" {
		return nil, fmt.Errorf("login: server returned no token")
	}

	user := res.User
	if user == nil {
		user, err = m.api.Me(ctx, res.Token)
		if err != nil {
			return nil, err
		}
	}

	if err := m.tokens.Save(res.Token); err != nil {
		return nil, fmt.Errorf("persist token: %w", err)
	}
	m.set(Authenticated, res.Token, user)
	m.log.Info("logged in", slog.String("username", user.Username))
	return user, nil
}

// Register creates the account but does not authenticate it; the backend
// issues no token here. Callers direct the user to log in next.
func (m *Manager) Register(ctx context.Context, name, username, password string) error {
	if _, err := m.api.Register(ctx, name, username, password); err != nil {
		return err
	}
	m.log.Info("registered", slog.String("username", username))
	return nil
}

// Logout clears durable and in-memory state. Always succeeds; a store
// failure is logged but cannot keep the user logged in.
func (m *Manager) Logout() {
	if err := m.tokens.Clear(); err != nil {
		m.log.Warn("clear token", slog.Any("error", err))
	}
	m.set(Anonymous, "", nil)
	m.log.Info("logged out")
}

func (m *Manager) set(s State, token string, user *model.User) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = s
	m.token = token
	m.user = user
}

func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Token returns the validated bearer token, or "" when not authenticated.
func (m *Manager) Token() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state != Authenticated {
		return ""
	}
	return m.token
}

// User returns the resolved user, or nil when not authenticated.
func (m *Manager) User() *model.User {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state != Authenticated {
		return nil
	}
	return m.user
}

func (m *Manager) Authenticated() bool {
	return m.State() == Authenticated
}
